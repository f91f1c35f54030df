package handler

import (
	"net/http"

	"github.com/adminnotice/internal/hook"
	"github.com/gin-gonic/gin"
)

// PluginInfo 是插件列表中展示的元数据。
type PluginInfo struct {
	Name        string
	Description string
	Version     string
	Author      string
	TextDomain  string
}

// NoticePlugin 描述后台通知插件本身。
var NoticePlugin = PluginInfo{
	Name:        "Pistis Info System",
	Description: "Displays custom Infos from Pistis Media",
	Version:     "1.0",
	Author:      "Oliver Hees",
	TextDomain:  "pime-notice",
}

type pluginRow struct {
	Info  PluginInfo
	Links []hook.ActionLink
}

// ShowPlugins 渲染插件列表，操作链接经过 plugin_action_links 过滤链。
func (a *API) ShowPlugins(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "plugins.html", gin.H{
		"title": "Plugins",
		"plugins": []pluginRow{{
			Info:  NoticePlugin,
			Links: a.hooks.ActionLinks.Apply(nil),
		}},
	})
}
