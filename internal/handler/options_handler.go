package handler

import (
	"errors"
	"net/http"

	"github.com/adminnotice/internal/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ShowOptionsPage 渲染“设置”菜单组下由 page 参数指定的页面。
func (a *API) ShowOptionsPage(c *gin.Context) {
	slug := c.Query("page")
	if slug == "" {
		for _, page := range a.menu.Children(MenuSettings) {
			if userCan(c, page.Capability) {
				c.Redirect(http.StatusFound, menuPageURL(page))
				return
			}
		}
		respondText(c, http.StatusNotFound, "Options page not found.")
		return
	}

	page, ok := a.menu.Find(MenuSettings, slug)
	if !ok || page.Render == nil {
		respondText(c, http.StatusNotFound, "Options page not found.")
		return
	}
	if !userCan(c, page.Capability) {
		forbid(c, "Sorry, you are not allowed to access this page.")
		return
	}
	page.Render(c)
}

// SaveOptions 是通用的设置保存入口：校验令牌与权限，按分组运行每个选项的清洗函数后保存，再跳回来源页面。
func (a *API) SaveOptions(c *gin.Context) {
	if !validCSRF(c, c.PostForm("_token")) {
		forbid(c, "The link you followed has expired.")
		return
	}
	if !userCan(c, capManageOptions) {
		forbid(c, "Sorry, you are not allowed to manage options for this site.")
		return
	}

	group := c.PostForm("option_page")
	values := make(map[string]*string)
	for _, key := range a.options.Keys(group) {
		values[key] = postFormPtr(c, key)
	}

	if _, err := a.options.SaveGroup(group, values); err != nil {
		if errors.Is(err, service.ErrUnknownOptionGroup) {
			respondText(c, http.StatusBadRequest, "Options page not found.")
			return
		}
		log.WithError(err).WithField("group", group).Error("save options failed")
		respondText(c, http.StatusInternalServerError, "Failed to save settings.")
		return
	}

	c.Redirect(http.StatusFound, withQuery(c.PostForm("_referer"), "/admin/dashboard", "settings-updated", "true"))
}
