package handler

import (
	"net/http"
	"strings"

	"github.com/adminnotice/internal/db"
	"github.com/adminnotice/internal/hook"
	"github.com/adminnotice/internal/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var noticeSettingsURL = menuPageURL(MenuPage{Parent: MenuSettings, Slug: service.NoticeSettingsPage})

type styleOption struct {
	Value    string
	Label    string
	Selected bool
}

type editorButton struct {
	Label string
	Open  string
	Close string
}

// editorSettings 描述富文本编辑器的配置。
type editorSettings struct {
	TextareaName string
	TextareaRows int
	MediaButtons bool
	Quicktags    bool
	Teeny        bool
	Buttons      []editorButton
}

var quicktagButtons = []editorButton{
	{Label: "b", Open: "<strong>", Close: "</strong>"},
	{Label: "i", Open: "<em>", Close: "</em>"},
	{Label: "link", Open: `<a href="">`, Close: "</a>"},
	{Label: "b-quote", Open: "<blockquote>", Close: "</blockquote>"},
	{Label: "del", Open: "<del>", Close: "</del>"},
	{Label: "ul", Open: "<ul>\n", Close: "</ul>\n"},
	{Label: "ol", Open: "<ol>\n", Close: "</ol>\n"},
	{Label: "li", Open: "<li>", Close: "</li>"},
	{Label: "code", Open: "<code>", Close: "</code>"},
}

var teenyButtons = map[string]bool{"b": true, "i": true, "b-quote": true, "ul": true, "ol": true, "li": true}

func newEditorSettings(name string) editorSettings {
	settings := editorSettings{
		TextareaName: name,
		TextareaRows: 6,
		MediaButtons: false,
		Quicktags:    true,
		Teeny:        true,
	}
	if !settings.Quicktags {
		return settings
	}
	for _, button := range quicktagButtons {
		if settings.Teeny && !teenyButtons[button.Label] {
			continue
		}
		settings.Buttons = append(settings.Buttons, button)
	}
	return settings
}

func (a *API) registerAdminNotice() {
	service.RegisterNoticeSettings(a.options)

	a.menu.AddSubmenuPage(MenuPage{
		Parent:     MenuSettings,
		PageTitle:  "Admin Notice",
		MenuTitle:  "Admin Notice",
		Capability: capManageOptions,
		Slug:       service.NoticeSettingsPage,
		Position:   100,
		Render:     a.ShowNoticeSettings,
	})

	a.hooks.ActionLinks.Add(func(links []hook.ActionLink) []hook.ActionLink {
		return append([]hook.ActionLink{{Label: "Settings", URL: noticeSettingsURL}}, links...)
	})
}

// ShowNoticeSettings 渲染通知设置表单，表单提交到通用的选项保存入口。
func (a *API) ShowNoticeSettings(c *gin.Context) {
	data := gin.H{
		"title":       "Admin Notice",
		"optionGroup": service.NoticeOptionGroup,
		"token":       csrfToken(c),
		"referer":     noticeSettingsURL,
		"sections":    a.options.Sections(service.NoticeSettingsPage),
		"fields": struct{ Enable, Message, Style string }{
			Enable:  db.OptionNoticeEnable,
			Message: db.OptionNoticeMessage,
			Style:   db.OptionNoticeStyle,
		},
		"editor":  newEditorSettings(db.OptionNoticeMessage),
		"updated": c.Query("settings-updated") == "true",
	}

	settings, err := a.notices.Settings()
	if err != nil {
		log.WithError(err).Error("load notice settings failed")
		data["error"] = "Failed to load settings."
		data["enableChecked"] = false
		data["message"] = ""
		data["styles"] = noticeStyleOptions("")
		a.renderHTML(c, http.StatusInternalServerError, "notice_settings.html", data)
		return
	}

	data["enableChecked"] = settings.Enabled == "1"
	data["message"] = service.SanitizeRichText(&settings.Message)
	data["styles"] = noticeStyleOptions(settings.Style)

	a.renderHTML(c, http.StatusOK, "notice_settings.html", data)
}

func noticeStyleOptions(current string) []styleOption {
	options := make([]styleOption, 0, len(service.NoticeStyles))
	for _, value := range service.NoticeStyles {
		options = append(options, styleOption{
			Value:    value,
			Label:    strings.ToUpper(value[:1]) + value[1:],
			Selected: value == current,
		})
	}
	return options
}
