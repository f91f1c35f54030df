package handler

import (
	"html/template"

	"github.com/adminnotice/internal/hook"
	"github.com/adminnotice/internal/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	options  *service.OptionService
	notices  *service.NoticeService
	hooks    *hook.Registry
	menu     *Menu
	siteName string
}

// NewAPI constructs the handler set and registers the admin notice settings, menu page and plugin links.
// Callbacks for the admin_notice_enable hook may be added to hooks before or after this call.
func NewAPI(gdb *gorm.DB, hooks *hook.Registry) *API {
	if hooks == nil {
		hooks = hook.NewRegistry()
	}
	options := service.NewOptionService(gdb)

	api := &API{
		db:       gdb,
		options:  options,
		notices:  service.NewNoticeService(options, hooks.NoticeEnable),
		hooks:    hooks,
		menu:     NewMenu(),
		siteName: "Pistis Info System",
	}
	api.registerAdminNotice()
	return api
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Notices exposes the notice service, e.g. for tests that tweak formatting.
func (a *API) Notices() *service.NoticeService {
	return a.notices
}

// renderHTML 渲染后台页面，并附加菜单、语言、通知样式以及当前请求的通知块。
func (a *API) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	pref := requestLocale(c)
	defaults := gin.H{
		"lang":      pref.Language,
		"htmlLang":  pref.HTMLLang,
		"siteName":  a.siteName,
		"username":  sessionUsername(c),
		"menu":      a.menuView(c),
		"noticeCSS": service.NoticeCSS(),
	}
	for key, value := range defaults {
		if _, exists := payload[key]; !exists {
			payload[key] = value
		}
	}

	if _, exists := payload["adminNotice"]; !exists {
		notice, err := a.notices.Render()
		if err != nil {
			log.WithError(err).Error("render admin notice failed")
			c.Error(err)
			notice = template.HTML("")
		}
		payload["adminNotice"] = notice
	}

	c.HTML(status, name, payload)
}
