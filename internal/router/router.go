package router

import (
	"net/http"

	"github.com/adminnotice/internal/handler"
	"github.com/adminnotice/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("adminnotice_session", store))
	r.Use(api.LocaleMiddleware())

	r.SetHTMLTemplate(web.MustTemplates())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/healthz", api.HealthCheck)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", handler.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired(), handler.CapabilityRequired("read"))
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/plugins", handler.CapabilityRequired("activate_plugins"), api.ShowPlugins)
			auth.GET("/"+handler.MenuSettings, api.ShowOptionsPage)
			auth.POST("/options", api.SaveOptions)
		}
	}

	return r
}
