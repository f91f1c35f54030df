package handler

import (
	"errors"
	"net/http"

	"github.com/adminnotice/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	capRead            = "read"
	capManageOptions   = "manage_options"
	capActivatePlugins = "activate_plugins"
)

var roleCapabilities = map[string]map[string]bool{
	db.RoleAdministrator: {capRead: true, capManageOptions: true, capActivatePlugins: true},
	db.RoleEditor:        {capRead: true},
}

// ShowLoginPage 渲染登录页面
func ShowLoginPage(c *gin.Context) {
	renderLogin(c, http.StatusOK, "")
}

func renderLogin(c *gin.Context, status int, message string) {
	pref := requestLocale(c)
	data := gin.H{
		"title":    "Log In",
		"lang":     pref.Language,
		"htmlLang": pref.HTMLLang,
	}
	if message != "" {
		data["error"] = message
	}
	c.HTML(status, "login.html", data)
}

// Login 校验用户名密码并建立会话
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithError(err).Error("load user failed")
		}
		renderLogin(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.WithField("username", username).Warn("admin login failed")
		renderLogin(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	session.Set("role", user.Role)
	if err := session.Save(); err != nil {
		log.WithError(err).Error("save session failed")
		renderLogin(c, http.StatusInternalServerError, "Failed to save the session.")
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.WithError(err).Warn("clear session failed")
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title": "Dashboard",
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CapabilityRequired 拒绝当前角色不具备 capability 的请求。
func CapabilityRequired(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !userCan(c, capability) {
			forbid(c, "Sorry, you are not allowed to access this page.")
			return
		}
		c.Next()
	}
}

func userCan(c *gin.Context, capability string) bool {
	role, _ := sessions.Default(c).Get("role").(string)
	return roleCapabilities[role][capability]
}

func sessionUsername(c *gin.Context) string {
	username, _ := sessions.Default(c).Get("username").(string)
	return username
}
