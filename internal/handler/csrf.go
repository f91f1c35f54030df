package handler

import (
	"crypto/subtle"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const csrfSessionKey = "csrf_token"

// csrfToken 返回当前会话的表单令牌，首次访问时生成。
func csrfToken(c *gin.Context) string {
	session := sessions.Default(c)
	if token, ok := session.Get(csrfSessionKey).(string); ok && token != "" {
		return token
	}

	token := uuid.NewString()
	session.Set(csrfSessionKey, token)
	if err := session.Save(); err != nil {
		log.WithError(err).Warn("save csrf token failed")
	}
	return token
}

func validCSRF(c *gin.Context, token string) bool {
	expected, _ := sessions.Default(c).Get(csrfSessionKey).(string)
	if expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
