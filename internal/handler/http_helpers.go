package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/adminnotice/internal/locale"
	"github.com/gin-gonic/gin"
)

func forbid(c *gin.Context, message string) {
	c.String(http.StatusForbidden, locale.T(requestLocale(c).Language, message))
	c.Abort()
}

func respondText(c *gin.Context, status int, message string) {
	c.String(status, locale.T(requestLocale(c).Language, message))
}

// postFormPtr 返回表单字段的值，字段未提交时返回 nil。
func postFormPtr(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}

// withQuery 把 key=value 合并进站内后台地址；非后台地址回退到 fallback。
func withQuery(raw, fallback, key, value string) string {
	target, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || target.Scheme != "" || target.Host != "" || !strings.HasPrefix(target.Path, "/admin/") {
		target, _ = url.Parse(fallback)
	}
	query := target.Query()
	query.Set(key, value)
	target.RawQuery = query.Encode()
	return target.String()
}
