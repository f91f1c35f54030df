// Package web 内嵌后台页面模板。
package web

import (
	"embed"
	"html/template"

	"github.com/adminnotice/internal/locale"
)

//go:embed template/admin/*.html
var templateFS embed.FS

// FuncMap 返回模板可用的辅助函数。
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"t": locale.T,
	}
}

// Templates 解析全部后台模板，模板名为文件名。
func Templates() (*template.Template, error) {
	return template.New("admin").Funcs(FuncMap()).ParseFS(templateFS, "template/admin/*.html")
}

// MustTemplates 与 Templates 相同，解析失败时 panic。
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
