// Package web 内嵌模拟器的 HTML 页面
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates 解析内嵌页面，供 gin SetHTMLTemplate 使用
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
