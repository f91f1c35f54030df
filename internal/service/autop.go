package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Formatter 把纯文本或 HTML 片段转换为最终展示的 HTML。
type Formatter func(input string) (string, error)

// 只识别段落、HTML 块与行内 HTML，其余 Markdown 语法按原文输出。
var paragraphEngine = goldmark.New(
	goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewHTMLBlockParser(), 900),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewRawHTMLParser(), 400),
		),
	)),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
)

// AutoParagraph 按空行拆分段落并包裹 <p>，段内换行转换为 <br />，已有的块级 HTML 保持原样。
// 输出可能包含未经过滤的标签，调用方需要再次清洗。
func AutoParagraph(input string) (string, error) {
	text := strings.ReplaceAll(input, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := paragraphEngine.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("auto paragraph: %w", err)
	}
	return buf.String(), nil
}
