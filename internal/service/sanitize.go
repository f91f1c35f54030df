package service

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer 把表单提交的原始值转换为可安全存储的值。input 为 nil 表示该字段未随表单提交。
type Sanitizer func(input *string) string

var (
	textPolicy     = bluemonday.StrictPolicy()
	richTextPolicy = bluemonday.UGCPolicy()

	percentOctetPattern = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	whitespacePattern   = regexp.MustCompile(`[ \t\r\n]+`)
)

// SanitizeText 生成纯文本：去掉全部标签、控制字符和百分号编码字节，合并空白并去除首尾空格。
func SanitizeText(input string) string {
	value := strings.ToValidUTF8(input, "")
	// StrictPolicy 输出的是转义后的 HTML，这里要的是纯文本
	value = html.UnescapeString(textPolicy.Sanitize(value))

	value = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, value)

	for percentOctetPattern.MatchString(value) {
		value = percentOctetPattern.ReplaceAllString(value, "")
	}

	value = whitespacePattern.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// SanitizePost 只保留用户内容常用的安全 HTML 子集。
func SanitizePost(input string) string {
	return richTextPolicy.Sanitize(input)
}

// SanitizeEnum 清洗下拉框等选项字段。它不会把值限制在声明的选项之内。
func SanitizeEnum(input *string) string {
	if input == nil {
		return ""
	}
	return SanitizeText(*input)
}

// SanitizeRichText 清洗富文本编辑器提交的内容。
func SanitizeRichText(input *string) string {
	if input == nil {
		return ""
	}
	return SanitizePost(*input)
}
