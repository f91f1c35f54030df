package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/adminnotice/internal/db"
	"github.com/adminnotice/internal/hook"
)

const (
	// NoticeOptionGroup 是通知设置表单提交时使用的选项分组。
	NoticeOptionGroup = "pime_admin_notice_settings_group"
	// NoticeSettingsPage 是通知设置页面的 slug。
	NoticeSettingsPage = "admin_notice"
	// NoticeSettingsSection 是设置页面上唯一的分区。
	NoticeSettingsSection = "pime_admin_notice_settings"

	noticeBaseClass = "pime-admin-notice notice"
)

// NoticeStyles 是设置页面下拉框提供的样式，按展示顺序排列。
var NoticeStyles = []string{"error", "info", "success", "warning"}

// NoticeSettings 是三项通知设置的原始存储值。
type NoticeSettings struct {
	Enabled string
	Message string
	Style   string
}

// StoredEnabled 按存储值的真假判断启用状态：空字符串和 "0" 视为关闭。
func (s NoticeSettings) StoredEnabled() bool {
	value := strings.TrimSpace(s.Enabled)
	return value != "" && value != "0"
}

// RegisterNoticeSettings 登记三项通知设置、设置分区与字段。应用启动时调用一次。
func RegisterNoticeSettings(options *OptionService) {
	options.Register(NoticeOptionGroup, db.OptionNoticeMessage, SanitizeRichText)
	options.Register(NoticeOptionGroup, db.OptionNoticeStyle, SanitizeEnum)
	options.Register(NoticeOptionGroup, db.OptionNoticeEnable, SanitizeEnum)

	options.AddSection(NoticeSettingsPage, NoticeSettingsSection, "Settings")
	options.AddField(NoticeSettingsPage, NoticeSettingsSection, db.OptionNoticeEnable, "Enable Notice")
	options.AddField(NoticeSettingsPage, NoticeSettingsSection, db.OptionNoticeMessage, "Message")
	options.AddField(NoticeSettingsPage, NoticeSettingsSection, db.OptionNoticeStyle, "Style")
}

// NoticeService 读取通知设置并渲染后台页面顶部的通知块。
type NoticeService struct {
	options *OptionService
	enable  *hook.Filter[bool]
	format  Formatter
}

// NewNoticeService 构造 NoticeService。enable 为 nil 时不应用任何过滤。
func NewNoticeService(options *OptionService, enable *hook.Filter[bool]) *NoticeService {
	if enable == nil {
		enable = hook.NewFilter[bool](hook.NoticeEnable)
	}
	return &NoticeService{
		options: options,
		enable:  enable,
		format:  AutoParagraph,
	}
}

// SetFormatter 替换段落格式化函数，主要面向测试场景。
func (s *NoticeService) SetFormatter(format Formatter) {
	if format == nil {
		s.format = AutoParagraph
		return
	}
	s.format = format
}

// Settings 读取三项通知设置，未设置的项为空字符串。
func (s *NoticeService) Settings() (NoticeSettings, error) {
	values, err := s.options.GetMany(db.OptionNoticeEnable, db.OptionNoticeMessage, db.OptionNoticeStyle)
	if err != nil {
		return NoticeSettings{}, fmt.Errorf("load notice settings: %w", err)
	}
	return NoticeSettings{
		Enabled: values[db.OptionNoticeEnable],
		Message: values[db.OptionNoticeMessage],
		Style:   values[db.OptionNoticeStyle],
	}, nil
}

// Render 生成当前请求要输出的通知块。启用状态先经过 admin_notice_enable 过滤链。
func (s *NoticeService) Render() (template.HTML, error) {
	settings, err := s.Settings()
	if err != nil {
		return "", err
	}
	enabled := s.enable.Apply(settings.StoredEnabled())
	return RenderNotice(settings, enabled, s.format)
}

var noticeTemplate = template.Must(template.New("notice").Parse(`<div class="{{.Class}}">{{.Body}}</div>`))

// NoticeClass 返回通知容器的 CSS class，样式值原样拼接。
func NoticeClass(style string) string {
	return noticeBaseClass + " notice-" + style
}

// RenderNotice 在 enabled 为真且消息非空时输出通知块，否则返回空内容。
// 消息依次经过清洗、自动分段、再次清洗。
func RenderNotice(settings NoticeSettings, enabled bool, format Formatter) (template.HTML, error) {
	if settings.Message == "" || !enabled {
		return "", nil
	}
	if format == nil {
		format = AutoParagraph
	}

	formatted, err := format(SanitizePost(settings.Message))
	if err != nil {
		return "", err
	}
	body := strings.TrimSpace(SanitizePost(formatted))

	var buf bytes.Buffer
	if err := noticeTemplate.Execute(&buf, struct {
		Class string
		Body  template.HTML
	}{
		Class: NoticeClass(settings.Style),
		Body:  template.HTML(body),
	}); err != nil {
		return "", fmt.Errorf("render notice: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// NoticeCSS 是每个后台页面 head 中输出的固定样式。
func NoticeCSS() template.HTML {
	return template.HTML(`<style>
.pime-admin-notice ul {
	list-style: disc;
	margin-left: 2em;
}

.pime-admin-notice blockquote p {
	padding-left: 0.75em;
	border-left: 2px solid #444;
	font-style: italic;
}

.pime-admin-notice p:empty {
	display: none;
}
</style>`)
}
