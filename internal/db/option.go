package db

import "gorm.io/gorm"

// Option 存储后台可配置的通用键值对，对应宿主的选项表。
type Option struct {
	gorm.Model
	Key   string `gorm:"size:191;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Option) TableName() string {
	return "options"
}

const (
	// OptionNoticeEnable 表示管理通知是否启用，存储为 "1" 或空字符串。
	OptionNoticeEnable = "pime_admin_notice_enable"
	// OptionNoticeMessage 表示管理通知的富文本内容。
	OptionNoticeMessage = "pime_admin_notice_msg"
	// OptionNoticeStyle 表示管理通知的样式名称。
	OptionNoticeStyle = "pime_admin_notice_style"
)
