package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/adminnotice/internal/db"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownOptionGroup 表示提交的选项分组没有注册任何设置项。
var ErrUnknownOptionGroup = errors.New("unknown option group")

// SettingsField 是设置页面中的一行字段。
type SettingsField struct {
	ID    string
	Title string
}

// SettingsSection 把若干字段归入设置页面的一个分区。
type SettingsSection struct {
	ID     string
	Title  string
	Fields []SettingsField
}

// OptionService 是通用的键值选项存储：登记设置项及其清洗函数，并按分组保存表单提交。
type OptionService struct {
	db *gorm.DB

	mu       sync.RWMutex
	options  map[string]Sanitizer
	groups   map[string][]string
	sections map[string][]SettingsSection
}

// NewOptionService 构造 OptionService。
func NewOptionService(gdb *gorm.DB) *OptionService {
	return &OptionService{
		db:       gdb,
		options:  make(map[string]Sanitizer),
		groups:   make(map[string][]string),
		sections: make(map[string][]SettingsSection),
	}
}

// Register 把 key 登记到 group 中，使其可以通过通用保存入口写入。
// 重复登记只替换清洗函数，key 仍属于首次登记的分组。
func (s *OptionService) Register(group, key string, sanitize Sanitizer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.options[key]; !ok {
		s.groups[group] = append(s.groups[group], key)
	}
	s.options[key] = sanitize
}

// Keys 返回 group 中按登记顺序排列的选项名。
func (s *OptionService) Keys(group string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, len(s.groups[group]))
	copy(keys, s.groups[group])
	return keys
}

// AddSection 在设置页面 page 上追加一个分区。
func (s *OptionService) AddSection(page, id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[page] = append(s.sections[page], SettingsSection{ID: id, Title: title})
}

// AddField 向 page 的 section 分区追加字段，分区不存在时忽略。
func (s *OptionService) AddField(page, section, id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections := s.sections[page]
	for i := range sections {
		if sections[i].ID == section {
			sections[i].Fields = append(sections[i].Fields, SettingsField{ID: id, Title: title})
			return
		}
	}
	log.WithFields(log.Fields{"page": page, "section": section, "field": id}).Warn("settings field added to unknown section")
}

// Sections 返回 page 上的分区副本。
func (s *OptionService) Sections(page string) []SettingsSection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]SettingsSection, 0, len(s.sections[page]))
	for _, section := range s.sections[page] {
		fields := make([]SettingsField, len(section.Fields))
		copy(fields, section.Fields)
		result = append(result, SettingsSection{ID: section.ID, Title: section.Title, Fields: fields})
	}
	return result
}

// Get 读取单个选项，未设置时返回空字符串。
func (s *OptionService) Get(key string) (string, error) {
	var record db.Option
	err := s.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load option %s: %w", key, err)
	}
	return record.Value, nil
}

// GetMany 批量读取选项，结果包含每个请求的 key，未设置的为空字符串。
func (s *OptionService) GetMany(keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		result[key] = ""
	}
	if len(keys) == 0 {
		return result, nil
	}

	var records []db.Option
	if err := s.db.Where("key IN ?", keys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load options: %w", err)
	}
	for _, record := range records {
		result[record.Key] = record.Value
	}
	return result, nil
}

// Update 清洗并保存单个选项，返回实际存储的值。未登记的 key 原样保存。
func (s *OptionService) Update(key string, input *string) (string, error) {
	value := s.sanitize(key, input)
	if err := upsertOption(s.db, key, value); err != nil {
		return "", err
	}
	return value, nil
}

// SaveGroup 处理通用设置保存：group 中每个登记的 key 都会被写入，
// values 中缺失的 key 以 nil 交给清洗函数（例如未勾选的复选框）。
func (s *OptionService) SaveGroup(group string, values map[string]*string) (map[string]string, error) {
	keys := s.Keys(group)
	if len(keys) == 0 {
		return nil, fmt.Errorf("save option group %q: %w", group, ErrUnknownOptionGroup)
	}

	saved := make(map[string]string, len(keys))
	for _, key := range keys {
		saved[key] = s.sanitize(key, values[key])
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsertOption(tx, key, saved[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save option group %q: %w", group, err)
	}

	log.WithFields(log.Fields{"group": group, "keys": len(keys)}).Info("options saved")
	return saved, nil
}

func (s *OptionService) sanitize(key string, input *string) string {
	s.mu.RLock()
	sanitize := s.options[key]
	s.mu.RUnlock()

	if sanitize == nil {
		if input == nil {
			return ""
		}
		return *input
	}

	value := sanitize(input)
	if input != nil && *input != value {
		log.WithField("key", key).Debug("option value rewritten by sanitizer")
	}
	return value
}

func upsertOption(tx *gorm.DB, key, value string) error {
	option := db.Option{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&option).Error; err != nil {
		return fmt.Errorf("upsert option %s: %w", key, err)
	}
	return nil
}
