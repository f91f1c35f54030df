package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adminnotice/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOptionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:options-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Option{}); err != nil {
		t.Fatalf("failed to migrate options: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestOptionServiceGetMissingReturnsEmpty(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))

	value, err := svc.Get("missing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}

	values, err := svc.GetMany("a", "b")
	if err != nil {
		t.Fatalf("get many failed: %v", err)
	}
	if len(values) != 2 || values["a"] != "" || values["b"] != "" {
		t.Fatalf("expected empty values for every key, got %#v", values)
	}
}

func TestOptionServiceUpdateSanitizesRegisteredKeys(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))
	svc.Register("group", "style", SanitizeEnum)

	saved, err := svc.Update("style", strPtr("<b>warning</b>"))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saved != "warning" {
		t.Fatalf("expected sanitized value, got %q", saved)
	}

	saved, err = svc.Update("style", strPtr("error"))
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	stored, err := svc.Get("style")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != "error" || saved != "error" {
		t.Fatalf("expected upsert to overwrite value, got stored=%q saved=%q", stored, saved)
	}

	raw, err := svc.Update("free", strPtr("<b>raw</b>"))
	if err != nil {
		t.Fatalf("update unregistered failed: %v", err)
	}
	if raw != "<b>raw</b>" {
		t.Fatalf("expected unregistered key to be stored verbatim, got %q", raw)
	}
}

func TestOptionServiceSaveGroup(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))
	svc.Register("notice", "msg", SanitizeRichText)
	svc.Register("notice", "enable", SanitizeEnum)
	svc.Register("other", "unrelated", SanitizeEnum)

	saved, err := svc.SaveGroup("notice", map[string]*string{
		"msg":       strPtr("<strong>hi</strong><script>x</script>"),
		"unrelated": strPtr("ignored"),
	})
	if err != nil {
		t.Fatalf("save group failed: %v", err)
	}
	if saved["msg"] != "<strong>hi</strong>" {
		t.Fatalf("expected sanitized message, got %q", saved["msg"])
	}
	if saved["enable"] != "" {
		t.Fatalf("expected missing checkbox to store empty string, got %q", saved["enable"])
	}
	if _, ok := saved["unrelated"]; ok {
		t.Fatal("expected keys outside the group to be ignored")
	}

	values, err := svc.GetMany("msg", "enable", "unrelated")
	if err != nil {
		t.Fatalf("get many failed: %v", err)
	}
	if values["msg"] != "<strong>hi</strong>" || values["enable"] != "" || values["unrelated"] != "" {
		t.Fatalf("unexpected stored values %#v", values)
	}

	var count int64
	svc.db.Model(&db.Option{}).Where("key = ?", "enable").Count(&count)
	if count != 1 {
		t.Fatalf("expected empty checkbox value to be persisted, found %d rows", count)
	}
}

func TestOptionServiceSaveUnknownGroup(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))

	_, err := svc.SaveGroup("missing", nil)
	if !errors.Is(err, ErrUnknownOptionGroup) {
		t.Fatalf("expected ErrUnknownOptionGroup, got %v", err)
	}
}

func TestOptionServiceRegisterKeepsFirstGroup(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))
	svc.Register("a", "key", SanitizeEnum)
	svc.Register("b", "key", SanitizeRichText)

	if keys := svc.Keys("a"); len(keys) != 1 || keys[0] != "key" {
		t.Fatalf("expected key to stay in group a, got %#v", keys)
	}
	if keys := svc.Keys("b"); len(keys) != 0 {
		t.Fatalf("expected group b to stay empty, got %#v", keys)
	}
}

func TestOptionServiceSections(t *testing.T) {
	svc := NewOptionService(setupOptionTestDB(t))
	svc.AddSection("page", "main", "Settings")
	svc.AddField("page", "main", "one", "One")
	svc.AddField("page", "main", "two", "Two")
	svc.AddField("page", "missing", "three", "Three")

	sections := svc.Sections("page")
	if len(sections) != 1 {
		t.Fatalf("expected one section, got %d", len(sections))
	}
	if len(sections[0].Fields) != 2 || sections[0].Fields[0].ID != "one" || sections[0].Fields[1].ID != "two" {
		t.Fatalf("unexpected fields %#v", sections[0].Fields)
	}

	sections[0].Fields[0].Title = "mutated"
	if svc.Sections("page")[0].Fields[0].Title != "One" {
		t.Fatal("expected Sections to return a copy")
	}
}
