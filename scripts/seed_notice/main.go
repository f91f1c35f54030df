package main

import (
	"flag"
	"fmt"

	"github.com/adminnotice/internal/config"
	"github.com/adminnotice/internal/db"
	"github.com/adminnotice/internal/service"
	log "github.com/sirupsen/logrus"
)

// 写入一条示例通知，便于本地查看后台效果
func main() {
	message := flag.String("message", "<strong>Maintenance</strong> tonight from 22:00.\n\nPlease save your work.", "notice message")
	style := flag.String("style", "warning", "error, info, success or warning")
	disable := flag.Bool("disable", false, "store the notice disabled")
	flag.Parse()

	cfg := config.Load()
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	options := service.NewOptionService(gdb)
	service.RegisterNoticeSettings(options)

	values := map[string]*string{
		db.OptionNoticeMessage: message,
		db.OptionNoticeStyle:   style,
	}
	if !*disable {
		enabled := "1"
		values[db.OptionNoticeEnable] = &enabled
	}

	saved, err := options.SaveGroup(service.NoticeOptionGroup, values)
	if err != nil {
		log.Fatal("写入通知失败:", err)
	}

	fmt.Println("示例通知写入完成")
	for _, key := range options.Keys(service.NoticeOptionGroup) {
		fmt.Printf("%s = %q\n", key, saved[key])
	}
}
