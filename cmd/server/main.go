package main

import (
	"github.com/adminnotice/internal/config"
	"github.com/adminnotice/internal/db"
	"github.com/adminnotice/internal/handler"
	"github.com/adminnotice/internal/hook"
	"github.com/adminnotice/internal/logging"
	"github.com/adminnotice/internal/router"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.EnsureUser(gdb, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		log.Fatalf("failed to ensure super root user: %v", err)
	}

	api := handler.NewAPI(gdb, hook.NewRegistry())

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	log.WithFields(log.Fields{"addr": cfg.ListenAddr, "database": cfg.DatabasePath}).Info("admin notice server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
