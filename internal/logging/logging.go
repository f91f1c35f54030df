package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup 配置全局 logrus 日志：解析日志级别，并在指定文件时追加按大小滚动的文件输出。
func Setup(level, file string) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	lvl := log.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		parsed, err := log.ParseLevel(trimmed)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", trimmed, err)
		}
		lvl = parsed
	}
	log.SetLevel(lvl)

	path := strings.TrimSpace(file)
	if path == "" {
		log.SetOutput(os.Stdout)
		return nil
	}

	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}))
	return nil
}
