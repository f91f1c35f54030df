package main

import (
	"flag"
	"fmt"

	"github.com/adminnotice/internal/config"
	"github.com/adminnotice/internal/db"
	log "github.com/sirupsen/logrus"
)

// 创建后台账号
func main() {
	username := flag.String("username", "admin", "login name")
	password := flag.String("password", "", "login password")
	role := flag.String("role", db.RoleAdministrator, "administrator or editor")
	flag.Parse()

	if *password == "" {
		log.Fatal("必须通过 -password 指定密码")
	}

	cfg := config.Load()
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	var count int64
	gdb.Model(&db.User{}).Where("username = ?", *username).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，无需初始化")
		return
	}

	user, err := db.CreateUser(gdb, *username, *password, *role)
	if err != nil {
		log.Fatal("创建用户失败:", err)
	}

	fmt.Println("后台用户创建成功")
	fmt.Println("用户名:", user.Username)
	fmt.Println("角色:", user.Role)
}
