package db

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// RoleAdministrator 拥有全部后台能力。
	RoleAdministrator = "administrator"
	// RoleEditor 只能浏览后台页面。
	RoleEditor = "editor"
)

// User 定义了后台操作员模型
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"size:32;not null;default:administrator"`
}

// ErrUnknownRole 表示账号角色不在已知角色之内。
var ErrUnknownRole = errors.New("unknown role")

// CreateUser 以 bcrypt 哈希保存新账号，role 为空时视为管理员。
func CreateUser(gdb *gorm.DB, username, password, role string) (*User, error) {
	if gdb == nil {
		return nil, errors.New("database not initialized")
	}

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	switch role = strings.TrimSpace(role); role {
	case "":
		role = RoleAdministrator
	case RoleAdministrator, RoleEditor:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{Username: username, Password: string(hashed), Role: role}
	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个管理员。
func EnsureUser(gdb *gorm.DB, username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		_, err = CreateUser(gdb, trimmedUser, trimmedPassword, RoleAdministrator)
		return err
	}

	return nil
}
