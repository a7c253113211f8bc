package models

import (
	"strings"

	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 기본 관리자 계정 초기화
// 사용자 테이블이 비어 있을 때만 생성한다.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = constants.SuperUsername
	}
	if password == "" {
		password = "admin1234"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		Email:        username + "@hanbit.local",
		PasswordHash: string(hash),
		DisplayName:  "관리자",
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if strings.EqualFold(password, "admin1234") {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
