package models

import (
	"time"

	"gorm.io/gorm"
)

// User 관리자 패널 사용자 테이블
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // 기본 키
	Username           string         `gorm:"uniqueIndex;not null" json:"username"` // 로그인 아이디
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`    // 이메일
	PasswordHash       string         `gorm:"not null" json:"-"`                    // 비밀번호 해시 (응답 제외)
	DisplayName        string         `gorm:"default:''" json:"display_name"`       // 표시 이름
	Department         string         `gorm:"default:''" json:"department"`         // 부서
	Role               string         `gorm:"default:'viewer';index" json:"role"`   // 역할 (admin/editor/viewer)
	LegacyRoles        StringArray    `gorm:"type:json" json:"legacy_roles"`        // 구버전 역할 문자열 목록
	IsActive           bool           `gorm:"not null" json:"is_active"`            // 소프트 비활성화. false 도 그대로 저장되도록 DB 기본값을 두지 않는다.
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                       // 이 시각 이전 발급 토큰 무효
	LastLoginAt        *time.Time     `json:"last_login_at"`                        // 마지막 로그인 시각
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`              // 생성 시각
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`              // 수정 시각
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                       // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (User) TableName() string {
	return "users"
}
