package service

import (
	"errors"
	"fmt"
	"strings"
)

// 서비스 공통 오류. 핸들러는 이 값들로 HTTP 상태를 결정한다.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidPostType    = errors.New("invalid post type")
	ErrSlugExists         = errors.New("slug already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
)

// ValidationError 필드 단위 검증 오류
type ValidationError struct {
	Fields map[string]string
}

// Error 오류 메시지 구성
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError 검증 오류 생성
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError 검증 오류 여부 판별
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
