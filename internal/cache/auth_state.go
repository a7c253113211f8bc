package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hanbit-cms/internal/models"
)

// 인증 스냅샷 TTL. 사용자 비활성화/권한 변경은 최대 이 시간 내에 반영된다.
const authStateTTL = 10 * time.Minute

// UserAuthState 미들웨어용 사용자 인증 스냅샷
type UserAuthState struct {
	UserID             uint       `json:"user_id"`
	Username           string     `json:"username"`
	Role               string     `json:"role"`
	LegacyRoles        []string   `json:"legacy_roles,omitempty"`
	IsActive           bool       `json:"is_active"`
	TokenInvalidBefore *time.Time `json:"token_invalid_before,omitempty"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// GetUserAuthState 캐시에서 인증 스냅샷 조회
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool) {
	if !Enabled() {
		return nil, false
	}
	var state UserAuthState
	found, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !found {
		return nil, false
	}
	return &state, true
}

// SetUserAuthState 사용자 기준 인증 스냅샷 기록
func SetUserAuthState(ctx context.Context, user *models.User) {
	if user == nil || !Enabled() {
		return
	}
	state := &UserAuthState{
		UserID:             user.ID,
		Username:           user.Username,
		Role:               user.Role,
		LegacyRoles:        user.LegacyRoles,
		IsActive:           user.IsActive,
		TokenInvalidBefore: user.TokenInvalidBefore,
	}
	_ = SetJSON(ctx, userAuthStateKey(user.ID), state, authStateTTL)
}

// InvalidateUserAuthState 인증 스냅샷 삭제
func InvalidateUserAuthState(ctx context.Context, userID uint) {
	if !Enabled() {
		return
	}
	_ = Del(ctx, userAuthStateKey(userID))
}
