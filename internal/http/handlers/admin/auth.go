package admin

import (
	"github.com/hanbit-cms/internal/http/handlers/shared"
	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 로그인 요청
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 토큰 갱신 요청
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 비밀번호 변경 요청
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"department":   user.Department,
		"role":         service.EffectiveRole(user.Username, user.Role, user.LegacyRoles),
		"is_active":    user.IsActive,
		"last_login":   user.LastLoginAt,
	}
}

func tokenPayload(user *models.User, pair *service.TokenPair) gin.H {
	return gin.H{
		"access_token":       pair.AccessToken,
		"refresh_token":      pair.RefreshToken,
		"access_expires_at":  pair.AccessExpiresAt,
		"refresh_expires_at": pair.RefreshExpiresAt,
		"user":               userPayload(user),
	}
}

// Login 관리자 로그인
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, pair, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("admin_login",
		"user_id", user.ID,
		"username", user.Username,
		"client_ip", c.ClientIP(),
	)
	response.Success(c, tokenPayload(user, pair))
}

// Refresh 리프레시 토큰으로 새 토큰 쌍 발급
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, pair, err := h.AuthService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tokenPayload(user, pair))
}

// Me 현재 사용자 조회
func (h *Handler) Me(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, userPayload(user))
}

// ChangePassword 본인 비밀번호 변경
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
