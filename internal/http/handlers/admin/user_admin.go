package admin

import (
	"strconv"

	"github.com/hanbit-cms/internal/http/handlers/shared"
	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest 사용자 생성 요청
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateUserRequest 사용자 수정 요청. 생략된 필드는 유지된다.
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	DisplayName *string `json:"display_name"`
	Department  *string `json:"department"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"is_active"`
}

func adminUserPayload(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"department":   user.Department,
		"role":         service.EffectiveRole(user.Username, user.Role, user.LegacyRoles),
		"stored_role":  user.Role,
		"is_active":    user.IsActive,
		"last_login":   user.LastLoginAt,
		"created_at":   user.CreatedAt,
		"updated_at":   user.UpdatedAt,
	}
}

// GetUsers 사용자 목록 조회 (Admin)
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("search"),
		Role:     c.Query("role"),
	}
	if v := c.Query("is_active"); v == "true" || v == "false" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, total, err := h.UserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, adminUserPayload(&users[i]))
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// GetUser 사용자 단건 조회 (Admin)
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, adminUserPayload(user))
}

// CreateUser 사용자 생성 (Admin)
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.Create(service.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Department:  req.Department,
		Role:        req.Role,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_user_created",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role,
		"operator", shared.CurrentUsername(c),
	)
	response.Success(c, adminUserPayload(user))
}

// UpdateUser 사용자 수정 (Admin)
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.Update(id, service.UpdateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Department:  req.Department,
		Role:        req.Role,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, adminUserPayload(user))
}

// DeleteUser 사용자 삭제 (Admin). 본인 계정은 삭제할 수 없다.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	currentID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	if id == currentID {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	deleted, err := h.UserService.Delete(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
