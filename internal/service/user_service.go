package service

import (
	"context"
	"strings"
	"time"

	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
)

// UserService 사용자 관리 서비스
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService 사용자 서비스 생성
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// CreateUserInput 사용자 생성 입력
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Department  string
	Role        string
	IsActive    *bool
}

// UpdateUserInput 사용자 수정 입력. nil 필드는 기존 값을 유지한다.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	DisplayName *string
	Department  *string
	Role        *string
	IsActive    *bool
}

// EffectiveRole 역할 판정. 예약 관리자 계정은 저장된 역할과 무관하게 admin 으로 본다.
func EffectiveRole(username, role string, legacyRoles []string) string {
	if username == constants.SuperUsername {
		return constants.RoleAdmin
	}
	if isValidRole(role) {
		return role
	}
	// 구버전 데이터는 roles 배열만 갖는다. 첫 번째로 인식되는 항목을 택한다.
	for _, r := range legacyRoles {
		if isValidRole(r) {
			return r
		}
	}
	return constants.RoleViewer
}

func isValidRole(role string) bool {
	switch role {
	case constants.RoleAdmin, constants.RoleEditor, constants.RoleViewer:
		return true
	}
	return false
}

// List 사용자 목록 조회
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetByID 사용자 단건 조회
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Create 사용자 생성
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "required"
	}
	if email == "" {
		fields["email"] = "required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleViewer
	}
	if !isValidRole(role) {
		fields["role"] = "must be one of admin, editor, viewer"
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}
	existing, err = s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Department:   strings.TrimSpace(input.Department),
		Role:         role,
		IsActive:     isActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update 사용자 수정
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != "" && email != user.Email {
			existing, err := s.userRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, NewValidationError(map[string]string{"password": "must be at least 8 characters"})
		}
		hashed, err := s.auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user.PasswordHash = hashed
		user.TokenInvalidBefore = &now
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if input.Role != nil {
		role := strings.TrimSpace(*input.Role)
		if !isValidRole(role) {
			return nil, NewValidationError(map[string]string{"role": "must be one of admin, editor, viewer"})
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	// 역할/활성 상태 변경이 다음 요청부터 반영되도록 스냅샷을 비운다.
	cache.InvalidateUserAuthState(context.Background(), user.ID)
	return user, nil
}

// Delete 사용자 삭제. 첫 삭제는 true, 이미 없으면 false.
func (s *UserService) Delete(id uint) (bool, error) {
	deleted, err := s.userRepo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		cache.InvalidateUserAuthState(context.Background(), id)
	}
	return deleted, nil
}
