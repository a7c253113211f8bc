package service

import (
	"context"
	"strings"
	"time"

	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 인증 서비스
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService 인증 서비스 생성
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// HashPassword bcrypt 비밀번호 해시
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 비밀번호 검증
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims JWT 클레임
// uid 필드는 기존 토큰 소비자와의 호환을 위해 user_id 와 같은 값을 담는다.
type JWTClaims struct {
	UserID      uint     `json:"user_id"`
	UID         uint     `json:"uid"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	LegacyRoles []string `json:"legacy_roles,omitempty"`
	TokenType   string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair 액세스/리프레시 토큰 쌍
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// IssueTokenPair 사용자 기준 토큰 쌍 발급
func (s *AuthService) IssueTokenPair(user *models.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiresAt := now.Add(time.Duration(s.cfg.JWT.AccessExpireHours) * time.Hour)
	refreshExpiresAt := now.Add(time.Duration(s.cfg.JWT.RefreshExpireDays) * 24 * time.Hour)

	accessToken, err := s.signToken(user, constants.TokenTypeAccess, now, accessExpiresAt)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signToken(user, constants.TokenTypeRefresh, now, refreshExpiresAt)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := JWTClaims{
		UserID:      user.ID,
		UID:         user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		LegacyRoles: user.LegacyRoles,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

// ParseToken JWT 파싱 및 유형 검증
// 서명 불일치, 만료, 유형 불일치, 형식 오류를 모두 같은 오류로 돌려준다.
func (s *AuthService) ParseToken(tokenString, expectedType string) (*JWTClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 && claims.UID != 0 {
		claims.UserID = claims.UID
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 사용자명/비밀번호 검증 후 토큰 쌍 발급
func (s *AuthService) Login(username, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrUserDisabled
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, err
	}
	cache.SetUserAuthState(context.Background(), user)

	return user, pair, nil
}

// Refresh 리프레시 토큰으로 새 토큰 쌍 발급
// 사용자 상태는 저장소에서 다시 확인한다.
func (s *AuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	claims, err := s.ParseToken(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, nil, ErrUserDisabled
	}
	if user.TokenInvalidBefore != nil && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(*user.TokenInvalidBefore) {
		return nil, nil, ErrInvalidToken
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	cache.SetUserAuthState(context.Background(), user)
	return user, pair, nil
}

// ChangePassword 본인 비밀번호 변경
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if len(newPassword) < 8 {
		return NewValidationError(map[string]string{"new_password": "must be at least 8 characters"})
	}

	hashed, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = hashed
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	cache.InvalidateUserAuthState(context.Background(), user.ID)
	return nil
}
