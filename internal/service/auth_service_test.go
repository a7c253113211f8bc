package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *UserService, repository.UserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate user failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service"
	cfg.JWT.AccessExpireHours = 2
	cfg.JWT.RefreshExpireDays = 14

	userRepo := repository.NewUserRepository(db)
	auth := NewAuthService(cfg, userRepo)
	users := NewUserService(userRepo, auth)
	return auth, users, userRepo
}

func createAuthTestUser(t *testing.T, users *UserService, username, password, role string, active bool) *models.User {
	t.Helper()
	user, err := users.Create(CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		Role:     role,
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestLoginIssuesTokenPair(t *testing.T) {
	auth, users, _ := setupAuthServiceTest(t)
	createAuthTestUser(t, users, "editor-kim", "password123", constants.RoleEditor, true)

	user, pair, err := auth.Login("editor-kim", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("token pair incomplete: %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh token must differ")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login not recorded")
	}

	claims, err := auth.ParseToken(pair.AccessToken, constants.TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.Username != "editor-kim" || claims.Role != constants.RoleEditor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.UserID == 0 || claims.UID != claims.UserID {
		t.Fatalf("user id claims mismatch: %+v", claims)
	}
}

func TestLoginRejectsBadCredentialsAndDisabled(t *testing.T) {
	auth, users, _ := setupAuthServiceTest(t)
	createAuthTestUser(t, users, "editor-kim", "password123", constants.RoleEditor, true)
	createAuthTestUser(t, users, "left-company", "password123", constants.RoleEditor, false)

	if _, _, err := auth.Login("editor-kim", "wrong-password"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, err := auth.Login("no-such-user", "password123"); err != ErrInvalidCredentials {
		t.Fatalf("missing user want ErrInvalidCredentials got %v", err)
	}
	if _, _, err := auth.Login("left-company", "password123"); err != ErrUserDisabled {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestParseTokenTypeDiscrimination(t *testing.T) {
	auth, users, _ := setupAuthServiceTest(t)
	createAuthTestUser(t, users, "editor-kim", "password123", constants.RoleEditor, true)

	_, pair, err := auth.Login("editor-kim", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 리프레시 토큰을 액세스 자리에 넣으면 거부되어야 한다. 반대도 같다.
	if _, err := auth.ParseToken(pair.RefreshToken, constants.TokenTypeAccess); err != ErrInvalidToken {
		t.Fatalf("refresh-as-access want ErrInvalidToken got %v", err)
	}
	if _, err := auth.ParseToken(pair.AccessToken, constants.TokenTypeRefresh); err != ErrInvalidToken {
		t.Fatalf("access-as-refresh want ErrInvalidToken got %v", err)
	}
}

func TestParseTokenUniformRejection(t *testing.T) {
	auth, _, _ := setupAuthServiceTest(t)

	cases := []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
	}
	for _, tokenString := range cases {
		if _, err := auth.ParseToken(tokenString, constants.TokenTypeAccess); err != ErrInvalidToken {
			t.Fatalf("token %q want ErrInvalidToken got %v", tokenString, err)
		}
	}
}

func TestRefreshIssuesNewPairAndChecksUserState(t *testing.T) {
	auth, users, _ := setupAuthServiceTest(t)
	user := createAuthTestUser(t, users, "editor-kim", "password123", constants.RoleEditor, true)

	_, pair, err := auth.Login("editor-kim", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, newPair, err := auth.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.ID != user.ID {
		t.Fatalf("refreshed user mismatch: want %d got %d", user.ID, refreshed.ID)
	}
	if newPair.AccessToken == "" || newPair.RefreshToken == "" {
		t.Fatalf("refresh pair incomplete: %+v", newPair)
	}

	// 비활성화된 사용자는 리프레시가 막힌다.
	inactive := false
	if _, err := users.Update(user.ID, UpdateUserInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, _, err := auth.Refresh(newPair.RefreshToken); err != ErrUserDisabled {
		t.Fatalf("disabled refresh want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	auth, users, repo := setupAuthServiceTest(t)
	user := createAuthTestUser(t, users, "editor-kim", "password123", constants.RoleEditor, true)

	_, pair, err := auth.Login("editor-kim", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := auth.ChangePassword(user.ID, "wrong-old", "newpassword123"); err != ErrInvalidPassword {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := auth.ChangePassword(user.ID, "password123", "newpassword123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	stored, err := repo.GetByID(user.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.TokenInvalidBefore == nil {
		t.Fatalf("token invalidation marker not set")
	}
	if _, _, err := auth.Refresh(pair.RefreshToken); err != ErrInvalidToken {
		t.Fatalf("stale refresh token want ErrInvalidToken got %v", err)
	}

	if _, _, err := auth.Login("editor-kim", "newpassword123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestEffectiveRoleOverrideAndLegacyRoles(t *testing.T) {
	if got := EffectiveRole(constants.SuperUsername, constants.RoleViewer, nil); got != constants.RoleAdmin {
		t.Fatalf("admin username override want admin got %q", got)
	}
	if got := EffectiveRole("kim", constants.RoleEditor, nil); got != constants.RoleEditor {
		t.Fatalf("plain role want editor got %q", got)
	}
	// 구버전 roles 배열은 첫 항목이 이긴다. 뒤쪽의 admin 으로 승격되면 안 된다.
	if got := EffectiveRole("kim", "", []string{"viewer", "admin"}); got != constants.RoleViewer {
		t.Fatalf("legacy roles want first entry viewer got %q", got)
	}
	if got := EffectiveRole("kim", "", []string{"unknown", "editor", "admin"}); got != constants.RoleEditor {
		t.Fatalf("legacy roles want first recognized editor got %q", got)
	}
	if got := EffectiveRole("kim", "", nil); got != constants.RoleViewer {
		t.Fatalf("no role data want viewer got %q", got)
	}
}
