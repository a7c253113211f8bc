package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthMiddlewareTest(t *testing.T) (*service.AuthService, repository.UserRepository, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate user failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "middleware-test-secret"
	cfg.JWT.AccessExpireHours = 1
	cfg.JWT.RefreshExpireDays = 7

	userRepo := repository.NewUserRepository(db)
	auth := service.NewAuthService(cfg, userRepo)

	r := gin.New()
	authed := r.Group("/admin", JWTAuthMiddleware(cfg.JWT.SecretKey, userRepo))
	authed.GET("/read", RequireRoles(constants.RoleAdmin, constants.RoleEditor, constants.RoleViewer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	authed.GET("/admin-only", RequireRoles(constants.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return auth, userRepo, r
}

func createMiddlewareTestUser(t *testing.T, repo repository.UserRepository, username, role string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func doAuthedRequest(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingTokenReturns401(t *testing.T) {
	_, _, r := setupAuthMiddlewareTest(t)

	w := doAuthedRequest(t, r, "/admin/read", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token want 401 got %d", w.Code)
	}
}

func TestAuthMalformedTokenReturns401(t *testing.T) {
	_, _, r := setupAuthMiddlewareTest(t)

	w := doAuthedRequest(t, r, "/admin/read", "not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token want 401 got %d", w.Code)
	}
}

func TestAuthRefreshTokenRejectedAsAccess(t *testing.T) {
	auth, repo, r := setupAuthMiddlewareTest(t)
	user := createMiddlewareTestUser(t, repo, "editor-kim", constants.RoleEditor, true)

	pair, err := auth.IssueTokenPair(user)
	if err != nil {
		t.Fatalf("issue tokens failed: %v", err)
	}

	w := doAuthedRequest(t, r, "/admin/read", pair.RefreshToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token as access want 401 got %d", w.Code)
	}
}

func TestRoleGuard401Versus403(t *testing.T) {
	auth, repo, r := setupAuthMiddlewareTest(t)
	viewer := createMiddlewareTestUser(t, repo, "viewer-lee", constants.RoleViewer, true)

	pair, err := auth.IssueTokenPair(viewer)
	if err != nil {
		t.Fatalf("issue tokens failed: %v", err)
	}

	// 유효한 토큰 + 부족한 권한은 403. 토큰 없음은 401. 이 둘은 상태줄로 구분된다.
	w := doAuthedRequest(t, r, "/admin/read", pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("viewer read want 200 got %d", w.Code)
	}
	w = doAuthedRequest(t, r, "/admin/admin-only", pair.AccessToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("viewer admin-only want 403 got %d", w.Code)
	}
	w = doAuthedRequest(t, r, "/admin/admin-only", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token admin-only want 401 got %d", w.Code)
	}
}

func TestAdminUsernameRoleOverride(t *testing.T) {
	auth, repo, r := setupAuthMiddlewareTest(t)
	// 예약 관리자 계정은 저장된 역할이 viewer 여도 admin 으로 동작한다.
	superUser := createMiddlewareTestUser(t, repo, constants.SuperUsername, constants.RoleViewer, true)

	pair, err := auth.IssueTokenPair(superUser)
	if err != nil {
		t.Fatalf("issue tokens failed: %v", err)
	}

	w := doAuthedRequest(t, r, "/admin/admin-only", pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("admin username override want 200 got %d", w.Code)
	}
}

func TestAuthDisabledUserRejected(t *testing.T) {
	auth, repo, r := setupAuthMiddlewareTest(t)
	disabled := createMiddlewareTestUser(t, repo, "left-company", constants.RoleEditor, false)

	pair, err := auth.IssueTokenPair(disabled)
	if err != nil {
		t.Fatalf("issue tokens failed: %v", err)
	}

	w := doAuthedRequest(t, r, "/admin/read", pair.AccessToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled user want 401 got %d", w.Code)
	}
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}
