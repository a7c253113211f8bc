package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) *GormUserRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate user failed: %v", err)
	}
	return NewUserRepository(db)
}

func createTestUser(t *testing.T, repo *GormUserRepository, username, email, role string, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		DisplayName:  "테스트 사용자",
		Role:         role,
		IsActive:     active,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestUserGetByUsernameNotFound(t *testing.T) {
	repo := setupUserRepositoryTest(t)
	user, err := repo.GetByUsername("missing-user")
	if err != nil {
		t.Fatalf("get by username failed: %v", err)
	}
	if user != nil {
		t.Fatalf("missing user want nil got %+v", user)
	}
}

func TestUserListFilters(t *testing.T) {
	repo := setupUserRepositoryTest(t)
	createTestUser(t, repo, "editor-kim", "kim@example.com", constants.RoleEditor, true)
	createTestUser(t, repo, "viewer-lee", "lee@example.com", constants.RoleViewer, true)
	inactive := false
	createTestUser(t, repo, "editor-park", "park@example.com", constants.RoleEditor, inactive)

	users, total, err := repo.List(UserListFilter{Page: 1, PageSize: 10, Role: constants.RoleEditor})
	if err != nil {
		t.Fatalf("list by role failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("editor total want 2 got %d", total)
	}

	active := true
	users, total, err = repo.List(UserListFilter{Page: 1, PageSize: 10, Role: constants.RoleEditor, IsActive: &active})
	if err != nil {
		t.Fatalf("list active editors failed: %v", err)
	}
	if total != 1 || users[0].Username != "editor-kim" {
		t.Fatalf("active editor want editor-kim got total=%d users=%+v", total, users)
	}
}

func TestUserDeleteIdempotent(t *testing.T) {
	repo := setupUserRepositoryTest(t)
	user := createTestUser(t, repo, "delete-me", "del@example.com", constants.RoleViewer, true)

	deleted, err := repo.Delete(user.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Fatalf("first delete want true")
	}
	deleted, err = repo.Delete(user.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Fatalf("second delete want false")
	}
}
