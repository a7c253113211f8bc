package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/slug"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPostServiceTest(t *testing.T) *PostService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		t.Fatalf("migrate post failed: %v", err)
	}
	return NewPostService(repository.NewPostRepository(db))
}

func TestPostCreateDefaultsAndDeleteLifecycle(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "테스트 뉴스"},
		ContentJSON: map[string]interface{}{"ko": "본문입니다"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !post.IsPublished {
		t.Fatalf("is_published default want true")
	}
	if post.ViewCount != 0 {
		t.Fatalf("view_count default want 0 got %d", post.ViewCount)
	}
	if post.Slug == "" || !slug.IsValid(post.Slug) {
		t.Fatalf("derived slug invalid: %q", post.Slug)
	}

	deleted, err := svc.Delete(constants.PostTypeNews, post.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Fatalf("first delete want true")
	}
	deleted, err = svc.Delete(constants.PostTypeNews, post.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Fatalf("second delete want false")
	}
}

func TestPostCreateRequiresKoreanTitle(t *testing.T) {
	svc := setupPostServiceTest(t)

	_, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Category:    "company",
		TitleJSON:   map[string]interface{}{"en": "English Only"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error got %v", err)
	}
	if _, found := ve.Fields["title.ko"]; !found {
		t.Fatalf("want title.ko field error got %v", ve.Fields)
	}
}

func TestPostCreateRejectsWrongCategory(t *testing.T) {
	svc := setupPostServiceTest(t)

	// environment 는 ESG 전용 카테고리다.
	_, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Category:    "environment",
		TitleJSON:   map[string]interface{}{"ko": "뉴스 제목"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error got %v", err)
	}
}

func TestPostCreateExplicitSlugDuplicateRejected(t *testing.T) {
	svc := setupPostServiceTest(t)

	_, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug:        "company-news",
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "첫 번째 뉴스"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err = svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug:        "company-news",
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "두 번째 뉴스"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != ErrSlugExists {
		t.Fatalf("want ErrSlugExists got %v", err)
	}
}

func TestPostRecreateAfterDeleteAvoidsSlugCollision(t *testing.T) {
	svc := setupPostServiceTest(t)

	input := CreatePostInput{
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "테스트 뉴스"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	}
	first, err := svc.Create(constants.PostTypeNews, input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if deleted, err := svc.Delete(constants.PostTypeNews, first.ID); err != nil || !deleted {
		t.Fatalf("delete failed: deleted=%v err=%v", deleted, err)
	}

	// 소프트 삭제된 행이 (type, slug) 인덱스를 계속 차지해도 재작성은 성공해야 한다.
	second, err := svc.Create(constants.PostTypeNews, input)
	if err != nil {
		t.Fatalf("recreate after delete failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Fatalf("recreated slug %q must differ from deleted post's slug", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, first.Slug+"-") {
		t.Fatalf("recreated slug %q want %q with numeric suffix", second.Slug, first.Slug)
	}

	// 명시 슬러그는 삭제된 게시물의 슬러그와도 충돌로 본다.
	_, err = svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug:        first.Slug,
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "명시 슬러그"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != ErrSlugExists {
		t.Fatalf("explicit slug of deleted post want ErrSlugExists got %v", err)
	}
}

func TestPostCreateDerivedSlugDisambiguated(t *testing.T) {
	svc := setupPostServiceTest(t)

	first, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "같은 제목", "en": "Same Title"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "같은 제목", "en": "Same Title"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.Slug == second.Slug {
		t.Fatalf("derived slug collision not disambiguated: %q", second.Slug)
	}
}

func TestPostUpdateKeepsSlugOnTitleChange(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug:        "stable-url",
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "원래 제목"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(constants.PostTypeNews, post.ID, UpdatePostInput{
		TitleJSON: map[string]interface{}{"ko": "완전히 바뀐 제목"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "stable-url" {
		t.Fatalf("slug must stay stable, got %q", updated.Slug)
	}
	if updated.TitleJSON.GetString("ko") != "완전히 바뀐 제목" {
		t.Fatalf("title not updated: %v", updated.TitleJSON)
	}
}

func TestPostUpdateRegenerateSlugExplicit(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug:        "old-slug",
		Category:    "company",
		TitleJSON:   map[string]interface{}{"ko": "제목", "en": "New English Title"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(constants.PostTypeNews, post.ID, UpdatePostInput{
		TitleJSON:      map[string]interface{}{"ko": "새 제목", "en": "Brand New Title"},
		RegenerateSlug: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug == "old-slug" {
		t.Fatalf("slug should regenerate on explicit request")
	}
	if !slug.IsValid(updated.Slug) {
		t.Fatalf("regenerated slug invalid: %q", updated.Slug)
	}
}

func TestPostStats(t *testing.T) {
	svc := setupPostServiceTest(t)

	published := true
	draft := false
	if _, err := svc.Create(constants.PostTypeESG, CreatePostInput{
		Slug: "stats-env", Category: "environment",
		TitleJSON:   map[string]interface{}{"ko": "환경 보고"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
		IsPublished: &published,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(constants.PostTypeESG, CreatePostInput{
		Slug: "stats-social", Category: "social",
		TitleJSON:   map[string]interface{}{"ko": "사회 공헌"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
		IsPublished: &draft,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := svc.Stats(constants.PostTypeESG)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Published != 1 || stats.Draft != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Categories["environment"] != 1 || stats.Categories["social"] != 1 {
		t.Fatalf("unexpected category stats: %+v", stats.Categories)
	}
}

func TestPostInvalidTypeRejected(t *testing.T) {
	svc := setupPostServiceTest(t)

	if _, err := svc.GetByID("blog", 1); err != ErrInvalidPostType {
		t.Fatalf("want ErrInvalidPostType got %v", err)
	}
	if _, _, err := svc.ListAdmin("blog", repository.PostListFilter{}); err != ErrInvalidPostType {
		t.Fatalf("want ErrInvalidPostType got %v", err)
	}
}

func TestPostGetPublicBySlugHidesDrafts(t *testing.T) {
	svc := setupPostServiceTest(t)

	draft := false
	if _, err := svc.Create(constants.PostTypeNews, CreatePostInput{
		Slug: "hidden-draft", Category: "company",
		TitleJSON:   map[string]interface{}{"ko": "비공개 글"},
		ContentJSON: map[string]interface{}{"ko": "본문"},
		IsPublished: &draft,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetPublicBySlug(constants.PostTypeNews, "hidden-draft"); err != ErrNotFound {
		t.Fatalf("draft must not be publicly visible, got %v", err)
	}
}
