package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/slug"
)

// PostService 게시물 업무 서비스. 뉴스/ESG 를 type 파라미터로 통합 처리한다.
type PostService struct {
	repo repository.PostRepository
}

// NewPostService 게시물 서비스 생성
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// CreatePostInput 게시물 생성 입력
type CreatePostInput struct {
	Slug             string
	Category         string
	TitleJSON        map[string]interface{}
	SummaryJSON      map[string]interface{}
	ContentJSON      map[string]interface{}
	AuthorName       string
	AuthorDepartment string
	AuthorID         *uint
	IsPublished      *bool
	IsMainFeatured   bool
	PublishDate      *time.Time
	Tags             []string
	ImageURL         string
	OriginalURL      string
}

// UpdatePostInput 게시물 부분 수정 입력. nil 필드는 기존 값을 유지한다.
type UpdatePostInput struct {
	Slug             *string
	Category         *string
	TitleJSON        map[string]interface{}
	SummaryJSON      map[string]interface{}
	ContentJSON      map[string]interface{}
	AuthorName       *string
	AuthorDepartment *string
	AuthorID         *uint
	IsPublished      *bool
	IsMainFeatured   *bool
	PublishDate      *time.Time
	Tags             []string
	ImageURL         *string
	OriginalURL      *string
	RegenerateSlug   bool
}

// PostTypeStats 유형별 게시물 통계
type PostTypeStats struct {
	Total      int64            `json:"total"`
	Published  int64            `json:"published"`
	Draft      int64            `json:"draft"`
	TotalViews int64            `json:"total_views"`
	Categories map[string]int64 `json:"categories"`
}

// IsAllowedPostType 지원 게시물 유형 여부
func IsAllowedPostType(postType string) bool {
	_, ok := constants.PostCategories[postType]
	return ok
}

func validateCategory(postType, category string) bool {
	if category == "" {
		return true
	}
	allowed, ok := constants.PostCategories[postType]
	if !ok {
		return false
	}
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}

func localizedText(m map[string]interface{}, locale string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[locale].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// ListAdmin 관리자 게시물 목록 조회
func (s *PostService) ListAdmin(postType string, filter repository.PostListFilter) ([]models.Post, int64, error) {
	if !IsAllowedPostType(postType) {
		return nil, 0, ErrInvalidPostType
	}
	filter.Type = postType
	return s.repo.List(filter)
}

// ListPublic 공개 게시물 목록 조회
// 저장소 장애 시 빈 목록으로 대체하고 원인을 기록한다. 공개 화면은 비는 편이 500 보다 낫다.
func (s *PostService) ListPublic(postType string, filter repository.PostListFilter) ([]models.Post, int64, error) {
	if !IsAllowedPostType(postType) {
		return nil, 0, ErrInvalidPostType
	}
	filter.Type = postType
	filter.OnlyPublished = true
	posts, total, err := s.repo.List(filter)
	if err != nil {
		logger.Errorw("공개 게시물 목록 조회 실패, 빈 목록으로 응답",
			"post_type", postType,
			"category", filter.Category,
			"page", filter.Page,
			"error", err,
		)
		return []models.Post{}, 0, nil
	}
	return posts, total, nil
}

// GetByID 관리자 게시물 단건 조회
func (s *PostService) GetByID(postType string, id uint) (*models.Post, error) {
	if !IsAllowedPostType(postType) {
		return nil, ErrInvalidPostType
	}
	post, err := s.repo.GetByID(postType, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetPublicBySlug 공개 게시물 슬러그 조회
func (s *PostService) GetPublicBySlug(postType, slugValue string) (*models.Post, error) {
	if !IsAllowedPostType(postType) {
		return nil, ErrInvalidPostType
	}
	post, err := s.repo.GetBySlug(postType, slugValue)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create 게시물 생성
// 슬러그 미지정 시 한국어 제목에서 파생하고, 파생 슬러그 충돌은 숫자 접미사로 해소한다.
// 직접 지정한 슬러그가 충돌하면 거부한다.
func (s *PostService) Create(postType string, input CreatePostInput) (*models.Post, error) {
	if !IsAllowedPostType(postType) {
		return nil, ErrInvalidPostType
	}
	if err := s.validateCreate(postType, input); err != nil {
		return nil, err
	}

	slugValue := strings.TrimSpace(input.Slug)
	explicit := slugValue != ""
	if !explicit {
		derived, err := s.deriveSlug(input.TitleJSON)
		if err != nil {
			return nil, err
		}
		slugValue = derived
	} else {
		slugValue = slug.Make(slugValue)
		if slugValue == "" {
			return nil, NewValidationError(map[string]string{"slug": "invalid slug"})
		}
	}

	count, err := s.repo.CountBySlug(postType, slugValue, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if explicit {
			return nil, ErrSlugExists
		}
		slugValue, err = s.disambiguateSlug(postType, slugValue)
		if err != nil {
			return nil, err
		}
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}
	publishDate := time.Now()
	if input.PublishDate != nil {
		publishDate = *input.PublishDate
	}

	post := models.Post{
		Type:             postType,
		Slug:             slugValue,
		Category:         input.Category,
		TitleJSON:        models.JSON(input.TitleJSON),
		SummaryJSON:      models.JSON(input.SummaryJSON),
		ContentJSON:      models.JSON(input.ContentJSON),
		AuthorName:       strings.TrimSpace(input.AuthorName),
		AuthorDepartment: strings.TrimSpace(input.AuthorDepartment),
		AuthorID:         input.AuthorID,
		IsPublished:      isPublished,
		IsMainFeatured:   input.IsMainFeatured,
		PublishDate:      publishDate,
		ViewCount:        0,
		Tags:             input.Tags,
		ImageURL:         strings.TrimSpace(input.ImageURL),
		OriginalURL:      strings.TrimSpace(input.OriginalURL),
	}
	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) validateCreate(postType string, input CreatePostInput) error {
	fields := map[string]string{}
	if localizedText(input.TitleJSON, constants.LocaleKo) == "" {
		fields["title.ko"] = "required"
	}
	if localizedText(input.ContentJSON, constants.LocaleKo) == "" && localizedText(input.ContentJSON, constants.LocaleEn) == "" {
		fields["content"] = "required"
	}
	if !validateCategory(postType, input.Category) {
		fields["category"] = "not allowed for this post type"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func (s *PostService) deriveSlug(title map[string]interface{}) (string, error) {
	source := localizedText(title, constants.LocaleKo)
	if source == "" {
		source = localizedText(title, constants.LocaleEn)
	}
	derived := slug.Make(source)
	if derived == "" {
		return "", NewValidationError(map[string]string{"slug": "cannot derive slug from title"})
	}
	return derived, nil
}

func (s *PostService) disambiguateSlug(postType, base string) (string, error) {
	for i := 2; i <= 50; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		count, err := s.repo.CountBySlug(postType, candidate, 0)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", ErrSlugExists
}

// Update 게시물 부분 수정
// 제목이 바뀌어도 슬러그는 유지한다. RegenerateSlug 명시 시에만 다시 파생한다.
func (s *PostService) Update(postType string, id uint, input UpdatePostInput) (*models.Post, error) {
	if !IsAllowedPostType(postType) {
		return nil, ErrInvalidPostType
	}
	post, err := s.repo.GetByID(postType, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if input.TitleJSON != nil {
		post.TitleJSON = models.JSON(input.TitleJSON)
	}
	if input.SummaryJSON != nil {
		post.SummaryJSON = models.JSON(input.SummaryJSON)
	}
	if input.ContentJSON != nil {
		post.ContentJSON = models.JSON(input.ContentJSON)
	}
	if input.Category != nil {
		if !validateCategory(postType, *input.Category) {
			return nil, NewValidationError(map[string]string{"category": "not allowed for this post type"})
		}
		post.Category = *input.Category
	}
	if input.AuthorName != nil {
		post.AuthorName = strings.TrimSpace(*input.AuthorName)
	}
	if input.AuthorDepartment != nil {
		post.AuthorDepartment = strings.TrimSpace(*input.AuthorDepartment)
	}
	if input.AuthorID != nil {
		post.AuthorID = input.AuthorID
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if input.IsMainFeatured != nil {
		post.IsMainFeatured = *input.IsMainFeatured
	}
	if input.PublishDate != nil {
		post.PublishDate = *input.PublishDate
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.OriginalURL != nil {
		post.OriginalURL = strings.TrimSpace(*input.OriginalURL)
	}

	newSlug := post.Slug
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		newSlug = slug.Make(*input.Slug)
	} else if input.RegenerateSlug {
		derived, err := s.deriveSlug(post.TitleJSON)
		if err != nil {
			return nil, err
		}
		newSlug = derived
	}
	if newSlug != post.Slug {
		count, err := s.repo.CountBySlug(postType, newSlug, post.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		post.Slug = newSlug
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 게시물 삭제. 첫 삭제는 true, 이미 없으면 false.
func (s *PostService) Delete(postType string, id uint) (bool, error) {
	if !IsAllowedPostType(postType) {
		return false, ErrInvalidPostType
	}
	return s.repo.Delete(postType, id)
}

// Stats 유형별 게시물 통계 집계
func (s *PostService) Stats(postType string) (*PostTypeStats, error) {
	if !IsAllowedPostType(postType) {
		return nil, ErrInvalidPostType
	}
	total, err := s.repo.CountByType(postType, false)
	if err != nil {
		return nil, err
	}
	published, err := s.repo.CountByType(postType, true)
	if err != nil {
		return nil, err
	}
	views, err := s.repo.SumViewCount(postType)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CategoryCounts(postType)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]int64, len(rows))
	for _, row := range rows {
		categories[row.Category] = row.Count
	}
	return &PostTypeStats{
		Total:      total,
		Published:  published,
		Draft:      total - published,
		TotalViews: views,
		Categories: categories,
	}, nil
}

// IncrementViewCount 조회수 증가
func (s *PostService) IncrementViewCount(postType string, id uint, delta int64) error {
	if !IsAllowedPostType(postType) {
		return ErrInvalidPostType
	}
	return s.repo.IncrementViewCount(postType, id, delta)
}
