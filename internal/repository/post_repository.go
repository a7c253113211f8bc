package repository

import (
	"errors"
	"strings"

	"github.com/hanbit-cms/internal/models"

	"gorm.io/gorm"
)

// PostRepository 게시물 데이터 접근 인터페이스
// 뉴스와 ESG는 단일 테이블에서 type 컬럼으로 구분한다.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(postType string, id uint) (*models.Post, error)
	GetBySlug(postType, slug string) (*models.Post, error)
	List(filter PostListFilter) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(postType string, id uint) (bool, error)
	CountBySlug(postType, slug string, excludeID uint) (int64, error)
	IncrementViewCount(postType string, id uint, delta int64) error
	CountByType(postType string, onlyPublished bool) (int64, error)
	SumViewCount(postType string) (int64, error)
	Recent(postType string, limit int) ([]models.Post, error)
	TopViewed(postType string, limit int) ([]models.Post, error)
	CategoryCounts(postType string) ([]PostCategoryCountRow, error)
}

// PostCategoryCountRow 카테고리별 게시물 수 집계 행
type PostCategoryCountRow struct {
	Category string
	Count    int64
}

// GormPostRepository GORM 구현
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 게시물 저장소 생성
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) byType(postType string) *gorm.DB {
	return r.db.Model(&models.Post{}).Where("type = ?", postType)
}

// Create 게시물 생성
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID 유형 + ID 기준 조회
func (r *GormPostRepository) GetByID(postType string, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("type = ?", postType).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug 유형 + 슬러그 기준 조회
func (r *GormPostRepository) GetBySlug(postType, slug string) (*models.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	var post models.Post
	if err := r.db.Where("type = ? AND slug = ?", postType, slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List 게시물 목록 조회
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if postType := strings.TrimSpace(filter.Type); postType != "" {
		query = query.Where("type = ?", postType)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title_json LIKE ? OR summary_json LIKE ? OR author_name LIKE ?", like, like, like)
	}
	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.MainFeaturedOnly {
		query = query.Where("is_main_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := strings.TrimSpace(filter.OrderBy)
	switch orderBy {
	case "view_count":
		query = query.Order("view_count DESC, id DESC")
	case "created_at":
		query = query.Order("created_at DESC, id DESC")
	default:
		query = query.Order("publish_date DESC, id DESC")
	}

	var posts []models.Post
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update 게시물 갱신
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete 게시물 삭제. 실제 삭제 여부를 반환한다.
func (r *GormPostRepository) Delete(postType string, id uint) (bool, error) {
	result := r.db.Where("type = ?", postType).Delete(&models.Post{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountBySlug 동일 유형 내 슬러그 중복 수 조회. excludeID 는 수정 시 자신 제외용.
// 소프트 삭제된 행도 (type, slug) 유니크 인덱스를 계속 차지하므로 Unscoped 로 센다.
func (r *GormPostRepository) CountBySlug(postType, slug string, excludeID uint) (int64, error) {
	query := r.db.Unscoped().Model(&models.Post{}).
		Where("type = ?", postType).
		Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

// IncrementViewCount 조회수 증가
func (r *GormPostRepository) IncrementViewCount(postType string, id uint, delta int64) error {
	if delta <= 0 {
		return nil
	}
	return r.byType(postType).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

// CountByType 유형별 게시물 수
func (r *GormPostRepository) CountByType(postType string, onlyPublished bool) (int64, error) {
	query := r.byType(postType)
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

// SumViewCount 유형별 누적 조회수 합계
func (r *GormPostRepository) SumViewCount(postType string) (int64, error) {
	var total int64
	err := r.byType(postType).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	return total, err
}

// Recent 최신 게시물 조회
func (r *GormPostRepository) Recent(postType string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 5
	}
	var posts []models.Post
	err := r.byType(postType).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// TopViewed 조회수 상위 게시물 조회
func (r *GormPostRepository) TopViewed(postType string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 5
	}
	var posts []models.Post
	err := r.byType(postType).
		Where("is_published = ?", true).
		Order("view_count DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// CategoryCounts 카테고리별 게시물 수 집계
func (r *GormPostRepository) CategoryCounts(postType string) ([]PostCategoryCountRow, error) {
	var rows []PostCategoryCountRow
	err := r.byType(postType).
		Select("category AS category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	return rows, err
}
