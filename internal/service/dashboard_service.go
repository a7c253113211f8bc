package service

import (
	"context"
	"time"

	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
)

const dashboardCacheKey = "dashboard:snapshot"

// DashboardService 대시보드 집계 서비스
type DashboardService struct {
	cfg      *config.Config
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewDashboardService 대시보드 서비스 생성
func NewDashboardService(cfg *config.Config, postRepo repository.PostRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{
		cfg:      cfg,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// DashboardTypeSection 유형별 대시보드 구획
type DashboardTypeSection struct {
	Total      int64               `json:"total"`
	Published  int64               `json:"published"`
	TotalViews int64               `json:"total_views"`
	Recent     []DashboardPostItem `json:"recent"`
	TopViewed  []DashboardPostItem `json:"top_viewed"`
	Categories map[string]int64    `json:"categories"`
}

// DashboardPostItem 대시보드 목록 항목. 본문은 싣지 않는다.
type DashboardPostItem struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	ViewCount   int64     `json:"view_count"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardSnapshot 대시보드 전체 스냅샷
type DashboardSnapshot struct {
	News        DashboardTypeSection `json:"news"`
	ESG         DashboardTypeSection `json:"esg"`
	TotalUsers  int64                `json:"total_users"`
	GeneratedAt time.Time            `json:"generated_at"`
}

func toDashboardItems(posts []models.Post) []DashboardPostItem {
	items := make([]DashboardPostItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, DashboardPostItem{
			ID:          p.ID,
			Slug:        p.Slug,
			Title:       p.TitleJSON.GetString(constants.LocaleKo),
			Category:    p.Category,
			IsPublished: p.IsPublished,
			ViewCount:   p.ViewCount,
			PublishDate: p.PublishDate,
			CreatedAt:   p.CreatedAt,
		})
	}
	return items
}

func (s *DashboardService) buildTypeSection(postType string) (DashboardTypeSection, error) {
	section := DashboardTypeSection{Categories: map[string]int64{}}

	total, err := s.postRepo.CountByType(postType, false)
	if err != nil {
		return section, err
	}
	published, err := s.postRepo.CountByType(postType, true)
	if err != nil {
		return section, err
	}
	views, err := s.postRepo.SumViewCount(postType)
	if err != nil {
		return section, err
	}
	recent, err := s.postRepo.Recent(postType, s.cfg.Dashboard.RecentLimit)
	if err != nil {
		return section, err
	}
	topViewed, err := s.postRepo.TopViewed(postType, s.cfg.Dashboard.TopViewedLimit)
	if err != nil {
		return section, err
	}
	rows, err := s.postRepo.CategoryCounts(postType)
	if err != nil {
		return section, err
	}

	section.Total = total
	section.Published = published
	section.TotalViews = views
	section.Recent = toDashboardItems(recent)
	section.TopViewed = toDashboardItems(topViewed)
	for _, row := range rows {
		section.Categories[row.Category] = row.Count
	}
	return section, nil
}

// Snapshot 대시보드 스냅샷 생성. 캐시 적중 시 캐시 값을 반환한다.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	var cached DashboardSnapshot
	if found, err := cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil && found {
		return &cached, nil
	}
	return s.Rebuild(ctx)
}

// Rebuild 캐시를 거치지 않고 스냅샷을 다시 만들어 캐시에 기록한다.
func (s *DashboardService) Rebuild(ctx context.Context) (*DashboardSnapshot, error) {
	news, err := s.buildTypeSection(constants.PostTypeNews)
	if err != nil {
		return nil, err
	}
	esg, err := s.buildTypeSection(constants.PostTypeESG)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		News:        news,
		ESG:         esg,
		TotalUsers:  totalUsers,
		GeneratedAt: time.Now(),
	}
	ttl := time.Duration(s.cfg.Dashboard.CacheTTLSeconds) * time.Second
	if ttl > 0 {
		_ = cache.SetJSON(ctx, dashboardCacheKey, snapshot, ttl)
	}
	return snapshot, nil
}
