package admin

import (
	"strconv"
	"time"

	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePostRequest 게시물 생성 요청
type CreatePostRequest struct {
	Slug             string                 `json:"slug"`
	Category         string                 `json:"category"`
	Title            map[string]interface{} `json:"title" binding:"required"`
	Summary          map[string]interface{} `json:"summary"`
	Content          map[string]interface{} `json:"content" binding:"required"`
	AuthorName       string                 `json:"author_name"`
	AuthorDepartment string                 `json:"author_department"`
	AuthorID         *uint                  `json:"author_id"`
	IsPublished      *bool                  `json:"is_published"`
	IsMainFeatured   bool                   `json:"is_main_featured"`
	PublishDate      *time.Time             `json:"publish_date"`
	Tags             []string               `json:"tags"`
	ImageURL         string                 `json:"image_url"`
	OriginalURL      string                 `json:"original_url"`
}

// UpdatePostRequest 게시물 부분 수정 요청. 생략된 필드는 유지된다.
type UpdatePostRequest struct {
	Slug             *string                `json:"slug"`
	Category         *string                `json:"category"`
	Title            map[string]interface{} `json:"title"`
	Summary          map[string]interface{} `json:"summary"`
	Content          map[string]interface{} `json:"content"`
	AuthorName       *string                `json:"author_name"`
	AuthorDepartment *string                `json:"author_department"`
	AuthorID         *uint                  `json:"author_id"`
	IsPublished      *bool                  `json:"is_published"`
	IsMainFeatured   *bool                  `json:"is_main_featured"`
	PublishDate      *time.Time             `json:"publish_date"`
	Tags             []string               `json:"tags"`
	ImageURL         *string                `json:"image_url"`
	OriginalURL      *string                `json:"original_url"`
	RegenerateSlug   bool                   `json:"regenerate_slug"`
}

func postTypeParam(c *gin.Context) (string, bool) {
	postType := c.Param("type")
	if !service.IsAllowedPostType(postType) {
		respondError(c, response.CodeBadRequest, "error.invalid_post_type", nil)
		return "", false
	}
	return postType, true
}

func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// GetPosts 게시물 목록 조회 (Admin)
func (h *Handler) GetPosts(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		OrderBy:  c.Query("order_by"),
	}
	if c.Query("published") == "true" {
		filter.OnlyPublished = true
	}

	posts, total, err := h.PostService.ListAdmin(postType, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPost 게시물 단건 조회 (Admin)
func (h *Handler) GetPost(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	post, err := h.PostService.GetByID(postType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 게시물 생성 (Admin)
func (h *Handler) CreatePost(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Create(postType, service.CreatePostInput{
		Slug:             req.Slug,
		Category:         req.Category,
		TitleJSON:        req.Title,
		SummaryJSON:      req.Summary,
		ContentJSON:      req.Content,
		AuthorName:       req.AuthorName,
		AuthorDepartment: req.AuthorDepartment,
		AuthorID:         req.AuthorID,
		IsPublished:      req.IsPublished,
		IsMainFeatured:   req.IsMainFeatured,
		PublishDate:      req.PublishDate,
		Tags:             req.Tags,
		ImageURL:         req.ImageURL,
		OriginalURL:      req.OriginalURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 게시물 수정 (Admin)
func (h *Handler) UpdatePost(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Update(postType, id, service.UpdatePostInput{
		Slug:             req.Slug,
		Category:         req.Category,
		TitleJSON:        req.Title,
		SummaryJSON:      req.Summary,
		ContentJSON:      req.Content,
		AuthorName:       req.AuthorName,
		AuthorDepartment: req.AuthorDepartment,
		AuthorID:         req.AuthorID,
		IsPublished:      req.IsPublished,
		IsMainFeatured:   req.IsMainFeatured,
		PublishDate:      req.PublishDate,
		Tags:             req.Tags,
		ImageURL:         req.ImageURL,
		OriginalURL:      req.OriginalURL,
		RegenerateSlug:   req.RegenerateSlug,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 게시물 삭제 (Admin). deleted 가 첫 삭제 여부를 알린다.
func (h *Handler) DeletePost(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	deleted, err := h.PostService.Delete(postType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetPostStats 게시물 통계 조회 (Admin)
func (h *Handler) GetPostStats(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	stats, err := h.PostService.Stats(postType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stats)
}
