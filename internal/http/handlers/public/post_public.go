package public

import (
	"strconv"

	handlershared "github.com/hanbit-cms/internal/http/handlers/shared"
	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/queue"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func postTypeParam(c *gin.Context) (string, bool) {
	postType := c.Param("type")
	if !service.IsAllowedPostType(postType) {
		respondError(c, response.CodeBadRequest, "error.invalid_post_type", nil)
		return "", false
	}
	return postType, true
}

// GetPublishedPosts 공개 게시물 목록 조회
func (h *Handler) GetPublishedPosts(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	posts, total, err := h.PostService.ListPublic(postType, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetFeaturedPosts 메인 노출 게시물 조회
func (h *Handler) GetFeaturedPosts(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	filter := repository.PostListFilter{
		Page:             1,
		PageSize:         10,
		MainFeaturedOnly: true,
	}
	posts, _, err := h.PostService.ListPublic(postType, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPublishedPost 공개 게시물 슬러그 조회. 조회수는 비동기로 반영한다.
func (h *Handler) GetPublishedPost(c *gin.Context) {
	postType, ok := postTypeParam(c)
	if !ok {
		return
	}
	slug := c.Param("slug")

	post, err := h.PostService.GetPublicBySlug(postType, slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.bumpViewCount(c, postType, post.ID)
	response.Success(c, gin.H{
		"post":   post,
		"author": h.resolveAuthor(post),
	})
}

// resolveAuthor 작성자 태그 유니언을 표시용 형태로 푼다.
// 참조형은 사용자 레코드에서 이름/부서를 가져오고, 조회 실패 시 빈 표시로 둔다.
func (h *Handler) resolveAuthor(post *models.Post) gin.H {
	author := post.Author()
	switch author.Kind {
	case models.AuthorKindRef:
		user, err := h.UserRepo.GetByID(author.UserID)
		if err != nil || user == nil {
			return gin.H{"name": "", "department": ""}
		}
		name := user.DisplayName
		if name == "" {
			name = user.Username
		}
		return gin.H{"name": name, "department": user.Department}
	case models.AuthorKindEmbedded:
		return gin.H{"name": author.Name, "department": author.Department}
	default:
		return nil
	}
}

// bumpViewCount 조회수 증가. 큐가 있으면 태스크로, 없으면 즉시 반영한다.
// 실패해도 본문 응답은 막지 않는다.
func (h *Handler) bumpViewCount(c *gin.Context, postType string, postID uint) {
	if h.QueueClient.Enabled() {
		err := h.QueueClient.EnqueuePostViewCount(queue.PostViewCountPayload{
			PostType: postType,
			PostID:   postID,
			Delta:    1,
		})
		if err == nil {
			return
		}
		handlershared.RequestLog(c).Warnw("post_view_count_enqueue_failed",
			"post_type", postType,
			"post_id", postID,
			"error", err,
		)
	}
	if err := h.PostService.IncrementViewCount(postType, postID, 1); err != nil {
		handlershared.RequestLog(c).Warnw("post_view_count_update_failed",
			"post_type", postType,
			"post_id", postID,
			"error", err,
		)
	}
}

// GetSiteConfig 공개 사이트 설정 조회
func (h *Handler) GetSiteConfig(c *gin.Context) {
	value, err := h.SettingService.GetSiteConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, value)
}
