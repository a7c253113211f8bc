package shared

import (
	"github.com/hanbit-cms/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 인증 미들웨어가 심은 사용자 ID 조회
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}

// CurrentUsername 인증 미들웨어가 심은 사용자명 조회
func CurrentUsername(c *gin.Context) string {
	if value, ok := c.Get("username"); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}

// CurrentRole 인증 미들웨어가 심은 역할 조회
func CurrentRole(c *gin.Context) string {
	if value, ok := c.Get("role"); ok {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}
