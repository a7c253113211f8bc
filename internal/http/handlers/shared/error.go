package shared

import (
	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/i18n"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog request_id 를 실은 로거 제공
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 국제화 오류 응답. 원인 오류가 있으면 로그로 남긴다.
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 서비스 오류를 HTTP 응답으로 변환
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == service.ErrNotFound:
		RespondError(c, response.CodeNotFound, "error.not_found", nil)
	case err == service.ErrInvalidCredentials:
		RespondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
	case err == service.ErrUserDisabled:
		RespondError(c, response.CodeForbidden, "error.user_disabled", nil)
	case err == service.ErrInvalidToken:
		RespondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
	case err == service.ErrInvalidPassword:
		RespondError(c, response.CodeBadRequest, "error.password_invalid", nil)
	case err == service.ErrInvalidPostType:
		RespondError(c, response.CodeBadRequest, "error.invalid_post_type", nil)
	case err == service.ErrSlugExists:
		RespondError(c, response.CodeConflict, "error.slug_exists", nil)
	case err == service.ErrUsernameExists:
		RespondError(c, response.CodeConflict, "error.username_exists", nil)
	case err == service.ErrEmailExists:
		RespondError(c, response.CodeConflict, "error.email_exists", nil)
	default:
		if ve, ok := service.AsValidationError(err); ok {
			locale := i18n.ResolveLocale(c)
			response.ErrorWithData(c, response.CodeValidation, i18n.T(locale, "error.validation_failed"), gin.H{
				"fields": ve.Fields,
			})
			return
		}
		RespondError(c, response.CodeInternal, "error.internal", err)
	}
}
