package i18n

import "github.com/hanbit-cms/internal/constants"

// messages 언어별 메시지 카탈로그
var messages = map[string]map[string]string{
	constants.LocaleKo: {
		"success": "성공",

		"error.bad_request":  "잘못된 요청입니다",
		"error.unauthorized": "인증이 필요합니다",
		"error.forbidden":    "해당 작업을 수행할 권한이 없습니다",
		"error.not_found":    "요청한 리소스를 찾을 수 없습니다",
		"error.internal":     "서버 오류가 발생했습니다. 잠시 후 다시 시도해 주세요",

		"error.auth_header_missing": "Authorization 헤더가 없습니다",
		"error.auth_header_invalid": "Authorization 헤더 형식이 올바르지 않습니다",
		"error.token_invalid":       "유효하지 않거나 만료된 토큰입니다",
		"error.jwt_secret_missing":  "JWT 서명 키가 설정되지 않았습니다",
		"error.invalid_credentials": "아이디 또는 비밀번호가 올바르지 않습니다",
		"error.user_disabled":       "비활성화된 계정입니다",
		"error.refresh_failed":      "세션 갱신에 실패했습니다. 다시 로그인해 주세요",
		"error.password_invalid":    "현재 비밀번호가 올바르지 않습니다",

		"error.post_not_found":    "게시물을 찾을 수 없습니다",
		"error.post_fetch_failed": "게시물 조회에 실패했습니다",
		"error.post_save_failed":  "게시물 저장에 실패했습니다",
		"error.invalid_post_type": "지원하지 않는 게시물 타입입니다",
		"error.slug_exists":       "이미 사용 중인 슬러그입니다",
		"error.validation_failed": "입력값을 확인해 주세요",

		"error.user_not_found":    "사용자를 찾을 수 없습니다",
		"error.user_fetch_failed": "사용자 조회에 실패했습니다",
		"error.user_save_failed":  "사용자 저장에 실패했습니다",
		"error.username_exists":   "이미 사용 중인 아이디입니다",
		"error.email_exists":      "이미 사용 중인 이메일입니다",

		"error.setting_fetch_failed":   "설정 조회에 실패했습니다",
		"error.setting_save_failed":    "설정 저장에 실패했습니다",
		"error.dashboard_fetch_failed": "대시보드 조회에 실패했습니다",

		"error.rate_limited":           "요청이 너무 많습니다. %d초 후 다시 시도해 주세요",
		"error.rate_limit_unavailable": "요청 제한 확인에 실패했습니다. 잠시 후 다시 시도해 주세요",
	},
	constants.LocaleEn: {
		"success": "success",

		"error.bad_request":  "Bad request",
		"error.unauthorized": "Authentication required",
		"error.forbidden":    "You do not have permission to perform this action",
		"error.not_found":    "The requested resource was not found",
		"error.internal":     "Server error, please try again later",

		"error.auth_header_missing": "Authorization header is missing",
		"error.auth_header_invalid": "Authorization header is malformed",
		"error.token_invalid":       "Invalid or expired token",
		"error.jwt_secret_missing":  "JWT signing secret is not configured",
		"error.invalid_credentials": "Invalid username or password",
		"error.user_disabled":       "This account has been disabled",
		"error.refresh_failed":      "Session refresh failed, please sign in again",
		"error.password_invalid":    "Current password is incorrect",

		"error.post_not_found":    "Post not found",
		"error.post_fetch_failed": "Failed to fetch posts",
		"error.post_save_failed":  "Failed to save the post",
		"error.invalid_post_type": "Unsupported post type",
		"error.slug_exists":       "Slug is already in use",
		"error.validation_failed": "Please check the submitted fields",

		"error.user_not_found":    "User not found",
		"error.user_fetch_failed": "Failed to fetch users",
		"error.user_save_failed":  "Failed to save the user",
		"error.username_exists":   "Username is already in use",
		"error.email_exists":      "Email is already in use",

		"error.setting_fetch_failed":   "Failed to fetch settings",
		"error.setting_save_failed":    "Failed to save settings",
		"error.dashboard_fetch_failed": "Failed to fetch dashboard data",

		"error.rate_limited":           "Too many requests, please retry after %d seconds",
		"error.rate_limit_unavailable": "Rate limit check failed, please try again later",
	},
}
