package i18n

import (
	"fmt"
	"strings"

	"github.com/hanbit-cms/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 기본 언어
const DefaultLocale = constants.LocaleKo

const localeContextKey = "locale"

// ResolveLocale 요청에서 응답 언어를 결정
// 우선순위: ?locale 쿼리 → X-Locale 헤더 → Accept-Language → 기본값(ko)
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if cached, ok := c.Get(localeContextKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}

	locale := normalizeLocale(c.Query("locale"))
	if locale == "" {
		locale = normalizeLocale(c.GetHeader("X-Locale"))
	}
	if locale == "" {
		locale = resolveAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if locale == "" {
		locale = DefaultLocale
	}
	c.Set(localeContextKey, locale)
	return locale
}

// T 키에 해당하는 메시지를 반환. 미등록 키는 키 문자열 그대로 반환한다.
func T(locale, key string) string {
	if catalog, ok := messages[normalizeLocale(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 키에 해당하는 메시지를 서식 문자열로 사용
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	if normalized == "" {
		return ""
	}
	// ko-KR / en-US 형태는 기본 언어 코드로 축약
	if idx := strings.IndexAny(normalized, "-_"); idx > 0 {
		normalized = normalized[:idx]
	}
	for _, supported := range constants.SupportedLocales {
		if normalized == supported {
			return supported
		}
	}
	return ""
}

func resolveAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := part
		if idx := strings.Index(lang, ";"); idx >= 0 {
			lang = lang[:idx]
		}
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return ""
}
