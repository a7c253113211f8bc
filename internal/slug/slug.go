// Package slug 제목에서 URL 슬러그를 파생한다.
// 한글 등 비 ASCII 문자는 로마자 표기로 변환한 뒤 소문자/하이픈 규칙을 적용한다.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// invalidChars 하이픈을 제외한 비영숫자 문자
	invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens 연속 하이픈
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make 문자열을 URL 슬러그로 변환
// 같은 입력에 대해 항상 같은 결과를 내며, 결과를 다시 넣어도 변하지 않는다.
func Make(s string) string {
	// 결합 문자(악센트) 분해 후 제거
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, s)

	// 비 ASCII 문자 로마자 변환
	normalized = unidecode.Unidecode(normalized)
	normalized = strings.ToLower(normalized)

	// 공백류를 하이픈으로 치환
	normalized = strings.Join(strings.Fields(normalized), "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")

	normalized = invalidChars.ReplaceAllString(normalized, "")
	normalized = multipleHyphens.ReplaceAllString(normalized, "-")
	return strings.Trim(normalized, "-")
}

// IsValid 슬러그 형식 검증
// 소문자 영숫자와 단일 하이픈만 허용하며, 하이픈으로 시작하거나 끝날 수 없다.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
