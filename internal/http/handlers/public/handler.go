package public

import "github.com/hanbit-cms/internal/provider"

// Handler 공개 API 처리기 진입점. 인증 없이 접근된다.
type Handler struct {
	*provider.Container
}

// New 공개 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
