package admin

import "github.com/hanbit-cms/internal/provider"

// Handler 관리자 API 처리기 진입점
type Handler struct {
	*provider.Container
}

// New 관리자 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
