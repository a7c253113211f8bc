package admin

import (
	"github.com/hanbit-cms/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSiteConfig 사이트 설정 조회 (Admin)
func (h *Handler) GetSiteConfig(c *gin.Context) {
	value, err := h.SettingService.GetSiteConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, value)
}

// UpdateSiteConfig 사이트 설정 갱신 (Admin)
func (h *Handler) UpdateSiteConfig(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	value, err := h.SettingService.UpdateSiteConfig(req)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_save_failed", err)
		return
	}
	response.Success(c, value)
}
