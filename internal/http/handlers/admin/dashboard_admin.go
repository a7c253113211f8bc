package admin

import (
	"time"

	"github.com/hanbit-cms/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 대시보드 스냅샷 단건 조회 (Admin)
func (h *Handler) GetDashboard(c *gin.Context) {
	snapshot, err := h.DashboardService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, snapshot)
}

// StreamDashboard 대시보드 SSE 스트림 (Admin)
// 접속 직후 connected 이벤트를 먼저 보내고, 이후 주기마다 snapshot 이벤트를 내린다.
func (h *Handler) StreamDashboard(c *gin.Context) {
	interval := 15 * time.Second
	if h.Config != nil && h.Config.Dashboard.StreamIntervalSeconds > 0 {
		interval = time.Duration(h.Config.Dashboard.StreamIntervalSeconds) * time.Second
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent("connected", gin.H{"server_time": time.Now()})
	c.Writer.Flush()

	sendSnapshot := func() {
		snapshot, err := h.DashboardService.Snapshot(c.Request.Context())
		if err != nil {
			requestLog(c).Warnw("dashboard_stream_snapshot_failed", "error", err)
			return
		}
		c.SSEvent("snapshot", snapshot)
		c.Writer.Flush()
	}
	sendSnapshot()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			sendSnapshot()
		}
	}
}
