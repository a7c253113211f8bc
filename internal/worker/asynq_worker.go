package worker

import (
	"context"
	"encoding/json"

	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/provider"
	"github.com/hanbit-cms/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 비동기 태스크 소비자
type Consumer struct {
	*provider.Container
}

// NewConsumer 소비자 생성
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 태스크 핸들러 등록
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPostViewCount, c.handlePostViewCount)
}

func (c *Consumer) handlePostViewCount(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_post_view_count_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PostViewCountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_post_view_count_unmarshal_failed", "error", err)
		return err
	}
	if payload.PostID == 0 || payload.Delta <= 0 {
		logger.Debugw("worker_post_view_count_skip_invalid_payload",
			"post_type", payload.PostType,
			"post_id", payload.PostID,
			"delta", payload.Delta,
		)
		return nil
	}
	if err := c.PostService.IncrementViewCount(payload.PostType, payload.PostID, payload.Delta); err != nil {
		logger.Warnw("worker_post_view_count_apply_failed",
			"post_type", payload.PostType,
			"post_id", payload.PostID,
			"error", err,
		)
		return err
	}
	return nil
}
