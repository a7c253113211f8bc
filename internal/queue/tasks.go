package queue

import (
	"encoding/json"

	"github.com/hanbit-cms/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPostViewCount 게시물 조회수 반영 태스크
	TaskPostViewCount = constants.TaskPostViewCount
)

// PostViewCountPayload 조회수 태스크 페이로드
type PostViewCountPayload struct {
	PostType string `json:"post_type"`
	PostID   uint   `json:"post_id"`
	Delta    int64  `json:"delta"`
}

// NewPostViewCountTask 조회수 태스크 생성
func NewPostViewCountTask(payload PostViewCountPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPostViewCount, data), nil
}
