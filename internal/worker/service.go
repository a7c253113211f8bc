package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 비동기 큐 서비스
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 큐 서비스 생성
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 서비스 이름
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 서비스 시작
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.DashboardService != nil {
		go s.runDashboardWarmLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 서비스 중지
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runDashboardWarmLoop 대시보드 스냅샷 캐시를 주기적으로 갱신한다.
// 캐시 TTL 보다 짧은 주기로 돌려 관리자 첫 조회가 항상 캐시에 적중하게 한다.
func (s *Service) runDashboardWarmLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.DashboardService == nil {
		return
	}
	interval := 15 * time.Second
	if s.consumer.Config != nil && s.consumer.Config.Dashboard.StreamIntervalSeconds > 0 {
		interval = time.Duration(s.consumer.Config.Dashboard.StreamIntervalSeconds) * time.Second
	}

	runOnce := func() {
		if _, err := s.consumer.DashboardService.Rebuild(ctx); err != nil {
			logger.Warnw("worker_dashboard_warm_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
