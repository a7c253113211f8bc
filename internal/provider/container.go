package provider

import (
	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/queue"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"
)

// Container 의존성 주입 컨테이너
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	SettingRepo repository.SettingRepository

	// Services
	AuthService      *service.AuthService
	UserService      *service.UserService
	PostService      *service.PostService
	SettingService   *service.SettingService
	DashboardService *service.DashboardService
}

// NewContainer 컨테이너 초기화
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.PostService = service.NewPostService(c.PostRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.DashboardService = service.NewDashboardService(c.Config, c.PostRepo, c.UserRepo)
}

// Close 컨테이너 자원 정리
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
