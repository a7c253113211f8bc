package main

import (
	"flag"
	"os"
	"syscall"

	"github.com/hanbit-cms/internal/app"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 필수 설정이 빠져 있으면 기동 자체를 멈춘다.
	if err := cfg.Validate(); err != nil {
		stdLog.Fatalf("설정 검증 실패: %v", err)
	}
	if config.IsWeakJWTSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT 서명 키가 약하거나 기본값입니다. 운영 환경에서는 강한 무작위 키를 설정하세요")
		}
		stdLog.Printf("경고: JWT 서명 키가 약하거나 기본값입니다. 운영 배포 전에 교체하세요")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 초기화 실패: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	defaultAdminUser := os.Getenv("HB_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("HB_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("경고: HB_DEFAULT_ADMIN_PASSWORD 미설정으로 기본 관리자 초기화를 건너뜁니다")
	} else if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("경고: 기본 관리자 초기화 실패: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "실행 모드: all (기본), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("서비스 실행 실패: %v", err)
	}
}
