package main

import (
	"time"

	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 연결 실패: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("기본 관리자 초기화 실패: %v", err)
	}

	now := time.Now()
	posts := []models.Post{
		{
			Type:     constants.PostTypeNews,
			Slug:     "hanbit-2026-partnership",
			Category: "partnership",
			TitleJSON: models.JSON{
				"ko": "한빛그룹, 글로벌 에너지 기업과 전략적 업무협약 체결",
				"en": "Hanbit Group Signs Strategic Partnership with Global Energy Company",
			},
			SummaryJSON: models.JSON{
				"ko": "차세대 에너지 사업 공동 추진을 위한 업무협약을 체결했습니다.",
				"en": "A memorandum of understanding for next-generation energy projects.",
			},
			ContentJSON: models.JSON{
				"ko": "한빛그룹은 금일 서울 본사에서 글로벌 에너지 기업과 차세대 에너지 사업 공동 추진을 위한 전략적 업무협약을 체결했다고 밝혔습니다.",
				"en": "Hanbit Group announced today that it has signed a strategic partnership agreement at its Seoul headquarters.",
			},
			AuthorName:       "홍보팀",
			AuthorDepartment: "커뮤니케이션실",
			IsPublished:      true,
			IsMainFeatured:   true,
			PublishDate:      now.AddDate(0, 0, -3),
			Tags:             models.StringArray{"협약", "에너지"},
		},
		{
			Type:     constants.PostTypeNews,
			Slug:     "hanbit-award-2026",
			Category: "award",
			TitleJSON: models.JSON{
				"ko": "한빛그룹, 2026 대한민국 경영대상 수상",
				"en": "Hanbit Group Wins 2026 Korea Management Grand Prize",
			},
			SummaryJSON: models.JSON{
				"ko": "지속가능경영 부문 대상을 수상했습니다.",
				"en": "Awarded the grand prize in the sustainable management category.",
			},
			ContentJSON: models.JSON{
				"ko": "한빛그룹이 지속가능경영 부문에서 2026 대한민국 경영대상을 수상했습니다.",
				"en": "Hanbit Group received the 2026 Korea Management Grand Prize in the sustainable management category.",
			},
			AuthorName:       "홍보팀",
			AuthorDepartment: "커뮤니케이션실",
			IsPublished:      true,
			PublishDate:      now.AddDate(0, 0, -10),
			Tags:             models.StringArray{"수상"},
		},
		{
			Type:     constants.PostTypeESG,
			Slug:     "esg-carbon-neutral-roadmap",
			Category: "environment",
			TitleJSON: models.JSON{
				"ko": "2040 탄소중립 로드맵 발표",
				"en": "2040 Carbon Neutrality Roadmap Announced",
			},
			SummaryJSON: models.JSON{
				"ko": "전 사업장 탄소중립 달성을 위한 단계별 로드맵을 공개했습니다.",
				"en": "A phased roadmap toward carbon neutrality across all sites.",
			},
			ContentJSON: models.JSON{
				"ko": "한빛그룹은 2040년까지 전 사업장의 탄소중립 달성을 목표로 하는 단계별 로드맵을 발표했습니다.",
				"en": "Hanbit Group unveiled a phased roadmap targeting carbon neutrality across all business sites by 2040.",
			},
			AuthorName:       "ESG경영실",
			AuthorDepartment: "ESG경영실",
			IsPublished:      true,
			IsMainFeatured:   true,
			PublishDate:      now.AddDate(0, 0, -7),
			Tags:             models.StringArray{"탄소중립", "환경"},
		},
		{
			Type:     constants.PostTypeESG,
			Slug:     "esg-community-volunteer",
			Category: "social",
			TitleJSON: models.JSON{
				"ko": "임직원 지역사회 봉사활동 진행",
				"en": "Employee Community Volunteer Program",
			},
			ContentJSON: models.JSON{
				"ko": "임직원 200여 명이 참여한 지역사회 봉사활동을 진행했습니다.",
				"en": "About 200 employees participated in a community volunteer program.",
			},
			AuthorName:       "ESG경영실",
			AuthorDepartment: "ESG경영실",
			IsPublished:      true,
			PublishDate:      now.AddDate(0, 0, -14),
			Tags:             models.StringArray{"사회공헌"},
		},
	}

	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("type = ? AND slug = ?", post.Type, post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("게시물 생성 실패 %s/%s: %v", post.Type, post.Slug, err)
			} else {
				stdLog.Printf("게시물 생성: %s/%s", post.Type, post.Slug)
			}
		} else {
			stdLog.Printf("게시물 이미 존재: %s/%s", post.Type, post.Slug)
		}
	}

	setting := models.Setting{
		Key: constants.SettingKeySiteConfig,
		ValueJSON: models.JSON{
			"site_name": map[string]interface{}{
				"ko": "한빛그룹",
				"en": "Hanbit Group",
			},
			"contact_email": "contact@hanbit.example.com",
		},
	}
	var existingSetting models.Setting
	if err := models.DB.Where("key = ?", setting.Key).First(&existingSetting).Error; err != nil {
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("사이트 설정 생성 실패: %v", err)
		} else {
			stdLog.Printf("사이트 설정 생성: %s", setting.Key)
		}
	} else {
		stdLog.Printf("사이트 설정 이미 존재: %s", setting.Key)
	}

	stdLog.Printf("시드 데이터 입력 완료")
}
