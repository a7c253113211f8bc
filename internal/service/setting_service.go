package service

import (
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/models"
	"github.com/hanbit-cms/internal/repository"
)

// SettingService 사이트 설정 서비스
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 설정 서비스 생성
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// defaultSiteConfig 설정 레코드가 없을 때 돌려주는 기본값
func defaultSiteConfig() models.JSON {
	return models.JSON{
		"site_name": map[string]interface{}{
			"ko": "한빛그룹",
			"en": "Hanbit Group",
		},
		"contact_email":  "",
		"footer_text":    map[string]interface{}{"ko": "", "en": ""},
		"sns_links":      map[string]interface{}{},
		"main_news_slot": nil,
	}
}

// GetSiteConfig 사이트 설정 조회. 레코드가 없으면 기본값을 반환한다.
func (s *SettingService) GetSiteConfig() (models.JSON, error) {
	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.ValueJSON == nil {
		return defaultSiteConfig(), nil
	}
	return setting.ValueJSON, nil
}

// UpdateSiteConfig 사이트 설정 갱신
func (s *SettingService) UpdateSiteConfig(value map[string]interface{}) (models.JSON, error) {
	if value == nil {
		value = map[string]interface{}{}
	}
	setting, err := s.repo.Upsert(constants.SettingKeySiteConfig, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}
