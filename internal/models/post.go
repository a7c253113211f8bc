package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 뉴스/ESG 게시물 테이블
// 두 콘텐츠 타입은 구조가 동일하므로 type 컬럼으로 구분하는 단일 테이블을 사용한다.
// slug 는 타입별 컬렉션 안에서만 유일하다.
type Post struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                       // 기본 키
	Type             string         `gorm:"not null;index;uniqueIndex:idx_posts_type_slug" json:"type"` // 게시물 타입 (news/esg)
	Slug             string         `gorm:"not null;uniqueIndex:idx_posts_type_slug" json:"slug"`       // URL 식별자
	Category         string         `gorm:"not null;index" json:"category"`                             // 카테고리 (타입별 enum)
	TitleJSON        JSON           `gorm:"type:json;not null" json:"title"`                            // 다국어 제목 (ko 필수)
	SummaryJSON      JSON           `gorm:"type:json" json:"summary"`                                   // 다국어 요약
	ContentJSON      JSON           `gorm:"type:json" json:"content"`                                   // 다국어 본문
	AuthorName       string         `gorm:"default:''" json:"author_name"`                              // 내장형 작성자 이름
	AuthorDepartment string         `gorm:"default:''" json:"author_department"`                        // 내장형 작성자 부서
	AuthorID         *uint          `gorm:"index" json:"author_id"`                                     // 참조형 작성자 (User)
	IsPublished      bool           `gorm:"not null;index" json:"is_published"`                         // 공개 여부. false 도 그대로 저장되도록 DB 기본값을 두지 않는다.
	IsMainFeatured   bool           `gorm:"not null;index" json:"is_main_featured"`                     // 메인 노출 여부
	PublishDate      time.Time      `gorm:"index" json:"publish_date"`                                  // 게시일 (미래 날짜 허용)
	ViewCount        int64          `gorm:"not null;default:0" json:"view_count"`                       // 조회수 (단조 증가)
	Tags             StringArray    `gorm:"type:json" json:"tags"`                                      // 태그 목록
	ImageURL         string         `gorm:"default:''" json:"image_url"`                                // 대표 이미지
	OriginalURL      string         `gorm:"default:''" json:"original_url"`                             // 원문/외부 링크
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                    // 생성 시각
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                    // 수정 시각
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                             // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Post) TableName() string {
	return "posts"
}

// 작성자 표현 종류
const (
	AuthorKindEmbedded = "embedded"
	AuthorKindRef      = "ref"
	AuthorKindNone     = "none"
)

// PostAuthor 작성자 태그 유니언의 외부 표현
// 내장형({name, department})과 참조형(userId) 두 형태를 모두 허용한다.
type PostAuthor struct {
	Kind       string `json:"kind"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	UserID     uint   `json:"user_id,omitempty"`
}

// Author 저장된 작성자 필드를 태그 유니언으로 해석
// 참조형이 우선하며, 둘 다 없으면 none 을 반환한다.
func (p *Post) Author() PostAuthor {
	if p == nil {
		return PostAuthor{Kind: AuthorKindNone}
	}
	if p.AuthorID != nil && *p.AuthorID > 0 {
		return PostAuthor{Kind: AuthorKindRef, UserID: *p.AuthorID}
	}
	if p.AuthorName != "" || p.AuthorDepartment != "" {
		return PostAuthor{
			Kind:       AuthorKindEmbedded,
			Name:       p.AuthorName,
			Department: p.AuthorDepartment,
		}
	}
	return PostAuthor{Kind: AuthorKindNone}
}
