package constants

// 게시물 타입 상수
const (
	PostTypeNews = "news"
	PostTypeESG  = "esg"
)

// PostTypes 지원하는 게시물 타입 순서
var PostTypes = []string{PostTypeNews, PostTypeESG}

// 뉴스 카테고리 상수
const (
	NewsCategoryCompany     = "company"
	NewsCategoryAward       = "award"
	NewsCategoryPartnership = "partnership"
	NewsCategoryProduct     = "product"
	NewsCategoryMedia       = "media"
	NewsCategoryEvent       = "event"
	NewsCategoryOther       = "other"
)

// ESG 카테고리 상수
const (
	ESGCategoryEnvironment    = "environment"
	ESGCategorySocial         = "social"
	ESGCategoryGovernance     = "governance"
	ESGCategoryCSR            = "csr"
	ESGCategorySustainability = "sustainability"
	ESGCategoryManagement     = "esg_management"
	ESGCategoryOther          = "other"
)

// PostCategories 타입별 허용 카테고리
var PostCategories = map[string][]string{
	PostTypeNews: {
		NewsCategoryCompany,
		NewsCategoryAward,
		NewsCategoryPartnership,
		NewsCategoryProduct,
		NewsCategoryMedia,
		NewsCategoryEvent,
		NewsCategoryOther,
	},
	PostTypeESG: {
		ESGCategoryEnvironment,
		ESGCategorySocial,
		ESGCategoryGovernance,
		ESGCategoryCSR,
		ESGCategorySustainability,
		ESGCategoryManagement,
		ESGCategoryOther,
	},
}

// 역할 상수
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Roles 지원하는 역할 순서
var Roles = []string{RoleAdmin, RoleEditor, RoleViewer}

// SuperUsername 저장된 역할과 무관하게 admin 역할로 간주하는 계정명
const SuperUsername = "admin"

// 토큰 타입 상수
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// 언어 코드 상수
const (
	LocaleKo = "ko"
	LocaleEn = "en"
)

// SupportedLocales 지원하는 언어 순서 (ko 우선)
var SupportedLocales = []string{LocaleKo, LocaleEn}

// 큐 상수
const (
	QueueDefault      = "default"
	TaskPostViewCount = "post:view_count"
)

// 캐시 기본 설정 상수
const (
	RedisPrefixDefault = "hb"
)

// 설정 키 상수
const (
	SettingKeySiteConfig = "site_config"
)
