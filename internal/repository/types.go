package repository

// PostListFilter 게시물 목록 조회 조건
type PostListFilter struct {
	Page             int
	PageSize         int
	Type             string
	Category         string
	Search           string
	OnlyPublished    bool
	MainFeaturedOnly bool
	OrderBy          string
}

// UserListFilter 사용자 목록 조회 조건
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	IsActive *bool
}
