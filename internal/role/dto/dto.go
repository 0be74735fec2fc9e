package dto

type RoleFilters struct {
	UserID   string // substring match
	Role     string
	Page     int
	PageSize int
}
