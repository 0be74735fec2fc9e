package dto

type AssignRoleInput struct {
	UserID string `json:"user_id" validate:"notblank"`
	Role   string `json:"role" validate:"oneof=admin salesperson operations editor"`
}
