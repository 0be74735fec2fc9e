package model

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSalesperson Role = "salesperson"
	RoleOperations  Role = "operations"
	RoleEditor      Role = "editor"
	// RoleUser is held implicitly by every signed-in caller and is never stored.
	RoleUser Role = "user"
)

// AssignableRoles are the roles an admin can grant.
var AssignableRoles = []Role{RoleAdmin, RoleSalesperson, RoleOperations, RoleEditor}

func (r Role) IsAssignable() bool {
	for _, a := range AssignableRoles {
		if r == a {
			return true
		}
	}
	return false
}

// UserRole grants Role to the externally authenticated user UserID.
type UserRole struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type RoleAction string

const (
	RoleAssigned RoleAction = "assigned"
	RoleRemoved  RoleAction = "removed"
)

type RoleAuditLog struct {
	ID           string     `db:"id" json:"id"`
	AdminUserID  string     `db:"admin_user_id" json:"admin_user_id"`
	TargetUserID string     `db:"target_user_id" json:"target_user_id"`
	Action       RoleAction `db:"action" json:"action"`
	Role         Role       `db:"role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

var (
	// CatalogRoles may manage products, categories and offers.
	CatalogRoles = []Role{RoleAdmin, RoleEditor}
	// OrderStaffRoles may see every order and move it through its statuses.
	OrderStaffRoles = []Role{RoleAdmin, RoleSalesperson, RoleOperations}
)
