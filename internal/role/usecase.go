package role

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
)

type UseCase interface {
	// AssignRole grants a role on behalf of actorID and records it in the audit log.
	AssignRole(ctx context.Context, actorID string, input *dto.AssignRoleInput) (*model.UserRole, error)
	// RemoveRole revokes the assignment id on behalf of actorID and records it in the audit log.
	RemoveRole(ctx context.Context, actorID, id string) error
	ListRoles(ctx context.Context, filters *dto.RoleFilters) ([]model.UserRole, int, error)
	// RolesForUser returns the stored roles of userID, excluding the implicit user role.
	RolesForUser(ctx context.Context, userID string) ([]model.Role, error)
	ListAuditLogs(ctx context.Context, limit int) ([]model.RoleAuditLog, error)
}
