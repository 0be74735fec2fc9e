package role

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
)

type Repository interface {
	Create(ctx context.Context, ur *model.UserRole) error
	FindByID(ctx context.Context, id string) (*model.UserRole, error)
	FindByUser(ctx context.Context, userID string) ([]model.UserRole, error)
	FindAll(ctx context.Context, filters *dto.RoleFilters) ([]model.UserRole, int, error)
	Delete(ctx context.Context, id string) error

	CreateAuditLog(ctx context.Context, log *model.RoleAuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]model.RoleAuditLog, error)
}
