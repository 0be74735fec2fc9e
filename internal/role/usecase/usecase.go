package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

type roleUseCase struct {
	repo     role.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewRoleUseCase wires role management. cache may be nil.
func NewRoleUseCase(repo role.Repository, cache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) role.UseCase {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &roleUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
		now:      time.Now,
	}
}

func userRolesKey(userID string) string {
	return "roles:user:" + userID
}

func (uc *roleUseCase) AssignRole(ctx context.Context, actorID string, input *dto.AssignRoleInput) (*model.UserRole, error) {
	in := dto.AssignRoleInput{
		UserID: strings.TrimSpace(input.UserID),
		Role:   strings.ToLower(strings.TrimSpace(input.Role)),
	}
	if err := validate.Struct(role.ErrInvalidRole, &in).Err(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	for _, ur := range existing {
		if string(ur.Role) == in.Role {
			return nil, role.ErrRoleAlreadyAssigned
		}
	}

	ur := &model.UserRole{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Role:      model.Role(in.Role),
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, ur); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, ur.UserID)
	uc.audit(ctx, actorID, ur, model.RoleAssigned)
	return ur, nil
}

func (uc *roleUseCase) RemoveRole(ctx context.Context, actorID, id string) error {
	ur, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ur == nil {
		return role.ErrRoleNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, ur.UserID)
	uc.audit(ctx, actorID, ur, model.RoleRemoved)
	return nil
}

func (uc *roleUseCase) ListRoles(ctx context.Context, filters *dto.RoleFilters) ([]model.UserRole, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *roleUseCase) RolesForUser(ctx context.Context, userID string) ([]model.Role, error) {
	if userID == "" {
		return nil, nil
	}

	key := userRolesKey(userID)
	if uc.cache != nil {
		var cached []model.Role
		err := uc.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("role cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	assignments, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles := make([]model.Role, 0, len(assignments))
	for _, ur := range assignments {
		roles = append(roles, ur.Role)
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, roles, uc.cacheTTL); err != nil {
			uc.logger.Warn("role cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return roles, nil
}

func (uc *roleUseCase) ListAuditLogs(ctx context.Context, limit int) ([]model.RoleAuditLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	return uc.repo.ListAuditLogs(ctx, limit)
}

func (uc *roleUseCase) invalidate(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, userRolesKey(userID)).Err(); err != nil {
		uc.logger.Warn("failed to invalidate role cache", zap.String("user_id", userID), zap.Error(err))
	}
}

// audit records a role change. The change itself has already been applied, so failures are only logged.
func (uc *roleUseCase) audit(ctx context.Context, actorID string, ur *model.UserRole, action model.RoleAction) {
	entry := &model.RoleAuditLog{
		ID:           uuid.New().String(),
		AdminUserID:  actorID,
		TargetUserID: ur.UserID,
		Action:       action,
		Role:         ur.Role,
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.CreateAuditLog(ctx, entry); err != nil {
		uc.logger.Error("failed to write role audit log",
			zap.String("target_user_id", ur.UserID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}
	uc.logger.Info("role changed",
		zap.String("admin_user_id", actorID),
		zap.String("target_user_id", ur.UserID),
		zap.String("action", string(action)),
		zap.String("role", string(ur.Role)),
	)
}
