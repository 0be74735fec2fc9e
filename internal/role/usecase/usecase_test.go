package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu        sync.Mutex
	roles     map[string]model.UserRole
	logs      []model.RoleAuditLog
	auditErr  error
	userCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{roles: map[string]model.UserRole{}}
}

func (r *memRepo) Create(_ context.Context, ur *model.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[ur.ID] = *ur
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*model.UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ur, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	return &ur, nil
}

func (r *memRepo) FindByUser(_ context.Context, userID string) ([]model.UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userCalls++
	out := []model.UserRole{}
	for _, ur := range r.roles {
		if ur.UserID == userID {
			out = append(out, ur)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (r *memRepo) FindAll(_ context.Context, f *dto.RoleFilters) ([]model.UserRole, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.UserRole{}
	for _, ur := range r.roles {
		if f.Role != "" && string(ur.Role) != f.Role {
			continue
		}
		out = append(out, ur)
	}
	return out, len(out), nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, id)
	return nil
}

func (r *memRepo) CreateAuditLog(_ context.Context, l *model.RoleAuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.auditErr != nil {
		return r.auditErr
	}
	r.logs = append(r.logs, *l)
	return nil
}

func (r *memRepo) ListAuditLogs(_ context.Context, limit int) ([]model.RoleAuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.RoleAuditLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

func newTestCache(t *testing.T) *cache.RedisClient {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestAssignRole(t *testing.T) {
	repo := newMemRepo()
	uc := NewRoleUseCase(repo, nil, 0, logger.NewNop())

	ur, err := uc.AssignRole(context.Background(), "admin-1", &dto.AssignRoleInput{UserID: " u1 ", Role: "Editor"})
	require.NoError(t, err)
	assert.Equal(t, "u1", ur.UserID)
	assert.Equal(t, model.RoleEditor, ur.Role)
	assert.NotEmpty(t, ur.ID)

	require.Len(t, repo.logs, 1)
	assert.Equal(t, "admin-1", repo.logs[0].AdminUserID)
	assert.Equal(t, "u1", repo.logs[0].TargetUserID)
	assert.Equal(t, model.RoleAssigned, repo.logs[0].Action)

	_, err = uc.AssignRole(context.Background(), "admin-1", &dto.AssignRoleInput{UserID: "u1", Role: "editor"})
	assert.ErrorIs(t, err, role.ErrRoleAlreadyAssigned)
	assert.Len(t, repo.logs, 1)
}

func TestAssignRole_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    dto.AssignRoleInput
		field string
	}{
		{"missing user", dto.AssignRoleInput{UserID: "  ", Role: "admin"}, "user_id"},
		{"unknown role", dto.AssignRoleInput{UserID: "u1", Role: "superuser"}, "role"},
		{"implicit user role", dto.AssignRoleInput{UserID: "u1", Role: "user"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			uc := NewRoleUseCase(repo, nil, 0, logger.NewNop())

			_, err := uc.AssignRole(context.Background(), "admin-1", &tt.in)
			require.ErrorIs(t, err, role.ErrInvalidRole)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Empty(t, repo.roles)
			assert.Empty(t, repo.logs)
		})
	}
}

func TestRemoveRole(t *testing.T) {
	repo := newMemRepo()
	uc := NewRoleUseCase(repo, nil, 0, logger.NewNop())
	ctx := context.Background()

	ur, err := uc.AssignRole(ctx, "admin-1", &dto.AssignRoleInput{UserID: "u1", Role: "operations"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveRole(ctx, "admin-2", ur.ID))
	assert.Empty(t, repo.roles)
	require.Len(t, repo.logs, 2)
	assert.Equal(t, model.RoleRemoved, repo.logs[1].Action)
	assert.Equal(t, "admin-2", repo.logs[1].AdminUserID)
	assert.Equal(t, model.RoleOperations, repo.logs[1].Role)

	assert.ErrorIs(t, uc.RemoveRole(ctx, "admin-2", ur.ID), role.ErrRoleNotFound)
}

func TestAuditFailureDoesNotUndoChange(t *testing.T) {
	repo := newMemRepo()
	repo.auditErr = errors.New("disk full")
	uc := NewRoleUseCase(repo, nil, 0, logger.NewNop())

	ur, err := uc.AssignRole(context.Background(), "admin-1", &dto.AssignRoleInput{UserID: "u1", Role: "admin"})
	require.NoError(t, err)
	assert.Contains(t, repo.roles, ur.ID)
}

func TestRolesForUser_CachedAndInvalidated(t *testing.T) {
	repo := newMemRepo()
	uc := NewRoleUseCase(repo, newTestCache(t), time.Minute, logger.NewNop())
	ctx := context.Background()

	roles, err := uc.RolesForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, roles)

	_, err = uc.RolesForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.userCalls)

	// AssignRole reads the user's roles once for the duplicate check.
	_, err = uc.AssignRole(ctx, "admin-1", &dto.AssignRoleInput{UserID: "u1", Role: "salesperson"})
	require.NoError(t, err)

	roles, err = uc.RolesForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleSalesperson}, roles)
	assert.Equal(t, 3, repo.userCalls)

	empty, err := uc.RolesForUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestListAuditLogs_Limit(t *testing.T) {
	repo := newMemRepo()
	uc := NewRoleUseCase(repo, nil, 0, logger.NewNop())
	ctx := context.Background()

	for _, r := range []string{"admin", "editor", "operations"} {
		_, err := uc.AssignRole(ctx, "admin-1", &dto.AssignRoleInput{UserID: "u1", Role: r})
		require.NoError(t, err)
	}

	logs, err := uc.ListAuditLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.RoleOperations, logs[0].Role)

	logs, err = uc.ListAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
