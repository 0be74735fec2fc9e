package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, ur *model.UserRole) error {
	query := `
        INSERT INTO user_roles (id, user_id, role, created_at)
        VALUES (:id, :user_id, :role, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, ur)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.UserRole, error) {
	var ur model.UserRole
	err := r.DB.GetContext(ctx, &ur, `SELECT * FROM user_roles WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ur, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.UserRole, error) {
	roles := []model.UserRole{}
	err := r.DB.SelectContext(ctx, &roles, `SELECT * FROM user_roles WHERE user_id = $1 ORDER BY role ASC`, userID)
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RoleFilters) ([]model.UserRole, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.UserID != "" {
		conditions = append(conditions, "user_id ILIKE :user_id")
		args["user_id"] = "%" + f.UserID + "%"
	}
	if f.Role != "" {
		conditions = append(conditions, "role = :role")
		args["role"] = f.Role
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM user_roles"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM user_roles" + whereClause + " ORDER BY role ASC, user_id ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	roles := []model.UserRole{}
	if err := r.DB.SelectContext(ctx, &roles, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}
	return roles, count, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM user_roles WHERE id = $1", id)
	return err
}

func (r *PGRepository) CreateAuditLog(ctx context.Context, l *model.RoleAuditLog) error {
	query := `
        INSERT INTO role_audit_logs (id, admin_user_id, target_user_id, action, role, created_at)
        VALUES (:id, :admin_user_id, :target_user_id, :action, :role, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) ListAuditLogs(ctx context.Context, limit int) ([]model.RoleAuditLog, error) {
	logs := []model.RoleAuditLog{}
	err := r.DB.SelectContext(ctx, &logs, `SELECT * FROM role_audit_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return logs, nil
}
