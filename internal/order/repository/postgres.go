package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, user_id, customer_name, customer_phone, total_amount,
            special_request, status, created_at, updated_at
        )
        VALUES (
            :id, :user_id, :customer_name, :customer_phone, :total_amount,
            :special_request, :status, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

// CreateItems inserts all lines in one multi-row statement. It runs outside the header's
// transaction, so a failure here leaves a header without lines.
func (r *PGRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_items (
            id, order_id, product_id, product_name, product_brand, product_unit,
            product_image, quantity, price_per_unit, subtotal, created_at
        )
        VALUES (
            :id, :order_id, :product_id, :product_name, :product_brand, :product_unit,
            :product_image, :quantity, :price_per_unit, :subtotal, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, items)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Search != "" {
		conditions = append(conditions, "(customer_name ILIKE :search OR id::text ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
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

	orders := []model.Order{}
	if err := r.DB.SelectContext(ctx, &orders, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *PGRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	query := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at ASC`
	if err := r.DB.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3", status, updatedAt, id)
	return err
}
