package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Offer) error {
	query := `
        INSERT INTO offers (
            id, title, description, discount_type, discount_value, start_date, end_date,
            product_ids, max_qty_per_order, is_active, created_at, updated_at
        )
        VALUES (
            :id, :title, :description, :discount_type, :discount_value, :start_date, :end_date,
            :product_ids, :max_qty_per_order, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var o model.Offer
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM offers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Offer, error) {
	offers := []model.Offer{}
	if err := r.DB.SelectContext(ctx, &offers, `SELECT * FROM offers ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Offer) error {
	query := `
        UPDATE offers
        SET title = :title,
            description = :description,
            discount_type = :discount_type,
            discount_value = :discount_value,
            start_date = :start_date,
            end_date = :end_date,
            product_ids = :product_ids,
            max_qty_per_order = :max_qty_per_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM offers WHERE id = $1", id)
	return err
}
