package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{
	"id", "name", "brand", "category", "price", "mrp", "unit", "description",
	"image_url", "video_url", "images", "is_trending", "is_active", "created_at", "updated_at",
}

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO products").
		WithArgs("p1", "Cheddar", "Amul", "Cheese", int64(250), nil, "500g", nil, nil, nil, `["a.jpg"]`, true, true, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.Product{
		BaseModel:  model.BaseModel{ID: "p1", CreatedAt: now, UpdatedAt: now},
		Name:       "Cheddar",
		Brand:      "Amul",
		Category:   "Cheese",
		Price:      250,
		Unit:       "500g",
		Images:     model.StringList{"a.jpg"},
		IsTrending: true,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows(productColumns).
		AddRow("p1", "Cheddar", "Amul", "Cheese", int64(250), int64(300), "500g", nil, nil, nil, []byte(`["a.jpg","b.jpg"]`), false, true, now, now)

	mock.ExpectQuery(`SELECT \* FROM products WHERE id IN \(\$1, \$2\)`).
		WithArgs("p1", "p2").
		WillReturnRows(rows)

	products, err := repo.FindByIDs(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cheddar", products[0].Name)
	require.NotNil(t, products[0].MRP)
	assert.Equal(t, int64(300), *products[0].MRP)
	assert.Equal(t, model.StringList{"a.jpg", "b.jpg"}, products[0].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs_Empty(t *testing.T) {
	repo, mock := newMock(t)
	products, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT \* FROM products WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindAll(t *testing.T) {
	repo, mock := newMock(t)
	active := true

	mock.ExpectQuery(`SELECT count\(\*\) FROM products WHERE category = \$1 AND is_trending = true AND is_active = \$2 AND \(name ILIKE \$3`).
		WithArgs("Cheese", true, "%ched%", "%ched%", "%ched%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`SELECT \* FROM products WHERE .* ORDER BY price ASC LIMIT 2 OFFSET 2`).
		WithArgs("Cheese", true, "%ched%", "%ched%", "%ched%").
		WillReturnRows(sqlmock.NewRows(productColumns))

	products, count, err := repo.FindAll(context.Background(), &dto.ProductFilters{
		Category:    "Cheese",
		Trending:    true,
		IsActive:    &active,
		SearchQuery: "ched",
		SortBy:      "price",
		Page:        2,
		PageSize:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder, want string
	}{
		{"", "", "created_at DESC"},
		{"", "asc", "created_at ASC"},
		{"name", "", "name ASC"},
		{"price", "DESC", "price DESC"},
		{"price; DROP TABLE products", "", "created_at DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderBy(&dto.ProductFilters{SortBy: tt.sortBy, SortOrder: tt.sortOrder}), tt.sortBy)
	}
}
