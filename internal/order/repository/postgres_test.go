package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

	mock.ExpectExec("INSERT INTO orders").
		WithArgs("o1", nil, "Asha", nil, int64(130), nil, model.OrderStatusSent, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.Order{
		ID:           "o1",
		CustomerName: "Asha",
		TotalAmount:  130,
		Status:       model.OrderStatusSent,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItems(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.CreateItems(context.Background(), []model.OrderItem{
		{ID: "i1", OrderID: "o1", ProductName: "A", Quantity: 2, PricePerUnit: 50, Subtotal: 100},
		{ID: "i2", OrderID: "o1", ProductName: "B", Quantity: 1, PricePerUnit: 30, Subtotal: 30},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItems_EmptyIsNoop(t *testing.T) {
	repo, mock := newMock(t)
	require.NoError(t, repo.CreateItems(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT \\* FROM orders WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	o, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestFindByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "customer_name", "customer_phone", "total_amount", "special_request", "status", "created_at", "updated_at"}).
		AddRow("o1", nil, "Asha", nil, 130, nil, "sent", now, now)
	mock.ExpectQuery("SELECT \\* FROM orders WHERE id = \\$1").WithArgs("o1").WillReturnRows(rows)

	o, err := repo.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "Asha", o.CustomerName)
	assert.Equal(t, model.OrderStatusSent, o.Status)
}

func TestFindAll_FiltersAndPaginates(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM orders WHERE status = \\$1").
		WithArgs(model.OrderStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM orders WHERE status = \\$1 ORDER BY created_at DESC LIMIT 2 OFFSET 2").
		WithArgs(model.OrderStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_name", "total_amount", "status", "created_at", "updated_at"}).
			AddRow("o3", "Ravi", 10, "confirmed", now, now))

	orders, count, err := repo.FindAll(context.Background(), &dto.OrderFilters{
		Status:   model.OrderStatusConfirmed,
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, orders, 1)
	assert.Equal(t, "o3", orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_PropagatesError(t *testing.T) {
	repo, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectExec("UPDATE orders SET status").WillReturnError(boom)

	err := repo.UpdateStatus(context.Background(), "o1", model.OrderStatusDelivered, time.Now())
	assert.ErrorIs(t, err, boom)
}
