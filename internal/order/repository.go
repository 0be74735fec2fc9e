package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error
}
