package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

type UseCase interface {
	// PlaceOrder writes the header, then the lines, and returns the generated order id.
	PlaceOrder(ctx context.Context, order *model.Order) (string, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	// UpdateStatus returns the updated order and, for deliveries, a customer notification link.
	UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, string, error)
}
