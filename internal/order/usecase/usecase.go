package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/handoff"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo     order.Repository
	notifier *handoff.Dispatcher
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewOrderUseCase(repo order.Repository, notifier *handoff.Dispatcher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// PlaceOrder performs two dependent writes with no transaction around them. If the line
// insert fails the header stays behind; it is logged so it can be cleaned up by hand.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, o *model.Order) (string, error) {
	id := uuid.New().String()
	now := uc.now()

	header := *o
	header.ID = id
	header.CreatedAt = now
	header.UpdatedAt = now
	if header.Status == "" {
		header.Status = model.OrderStatusSent
	}

	if err := uc.repo.Create(ctx, &header); err != nil {
		return "", fmt.Errorf("%w: %v", order.ErrHeaderWriteFailed, err)
	}

	items := make([]model.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.ID = uuid.New().String()
		item.OrderID = id
		item.CreatedAt = now
		items[i] = item
	}

	if err := uc.repo.CreateItems(ctx, items); err != nil {
		uc.logger.Error("Order header saved without items",
			zap.String("order_id", id),
			zap.Int("item_count", len(items)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", order.ErrItemsWriteFailed, err)
	}

	o.ID = id
	o.Status = header.Status
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Items = items
	return id, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}

	items, err := uc.repo.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, 0, order.ErrInvalidStatus
	}
	return uc.repo.FindAll(ctx, filters)
}

// UpdateStatus accepts any of the three statuses from any other, so staff can correct mistakes.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, string, error) {
	if !input.Status.IsValid() {
		return nil, "", order.ErrInvalidStatus
	}

	o, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, "", err
	}
	if o == nil {
		return nil, "", order.ErrOrderNotFound
	}

	previous := o.Status
	o.Status = input.Status
	o.UpdatedAt = uc.now()

	if err := uc.repo.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt); err != nil {
		return nil, "", err
	}

	uc.logger.Info("Order status updated",
		zap.String("order_id", o.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(o.Status)),
	)

	link := ""
	if uc.notifier != nil {
		link = uc.notifier.StatusChanged(ctx, o, previous)
	}
	return o, link, nil
}
