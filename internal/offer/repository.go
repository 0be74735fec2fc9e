package offer

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, offer *model.Offer) error
	FindByID(ctx context.Context, id string) (*model.Offer, error)
	FindAll(ctx context.Context) ([]model.Offer, error)
	Update(ctx context.Context, offer *model.Offer) error
	Delete(ctx context.Context, id string) error
}
