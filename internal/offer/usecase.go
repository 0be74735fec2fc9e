package offer

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/offer/dto"
)

type UseCase interface {
	CreateOffer(ctx context.Context, input *dto.OfferInput) (*model.Offer, error)
	GetOffer(ctx context.Context, id string) (*model.Offer, error)
	// ListOffers returns every stored offer, newest first. Liveness is left to the resolver.
	ListOffers(ctx context.Context) ([]model.Offer, error)
	// ListLiveOffers returns the offers live at the current time.
	ListLiveOffers(ctx context.Context) ([]model.Offer, error)
	UpdateOffer(ctx context.Context, id string, input *dto.OfferInput) (*model.Offer, error)
	DeleteOffer(ctx context.Context, id string) error
}
