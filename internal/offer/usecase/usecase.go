package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/offer"
	"github.com/fekuna/omnipos-storefront-service/internal/offer/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const offersCacheKey = "offers:all"

type offerUseCase struct {
	repo     offer.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewOfferUseCase(repo offer.Repository, cache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) offer.UseCase {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &offerUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *offerUseCase) CreateOffer(ctx context.Context, input *dto.OfferInput) (*model.Offer, error) {
	now := uc.now()
	o := &model.Offer{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		IsActive:  true,
	}
	if err := apply(o, input); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return o, nil
}

func (uc *offerUseCase) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, offer.ErrOfferNotFound
	}
	return o, nil
}

func (uc *offerUseCase) ListOffers(ctx context.Context) ([]model.Offer, error) {
	if uc.cache != nil {
		var cached []model.Offer
		err := uc.cache.GetJSON(ctx, offersCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("offer cache read failed", zap.Error(err))
		}
	}

	offers, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, offersCacheKey, offers, uc.cacheTTL); err != nil {
			uc.logger.Warn("offer cache write failed", zap.Error(err))
		}
	}
	return offers, nil
}

func (uc *offerUseCase) ListLiveOffers(ctx context.Context) ([]model.Offer, error) {
	offers, err := uc.ListOffers(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	live := make([]model.Offer, 0, len(offers))
	for i := range offers {
		if offers[i].IsLive(now) {
			live = append(live, offers[i])
		}
	}
	return live, nil
}

func (uc *offerUseCase) UpdateOffer(ctx context.Context, id string, input *dto.OfferInput) (*model.Offer, error) {
	o, err := uc.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(o, input); err != nil {
		return nil, err
	}
	o.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return o, nil
}

func (uc *offerUseCase) DeleteOffer(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *offerUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, offersCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate offer cache", zap.Error(err))
	}
}

// apply validates input and copies it onto o. o is left untouched on error.
func apply(o *model.Offer, in *dto.OfferInput) error {
	norm := *in
	norm.DiscountType = strings.ToLower(strings.TrimSpace(in.DiscountType))
	if err := validate.Struct(offer.ErrInvalidOffer, &norm).Err(); err != nil {
		return err
	}

	title := strings.TrimSpace(in.Title)
	kind := model.DiscountType(norm.DiscountType)

	o.Title = title
	o.Description = nil
	if d := strings.TrimSpace(in.Description); d != "" {
		o.Description = &d
	}
	o.DiscountType = kind
	o.DiscountValue = in.DiscountValue
	o.StartDate = *in.StartDate
	o.EndDate = *in.EndDate
	o.ProductIDs = dedupe(in.ProductIDs)
	o.MaxQtyPerOrder = in.MaxQtyPerOrder
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	return nil
}

func dedupe(ids []string) model.StringList {
	seen := make(map[string]struct{}, len(ids))
	out := make(model.StringList, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
