package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const listCachePrefix = "products:list:"

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"brand": { "type": "keyword" },
			"category": { "type": "keyword" },
			"description": { "type": "text" },
			"unit": { "type": "keyword" },
			"price": { "type": "long" },
			"is_trending": { "type": "boolean" },
			"is_active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

// Indexer is the search backend. *search.Client implements it.
type Indexer interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResult, error)
	Delete(ctx context.Context, index, id string) error
}

// CategoryChecker reports whether a category name is managed.
type CategoryChecker interface {
	IsKnown(ctx context.Context, name string) (bool, error)
}

type OfferSource interface {
	ListOffers(ctx context.Context) ([]model.Offer, error)
}

type Config struct {
	Index    string
	CacheTTL time.Duration
}

type productUseCase struct {
	repo       product.Repository
	categories CategoryChecker
	offers     OfferSource
	cache      *cache.RedisClient
	es         Indexer
	cfg        Config
	logger     logger.ZapLogger
	now        func() time.Time

	indexOnce sync.Once
}

// NewProductUseCase wires the catalog. cache, es and offers may be nil.
func NewProductUseCase(
	repo product.Repository,
	categories CategoryChecker,
	offers OfferSource,
	cache *cache.RedisClient,
	es Indexer,
	cfg Config,
	log logger.ZapLogger,
) product.UseCase {
	if cfg.Index == "" {
		cfg.Index = "products"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &productUseCase{
		repo:       repo,
		categories: categories,
		offers:     offers,
		cache:      cache,
		es:         es,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := uc.validate(ctx, input, input.Category); err != nil {
		return nil, err
	}

	now := uc.now()
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        strings.TrimSpace(input.Name),
		Brand:       strings.TrimSpace(input.Brand),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		MRP:         input.MRP,
		Unit:        strings.TrimSpace(input.Unit),
		Description: optional(input.Description),
		ImageURL:    optional(input.ImageURL),
		VideoURL:    optional(input.VideoURL),
		Images:      model.StringList(input.Images),
		IsTrending:  input.IsTrending,
		IsActive:    active,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) GetProducts(ctx context.Context, ids []string) (map[string]model.Product, error) {
	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := generateCacheKey(filters)
	if err != nil {
		uc.logger.Warn("failed to build product cache key", zap.Error(err))
	}

	if uc.cache != nil && cacheKey != "" {
		var hit cachedList
		err := uc.cache.GetJSON(ctx, cacheKey, &hit)
		if err == nil {
			return hit.Products, hit.Count, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
	}

	products, count, err := uc.findProducts(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, uc.cfg.CacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}

	return products, count, nil
}

// findProducts serves free-text queries from elastic when available and falls back to the database.
func (uc *productUseCase) findProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery != "" && uc.es != nil {
		res, err := uc.es.Search(ctx, uc.cfg.Index, buildSearchQuery(filters))
		if err == nil {
			products := make([]model.Product, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err != nil {
					uc.logger.Warn("skipping undecodable search hit", zap.String("id", hit.ID), zap.Error(err))
					continue
				}
				products = append(products, p)
			}
			return products, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, filters)
}

func buildSearchQuery(filters *dto.ProductFilters) map[string]interface{} {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     filters.SearchQuery,
				"fields":    []string{"name^3", "brand^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}

	filter := []map[string]interface{}{}
	if filters.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": filters.Category}})
	}
	if filters.Brand != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"brand": filters.Brand}})
	}
	if filters.Trending {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"is_trending": true}})
	}
	if filters.IsActive != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"is_active": *filters.IsActive}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
	if filters.PageSize > 0 {
		from := (filters.Page - 1) * filters.PageSize
		if from < 0 {
			from = 0
		}
		q["from"] = from
		q["size"] = filters.PageSize
	}
	return q
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, uc.cfg.Index, indexMapping); err != nil {
			uc.logger.Warn("failed to create product index", zap.Error(err))
		}
	})

	if err := uc.es.Index(ctx, uc.cfg.Index, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	if err := uc.validate(ctx, input, input.Category); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Brand = strings.TrimSpace(input.Brand)
	p.Category = strings.TrimSpace(input.Category)
	p.Price = input.Price
	p.MRP = input.MRP
	p.Unit = strings.TrimSpace(input.Unit)
	p.Description = optional(input.Description)
	p.ImageURL = optional(input.ImageURL)
	p.VideoURL = optional(input.VideoURL)
	p.Images = model.StringList(input.Images)
	p.IsTrending = input.IsTrending
	p.IsActive = input.IsActive

	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already deleted
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateProductCache(ctx)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.cfg.Index, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) ListCatalog(ctx context.Context, filters *dto.ProductFilters) ([]dto.CatalogItem, int, error) {
	products, count, err := uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	offers := uc.liveOffers(ctx)
	now := uc.now()
	items := make([]dto.CatalogItem, len(products))
	for i := range products {
		items[i] = dto.CatalogItem{
			Product: products[i],
			Quote:   pricing.QuoteProduct(&products[i], offers, now),
		}
	}
	return items, count, nil
}

func (uc *productUseCase) GetCatalogItem(ctx context.Context, id string) (*dto.CatalogItem, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogItem{
		Product: *p,
		Quote:   pricing.QuoteProduct(p, uc.liveOffers(ctx), uc.now()),
	}, nil
}

// liveOffers loads every offer; an unavailable offer store prices the catalog at base price.
func (uc *productUseCase) liveOffers(ctx context.Context) []model.Offer {
	if uc.offers == nil {
		return nil
	}
	offers, err := uc.offers.ListOffers(ctx)
	if err != nil {
		uc.logger.Warn("failed to load offers, quoting base prices", zap.Error(err))
		return nil
	}
	return offers
}

// validate checks the tag rules on input, then that category names a known category.
func (uc *productUseCase) validate(ctx context.Context, input interface{}, category string) error {
	v := validate.Struct(product.ErrInvalidProduct, input)

	if !v.Has("category") {
		known, err := uc.isKnownCategory(ctx, strings.TrimSpace(category))
		if err != nil {
			return err
		}
		if !known {
			v.Add("category", "unknown", "category does not exist")
		}
	}

	return v.Err()
}

// isKnownCategory accepts managed categories and the built-in default set.
func (uc *productUseCase) isKnownCategory(ctx context.Context, name string) (bool, error) {
	for _, c := range model.DefaultCategories {
		if strings.EqualFold(c, name) {
			return true, nil
		}
	}
	if uc.categories == nil {
		return false, nil
	}
	return uc.categories.IsKnown(ctx, name)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
