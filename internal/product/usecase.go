package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// GetProducts returns the requested products keyed by id; missing ids are absent.
	GetProducts(ctx context.Context, ids []string) (map[string]model.Product, error)

	// Catalog views carry the current price quote of each product.
	ListCatalog(ctx context.Context, filters *dto.ProductFilters) ([]dto.CatalogItem, int, error)
	GetCatalogItem(ctx context.Context, id string) (*dto.CatalogItem, error)
}
