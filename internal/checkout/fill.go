package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// MaxLineQuantity bounds a single requested line.
const MaxLineQuantity = 999

var ErrProductUnavailable = errors.New("product is not available")

// Line is one client-side cart entry.
type Line struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"gte=1,lte=999"`
}

// ProductLookup resolves current catalog records by id; missing ids are absent from the map.
type ProductLookup interface {
	GetProducts(ctx context.Context, ids []string) (map[string]model.Product, error)
}

// UnavailableError lists the request lines that name unknown or inactive products.
type UnavailableError struct {
	Lines []int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: lines %v", ErrProductUnavailable, e.Lines)
}

func (e *UnavailableError) Unwrap() error {
	return ErrProductUnavailable
}

// FillCart rebuilds a cart from posted lines by calling AddItem once per unit, in request
// order. Available lines are added even when others are rejected.
func FillCart(ctx context.Context, products ProductLookup, c *cart.Cart, lines []Line) error {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	found, err := products.GetProducts(ctx, ids)
	if err != nil {
		return err
	}

	var bad []int
	for i, l := range lines {
		p, ok := found[l.ProductID]
		if !ok || !p.IsActive || l.Quantity < 1 || l.Quantity > MaxLineQuantity {
			bad = append(bad, i)
			continue
		}
		for n := 0; n < l.Quantity; n++ {
			c.AddItem(p)
		}
	}

	if len(bad) > 0 {
		return &UnavailableError{Lines: bad}
	}
	return nil
}
