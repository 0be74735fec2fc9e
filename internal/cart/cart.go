// Package cart holds the working product selection of one shopping session.
//
// A Cart is owned by a single session and is not safe for concurrent mutation.
package cart

import "github.com/fekuna/omnipos-storefront-service/internal/model"

// Item is one cart line. Product is a value snapshot taken when the product was first added.
type Item struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

func (i Item) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// Cart keeps at most one line per product id, in insertion order. Quantities are always >= 1.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the line for product.ID or appends a new line with quantity 1.
func (c *Cart) AddItem(product model.Product) {
	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, Item{Product: product, Quantity: 1})
}

func (c *Cart) RemoveItem(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

func (c *Cart) IncreaseQuantity(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.items[i].Quantity++
	}
}

// DecreaseQuantity never goes below 1; use RemoveItem to drop a line.
func (c *Cart) DecreaseQuantity(productID string) {
	if i := c.indexOf(productID); i >= 0 && c.items[i].Quantity > 1 {
		c.items[i].Quantity--
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total is the sum of base price x quantity over all lines. Offers are not applied.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, shown on the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
