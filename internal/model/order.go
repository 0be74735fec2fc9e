package model

import "time"

type OrderStatus string

const (
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusSent, OrderStatusConfirmed, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID             string      `db:"id" json:"id"`
	UserID         *string     `db:"user_id" json:"user_id"`
	CustomerName   string      `db:"customer_name" json:"customer_name"`
	CustomerPhone  *string     `db:"customer_phone" json:"customer_phone"`
	TotalAmount    int64       `db:"total_amount" json:"total_amount"`
	SpecialRequest *string     `db:"special_request" json:"special_request"`
	Status         OrderStatus `db:"status" json:"status"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
	Items          []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a line captured as plain text at submission so later catalog edits do not alter it.
type OrderItem struct {
	ID           string    `db:"id" json:"id"`
	OrderID      string    `db:"order_id" json:"order_id"`
	ProductID    string    `db:"product_id" json:"product_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	ProductBrand string    `db:"product_brand" json:"product_brand"`
	ProductUnit  string    `db:"product_unit" json:"product_unit"`
	ProductImage *string   `db:"product_image" json:"product_image"`
	Quantity     int       `db:"quantity" json:"quantity"`
	PricePerUnit int64     `db:"price_per_unit" json:"price_per_unit"`
	Subtotal     int64     `db:"subtotal" json:"subtotal"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
