package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type OrderFilters struct {
	UserID   string
	Status   model.OrderStatus
	Search   string // customer name or order id
	Page     int
	PageSize int
}
