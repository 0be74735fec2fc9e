package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type UpdateStatusInput struct {
	ID     string
	Status model.OrderStatus
}
