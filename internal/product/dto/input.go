package dto

// Struct tags carry the field rules; the category lookup is checked by the usecase.

type CreateProductInput struct {
	Name        string   `json:"name" validate:"notblank"`
	Brand       string   `json:"brand" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Price       int64    `json:"price" validate:"gt=0"`
	MRP         *int64   `json:"mrp" validate:"omitempty,gtefield=Price"`
	Unit        string   `json:"unit" validate:"notblank"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Images      []string `json:"images"`
	IsTrending  bool     `json:"is_trending"`
	IsActive    *bool    `json:"is_active"` // defaults to true
}

type UpdateProductInput struct {
	ID          string   `json:"-"`
	Name        string   `json:"name" validate:"notblank"`
	Brand       string   `json:"brand" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Price       int64    `json:"price" validate:"gt=0"`
	MRP         *int64   `json:"mrp" validate:"omitempty,gtefield=Price"`
	Unit        string   `json:"unit" validate:"notblank"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Images      []string `json:"images"`
	IsTrending  bool     `json:"is_trending"`
	IsActive    bool     `json:"is_active"`
}
