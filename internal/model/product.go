package model

type Product struct {
	BaseModel
	Name        string     `db:"name" json:"name"`
	Brand       string     `db:"brand" json:"brand"`
	Category    string     `db:"category" json:"category"`
	Price       int64      `db:"price" json:"price"`
	MRP         *int64     `db:"mrp" json:"mrp"` // list price, display only
	Unit        string     `db:"unit" json:"unit"`
	Description *string    `db:"description" json:"description"`
	ImageURL    *string    `db:"image_url" json:"image_url"`
	VideoURL    *string    `db:"video_url" json:"video_url"`
	Images      StringList `db:"images" json:"images"`
	IsTrending  bool       `db:"is_trending" json:"is_trending"`
	IsActive    bool       `db:"is_active" json:"is_active"`
}
