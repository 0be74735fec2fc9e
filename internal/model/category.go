package model

type Category struct {
	BaseModel
	Name      string `db:"name" json:"name"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// DefaultCategories seeds the category table and backs product validation when it is empty.
var DefaultCategories = []string{
	"Cheese",
	"Butter",
	"Ketchup",
	"Seasoning",
	"Mayonnaise",
	"Sauces",
	"Syrup",
	"Bread Crumb",
	"Premix",
	"Purree",
	"Cream",
	"Instant Coffee",
	"Frozen snacks",
}
