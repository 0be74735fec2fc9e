package dto

type CreateCategoryInput struct {
	Name      string
	SortOrder int
}

type UpdateCategoryInput struct {
	ID        string
	Name      string
	SortOrder int
}
