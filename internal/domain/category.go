package domain

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID string `json:"parentId,omitempty"`
	Image    string `json:"image,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

type CategoryInput struct {
	Name     string `json:"name"               validate:"required,min=2,max=100"`
	Slug     string `json:"slug,omitempty"     validate:"omitempty,slug"`
	ParentID string `json:"parentId,omitempty"`
	Image    string `json:"image,omitempty"    validate:"omitempty,url"`
	Active   *bool  `json:"active,omitempty"`
}

type CategoryPage struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

// ReorderInput lists ids in their new display order.
type ReorderInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
