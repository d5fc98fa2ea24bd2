package category

type Category struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type CreateCategoryParams struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

type UpdateCategoryParams struct {
	ID        uint    `json:"id"`
	Name      *string `json:"name,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}
