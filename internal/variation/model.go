package variation

// VariationType is one axis of variation (Size, Color, Material).
type VariationType struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	SortOrder int                `json:"sort_order"`
	IsActive  bool               `json:"is_active"`
	Options   []*VariationOption `json:"options,omitempty"`
}

// VariationOption belongs to exactly one VariationType. Code is the
// short token used verbatim in SKU construction.
type VariationOption struct {
	ID         uint    `json:"id"`
	TypeID     uint    `json:"variation_type_id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	ColorValue *string `json:"color_value,omitempty"`
	SortOrder  int     `json:"sort_order"`
	IsActive   bool    `json:"is_active"`
}

// OptionDetail is a flat row used when resolving a variant selection:
// option fields joined with the owning type, ordered by type sort order
// then option sort order.
type OptionDetail struct {
	OptionID      uint
	Name          string
	Code          string
	TypeID        uint
	TypeSlug      string
	TypeSortOrder int
	SortOrder     int
}

type CreateTypeParams struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

type CreateOptionParams struct {
	TypeID     uint    `json:"variation_type_id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	ColorValue *string `json:"color_value,omitempty"`
	SortOrder  int     `json:"sort_order"`
}

// UpdateTypeParams is a full replacement of a type's editable fields.
// A blank Slug re-derives it from the new name.
type UpdateTypeParams struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

type UpdateOptionParams struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	ColorValue *string `json:"color_value,omitempty"`
	SortOrder  int     `json:"sort_order"`
}
