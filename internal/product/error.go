package product

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyProductName = errors.New("product name cannot be empty")
	ErrInvalidSelection = errors.New("invalid variant selection")
	ErrInvalidDraft     = errors.New("invalid variant draft")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("sellable item not found")

	// -- Persistence Conflicts --
	ErrDuplicateSKU = errors.New("duplicate SKU")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
