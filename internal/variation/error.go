package variation

import "errors"

var (
	ErrEmptyTypeName   = errors.New("variation type name cannot be empty")
	ErrEmptyOptionName = errors.New("variation option name cannot be empty")
	ErrEmptyCode       = errors.New("variation option code cannot be empty")
	ErrCodeTooLong     = errors.New("variation option code exceeds 10 characters")
	ErrTypeNotFound    = errors.New("variation type not found")
	ErrOptionNotFound  = errors.New("variation option not found")
)

// MaxCodeLen bounds SKU tokens.
const MaxCodeLen = 10
