package cart

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartLocked         = errors.New("cart is locked by a pending checkout")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrOutOfStock         = errors.New("item is out of stock")
	ErrNotInCheckout      = errors.New("cart has no pending checkout")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrCartCompleted      = errors.New("cart is already completed")
)
