package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart           = errors.New("cannot checkout an empty cart")
	ErrInsufficientPayment = errors.New("cash received is less than the total")
	ErrOrderNotFound       = errors.New("order not found")
)

// StockConflictError reports a checkout that lost a race on stock: the
// quantity in the cart is no longer available. The whole order was
// rolled back.
type StockConflictError struct {
	ItemName  string
	Requested int
	Remaining int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, %d remaining",
		e.ItemName, e.Requested, e.Remaining)
}
