package cart

import (
	"fmt"
	"time"

	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/shopspring/decimal"
)

// Status is the cart lifecycle state. Mutations are only allowed while
// building; a cart in checkout is frozen until the checkout completes
// or is cancelled.
type Status string

const (
	StatusEmpty           Status = "empty"
	StatusBuilding        Status = "building"
	StatusCheckoutPending Status = "checkout_pending"
	StatusCompleted       Status = "completed"
)

// Line is one sellable item in the cart. MaxQuantity carries the stock
// level observed when the item was added; quantity never exceeds it.
type Line struct {
	Key         string           `json:"key"`
	ItemType    product.ItemType `json:"item_type"`
	RefID       uint             `json:"ref_id"`
	Name        string           `json:"name"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Quantity    int              `json:"quantity"`
	MaxQuantity int              `json:"max_quantity"`
}

// Subtotal is unit price times quantity, rounded to cents.
func (l *Line) Subtotal() decimal.Decimal {
	return money.Round2(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// LineKey builds the cart key for a sellable item, e.g. "variant:9".
func LineKey(itemType product.ItemType, refID uint) string {
	return fmt.Sprintf("%s:%d", itemType, refID)
}

// Totals is the priced-out view of a cart at a given tax rate.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is an immutable snapshot of a priced cart at checkout time.
type Receipt struct {
	Lines        []Line          `json:"lines"`
	Totals       Totals          `json:"totals"`
	CashReceived decimal.Decimal `json:"cash_received"`
	ChangeDue    decimal.Decimal `json:"change_due"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ChangeDue is the cash to hand back: received minus total, floored at
// zero so an underpayment never reports negative change.
func ChangeDue(cashReceived, total decimal.Decimal) decimal.Decimal {
	change := cashReceived.Sub(total)
	if change.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return money.Round2(change)
}
