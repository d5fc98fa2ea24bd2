package order

import (
	"time"

	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/shopspring/decimal"
)

const StatusPaid = "paid"

type Order struct {
	ID           uint            `json:"id"`
	Number       string          `json:"number"`
	Reference    string          `json:"reference"`
	UserID       uint            `json:"user_id"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
	CashReceived decimal.Decimal `json:"cash_received"`
	ChangeDue    decimal.Decimal `json:"change_due"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []*OrderItem    `json:"items,omitempty"`
}

// OrderItem is a frozen copy of a cart line at the moment of sale.
// Later price or name edits on the catalog never touch it.
type OrderItem struct {
	ID          uint             `json:"id"`
	OrderID     uint             `json:"order_id"`
	ItemType    product.ItemType `json:"item_type"`
	RefID       uint             `json:"ref_id"`
	ProductName string           `json:"product_name"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Quantity    int              `json:"quantity"`
	Discount    decimal.Decimal  `json:"discount"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status *string
	UserID *uint
	Limit  int
	Offset int
}

type CheckoutParams struct {
	UserID       uint            `json:"-"`
	CashReceived decimal.Decimal `json:"cash_received"`
	Notes        string          `json:"notes,omitempty"`
}
