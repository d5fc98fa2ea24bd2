package audit

import "time"

// Action classifies what kind of change was recorded.
const (
	ActionCreated     = "created"
	ActionPriceChange = "price_change"
	ActionStockUpdate = "stock_update"
	ActionInformation = "information"
	ActionDeleted     = "deleted"
)

// Entry is one recorded change to a product or variant field.
type Entry struct {
	ID          uint      `json:"id"`
	ActorID     uint      `json:"actor_id"`
	ProductID   uint      `json:"product_id"`
	VariantID   *uint     `json:"product_variant_id,omitempty"`
	Action      string    `json:"action"`
	Field       string    `json:"field"`
	OldValue    string    `json:"old_value"`
	NewValue    string    `json:"new_value"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
