package cart

import (
	"sync"
	"time"

	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/shopspring/decimal"
)

// Cart is the in-memory working cart of one POS terminal. All methods
// are safe for concurrent use.
type Cart struct {
	mu     sync.Mutex
	status Status
	lines  []*Line
	index  map[string]*Line
}

func New() *Cart {
	return &Cart{
		status: StatusEmpty,
		index:  make(map[string]*Line),
	}
}

func (c *Cart) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// AddItem adds qty units of a sellable item, merging into an existing
// line when the item is already in the cart. The resulting quantity is
// clamped to the item's stock without error: tapping an item past its
// stock level simply stops increasing the count.
func (c *Cart) AddItem(item *product.SellableItem, qty int) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return Line{}, err
	}
	if item.Stock <= 0 {
		return Line{}, ErrOutOfStock
	}
	if qty < 1 {
		qty = 1
	}

	key := LineKey(item.ItemType, item.RefID)
	line, ok := c.index[key]
	if !ok {
		line = &Line{
			Key:         key,
			ItemType:    item.ItemType,
			RefID:       item.RefID,
			Name:        item.Name,
			UnitPrice:   money.Round2(item.Price),
			MaxQuantity: item.Stock,
		}
		c.lines = append(c.lines, line)
		c.index[key] = line
	}

	line.Quantity += qty
	if line.Quantity > line.MaxQuantity {
		line.Quantity = line.MaxQuantity
	}

	c.status = StatusBuilding

	return *line, nil
}

// SetQuantity sets a line's quantity directly. Zero or negative removes
// the line; anything above the line's stock cap is clamped down.
func (c *Cart) SetQuantity(key string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}

	line, ok := c.index[key]
	if !ok {
		return ErrLineNotFound
	}

	if qty <= 0 {
		c.removeLocked(key)
		return nil
	}

	if qty > line.MaxQuantity {
		qty = line.MaxQuantity
	}
	line.Quantity = qty

	return nil
}

// Remove drops a line. Removing a key that is not in the cart is a
// no-op.
func (c *Cart) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}

	c.removeLocked(key)

	return nil
}

// mutableLocked gates line mutations: a cart frozen for payment stays
// frozen, and a completed cart is terminal. Callers hold the mutex.
func (c *Cart) mutableLocked() error {
	switch c.status {
	case StatusCheckoutPending:
		return ErrCartLocked
	case StatusCompleted:
		return ErrCartCompleted
	}
	return nil
}

func (c *Cart) removeLocked(key string) {
	if _, ok := c.index[key]; !ok {
		return
	}
	delete(c.index, key)
	for i, line := range c.lines {
		if line.Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	if len(c.lines) == 0 {
		c.status = StatusEmpty
	}
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}

	c.lines = nil
	c.index = make(map[string]*Line)
	c.status = StatusEmpty

	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// Totals prices out the cart: subtotal of all lines, tax at the given
// fractional rate (0.05 for 5%), and their sum. Every figure is rounded
// to cents.
func (c *Cart) Totals(taxRate decimal.Decimal) Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	subtotal = money.Round2(subtotal)
	tax := money.Round2(subtotal.Mul(taxRate))

	return Totals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Total:     money.Round2(subtotal.Add(tax)),
	}
}

// BeginCheckout freezes the cart for payment. Further mutations fail
// with ErrCartLocked until Complete or CancelCheckout.
func (c *Cart) BeginCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.status {
	case StatusEmpty:
		return ErrCartEmpty
	case StatusCompleted:
		return ErrCartCompleted
	case StatusCheckoutPending:
		return ErrCheckoutInProgress
	}

	if len(c.lines) == 0 {
		return ErrCartEmpty
	}

	c.status = StatusCheckoutPending

	return nil
}

// CancelCheckout unfreezes the cart with its lines intact.
func (c *Cart) CancelCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusCheckoutPending {
		return ErrNotInCheckout
	}

	c.status = StatusBuilding

	return nil
}

// Complete marks a pending checkout as paid. The cart is spent after
// this; the session store hands out a fresh one for the next sale.
func (c *Cart) Complete() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusCheckoutPending {
		return ErrNotInCheckout
	}

	c.lines = nil
	c.index = make(map[string]*Line)
	c.status = StatusCompleted

	return nil
}

// ItemCount is the total unit count across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// BuildReceipt snapshots the cart into an immutable receipt priced at
// the given tax rate, with change computed from the cash received.
func (c *Cart) BuildReceipt(taxRate, cashReceived decimal.Decimal, notes string) Receipt {
	totals := c.Totals(taxRate)
	return Receipt{
		Lines:        c.Lines(),
		Totals:       totals,
		CashReceived: money.Round2(cashReceived),
		ChangeDue:    ChangeDue(cashReceived, totals.Total),
		Notes:        notes,
		CreatedAt:    time.Now(),
	}
}
