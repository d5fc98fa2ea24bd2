package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/usmanharun1738/cartar-pos/internal/cart"
	"github.com/usmanharun1738/cartar-pos/internal/logger"
	"github.com/usmanharun1738/cartar-pos/internal/metrics"
	"github.com/usmanharun1738/cartar-pos/internal/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, c *cart.Cart, params CheckoutParams) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	Stats() Stats
}

// Stats are running counters since process start, served on the admin
// stats endpoint.
type Stats struct {
	OrdersCompleted uint64 `json:"orders_completed"`
	StockConflicts  uint64 `json:"stock_conflicts"`
}

type service struct {
	repo    Repository
	taxRate decimal.Decimal

	ordersCompleted metrics.Counter
	stockConflicts  metrics.Counter
}

// NewService builds the checkout service. taxRate is fractional, e.g.
// 0.05 for a 5% tax.
func NewService(repo Repository, taxRate decimal.Decimal) Service {
	return &service{repo: repo, taxRate: taxRate}
}

// Checkout settles the terminal's cart as a cash sale: it freezes the
// cart, validates the payment, and persists order, items and stock
// decrements atomically. On insufficient cash the cart stays frozen so
// the cashier can collect the difference; on a stock conflict the cart
// is unfrozen for editing and nothing was written.
func (s *service) Checkout(ctx context.Context, c *cart.Cart, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", params.UserID),
	)
	timer := metrics.StartTimer()

	if err := c.BeginCheckout(); err != nil {
		switch {
		case errors.Is(err, cart.ErrCartEmpty):
			return nil, ErrEmptyCart
		case errors.Is(err, cart.ErrCheckoutInProgress):
			// Retry after a failed payment attempt; keep going.
		default:
			return nil, err
		}
	}

	if params.CashReceived.IsNegative() {
		return nil, money.ErrInvalidAmount
	}

	receipt := c.BuildReceipt(s.taxRate, params.CashReceived, params.Notes)

	if receipt.CashReceived.LessThan(receipt.Totals.Total) {
		log.Warn("insufficient payment",
			zap.String("total", receipt.Totals.Total.StringFixed(2)),
			zap.String("cash_received", receipt.CashReceived.StringFixed(2)),
		)
		return nil, fmt.Errorf("%w: total %s, received %s",
			ErrInsufficientPayment,
			receipt.Totals.Total.StringFixed(2),
			receipt.CashReceived.StringFixed(2))
	}

	o := orderFromReceipt(&receipt, params.UserID)

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		var conflict *StockConflictError
		if errors.As(err, &conflict) {
			s.stockConflicts.Inc()
			// Unfreeze so the cashier can adjust the losing line.
			if cancelErr := c.CancelCheckout(); cancelErr != nil {
				log.Error("failed to cancel checkout after stock conflict",
					zap.Error(cancelErr))
			}
			log.Warn("checkout lost stock race",
				zap.String("item", conflict.ItemName),
				zap.Int("requested", conflict.Requested),
				zap.Int("remaining", conflict.Remaining),
			)
		}
		return nil, err
	}

	if err := c.Complete(); err != nil {
		// The order is already committed; a bad cart state here is a
		// bug, not a reason to fail the sale.
		log.Error("failed to complete cart after checkout", zap.Error(err))
	}

	s.ordersCompleted.Inc()
	log.Info("checkout completed",
		zap.Uint("order_id", o.ID),
		zap.String("number", o.Number),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int64("duration_ms", timer.Duration().Milliseconds()),
	)

	return o, nil
}

func orderFromReceipt(receipt *cart.Receipt, userID uint) *Order {
	o := &Order{
		Reference:    GenerateReference(),
		UserID:       userID,
		Subtotal:     receipt.Totals.Subtotal,
		Discount:     decimal.Zero.Round(2),
		TaxRate:      receipt.Totals.TaxRate,
		TaxAmount:    receipt.Totals.TaxAmount,
		Total:        receipt.Totals.Total,
		CashReceived: receipt.CashReceived,
		ChangeDue:    receipt.ChangeDue,
		Status:       StatusPaid,
		Notes:        receipt.Notes,
	}
	for _, line := range receipt.Lines {
		o.Items = append(o.Items, &OrderItem{
			ItemType:    line.ItemType,
			RefID:       line.RefID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Discount:    decimal.Zero.Round(2),
			Subtotal:    line.Subtotal(),
		})
	}
	return o
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, filter)
}

func (s *service) Stats() Stats {
	return Stats{
		OrdersCompleted: s.ordersCompleted.Load(),
		StockConflicts:  s.stockConflicts.Load(),
	}
}
