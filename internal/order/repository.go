package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/usmanharun1738/cartar-pos/internal/logger"
	"github.com/usmanharun1738/cartar-pos/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx persists an order with its items and decrements stock,
// all in one transaction. Every decrement is guarded by a
// stock_quantity >= qty condition; the first line that fails the guard
// rolls back the whole order and surfaces as *StockConflictError, so a
// sale never partially commits.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			reference, user_id, subtotal, discount, tax_rate, tax_amount,
			total, cash_received, change_due, status, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at
	`,
		o.Reference, o.UserID, o.Subtotal, o.Discount, o.TaxRate, o.TaxAmount,
		o.Total, o.CashReceived, o.ChangeDue, o.Status, o.Notes,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	o.Number = FormatNumber(o.ID)
	if _, err = tx.ExecContext(ctx,
		`UPDATE orders SET number = $1 WHERE id = $2`, o.Number, o.ID); err != nil {
		log.Error("failed to set order number", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, item_type, ref_id, product_name,
				unit_price, quantity, discount, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`,
			item.OrderID, item.ItemType, item.RefID, item.ProductName,
			item.UnitPrice, item.Quantity, item.Discount, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_name", item.ProductName),
				zap.Error(err),
			)
			return err
		}

		if err := r.decrementStock(ctx, tx, item); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("number", o.Number),
	)

	return nil
}

func (r *repository) decrementStock(ctx context.Context, tx *sql.Tx, item *OrderItem) error {
	var decrement, stockQuery string
	switch item.ItemType {
	case product.ItemTypeProduct:
		decrement = `
			UPDATE products
			SET stock_quantity = stock_quantity - $1
			WHERE id = $2 AND stock_quantity >= $1
		`
		stockQuery = `SELECT stock_quantity FROM products WHERE id = $1`
	case product.ItemTypeVariant:
		decrement = `
			UPDATE product_variants
			SET stock_quantity = stock_quantity - $1
			WHERE id = $2 AND stock_quantity >= $1
		`
		stockQuery = `SELECT stock_quantity FROM product_variants WHERE id = $1`
	default:
		return fmt.Errorf("unknown item type %q", item.ItemType)
	}

	res, err := tx.ExecContext(ctx, decrement, item.Quantity, item.RefID)
	if err != nil {
		return fmt.Errorf("stock decrement failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Guard failed: someone else sold the stock first. Read what is
	// left for the error message; the rollback happens in the caller.
	remaining := 0
	if scanErr := tx.QueryRowContext(ctx, stockQuery, item.RefID).Scan(&remaining); scanErr != nil && !errors.Is(scanErr, sql.ErrNoRows) {
		return scanErr
	}

	return &StockConflictError{
		ItemName:  item.ProductName,
		Requested: item.Quantity,
		Remaining: remaining,
	}
}

func (r *repository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, number, reference, user_id, subtotal, discount, tax_rate,
		       tax_amount, total, cash_received, change_due, status, notes, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Number, &o.Reference, &o.UserID, &o.Subtotal,
		&o.Discount, &o.TaxRate, &o.TaxAmount, &o.Total, &o.CashReceived,
		&o.ChangeDue, &o.Status, &o.Notes, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, item_type, ref_id, product_name,
		       unit_price, quantity, discount, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemType, &item.RefID,
			&item.ProductName, &item.UnitPrice, &item.Quantity,
			&item.Discount, &item.Subtotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	args := []interface{}{}
	conditions := []string{}

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT id, number, reference, user_id, subtotal, discount, tax_rate,
		       tax_amount, total, cash_received, change_due, status, notes, created_at
		FROM orders
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Number, &o.Reference, &o.UserID, &o.Subtotal,
			&o.Discount, &o.TaxRate, &o.TaxAmount, &o.Total, &o.CashReceived,
			&o.ChangeDue, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
