package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Catalog(ctx context.Context, filter CatalogFilter) ([]*SellableItem, error)
	GetSellable(ctx context.Context, itemType ItemType, refID uint) (*SellableItem, error)
	GetProduct(ctx context.Context, id uint) (*Product, []*Variant, error)
	CreateProductTx(ctx context.Context, p *Product, drafts []VariantDraft) error
	UpdateProduct(ctx context.Context, id uint, params UpdateProductParams) (*Product, error)
	DeactivateProductTx(ctx context.Context, id uint) (string, error)
	UpdatePrice(ctx context.Context, itemType ItemType, id uint, price decimal.Decimal) (decimal.Decimal, uint, error)
	UpdateStock(ctx context.Context, itemType ItemType, id uint, qty int) (int, uint, error)
	SetVariantActive(ctx context.Context, id uint, active bool) (bool, uint, error)
	ListLowStock(ctx context.Context) ([]*SellableItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Catalog returns active, in-stock sellable items: simple products plus
// the active variants of variant products. A variant product itself
// never appears, only its variants do.
func (r *repository) Catalog(ctx context.Context, filter CatalogFilter) ([]*SellableItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Catalog"),
	)

	args := []interface{}{}
	prodCond := []string{"p.is_active = TRUE", "p.has_variants = FALSE", "p.stock_quantity > 0"}
	varCond := []string{"p.is_active = TRUE", "v.is_active = TRUE", "v.stock_quantity > 0"}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		idx := len(args)
		prodCond = append(prodCond, fmt.Sprintf("p.name ILIKE $%d", idx))
		varCond = append(varCond,
			fmt.Sprintf("(p.name ILIKE $%d OR v.variant_name ILIKE $%d)", idx, idx))
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		idx := len(args)
		prodCond = append(prodCond, fmt.Sprintf("p.category_id = $%d", idx))
		varCond = append(varCond, fmt.Sprintf("p.category_id = $%d", idx))
	}

	query := fmt.Sprintf(`
		SELECT 'product' AS item_type, p.id AS ref_id, p.name AS name,
		       p.selling_price AS price, p.stock_quantity AS stock,
		       p.category_id AS category_id, p.is_hot AS is_hot
		FROM products p
		WHERE %s
		UNION ALL
		SELECT 'variant', v.id, p.name || ' - ' || v.variant_name,
		       v.price, v.stock_quantity, p.category_id, p.is_hot
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE %s
		ORDER BY name ASC
	`, strings.Join(prodCond, " AND "), strings.Join(varCond, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query catalog", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*SellableItem
	for rows.Next() {
		var item SellableItem
		if err := rows.Scan(&item.ItemType, &item.RefID, &item.Name,
			&item.Price, &item.Stock, &item.CategoryID, &item.IsHot); err != nil {
			log.Error("failed to scan catalog row", zap.Error(err))
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("catalog fetched", zap.Int("count", len(items)))

	return items, nil
}

func (r *repository) GetSellable(ctx context.Context, itemType ItemType, refID uint) (*SellableItem, error) {
	var query string
	switch itemType {
	case ItemTypeProduct:
		query = `
			SELECT 'product', p.id, p.name, p.selling_price, p.stock_quantity, p.category_id, p.is_hot
			FROM products p
			WHERE p.id = $1 AND p.is_active = TRUE AND p.has_variants = FALSE
		`
	case ItemTypeVariant:
		query = `
			SELECT 'variant', v.id, p.name || ' - ' || v.variant_name,
			       v.price, v.stock_quantity, p.category_id, p.is_hot
			FROM product_variants v
			JOIN products p ON p.id = v.product_id
			WHERE v.id = $1 AND v.is_active = TRUE AND p.is_active = TRUE
		`
	default:
		return nil, ErrItemNotFound
	}

	var item SellableItem
	err := r.db.QueryRowContext(ctx, query, refID).
		Scan(&item.ItemType, &item.RefID, &item.Name,
			&item.Price, &item.Stock, &item.CategoryID, &item.IsHot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetProduct(ctx context.Context, id uint) (*Product, []*Variant, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, category_id, name, sku_prefix, description,
		       cost_price, selling_price, stock_quantity, low_stock_threshold,
		       is_active, is_hot, has_variants
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.SKUPrefix, &p.Description,
		&p.CostPrice, &p.SellingPrice, &p.StockQuantity, &p.LowStockThreshold,
		&p.IsActive, &p.IsHot, &p.HasVariants)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrProductNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if !p.HasVariants {
		return &p, nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, sku, variant_name, price, stock_quantity, is_active
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var variants []*Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name,
			&v.Price, &v.StockQuantity, &v.IsActive); err != nil {
			return nil, nil, err
		}
		variants = append(variants, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &p, variants, nil
}

// CreateProductTx persists a product and its generated variants in one
// transaction. A unique-index hit on any SKU aborts the whole insert
// and surfaces as ErrDuplicateSKU; colliding combinations are never
// silently merged or renamed.
func (r *repository) CreateProductTx(ctx context.Context, p *Product, drafts []VariantDraft) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProductTx"),
		zap.String("product_name", p.Name),
		zap.Int("variant_count", len(drafts)),
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
		INSERT INTO products (
			category_id, name, sku_prefix, description,
			cost_price, selling_price, stock_quantity, low_stock_threshold,
			is_active, is_hot, has_variants
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		p.CategoryID, p.Name, p.SKUPrefix, p.Description,
		p.CostPrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold,
		p.IsActive, p.IsHot, p.HasVariants,
	).Scan(&p.ID)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return mapSKUConflict(err, p.SKUPrefix)
	}

	for i, draft := range drafts {
		var variantID uint
		err = tx.QueryRowContext(ctx, `
			INSERT INTO product_variants (
				product_id, sku, variant_name, price, stock_quantity, is_active
			) VALUES ($1,$2,$3,$4,$5,TRUE)
			RETURNING id
		`, p.ID, draft.SKU, draft.Name, draft.Price, draft.Stock).Scan(&variantID)
		if err != nil {
			log.Error("failed to insert variant",
				zap.Int("draft_index", i),
				zap.String("sku", draft.SKU),
				zap.Error(err),
			)
			return mapSKUConflict(err, draft.SKU)
		}

		for _, optionID := range draft.OptionIDs {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO product_variant_options (product_variant_id, variation_option_id)
				VALUES ($1, $2)
			`, variantID, optionID)
			if err != nil {
				log.Error("failed to attach variant option",
					zap.Uint("variant_id", variantID),
					zap.Uint("option_id", optionID),
					zap.Error(err),
				)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit product transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("product created", zap.Uint("product_id", p.ID))

	return nil
}

// UpdateProduct replaces the editable columns and returns the previous
// values, so the caller can diff old against new for the audit trail.
func (r *repository) UpdateProduct(ctx context.Context, id uint, params UpdateProductParams) (*Product, error) {
	query := `
		UPDATE products p
		SET name = $1, category_id = $2, selling_price = $3, description = $4
		FROM (SELECT id, name, category_id, selling_price, description
		      FROM products WHERE id = $5 FOR UPDATE) old
		WHERE p.id = old.id
		RETURNING old.name, old.category_id, old.selling_price, old.description
	`

	prev := Product{ID: id}
	err := r.db.QueryRowContext(ctx, query,
		params.Name, params.CategoryID, params.SellingPrice, params.Description, id).
		Scan(&prev.Name, &prev.CategoryID, &prev.SellingPrice, &prev.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product failed: %w", err)
	}

	return &prev, nil
}

// DeactivateProductTx soft-deletes a product together with all of its
// variants, so neither surfaces in the catalog again. Order items keep
// their frozen snapshot, which is why rows are disabled, not removed.
func (r *repository) DeactivateProductTx(ctx context.Context, id uint) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeactivateProductTx"),
		zap.Uint("product_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return "", err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var name string
	err = tx.QueryRowContext(ctx,
		`UPDATE products SET is_active = FALSE WHERE id = $1 RETURNING name`, id).
		Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to deactivate product", zap.Error(err))
		return "", err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE product_variants SET is_active = FALSE WHERE product_id = $1`, id); err != nil {
		log.Error("failed to deactivate variants", zap.Error(err))
		return "", err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit deactivation", zap.Error(err))
		return "", err
	}

	committed = true
	log.Info("product deactivated", zap.String("product_name", name))

	return name, nil
}

// SetVariantActive toggles a single variant, returning the previous
// flag and the owning product id.
func (r *repository) SetVariantActive(ctx context.Context, id uint, active bool) (bool, uint, error) {
	query := `
		UPDATE product_variants v SET is_active = $1
		FROM (SELECT id, is_active FROM product_variants WHERE id = $2 FOR UPDATE) old
		WHERE v.id = old.id
		RETURNING old.is_active, v.product_id
	`

	var (
		was       bool
		productID uint
	)
	err := r.db.QueryRowContext(ctx, query, active, id).Scan(&was, &productID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, ErrItemNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("set variant active failed: %w", err)
	}

	return was, productID, nil
}

// UpdatePrice sets a new price and returns the previous one plus the
// owning product id (the item's own id for simple products).
func (r *repository) UpdatePrice(ctx context.Context, itemType ItemType, id uint, price decimal.Decimal) (decimal.Decimal, uint, error) {
	var query string
	switch itemType {
	case ItemTypeProduct:
		query = `
			UPDATE products p SET selling_price = $1
			FROM (SELECT id, selling_price FROM products WHERE id = $2 FOR UPDATE) old
			WHERE p.id = old.id
			RETURNING old.selling_price, p.id
		`
	case ItemTypeVariant:
		query = `
			UPDATE product_variants v SET price = $1
			FROM (SELECT id, price FROM product_variants WHERE id = $2 FOR UPDATE) old
			WHERE v.id = old.id
			RETURNING old.price, v.product_id
		`
	default:
		return decimal.Zero, 0, ErrItemNotFound
	}

	var (
		old       decimal.Decimal
		productID uint
	)
	err := r.db.QueryRowContext(ctx, query, price, id).Scan(&old, &productID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, 0, ErrItemNotFound
	}
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("update price failed: %w", err)
	}

	return old, productID, nil
}

func (r *repository) UpdateStock(ctx context.Context, itemType ItemType, id uint, qty int) (int, uint, error) {
	var query string
	switch itemType {
	case ItemTypeProduct:
		query = `
			UPDATE products p SET stock_quantity = $1
			FROM (SELECT id, stock_quantity FROM products WHERE id = $2 FOR UPDATE) old
			WHERE p.id = old.id
			RETURNING old.stock_quantity, p.id
		`
	case ItemTypeVariant:
		query = `
			UPDATE product_variants v SET stock_quantity = $1
			FROM (SELECT id, stock_quantity FROM product_variants WHERE id = $2 FOR UPDATE) old
			WHERE v.id = old.id
			RETURNING old.stock_quantity, v.product_id
		`
	default:
		return 0, 0, ErrItemNotFound
	}

	var (
		old       int
		productID uint
	)
	err := r.db.QueryRowContext(ctx, query, qty, id).Scan(&old, &productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrItemNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("update stock failed: %w", err)
	}

	return old, productID, nil
}

// ListLowStock reports sellable items at or below their restock
// threshold. Variants inherit the threshold of their parent product.
func (r *repository) ListLowStock(ctx context.Context) ([]*SellableItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'product' AS item_type, p.id AS ref_id, p.name AS name,
		       p.selling_price AS price, p.stock_quantity AS stock,
		       p.category_id AS category_id, p.is_hot AS is_hot
		FROM products p
		WHERE p.is_active = TRUE AND p.has_variants = FALSE
		  AND p.stock_quantity <= p.low_stock_threshold
		UNION ALL
		SELECT 'variant', v.id, p.name || ' - ' || v.variant_name,
		       v.price, v.stock_quantity, p.category_id, p.is_hot
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE p.is_active = TRUE AND v.is_active = TRUE
		  AND v.stock_quantity <= p.low_stock_threshold
		ORDER BY stock ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*SellableItem
	for rows.Next() {
		var item SellableItem
		if err := rows.Scan(&item.ItemType, &item.RefID, &item.Name,
			&item.Price, &item.Stock, &item.CategoryID, &item.IsHot); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func mapSKUConflict(err error, sku string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
	}
	return err
}
