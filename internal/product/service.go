package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/usmanharun1738/cartar-pos/internal/audit"
	"github.com/usmanharun1738/cartar-pos/internal/logger"
	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/variation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Catalog(ctx context.Context, filter CatalogFilter) ([]*SellableItem, error)
	GetSellable(ctx context.Context, itemType ItemType, refID uint) (*SellableItem, error)
	GetProduct(ctx context.Context, id uint) (*Product, []*Variant, error)
	PreviewVariants(ctx context.Context, optionIDs []uint, basePrice decimal.Decimal, skuPrefix string) ([]VariantDraft, error)
	CreateProduct(ctx context.Context, actorID uint, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, actorID uint, id uint, params UpdateProductParams) error
	DeleteProduct(ctx context.Context, actorID uint, id uint) error
	ChangePrice(ctx context.Context, actorID uint, itemType ItemType, id uint, newPrice decimal.Decimal) error
	AdjustStock(ctx context.Context, actorID uint, itemType ItemType, id uint, qty int) error
	SetVariantActive(ctx context.Context, actorID uint, variantID uint, active bool) error
	ListLowStock(ctx context.Context) ([]*SellableItem, error)
}

type service struct {
	repo          Repository
	variationRepo variation.Repository
	auditor       audit.Recorder
}

func NewService(repo Repository, variationRepo variation.Repository, auditor audit.Recorder) Service {
	return &service{repo: repo, variationRepo: variationRepo, auditor: auditor}
}

func (s *service) Catalog(ctx context.Context, filter CatalogFilter) ([]*SellableItem, error) {
	return s.repo.Catalog(ctx, filter)
}

func (s *service) GetSellable(ctx context.Context, itemType ItemType, refID uint) (*SellableItem, error) {
	return s.repo.GetSellable(ctx, itemType, refID)
}

func (s *service) GetProduct(ctx context.Context, id uint) (*Product, []*Variant, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) ListLowStock(ctx context.Context) ([]*SellableItem, error) {
	return s.repo.ListLowStock(ctx)
}

// PreviewVariants resolves the selected option ids into ordered axes and
// runs the combinator. Nothing is persisted; calling it again after a
// selection change rebuilds every draft, so manual edits on previous
// drafts do not survive a regeneration.
func (s *service) PreviewVariants(ctx context.Context, optionIDs []uint, basePrice decimal.Decimal, skuPrefix string) ([]VariantDraft, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PreviewVariants"),
	)

	axes, err := s.resolveAxes(ctx, optionIDs)
	if err != nil {
		log.Warn("failed to resolve variant selection", zap.Error(err))
		return nil, err
	}

	drafts, err := GenerateVariants(axes, money.Round2(basePrice), skuPrefix)
	if err != nil {
		return nil, err
	}

	log.Debug("variant preview generated",
		zap.Int("axis_count", len(axes)),
		zap.Int("draft_count", len(drafts)),
	)

	return drafts, nil
}

// resolveAxes groups the selected options by their variation type in the
// type's configured sort order. GetOptionsByIDs already returns rows in
// that order, so grouping preserves it.
func (s *service) resolveAxes(ctx context.Context, optionIDs []uint) ([]Axis, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}

	details, err := s.variationRepo.GetOptionsByIDs(ctx, optionIDs)
	if err != nil {
		return nil, err
	}
	if len(details) != len(optionIDs) {
		return nil, fmt.Errorf("%w: %d of %d selected options not found",
			ErrInvalidSelection, len(optionIDs)-len(details), len(optionIDs))
	}

	var axes []Axis
	byType := map[uint]int{}
	for _, d := range details {
		idx, ok := byType[d.TypeID]
		if !ok {
			axes = append(axes, Axis{TypeID: d.TypeID, TypeSlug: d.TypeSlug})
			idx = len(axes) - 1
			byType[d.TypeID] = idx
		}
		axes[idx].Options = append(axes[idx].Options, AxisOption{
			OptionID: d.OptionID,
			Name:     d.Name,
			Code:     d.Code,
		})
	}

	return axes, nil
}

func (s *service) CreateProduct(ctx context.Context, actorID uint, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("product_name", params.Name),
	)

	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrEmptyProductName
	}
	if params.SellingPrice.IsNegative() || params.CostPrice.IsNegative() {
		return nil, money.ErrInvalidAmount
	}
	for i, draft := range params.Variants {
		if strings.TrimSpace(draft.SKU) == "" || strings.TrimSpace(draft.Name) == "" {
			return nil, fmt.Errorf("%w: draft %d has blank sku or name", ErrInvalidDraft, i)
		}
		if draft.Price.IsNegative() {
			return nil, fmt.Errorf("%w: draft %d has negative price", ErrInvalidDraft, i)
		}
		if draft.Stock < 0 {
			return nil, fmt.Errorf("%w: draft %d has negative stock", ErrInvalidDraft, i)
		}
	}

	p := &Product{
		CategoryID:        params.CategoryID,
		Name:              strings.TrimSpace(params.Name),
		SKUPrefix:         strings.TrimSpace(params.SKUPrefix),
		Description:       params.Description,
		CostPrice:         money.Round2(params.CostPrice),
		SellingPrice:      money.Round2(params.SellingPrice),
		StockQuantity:     params.StockQuantity,
		LowStockThreshold: params.LowStockThreshold,
		IsActive:          true,
		IsHot:             params.IsHot,
		HasVariants:       len(params.Variants) > 0,
	}
	if p.SKUPrefix == "" {
		p.SKUPrefix = DefaultSKUPrefix
	}

	// Stock of a variant product lives on its variants.
	if p.HasVariants {
		p.StockQuantity = 0
	}

	drafts := make([]VariantDraft, len(params.Variants))
	for i, draft := range params.Variants {
		draft.Price = money.Round2(draft.Price)
		drafts[i] = draft
	}

	if err := s.repo.CreateProductTx(ctx, p, drafts); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorID:   actorID,
		ProductID: p.ID,
		Action:    audit.ActionCreated,
		Description: fmt.Sprintf("created %q with %d variants",
			p.Name, len(drafts)),
	})

	log.Info("product created",
		zap.Uint("product_id", p.ID),
		zap.Int("variant_count", len(drafts)),
	)

	return p, nil
}

// UpdateProduct edits a product's name, category, price and
// description. Each field that actually changed gets its own audit
// entry, so the product history reads change by change.
func (s *service) UpdateProduct(ctx context.Context, actorID uint, id uint, params UpdateProductParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.Uint("product_id", id),
	)

	if strings.TrimSpace(params.Name) == "" {
		return ErrEmptyProductName
	}
	if params.SellingPrice.IsNegative() {
		return money.ErrInvalidAmount
	}
	params.Name = strings.TrimSpace(params.Name)
	params.SellingPrice = money.Round2(params.SellingPrice)

	prev, err := s.repo.UpdateProduct(ctx, id, params)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return err
	}

	if prev.Name != params.Name {
		s.auditor.Record(ctx, audit.Entry{
			ActorID:   actorID,
			ProductID: id,
			Action:    audit.ActionInformation,
			Field:     "name",
			OldValue:  prev.Name,
			NewValue:  params.Name,
		})
	}
	if prev.CategoryID != params.CategoryID {
		s.auditor.Record(ctx, audit.Entry{
			ActorID:   actorID,
			ProductID: id,
			Action:    audit.ActionInformation,
			Field:     "category_id",
			OldValue:  fmt.Sprintf("%d", prev.CategoryID),
			NewValue:  fmt.Sprintf("%d", params.CategoryID),
		})
	}
	if !prev.SellingPrice.Equal(params.SellingPrice) {
		s.auditor.Record(ctx, audit.Entry{
			ActorID:   actorID,
			ProductID: id,
			Action:    audit.ActionPriceChange,
			Field:     "price",
			OldValue:  prev.SellingPrice.StringFixed(2),
			NewValue:  params.SellingPrice.StringFixed(2),
		})
	}

	log.Info("product updated", zap.String("product_name", params.Name))

	return nil
}

// DeleteProduct soft-deletes a product and its variants. Past orders
// keep their item snapshots; only the catalog forgets it.
func (s *service) DeleteProduct(ctx context.Context, actorID uint, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.Uint("product_id", id),
	)

	name, err := s.repo.DeactivateProductTx(ctx, id)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorID:     actorID,
		ProductID:   id,
		Action:      audit.ActionDeleted,
		Description: fmt.Sprintf("deactivated %q and its variants", name),
	})

	log.Info("product deleted", zap.String("product_name", name))

	return nil
}

func (s *service) SetVariantActive(ctx context.Context, actorID uint, variantID uint, active bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetVariantActive"),
		zap.Uint("variant_id", variantID),
		zap.Bool("active", active),
	)

	was, productID, err := s.repo.SetVariantActive(ctx, variantID, active)
	if err != nil {
		log.Error("failed to toggle variant", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorID:   actorID,
		ProductID: productID,
		VariantID: &variantID,
		Action:    audit.ActionInformation,
		Field:     "is_active",
		OldValue:  fmt.Sprintf("%t", was),
		NewValue:  fmt.Sprintf("%t", active),
	})

	return nil
}

func (s *service) ChangePrice(ctx context.Context, actorID uint, itemType ItemType, id uint, newPrice decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ChangePrice"),
		zap.String("item_type", string(itemType)),
		zap.Uint("item_id", id),
	)

	if newPrice.IsNegative() {
		return money.ErrInvalidAmount
	}
	newPrice = money.Round2(newPrice)

	old, productID, err := s.repo.UpdatePrice(ctx, itemType, id, newPrice)
	if err != nil {
		log.Error("failed to update price", zap.Error(err))
		return err
	}

	entry := audit.Entry{
		ActorID:   actorID,
		ProductID: productID,
		Action:    audit.ActionPriceChange,
		Field:     "price",
		OldValue:  old.StringFixed(2),
		NewValue:  newPrice.StringFixed(2),
	}
	if itemType == ItemTypeVariant {
		entry.VariantID = &id
	}
	s.auditor.Record(ctx, entry)

	log.Info("price updated",
		zap.String("old_price", old.StringFixed(2)),
		zap.String("new_price", newPrice.StringFixed(2)),
	)

	return nil
}

func (s *service) AdjustStock(ctx context.Context, actorID uint, itemType ItemType, id uint, qty int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.String("item_type", string(itemType)),
		zap.Uint("item_id", id),
	)

	if qty < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidDraft)
	}

	old, productID, err := s.repo.UpdateStock(ctx, itemType, id, qty)
	if err != nil {
		log.Error("failed to update stock", zap.Error(err))
		return err
	}

	entry := audit.Entry{
		ActorID:   actorID,
		ProductID: productID,
		Action:    audit.ActionStockUpdate,
		Field:     "stock_quantity",
		OldValue:  fmt.Sprintf("%d", old),
		NewValue:  fmt.Sprintf("%d", qty),
	}
	if itemType == ItemTypeVariant {
		entry.VariantID = &id
	}
	s.auditor.Record(ctx, entry)

	log.Info("stock updated", zap.Int("old_stock", old), zap.Int("new_stock", qty))

	return nil
}
