package product

import "github.com/shopspring/decimal"

// ItemType distinguishes the two kinds of sellable entities.
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeVariant ItemType = "variant"
)

type Product struct {
	ID                uint            `json:"id"`
	CategoryID        uint            `json:"category_id"`
	Name              string          `json:"name"`
	SKUPrefix         string          `json:"sku_prefix"`
	Description       *string         `json:"description,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsActive          bool            `json:"is_active"`
	IsHot             bool            `json:"is_hot"`
	HasVariants       bool            `json:"has_variants"`
}

// Variant is a sellable option combination of a product. When the parent
// product has variants, price and stock live here, never on the product.
type Variant struct {
	ID            uint            `json:"id"`
	ProductID     uint            `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	OptionIDs     []uint          `json:"option_ids,omitempty"`
}

// SellableItem is the catalog read shape consumed by the POS terminal:
// a simple product or a single variant, flattened.
type SellableItem struct {
	ItemType   ItemType        `json:"item_type"`
	RefID      uint            `json:"ref_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID uint            `json:"category_id"`
	IsHot      bool            `json:"is_hot"`
}

type CatalogFilter struct {
	Search     *string
	CategoryID *uint
}

// UpdateProductParams is a full replacement of a product's editable
// fields. Stock is adjusted through AdjustStock, never here.
type UpdateProductParams struct {
	Name         string          `json:"name"`
	CategoryID   uint            `json:"category_id"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Description  *string         `json:"description,omitempty"`
}

type CreateProductParams struct {
	Name              string          `json:"name"`
	CategoryID        uint            `json:"category_id"`
	SKUPrefix         string          `json:"sku_prefix"`
	Description       *string         `json:"description,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsHot             bool            `json:"is_hot"`
	Variants          []VariantDraft  `json:"variants"`
}
