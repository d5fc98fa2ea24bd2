package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSKUPrefix is used when a product has no SKU prefix of its own.
const DefaultSKUPrefix = "PRD"

// AxisOption is one selectable value on an axis.
type AxisOption struct {
	OptionID uint   `json:"option_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
}

// Axis is one variation type together with the options chosen for it.
// Axis order is fixed by the caller (type sort order) and determines the
// token order of generated SKUs and names.
type Axis struct {
	TypeID   uint         `json:"type_id"`
	TypeSlug string       `json:"type_slug"`
	Options  []AxisOption `json:"options"`
}

// VariantDraft is a not-yet-persisted variant produced by the
// combinator. Price and stock start at their defaults; the operator
// edits them before saving.
type VariantDraft struct {
	OptionIDs []uint          `json:"option_ids"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// GenerateVariants expands the chosen axes into the full cartesian
// product of option combinations. Axes with no options contribute
// nothing; with zero populated axes the result is empty and the caller
// treats the product as simple. Every generated draft starts at the
// base price with zero stock. Colliding SKUs are not deduplicated here,
// the database surfaces them as ErrDuplicateSKU at persistence time.
func GenerateVariants(axes []Axis, basePrice decimal.Decimal, skuPrefix string) ([]VariantDraft, error) {
	populated, err := validateAxes(axes)
	if err != nil {
		return nil, err
	}

	if len(populated) == 0 {
		return []VariantDraft{}, nil
	}

	if skuPrefix == "" {
		skuPrefix = DefaultSKUPrefix
	}

	combos := cartesianProduct(populated)

	drafts := make([]VariantDraft, 0, len(combos))
	for _, combo := range combos {
		optionIDs := make([]uint, 0, len(combo))
		names := make([]string, 0, len(combo))
		codes := make([]string, 0, len(combo))

		for _, o := range combo {
			optionIDs = append(optionIDs, o.OptionID)
			names = append(names, o.Name)
			codes = append(codes, o.Code)
		}

		drafts = append(drafts, VariantDraft{
			OptionIDs: optionIDs,
			SKU:       skuPrefix + "-" + strings.Join(codes, "-"),
			Name:      strings.Join(names, " / "),
			Price:     basePrice,
			Stock:     0,
		})
	}

	return drafts, nil
}

// validateAxes drops empty axes and rejects malformed input: an axis
// appearing twice, or one option selected on two different axes.
func validateAxes(axes []Axis) ([]Axis, error) {
	seenTypes := make(map[uint]bool)
	seenOptions := make(map[uint]bool)

	populated := make([]Axis, 0, len(axes))
	for _, axis := range axes {
		if len(axis.Options) == 0 {
			continue
		}

		if seenTypes[axis.TypeID] {
			return nil, ErrInvalidSelection
		}
		seenTypes[axis.TypeID] = true

		for _, o := range axis.Options {
			if o.Code == "" || seenOptions[o.OptionID] {
				return nil, ErrInvalidSelection
			}
			seenOptions[o.OptionID] = true
		}

		populated = append(populated, axis)
	}

	return populated, nil
}

// cartesianProduct folds axis by axis, extending every partial
// combination with each option of the next axis.
func cartesianProduct(axes []Axis) [][]AxisOption {
	result := [][]AxisOption{{}}

	for _, axis := range axes {
		next := make([][]AxisOption, 0, len(result)*len(axis.Options))
		for _, combo := range result {
			for _, option := range axis.Options {
				extended := make([]AxisOption, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, option))
			}
		}
		result = next
	}

	return result
}
