package variation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetTypes(ctx context.Context, activeOnly bool) ([]*VariationType, error)
	CreateType(ctx context.Context, params CreateTypeParams) (*VariationType, error)
	UpdateType(ctx context.Context, id uint, params UpdateTypeParams) (*VariationType, error)
	SetTypeActive(ctx context.Context, id uint, active bool) error
	CreateOption(ctx context.Context, params CreateOptionParams) (*VariationOption, error)
	UpdateOption(ctx context.Context, id uint, params UpdateOptionParams) (*VariationOption, error)
	SetOptionActive(ctx context.Context, id uint, active bool) error
	GetOptionsByIDs(ctx context.Context, ids []uint) ([]*OptionDetail, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetTypes(ctx context.Context, activeOnly bool) ([]*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.Bool("active_only", activeOnly),
	)

	query := `
		SELECT id, name, slug, sort_order, is_active
		FROM variation_types
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query variation types", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var types []*VariationType
	byID := make(map[uint]*VariationType)

	for rows.Next() {
		var t VariationType
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.SortOrder, &t.IsActive); err != nil {
			log.Error("failed to scan variation type row", zap.Error(err))
			return nil, err
		}
		types = append(types, &t)
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(types) == 0 {
		return []*VariationType{}, nil
	}

	typeIDs := make([]int64, 0, len(types))
	for _, t := range types {
		typeIDs = append(typeIDs, int64(t.ID))
	}

	optQuery := `
		SELECT id, variation_type_id, name, code, color_value, sort_order, is_active
		FROM variation_options
		WHERE variation_type_id = ANY($1)
	`
	if activeOnly {
		optQuery += " AND is_active = TRUE"
	}
	optQuery += " ORDER BY sort_order ASC, name ASC"

	optRows, err := r.db.QueryContext(ctx, optQuery, pq.Array(typeIDs))
	if err != nil {
		log.Error("failed to query variation options", zap.Error(err))
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o VariationOption
		if err := optRows.Scan(&o.ID, &o.TypeID, &o.Name, &o.Code, &o.ColorValue, &o.SortOrder, &o.IsActive); err != nil {
			log.Error("failed to scan variation option row", zap.Error(err))
			return nil, err
		}
		if t, ok := byID[o.TypeID]; ok {
			t.Options = append(t.Options, &o)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) CreateType(ctx context.Context, params CreateTypeParams) (*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("type_name", params.Name),
	)

	query := `
		INSERT INTO variation_types (name, slug, sort_order, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, name, slug, sort_order, is_active
	`

	var t VariationType
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Slug, params.SortOrder).
		Scan(&t.ID, &t.Name, &t.Slug, &t.SortOrder, &t.IsActive)
	if err != nil {
		log.Error("failed to insert variation type", zap.Error(err))
		return nil, fmt.Errorf("create variation type failed: %w", err)
	}

	log.Info("variation type created", zap.Uint("type_id", t.ID))

	return &t, nil
}

func (r *repository) UpdateType(ctx context.Context, id uint, params UpdateTypeParams) (*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("type_id", id),
		zap.String("type_name", params.Name),
	)

	query := `
		UPDATE variation_types
		SET name = $1, slug = $2, sort_order = $3
		WHERE id = $4
		RETURNING id, name, slug, sort_order, is_active
	`

	var t VariationType
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Slug, params.SortOrder, id).
		Scan(&t.ID, &t.Name, &t.Slug, &t.SortOrder, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		log.Error("failed to update variation type", zap.Error(err))
		return nil, fmt.Errorf("update variation type failed: %w", err)
	}

	log.Info("variation type updated")

	return &t, nil
}

func (r *repository) SetTypeActive(ctx context.Context, id uint, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE variation_types SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTypeNotFound
	}

	return nil
}

func (r *repository) CreateOption(ctx context.Context, params CreateOptionParams) (*VariationOption, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("type_id", params.TypeID),
		zap.String("option_name", params.Name),
	)

	query := `
		INSERT INTO variation_options (variation_type_id, name, code, color_value, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, variation_type_id, name, code, color_value, sort_order, is_active
	`

	var o VariationOption
	err := r.db.QueryRowContext(ctx, query,
		params.TypeID, params.Name, params.Code, params.ColorValue, params.SortOrder).
		Scan(&o.ID, &o.TypeID, &o.Name, &o.Code, &o.ColorValue, &o.SortOrder, &o.IsActive)
	if err != nil {
		log.Error("failed to insert variation option", zap.Error(err))
		return nil, fmt.Errorf("create variation option failed: %w", err)
	}

	log.Info("variation option created", zap.Uint("option_id", o.ID))

	return &o, nil
}

func (r *repository) UpdateOption(ctx context.Context, id uint, params UpdateOptionParams) (*VariationOption, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("option_id", id),
		zap.String("option_name", params.Name),
	)

	query := `
		UPDATE variation_options
		SET name = $1, code = $2, color_value = $3, sort_order = $4
		WHERE id = $5
		RETURNING id, variation_type_id, name, code, color_value, sort_order, is_active
	`

	var o VariationOption
	err := r.db.QueryRowContext(ctx, query,
		params.Name, params.Code, params.ColorValue, params.SortOrder, id).
		Scan(&o.ID, &o.TypeID, &o.Name, &o.Code, &o.ColorValue, &o.SortOrder, &o.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		log.Error("failed to update variation option", zap.Error(err))
		return nil, fmt.Errorf("update variation option failed: %w", err)
	}

	log.Info("variation option updated")

	return &o, nil
}

func (r *repository) SetOptionActive(ctx context.Context, id uint, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE variation_options SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// GetOptionsByIDs resolves selected option ids into rows ordered by the
// owning type's sort order then the option's own sort order. The order
// here fixes the axis order of generated variant SKUs and names.
func (r *repository) GetOptionsByIDs(ctx context.Context, ids []uint) ([]*OptionDetail, error) {
	if len(ids) == 0 {
		return []*OptionDetail{}, nil
	}

	idArgs := make([]int64, 0, len(ids))
	for _, id := range ids {
		idArgs = append(idArgs, int64(id))
	}

	query := `
		SELECT o.id, o.name, o.code, t.id, t.slug, t.sort_order, o.sort_order
		FROM variation_options o
		JOIN variation_types t ON t.id = o.variation_type_id
		WHERE o.id = ANY($1)
		ORDER BY t.sort_order ASC, t.id ASC, o.sort_order ASC, o.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idArgs))
	if err != nil {
		return nil, fmt.Errorf("resolve options failed: %w", err)
	}
	defer rows.Close()

	var details []*OptionDetail
	for rows.Next() {
		var d OptionDetail
		if err := rows.Scan(&d.OptionID, &d.Name, &d.Code, &d.TypeID, &d.TypeSlug, &d.TypeSortOrder, &d.SortOrder); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
