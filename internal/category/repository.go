package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, activeOnly bool) ([]*Category, error)
	AddCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, params UpdateCategoryParams) (*Category, error)
	SetCategoryActive(ctx context.Context, id uint, active bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.Bool("active_only", activeOnly),
	)

	query := `
		SELECT id, name, icon, sort_order, is_active
		FROM categories
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder, &c.IsActive); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) AddCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("category_name", params.Name),
	)

	if params.Name == "" {
		return nil, ErrEmptyName
	}

	query := `
		INSERT INTO categories (name, icon, sort_order, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, name, icon, sort_order, is_active
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Icon, params.SortOrder).
		Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder, &c.IsActive)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.Uint("category_id", c.ID))

	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (*Category, error) {
	set := []string{}
	args := []interface{}{}

	if params.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *params.Name)
	}
	if params.Icon != nil {
		set = append(set, fmt.Sprintf("icon = $%d", len(args)+1))
		args = append(args, *params.Icon)
	}
	if params.SortOrder != nil {
		set = append(set, fmt.Sprintf("sort_order = $%d", len(args)+1))
		args = append(args, *params.SortOrder)
	}

	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $%d
		RETURNING id, name, icon, sort_order, is_active
	`, strings.Join(set, ", "), len(args)+1)
	args = append(args, params.ID)

	var c Category
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder, &c.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category failed: %w", err)
	}

	return &c, nil
}

func (r *repository) SetCategoryActive(ctx context.Context, id uint, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
