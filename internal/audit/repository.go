package audit

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	ListByProduct(ctx context.Context, productID uint) ([]*Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO product_audit_logs (
			actor_id, product_id, product_variant_id,
			action, field, old_value, new_value, description
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.ActorID,
		entry.ProductID,
		entry.VariantID,
		entry.Action,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry failed: %w", err)
	}

	return nil
}

func (r *repository) ListByProduct(ctx context.Context, productID uint) ([]*Entry, error) {
	query := `
		SELECT id, actor_id, product_id, product_variant_id,
		       action, field, old_value, new_value, description, created_at
		FROM product_audit_logs
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.ProductID, &e.VariantID,
			&e.Action, &e.Field, &e.OldValue, &e.NewValue, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
