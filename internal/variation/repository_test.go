package variation

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success with options attached", func(t *testing.T) {
		typeRows := sqlmock.NewRows([]string{"id", "name", "slug", "sort_order", "is_active"}).
			AddRow(1, "Size", "size", 1, true).
			AddRow(2, "Color", "color", 2, true)

		mock.ExpectQuery("SELECT id, name, slug, sort_order, is_active").
			WillReturnRows(typeRows)

		optRows := sqlmock.NewRows([]string{"id", "variation_type_id", "name", "code", "color_value", "sort_order", "is_active"}).
			AddRow(10, 1, "Small", "S", nil, 1, true).
			AddRow(11, 1, "Large", "L", nil, 2, true).
			AddRow(20, 2, "Red", "RED", "#ff0000", 1, true)

		mock.ExpectQuery("SELECT id, variation_type_id, name, code").
			WillReturnRows(optRows)

		types, err := repo.GetTypes(context.Background(), true)
		assert.NoError(t, err)
		require.Len(t, types, 2)
		assert.Len(t, types[0].Options, 2)
		assert.Len(t, types[1].Options, 1)
		assert.Equal(t, "RED", types[1].Options[0].Code)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, slug, sort_order, is_active").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "sort_order", "is_active"}))

		types, err := repo.GetTypes(context.Background(), false)
		assert.NoError(t, err)
		assert.Empty(t, types)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, slug, sort_order, is_active").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetTypes(context.Background(), true)
		assert.Error(t, err)
	})
}

func TestRepository_CreateType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := CreateTypeParams{Name: "Size", Slug: "size", SortOrder: 1}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "slug", "sort_order", "is_active"}).
			AddRow(1, "Size", "size", 1, true)

		mock.ExpectQuery("INSERT INTO variation_types").
			WithArgs(params.Name, params.Slug, params.SortOrder).
			WillReturnRows(rows)

		created, err := repo.CreateType(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, "size", created.Slug)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO variation_types").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateType(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestRepository_CreateOption(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := CreateOptionParams{TypeID: 1, Name: "Small", Code: "S", SortOrder: 1}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "variation_type_id", "name", "code", "color_value", "sort_order", "is_active"}).
			AddRow(10, 1, "Small", "S", nil, 1, true)

		mock.ExpectQuery("INSERT INTO variation_options").
			WithArgs(params.TypeID, params.Name, params.Code, params.ColorValue, params.SortOrder).
			WillReturnRows(rows)

		created, err := repo.CreateOption(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, uint(10), created.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO variation_options").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateOption(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := UpdateTypeParams{Name: "Shoe Size", Slug: "shoe-size", SortOrder: 2}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "slug", "sort_order", "is_active"}).
			AddRow(1, "Shoe Size", "shoe-size", 2, true)

		mock.ExpectQuery("UPDATE variation_types").
			WithArgs(params.Name, params.Slug, params.SortOrder, 1).
			WillReturnRows(rows)

		updated, err := repo.UpdateType(context.Background(), 1, params)
		assert.NoError(t, err)
		assert.Equal(t, "shoe-size", updated.Slug)
		assert.Equal(t, 2, updated.SortOrder)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE variation_types").
			WithArgs(params.Name, params.Slug, params.SortOrder, 42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateType(context.Background(), 42, params)
		assert.ErrorIs(t, err, ErrTypeNotFound)
	})
}

func TestRepository_UpdateOption(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := UpdateOptionParams{Name: "Extra Small", Code: "XS", SortOrder: 1}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "variation_type_id", "name", "code", "color_value", "sort_order", "is_active"}).
			AddRow(10, 1, "Extra Small", "XS", nil, 1, true)

		mock.ExpectQuery("UPDATE variation_options").
			WithArgs(params.Name, params.Code, params.ColorValue, params.SortOrder, 10).
			WillReturnRows(rows)

		updated, err := repo.UpdateOption(context.Background(), 10, params)
		assert.NoError(t, err)
		assert.Equal(t, "XS", updated.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE variation_options").
			WithArgs(params.Name, params.Code, params.ColorValue, params.SortOrder, 99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateOption(context.Background(), 99, params)
		assert.ErrorIs(t, err, ErrOptionNotFound)
	})
}

func TestRepository_SetTypeActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE variation_types SET is_active").
			WithArgs(false, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetTypeActive(context.Background(), 1, false))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE variation_types SET is_active").
			WithArgs(true, 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetTypeActive(context.Background(), 42, true), ErrTypeNotFound)
	})
}

func TestRepository_GetOptionsByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success ordered by type then option", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "code", "type_id", "type_slug", "type_sort", "opt_sort"}).
			AddRow(10, "Small", "S", 1, "size", 1, 1).
			AddRow(20, "Red", "RED", 2, "color", 2, 1)

		mock.ExpectQuery("SELECT o.id, o.name, o.code, t.id, t.slug").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		details, err := repo.GetOptionsByIDs(context.Background(), []uint{20, 10})
		assert.NoError(t, err)
		require.Len(t, details, 2)
		assert.Equal(t, "size", details[0].TypeSlug)
		assert.Equal(t, "color", details[1].TypeSlug)
	})

	t.Run("Empty input", func(t *testing.T) {
		details, err := repo.GetOptionsByIDs(context.Background(), nil)
		assert.NoError(t, err)
		assert.Empty(t, details)
	})
}
