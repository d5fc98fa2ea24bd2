package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) AddCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (*Category, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) SetCategoryActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func TestService_GetCategories(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCategories", mock.Anything, true).
			Return([]*Category{{ID: 1, Name: "Drinks"}}, nil)

		svc := NewService(repo)
		categories, err := svc.GetCategories(context.Background(), true)

		assert.NoError(t, err)
		assert.Len(t, categories, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Empty result", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCategories", mock.Anything, false).
			Return([]*Category{}, nil)

		svc := NewService(repo)
		categories, err := svc.GetCategories(context.Background(), false)

		assert.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("Repo error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCategories", mock.Anything, true).
			Return(nil, errors.New("db error"))

		svc := NewService(repo)
		_, err := svc.GetCategories(context.Background(), true)

		assert.Error(t, err)
	})
}

func TestService_AddCategory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		params := CreateCategoryParams{Name: "Snacks"}
		repo.On("AddCategory", mock.Anything, params).
			Return(&Category{ID: 2, Name: "Snacks", IsActive: true}, nil)

		svc := NewService(repo)
		c, err := svc.AddCategory(context.Background(), params)

		assert.NoError(t, err)
		assert.Equal(t, uint(2), c.ID)
	})

	t.Run("Empty name rejected before repo", func(t *testing.T) {
		repo := new(MockRepository)

		svc := NewService(repo)
		_, err := svc.AddCategory(context.Background(), CreateCategoryParams{})

		assert.ErrorIs(t, err, ErrEmptyName)
		repo.AssertNotCalled(t, "AddCategory")
	})
}

func TestService_SetCategoryActive(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SetCategoryActive", mock.Anything, uint(1), false).Return(nil)

	svc := NewService(repo)
	err := svc.SetCategoryActive(context.Background(), 1, false)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
