package category

import (
	"context"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the category taxonomy.
type Service interface {
	GetCategories(ctx context.Context, activeOnly bool) ([]*Category, error)
	AddCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, params UpdateCategoryParams) (*Category, error)
	SetCategoryActive(ctx context.Context, id uint, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx, activeOnly)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		return []*Category{}, nil
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) AddCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", params.Name),
	)

	if params.Name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, ErrEmptyName
	}

	category, err := s.repo.AddCategory(ctx, params)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.Uint("category_id", category.ID))
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.Uint("category_id", params.ID),
	)

	if params.Name != nil && *params.Name == "" {
		log.Warn("UpdateCategory validation failed: empty name")
		return nil, ErrEmptyName
	}

	category, err := s.repo.UpdateCategory(ctx, params)
	if err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	return category, nil
}

func (s *service) SetCategoryActive(ctx context.Context, id uint, active bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetCategoryActive"),
		zap.Uint("category_id", id),
		zap.Bool("active", active),
	)

	if err := s.repo.SetCategoryActive(ctx, id, active); err != nil {
		log.Error("failed to set category active", zap.Error(err))
		return err
	}

	return nil
}
