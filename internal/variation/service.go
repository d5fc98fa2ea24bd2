package variation

import (
	"context"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for variation axes and options.
type Service interface {
	GetTypes(ctx context.Context, activeOnly bool) ([]*VariationType, error)
	CreateType(ctx context.Context, params CreateTypeParams) (*VariationType, error)
	UpdateType(ctx context.Context, id uint, params UpdateTypeParams) (*VariationType, error)
	SetTypeActive(ctx context.Context, id uint, active bool) error
	CreateOption(ctx context.Context, params CreateOptionParams) (*VariationOption, error)
	UpdateOption(ctx context.Context, id uint, params UpdateOptionParams) (*VariationOption, error)
	SetOptionActive(ctx context.Context, id uint, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTypes(ctx context.Context, activeOnly bool) ([]*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetTypes"),
	)

	types, err := s.repo.GetTypes(ctx, activeOnly)
	if err != nil {
		log.Error("failed to get variation types", zap.Error(err))
		return nil, err
	}

	log.Info("GetTypes success", zap.Int("count", len(types)))
	return types, nil
}

func (s *service) CreateType(ctx context.Context, params CreateTypeParams) (*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateType"),
		zap.String("name", params.Name),
	)

	if params.Name == "" {
		log.Warn("CreateType validation failed: empty name")
		return nil, ErrEmptyTypeName
	}

	// Slug is derived from the name unless the operator supplied one.
	if params.Slug == "" {
		params.Slug = Slugify(params.Name)
	}

	created, err := s.repo.CreateType(ctx, params)
	if err != nil {
		log.Error("failed to create variation type", zap.Error(err))
		return nil, err
	}

	return created, nil
}

// UpdateType renames a type. Renaming re-derives the slug unless the
// operator supplied one explicitly.
func (s *service) UpdateType(ctx context.Context, id uint, params UpdateTypeParams) (*VariationType, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateType"),
		zap.Uint("type_id", id),
		zap.String("name", params.Name),
	)

	if params.Name == "" {
		log.Warn("UpdateType validation failed: empty name")
		return nil, ErrEmptyTypeName
	}

	if params.Slug == "" {
		params.Slug = Slugify(params.Name)
	}

	updated, err := s.repo.UpdateType(ctx, id, params)
	if err != nil {
		log.Error("failed to update variation type", zap.Error(err))
		return nil, err
	}

	return updated, nil
}

// SetTypeActive soft-disables a type. Types referenced by variants are
// never deleted, only disabled.
func (s *service) SetTypeActive(ctx context.Context, id uint, active bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetTypeActive"),
		zap.Uint("type_id", id),
		zap.Bool("active", active),
	)

	if err := s.repo.SetTypeActive(ctx, id, active); err != nil {
		log.Error("failed to set variation type active", zap.Error(err))
		return err
	}

	return nil
}

func (s *service) CreateOption(ctx context.Context, params CreateOptionParams) (*VariationOption, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOption"),
		zap.Uint("type_id", params.TypeID),
		zap.String("name", params.Name),
	)

	if params.Name == "" {
		log.Warn("CreateOption validation failed: empty name")
		return nil, ErrEmptyOptionName
	}
	if params.Code == "" {
		log.Warn("CreateOption validation failed: empty code")
		return nil, ErrEmptyCode
	}
	if len(params.Code) > MaxCodeLen {
		log.Warn("CreateOption validation failed: code too long",
			zap.String("code", params.Code))
		return nil, ErrCodeTooLong
	}

	created, err := s.repo.CreateOption(ctx, params)
	if err != nil {
		log.Error("failed to create variation option", zap.Error(err))
		return nil, err
	}

	return created, nil
}

// UpdateOption edits an option's name, SKU code, swatch color or sort
// order. The code keeps the same rules as creation; already-generated
// variant SKUs are frozen and never rewritten by a code change.
func (s *service) UpdateOption(ctx context.Context, id uint, params UpdateOptionParams) (*VariationOption, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOption"),
		zap.Uint("option_id", id),
		zap.String("name", params.Name),
	)

	if params.Name == "" {
		log.Warn("UpdateOption validation failed: empty name")
		return nil, ErrEmptyOptionName
	}
	if params.Code == "" {
		log.Warn("UpdateOption validation failed: empty code")
		return nil, ErrEmptyCode
	}
	if len(params.Code) > MaxCodeLen {
		log.Warn("UpdateOption validation failed: code too long",
			zap.String("code", params.Code))
		return nil, ErrCodeTooLong
	}

	updated, err := s.repo.UpdateOption(ctx, id, params)
	if err != nil {
		log.Error("failed to update variation option", zap.Error(err))
		return nil, err
	}

	return updated, nil
}

func (s *service) SetOptionActive(ctx context.Context, id uint, active bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetOptionActive"),
		zap.Uint("option_id", id),
		zap.Bool("active", active),
	)

	if err := s.repo.SetOptionActive(ctx, id, active); err != nil {
		log.Error("failed to set variation option active", zap.Error(err))
		return err
	}

	return nil
}
