package audit

import (
	"context"

	"github.com/usmanharun1738/cartar-pos/internal/logger"

	"go.uber.org/zap"
)

// Recorder is what the catalog layer depends on: a best-effort sink for
// field changes. Failures are logged, never propagated, so an audit
// outage cannot block an edit.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
	ListByProduct(ctx context.Context, productID uint) ([]*Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Recorder {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Record"),
		zap.Uint("product_id", entry.ProductID),
		zap.String("action", entry.Action),
		zap.String("field", entry.Field),
	)

	if err := s.repo.Insert(ctx, &entry); err != nil {
		log.Error("failed to record audit entry", zap.Error(err))
		return
	}

	log.Debug("audit entry recorded", zap.Uint("entry_id", entry.ID))
}

func (s *service) ListByProduct(ctx context.Context, productID uint) ([]*Entry, error) {
	entries, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list audit entries",
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	return entries, nil
}
