package ports

import (
	"context"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

// EntryRepository defines persistence operations for daily entries.
// Each write is a single-document commit; no cross-entry locking exists.
type EntryRepository interface {
	Create(ctx context.Context, e *domain.DailyEntry) (*domain.DailyEntry, error)
	// FindByID retrieves an entry regardless of owner. Ownership is enforced
	// by the service layer so it can distinguish forbidden from not found.
	FindByID(ctx context.Context, id string) (*domain.DailyEntry, error)
	// ListByUser returns all entries owned by userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*domain.DailyEntry, error)
	// Update replaces the mutable fields of the entry identified by e.ID.
	Update(ctx context.Context, e *domain.DailyEntry) error
	Delete(ctx context.Context, id string) error
}

// PredictionRepository defines persistence for prediction outcomes.
type PredictionRepository interface {
	Create(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error)
	FindByEntryID(ctx context.Context, entryID string) (*domain.Prediction, error)
}
