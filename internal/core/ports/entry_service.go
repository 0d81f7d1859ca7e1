package ports

import (
	"context"
	"time"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

// EntryInput carries all data needed to create or replace a daily entry.
// SupplementIntake is optional; an empty string means "not provided".
type EntryInput struct {
	Date             time.Time
	SleepHours       float64
	WorkoutIntensity string
	SupplementIntake string
	ScreenTime       float64
	StressLevel      int
}

// Prediction attachment states reported on entry creation.
const (
	PredictionAttached    = "attached"
	PredictionUnavailable = "unavailable"
)

// CreateEntryResult is returned after the orchestrated create. The entry is
// always persisted when err is nil; Prediction is nil exactly when
// PredictionStatus is PredictionUnavailable.
type CreateEntryResult struct {
	Entry            *domain.DailyEntry
	Prediction       *domain.Prediction
	PredictionStatus string
}

// EntryService defines the use-case operations over daily entries. Every
// operation is scoped to the authenticated caller's userID; access to another
// user's entry fails with domain.ErrForbidden, a missing id with
// domain.ErrEntryNotFound.
type EntryService interface {
	Create(ctx context.Context, userID string, input EntryInput) (*CreateEntryResult, error)
	Get(ctx context.Context, userID, entryID string) (*domain.DailyEntry, error)
	List(ctx context.Context, userID string) ([]*domain.DailyEntry, error)
	Update(ctx context.Context, userID, entryID string, input EntryInput) (*domain.DailyEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}
