package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifetrack/stress-tracking-api/internal/api/metrics"
	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
)

// EntryService orchestrates entry creation and owns all ownership-checked
// CRUD over entries. Creation runs the pipeline
// validate → persist entry → predict → persist prediction; the entry write is
// durable before the model service is contacted and is never rolled back when
// a later stage fails.
type EntryService struct {
	entries     ports.EntryRepository
	predictions ports.PredictionRepository
	predictor   ports.Predictor
	cache       ports.PredictionCache
	logger      zerolog.Logger
}

func NewEntryService(
	entries ports.EntryRepository,
	predictions ports.PredictionRepository,
	predictor ports.Predictor,
	cache ports.PredictionCache,
	logger zerolog.Logger,
) *EntryService {
	return &EntryService{
		entries:     entries,
		predictions: predictions,
		predictor:   predictor,
		cache:       cache,
		logger:      logger,
	}
}

// Create validates and persists a new entry for userID, then attempts a single
// synchronous prediction. A model-service failure is recovered locally: the
// result reports PredictionUnavailable and carries no prediction, but the
// entry stays persisted. Store-write failures are fatal for the request.
func (s *EntryService) Create(ctx context.Context, userID string, input ports.EntryInput) (*ports.CreateEntryResult, error) {
	entry := entryFromInput(userID, input)
	entry.CreatedAt = time.Now().UTC()

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist entry")
		return nil, err
	}
	metrics.EntriesCreatedTotal.Inc()

	result, err := s.resolvePrediction(ctx, created)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("entry_id", created.ID).
			Str("user_id", userID).
			Msg("prediction unavailable, entry kept")
		metrics.PredictionsTotal.WithLabelValues(ports.PredictionUnavailable).Inc()
		return &ports.CreateEntryResult{
			Entry:            created,
			PredictionStatus: ports.PredictionUnavailable,
		}, nil
	}

	prediction := &domain.Prediction{
		UserID:         userID,
		EntryID:        created.ID,
		PredictedValue: result.Value,
		Recommendation: result.Recommendation,
		ModelVersion:   result.ModelVersion,
		CreatedAt:      time.Now().UTC(),
	}
	if prediction.Recommendation == "" {
		prediction.Recommendation = defaultRecommendation(result.Value)
	}
	if prediction.ModelVersion == "" {
		prediction.ModelVersion = domain.DefaultModelVersion
	}

	stored, err := s.predictions.Create(ctx, prediction)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", created.ID).Msg("failed to persist prediction")
		return nil, err
	}
	metrics.PredictionsTotal.WithLabelValues(ports.PredictionAttached).Inc()

	s.logger.Info().
		Str("entry_id", created.ID).
		Str("user_id", userID).
		Float64("predicted_value", stored.PredictedValue).
		Msg("entry created with prediction")

	return &ports.CreateEntryResult{
		Entry:            created,
		Prediction:       stored,
		PredictionStatus: ports.PredictionAttached,
	}, nil
}

// resolvePrediction consults the cache before making the remote call. Cache
// failures are treated as misses; a fresh result is written back best-effort.
func (s *EntryService) resolvePrediction(ctx context.Context, entry *domain.DailyEntry) (*ports.PredictionResult, error) {
	features := ports.EntryFeatures{
		SleepHours:       entry.SleepHours,
		WorkoutIntensity: entry.WorkoutIntensity,
		SupplementIntake: entry.SupplementIntake,
		ScreenTime:       entry.ScreenTime,
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, features)
		if err != nil {
			s.logger.Warn().Err(err).Msg("prediction cache lookup failed, calling model service")
		} else if cached != nil {
			metrics.PredictionCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.PredictionCacheTotal.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	result, err := s.predictor.Predict(ctx, features)
	outcome := ports.PredictionAttached
	if err != nil {
		outcome = ports.PredictionUnavailable
	}
	metrics.PredictionRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, features, result); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache prediction result")
		}
	}
	return result, nil
}

// Get returns the entry when it exists and belongs to userID. A missing id is
// ErrEntryNotFound; an existing entry owned by someone else is ErrForbidden —
// the two are deliberately distinct.
func (s *EntryService) Get(ctx context.Context, userID, entryID string) (*domain.DailyEntry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

// List returns all entries owned by userID in insertion order.
func (s *EntryService) List(ctx context.Context, userID string) ([]*domain.DailyEntry, error) {
	return s.entries.ListByUser(ctx, userID)
}

// Update fully replaces the observation fields of an owned entry. The id,
// owner, and created_at are preserved; no field of the previous version
// survives the replacement.
func (s *EntryService) Update(ctx context.Context, userID, entryID string, input ports.EntryInput) (*domain.DailyEntry, error) {
	replacement := entryFromInput(userID, input)
	if err := replacement.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	replacement.ID = existing.ID
	replacement.CreatedAt = existing.CreatedAt

	if err := s.entries.Update(ctx, replacement); err != nil {
		s.logger.Error().Err(err).Str("entry_id", entryID).Msg("failed to update entry")
		return nil, err
	}
	return replacement, nil
}

// Delete removes an owned entry. Idempotence is bounded by existence: a second
// delete of the same id reports ErrEntryNotFound.
func (s *EntryService) Delete(ctx context.Context, userID, entryID string) error {
	existing, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.entries.Delete(ctx, entryID); err != nil {
		s.logger.Error().Err(err).Str("entry_id", entryID).Msg("failed to delete entry")
		return err
	}
	return nil
}

func entryFromInput(userID string, input ports.EntryInput) *domain.DailyEntry {
	return &domain.DailyEntry{
		UserID:           userID,
		Date:             input.Date,
		SleepHours:       input.SleepHours,
		WorkoutIntensity: input.WorkoutIntensity,
		SupplementIntake: input.SupplementIntake,
		ScreenTime:       input.ScreenTime,
		StressLevel:      input.StressLevel,
	}
}

// defaultRecommendation fills in advice when the model service returns a bare
// numeric prediction. Bands match the model service's own wording.
func defaultRecommendation(predicted float64) string {
	switch {
	case predicted < 3.0:
		return "Low predicted stress. Maintain your current recovery and screen-time habits."
	case predicted < 6.0:
		return "Moderate predicted stress. Prioritize sleep consistency and reduce screen time where possible."
	default:
		return "High predicted stress. Focus on recovery, lower evening screen time, and avoid overtraining."
	}
}
