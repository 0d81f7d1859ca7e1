package ports

import "context"

// EntryFeatures is the feature vector sent to the model service. It mirrors
// the four observation fields the regression model was trained on.
type EntryFeatures struct {
	SleepHours       float64 `json:"sleep_hours"`
	WorkoutIntensity string  `json:"workout_intensity"`
	SupplementIntake string  `json:"supplement_intake"`
	ScreenTime       float64 `json:"screen_time"`
}

// PredictionResult is the normalized outcome of a successful inference call.
// Recommendation and ModelVersion may be empty; the orchestrator defaults them.
type PredictionResult struct {
	Value          float64
	Recommendation string
	ModelVersion   string
}

// Predictor wraps the model service behind a single capability so the
// orchestrator never touches the transport. Implementations collapse every
// failure mode (unreachable, timeout, non-2xx, bad payload) into
// domain.ErrModelServiceUnavailable.
type Predictor interface {
	Predict(ctx context.Context, features EntryFeatures) (*PredictionResult, error)
}

// PredictionCache stores recent model responses keyed by feature vector.
// It is best-effort: callers must treat every error as a miss.
type PredictionCache interface {
	Get(ctx context.Context, features EntryFeatures) (*PredictionResult, error)
	Set(ctx context.Context, features EntryFeatures, result *PredictionResult) error
}
