package handler

import (
	"time"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// entryRequest is the payload for both create and full update. Range tags
// mirror the domain rules; whitespace-only text is caught by the domain
// validation that runs in the service layer before any write.
type entryRequest struct {
	Date             string  `json:"date"              validate:"required,datetime=2006-01-02"`
	SleepHours       float64 `json:"sleep_hours"       validate:"min=0,max=24"`
	WorkoutIntensity string  `json:"workout_intensity" validate:"required"`
	SupplementIntake string  `json:"supplement_intake,omitempty"`
	ScreenTime       float64 `json:"screen_time"       validate:"min=0,max=24"`
	StressLevel      int     `json:"stress_level"      validate:"required,min=1,max=10"`
}

type entryResponse struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	SleepHours       float64   `json:"sleep_hours"`
	WorkoutIntensity string    `json:"workout_intensity"`
	SupplementIntake string    `json:"supplement_intake,omitempty"`
	ScreenTime       float64   `json:"screen_time"`
	StressLevel      int       `json:"stress_level"`
	CreatedAt        time.Time `json:"created_at"`
}

type predictionResponse struct {
	ID             string    `json:"id"`
	EntryID        string    `json:"entry_id"`
	PredictedValue float64   `json:"predicted_value"`
	Recommendation string    `json:"recommendation"`
	ModelVersion   string    `json:"model_version"`
	CreatedAt      time.Time `json:"created_at"`
}

// createEntryResponse carries the persisted entry and, when inference
// succeeded, the attached prediction. PredictionStatus is "attached" or
// "unavailable"; a null prediction with status "unavailable" is a valid,
// successful creation.
type createEntryResponse struct {
	Entry            entryResponse       `json:"entry"`
	Prediction       *predictionResponse `json:"prediction"`
	PredictionStatus string              `json:"prediction_status"`
}

type listEntriesResponse struct {
	Data []entryResponse `json:"data"`
}

const dateLayout = "2006-01-02"

func toEntryResponse(e *domain.DailyEntry) entryResponse {
	return entryResponse{
		ID:               e.ID,
		Date:             e.Date.UTC().Format(dateLayout),
		SleepHours:       e.SleepHours,
		WorkoutIntensity: e.WorkoutIntensity,
		SupplementIntake: e.SupplementIntake,
		ScreenTime:       e.ScreenTime,
		StressLevel:      e.StressLevel,
		CreatedAt:        e.CreatedAt,
	}
}

func toPredictionResponse(p *domain.Prediction) *predictionResponse {
	if p == nil {
		return nil
	}
	return &predictionResponse{
		ID:             p.ID,
		EntryID:        p.EntryID,
		PredictedValue: p.PredictedValue,
		Recommendation: p.Recommendation,
		ModelVersion:   p.ModelVersion,
		CreatedAt:      p.CreatedAt,
	}
}
