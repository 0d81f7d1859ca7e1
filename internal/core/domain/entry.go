package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrEntryNotFound = errors.New("entry not found")
var ErrForbidden = errors.New("access forbidden")
var ErrModelServiceUnavailable = errors.New("model service unavailable")

const (
	minSleepHours  = 0.0
	maxSleepHours  = 24.0
	minScreenTime  = 0.0
	maxScreenTime  = 24.0
	minStressLevel = 1
	maxStressLevel = 10
)

// DailyEntry is the core aggregate root: one day's lifestyle observation
// owned by exactly one user.
type DailyEntry struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	UserID           string    `json:"user_id" bson:"user_id"`
	Date             time.Time `json:"date" bson:"date"`
	SleepHours       float64   `json:"sleep_hours" bson:"sleep_hours"`
	WorkoutIntensity string    `json:"workout_intensity" bson:"workout_intensity"`
	SupplementIntake string    `json:"supplement_intake,omitempty" bson:"supplement_intake,omitempty"`
	ScreenTime       float64   `json:"screen_time" bson:"screen_time"`
	StressLevel      int       `json:"stress_level" bson:"stress_level"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// FieldError names a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in one submission.
// It is returned in full so the caller fixes the request in a single round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid entry: " + strings.Join(msgs, "; ")
}

// Validate checks every field rule and returns an aggregated report.
// A nil return guarantees the entry is safe to persist.
func (e *DailyEntry) Validate() error {
	var fields []FieldError

	if e.SleepHours < minSleepHours || e.SleepHours > maxSleepHours {
		fields = append(fields, FieldError{
			Field:   "sleep_hours",
			Message: fmt.Sprintf("must be between %g and %g", minSleepHours, maxSleepHours),
		})
	}
	if e.ScreenTime < minScreenTime || e.ScreenTime > maxScreenTime {
		fields = append(fields, FieldError{
			Field:   "screen_time",
			Message: fmt.Sprintf("must be between %g and %g", minScreenTime, maxScreenTime),
		})
	}
	if e.StressLevel < minStressLevel || e.StressLevel > maxStressLevel {
		fields = append(fields, FieldError{
			Field:   "stress_level",
			Message: fmt.Sprintf("must be between %d and %d", minStressLevel, maxStressLevel),
		})
	}
	if strings.TrimSpace(e.WorkoutIntensity) == "" {
		fields = append(fields, FieldError{
			Field:   "workout_intensity",
			Message: "must not be empty",
		})
	}
	if e.SupplementIntake != "" && strings.TrimSpace(e.SupplementIntake) == "" {
		fields = append(fields, FieldError{
			Field:   "supplement_intake",
			Message: "must not be blank when provided",
		})
	}
	if e.Date.IsZero() {
		fields = append(fields, FieldError{
			Field:   "date",
			Message: "must be a valid calendar date",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
