package domain

import "time"

// DefaultModelVersion is recorded when the model service omits its version.
const DefaultModelVersion = "unversioned"

// Prediction links an entry to the inference outcome that was computed at
// creation time. An entry without a prediction row is a valid state: the
// model service was unavailable when the entry was created.
type Prediction struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	EntryID        string    `json:"entry_id" bson:"entry_id"`
	PredictedValue float64   `json:"predicted_value" bson:"predicted_value"`
	Recommendation string    `json:"recommendation" bson:"recommendation"`
	ModelVersion   string    `json:"model_version" bson:"model_version"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
