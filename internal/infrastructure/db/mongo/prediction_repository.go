package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

const collectionPredictions = "predictions"

type PredictionRepository struct {
	col *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{col: db.Collection(collectionPredictions)}
}

type predictionDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	EntryID        string             `bson:"entry_id"`
	PredictedValue float64            `bson:"predicted_value"`
	Recommendation string             `bson:"recommendation"`
	ModelVersion   string             `bson:"model_version"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d predictionDoc) toDomain() *domain.Prediction {
	return &domain.Prediction{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		EntryID:        d.EntryID,
		PredictedValue: d.PredictedValue,
		Recommendation: d.Recommendation,
		ModelVersion:   d.ModelVersion,
		CreatedAt:      d.CreatedAt,
	}
}

// Create inserts a prediction row linking an entry to its inference outcome.
func (r *PredictionRepository) Create(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := predictionDoc{
		UserID:         p.UserID,
		EntryID:        p.EntryID,
		PredictedValue: p.PredictedValue,
		Recommendation: p.Recommendation,
		ModelVersion:   p.ModelVersion,
		CreatedAt:      p.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert prediction: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PredictionRepository) FindByEntryID(ctx context.Context, entryID string) (*domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc predictionDoc
	if err := r.col.FindOne(ctx, bson.M{"entry_id": entryID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find prediction: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the entry_id index used by FindByEntryID.
func (r *PredictionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entry_id", Value: 1}},
	})
	return err
}
