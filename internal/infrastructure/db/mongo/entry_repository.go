package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

const collectionEntries = "daily_entries"

type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection(collectionEntries)}
}

type entryDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"user_id"`
	Date             time.Time          `bson:"date"`
	SleepHours       float64            `bson:"sleep_hours"`
	WorkoutIntensity string             `bson:"workout_intensity"`
	SupplementIntake string             `bson:"supplement_intake,omitempty"`
	ScreenTime       float64            `bson:"screen_time"`
	StressLevel      int                `bson:"stress_level"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func entryToDoc(e *domain.DailyEntry) entryDoc {
	return entryDoc{
		UserID:           e.UserID,
		Date:             e.Date,
		SleepHours:       e.SleepHours,
		WorkoutIntensity: e.WorkoutIntensity,
		SupplementIntake: e.SupplementIntake,
		ScreenTime:       e.ScreenTime,
		StressLevel:      e.StressLevel,
		CreatedAt:        e.CreatedAt,
	}
}

func (d entryDoc) toDomain() *domain.DailyEntry {
	return &domain.DailyEntry{
		ID:               d.ID.Hex(),
		UserID:           d.UserID,
		Date:             d.Date,
		SleepHours:       d.SleepHours,
		WorkoutIntensity: d.WorkoutIntensity,
		SupplementIntake: d.SupplementIntake,
		ScreenTime:       d.ScreenTime,
		StressLevel:      d.StressLevel,
		CreatedAt:        d.CreatedAt,
	}
}

// Create inserts a new entry document as a single atomic write.
func (r *EntryRepository) Create(ctx context.Context, e *domain.DailyEntry) (*domain.DailyEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, entryToDoc(e))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.DailyEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc entryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns all entries owned by userID. ObjectIDs are monotonically
// increasing per client, so sorting on _id yields insertion order.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.DailyEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]*domain.DailyEntry, 0)
	for cur.Next(ctx) {
		var doc entryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Update replaces the observation fields of the entry identified by e.ID.
// Owner and created_at are written from the passed entry, which the service
// layer has already carried over from the stored version.
func (r *EntryRepository) Update(ctx context.Context, e *domain.DailyEntry) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, entryToDoc(e))
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// EnsureIndexes creates the user_id index used by ListByUser.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
