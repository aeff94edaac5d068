package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

const (
	collectionSelections      = "selections"
	collectionSelectionEvents = "selection_events"
)

// SelectionRepository persists selections plus the per-quarter claim markers
// that enforce the at-most-one-batch-per-quarter invariant.
type SelectionRepository struct {
	selections *mongo.Collection
	events     *mongo.Collection
}

func NewSelectionRepository(db *mongo.Database) *SelectionRepository {
	return &SelectionRepository{
		selections: db.Collection(collectionSelections),
		events:     db.Collection(collectionSelectionEvents),
	}
}

// ClaimEvent inserts the claim marker. The unique index created by
// EnsureIndexes turns the insert into a conditional write: a concurrent
// request for the same (userName, location, quarterStart) gets a duplicate
// key error, surfaced as domain.ErrAlreadyChosen.
func (r *SelectionRepository) ClaimEvent(ctx context.Context, event domain.SelectionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.events.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyChosen
		}
		return fmt.Errorf("claim selection event: %w", err)
	}
	return nil
}

// ReleaseEvent deletes the claim marker so the quarter can be claimed again.
func (r *SelectionRepository) ReleaseEvent(ctx context.Context, event domain.SelectionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"userName":     event.UserName,
		"location":     event.Location,
		"quarterStart": event.QuarterStart,
	}
	if _, err := r.events.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("release selection event: %w", err)
	}
	return nil
}

func (r *SelectionRepository) InsertBatch(ctx context.Context, batch []domain.Selection) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(batch))
	for _, s := range batch {
		docs = append(docs, s)
	}

	if _, err := r.selections.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert selections: %w", err)
	}
	return nil
}

func (r *SelectionRepository) FindByQuarter(ctx context.Context, quarterStart time.Time) ([]domain.Selection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.selections.Find(ctx, bson.M{"quarterStart": quarterStart})
	if err != nil {
		return nil, fmt.Errorf("find selections: %w", err)
	}
	defer cursor.Close(ctx)

	selections := []domain.Selection{}
	if err := cursor.All(ctx, &selections); err != nil {
		return nil, fmt.Errorf("decode selections: %w", err)
	}
	return selections, nil
}

func (r *SelectionRepository) DistinctQuarters(ctx context.Context) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.selections.Distinct(ctx, "quarterStart", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct quarters: %w", err)
	}

	quarters := make([]time.Time, 0, len(values))
	for _, v := range values {
		if dt, ok := v.(primitive.DateTime); ok {
			quarters = append(quarters, dt.Time().UTC())
		}
	}
	return quarters, nil
}

func (r *SelectionRepository) RenameEmployee(ctx context.Context, location, oldName, newName string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.selections.UpdateMany(ctx,
		bson.M{"location": location, "employee": oldName},
		bson.M{"$set": bson.M{"employee": newName}},
	)
	if err != nil {
		return 0, fmt.Errorf("rename selections: %w", err)
	}
	return result.ModifiedCount, nil
}

// DeleteAll wipes both collections; removing the claim markers lets users
// choose again after a wipe. The returned count covers selections only.
func (r *SelectionRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.selections.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete selections: %w", err)
	}
	if _, err := r.events.DeleteMany(ctx, bson.M{}); err != nil {
		return result.DeletedCount, fmt.Errorf("delete selection events: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *SelectionRepository) DeleteByUserAndLocation(ctx context.Context, userName, location string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"userName": userName, "location": location}

	result, err := r.selections.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete selections: %w", err)
	}
	if _, err := r.events.DeleteMany(ctx, filter); err != nil {
		return result.DeletedCount, fmt.Errorf("delete selection events: %w", err)
	}
	return result.DeletedCount, nil
}

// EnsureIndexes creates the unique claim index plus the query indexes.
func (r *SelectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userName", Value: 1},
			{Key: "location", Value: 1},
			{Key: "quarterStart", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create selection_events index: %w", err)
	}

	_, err = r.selections.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "quarterStart", Value: 1}}},
		{Keys: bson.D{{Key: "userName", Value: 1}, {Key: "location", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create selections indexes: %w", err)
	}
	return nil
}
