package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo handles the persistence of patrol results.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new ResultRepo and ensures the mapId index exists.
func NewResultRepo(ctx context.Context, client *mongo.Client, dbName, collectionName string) (*ResultRepo, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mapId", Value: 1}, {Key: "stats.riskReduction", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating result index: %w", err)
	}

	return &ResultRepo{collection: collection}, nil
}

// Save inserts a result. Results are immutable once stored.
func (r *ResultRepo) Save(ctx context.Context, result *dmn.Result) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, result); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("result %s already stored", result.ID)
		}
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// ByID retrieves a result by its ID.
// Returns i.ErrNotFound if the result is not found.
func (r *ResultRepo) ByID(ctx context.Context, id string) (*dmn.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var result dmn.Result
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &result, nil
}

// ByMap returns the results of a map, best risk reduction first.
func (r *ResultRepo) ByMap(ctx context.Context, mapID string) ([]*dmn.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "stats.riskReduction", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"mapId": mapID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}

	results := []*dmn.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return results, nil
}
