package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// MapRepo handles the persistence of saved maps.
type MapRepo struct {
	collection *mongo.Collection
}

// NewMapRepo creates a new MapRepo with the given MongoDB client, database name, and collection name.
func NewMapRepo(client *mongo.Client, dbName, collectionName string) *MapRepo {
	return &MapRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts or replaces a map.
func (r *MapRepo) Save(ctx context.Context, m *dmn.Map) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// ByID retrieves a map by its ID.
// Returns i.ErrNotFound if the map is not found.
func (r *MapRepo) ByID(ctx context.Context, id string) (*dmn.Map, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var m dmn.Map
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &m, nil
}

// All returns every saved map, newest first. The matrices are left out.
func (r *MapRepo) All(ctx context.Context) ([]*dmn.Map, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"riskMap": 0, "animalMap": 0, "terrainMap": 0})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}

	maps := []*dmn.Map{}
	if err := cursor.All(ctx, &maps); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return maps, nil
}
