package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed Store implementation.
type Mongo struct {
	db *mongo.Database
}

// NewMongo wraps an established database handle.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// InsertOne stores a document and returns the generated identifier as a hex
// string.
func (s *Mongo) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", ErrNotFound
	}
	return oid.Hex(), nil
}

// FindOne decodes the first matching document into out.
func (s *Mongo) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// Find decodes all matching documents into out.
func (s *Mongo) Find(ctx context.Context, collection string, filter bson.M, out any, opts ...FindOption) error {
	var fo findOptions
	for _, opt := range opts {
		opt(&fo)
	}

	mongoOpts := options.Find()
	if fo.limit > 0 {
		mongoOpts.SetLimit(fo.limit)
	}
	if fo.sortKey != "" {
		dir := 1
		if fo.sortDesc {
			dir = -1
		}
		mongoOpts.SetSort(bson.D{{Key: fo.sortKey, Value: dir}})
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, mongoOpts)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// UpdateOne applies an update document to the first match.
func (s *Mongo) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) (UpdateResult, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteOne removes the first matching document.
func (s *Mongo) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CollectionNames lists the collections in the database.
func (s *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}
