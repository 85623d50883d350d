// Package mongodb implements the book and review repositories on MongoDB.
// Books and reviews live in separate collections; book aggregates are
// computed with a $lookup on every read.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	BooksCollection   = "books"
	ReviewsCollection = "reviews"
)

const opTimeout = 5 * time.Second

// Connect opens a client to uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique ISBN index and the review lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := db.Collection(BooksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isbn": bson.M{"$type": "string"}}),
	})
	if err != nil {
		return fmt.Errorf("create isbn index: %w", err)
	}
	_, err = db.Collection(ReviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create review book index: %w", err)
	}
	return nil
}

// NewModels returns repositories backed by db.
func NewModels(db *mongo.Database, logger *zap.Logger) data.Models {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "mongodb"),
	)
	books := db.Collection(BooksCollection)
	reviews := db.Collection(ReviewsCollection)
	return data.Models{
		Books:   &BookRepository{books: books, reviews: reviews, logger: logger},
		Reviews: &ReviewRepository{reviews: reviews, logger: logger},
	}
}

// objectID parses a hex id. Ids that cannot exist map to ErrRecordNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, data.ErrRecordNotFound
	}
	return oid, nil
}

func sortDirection(f data.Filters) int {
	if f.Descending() {
		return -1
	}
	return 1
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return data.ErrRecordNotFound
	}
	return err
}
