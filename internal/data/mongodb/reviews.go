package mongodb

import (
	"context"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/mapper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var reviewSortFields = map[string]string{
	"rating":       "rating",
	"reviewerName": "reviewerName",
	"createdAt":    "createdAt",
	"updatedAt":    "updatedAt",
}

// ReviewRepository stores reviews in the reviews collection.
type ReviewRepository struct {
	reviews *mongo.Collection
	logger  *zap.Logger
}

// Insert stores a new review document.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.ReviewPrimitive) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.reviews.InsertOne(ctx, mapper.ReviewPrimitiveToDocument(*review)); err != nil {
		r.logger.Warn("Failed to insert review", zap.String("id", review.ID), zap.Error(err))
		return err
	}
	return nil
}

// Get retrieves one review.
func (r *ReviewRepository) Get(ctx context.Context, id string) (*domain.ReviewPrimitive, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc domain.ReviewDocument
	if err := r.reviews.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	p := mapper.ReviewDocumentToPrimitive(doc)
	return &p, nil
}

// GetAll returns one page of reviews matching filters.
func (r *ReviewRepository) GetAll(ctx context.Context, filters data.ReviewFilters) ([]*domain.ReviewPrimitive, data.Metadata, error) {
	filter := bson.D{}
	if filters.BookID != "" {
		oid, err := objectID(filters.BookID)
		if err != nil {
			return []*domain.ReviewPrimitive{}, data.Metadata{}, nil
		}
		filter = append(filter, bson.E{Key: "bookId", Value: oid})
	}
	if filters.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.D{{Key: "$gte", Value: *filters.MinRating}}})
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	total, err := r.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, data.Metadata{}, err
	}

	sortField, ok := reviewSortFields[filters.SortBy]
	if !ok {
		sortField = "createdAt"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDirection(filters.Filters)}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filters.Offset())).
		SetLimit(int64(filters.Limit()))

	cursor, err := r.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer cursor.Close(ctx)

	var docs []domain.ReviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, data.Metadata{}, err
	}
	reviews := make([]*domain.ReviewPrimitive, 0, len(docs))
	for _, doc := range docs {
		p := mapper.ReviewDocumentToPrimitive(doc)
		reviews = append(reviews, &p)
	}
	return reviews, data.CalculateMetadata(int(total), filters.Page, filters.PageSize), nil
}

// Update sets the editable fields of a review. bookId is never written.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.ReviewPrimitive) error {
	oid, err := objectID(review.ID)
	if err != nil {
		return err
	}

	set := bson.D{
		{Key: "rating", Value: review.Rating},
		{Key: "reviewerName", Value: review.ReviewerName},
		{Key: "updatedAt", Value: review.UpdatedAt},
	}
	update := bson.D{}
	if review.Comment != nil {
		set = append(set, bson.E{Key: "comment", Value: *review.Comment})
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "comment", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.reviews.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// Delete removes one review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.reviews.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// DeleteByBook removes every review of a book.
func (r *ReviewRepository) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	oid, err := objectID(bookID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.reviews.DeleteMany(ctx, bson.D{{Key: "bookId", Value: oid}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
