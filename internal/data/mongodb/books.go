package mongodb

import (
	"context"
	"regexp"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/mapper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var bookSortFields = map[string]string{
	"title":         "title",
	"author":        "author",
	"publishedYear": "publishedYear",
	"avgRating":     "avgRating",
	"reviewCount":   "reviewCount",
	"createdAt":     "createdAt",
	"updatedAt":     "updatedAt",
}

// bookWithStats is a stored book plus the aggregates added by withStats.
type bookWithStats struct {
	domain.BookDocument `bson:",inline"`
	AvgRating           float64 `bson:"avgRating"`
	ReviewCount         int     `bson:"reviewCount"`
}

func (b bookWithStats) toPrimitive() (*domain.BookPrimitive, error) {
	p, err := mapper.BookDocumentToPrimitive(b.BookDocument, b.AvgRating, b.ReviewCount)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// withStats joins each book to its reviews and adds avgRating and
// reviewCount, with the average rounded to one decimal.
func withStats() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ReviewsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "bookId"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "avgRating", Value: roundTenth(
				bson.D{{Key: "$ifNull", Value: bson.A{bson.D{{Key: "$avg", Value: "$reviews.rating"}}, 0}}},
			)},
			{Key: "reviewCount", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "reviews", Value: 0}}}},
	}
}

// roundTenth rounds expr to one decimal, halves away from zero, matching
// AverageRating. $round would round halves to even.
func roundTenth(expr any) bson.D {
	return bson.D{{Key: "$divide", Value: bson.A{
		bson.D{{Key: "$floor", Value: bson.D{{Key: "$add", Value: bson.A{
			bson.D{{Key: "$multiply", Value: bson.A{expr, 10}}},
			0.5,
		}}}}},
		10,
	}}}
}

// BookRepository stores books in the books collection.
type BookRepository struct {
	books   *mongo.Collection
	reviews *mongo.Collection
	logger  *zap.Logger
}

// Insert stores a new book document.
func (r *BookRepository) Insert(ctx context.Context, book *domain.BookPrimitive) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.books.InsertOne(ctx, mapper.BookPrimitiveToDocument(*book)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return data.ErrDuplicateISBN
		}
		r.logger.Warn("Failed to insert book", zap.String("id", book.ID), zap.Error(err))
		return err
	}
	return nil
}

// Get retrieves one book with its aggregates.
func (r *BookRepository) Get(ctx context.Context, id string) (*domain.BookPrimitive, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		{{Key: "$limit", Value: 1}},
	}, withStats()...)

	books, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, data.ErrRecordNotFound
	}
	return books[0], nil
}

// GetAll returns one page of books. A $facet stage computes the page and the
// total count in one query.
func (r *BookRepository) GetAll(ctx context.Context, filters data.BookFilters) ([]*domain.BookPrimitive, data.Metadata, error) {
	match := bson.D{}
	if filters.Search != "" {
		rx := caseInsensitive(filters.Search)
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: rx}},
			bson.D{{Key: "author", Value: rx}},
		}})
	}
	if filters.Author != "" {
		match = append(match, bson.E{Key: "author", Value: caseInsensitive(filters.Author)})
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, withStats()...)
	if filters.MinRating != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "avgRating", Value: bson.D{{Key: "$gte", Value: *filters.MinRating}}},
		}}})
	}

	sortField, ok := bookSortFields[filters.SortBy]
	if !ok {
		sortField = "createdAt"
	}
	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "metadata", Value: bson.A{bson.D{{Key: "$count", Value: "total"}}}},
		{Key: "data", Value: bson.A{
			bson.D{{Key: "$sort", Value: bson.D{
				{Key: sortField, Value: sortDirection(filters.Filters)},
				{Key: "_id", Value: 1},
			}}},
			bson.D{{Key: "$skip", Value: filters.Offset()}},
			bson.D{{Key: "$limit", Value: filters.Limit()}},
		}},
	}}})

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.books.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer cursor.Close(ctx)

	var facets []struct {
		Metadata []struct {
			Total int `bson:"total"`
		} `bson:"metadata"`
		Data []bookWithStats `bson:"data"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, data.Metadata{}, err
	}

	books := []*domain.BookPrimitive{}
	total := 0
	if len(facets) > 0 {
		if len(facets[0].Metadata) > 0 {
			total = facets[0].Metadata[0].Total
		}
		for _, doc := range facets[0].Data {
			p, err := doc.toPrimitive()
			if err != nil {
				return nil, data.Metadata{}, err
			}
			books = append(books, p)
		}
	}
	return books, data.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

// Update replaces the stored document of an existing book.
func (r *BookRepository) Update(ctx context.Context, book *domain.BookPrimitive) error {
	oid, err := objectID(book.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.books.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, mapper.BookPrimitiveToDocument(*book))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return data.ErrDuplicateISBN
		}
		return err
	}
	if res.MatchedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// Delete removes a book and then its reviews.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.books.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return data.ErrRecordNotFound
	}
	if _, err := r.reviews.DeleteMany(ctx, bson.D{{Key: "bookId", Value: oid}}); err != nil {
		r.logger.Warn("Failed to delete reviews of deleted book", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// TopRated returns up to limit reviewed books ordered by average rating.
func (r *BookRepository) TopRated(ctx context.Context, limit int) ([]*domain.BookPrimitive, error) {
	pipeline := append(withStats(),
		bson.D{{Key: "$match", Value: bson.D{{Key: "reviewCount", Value: bson.D{{Key: "$gt", Value: 0}}}}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "avgRating", Value: -1},
			{Key: "reviewCount", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
	)
	return r.aggregate(ctx, pipeline)
}

func (r *BookRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.BookPrimitive, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.books.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookWithStats
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	books := make([]*domain.BookPrimitive, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toPrimitive()
		if err != nil {
			return nil, err
		}
		books = append(books, p)
	}
	return books, nil
}

func caseInsensitive(s string) bson.D {
	return bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(s)},
		{Key: "$options", Value: "i"},
	}
}
