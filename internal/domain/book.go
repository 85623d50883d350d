// Package domain holds the self-validating value objects of the catalogue and
// the Book and Review entities built from them.
//
// Each entity comes in three shapes: the value-object typed entity used by
// services, the primitive shape that is serialized to clients and passed to
// repositories, and the document shape stored by the document database
// before an id is known.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalogued book with every field validated.
type Book struct {
	ID            BookID
	Title         BookTitle
	Author        Author
	ISBN          *ISBN
	PublishedYear PublishedYear
	Description   *Description
	AvgRating     AverageRating
	ReviewCount   ReviewCount
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook is a book that has not been persisted yet: no id, no timestamps,
// no aggregates.
type NewBook struct {
	Title         BookTitle
	Author        Author
	ISBN          *ISBN
	PublishedYear PublishedYear
	Description   *Description
}

// WithIdentity returns the Book that n becomes once stored under id at the
// given time. A new book has no reviews.
func (n NewBook) WithIdentity(id BookID, at time.Time) Book {
	return Book{
		ID:            id,
		Title:         n.Title,
		Author:        n.Author,
		ISBN:          n.ISBN,
		PublishedYear: n.PublishedYear,
		Description:   n.Description,
		AvgRating:     ZeroAverageRating(),
		ReviewCount:   ZeroReviewCount(),
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

// BookPatch is a partial update. Nil fields are left untouched.
type BookPatch struct {
	Title         *BookTitle
	Author        *Author
	ISBN          *ISBN
	PublishedYear *PublishedYear
	Description   *Description
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the wire names of the fields the patch sets.
func (p BookPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Author != nil {
		fields = append(fields, "author")
	}
	if p.ISBN != nil {
		fields = append(fields, "isbn")
	}
	if p.PublishedYear != nil {
		fields = append(fields, "publishedYear")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	return fields
}

// Apply returns a copy of b with the patch's fields replaced.
func (b Book) Apply(p BookPatch) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		isbn := *p.ISBN
		b.ISBN = &isbn
	}
	if p.PublishedYear != nil {
		b.PublishedYear = *p.PublishedYear
	}
	if p.Description != nil {
		desc := *p.Description
		b.Description = &desc
	}
	return b
}

// BookPrimitive is the scalar shape of a book returned by the API and
// exchanged with repositories.
type BookPrimitive struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          *string   `json:"isbn,omitempty"`
	PublishedYear int       `json:"publishedYear"`
	Description   *string   `json:"description,omitempty"`
	AvgRating     float64   `json:"avgRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookDocument is the stored form of a book. The id is optional until the
// database assigns or accepts one; aggregates are computed on read and never
// stored.
type BookDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	ISBN          *string            `bson:"isbn,omitempty"`
	PublishedYear int                `bson:"publishedYear"`
	Description   *string            `bson:"description,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}
