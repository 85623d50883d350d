package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a rating with an optional comment left on a book.
type Review struct {
	ID           ReviewID
	BookID       BookID
	Rating       Rating
	Comment      *Comment
	ReviewerName ReviewerName
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReview is a review that has not been persisted yet.
type NewReview struct {
	BookID       BookID
	Rating       Rating
	Comment      *Comment
	ReviewerName ReviewerName
}

// WithIdentity returns the Review that n becomes once stored under id at the
// given time.
func (n NewReview) WithIdentity(id ReviewID, at time.Time) Review {
	return Review{
		ID:           id,
		BookID:       n.BookID,
		Rating:       n.Rating,
		Comment:      n.Comment,
		ReviewerName: n.ReviewerName,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

// ReviewPatch is a partial update. The book a review belongs to cannot be
// changed, so there is no BookID field.
type ReviewPatch struct {
	Rating       *Rating
	Comment      *Comment
	ReviewerName *ReviewerName
}

// IsEmpty reports whether the patch changes nothing.
func (p ReviewPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the wire names of the fields the patch sets.
func (p ReviewPatch) Fields() []string {
	var fields []string
	if p.Rating != nil {
		fields = append(fields, "rating")
	}
	if p.Comment != nil {
		fields = append(fields, "comment")
	}
	if p.ReviewerName != nil {
		fields = append(fields, "reviewerName")
	}
	return fields
}

// Apply returns a copy of r with the patch's fields replaced.
func (r Review) Apply(p ReviewPatch) Review {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		c := *p.Comment
		r.Comment = &c
	}
	if p.ReviewerName != nil {
		r.ReviewerName = *p.ReviewerName
	}
	return r
}

// ReviewPrimitive is the scalar shape of a review.
type ReviewPrimitive struct {
	ID           string    `json:"_id"`
	BookID       string    `json:"bookId"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	ReviewerName string    `json:"reviewerName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewDocument is the stored form of a review.
type ReviewDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	BookID       primitive.ObjectID `bson:"bookId"`
	Rating       int                `bson:"rating"`
	Comment      *string            `bson:"comment,omitempty"`
	ReviewerName string             `bson:"reviewerName"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}
