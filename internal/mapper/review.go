package mapper

import (
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewFromCreateDTO builds a NewReview. An empty comment is left out.
func ReviewFromCreateDTO(d dto.CreateReviewDTO) (domain.NewReview, error) {
	bookID, err := d.CreateBookID()
	if err != nil {
		return domain.NewReview{}, err
	}
	rating, err := d.CreateRating()
	if err != nil {
		return domain.NewReview{}, err
	}
	name, err := d.CreateReviewerName()
	if err != nil {
		return domain.NewReview{}, err
	}

	r := domain.NewReview{BookID: bookID, Rating: rating, ReviewerName: name}
	if d.Comment != "" {
		c, err := d.CreateComment()
		if err != nil {
			return domain.NewReview{}, err
		}
		r.Comment = &c
	}
	return r, nil
}

// ReviewFromUpdateDTO builds a patch holding only the fields present on d.
// d.BookID is ignored: a review stays with the book it was written for.
func ReviewFromUpdateDTO(d dto.UpdateReviewDTO) (domain.ReviewPatch, error) {
	var p domain.ReviewPatch
	if d.Rating != nil {
		v, err := domain.RatingFromNumber(*d.Rating)
		if err != nil {
			return domain.ReviewPatch{}, err
		}
		p.Rating = &v
	}
	if d.Comment != nil {
		v, err := domain.NewComment(*d.Comment)
		if err != nil {
			return domain.ReviewPatch{}, err
		}
		p.Comment = &v
	}
	if d.ReviewerName != nil {
		v, err := domain.NewReviewerName(*d.ReviewerName)
		if err != nil {
			return domain.ReviewPatch{}, err
		}
		p.ReviewerName = &v
	}
	return p, nil
}

// ReviewToPrimitive unwraps every value object of r.
func ReviewToPrimitive(r domain.Review) domain.ReviewPrimitive {
	p := domain.ReviewPrimitive{
		ID:           r.ID.Value(),
		BookID:       r.BookID.Value(),
		Rating:       r.Rating.Value(),
		ReviewerName: r.ReviewerName.Value(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Comment != nil {
		c := r.Comment.Value()
		p.Comment = &c
	}
	return p
}

// ReviewFromPrimitive re-validates every field of p.
func ReviewFromPrimitive(p domain.ReviewPrimitive) (domain.Review, error) {
	id, err := domain.ReviewIDFromString(p.ID)
	if err != nil {
		return domain.Review{}, err
	}
	bookID, err := domain.BookIDFromString(p.BookID)
	if err != nil {
		return domain.Review{}, err
	}
	rating, err := domain.NewRating(p.Rating)
	if err != nil {
		return domain.Review{}, err
	}
	name, err := domain.NewReviewerName(p.ReviewerName)
	if err != nil {
		return domain.Review{}, err
	}

	r := domain.Review{
		ID:           id,
		BookID:       bookID,
		Rating:       rating,
		ReviewerName: name,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Comment != nil {
		c, err := domain.NewComment(*p.Comment)
		if err != nil {
			return domain.Review{}, err
		}
		r.Comment = &c
	}
	return r, nil
}

// NewReviewToCreateDTO is the inverse of ReviewFromCreateDTO.
func NewReviewToCreateDTO(r domain.NewReview) dto.CreateReviewDTO {
	d := dto.CreateReviewDTO{
		BookID:       r.BookID.Value(),
		Rating:       float64(r.Rating.Value()),
		ReviewerName: r.ReviewerName.Value(),
	}
	if r.Comment != nil {
		d.Comment = r.Comment.Value()
	}
	return d
}

// ReviewPatchToUpdateDTO is the inverse of ReviewFromUpdateDTO.
func ReviewPatchToUpdateDTO(p domain.ReviewPatch) dto.UpdateReviewDTO {
	var d dto.UpdateReviewDTO
	if p.Rating != nil {
		v := float64(p.Rating.Value())
		d.Rating = &v
	}
	if p.Comment != nil {
		v := p.Comment.Value()
		d.Comment = &v
	}
	if p.ReviewerName != nil {
		v := p.ReviewerName.Value()
		d.ReviewerName = &v
	}
	return d
}

// ReviewPrimitiveToDocument converts p to its stored form. The book id must
// already be valid; callers map it through ReviewFromPrimitive first.
func ReviewPrimitiveToDocument(p domain.ReviewPrimitive) domain.ReviewDocument {
	oid, _ := primitive.ObjectIDFromHex(p.ID)
	bookID, _ := primitive.ObjectIDFromHex(p.BookID)
	return domain.ReviewDocument{
		ID:           oid,
		BookID:       bookID,
		Rating:       p.Rating,
		Comment:      p.Comment,
		ReviewerName: p.ReviewerName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ReviewDocumentToPrimitive converts a stored review to the primitive shape.
func ReviewDocumentToPrimitive(doc domain.ReviewDocument) domain.ReviewPrimitive {
	return domain.ReviewPrimitive{
		ID:           doc.ID.Hex(),
		BookID:       doc.BookID.Hex(),
		Rating:       doc.Rating,
		Comment:      doc.Comment,
		ReviewerName: doc.ReviewerName,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
