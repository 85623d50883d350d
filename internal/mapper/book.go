// Package mapper converts between request DTOs, value-object entities and
// their primitive and document shapes.
//
// Mapping builds value objects and so can fail; errors are returned as the
// value objects produced them. Update mappings are sparse: a nil DTO field
// leaves the corresponding patch field nil, and an empty but present field is
// mapped like any other value.
package mapper

import (
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookFromCreateDTO builds a NewBook. Empty isbn and description are left out.
func BookFromCreateDTO(d dto.CreateBookDTO) (domain.NewBook, error) {
	title, err := d.CreateTitle()
	if err != nil {
		return domain.NewBook{}, err
	}
	author, err := d.CreateAuthor()
	if err != nil {
		return domain.NewBook{}, err
	}
	year, err := d.CreatePublishedYear()
	if err != nil {
		return domain.NewBook{}, err
	}

	b := domain.NewBook{Title: title, Author: author, PublishedYear: year}
	if d.ISBN != "" {
		isbn, err := d.CreateISBN()
		if err != nil {
			return domain.NewBook{}, err
		}
		b.ISBN = &isbn
	}
	if d.Description != "" {
		desc, err := d.CreateDescription()
		if err != nil {
			return domain.NewBook{}, err
		}
		b.Description = &desc
	}
	return b, nil
}

// BookFromUpdateDTO builds a patch holding only the fields present on d.
func BookFromUpdateDTO(d dto.UpdateBookDTO) (domain.BookPatch, error) {
	var p domain.BookPatch
	if d.Title != nil {
		v, err := domain.NewBookTitle(*d.Title)
		if err != nil {
			return domain.BookPatch{}, err
		}
		p.Title = &v
	}
	if d.Author != nil {
		v, err := domain.NewAuthor(*d.Author)
		if err != nil {
			return domain.BookPatch{}, err
		}
		p.Author = &v
	}
	if d.ISBN != nil {
		v, err := domain.NewISBN(*d.ISBN)
		if err != nil {
			return domain.BookPatch{}, err
		}
		p.ISBN = &v
	}
	if d.PublishedYear != nil {
		v, err := domain.PublishedYearFromNumber(*d.PublishedYear)
		if err != nil {
			return domain.BookPatch{}, err
		}
		p.PublishedYear = &v
	}
	if d.Description != nil {
		v, err := domain.NewDescription(*d.Description)
		if err != nil {
			return domain.BookPatch{}, err
		}
		p.Description = &v
	}
	return p, nil
}

// BookToPrimitive unwraps every value object of b.
func BookToPrimitive(b domain.Book) domain.BookPrimitive {
	return domain.BookPrimitive{
		ID:            b.ID.Value(),
		Title:         b.Title.Value(),
		Author:        b.Author.Value(),
		ISBN:          optionalISBN(b.ISBN),
		PublishedYear: b.PublishedYear.Value(),
		Description:   optionalDescription(b.Description),
		AvgRating:     b.AvgRating.Value(),
		ReviewCount:   b.ReviewCount.Value(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BookFromPrimitive re-validates every field of p. A corrupted stored value
// fails here.
func BookFromPrimitive(p domain.BookPrimitive) (domain.Book, error) {
	id, err := domain.BookIDFromString(p.ID)
	if err != nil {
		return domain.Book{}, err
	}
	title, err := domain.NewBookTitle(p.Title)
	if err != nil {
		return domain.Book{}, err
	}
	author, err := domain.NewAuthor(p.Author)
	if err != nil {
		return domain.Book{}, err
	}
	year, err := domain.NewPublishedYear(p.PublishedYear)
	if err != nil {
		return domain.Book{}, err
	}
	avg, err := domain.NewAverageRating(p.AvgRating)
	if err != nil {
		return domain.Book{}, err
	}
	count, err := domain.NewReviewCount(p.ReviewCount)
	if err != nil {
		return domain.Book{}, err
	}

	b := domain.Book{
		ID:            id,
		Title:         title,
		Author:        author,
		PublishedYear: year,
		AvgRating:     avg,
		ReviewCount:   count,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ISBN != nil {
		isbn, err := domain.NewISBN(*p.ISBN)
		if err != nil {
			return domain.Book{}, err
		}
		b.ISBN = &isbn
	}
	if p.Description != nil {
		desc, err := domain.NewDescription(*p.Description)
		if err != nil {
			return domain.Book{}, err
		}
		b.Description = &desc
	}
	return b, nil
}

// NewBookToCreateDTO is the inverse of BookFromCreateDTO.
func NewBookToCreateDTO(b domain.NewBook) dto.CreateBookDTO {
	d := dto.CreateBookDTO{
		Title:         b.Title.Value(),
		Author:        b.Author.Value(),
		PublishedYear: float64(b.PublishedYear.Value()),
	}
	if b.ISBN != nil {
		d.ISBN = b.ISBN.Value()
	}
	if b.Description != nil {
		d.Description = b.Description.Value()
	}
	return d
}

// BookPatchToUpdateDTO is the inverse of BookFromUpdateDTO.
func BookPatchToUpdateDTO(p domain.BookPatch) dto.UpdateBookDTO {
	var d dto.UpdateBookDTO
	if p.Title != nil {
		v := p.Title.Value()
		d.Title = &v
	}
	if p.Author != nil {
		v := p.Author.Value()
		d.Author = &v
	}
	if p.ISBN != nil {
		v := p.ISBN.Value()
		d.ISBN = &v
	}
	if p.PublishedYear != nil {
		v := float64(p.PublishedYear.Value())
		d.PublishedYear = &v
	}
	if p.Description != nil {
		v := p.Description.Value()
		d.Description = &v
	}
	return d
}

// BookPrimitiveToDocument converts p to its stored form. Aggregates are
// dropped; an empty or malformed id leaves the document id unset.
func BookPrimitiveToDocument(p domain.BookPrimitive) domain.BookDocument {
	oid, _ := primitive.ObjectIDFromHex(p.ID)
	return domain.BookDocument{
		ID:            oid,
		Title:         p.Title,
		Author:        p.Author,
		ISBN:          p.ISBN,
		PublishedYear: p.PublishedYear,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// BookDocumentToPrimitive converts a stored book and its computed
// aggregates to the primitive shape. The average is rounded the way
// AverageRating rounds.
func BookDocumentToPrimitive(doc domain.BookDocument, avgRating float64, reviewCount int) (domain.BookPrimitive, error) {
	avg, err := domain.NewAverageRating(avgRating)
	if err != nil {
		return domain.BookPrimitive{}, err
	}
	return domain.BookPrimitive{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Author:        doc.Author,
		ISBN:          doc.ISBN,
		PublishedYear: doc.PublishedYear,
		Description:   doc.Description,
		AvgRating:     avg.Value(),
		ReviewCount:   reviewCount,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func optionalISBN(v *domain.ISBN) *string {
	if v == nil {
		return nil
	}
	s := v.Value()
	return &s
}

func optionalDescription(v *domain.Description) *string {
	if v == nil {
		return nil
	}
	s := v.Value()
	return &s
}
