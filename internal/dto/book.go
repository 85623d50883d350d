// Package dto defines the request shapes accepted by the API and the
// explicit shape checks run against them before mapping.
//
// Shape checks write into a validator.Validator and only look at presence,
// lengths and ranges. The value objects built by the Create methods are the
// authoritative second layer and their errors are returned unchanged.
package dto

import (
	"unicode/utf8"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/validator"
)

// CreateBookDTO is the body of POST /v1/books.
type CreateBookDTO struct {
	Title         string  `json:"title" yaml:"title"`
	Author        string  `json:"author" yaml:"author"`
	ISBN          string  `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	PublishedYear float64 `json:"publishedYear" yaml:"publishedYear"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
}

func (d CreateBookDTO) CreateTitle() (domain.BookTitle, error) {
	return domain.NewBookTitle(d.Title)
}

func (d CreateBookDTO) CreateAuthor() (domain.Author, error) {
	return domain.NewAuthor(d.Author)
}

func (d CreateBookDTO) CreateISBN() (domain.ISBN, error) {
	return domain.NewISBN(d.ISBN)
}

func (d CreateBookDTO) CreatePublishedYear() (domain.PublishedYear, error) {
	return domain.PublishedYearFromNumber(d.PublishedYear)
}

func (d CreateBookDTO) CreateDescription() (domain.Description, error) {
	return domain.NewDescription(d.Description)
}

// ValidateCreateBook runs the shape checks for a new book.
func ValidateCreateBook(v *validator.Validator, d CreateBookDTO) {
	v.Check(d.Title != "", "title", "must be provided")
	v.Check(utf8.RuneCountInString(d.Title) <= domain.MaxTitleLength, "title", "must not be more than 200 characters long")
	v.Check(d.Author != "", "author", "must be provided")
	v.Check(utf8.RuneCountInString(d.Author) <= domain.MaxAuthorLength, "author", "must not be more than 100 characters long")
	v.Check(d.PublishedYear != 0, "publishedYear", "must be provided")
	v.Check(d.PublishedYear >= domain.MinPublishedYear, "publishedYear", "must be greater than or equal to 1000")
	v.Check(utf8.RuneCountInString(d.Description) <= domain.MaxDescriptionLength, "description", "must not be more than 1000 characters long")
}

// UpdateBookDTO is the body of PATCH /v1/books/:id. Every field is a pointer
// so an absent field (nil) can be told apart from an empty one.
type UpdateBookDTO struct {
	Title         *string  `json:"title,omitempty"`
	Author        *string  `json:"author,omitempty"`
	ISBN          *string  `json:"isbn,omitempty"`
	PublishedYear *float64 `json:"publishedYear,omitempty"`
	Description   *string  `json:"description,omitempty"`
}

// ValidateUpdateBook runs the shape checks for the fields that are present.
func ValidateUpdateBook(v *validator.Validator, d UpdateBookDTO) {
	if d.Title != nil {
		v.Check(*d.Title != "", "title", "must not be empty")
		v.Check(utf8.RuneCountInString(*d.Title) <= domain.MaxTitleLength, "title", "must not be more than 200 characters long")
	}
	if d.Author != nil {
		v.Check(*d.Author != "", "author", "must not be empty")
		v.Check(utf8.RuneCountInString(*d.Author) <= domain.MaxAuthorLength, "author", "must not be more than 100 characters long")
	}
	if d.PublishedYear != nil {
		v.Check(*d.PublishedYear >= domain.MinPublishedYear, "publishedYear", "must be greater than or equal to 1000")
	}
	if d.Description != nil {
		v.Check(utf8.RuneCountInString(*d.Description) <= domain.MaxDescriptionLength, "description", "must not be more than 1000 characters long")
	}
}
