package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/dto"
	"github.com/aoideee/bookreviews/internal/mapper"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the top level of a fixture document.
type fixtureFile struct {
	Books []bookFixture `yaml:"books"`
}

type bookFixture struct {
	dto.CreateBookDTO `yaml:",inline"`
	Reviews           []dto.CreateReviewDTO `yaml:"reviews"`
}

// seedBook is a validated fixture entry ready to be sent.
type seedBook struct {
	Book    domain.NewBook
	Reviews []domain.NewReview
}

func (b seedBook) label() string {
	return fmt.Sprintf("%q by %s", b.Book.Title.Value(), b.Book.Author.Value())
}

// loadFixtures reads and decodes the fixture at path. Unknown keys are errors.
func loadFixtures(path string) (*fixtureFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeFixtures(bytes.NewReader(raw))
}

func decodeFixtures(r io.Reader) (*fixtureFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f fixtureFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture file is empty")
		}
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// validateFixtures maps every entry through the domain mappers and reports
// all failures at once, each prefixed with its position in the file.
//
// Reviews are validated against a placeholder book id; the real id is
// filled in once the book has been created.
func validateFixtures(f *fixtureFile) ([]seedBook, error) {
	if len(f.Books) == 0 {
		return nil, errors.New("fixture contains no books")
	}

	placeholder := domain.NewBookID()

	var (
		books []seedBook
		errs  []error
	)
	for i, fb := range f.Books {
		book, err := mapper.BookFromCreateDTO(fb.CreateBookDTO)
		if err != nil {
			errs = append(errs, fmt.Errorf("books[%d]: %w", i, err))
		}

		sb := seedBook{Book: book}
		for j, fr := range fb.Reviews {
			fr.BookID = placeholder.String()
			review, err := mapper.ReviewFromCreateDTO(fr)
			if err != nil {
				errs = append(errs, fmt.Errorf("books[%d].reviews[%d]: %w", i, j, err))
				continue
			}
			sb.Reviews = append(sb.Reviews, review)
		}
		books = append(books, sb)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return books, nil
}

func countReviews(books []seedBook) int {
	n := 0
	for _, b := range books {
		n += len(b.Reviews)
	}
	return n
}
