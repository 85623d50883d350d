package mapper

import (
	"testing"
	"time"

	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/dto"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var (
	createdAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updatedAt = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
)

func TestBookFromCreateDTO_ToPrimitive(t *testing.T) {
	nb, err := BookFromCreateDTO(dto.CreateBookDTO{
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		ISBN:          "9780132350884",
		PublishedYear: 2008,
	})
	require.NoError(t, err)

	id, err := domain.BookIDFromString("507f1f77bcf86cd799439011")
	require.NoError(t, err)
	got := BookToPrimitive(nb.WithIdentity(id, createdAt))

	want := domain.BookPrimitive{
		ID:            "507f1f77bcf86cd799439011",
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		ISBN:          ptr("9780132350884"),
		PublishedYear: 2008,
		Description:   nil,
		AvgRating:     0,
		ReviewCount:   0,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	assert.Equal(t, "", cmp.Diff(want, got))
}

func TestBookFromCreateDTO_OmitsEmptyOptionals(t *testing.T) {
	nb, err := BookFromCreateDTO(dto.CreateBookDTO{Title: "T", Author: "A", PublishedYear: 1999})
	require.NoError(t, err)
	assert.Nil(t, nb.ISBN)
	assert.Nil(t, nb.Description)
}

func TestBookFromCreateDTO_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dto     dto.CreateBookDTO
		wantErr string
	}{
		{name: "empty title", dto: dto.CreateBookDTO{Author: "A", PublishedYear: 2000}, wantErr: "Book title cannot be empty"},
		{name: "bad isbn", dto: dto.CreateBookDTO{Title: "T", Author: "A", PublishedYear: 2000, ISBN: "123"}, wantErr: "Invalid ISBN format"},
		{name: "early year", dto: dto.CreateBookDTO{Title: "T", Author: "A", PublishedYear: 999}, wantErr: "Published year must be at least 1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BookFromCreateDTO(tt.dto)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestBookFromUpdateDTO_Sparse(t *testing.T) {
	p, err := BookFromUpdateDTO(dto.UpdateBookDTO{})
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	p, err = BookFromUpdateDTO(dto.UpdateBookDTO{Title: ptr("X")})
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, p.Fields())
	assert.Equal(t, "X", p.Title.Value())

	p, err = BookFromUpdateDTO(dto.UpdateBookDTO{Description: ptr("")})
	require.NoError(t, err)
	require.NotNil(t, p.Description, "present but empty is an explicit overwrite")
	assert.True(t, p.Description.IsEmpty())

	_, err = BookFromUpdateDTO(dto.UpdateBookDTO{Title: ptr("")})
	assert.EqualError(t, err, "Book title cannot be empty")
}

func TestBookPrimitive_RoundTrip(t *testing.T) {
	tests := []domain.BookPrimitive{
		{
			ID:            "507f1f77bcf86cd799439011",
			Title:         "Clean Code",
			Author:        "Robert C. Martin",
			ISBN:          ptr("9780132350884"),
			PublishedYear: 2008,
			Description:   ptr("A handbook"),
			AvgRating:     4.3,
			ReviewCount:   3,
			CreatedAt:     createdAt,
			UpdatedAt:     updatedAt,
		},
		{
			ID:            "507F1F77BCF86CD799439012",
			Title:         "Refactoring",
			Author:        "Martin Fowler",
			PublishedYear: 1999,
			CreatedAt:     createdAt,
			UpdatedAt:     updatedAt,
		},
	}
	for _, p := range tests {
		t.Run(p.Title, func(t *testing.T) {
			b, err := BookFromPrimitive(p)
			require.NoError(t, err)
			assert.Equal(t, "", cmp.Diff(p, BookToPrimitive(b)))
		})
	}
}

func TestBookFromPrimitive_RejectsCorruptValues(t *testing.T) {
	p := domain.BookPrimitive{
		ID:            "507f1f77bcf86cd799439011",
		Title:         "T",
		Author:        "A",
		PublishedYear: 2000,
		AvgRating:     7,
	}
	_, err := BookFromPrimitive(p)
	assert.EqualError(t, err, "Average rating must be between 0 and 5")

	p.AvgRating = 0
	p.ID = "not-an-id"
	_, err = BookFromPrimitive(p)
	assert.EqualError(t, err, "Invalid ObjectId format")
}

func TestBookDTOInverses(t *testing.T) {
	in := dto.CreateBookDTO{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", PublishedYear: 2008, Description: "d"}
	nb, err := BookFromCreateDTO(in)
	require.NoError(t, err)
	assert.Equal(t, in, NewBookToCreateDTO(nb))

	upd := dto.UpdateBookDTO{Author: ptr("Uncle Bob"), PublishedYear: ptr(2009.0)}
	patch, err := BookFromUpdateDTO(upd)
	require.NoError(t, err)
	assert.Equal(t, "", cmp.Diff(upd, BookPatchToUpdateDTO(patch)))
}

func TestBookDocument_RoundTrip(t *testing.T) {
	p := domain.BookPrimitive{
		ID:            "507f1f77bcf86cd799439011",
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		PublishedYear: 2008,
		AvgRating:     4.25,
		ReviewCount:   4,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	doc := BookPrimitiveToDocument(p)
	assert.Equal(t, "507f1f77bcf86cd799439011", doc.ID.Hex())

	back, err := BookDocumentToPrimitive(doc, 4.25, 4)
	require.NoError(t, err)
	p.AvgRating = 4.3
	assert.Equal(t, "", cmp.Diff(p, back))

	fresh := BookPrimitiveToDocument(domain.BookPrimitive{Title: "x"})
	assert.True(t, fresh.ID.IsZero())
}
