package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/aoideee/bookreviews/internal/errors"
)

// Length and range limits for book fields.
const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 100
	MaxDescriptionLength = 1000
	MinPublishedYear     = 1000
)

// Validation errors returned by the book value objects.
var (
	ErrTitleEmpty         = domainerrors.Validation("Book title cannot be empty")
	ErrTitleTooLong       = domainerrors.Validation("Book title cannot exceed 200 characters")
	ErrAuthorEmpty        = domainerrors.Validation("Author cannot be empty")
	ErrAuthorTooLong      = domainerrors.Validation("Author cannot exceed 100 characters")
	ErrInvalidISBN        = domainerrors.Validation("Invalid ISBN format")
	ErrYearNotInteger     = domainerrors.Validation("Published year must be an integer")
	ErrYearTooEarly       = domainerrors.Validation("Published year must be at least 1000")
	ErrYearInFuture       = domainerrors.Validation("Published year cannot be in the future")
	ErrDescriptionTooLong = domainerrors.Validation("Description cannot exceed 1000 characters")
)

// currentYear is swapped in tests that need a fixed clock.
var currentYear = func() int { return time.Now().Year() }

// BookTitle is a trimmed, non-empty title of at most 200 characters.
type BookTitle struct {
	value string
}

// NewBookTitle validates and trims raw.
func NewBookTitle(raw string) (BookTitle, error) {
	v := strings.TrimSpace(raw)
	if err := validateTitle(v); err != nil {
		return BookTitle{}, err
	}
	return BookTitle{value: v}, nil
}

// IsValidBookTitle reports whether raw would produce a BookTitle.
func IsValidBookTitle(raw string) bool {
	return validateTitle(strings.TrimSpace(raw)) == nil
}

func validateTitle(v string) error {
	if v == "" {
		return ErrTitleEmpty
	}
	if utf8.RuneCountInString(v) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (t BookTitle) Value() string { return t.value }
func (t BookTitle) String() string { return t.value }
func (t BookTitle) Equals(other BookTitle) bool { return t.value == other.value }

// Author is a trimmed, non-empty author name of at most 100 characters.
type Author struct {
	value string
}

// NewAuthor validates and trims raw.
func NewAuthor(raw string) (Author, error) {
	v := strings.TrimSpace(raw)
	if err := validateAuthor(v); err != nil {
		return Author{}, err
	}
	return Author{value: v}, nil
}

// IsValidAuthor reports whether raw would produce an Author.
func IsValidAuthor(raw string) bool {
	return validateAuthor(strings.TrimSpace(raw)) == nil
}

func validateAuthor(v string) error {
	if v == "" {
		return ErrAuthorEmpty
	}
	if utf8.RuneCountInString(v) > MaxAuthorLength {
		return ErrAuthorTooLong
	}
	return nil
}

func (a Author) Value() string { return a.value }
func (a Author) String() string { return a.value }
func (a Author) Equals(other Author) bool { return a.value == other.value }

var (
	isbn10RX = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13RX = regexp.MustCompile(`^\d{13}$`)
)

// ISBN holds a cleaned ISBN-10 or ISBN-13: dashes and spaces removed,
// upper-cased. Check digits are not verified.
type ISBN struct {
	value string
}

// NewISBN cleans and validates raw.
func NewISBN(raw string) (ISBN, error) {
	v := cleanISBN(raw)
	if err := validateISBN(v); err != nil {
		return ISBN{}, err
	}
	return ISBN{value: v}, nil
}

// IsValidISBN reports whether raw would produce an ISBN.
func IsValidISBN(raw string) bool {
	return validateISBN(cleanISBN(raw)) == nil
}

func cleanISBN(raw string) string {
	v := strings.NewReplacer("-", "", " ", "").Replace(raw)
	return strings.ToUpper(v)
}

func validateISBN(v string) error {
	if !isbn10RX.MatchString(v) && !isbn13RX.MatchString(v) {
		return ErrInvalidISBN
	}
	return nil
}

func (i ISBN) Value() string { return i.value }
func (i ISBN) String() string { return i.value }
func (i ISBN) Equals(other ISBN) bool { return i.value == other.value }
func (i ISBN) IsISBN10() bool { return len(i.value) == 10 }
func (i ISBN) IsISBN13() bool { return len(i.value) == 13 }

// Formatted returns the ISBN split into its conventional groups,
// 978-3-16-148410-0 for ISBN-13 and 0-13-235088-2 for ISBN-10.
func (i ISBN) Formatted() string {
	v := i.value
	switch len(v) {
	case 13:
		return v[0:3] + "-" + v[3:4] + "-" + v[4:6] + "-" + v[6:12] + "-" + v[12:]
	case 10:
		return v[0:1] + "-" + v[1:3] + "-" + v[3:9] + "-" + v[9:]
	default:
		return v
	}
}

// PublishedYear is a year between 1000 and next year inclusive.
type PublishedYear struct {
	value int
}

// NewPublishedYear validates y against the current calendar year.
func NewPublishedYear(y int) (PublishedYear, error) {
	if err := validateYear(y); err != nil {
		return PublishedYear{}, err
	}
	return PublishedYear{value: y}, nil
}

// PublishedYearFromNumber accepts a wire number and rejects NaN and
// fractional values before range checking.
func PublishedYearFromNumber(n float64) (PublishedYear, error) {
	y, ok := asInteger(n)
	if !ok {
		return PublishedYear{}, ErrYearNotInteger
	}
	return NewPublishedYear(y)
}

// IsValidPublishedYear reports whether y would produce a PublishedYear.
func IsValidPublishedYear(y int) bool {
	return validateYear(y) == nil
}

func validateYear(y int) error {
	if y < MinPublishedYear {
		return ErrYearTooEarly
	}
	if y > currentYear()+1 {
		return ErrYearInFuture
	}
	return nil
}

func (p PublishedYear) Value() int { return p.value }
func (p PublishedYear) String() string { return strconv.Itoa(p.value) }
func (p PublishedYear) Equals(other PublishedYear) bool { return p.value == other.value }

// Description is trimmed free text of at most 1000 characters. Empty is allowed.
type Description struct {
	value string
}

// NewDescription validates and trims raw.
func NewDescription(raw string) (Description, error) {
	v := strings.TrimSpace(raw)
	if err := validateDescription(v); err != nil {
		return Description{}, err
	}
	return Description{value: v}, nil
}

// IsValidDescription reports whether raw would produce a Description.
func IsValidDescription(raw string) bool {
	return validateDescription(strings.TrimSpace(raw)) == nil
}

func validateDescription(v string) error {
	if utf8.RuneCountInString(v) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (d Description) Value() string { return d.value }
func (d Description) String() string { return d.value }
func (d Description) Equals(other Description) bool { return d.value == other.value }
func (d Description) IsEmpty() bool { return d.value == "" }

// asInteger converts n to int when it is a finite whole number.
func asInteger(n float64) (int, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, false
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}
