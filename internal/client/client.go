// Package client is a typed HTTP client for the book reviews API.
//
// Inputs are taken as validated domain values and converted to request
// bodies with the mapper package, so a request that reaches the wire has
// already passed the same value-object checks the server runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/mapper"
)

// Client talks to a running API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL, e.g. "http://localhost:4000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for any non-2xx response. Message is set when the
// server sent a single message; Fields holds per-field errors otherwise.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %v", e.StatusCode, e.Fields)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// BookList is one page of books.
type BookList struct {
	Books    []domain.BookPrimitive `json:"books"`
	Metadata data.Metadata          `json:"metadata"`
}

// ReviewList is one page of reviews.
type ReviewList struct {
	Reviews  []domain.ReviewPrimitive `json:"reviews"`
	Metadata data.Metadata            `json:"metadata"`
}

// ListOptions holds the paging and sorting parameters shared by the list
// calls. Zero values are left to the server defaults.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (o ListOptions) values() url.Values {
	qs := url.Values{}
	if o.Page > 0 {
		qs.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		qs.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.SortBy != "" {
		qs.Set("sortBy", o.SortBy)
	}
	if o.SortOrder != "" {
		qs.Set("sortOrder", o.SortOrder)
	}
	return qs
}

// BookListOptions filters ListBooks.
type BookListOptions struct {
	ListOptions
	Search    string
	Author    string
	MinRating *float64
}

// ReviewListOptions filters ListReviews.
type ReviewListOptions struct {
	ListOptions
	BookID    *domain.BookID
	MinRating *int
}

// Healthcheck reports whether the server answers its healthcheck.
func (c *Client) Healthcheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/healthcheck", nil, nil)
}

// CreateBook stores a new book and returns it as saved.
func (c *Client) CreateBook(ctx context.Context, book domain.NewBook) (*domain.BookPrimitive, error) {
	var out struct {
		Book domain.BookPrimitive `json:"book"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/books", mapper.NewBookToCreateDTO(book), &out); err != nil {
		return nil, err
	}
	return &out.Book, nil
}

func (c *Client) GetBook(ctx context.Context, id domain.BookID) (*domain.BookPrimitive, error) {
	var out struct {
		Book domain.BookPrimitive `json:"book"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/books/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Book, nil
}

func (c *Client) ListBooks(ctx context.Context, opts BookListOptions) (*BookList, error) {
	qs := opts.values()
	if opts.Search != "" {
		qs.Set("search", opts.Search)
	}
	if opts.Author != "" {
		qs.Set("author", opts.Author)
	}
	if opts.MinRating != nil {
		qs.Set("minRating", strconv.FormatFloat(*opts.MinRating, 'f', -1, 64))
	}

	var out BookList
	if err := c.do(ctx, http.MethodGet, withQuery("/v1/books", qs), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBook sends only the fields set in patch.
func (c *Client) UpdateBook(ctx context.Context, id domain.BookID, patch domain.BookPatch) (*domain.BookPrimitive, error) {
	var out struct {
		Book domain.BookPrimitive `json:"book"`
	}
	if err := c.do(ctx, http.MethodPatch, "/v1/books/"+id.String(), mapper.BookPatchToUpdateDTO(patch), &out); err != nil {
		return nil, err
	}
	return &out.Book, nil
}

// DeleteBook removes a book and its reviews.
func (c *Client) DeleteBook(ctx context.Context, id domain.BookID) error {
	return c.do(ctx, http.MethodDelete, "/v1/books/"+id.String(), nil, nil)
}

// TopRated returns up to limit reviewed books, best first. A limit of zero
// uses the server default.
func (c *Client) TopRated(ctx context.Context, limit int) ([]domain.BookPrimitive, error) {
	qs := url.Values{}
	if limit > 0 {
		qs.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Books []domain.BookPrimitive `json:"books"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/v1/top-rated-books", qs), nil, &out); err != nil {
		return nil, err
	}
	return out.Books, nil
}

func (c *Client) CreateReview(ctx context.Context, review domain.NewReview) (*domain.ReviewPrimitive, error) {
	var out struct {
		Review domain.ReviewPrimitive `json:"review"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/reviews", mapper.NewReviewToCreateDTO(review), &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

func (c *Client) ListReviews(ctx context.Context, opts ReviewListOptions) (*ReviewList, error) {
	qs := opts.values()
	if opts.BookID != nil {
		qs.Set("bookId", opts.BookID.String())
	}
	if opts.MinRating != nil {
		qs.Set("minRating", strconv.Itoa(*opts.MinRating))
	}

	var out ReviewList
	if err := c.do(ctx, http.MethodGet, withQuery("/v1/reviews", qs), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReview(ctx context.Context, id domain.ReviewID) error {
	return c.do(ctx, http.MethodDelete, "/v1/reviews/"+id.String(), nil, nil)
}

func withQuery(path string, qs url.Values) string {
	if len(qs) == 0 {
		return path
	}
	return path + "?" + qs.Encode()
}

// do sends body as JSON and decodes a 2xx response into out when out is
// not nil. Other responses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	if err := json.Unmarshal(envelope.Error, &apiErr.Message); err == nil {
		return apiErr
	}
	if err := json.Unmarshal(envelope.Error, &apiErr.Fields); err == nil {
		return apiErr
	}
	apiErr.Message = string(envelope.Error)
	return apiErr
}
