package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aoideee/bookreviews/internal/client"
	"github.com/aoideee/bookreviews/internal/domain"
	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type booksOptions struct {
	apiURL  string
	timeout time.Duration
}

func newBooksCmd(root *rootOptions) *cobra.Command {
	opts := &booksOptions{}

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Create every book and review in the fixture through the API",
		Long: `Create every book and review in the fixture through the API.

Example:
  seed books --file fixtures.yaml --api http://localhost:4000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := loadFixtures(root.file)
			if err != nil {
				return err
			}
			books, err := validateFixtures(f)
			if err != nil {
				return err
			}

			logger, err := logging.New(root.logLevel, "development")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			result, err := seed(ctx, client.New(opts.apiURL), books, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d books and %d reviews\n", result.books, result.reviews)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", "http://localhost:4000", "Base URL of the API server")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall deadline for the seeding run")
	return cmd
}

type seedResult struct {
	books   int
	reviews int
}

// seed creates the books in order, each followed by its reviews. It stops
// at the first failure and reports how far it got.
func seed(ctx context.Context, c *client.Client, books []seedBook, logger *zap.Logger) (seedResult, error) {
	logger = logger.With(zap.String(logging.FieldComponent, "seed"))

	var result seedResult
	if err := c.Healthcheck(ctx); err != nil {
		return result, fmt.Errorf("api not reachable: %w", err)
	}

	for _, b := range books {
		created, err := c.CreateBook(ctx, b.Book)
		if err != nil {
			return result, fmt.Errorf("create book %s: %w", b.label(), err)
		}
		result.books++

		bookID, err := domain.BookIDFromString(created.ID)
		if err != nil {
			return result, fmt.Errorf("create book %s: server returned id %q: %w", b.label(), created.ID, err)
		}
		logger.Debug("book created", zap.String("id", created.ID), zap.String("title", created.Title))

		for _, r := range b.Reviews {
			r.BookID = bookID
			if _, err := c.CreateReview(ctx, r); err != nil {
				return result, fmt.Errorf("create review by %s for %s: %w", r.ReviewerName.Value(), b.label(), err)
			}
			result.reviews++
		}
	}

	logger.Info("seeding finished", zap.Int("books", result.books), zap.Int("reviews", result.reviews))
	return result, nil
}
