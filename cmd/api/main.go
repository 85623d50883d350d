// Package main is the entry point for the book reviews API server.
// It wires together configuration, the storage backend, the services and
// the HTTP router.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/aoideee/bookreviews/internal/config"
	"github.com/aoideee/bookreviews/internal/data"
	"github.com/aoideee/bookreviews/internal/data/memory"
	"github.com/aoideee/bookreviews/internal/data/mongodb"
	"github.com/aoideee/bookreviews/internal/data/postgres"
	"github.com/aoideee/bookreviews/internal/logging"
	"github.com/aoideee/bookreviews/internal/service"
	"go.uber.org/zap"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
type applicationDependencies struct {
	config  *config.Config
	logger  *zap.Logger
	books   *service.BookService
	reviews *service.ReviewService
	limiter *ipRateLimiter // nil when rate limiting is disabled
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String(logging.FieldService, "bookreviews-api"))

	models, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		logger.Error("open storage", zap.String("driver", cfg.DB.Driver), zap.Error(err))
		return err
	}
	defer closeStorage()

	logger.Info("storage ready", zap.String("driver", cfg.DB.Driver))

	app := newApplication(cfg, logger, models)
	defer app.close()
	return app.serve()
}

// newApplication builds the services on top of models and starts the rate
// limiter's sweeper when limiting is enabled. Call close when done.
func newApplication(cfg *config.Config, logger *zap.Logger, models data.Models) *applicationDependencies {
	app := &applicationDependencies{
		config:  cfg,
		logger:  logger,
		books:   service.NewBookService(models.Books, models.Reviews, logger),
		reviews: service.NewReviewService(models.Books, models.Reviews, logger),
	}
	if cfg.Limiter.Enabled {
		app.limiter = newIPRateLimiter(cfg.Limiter.RPS, cfg.Limiter.Burst)
		app.limiter.start(time.Minute)
	}
	return app
}

// close stops background work started by newApplication.
func (app *applicationDependencies) close() {
	if app.limiter != nil {
		app.limiter.stop()
	}
}

// openStorage connects the configured backend and returns its repositories
// together with a function that releases the connection.
func openStorage(cfg *config.Config, logger *zap.Logger) (data.Models, func(), error) {
	switch cfg.DB.Driver {
	case "postgres":
		db, err := openDB(cfg.DB)
		if err != nil {
			return data.Models{}, nil, err
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(db, logger); err != nil {
				db.Close()
				return data.Models{}, nil, err
			}
		}
		return postgres.NewModels(db, logger), func() { db.Close() }, nil

	case "mongodb":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongodb.Connect(ctx, cfg.DB.MongoURI)
		if err != nil {
			return data.Models{}, nil, err
		}
		db := client.Database(cfg.DB.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return data.Models{}, nil, err
		}
		closer := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		return mongodb.NewModels(db, logger), closer, nil

	default:
		return memory.NewModels(), func() {}, nil
	}
}

// openDB opens a PostgreSQL connection pool and pings it with a 5-second
// timeout to confirm it is reachable.
func openDB(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
