// cmd/api/server.go
// serve starts the HTTP server and shuts it down gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// serve blocks until the server stops. In-flight requests get 20 seconds
// to complete after a shutdown signal.
func (app *applicationDependencies) serve() error {
	errorLog, err := zap.NewStdLogAt(app.logger, zap.ErrorLevel)
	if err != nil {
		return err
	}

	apiServer := &http.Server{
		Addr:         app.config.Addr(),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     errorLog,
	}

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", zap.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		shutdownErr <- apiServer.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		zap.String("address", apiServer.Addr),
		zap.String("environment", app.config.Env),
		zap.String("version", appVersion),
	)

	err = apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErr
	if err != nil {
		return err
	}

	app.logger.Info("server stopped", zap.String("address", apiServer.Addr))
	return nil
}
