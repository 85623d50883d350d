// Package logging builds the zap loggers used across the service and holds
// the shared field names for structured log entries.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by every component.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldType      = "type"
	FieldRequestID = "request_id"
	FieldPort      = "port"
)

// New builds a logger for the given level and environment. The development
// environment gets the human-readable console encoder; anything else logs JSON.
func New(level, env string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = env != "development"

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log, nil
}
