// Package logging constructs the zap logger cmd/sigen injects into every
// pipeline stage, matching the nil-safe *zap.Logger injection pattern
// used throughout this module's internal packages.
package logging

import "go.uber.org/zap"

// New returns a production zap logger, or a no-op logger when quiet is
// true (spec.md §6's ambient --quiet flag).
func New(quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
