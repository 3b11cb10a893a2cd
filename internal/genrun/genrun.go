// Package genrun assigns a per-generation-pass correlation ID and logs the
// pipeline's stages against it, the way server/dao/sqlite assigns a fresh
// uuid.NewRandom() id to each created row rather than trusting a
// caller-supplied one, and the way server/server.go threads log.* calls
// through request handling.
package genrun

import (
	"log"

	"github.com/google/uuid"
)

// Run tracks one generation pass: a unique ID and a logger that prefixes
// every message with it, so multiple passes interleaved in the same process
// don't produce ambiguous log output.
type Run struct {
	ID     uuid.UUID
	logger *log.Logger
}

// New starts a Run with a freshly generated correlation ID.
func New() (*Run, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return &Run{
		ID:     id,
		logger: log.New(log.Writer(), "[peggen "+id.String()[:8]+"] ", log.LstdFlags),
	}, nil
}

// Stage logs that the pipeline has entered the named stage.
func (r *Run) Stage(name string) {
	r.logger.Printf("stage: %s", name)
}

// Stagef logs a formatted message within the current stage.
func (r *Run) Stagef(format string, args ...any) {
	r.logger.Printf(format, args...)
}

// String returns the full correlation ID, suitable for embedding in the
// emitted header comment.
func (r *Run) String() string {
	return r.ID.String()
}
