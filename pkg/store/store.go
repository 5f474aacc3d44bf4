// Package store keeps finished analyses as reports that can be fetched
// again by ID.
//
// [MongoStore] persists reports in a MongoDB collection and is used by the
// API server when a connection URI is configured. [MemoryStore] keeps them
// in process memory.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

// Report is a stored analysis.
type Report struct {
	ID        string           `json:"id" bson:"_id"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Options   pipeline.Options `json:"options" bson:"options"`
	Result    *pipeline.Result `json:"result" bson:"result"`
}

// NewReport wraps a result in a report with a fresh ID.
func NewReport(opts pipeline.Options, res *pipeline.Result) *Report {
	return &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Options:   opts,
		Result:    res,
	}
}

// Store saves and retrieves reports. Implementations are safe for
// concurrent use.
type Store interface {
	// Save stores r, replacing any report with the same ID.
	Save(ctx context.Context, r *Report) error

	// Get returns the report with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Report, error)

	// List returns the most recent reports, newest first.
	List(ctx context.Context, limit int) ([]*Report, error)

	Close(ctx context.Context) error
}

// ValidateID checks that id is a report ID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(id)
	}
	return nil
}
