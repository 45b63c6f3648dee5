// Package store keeps laid-out graphs so that the HTTP API can serve them
// again by ID.
//
// [MemoryStore] is used by default; [MongoStore] persists records in a
// MongoDB collection. Records are keyed by a random UUID assigned on Save.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("layout not found")

// Record is a stored layout.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Graph     *graph.Graph  `json:"graph" bson:"graph"`
	Config    layout.Config `json:"config" bson:"config"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Store persists layout records.
type Store interface {
	// Save stores rec, assigning ID and CreatedAt when unset, and returns
	// the ID.
	Save(ctx context.Context, rec *Record) (string, error)

	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit IDs, newest first. A limit <= 0 lists all.
	List(ctx context.Context, limit int) ([]string, error)

	Close() error
}

// prepare fills in the ID and timestamp of a record about to be saved.
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

// ValidID reports whether id has the form of an ID assigned by Save.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
