// Package store persists shows: named sketch collections together with
// their current running order.
//
// Two backends are provided:
//   - memory: in-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sketchbomb/runorder/pkg/show"
)

// Show is a persisted sketch collection. Order holds the sketch indices in
// running order; it is empty until an optimization has been saved.
type Show struct {
	ID        uuid.UUID     `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Sketches  []show.Sketch `json:"sketches" bson:"sketches"`
	Order     []int         `json:"order,omitempty" bson:"order,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for show storage backends.
type Store interface {
	// Get retrieves a show by ID. Returns a SHOW_NOT_FOUND error when no
	// show with that ID exists.
	Get(ctx context.Context, id uuid.UUID) (*Show, error)

	// List returns all shows ordered by creation time, oldest first.
	List(ctx context.Context) ([]*Show, error)

	// Put inserts or replaces a show keyed by its ID.
	Put(ctx context.Context, s *Show) error

	// Delete removes a show. Returns a SHOW_NOT_FOUND error when no show
	// with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewShow creates a show with a fresh ID and timestamps.
func NewShow(name string, sketches []show.Sketch) *Show {
	now := time.Now().UTC()
	return &Show{
		ID:        uuid.New(),
		Name:      name,
		Sketches:  sketches,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (s *Show) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
