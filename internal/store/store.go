// Package store persists location records.
package store

import (
	"context"

	"github.com/sells-group/address-verify/internal/model"
)

// ListFilter specifies criteria for listing locations.
type ListFilter struct {
	// Country restricts results to a single country value when set.
	Country string
	// Limit caps the number of returned records; 0 means no cap.
	Limit int
}

// Store defines the persistence interface for location records.
type Store interface {
	GetLocation(ctx context.Context, id string) (*model.Location, error)
	// ListPending returns unlocked locations that have never been geocoded.
	ListPending(ctx context.Context, filter ListFilter) ([]model.Location, error)
	// SaveLocation upserts a record, assigning an ID if absent.
	SaveLocation(ctx context.Context, loc *model.Location) error

	Migrate(ctx context.Context) error
	Close() error
}
