// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/travel-mate/internal/model"
)

// Storage defines the contract for our persistence layer: one JSON snapshot
// holding the whole workspace.
type Storage interface {
	// Load returns the current workspace. A workspace that was never saved is empty.
	Load(ctx context.Context) (*model.AppState, error)
	// Save replaces the workspace with state.
	Save(ctx context.Context, state *model.AppState) error
	// Import replaces the workspace with the snapshot at path. On any error
	// the workspace is left unchanged.
	Import(ctx context.Context, path string) (*model.AppState, error)
	// Export writes the workspace to a new timestamped file in dir and returns its path.
	Export(ctx context.Context, dir string) (string, error)
}

// IDGenerator produces identifiers for new trips and expenses. Uniqueness
// within one workspace is sufficient.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current time, so "today" defaults can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}
