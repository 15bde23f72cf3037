// Package store provides the save-game storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/shadow-soldiers/internal/engine"
)

var (
	ErrNotFound  = errors.New("save not found")
	ErrNameTaken = errors.New("save name already in use")
)

// Save is one persisted play session.
type Save struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	GraphPath string       `json:"graph_path"`
	State     engine.State `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CreateParams holds parameters for creating a save.
type CreateParams struct {
	Name      string // defaults to the generated ID
	GraphPath string
	State     engine.State
}

// ListParams holds parameters for listing saves.
type ListParams struct {
	GraphPath string
	Limit     int
}

// Store defines the save-game storage interface.
type Store interface {
	// Create stores a new save and returns it with its ID set.
	Create(ctx context.Context, p CreateParams) (*Save, error)

	// Get retrieves a save by ID or name.
	Get(ctx context.Context, ref string) (*Save, error)

	// Update replaces the session state of an existing save.
	Update(ctx context.Context, id string, st engine.State) (*Save, error)

	// List lists saves, most recently updated first.
	List(ctx context.Context, p ListParams) ([]Save, error)

	// Delete removes a save and its roll history.
	Delete(ctx context.Context, ref string) error

	// Close closes the store.
	Close() error
}
