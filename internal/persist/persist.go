// Package persist stores the workspace document as a single versioned JSON
// blob in a local durable store. Adapters are interchangeable; the store
// treats every write as best-effort.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskhub/taskhub/internal/model"
)

// EntryName is the fixed key the document blob is stored under.
const EntryName = "taskhub-storage"

// Version is the current schema version. Snapshots carrying a different
// version are discarded on load and the document is reseeded.
const Version = 1

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("persist: no snapshot")

// ErrVersionMismatch is returned by Decode when the snapshot's schema
// version differs from Version.
var ErrVersionMismatch = errors.New("persist: schema version mismatch")

// Snapshot is the persisted layout: the document plus its schema version.
type Snapshot struct {
	State   model.Document `json:"state"`
	Version int            `json:"version"`
}

// Adapter is a named durable slot for the serialized snapshot.
type Adapter interface {
	// Load returns the stored blob, or ErrNotFound.
	Load() ([]byte, error)
	// Save replaces the stored blob.
	Save(data []byte) error
	// Delete removes the stored blob. Deleting a missing blob is not an error.
	Delete() error
	// Close releases the underlying store.
	Close() error
}

// Encode serializes a document into the snapshot blob.
func Encode(doc model.Document) ([]byte, error) {
	data, err := json.Marshal(Snapshot{State: doc, Version: Version})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot blob and returns its document. A snapshot with an
// unknown schema version yields ErrVersionMismatch.
func Decode(data []byte) (model.Document, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != Version {
		return model.Document{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, snap.Version, Version)
	}
	return snap.State, nil
}
