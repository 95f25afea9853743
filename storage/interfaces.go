package storage

import (
	"context"

	"github.com/poiesic/skosexpand/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// SnapshotRepository persists parsed thesauri so identical sources can be
// reloaded without parsing. Snapshots are keyed by the source fingerprint.
type SnapshotRepository interface {
	Repository

	// SaveSnapshot stores every concept under meta.Fingerprint, replacing any
	// snapshot previously stored under the same fingerprint.
	// Sets meta.CreatedAt and meta.Concepts.
	SaveSnapshot(ctx context.Context, meta *core.SnapshotMeta, concepts []*core.Concept) error

	// LoadSnapshot retrieves the concepts stored under a fingerprint.
	// Returns ErrNotFound if no complete snapshot exists.
	LoadSnapshot(ctx context.Context, fingerprint string) (*core.SnapshotMeta, []*core.Concept, error)

	// DeleteSnapshot removes a snapshot and all of its concepts.
	// Returns ErrNotFound if the snapshot doesn't exist.
	DeleteSnapshot(ctx context.Context, fingerprint string) error

	// ListSnapshots returns metadata for every stored snapshot, newest first.
	ListSnapshots(ctx context.Context) ([]*core.SnapshotMeta, error)
}
