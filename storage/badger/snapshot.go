package badger

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) *SnapshotRepository {
	return &SnapshotRepository{
		backend: backend,
	}
}

// Close releases resources. SnapshotRepository has no resources to release.
func (r *SnapshotRepository) Close() error {
	return nil
}

// SaveSnapshot stores every concept under meta.Fingerprint.
// Concepts are written first and the metadata last, so a snapshot
// interrupted mid-write is never reported as present.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, meta *core.SnapshotMeta, concepts []*core.Concept) error {
	if meta == nil || meta.Fingerprint == "" {
		return fmt.Errorf("%w: snapshot fingerprint is required", storage.ErrInvalidQuery)
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	// Remove leftovers of an earlier snapshot under the same fingerprint
	if err := r.deleteKeys(ctx, meta.Fingerprint); err != nil {
		return err
	}

	err := r.backend.WithWriteBatch(func(wb *badger.WriteBatch) error {
		for _, concept := range concepts {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := makeSnapshotConceptKey(meta.Fingerprint, concept.URI)
			if err := wb.Set(key, storage.MarshalConcept(concept)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	meta.Concepts = len(concepts)
	meta.CreatedAt = time.Now().UTC()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotMetaKey(meta.Fingerprint), storage.MarshalSnapshotMeta(meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the concepts stored under a fingerprint.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, fingerprint string) (*core.SnapshotMeta, []*core.Concept, error) {
	if r.backend.IsClosed() {
		return nil, nil, storage.ErrStorageClosed
	}

	var meta *core.SnapshotMeta
	var concepts []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readSnapshotMeta(tx, makeSnapshotMetaKey(fingerprint))
		if err != nil {
			return err
		}
		if meta == nil {
			return storage.ErrNotFound
		}

		concepts = make([]*core.Concept, 0, meta.Concepts)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialSnapshotConceptKey(fingerprint)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var concept *core.Concept
			err := iter.Item().Value(func(val []byte) error {
				var err error
				concept, err = storage.UnmarshalConcept(val)
				return err
			})
			if err != nil {
				return err
			}
			concepts = append(concepts, concept)
		}

		if len(concepts) != meta.Concepts {
			return fmt.Errorf("%w: snapshot %s holds %d of %d concepts",
				storage.ErrTruncatedData, fingerprint, len(concepts), meta.Concepts)
		}
		return nil
	}, false)
	if err != nil {
		return nil, nil, err
	}
	return meta, concepts, nil
}

// DeleteSnapshot removes a snapshot and all of its concepts.
func (r *SnapshotRepository) DeleteSnapshot(ctx context.Context, fingerprint string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	// Drop the metadata first so a partially deleted snapshot is not loadable
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSnapshotMetaKey(fingerprint)
		meta, err := readSnapshotMeta(tx, key)
		if err != nil {
			return err
		}
		if meta == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	return r.deleteKeys(ctx, fingerprint)
}

// ListSnapshots returns metadata for every stored snapshot, newest first.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context) ([]*core.SnapshotMeta, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var results []*core.SnapshotMeta
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotMetaPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var meta *core.SnapshotMeta
			err := iter.Item().Value(func(val []byte) error {
				var err error
				meta, err = storage.UnmarshalSnapshotMeta(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, meta)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SnapshotMeta) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return results, nil
}

// Helper methods

// deleteKeys removes every concept key stored under a fingerprint.
func (r *SnapshotRepository) deleteKeys(ctx context.Context, fingerprint string) error {
	prefix := makePartialSnapshotConceptKey(fingerprint)
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			keys = append(keys, key)
		}
		return nil
	}, false)
	if err != nil || len(keys) == 0 {
		return err
	}

	return r.backend.WithWriteBatch(func(wb *badger.WriteBatch) error {
		for _, key := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// readSnapshotMeta reads snapshot metadata from the transaction.
// Returns nil, nil when the key does not exist.
func readSnapshotMeta(tx *badger.Txn, key []byte) (*core.SnapshotMeta, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var meta *core.SnapshotMeta
	err = item.Value(func(val []byte) error {
		var err error
		meta, err = storage.UnmarshalSnapshotMeta(val)
		return err
	})
	return meta, err
}
