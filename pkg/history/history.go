// Package history stores project snapshots for one-step undo across CLI runs.
//
// Inside a single run the scene graph's undo scope makes a flatten revertible.
// Once the CLI has written the rewritten project and exited, that scope is
// gone; this package keeps a copy of the document as it was before the
// flatten so that `unprecompose undo` can restore it.
//
// # Backends
//
//   - [FileStore]: one JSON file per snapshot under a cache directory (default)
//   - [RedisStore]: snapshots as Redis string values with native expiry
//   - [NullStore]: stores nothing; used for --no-history
//
// # Keys
//
// Snapshots are keyed by the absolute project path, see [Key]. Saving a new
// snapshot for the same project replaces the previous one, so undo is one
// step deep.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/observability"
)

// DefaultTTL is how long snapshots are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Snapshot is the content a project path held before a flatten wrote it.
// Absent marks a path that did not exist yet; restoring it removes the file.
type Snapshot struct {
	Label     string    `json:"label"`
	Project   []byte    `json:"project,omitempty"`
	Format    string    `json:"format"`
	Absent    bool      `json:"absent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Name identifies the backend in logs and hooks.
	Name() string

	// Get retrieves a snapshot. Returns nil, nil if none exists or it expired.
	Get(ctx context.Context, key string) (*Snapshot, error)

	// Set stores a snapshot, replacing any previous one under key.
	// A zero ttl keeps the snapshot until it is deleted.
	Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error

	// Delete removes a snapshot. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key derives the snapshot key of a project path.
// The format is: undo:sha256(absolute path)
func Key(projectPath string) (string, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", projectPath)
	}
	return "undo:" + Hash([]byte(abs)), nil
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// History saves and restores undo snapshots of project files.
type History struct {
	store  Store
	ttl    time.Duration
	logger *log.Logger
}

// Options configures a History.
type Options struct {
	TTL    time.Duration // Snapshot lifetime (default DefaultTTL)
	Logger *log.Logger   // Optional, defaults to discard
}

// New creates a History backed by store.
func New(store Store, opts Options) *History {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &History{store: store, ttl: opts.TTL, logger: opts.Logger}
}

// Backend returns the name of the underlying store.
func (h *History) Backend() string { return h.store.Name() }

// Save records the pre-flatten state of the project at path.
func (h *History) Save(ctx context.Context, path string, snap *Snapshot) error {
	key, err := Key(path)
	if err != nil {
		return err
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	if err := h.store.Set(ctx, key, snap, h.ttl); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save snapshot (%s)", h.store.Name())
	}
	observability.History().OnSnapshotSaved(ctx, h.store.Name(), len(snap.Project))
	h.logger.Debug("snapshot saved", "backend", h.store.Name(), "bytes", len(snap.Project), "label", snap.Label)
	return nil
}

// Restore returns and removes the snapshot of the project at path.
// It fails with SNAPSHOT_NOT_FOUND when nothing can be undone.
func (h *History) Restore(ctx context.Context, path string) (*Snapshot, error) {
	key, err := Key(path)
	if err != nil {
		return nil, err
	}
	snap, err := h.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read snapshot (%s)", h.store.Name())
	}
	if snap == nil {
		observability.History().OnSnapshotMiss(ctx, h.store.Name())
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "nothing to undo for %s", path)
	}
	if err := h.store.Delete(ctx, key); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "delete snapshot (%s)", h.store.Name())
	}
	observability.History().OnSnapshotRestored(ctx, h.store.Name())
	h.logger.Debug("snapshot restored", "backend", h.store.Name(), "label", snap.Label, "created", snap.CreatedAt)
	return snap, nil
}

// Close closes the underlying store.
func (h *History) Close() error { return h.store.Close() }
