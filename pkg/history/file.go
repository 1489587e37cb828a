package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps snapshots as files in a directory, with expiration
// metadata stored alongside each snapshot.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// fileEntry wraps a snapshot with its expiration time.
type fileEntry struct {
	Snapshot  *Snapshot `json:"snapshot"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Name returns "file".
func (s *FileStore) Name() string { return "file" }

// Get retrieves a snapshot from disk.
func (s *FileStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Snapshot == nil {
		// Corrupt entry - treat as miss
		_ = os.Remove(path)
		return nil, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, nil
	}

	return entry.Snapshot, nil
}

// Set writes a snapshot to disk.
func (s *FileStore) Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error {
	entry := fileEntry{Snapshot: snap}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temp file, then rename into place
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete removes a snapshot from disk.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a key to a file path.
// The first two hash characters name a subdirectory to spread files out.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
