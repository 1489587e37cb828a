package history

import (
	"context"
	"time"
)

// NullStore is a no-op store that never keeps anything.
// Used when history is disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Name returns "none".
func (s *NullStore) Name() string { return "none" }

// Get always returns a miss.
func (s *NullStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	return nil, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
