// Package observability exposes instrumentation hooks for flatten runs and
// undo history storage.
//
// Hooks are process-wide and default to no-ops. A host registers its own
// implementations once at startup, before any run:
//
//	observability.SetFlattenHooks(metrics)
//	observability.SetHistoryHooks(metrics)
//
// pkg/flatten and pkg/history then report through [Flatten] and [History].
package observability

import (
	"context"
	"sync"
	"time"
)

// FlattenHooks receives events from the flattening transformer.
type FlattenHooks interface {
	// OnFlattenStart records the start of a run over a selection.
	OnFlattenStart(ctx context.Context, comp string, selected int)

	// OnPrecompFlattened records one precomposition replaced by its layers.
	OnPrecompFlattened(ctx context.Context, precomp string, layers int, duration time.Duration)

	// OnLayerSkipped records a selected layer that was not a precomposition.
	OnLayerSkipped(ctx context.Context, layer string)

	// OnFlattenComplete records the end of a run, successful or not.
	OnFlattenComplete(ctx context.Context, comp string, flattened int, duration time.Duration, err error)
}

// HistoryHooks receives events from undo snapshot storage.
type HistoryHooks interface {
	// OnSnapshotSaved records a snapshot write.
	OnSnapshotSaved(ctx context.Context, backend string, size int)

	// OnSnapshotRestored records a snapshot read used for undo.
	OnSnapshotRestored(ctx context.Context, backend string)

	// OnSnapshotMiss records an undo request with no snapshot available.
	OnSnapshotMiss(ctx context.Context, backend string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFlattenHooks is a no-op implementation of FlattenHooks.
type NoopFlattenHooks struct{}

func (NoopFlattenHooks) OnFlattenStart(context.Context, string, int)                        {}
func (NoopFlattenHooks) OnPrecompFlattened(context.Context, string, int, time.Duration)     {}
func (NoopFlattenHooks) OnLayerSkipped(context.Context, string)                             {}
func (NoopFlattenHooks) OnFlattenComplete(context.Context, string, int, time.Duration, error) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnSnapshotSaved(context.Context, string, int) {}
func (NoopHistoryHooks) OnSnapshotRestored(context.Context, string)   {}
func (NoopHistoryHooks) OnSnapshotMiss(context.Context, string)       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	flattenHooks FlattenHooks = NoopFlattenHooks{}
	historyHooks HistoryHooks = NoopHistoryHooks{}
	hooksMu      sync.RWMutex
)

// SetFlattenHooks registers custom flatten hooks.
// This should be called once at application startup before any flattening.
func SetFlattenHooks(h FlattenHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		flattenHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// Flatten returns the registered flatten hooks.
func Flatten() FlattenHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return flattenHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	flattenHooks = NoopFlattenHooks{}
	historyHooks = NoopHistoryHooks{}
}
