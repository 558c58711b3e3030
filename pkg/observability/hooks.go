// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of hoisting runs without
// adding hard dependencies on specific observability backends. Consumers can
// register hooks at startup to receive events about collection, conflict
// resolution, and manifest writes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps pkg/hoist free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHoistHooks(&myHoistHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Hoist().OnCollectStart(ctx, root, len(members))
//	// ... collect ...
//	observability.Hoist().OnCollectComplete(ctx, root, occurrences, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hoist Hooks
// =============================================================================

// HoistHooks receives events from a hoisting run.
type HoistHooks interface {
	// Collection events
	OnCollectStart(ctx context.Context, root string, members int)
	OnCollectComplete(ctx context.Context, root string, occurrences int, duration time.Duration, err error)

	// OnConflict records a dependency declared with more than one source and
	// the option that was chosen (0 means skipped).
	OnConflict(ctx context.Context, name string, options, choice int)

	// OnWrite records a manifest written back to disk.
	OnWrite(ctx context.Context, path string, size int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHoistHooks is a no-op implementation of HoistHooks.
type NoopHoistHooks struct{}

func (NoopHoistHooks) OnCollectStart(context.Context, string, int)                          {}
func (NoopHoistHooks) OnCollectComplete(context.Context, string, int, time.Duration, error) {}
func (NoopHoistHooks) OnConflict(context.Context, string, int, int)                         {}
func (NoopHoistHooks) OnWrite(context.Context, string, int, error)                          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hoistHooks HoistHooks = NoopHoistHooks{}
	hooksMu    sync.RWMutex
)

// SetHoistHooks registers custom hoist hooks.
// This should be called once at application startup before any run.
func SetHoistHooks(h HoistHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hoistHooks = h
	}
}

// Hoist returns the registered hoist hooks.
func Hoist() HoistHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hoistHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hoistHooks = NoopHoistHooks{}
}
