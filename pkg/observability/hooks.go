// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about exploration sessions, expansions and
// the HTTP API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The [Prometheus] type implements every hook interface and exposes the
// events as Prometheus metrics.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewPrometheus("lexgraph")
//	    observability.SetExploreHooks(m)
//	    observability.SetServerHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Explore().OnExpand(ctx, node, newNodes, newEdges, skipped, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Explore Hooks
// =============================================================================

// ExploreHooks receives events from the expansion engine.
type ExploreHooks interface {
	// OnSessionStart records the creation of an explorer for a seed sense.
	// err is non-nil when the seed could not be found.
	OnSessionStart(ctx context.Context, seed string, err error)

	// OnExpand records one expansion of a node. alreadyExpanded calls are not
	// reported.
	OnExpand(ctx context.Context, node string, newNodes, newEdges, skipped int, duration time.Duration, err error)

	// OnSkippedPointer records a relation pointer that could not be resolved.
	OnSkippedPointer(ctx context.Context, relation string, err error)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest records a served HTTP request. route is the route pattern,
	// not the raw path.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)

	// OnStreamOpen records a websocket subscriber joining a session.
	OnStreamOpen(ctx context.Context)

	// OnStreamClose records a websocket subscriber leaving.
	OnStreamClose(ctx context.Context)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExploreHooks is a no-op implementation of ExploreHooks.
type NoopExploreHooks struct{}

func (NoopExploreHooks) OnSessionStart(context.Context, string, error) {}
func (NoopExploreHooks) OnExpand(context.Context, string, int, int, int, time.Duration, error) {
}
func (NoopExploreHooks) OnSkippedPointer(context.Context, string, error) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnStreamOpen(context.Context)                                  {}
func (NoopServerHooks) OnStreamClose(context.Context)                                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exploreHooks ExploreHooks = NoopExploreHooks{}
	serverHooks  ServerHooks  = NoopServerHooks{}
	hooksMu      sync.RWMutex
)

// SetExploreHooks registers custom explore hooks.
// This should be called once at application startup before any session is created.
func SetExploreHooks(h ExploreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exploreHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup before the server starts.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Explore returns the registered explore hooks.
func Explore() ExploreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exploreHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exploreHooks = NoopExploreHooks{}
	serverHooks = NoopServerHooks{}
}
