// Package observability lets applications observe group computations
// without the computing packages depending on a metrics backend.
//
// Hook interfaces cover three event families: enumerations (coset tables,
// subgroup searches, stabilizers), cache lookups, and HTTP requests served
// by the API. Each has a no-op default. The binary registers real
// implementations once at startup:
//
//	func main() {
//	    observability.SetEnumerationHooks(metrics.Enumeration())
//	    observability.SetCacheHooks(metrics.Cache())
//	    // ...
//	}
//
// Libraries fetch the current hooks when they emit:
//
//	observability.Enumeration().OnEnumerationStart(ctx, "cosets")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Enumeration Hooks
// =============================================================================

// EnumerationHooks receives events from analysis runs.
type EnumerationHooks interface {
	// OnEnumerationStart records the start of an analysis of the given kind.
	OnEnumerationStart(ctx context.Context, kind string)

	// OnEnumerationComplete records a finished analysis. Size is the number
	// of cosets, actions or generators produced, depending on the kind.
	OnEnumerationComplete(ctx context.Context, kind string, size int, duration time.Duration, err error)

	// OnActionFound records one transitive action found by a subgroup search.
	OnActionFound(ctx context.Context, size int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request. Route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type NoopEnumerationHooks struct{}

func (NoopEnumerationHooks) OnEnumerationStart(context.Context, string) {}
func (NoopEnumerationHooks) OnEnumerationComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopEnumerationHooks) OnActionFound(context.Context, int) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	enumerationHooks EnumerationHooks = NoopEnumerationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetEnumerationHooks registers enumeration hooks. Nil is ignored.
func SetEnumerationHooks(h EnumerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		enumerationHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Enumeration returns the registered enumeration hooks.
func Enumeration() EnumerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return enumerationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Tests use it to isolate themselves.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	enumerationHooks = NoopEnumerationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
