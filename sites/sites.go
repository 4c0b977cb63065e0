// Package sites provides a registry mapping domains to site-specific
// content handlers. This allows modular handling of sites that need
// custom fetching without embedding site-specific code in the core
// engine.
package sites

import (
	"context"
	"strings"
	"sync"

	"nectar/page"
)

// Handler defines the interface for site-specific content handlers.
// Implementations are total: they always return a Result and surface
// failures through its Err field.
type Handler interface {
	// Name returns a human-readable name for this handler.
	Name() string

	// Fetch resolves the URL to a rendered page result.
	Fetch(ctx context.Context, url string) *page.Result
}

// Registry maps registered domains to handlers. Handlers are
// registered once, in a fixed order, at startup; lookups afterwards
// are read-only. Each engine owns its own instance, so tests get a
// fresh registry instead of sharing package-level state.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register maps a domain to a handler. Registering the same domain
// twice replaces the prior handler. Domains are stored lower-cased.
func (r *Registry) Register(domain string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.ToLower(domain)] = h
}

// Lookup finds the handler for a domain. It tries an exact match
// first; if none is found and the domain has more than two dot
// separated labels, it strips the leftmost label once and retries, so
// "old.reddit.com" falls through to "reddit.com" without every prefix
// being enumerated. A missing handler is not an error: absence selects
// the generic path.
func (r *Registry) Lookup(domain string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.handlers[domain]; ok {
		return h, true
	}

	// One strip only, never recursive
	labels := strings.Split(domain, ".")
	if len(labels) > 2 {
		if h, ok := r.handlers[strings.Join(labels[1:], ".")]; ok {
			return h, true
		}
	}

	return nil, false
}

// Domains returns the registered domains.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	domains := make([]string, 0, len(r.handlers))
	for d := range r.handlers {
		domains = append(domains, d)
	}
	return domains
}
