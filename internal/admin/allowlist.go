// Package admin holds the administrator allow-list: the set of emails whose
// principals may arbitrate disputes. The set is loaded from configuration at
// startup and reloadable at runtime through an admin endpoint, so it is a
// guarded shared structure rather than a module-level mutable slice.
package admin

import (
	"strings"
	"sync"
)

// Source supplies the current allow-list entries, typically by re-reading
// the configuration backing store.
type Source func() []string

// Allowlist is a concurrency-safe set of admin emails.
type Allowlist struct {
	mu     sync.RWMutex
	emails map[string]struct{}
	source Source
}

// NewAllowlist builds an allow-list populated from source. source may be nil
// when reloading is not needed (tests).
func NewAllowlist(source Source) *Allowlist {
	a := &Allowlist{source: source}
	if source != nil {
		a.Replace(source())
	} else {
		a.Replace(nil)
	}
	return a
}

// Contains reports whether email is on the allow-list. Matching is
// case-insensitive.
func (a *Allowlist) Contains(email string) bool {
	email = canonical(email)
	if email == "" {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.emails[email]
	return ok
}

// Replace swaps in a new set of entries atomically.
func (a *Allowlist) Replace(emails []string) {
	next := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = canonical(e); e != "" {
			next[e] = struct{}{}
		}
	}
	a.mu.Lock()
	a.emails = next
	a.mu.Unlock()
}

// Reload re-reads the configured source and replaces the set. It is a no-op
// when no source was provided. Returns the resulting size.
func (a *Allowlist) Reload() int {
	if a.source != nil {
		a.Replace(a.source())
	}
	return a.Len()
}

// Len returns the number of entries.
func (a *Allowlist) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.emails)
}

func canonical(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
