package tracker

import (
	"context"
	"time"
)

// BugTracker is the plugin interface every remote-tracker backend
// implements. The host uses it to fetch the authoritative issue list and
// to replay batches of pending local changes.
//
// Backends are fully synchronous: every call blocks until the underlying
// HTTP exchange completes. Callers needing bounded latency impose a
// timeout through the context or the backend's HTTP client. The host
// must not invoke a backend re-entrantly for the same project.
type BugTracker interface {
	// Name returns the lowercase identifier for this backend (e.g. "backlog").
	Name() string

	// DisplayName returns the human-readable name (e.g. "Backlog").
	DisplayName() string

	// Init configures the backend from key/value settings (API token,
	// overrides). Called once before any other operation.
	Init(settings map[string]string) error

	// Validate checks that the backend is properly configured.
	Validate() error

	// NormalizeURL turns a user-supplied project URL into the canonical
	// API base URL for this backend.
	NormalizeURL(raw string) (string, error)

	// FetchBuglist retrieves the full remote issue list for the project
	// at baseURL. The since hint may be used by backends that support
	// incremental fetch; backends that don't simply ignore it.
	FetchBuglist(ctx context.Context, baseURL string, since *time.Time) (*Buglist, error)

	// SendBuglist replays the batch of pending changes against the
	// remote service in batch order and returns the authoritative
	// post-operation records. The first failing change aborts the call;
	// changes replayed before the failure keep their remote effect and
	// are not rolled back.
	SendBuglist(ctx context.Context, baseURL string, changes []Change) (*SendResult, error)
}
