// Package bugsync provides a minimal public API for embedding the
// synchronization engine in other Go programs.
//
// It exports only the canonical data types and the backend lookup
// needed to fetch a remote buglist and replay local changes
// programmatically. The bugsync CLI is a thin wrapper over the same
// surface.
package bugsync

import (
	_ "github.com/bugsynclabs/bugsync/internal/backlog"
	"github.com/bugsynclabs/bugsync/internal/tracker"
)

// Core types for working with bug records
type (
	Bug        = tracker.Bug
	Buglist    = tracker.Buglist
	Change     = tracker.Change
	SendResult = tracker.SendResult
	Status     = tracker.Status
	BugTracker = tracker.BugTracker
)

// Status constants
const (
	StatusOpen   = tracker.StatusOpen
	StatusClosed = tracker.StatusClosed
)

// NewTracker creates a backend by name ("backlog" is built in).
// Call Init with a settings map carrying at least the API token, then
// Validate, before using it.
func NewTracker(name string) (BugTracker, error) {
	return tracker.New(name)
}

// Trackers returns the names of all registered backends.
func Trackers() []string {
	return tracker.List()
}
