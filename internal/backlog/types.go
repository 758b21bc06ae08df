// Package backlog provides the client and data types for a Backlog-style
// project-tracking REST API.
//
// This package is the single point of contact with the remote service.
// It handles fetching the full issue list, creating, updating, and
// deleting issues, and the bidirectional mapping between the service's
// issue JSON and the canonical tracker.Bug record.
package backlog

import (
	"net/http"
	"time"
)

// API configuration constants.
const (
	// APIPathPrefix is the REST API root under the service host.
	APIPathPrefix = "/api/v2"

	// AuthQueryParam is the query parameter carrying the static API token.
	// The service authenticates every request through it; there is no
	// header-based scheme.
	AuthQueryParam = "apiKey"

	// DefaultTimeout is the default HTTP request timeout. The adapter
	// itself defines no deadline; this bounds a request that would
	// otherwise block reconciliation forever.
	DefaultTimeout = 30 * time.Second
)

// Client performs HTTP exchanges with the service. It is the only
// component that touches the network. It never retries and never
// interprets status codes; callers decide what a non-2xx code means for
// their operation.
type Client struct {
	Token      string       // static API token, appended as a query parameter when set
	HTTPClient *http.Client // optional custom HTTP client

	projectIDs projectCache
}

// Issue represents one issue object as returned by the service.
//
// Nested objects are pointers because list responses may omit them;
// field translation treats every field as optional.
type Issue struct {
	IssueKey    string       `json:"issueKey"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	Status      *IssueStatus `json:"status,omitempty"`
	Priority    *Priority    `json:"priority,omitempty"`
	CreatedUser *User        `json:"createdUser,omitempty"`
	Created     string       `json:"created"` // YYYY/MM/DDTHH:MM:SSZ
	Updated     string       `json:"updated"` // YYYY/MM/DDTHH:MM:SSZ
}

// IssueStatus is the nested status object on an issue.
type IssueStatus struct {
	Name string `json:"name"`
}

// Priority is the nested priority object on an issue.
type Priority struct {
	Name string `json:"name"`
}

// User represents a service user.
type User struct {
	Name string `json:"name"`
}

// Project represents the project object from the service root lookup.
type Project struct {
	ID         int64  `json:"id"`
	ProjectKey string `json:"projectKey,omitempty"`
	Name       string `json:"name,omitempty"`
}

// projectResponse is the envelope of GET <base>.json.
type projectResponse struct {
	Project Project `json:"project"`
}

// issueResponse is the envelope wrapping a single issue in create,
// update, and single-issue fetch responses.
type issueResponse struct {
	Issue Issue `json:"issue"`
}

// IssuePayload is the minimal request body for create and update calls.
// Only subject and description are ever sent: the service leaves unsent
// fields unchanged on update and ignores them on create.
type IssuePayload struct {
	Issue IssueFields `json:"issue"`
}

// IssueFields holds the two writable issue fields.
type IssueFields struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}
