package backlog

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/bugsynclabs/bugsync/internal/timeparsing"
	"github.com/bugsynclabs/bugsync/internal/tracker"
)

// MappingConfig configures how service fields map to canonical fields.
type MappingConfig struct {
	// ClosedStatusNames is the exact-match table of status display
	// labels that mean "closed". The labels are whatever the service
	// instance is configured to display, so matching is locale-dependent
	// configuration, not pattern inference. Every other label maps to
	// open.
	ClosedStatusNames map[string]bool
}

// DefaultMappingConfig returns the mapping for a service displaying
// statuses in Japanese, the service's stock configuration.
func DefaultMappingConfig() *MappingConfig {
	return &MappingConfig{
		ClosedStatusNames: map[string]bool{
			"完了": true, // "completed"
		},
	}
}

// StatusFromName maps a status display label to the canonical status.
func (m *MappingConfig) StatusFromName(name string) tracker.Status {
	if m.ClosedStatusNames[name] {
		return tracker.StatusClosed
	}
	return tracker.StatusOpen
}

// IssueToBug converts a service issue into a fresh canonical bug record.
// Missing nested objects and unparseable timestamps leave the
// corresponding record fields empty; translation never fails.
func IssueToBug(is *Issue, config *MappingConfig) tracker.Bug {
	bug := tracker.Bug{
		ID:          is.IssueKey,
		Title:       is.Summary,
		Description: is.Description,
		Status:      tracker.StatusOpen,
		CreatedAt:   timeparsing.ParseRemoteTimestamp(is.Created),
		UpdatedAt:   timeparsing.ParseRemoteTimestamp(is.Updated),
	}

	if is.Status != nil {
		bug.Status = config.StatusFromName(is.Status.Name)
	}
	if is.Priority != nil {
		bug.Priority = is.Priority.Name
	}
	if is.CreatedUser != nil {
		bug.Author = is.CreatedUser.Name
	}

	return bug
}

// PayloadFromBug builds the minimal create/update request body from a
// canonical record: subject and description, nothing else.
func PayloadFromBug(b *tracker.Bug) IssuePayload {
	return IssuePayload{
		Issue: IssueFields{
			Subject:     b.Title,
			Description: b.Description,
		},
	}
}

// NormalizeBaseURL turns a user-supplied project URL into the canonical
// API base URL: scheme defaults to https, and the path is rewritten to
// the <root>/api/v2/projects/<name> form when the API prefix is missing.
func NormalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty project URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid project URL %q: %w", raw, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	if !strings.HasPrefix(u.Path, APIPathPrefix+"/") {
		idx := strings.Index(u.Path, "/projects/")
		if idx < 0 {
			return "", fmt.Errorf("URL %q does not name a project (expected .../projects/<name>)", raw)
		}
		u.Path = APIPathPrefix + u.Path[idx:]
	}

	return u.String(), nil
}

// ProjectRoot strips the trailing /projects/... segment from a base URL,
// yielding the service root used for item-level endpoints.
func ProjectRoot(baseURL string) string {
	if idx := strings.LastIndex(baseURL, "/projects/"); idx >= 0 {
		return baseURL[:idx]
	}
	return baseURL
}

// ProjectName returns the last path segment of the project base URL.
func ProjectName(baseURL string) string {
	return path.Base(strings.TrimSuffix(baseURL, "/"))
}
