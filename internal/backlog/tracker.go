package backlog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bugsynclabs/bugsync/internal/tracker"
)

func init() {
	tracker.Register("backlog", func() tracker.BugTracker {
		return &Tracker{}
	})
}

// Tracker implements tracker.BugTracker for a Backlog-style service.
type Tracker struct {
	client  *Client
	mapping *MappingConfig
}

// New creates a ready-to-use tracker with the given API token, for
// library consumers that bypass Init.
func New(token string) *Tracker {
	return &Tracker{
		client:  NewClient(token),
		mapping: DefaultMappingConfig(),
	}
}

func (t *Tracker) Name() string        { return "backlog" }
func (t *Tracker) DisplayName() string { return "Backlog" }

// Init configures the tracker. Recognized settings:
//
//	token          API token (falls back to BACKLOG_API_KEY)
//	closed_status  extra status label treated as closed
func (t *Tracker) Init(settings map[string]string) error {
	token := settings["token"]
	if token == "" {
		token = os.Getenv("BACKLOG_API_KEY")
	}

	t.client = NewClient(token)
	t.mapping = DefaultMappingConfig()
	if label := settings["closed_status"]; label != "" {
		t.mapping.ClosedStatusNames[label] = true
	}
	return nil
}

func (t *Tracker) Validate() error {
	if t.client == nil {
		return fmt.Errorf("backlog tracker not initialized")
	}
	return nil
}

// Client returns the underlying HTTP client, for tests and advanced
// callers that need to swap the transport.
func (t *Tracker) Client() *Client { return t.client }

// NormalizeURL rewrites a user-supplied project URL to the API base form.
func (t *Tracker) NormalizeURL(raw string) (string, error) {
	return NormalizeBaseURL(raw)
}

// FetchBuglist retrieves the full issue list for the project at baseURL
// and returns it as a titled collection of canonical records in source
// order. The since hint is ignored: the service design fetches the full
// issue set each time.
//
// An unreachable or non-200 service fails loudly with
// RemoteUnreachableError rather than silently yielding an empty list.
func (t *Tracker) FetchBuglist(ctx context.Context, baseURL string, since *time.Time) (*tracker.Buglist, error) {
	_ = since // full fetch always

	listURL := baseURL + "/issues"
	status, payload, err := t.client.Do(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching issues: %w", err)
	}
	if status != http.StatusOK {
		return nil, &RemoteUnreachableError{URL: listURL, Status: status}
	}
	if payload == nil {
		return nil, &MalformedResponseError{URL: listURL}
	}

	var issues []Issue
	if err := json.Unmarshal(payload, &issues); err != nil {
		return nil, &MalformedResponseError{URL: listURL}
	}

	bugs := make([]tracker.Bug, 0, len(issues))
	for i := range issues {
		bugs = append(bugs, IssueToBug(&issues[i], t.mapping))
	}

	return &tracker.Buglist{
		Title: "Issues of " + ProjectName(baseURL),
		URL:   baseURL,
		Bugs:  bugs,
	}, nil
}

// SendBuglist replays the batch of pending changes against the service
// in batch order and returns the authoritative post-operation records.
//
// The project id is resolved once per call before any change is
// replayed. The first failing change aborts the whole call: changes
// already replayed keep their remote effect and are not rolled back or
// reported separately.
func (t *Tracker) SendBuglist(ctx context.Context, baseURL string, changes []tracker.Change) (*tracker.SendResult, error) {
	// Some deployments route item endpoints by numeric project id, so
	// resolution has to succeed before any mutation is attempted.
	if _, err := t.client.ResolveProjectID(ctx, baseURL); err != nil {
		return nil, err
	}

	rootURL := ProjectRoot(baseURL)
	var bugs []tracker.Bug

	for _, ch := range changes {
		switch ch.Op() {
		case tracker.OpCreate:
			created, err := t.createIssue(ctx, baseURL, &ch.Bug)
			if err != nil {
				return nil, err
			}
			bugs = append(bugs, *created)

		case tracker.OpDelete:
			if err := t.deleteIssue(ctx, rootURL, ch.Bug.ID); err != nil {
				return nil, err
			}
			// Deleted bugs produce no result record.

		case tracker.OpUpdate:
			updated, err := t.updateIssue(ctx, rootURL, &ch.Bug)
			if err != nil {
				return nil, err
			}
			bugs = append(bugs, *updated)
		}
	}

	return &tracker.SendResult{Bugs: bugs}, nil
}

// createIssue posts a new issue. Success is exactly 201.
func (t *Tracker) createIssue(ctx context.Context, baseURL string, bug *tracker.Bug) (*tracker.Bug, error) {
	createURL := baseURL + "/issues.json"
	status, payload, err := t.client.Do(ctx, http.MethodPost, createURL, PayloadFromBug(bug))
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", bug.Title, err)
	}
	if status != http.StatusCreated {
		return nil, &CreateError{Title: bug.Title, Status: status}
	}
	if payload == nil {
		return nil, &MalformedResponseError{URL: createURL}
	}

	var ir issueResponse
	if err := json.Unmarshal(payload, &ir); err != nil {
		return nil, &MalformedResponseError{URL: createURL}
	}

	created := IssueToBug(&ir.Issue, t.mapping)
	return &created, nil
}

// deleteIssue removes an issue. 204 and 404 both count as success:
// deleting an already-gone issue is idempotent.
func (t *Tracker) deleteIssue(ctx context.Context, rootURL, id string) error {
	deleteURL := fmt.Sprintf("%s/issues/%s.json", rootURL, id)
	status, _, err := t.client.Do(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("deleting issue %s: %w", id, err)
	}
	if status != http.StatusNoContent && status != http.StatusNotFound {
		return &DeleteError{ID: id, Status: status}
	}
	return nil
}

// updateIssue puts the translated payload, then re-fetches the issue:
// the update response may not carry the full updated issue, so the GET
// is the authoritative source. Both calls must return 200.
func (t *Tracker) updateIssue(ctx context.Context, rootURL string, bug *tracker.Bug) (*tracker.Bug, error) {
	itemURL := fmt.Sprintf("%s/issues/%s.json", rootURL, bug.ID)

	status, _, err := t.client.Do(ctx, http.MethodPut, itemURL, PayloadFromBug(bug))
	if err != nil {
		return nil, fmt.Errorf("updating issue %s: %w", bug.ID, err)
	}
	if status != http.StatusOK {
		return nil, &UpdateError{ID: bug.ID, Status: status}
	}

	status, payload, err := t.client.Do(ctx, http.MethodGet, itemURL, nil)
	if err != nil {
		return nil, fmt.Errorf("re-fetching issue %s: %w", bug.ID, err)
	}
	if status != http.StatusOK {
		return nil, &UpdateError{ID: bug.ID, Status: status}
	}
	if payload == nil {
		return nil, &MalformedResponseError{URL: itemURL}
	}

	var ir issueResponse
	if err := json.Unmarshal(payload, &ir); err != nil {
		return nil, &MalformedResponseError{URL: itemURL}
	}

	updated := IssueToBug(&ir.Issue, t.mapping)
	return &updated, nil
}
