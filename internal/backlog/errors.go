package backlog

import "fmt"

// RemoteUnreachableError reports a non-200 response from the service on
// a lookup the adapter cannot proceed without (project metadata or the
// issue list).
type RemoteUnreachableError struct {
	URL    string
	Status int
}

func (e *RemoteUnreachableError) Error() string {
	return fmt.Sprintf("remote unreachable: GET %s returned status %d", e.URL, e.Status)
}

// CreateError reports a failed issue creation. It carries the title of
// the local record since the record has no remote id yet.
type CreateError struct {
	Title  string
	Status int
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create failed for %q (status %d)", e.Title, e.Status)
}

// UpdateError reports a failed issue update, including a failed re-fetch
// of the updated issue.
type UpdateError struct {
	ID     string
	Status int
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update failed for issue %s (status %d)", e.ID, e.Status)
}

// DeleteError reports a failed issue deletion. An already-deleted issue
// (404) is not an error.
type DeleteError struct {
	ID     string
	Status int
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete failed for issue %s (status %d)", e.ID, e.Status)
}

// MalformedResponseError reports a response body that could not be
// decoded as JSON where the caller required a parseable payload.
type MalformedResponseError struct {
	URL string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: body is not valid JSON", e.URL)
}
