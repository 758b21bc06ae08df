// Package tracker defines the contract between the synchronization host
// and interchangeable remote-tracker backends.
//
// A backend (Backlog, or any future service) translates between the
// remote service's issue representation and the canonical Bug record,
// and replays batches of pending local changes against the remote API.
// The host owns everything else: the local text representation, diffing,
// merging, and the user interface.
package tracker

import "time"

// Status is the two-valued canonical bug state.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Bug is the canonical record for one remote issue.
//
// ID is the remote issue key and is present if and only if the bug
// already exists on the remote service. Records are constructed fresh by
// a backend on every fetch or reconciliation response and are not
// mutated afterwards; the host overlays pending-operation markers via
// Change before submitting a batch.
type Bug struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Priority    string     `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status      Status     `json:"status,omitempty" yaml:"status,omitempty"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"desc,omitempty"`
	Author      string     `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created-at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"modified-at,omitempty"`
}

// Exists reports whether the bug is already known to the remote service.
func (b *Bug) Exists() bool { return b.ID != "" }

// Buglist is a titled, ordered collection of canonical bug records plus
// the project URL it was fetched from. Produced once per fetch; not
// mutated after construction.
type Buglist struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Bugs  []Bug  `json:"bugs" yaml:"bugs"`
}

// Op identifies the pending operation a Change carries.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is one entry of a reconciliation batch: a canonical record plus
// the host-owned delete marker. The operation is implicit: a record with
// no ID is a create, a record with an ID and the delete marker is a
// delete, and anything else is an update.
type Change struct {
	Bug    Bug
	Delete bool
}

// Op returns the operation this change represents.
func (c Change) Op() Op {
	switch {
	case !c.Bug.Exists():
		return OpCreate
	case c.Delete:
		return OpDelete
	default:
		return OpUpdate
	}
}

// SendResult holds the authoritative post-operation records returned by
// a reconciliation call. Deleted bugs do not appear. Callers must not
// depend on result order matching batch order.
type SendResult struct {
	Bugs []Bug `json:"bugs"`
}
