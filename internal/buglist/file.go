// Package buglist reads and writes the local YAML representation of a
// project's bug list. The file is the host-side half of synchronization:
// pull writes it from a remote fetch, the user edits it, and push turns
// it back into a change batch.
package buglist

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bugsynclabs/bugsync/internal/tracker"
)

// DefaultFilename is the buglist file written when no output path is
// given.
const DefaultFilename = "bugs.yaml"

// Entry is one bug in the local file: the canonical record plus the
// user-set delete marker.
type Entry struct {
	tracker.Bug `yaml:",inline"`

	// Delete marks the entry for removal on the next push.
	Delete bool `yaml:"delete,omitempty"`
}

// File is the on-disk buglist document.
type File struct {
	Title string  `yaml:"title"`
	URL   string  `yaml:"url"`
	Bugs  []Entry `yaml:"bugs"`
}

// FromBuglist converts a fetched buglist into a file document.
func FromBuglist(l *tracker.Buglist) *File {
	f := &File{
		Title: l.Title,
		URL:   l.URL,
		Bugs:  make([]Entry, 0, len(l.Bugs)),
	}
	for _, b := range l.Bugs {
		f.Bugs = append(f.Bugs, Entry{Bug: b})
	}
	return f
}

// Load reads and parses a buglist file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read buglist file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse buglist file %s: %w", path, err)
	}
	if f.URL == "" {
		return nil, fmt.Errorf("buglist file %s has no project url", path)
	}
	return &f, nil
}

// Save writes the document to path, creating parent directories as
// needed.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal buglist: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write buglist file: %w", err)
	}
	return nil
}

// Changes turns the file's entries into a reconciliation batch in file
// order. An entry marked for deletion that was never created remotely
// (no id) has nothing to reconcile and is dropped.
func (f *File) Changes() []tracker.Change {
	changes := make([]tracker.Change, 0, len(f.Bugs))
	for _, e := range f.Bugs {
		if e.Delete && !e.Bug.Exists() {
			continue
		}
		changes = append(changes, tracker.Change{Bug: e.Bug, Delete: e.Delete})
	}
	return changes
}

// ApplyResult replaces the file's entries with the authoritative records
// returned by a reconciliation call. Deleted bugs are gone from the
// result and therefore from the file.
func (f *File) ApplyResult(res *tracker.SendResult) {
	entries := make([]Entry, 0, len(res.Bugs))
	for _, b := range res.Bugs {
		entries = append(entries, Entry{Bug: b})
	}
	f.Bugs = entries
}
