// Package timeparsing provides time parsing for the sync tool.
//
// It covers two unrelated formats: the remote tracker's fixed timestamp
// encoding (ParseRemoteTimestamp), and the layered relative-time
// expressions accepted by CLI flags such as --since:
//  1. Compact duration (+6h, -1d, +2w)
//  2. Absolute date-only and RFC3339 timestamps
//  3. Natural language (tomorrow, next monday, 3 days ago)
package timeparsing

import (
	"fmt"
	"regexp"
	"time"
)

// remoteTimestampRe matches the remote service's timestamp encoding:
// YYYY/MM/DDTHH:MM:SSZ, always UTC.
var remoteTimestampRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}T\d{2}:\d{2}:\d{2}Z$`)

const remoteTimestampLayout = "2006/01/02T15:04:05Z"

// ParseRemoteTimestamp parses the remote tracker's fixed-format UTC
// timestamp. Anything that does not match the pattern exactly yields
// nil, never an error: issue records tolerate absent timestamps.
func ParseRemoteTimestamp(s string) *time.Time {
	if !remoteTimestampRe.MatchString(s) {
		return nil
	}
	t, err := time.ParseInLocation(remoteTimestampLayout, s, time.UTC)
	if err != nil {
		// Pattern matched but the fields are out of range (month 13 etc.).
		return nil
	}
	t = t.UTC()
	return &t
}

// ParseRelativeTime parses a relative or absolute time expression,
// trying each layer in order: compact duration, date-only, RFC3339,
// then natural language.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	if IsCompactDuration(s) {
		return ParseCompactDuration(s, now)
	}

	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := ParseNaturalLanguage(s, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized time expression: %q", s)
}
