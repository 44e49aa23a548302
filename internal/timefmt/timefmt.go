// Package timefmt formats session timestamps for list rows.
package timefmt

import (
	"fmt"
	"time"
)

// Parse parses an RFC3339 timestamp, returning the zero time on failure.
func Parse(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Short renders t as a compact "Jan20 00:06" stamp.
func Short(t time.Time) string {
	return t.Format("Jan02 15:04")
}

// Age renders the distance between now and t as a compact suffix form:
// "now", "5m", "3h", "2d", "6w", "1y".
func Age(t time.Time, now time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return "now"
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days := hours / 24
	if days < 14 {
		return fmt.Sprintf("%dd", days)
	}
	weeks := days / 7
	if weeks < 52 {
		return fmt.Sprintf("%dw", weeks)
	}
	return fmt.Sprintf("%dy", weeks/52)
}

// Stamp renders an RFC3339 string as "<age> <short>", or "-" when the
// string is absent or unparseable.
func Stamp(rfc3339 string, now time.Time) string {
	if rfc3339 == "" {
		return "-"
	}
	t, ok := Parse(rfc3339)
	if !ok {
		return "-"
	}
	return Age(t, now) + " " + Short(t)
}
