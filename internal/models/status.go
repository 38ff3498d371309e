package models

import "time"

// Status is the lifecycle label derived from a port call's timestamps
type Status string

const (
	StatusCompleted    Status = "Completed"
	StatusArrived      Status = "Arrived"
	StatusDelayed      Status = "Delayed"
	StatusArrivingSoon Status = "ArrivingSoon"
	StatusExpected     Status = "Expected"
	StatusUnknown      Status = "Unknown"
)

const (
	// DelayedAfter is how long past its ETA an unarrived vessel counts as delayed
	DelayedAfter = 3 * time.Hour

	// ArrivingSoonWithin is the look-ahead window for imminent arrivals
	ArrivingSoonWithin = 24 * time.Hour
)

// AllStatuses lists statuses in display order
var AllStatuses = []Status{
	StatusArrivingSoon,
	StatusExpected,
	StatusDelayed,
	StatusArrived,
	StatusCompleted,
	StatusUnknown,
}

// Classify derives the status of a port call at time now.
// The result depends on now, so it must be computed at read time.
func Classify(pc PortCall, now time.Time) Status {
	if !pc.ATD.IsZero() {
		return StatusCompleted
	}
	if !pc.ATA.IsZero() {
		return StatusArrived
	}
	if pc.ETA.IsZero() {
		return StatusUnknown
	}
	if pc.ETA.Before(now.Add(-DelayedAfter)) {
		return StatusDelayed
	}
	if pc.ETA.Before(now.Add(ArrivingSoonWithin)) {
		return StatusArrivingSoon
	}
	return StatusExpected
}

// Label returns the human readable label
func (s Status) Label() string {
	if s == StatusArrivingSoon {
		return "Arriving Soon"
	}
	return string(s)
}

// ParseStatus maps a label or identifier (case-insensitive, spaces ignored) to a Status
func ParseStatus(s string) (Status, bool) {
	key := normalizeKey(s)
	for _, st := range AllStatuses {
		if normalizeKey(string(st)) == key {
			return st, true
		}
	}
	return "", false
}
