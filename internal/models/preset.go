package models

import "time"

// Preset is a saved, named filter. It stores the selection only, never records.
type Preset struct {
	ID        int64       `json:"id"`   // Database Primary Key (0 if not saved)
	Name      string      `json:"name"` // User-chosen name
	Filter    FilterState `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

// Summary describes the preset's filter on one line
func (p Preset) Summary() string {
	start, end := FormatDate(p.Filter.Start), FormatDate(p.Filter.End)
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	s := start + " → " + end
	if p.Filter.Search != "" {
		s += ` "` + p.Filter.Search + `"`
	}
	if p.Filter.Tab != "" && p.Filter.Tab != TabAll {
		s += " [" + p.Filter.Tab.Label() + "]"
	}
	return s
}
