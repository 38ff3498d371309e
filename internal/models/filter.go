package models

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateRange is returned when a filter's start date is after its end date
var ErrInvalidDateRange = errors.New("start date is after end date")

// DateLayout is the calendar-day format used for filter input
const DateLayout = "2006-01-02"

// StatusTab selects which derived status is shown. TabAll shows everything.
type StatusTab string

const TabAll StatusTab = "all"

// Tabs returns all status tabs in display order
func Tabs() []StatusTab {
	tabs := []StatusTab{TabAll}
	for _, s := range AllStatuses {
		tabs = append(tabs, StatusTab(s))
	}
	return tabs
}

// Label returns the display label of the tab
func (t StatusTab) Label() string {
	if t == TabAll || t == "" {
		return "All"
	}
	return Status(t).Label()
}

// Includes reports whether a record with status s belongs to the tab
func (t StatusTab) Includes(s Status) bool {
	return t == TabAll || t == "" || Status(t) == s
}

// ParseTab parses "all" or a status name
func ParseTab(s string) (StatusTab, bool) {
	if s == "" || strings.EqualFold(s, string(TabAll)) {
		return TabAll, true
	}
	st, ok := ParseStatus(s)
	if !ok {
		return "", false
	}
	return StatusTab(st), true
}

// FilterState is the user's selection. It is a value: every change produces a new one.
type FilterState struct {
	Start  time.Time // First calendar day (zero = unbounded)
	End    time.Time // Last calendar day, inclusive (zero = unbounded)
	Search string
	Tab    StatusTab
}

// DefaultFilter returns the window of the last days days through today
func DefaultFilter(now time.Time, days int) FilterState {
	today := StartOfDay(now)
	return FilterState{
		Start: today.AddDate(0, 0, -days),
		End:   today,
		Tab:   TabAll,
	}
}

// Validate checks the date range. Fetching does not enforce this; callers surface it.
func (f FilterState) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && StartOfDay(f.Start).After(StartOfDay(f.End)) {
		return ErrInvalidDateRange
	}
	return nil
}

// WithDates returns a copy with a new date range
func (f FilterState) WithDates(start, end time.Time) FilterState {
	f.Start = start
	f.End = end
	return f
}

// WithSearch returns a copy with new search text
func (f FilterState) WithSearch(search string) FilterState {
	f.Search = strings.TrimSpace(search)
	return f
}

// WithTab returns a copy showing a different status tab
func (f FilterState) WithTab(tab StatusTab) FilterState {
	f.Tab = tab
	return f
}

// Equal reports whether two filters select the same data
func (f FilterState) Equal(o FilterState) bool {
	return f.Start.Equal(o.Start) && f.End.Equal(o.End) && f.Search == o.Search && f.tab() == o.tab()
}

func (f FilterState) tab() StatusTab {
	if f.Tab == "" {
		return TabAll
	}
	return f.Tab
}

// MatchesSearch matches vessel name, IMO number or port area name
func (f FilterState) MatchesSearch(pc PortCall) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(pc.VesselName), q) {
		return true
	}
	if pc.IMO != 0 && strings.Contains(strconv.FormatInt(pc.IMO, 10), q) {
		return true
	}
	return strings.Contains(strings.ToLower(pc.PortAreaName), q)
}

// Apply returns the records visible under the filter at time now,
// newest first by creation time
func (f FilterState) Apply(records []PortCall, now time.Time) []PortCall {
	tab := f.tab()
	visible := make([]PortCall, 0, len(records))
	for _, pc := range records {
		if !f.MatchesSearch(pc) {
			continue
		}
		if !tab.Includes(Classify(pc, now)) {
			continue
		}
		visible = append(visible, pc)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Created.After(visible[j].Created)
	})
	return visible
}

// CountByStatus counts search matches per status, ignoring the tab
func (f FilterState) CountByStatus(records []PortCall, now time.Time) map[StatusTab]int {
	counts := make(map[StatusTab]int)
	for _, pc := range records {
		if !f.MatchesSearch(pc) {
			continue
		}
		counts[TabAll]++
		counts[StatusTab(Classify(pc, now))]++
	}
	return counts
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// ParseDate parses a calendar day in loc. Empty input yields the zero time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatDate formats a calendar day, empty for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
