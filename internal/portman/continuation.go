package portman

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

// ErrMalformedContinuation is returned when a next link carries no usable $after token
var ErrMalformedContinuation = errors.New("malformed continuation link")

const afterParam = "$after"

// ParseContinuation extracts the $after token from a next link
func ParseContinuation(nextLink string) (string, error) {
	u, err := url.Parse(nextLink)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedContinuation, err)
	}
	token := u.Query().Get(afterParam)
	if token == "" {
		return "", fmt.Errorf("%w: no %s in %q", ErrMalformedContinuation, afterParam, nextLink)
	}
	return token, nil
}

// isoLayout matches the millisecond UTC instants the API filter expects
const isoLayout = "2006-01-02T15:04:05.000Z"

// filterExpression builds the $filter predicate for a date range.
// The end day is inclusive up to its last millisecond.
func filterExpression(filter models.FilterState) string {
	var conditions []string
	if !filter.Start.IsZero() {
		conditions = append(conditions, "eta ge "+models.StartOfDay(filter.Start).UTC().Format(isoLayout))
	}
	if !filter.End.IsZero() {
		conditions = append(conditions, "eta le "+models.EndOfDay(filter.End).UTC().Format(isoLayout))
	}
	return strings.Join(conditions, " and ")
}

// timestampLayouts are tried in order; values without a zone are taken as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time for empty or unparseable values
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
