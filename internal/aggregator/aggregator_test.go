package aggregator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

func page(ids ...int64) models.Page {
	p := models.Page{}
	for _, id := range ids {
		p.Records = append(p.Records, models.PortCall{PortCallID: id})
	}
	return p
}

func TestAggregator_MergeIsIdempotent(t *testing.T) {
	a := New(nil)
	a.Reset(1)

	p := page(1, 2, 3)
	a.Merge(1, p)
	once := a.Snapshot().TotalCount

	a.Merge(1, p)
	twice := a.Snapshot().TotalCount

	if once != 3 || twice != 3 {
		t.Errorf("TotalCount after one/two merges = %d/%d, want 3/3", once, twice)
	}
}

func TestAggregator_LastWriteWins(t *testing.T) {
	a := New(nil)
	a.Reset(1)

	a.Merge(1, models.Page{Records: []models.PortCall{
		{PortCallID: 1, VesselName: "old"},
		{PortCallID: 2, VesselName: "other"},
	}})
	a.Merge(1, models.Page{Records: []models.PortCall{
		{PortCallID: 3, VesselName: "new record"},
		{PortCallID: 1, VesselName: "updated"},
	}})

	snap := a.Snapshot()
	if snap.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", snap.TotalCount)
	}
	if snap.Records[0].PortCallID != 1 || snap.Records[0].VesselName != "updated" {
		t.Errorf("Records[0] = %+v, want id 1 overwritten in place", snap.Records[0])
	}
	if snap.Records[2].PortCallID != 3 {
		t.Errorf("Records[2].PortCallID = %d, want 3", snap.Records[2].PortCallID)
	}
	if snap.Pages != 2 {
		t.Errorf("Pages = %d, want 2", snap.Pages)
	}
}

func TestAggregator_StaleGenerationIsIgnored(t *testing.T) {
	var published int
	a := New(func(Snapshot) { published++ })
	a.Reset(1)
	a.Merge(1, page(1))
	a.Reset(2)

	if a.Merge(1, page(7, 8)) {
		t.Error("Merge() with stale generation returned true")
	}
	if a.MarkComplete(1, ErrorNone) {
		t.Error("MarkComplete() with stale generation returned true")
	}
	if a.MarkFailed(1, ErrorNetwork) {
		t.Error("MarkFailed() with stale generation returned true")
	}

	snap := a.Snapshot()
	if snap.TotalCount != 0 || snap.Complete || snap.LastError != ErrorNone {
		t.Errorf("stale calls mutated state: %+v", snap)
	}
	if published != 1 {
		t.Errorf("published %d times, want 1 (only the first merge)", published)
	}
}

func TestAggregator_Reset(t *testing.T) {
	a := New(nil)
	a.Reset(1)
	a.Merge(1, page(1, 2))
	a.MarkFailed(1, ErrorNetwork)

	a.Reset(2)
	snap := a.Snapshot()

	if snap.Generation != 2 {
		t.Errorf("Generation = %d, want 2", snap.Generation)
	}
	if snap.TotalCount != 0 || snap.Pages != 0 {
		t.Errorf("Reset() left %d records, %d pages", snap.TotalCount, snap.Pages)
	}
	if snap.LastError != ErrorNone || snap.Complete {
		t.Errorf("Reset() left error=%v complete=%v", snap.LastError, snap.Complete)
	}

	// The old ID must be insertable again
	a.Merge(2, page(1))
	if a.Snapshot().TotalCount != 1 {
		t.Error("index was not cleared by Reset()")
	}
}

func TestAggregator_Publish(t *testing.T) {
	var got []Snapshot
	a := New(func(s Snapshot) { got = append(got, s) })
	a.Reset(5)

	a.Merge(5, page(1, 2))
	a.MarkComplete(5, ErrorMalformedContinuation)

	if len(got) != 2 {
		t.Fatalf("published %d snapshots, want 2", len(got))
	}
	if got[0].TotalCount != 2 || got[0].Complete {
		t.Errorf("first snapshot = %+v", got[0])
	}
	if !got[1].Complete || got[1].LastError != ErrorMalformedContinuation {
		t.Errorf("second snapshot = %+v, want complete with warning", got[1])
	}
}

func TestAggregator_FailureKeepsRecords(t *testing.T) {
	a := New(nil)
	a.Reset(1)
	a.Merge(1, page(10, 11))
	a.MarkFailed(1, ErrorNetwork)

	snap := a.Snapshot()
	if snap.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2 (partial result kept)", snap.TotalCount)
	}
	if snap.Complete {
		t.Error("Complete should be false after failure")
	}
	if snap.LastError != ErrorNetwork {
		t.Errorf("LastError = %v, want NetworkError", snap.LastError)
	}
}

func TestAggregator_SnapshotIsACopy(t *testing.T) {
	a := New(nil)
	a.Reset(1)
	a.Merge(1, models.Page{Records: []models.PortCall{{PortCallID: 1, VesselName: "A"}}})

	snap := a.Snapshot()
	snap.Records[0].VesselName = "mutated"

	if a.Snapshot().Records[0].VesselName != "A" {
		t.Error("Snapshot() exposes internal storage")
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrorNone, "None"},
		{ErrorNetwork, "NetworkError"},
		{ErrorMalformedContinuation, "MalformedContinuationToken"},
		{ErrorFilterValidation, "FilterValidationError"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ErrorNone},
		{"invalid range", models.ErrInvalidDateRange, ErrorFilterValidation},
		{"wrapped invalid range", fmt.Errorf("saving preset: %w", models.ErrInvalidDateRange), ErrorFilterValidation},
		{"transport", errors.New("connection refused"), ErrorNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
