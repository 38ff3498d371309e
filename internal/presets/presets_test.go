package presets

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(filepath.Join(t.TempDir(), "presets.db"))
}

func day(s string) time.Time {
	t, err := models.ParseDate(s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestService_SaveAndLoad(t *testing.T) {
	svc := newTestService(t)
	want := models.FilterState{
		Start:  day("2024-05-01"),
		End:    day("2024-05-08"),
		Search: "finnmaid",
		Tab:    models.StatusTab(models.StatusArrivingSoon),
	}

	p, err := svc.SavePreset("  weekly  ", want)
	if err != nil {
		t.Fatalf("SavePreset() error = %v", err)
	}
	if p.ID == 0 {
		t.Error("SavePreset() did not set ID")
	}
	if p.Name != "weekly" {
		t.Errorf("Name = %q, want trimmed", p.Name)
	}

	got, err := svc.Filter("weekly")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Filter() = %+v, want %+v", got, want)
	}
}

func TestService_SaveUnboundedDates(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.SavePreset("everything", models.FilterState{}); err != nil {
		t.Fatalf("SavePreset() error = %v", err)
	}

	got, err := svc.Filter("everything")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if !got.Start.IsZero() || !got.End.IsZero() {
		t.Errorf("dates = %v .. %v, want unbounded", got.Start, got.End)
	}
	if got.Tab != models.TabAll {
		t.Errorf("Tab = %q, want all", got.Tab)
	}
}

func TestService_SaveReplacesByName(t *testing.T) {
	svc := newTestService(t)

	first, _ := svc.SavePreset("p", models.FilterState{Search: "a"})
	second, err := svc.SavePreset("p", models.FilterState{Search: "b"})
	if err != nil {
		t.Fatalf("SavePreset() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("IDs differ after upsert: %d vs %d", first.ID, second.ID)
	}

	list, err := svc.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets() error = %v", err)
	}
	if len(list) != 1 || list[0].Filter.Search != "b" {
		t.Errorf("ListPresets() = %+v, want one preset searching b", list)
	}
}

func TestService_SaveRejectsInvalid(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		preset  string
		filter  models.FilterState
		wantErr error
	}{
		{"empty name", "  ", models.FilterState{}, ErrEmptyName},
		{"reversed dates", "bad", models.FilterState{Start: day("2024-05-08"), End: day("2024-05-01")}, models.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SavePreset(tt.preset, tt.filter)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SavePreset() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_ListOrderedByName(t *testing.T) {
	svc := newTestService(t)
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if _, err := svc.SavePreset(name, models.FilterState{}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets() error = %v", err)
	}

	want := []string{"alpha", "mike", "zulu"}
	if len(list) != len(want) {
		t.Fatalf("got %d presets, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)
	svc.SavePreset("gone", models.FilterState{})

	if err := svc.DeletePreset("gone"); err != nil {
		t.Fatalf("DeletePreset() error = %v", err)
	}
	if _, err := svc.Filter("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Filter() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.DeletePreset("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePreset() error = %v, want ErrNotFound", err)
	}
}

func TestPreset_Summary(t *testing.T) {
	tests := []struct {
		name   string
		filter models.FilterState
		want   string
	}{
		{"dates only", models.FilterState{Start: day("2024-05-01"), End: day("2024-05-08")}, "2024-05-01 → 2024-05-08"},
		{"unbounded", models.FilterState{}, "… → …"},
		{"search and tab", models.FilterState{Start: day("2024-05-01"), Search: "viking", Tab: models.StatusTab(models.StatusDelayed)}, `2024-05-01 → … "viking" [Delayed]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Preset{Filter: tt.filter}
			if got := p.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
