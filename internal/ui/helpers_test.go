package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/pagination"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)

// Mock collaborators for testing

type stubFetcher struct {
	pages map[string]*models.Page
	errs  map[string]error
	calls int
}

func (s *stubFetcher) FetchPage(ctx context.Context, filter models.FilterState, token string) (*models.Page, error) {
	s.calls++
	if err := s.errs[token]; err != nil {
		return nil, err
	}
	if p, ok := s.pages[token]; ok {
		return p, nil
	}
	return nil, errors.New("unexpected token " + token)
}

type recordingOpener struct {
	opened []models.DocumentLink
	err    error
}

func (r *recordingOpener) Open(link models.DocumentLink) error {
	r.opened = append(r.opened, link)
	return r.err
}

func samplePortCalls() []models.PortCall {
	return []models.PortCall{
		{
			PortCallID:   1,
			VesselName:   "FINNMAID",
			IMO:          9319442,
			PortAreaName: "Hanko",
			ETA:          testNow.Add(2 * time.Hour),
			Created:      testNow.Add(-1 * time.Hour),
			NOAXMLURL:    "https://docs.example.com/noa/1.xml",
			VIDXMLURL:    "https://docs.example.com/vid/1.xml",
		},
		{
			PortCallID:   2,
			VesselName:   "ECKERÖ",
			IMO:          7633155,
			PortAreaName: "Helsinki",
			ETA:          testNow.Add(-10 * time.Hour),
			ATA:          testNow.Add(-9 * time.Hour),
			Created:      testNow.Add(-2 * time.Hour),
		},
		{
			PortCallID:   3,
			VesselName:   "VIKING GRACE",
			IMO:          9606900,
			PortAreaName: "Turku",
			ETA:          testNow.Add(-5 * time.Hour),
			Created:      testNow.Add(-3 * time.Hour),
		},
	}
}

func twoPageFetcher() *stubFetcher {
	recs := samplePortCalls()
	return &stubFetcher{pages: map[string]*models.Page{
		"":     {Records: recs[:2], NextToken: "next"},
		"next": {Records: recs[2:]},
	}}
}

func newTestModel(t *testing.T, fetcher *stubFetcher, opts ...Option) Model {
	t.Helper()
	agg := aggregator.New(nil)
	driver := pagination.NewDriver(fetcher, agg, pagination.WithPageDelay(0))
	coord := pagination.NewCoordinator(driver, agg, models.DefaultFilter(testNow, 7))

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	m := NewModel(coord, opts...)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return updated.(Model)
}

// loadedModel returns a model with the fetcher's chain already drained
func loadedModel(t *testing.T, fetcher *stubFetcher, opts ...Option) Model {
	t.Helper()
	m := newTestModel(t, fetcher, opts...)
	return pump(t, m, m.coord.Refresh())
}

// pump runs cmd and feeds the resulting messages back into the model until
// no async work is left. Timer-driven messages (spinner, clock) are dropped.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("pump did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case pagination.PageFetchedMsg, pagination.NextPageMsg,
			presetsFetchedMsg, presetSavedMsg, presetDeletedMsg,
			documentOpenedMsg, errMsg:
			updated, next := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, next)
		}
	}
	return m
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}
