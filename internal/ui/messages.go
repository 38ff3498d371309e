package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// Message types for async operations

// clockTickMsg advances the clock that statuses are classified against
type clockTickMsg time.Time

// documentOpenedMsg is sent after a document link was handed off
type documentOpenedMsg struct {
	link models.DocumentLink
	err  error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// clockInterval is how often statuses and relative times are re-evaluated
const clockInterval = 30 * time.Second

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
