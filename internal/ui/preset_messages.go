package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/presets"
)

type presetsFetchedMsg struct {
	presets []models.Preset
	err     error
}

type presetSavedMsg struct {
	preset *models.Preset
	err    error
}

type presetDeletedMsg struct {
	name string
	err  error
}

func fetchPresets(s *presets.Service) tea.Cmd {
	return func() tea.Msg {
		list, err := s.ListPresets()
		return presetsFetchedMsg{presets: list, err: err}
	}
}

func savePreset(s *presets.Service, name string, filter models.FilterState) tea.Cmd {
	return func() tea.Msg {
		p, err := s.SavePreset(name, filter)
		return presetSavedMsg{preset: p, err: err}
	}
}

func deletePreset(s *presets.Service, name string) tea.Cmd {
	return func() tea.Msg {
		err := s.DeletePreset(name)
		return presetDeletedMsg{name: name, err: err}
	}
}
