package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// presetItem wraps a Preset for use in a list
type presetItem struct {
	preset models.Preset
}

// FilterValue implements list.Item
func (p presetItem) FilterValue() string {
	return p.preset.Name
}

// Title implements list.DefaultItem
func (p presetItem) Title() string {
	return p.preset.Name
}

// Description implements list.DefaultItem
func (p presetItem) Description() string {
	return p.preset.Summary()
}

// createPresetList creates a list.Model from presets
func createPresetList(presets []models.Preset, width, height int) list.Model {
	items := make([]list.Item, len(presets))
	for i, p := range presets {
		items[i] = presetItem{preset: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Saved Filters"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
