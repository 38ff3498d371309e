package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit       key.Binding
	search     key.Binding
	dates      key.Binding
	clear      key.Binding
	refresh    key.Binding
	details    key.Binding
	back       key.Binding
	copyDoc    key.Binding
	presets    key.Binding
	savePreset key.Binding
	deletePre  key.Binding
	nextTab    key.Binding
	prevTab    key.Binding
	up         key.Binding
	down       key.Binding
	toggleHelp key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		dates: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "dates"),
		),
		clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		copyDoc: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy document url"),
		),
		presets: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "presets"),
		),
		savePreset: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save preset"),
		),
		deletePre: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete preset"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next status"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev status"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.search,
		k.dates,
		k.nextTab,
		k.details,
		k.refresh,
		k.toggleHelp,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.details, k.back},
		{k.search, k.dates, k.clear, k.refresh},
		{k.nextTab, k.prevTab, k.copyDoc},
		{k.presets, k.savePreset, k.deletePre},
		{k.toggleHelp, k.quit},
	}
}
