package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// DocumentOpener hands a document link to whatever displays it
type DocumentOpener interface {
	Open(link models.DocumentLink) error
}

// ClipboardOpener copies the document URL to the system clipboard
type ClipboardOpener struct{}

func (ClipboardOpener) Open(link models.DocumentLink) error {
	return clipboard.WriteAll(link.URL)
}

func openDocument(o DocumentOpener, link models.DocumentLink) tea.Cmd {
	return func() tea.Msg {
		return documentOpenedMsg{link: link, err: o.Open(link)}
	}
}
