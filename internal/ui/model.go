package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/pagination"
	"github.com/ngmaloney/portman-terminal/internal/presets"
)

// AppState represents the current state of the application
type AppState int

const (
	StateBrowse     AppState = iota // Port call table
	StateSearch                     // Editing the search text
	StateDates                      // Editing the date range
	StateDetail                     // Detail view of one port call
	StatePresets                    // Saved filter list
	StateSavePreset                 // Naming a new preset
)

const (
	headerHeight = 6
	footerHeight = 3
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error  // Filter or preset error shown under the header
	notice string // Short confirmation message

	coord       *pagination.Coordinator
	presets     *presets.Service
	opener      DocumentOpener
	now         func() time.Time
	clock       time.Time
	defaultDays int

	// Records visible under the current filter, in table order
	visible []models.PortCall
	counts  map[models.StatusTab]int

	// PortCallID of the record open in the detail view
	detailID int64

	table       table.Model
	spinner     spinner.Model
	searchInput textinput.Model
	startInput  textinput.Model
	endInput    textinput.Model
	nameInput   textinput.Model
	detail      viewport.Model
	presetList  list.Model
	help        help.Model
	keys        keyMap
}

// Option configures a Model
type Option func(*Model)

// WithPresets enables saved filters
func WithPresets(s *presets.Service) Option {
	return func(m *Model) { m.presets = s }
}

// WithDocumentOpener replaces the clipboard handoff for document links
func WithDocumentOpener(o DocumentOpener) Option {
	return func(m *Model) { m.opener = o }
}

// WithClock sets the time source statuses are classified against
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithDefaultDays sets the window used when filters are cleared
func WithDefaultDays(days int) Option {
	return func(m *Model) {
		if days > 0 {
			m.defaultDays = days
		}
	}
}

// NewModel creates a new application model. The coordinator's current filter
// is loaded by Init.
func NewModel(coord *pagination.Coordinator, opts ...Option) Model {
	search := textinput.New()
	search.Placeholder = "Vessel name, IMO or port area..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 50

	start := textinput.New()
	start.Placeholder = models.DateLayout
	start.Prompt = "From: "
	start.CharLimit = len(models.DateLayout)
	start.Width = 12

	end := textinput.New()
	end.Placeholder = models.DateLayout
	end.Prompt = "To:   "
	end.CharLimit = len(models.DateLayout)
	end.Width = 12

	name := textinput.New()
	name.Placeholder = "Preset name"
	name.CharLimit = 60
	name.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary)
	t.SetStyles(styles)

	m := Model{
		state:       StateBrowse,
		coord:       coord,
		opener:      ClipboardOpener{},
		now:         time.Now,
		defaultDays: 7,
		table:       t,
		spinner:     s,
		searchInput: search,
		startInput:  start,
		endInput:    end,
		nameInput:   name,
		detail:      viewport.New(80, 20),
		help:        help.New(),
		keys:        newKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.clock = m.now()
	m.searchInput.SetValue(coord.Filter().Search)
	return m
}

// Init starts loading the current filter
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coord.Refresh(), m.spinner.Tick, clockTick())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case pagination.PageFetchedMsg, pagination.NextPageMsg:
		cmd := m.coord.Update(msg)
		m.syncRows()
		if m.state == StateDetail {
			m.refreshDetail()
		}
		return m, cmd

	case spinner.TickMsg:
		if !m.coord.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clockTickMsg:
		m.clock = m.now()
		m.syncRows()
		if m.state == StateDetail {
			m.refreshDetail()
		}
		return m, clockTick()

	case errMsg:
		m.err = msg.err
		return m, nil

	case documentOpenedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copying %s document: %w", msg.link.Kind, msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("Copied %s document URL", msg.link.Kind)
		return m, nil

	case presetsFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading presets: %w", msg.err)
			m.state = StateBrowse
			return m, nil
		}
		m.presetList = createPresetList(msg.presets, m.width, m.bodyHeight())
		m.state = StatePresets
		return m, nil

	case presetSavedMsg:
		m.state = StateBrowse
		if msg.err != nil {
			m.err = fmt.Errorf("saving preset: %w", msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("Saved preset %q", msg.preset.Name)
		return m, nil

	case presetDeletedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("deleting preset: %w", msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("Deleted preset %q", msg.name)
		return m, fetchPresets(m.presets)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.notice = ""

		switch m.state {
		case StateSearch:
			return m.handleSearchInput(msg)
		case StateDates:
			return m.handleDateInput(msg)
		case StateDetail:
			return m.handleDetail(msg)
		case StatePresets:
			return m.handlePresetList(msg)
		case StateSavePreset:
			return m.handlePresetName(msg)
		default:
			return m.handleBrowse(msg)
		}
	}

	// Forward everything else to the focused component
	var cmd tea.Cmd
	switch m.state {
	case StatePresets:
		m.presetList, cmd = m.presetList.Update(msg)
	case StateDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

// applyFilter starts a new chain for f
func (m *Model) applyFilter(f models.FilterState) tea.Cmd {
	wasLoading := m.coord.Loading()
	m.err = nil
	cmd := m.coord.SetFilter(f)
	m.searchInput.SetValue(f.Search)
	m.syncRows()
	m.table.GotoTop()
	if wasLoading {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// handleBrowse handles keyboard input on the table
func (m Model) handleBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filter := m.coord.Filter()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.state = StateSearch
		m.searchInput.SetValue(filter.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.dates):
		m.state = StateDates
		m.startInput.SetValue(models.FormatDate(filter.Start))
		m.endInput.SetValue(models.FormatDate(filter.End))
		m.endInput.Blur()
		return m, m.startInput.Focus()

	case key.Matches(msg, m.keys.clear):
		return m, m.applyFilter(models.DefaultFilter(m.clock, m.defaultDays))

	case key.Matches(msg, m.keys.refresh):
		return m, m.applyFilter(filter)

	case key.Matches(msg, m.keys.nextTab):
		return m, m.applyFilter(filter.WithTab(cycleTab(filter.Tab, 1)))

	case key.Matches(msg, m.keys.prevTab):
		return m, m.applyFilter(filter.WithTab(cycleTab(filter.Tab, -1)))

	case key.Matches(msg, m.keys.details):
		pc := m.selected()
		if pc == nil {
			return m, nil
		}
		m.detailID = pc.PortCallID
		m.state = StateDetail
		m.refreshDetail()
		m.detail.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.copyDoc):
		return m, m.copyDocument(0)

	case key.Matches(msg, m.keys.presets):
		if m.presets == nil {
			m.err = fmt.Errorf("presets are not available")
			return m, nil
		}
		return m, fetchPresets(m.presets)

	case key.Matches(msg, m.keys.savePreset):
		if m.presets == nil {
			m.err = fmt.Errorf("presets are not available")
			return m, nil
		}
		m.state = StateSavePreset
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchInput handles keyboard input while editing the search text
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.state = StateBrowse
		m.searchInput.Blur()
		return m, m.applyFilter(m.coord.Filter().WithSearch(m.searchInput.Value()))
	case tea.KeyEsc:
		m.state = StateBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue(m.coord.Filter().Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleDateInput handles keyboard input in the date range editor
func (m Model) handleDateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.startInput.Focused() {
			m.startInput.Blur()
			return m, m.endInput.Focus()
		}
		m.endInput.Blur()
		return m, m.startInput.Focus()

	case tea.KeyEsc:
		m.state = StateBrowse
		m.err = nil
		m.startInput.Blur()
		m.endInput.Blur()
		return m, nil

	case tea.KeyEnter:
		start, err := models.ParseDate(m.startInput.Value(), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid start date %q, use %s", m.startInput.Value(), models.DateLayout)
			return m, nil
		}
		end, err := models.ParseDate(m.endInput.Value(), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid end date %q, use %s", m.endInput.Value(), models.DateLayout)
			return m, nil
		}
		filter := m.coord.Filter().WithDates(start, end)
		if err := filter.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.state = StateBrowse
		m.startInput.Blur()
		m.endInput.Blur()
		return m, m.applyFilter(filter)
	}

	var cmd tea.Cmd
	if m.startInput.Focused() {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

// handleDetail handles keyboard input in the detail view
func (m Model) handleDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.details):
		m.state = StateBrowse
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.copyDoc):
		return m, m.copyDocument(0)
	}

	// Digits copy the document with that number
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return m, m.copyDocument(int(s[0] - '1'))
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// handlePresetList handles keyboard input in the preset list
func (m Model) handlePresetList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.presetList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back) && m.presetList.FilterState() == list.Unfiltered:
			m.state = StateBrowse
			return m, nil
		case msg.Type == tea.KeyEnter:
			if item, ok := m.presetList.SelectedItem().(presetItem); ok {
				m.state = StateBrowse
				m.notice = fmt.Sprintf("Loaded preset %q", item.preset.Name)
				return m, m.applyFilter(item.preset.Filter)
			}
			return m, nil
		case key.Matches(msg, m.keys.deletePre):
			if item, ok := m.presetList.SelectedItem().(presetItem); ok {
				return m, deletePreset(m.presets, item.preset.Name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.presetList, cmd = m.presetList.Update(msg)
	return m, cmd
}

// handlePresetName handles keyboard input while naming a preset
func (m Model) handlePresetName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.nameInput.Blur()
		return m, savePreset(m.presets, name, m.coord.Filter())
	case tea.KeyEsc:
		m.state = StateBrowse
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// syncRows re-applies the filter to the aggregator snapshot
func (m *Model) syncRows() {
	snap := m.coord.Snapshot()
	filter := m.coord.Filter()
	m.visible = filter.Apply(snap.Records, m.clock)
	m.counts = filter.CountByStatus(snap.Records, m.clock)
	m.table.SetRows(tableRows(m.visible, m.clock))
}

func (m *Model) refreshDetail() {
	if pc := m.current(); pc != nil {
		m.detail.SetContent(renderDetail(*pc, m.clock))
	}
}

// current returns the record keys act on: the open detail record, looked up
// by id since rows reorder as pages arrive, or the row under the cursor.
func (m Model) current() *models.PortCall {
	if m.state != StateDetail {
		return m.selected()
	}
	for _, pc := range m.coord.Snapshot().Records {
		if pc.PortCallID == m.detailID {
			return &pc
		}
	}
	return nil
}

// selected returns the record under the table cursor
func (m Model) selected() *models.PortCall {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	pc := m.visible[i]
	return &pc
}

func (m Model) copyDocument(index int) tea.Cmd {
	pc := m.current()
	if pc == nil {
		return nil
	}
	docs := pc.Documents()
	if index < 0 || index >= len(docs) {
		return func() tea.Msg {
			return errMsg{err: fmt.Errorf("no document %d for %s", index+1, pc.VesselName)}
		}
	}
	return openDocument(m.opener, docs[index])
}

func (m *Model) resize() {
	body := m.bodyHeight()
	m.table.SetWidth(m.width)
	m.table.SetHeight(body)
	m.detail.Width = m.width
	m.detail.Height = body
	m.help.Width = m.width
	if m.state == StatePresets {
		m.presetList.SetSize(m.width, body)
	}
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if m.help.ShowAll {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

// cycleTab moves dir steps through the status tabs, wrapping around
func cycleTab(current models.StatusTab, dir int) models.StatusTab {
	tabs := models.Tabs()
	idx := 0
	for i, t := range tabs {
		if t == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(tabs)) % len(tabs)
	return tabs[idx]
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.state {
	case StateSearch:
		body = m.viewSearch()
	case StateDates:
		body = m.viewDates()
	case StateDetail:
		body = m.detail.View()
	case StatePresets:
		body = m.presetList.View()
	case StateSavePreset:
		body = m.viewSavePreset()
	default:
		body = m.viewTable()
	}

	sections := []string{m.viewHeader(), body}
	if m.state != StatePresets {
		sections = append(sections, helpStyle.Render(m.help.View(m.keys)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the title, filter, tabs, progress and banners
func (m Model) viewHeader() string {
	filter := m.coord.Filter()
	snap := m.coord.Snapshot()

	title := titleStyle.Render("⚓ Portman") + "  " + mutedStyle.Render(describeFilter(filter))

	var sections []string
	sections = append(sections, title, m.viewTabs(filter.Tab))

	var progress string
	if m.coord.Loading() {
		progress = fmt.Sprintf("%s Loading port calls... %s so far (%d pages)",
			m.spinner.View(), humanize.Comma(int64(snap.TotalCount)), snap.Pages)
	} else {
		progress = mutedStyle.Render(fmt.Sprintf("%s results · %s loaded",
			humanize.Comma(int64(len(m.visible))), humanize.Comma(int64(snap.TotalCount))))
	}
	sections = append(sections, progress)

	if snap.LastError != aggregator.ErrorNone {
		sections = append(sections, bannerStyle(snap.LastError).Render("✗ "+snap.LastError.Message()))
	}
	if m.err != nil {
		msg := m.err.Error()
		if kind := aggregator.KindOf(m.err); kind == aggregator.ErrorFilterValidation {
			msg = kind.Message()
		}
		sections = append(sections, errorBannerStyle.Render("✗ "+msg))
	}
	if m.notice != "" {
		sections = append(sections, successStyle.Render("✓ "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs(active models.StatusTab) string {
	if active == "" {
		active = models.TabAll
	}
	var tabs []string
	for _, t := range models.Tabs() {
		label := fmt.Sprintf("%s (%d)", t.Label(), m.counts[t])
		if t == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTable() string {
	if len(m.visible) == 0 && !m.coord.Loading() {
		return mutedStyle.Render("\nNo port calls match the current filter.")
	}
	return m.table.View()
}

func (m Model) viewSearch() string {
	box := activeInputBoxStyle.Width(60).Render(m.searchInput.View())
	hint := mutedStyle.Render("Enter: apply • Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, "", box, hint)
}

func (m Model) viewDates() string {
	start, end := inputBoxStyle, inputBoxStyle
	if m.startInput.Focused() {
		start = activeInputBoxStyle
	} else {
		end = activeInputBoxStyle
	}
	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		start.Render(m.startInput.View()),
		" ",
		end.Render(m.endInput.View()))
	hint := mutedStyle.Render("Tab: switch field • Enter: apply • Esc: cancel • empty = unbounded")
	return lipgloss.JoinVertical(lipgloss.Left, "", boxes, hint)
}

func (m Model) viewSavePreset() string {
	box := activeInputBoxStyle.Width(50).Render(m.nameInput.View())
	hint := mutedStyle.Render("Save " + describeFilter(m.coord.Filter()) + " • Enter: save • Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, "", box, hint)
}

// describeFilter summarizes the date range and search text
func describeFilter(f models.FilterState) string {
	return models.Preset{Filter: f}.Summary()
}
