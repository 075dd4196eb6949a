package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
	"go.uber.org/zap"
)

// ViewState represents the current view mode
type ViewState int

const (
	LoadingView ViewState = iota
	ErrorView
	ListView
	DetailView
)

type cacheClearSource interface {
	ClearCache()
}

// Model is the main TUI model
type Model struct {
	source    types.CandidateSource
	builder   *tabtree.Builder
	request   types.Request
	log       *zap.Logger
	records   []types.Candidate
	tree      types.Tree
	outer     int
	inner     []int
	list      list.Model
	viewport  viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	state     ViewState
	width     int
	height    int
	requestID int
	err       error
	statusMsg string
}

// NewModel creates a Model that reads req from source and groups the
// records with cfg.
func NewModel(source types.CandidateSource, cfg tabtree.Config, req types.Request, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	l := list.New([]list.Item{}, CandidateDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Filter = fuzzyFilter
	l.DisableQuitKeybindings()
	l.Styles.Title = TitleStyle
	l.SetStatusBarItemName("candidate", "candidates")

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		source:    source,
		builder:   tabtree.NewBuilder(cfg, log),
		request:   req,
		log:       log.Named("ui"),
		list:      l,
		viewport:  viewport.New(0, 0),
		spinner:   s,
		help:      help.New(),
		keys:      keys,
		state:     LoadingView,
		requestID: 1,
		statusMsg: "Loading",
	}
}

// Init starts the spinner and the single feed fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCandidates(m.source, m.request, m.requestID))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case candidatesMsg:
		return m.handleCandidates(msg)

	case SettingsMsg:
		return m.handleSettings(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.statusMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Copied " + msg.text
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != LoadingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ListView {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleCandidates(msg candidatesMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn("load candidates", zap.Error(msg.err))
		m.err = msg.err
		m.state = ErrorView
		m.statusMsg = "Load failed"
		return m, nil
	}

	m.err = nil
	m.records = msg.records
	m.rebuild()
	m.state = ListView
	m.statusMsg = statusCount(len(m.records))
	cmd := m.syncList()
	return m, cmd
}

// handleSettings swaps the tab configuration. The category on screen stays
// selected when it survives the change.
func (m Model) handleSettings(msg SettingsMsg) (tea.Model, tea.Cmd) {
	m.builder = m.builder.WithConfig(msg.Config)
	if msg.Request != m.request {
		m.request = msg.Request
		return m.reload()
	}
	if m.state != ListView && m.state != DetailView {
		return m, nil
	}

	current, had := m.currentBranch()
	m.rebuild()
	if had {
		for i, b := range m.tree.Branches {
			if b.Category == current.Category {
				m.outer = i
				break
			}
		}
	}
	m.state = ListView
	m.statusMsg = "Settings reloaded"
	cmd := m.syncList()
	return m, cmd
}

// rebuild lays out the tree for the current records and selects the
// active tabs.
func (m *Model) rebuild() {
	m.tree = m.builder.Build(m.records)
	m.outer = max(m.tree.ActiveIndex(), 0)
	m.inner = make([]int, len(m.tree.Branches))
	for i, b := range m.tree.Branches {
		m.inner[i] = max(b.ActiveChild(), 0)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// While typing a filter every key belongs to the list.
	if m.state == ListView && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePanes()
		return m, nil
	case key.Matches(msg, m.keys.Refresh) && m.state != LoadingView && m.state != DetailView:
		return m.reload()
	}

	switch m.state {
	case ListView:
		return m.handleListKey(msg)
	case DetailView:
		if key.Matches(msg, m.keys.Back) {
			m.state = ListView
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.moveOuter(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.moveOuter(-1)
	case key.Matches(msg, m.keys.NextInner):
		return m.moveInner(1)
	case key.Matches(msg, m.keys.PrevInner):
		return m.moveInner(-1)
	case key.Matches(msg, m.keys.Enter):
		c, ok := m.list.SelectedItem().(candidateItem)
		if !ok {
			return m, nil
		}
		m.viewport.SetContent(renderDetail(c.Candidate, m.viewport.Width))
		m.viewport.GotoTop()
		m.state = DetailView
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		c, ok := m.list.SelectedItem().(candidateItem)
		if !ok || c.Name() == "" {
			return m, nil
		}
		return m, copyToClipboard(c.Name())
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// reload drops cached data and fetches again. Responses to older requests
// are ignored by requestID.
func (m Model) reload() (tea.Model, tea.Cmd) {
	if clearable, ok := m.source.(cacheClearSource); ok {
		clearable.ClearCache()
	}
	m.requestID++
	m.state = LoadingView
	m.err = nil
	m.statusMsg = "Loading"
	return m, tea.Batch(m.spinner.Tick, fetchCandidates(m.source, m.request, m.requestID))
}

func (m Model) moveOuter(delta int) (tea.Model, tea.Cmd) {
	n := len(m.tree.Branches)
	if n == 0 {
		return m, nil
	}
	m.outer = (m.outer + delta + n) % n
	cmd := m.syncList()
	return m, cmd
}

func (m Model) moveInner(delta int) (tea.Model, tea.Cmd) {
	branch, ok := m.currentBranch()
	if !ok || branch.IsLeaf() || len(branch.Children) == 0 {
		return m, nil
	}
	n := len(branch.Children)
	m.inner[m.outer] = (m.inner[m.outer] + delta + n) % n
	cmd := m.syncList()
	return m, cmd
}

func (m Model) currentBranch() (types.TabNode, bool) {
	if m.outer < 0 || m.outer >= len(m.tree.Branches) {
		return types.TabNode{}, false
	}
	return m.tree.Branches[m.outer], true
}

// currentLeaf returns the node whose candidates are on screen. The NUS
// branch is its own leaf.
func (m Model) currentLeaf() (types.TabNode, bool) {
	branch, ok := m.currentBranch()
	if !ok {
		return types.TabNode{}, false
	}
	if branch.IsLeaf() {
		return branch, true
	}
	if len(branch.Children) == 0 {
		return types.TabNode{}, false
	}
	return branch.Children[m.inner[m.outer]], true
}

// syncList loads the current leaf into the list.
func (m *Model) syncList() tea.Cmd {
	m.list.ResetFilter()
	leaf, ok := m.currentLeaf()
	if !ok {
		return m.list.SetItems(nil)
	}
	m.list.SetDelegate(CandidateDelegate{Display: leaf.Display})
	items := make([]list.Item, len(leaf.Candidates))
	for i, c := range leaf.Candidates {
		items[i] = newCandidateItem(c, leaf.Display)
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

// resizePanes adjusts the dimensions of list and viewport based on window size
func (m *Model) resizePanes() {
	// Category bar, role bar, status bar and help
	chrome := 4
	if m.help.ShowAll {
		chrome += 4
	}
	availableHeight := max(m.height-chrome, 0)

	m.help.Width = m.width
	m.list.SetSize(m.width, availableHeight)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-2, 0)
}
