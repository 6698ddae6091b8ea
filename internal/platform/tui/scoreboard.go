package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/ecomatch/internal/games/ecomatch"
	"github.com/vovakirdan/ecomatch/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores     = 100 // Max endless runs to load
	minNameWidth  = 12  // Level name column never shrinks below this
	fixedColWidth = 30  // Number, best and cleared columns plus cell padding
	dateFormat    = "Jan 02 15:04"
)

// scoreTab is one page of the scoreboard.
type scoreTab int

const (
	tabCampaign scoreTab = iota
	tabEndless
	tabCount
)

func (t scoreTab) title() string {
	if t == tabEndless {
		return "Endless"
	}
	return "Campaign"
}

func (t scoreTab) gameID() string {
	if t == tabEndless {
		return "ecomatch_endless"
	}
	return "ecomatch"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/right", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/left", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows per-level campaign progress and the endless
// leaderboard.
type ScoreboardModel struct {
	store     *storage.Store
	tab       scoreTab
	levels    []levelEntry         // Campaign tab
	best      int                  // Best campaign run
	scores    []storage.ScoreEntry // Endless tab
	stats     *storage.GameStats   // Endless tab
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model on the campaign tab.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// load reads the current tab from the store and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.levels, m.best = nil, 0
	m.scores, m.stats = nil, nil

	if m.store != nil {
		switch m.tab {
		case tabCampaign:
			m.levels = loadLevelEntries(ecomatch.LoadConfig(), m.store)
			if best, err := m.store.HighScore(m.tab.gameID()); err == nil {
				m.best = best
			}
		case tabEndless:
			if scores, err := m.store.TopScores(m.tab.gameID(), maxScores); err == nil {
				m.scores = scores
			}
			if stats, err := m.store.GetGameStats(m.tab.gameID()); err == nil {
				m.stats = stats
			}
		}
	}

	m.table = m.createTable()
}

// createTable builds the table for the current tab. The campaign level
// name column is as wide as the longest name the screen allows.
func (m *ScoreboardModel) createTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.tab {
	case tabCampaign:
		nameW := minNameWidth
		for _, e := range m.levels {
			nameW = max(nameW, runewidth.StringWidth(e.level.Name))
		}
		nameW = max(min(nameW, m.width-fixedColWidth-6), minNameWidth)
		columns = []table.Column{
			{Title: "#", Width: 3},
			{Title: "Level", Width: nameW},
			{Title: "Best", Width: 8},
			{Title: "Cleared", Width: len(dateFormat)},
		}
		rows = m.levelRows()

	case tabEndless:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: len(dateFormat)},
		}
		rows = m.scoreRows()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, tabs, footer and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) levelRows() []table.Row {
	rows := make([]table.Row, len(m.levels))
	for i, e := range m.levels {
		best, cleared := "-", "locked"
		switch {
		case e.cleared:
			best = fmt.Sprintf("%d", e.bestScore)
			cleared = "yes"
			if !e.clearedAt.IsZero() {
				cleared = e.clearedAt.Format(dateFormat)
			}
		case !e.locked:
			cleared = "open"
		}
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), e.level.Name, best, cleared}
	}
	return rows
}

func (m *ScoreboardModel) scoreRows() []table.Row {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format(dateFormat),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		return m, nil
	}

	// Up/down and paging scroll the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if footer := m.footer(); footer != "" {
		b.WriteString(centerText(footer, m.width))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the mode tabs with the active one highlighted.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for t := range tabCount {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.title())
		} else {
			tabs[t] = tabStyle.Render(t.title())
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.levels) == 0 && len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No biomes restored yet.\nClear a level to record your progress!"
		if m.tab == tabEndless {
			msg = "No endless runs recorded yet.\nPlay one to set a high score!"
		}
		return emptyStyle.Render(msg)
	}

	return m.table.View()
}

// footer summarizes the current tab.
func (m ScoreboardModel) footer() string {
	switch m.tab {
	case tabCampaign:
		if len(m.levels) == 0 {
			return ""
		}
		restored := 0
		for _, e := range m.levels {
			if e.cleared {
				restored++
			}
		}
		return fmt.Sprintf("Restored: %d/%d  Best run: %d", restored, len(m.levels), m.best)

	case tabEndless:
		if m.stats == nil || m.stats.GamesCount == 0 {
			return ""
		}
		footer := fmt.Sprintf("Best: %d  Runs: %d  Average: %.0f",
			m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore)
		if !m.stats.LastPlayed.IsZero() {
			footer += "  Last: " + m.stats.LastPlayed.Format(dateFormat)
		}
		return footer
	}
	return ""
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
