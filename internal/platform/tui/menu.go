package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/games/ecomatch"
	"github.com/vovakirdan/ecomatch/internal/storage"
)

// Main menu entries.
const (
	menuCampaign = iota
	menuEndless
	menuSelectLevel
	menuDifficulty
	menuScores
	menuQuit
	menuCount
)

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// levelEntry is one row of the level select list.
type levelEntry struct {
	level     config.LevelConfig
	bestScore int
	clearedAt time.Time
	cleared   bool
	locked    bool
}

// MenuModel is the Bubble Tea model for the EcoMatch main menu and level select.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	preset        int // Index into presets
	levels        []levelEntry
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	quitting      bool
	selected      bool
	result        MenuResult
}

// NewMenuModel creates a new menu model. Levels come from the active
// configuration; cleared levels and locks come from the store when present.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		preset:    1,
		levels:    loadLevelEntries(ecomatch.LoadConfig(), store),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// loadLevelEntries merges level definitions with stored progress. Levels
// after the first uncleared one are locked. Without a store nothing is locked.
func loadLevelEntries(cfg config.EcoMatchConfig, store *storage.Store) []levelEntry {
	entries := make([]levelEntry, len(cfg.Levels))
	for i, l := range cfg.Levels {
		entries[i] = levelEntry{level: l}
	}
	if store == nil {
		return entries
	}

	highest, err := store.HighestClearedLevel()
	if err != nil {
		return entries
	}
	records, err := store.LevelProgress()
	if err != nil {
		return entries
	}
	for _, r := range records {
		if r.Level >= 1 && r.Level <= len(entries) {
			entries[r.Level-1].cleared = true
			entries[r.Level-1].bestScore = r.BestScore
			entries[r.Level-1].clearedAt = r.ClearedAt
		}
	}
	for i := range entries {
		entries[i].locked = i > highest
	}
	return entries
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleMainKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < menuCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == menuDifficulty {
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		}
	case MenuActionRight:
		if m.cursor == menuDifficulty {
			m.preset = (m.preset + 1) % len(presets)
		}
	case MenuActionSelect:
		switch m.cursor {
		case menuCampaign:
			return m.choose("ecomatch", 0)
		case menuEndless:
			return m.choose("ecomatch_endless", 0)
		case menuSelectLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case menuDifficulty:
			m.preset = (m.preset + 1) % len(presets)
		case menuScores:
			m.selected = true
			m.result.WantsScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	case MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if !m.levels[m.levelCursor].locked {
			return m.choose("ecomatch", m.levelCursor+1) // 1-indexed
		}
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m MenuModel) choose(gameID string, level int) (tea.Model, tea.Cmd) {
	m.selected = true
	m.result.GameID = gameID
	m.result.Level = level
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("E C O M A T C H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Match tiles, restore the planet", m.width))
	b.WriteString("\n\n")

	items := []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		"Endless Mode",
		"Select Level...",
		fmt.Sprintf("Difficulty: < %s >", presets[m.preset]),
		"High Scores",
		"Quit",
	}

	for i, item := range items {
		line := "  " + item
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, e := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		status := ""
		switch {
		case e.cleared:
			status = fmt.Sprintf("  best %d", e.bestScore)
		case e.locked:
			status = "  locked"
		}

		name := runewidth.FillRight(truncate(e.level.Name, 16), 16)
		line := fmt.Sprintf("%s%2d. %s %-7s target %5d  moves %2d%s",
			cursor, i+1, name, e.level.Biome, e.level.TargetScore, e.level.MovesLimit, status)
		switch {
		case e.locked:
			line = menuLockedStyle.Render(line)
		case i == m.levelCursor:
			line = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in
// terminal cells without ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// truncate shortens text to fit width terminal cells.
func truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int // 1-based start level, 0 for the beginning
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result returns the menu outcome.
func (m MenuModel) Result() MenuResult {
	r := m.result
	r.Config = m.config
	r.Difficulty = presets[m.preset]
	r.Quit = m.quitting || !m.selected
	return r
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
