package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/games/ecomatch"
	"github.com/vovakirdan/ecomatch/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("a"), core.ActionLeft, false},
		{runeKey("l"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("h"), core.ActionHint, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		assert.Equal(t, tt.action, action, "key %q", tt.msg.String())
		assert.Equal(t, tt.quit, quit, "key %q", tt.msg.String())
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey("h"), &frame))
	assert.True(t, frame.Has(core.ActionHint))
	assert.True(t, km.MapKeyToFrame(runeKey("q"), &frame))
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey("k")))
	assert.Equal(t, MenuActionLeft, km.MapKeyToMenuAction(runeKey("h")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(runeKey("b")))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey("z")))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	styled := menuTitleStyle.Render("abcd")
	assert.True(t, strings.HasPrefix(centerText(styled, 10), "   "))
}

func TestLoadLevelEntriesWithoutStore(t *testing.T) {
	cfg := config.DefaultEcoMatchConfig()
	entries := loadLevelEntries(cfg, nil)

	require.Len(t, entries, len(cfg.Levels))
	for _, e := range entries {
		assert.False(t, e.locked)
		assert.False(t, e.cleared)
	}
}

func TestLoadLevelEntriesLocksUnreachedLevels(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.MarkLevelCleared(1, "Seedling Grove", 620))

	cfg := config.DefaultEcoMatchConfig()
	entries := loadLevelEntries(cfg, store)

	require.GreaterOrEqual(t, len(entries), 3)
	assert.True(t, entries[0].cleared)
	assert.Equal(t, 620, entries[0].bestScore)
	assert.False(t, entries[1].locked, "next level is playable")
	assert.False(t, entries[1].cleared)
	assert.True(t, entries[2].locked)
}

func TestLoadLevelEntriesUnlocksThroughHighestCleared(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.MarkLevelCleared(3, "Coral Reef", 1800))

	cfg := config.DefaultEcoMatchConfig()
	entries := loadLevelEntries(cfg, store)

	require.GreaterOrEqual(t, len(entries), 5)
	assert.False(t, entries[0].cleared, "skipped levels stay uncleared")
	assert.True(t, entries[2].cleared)
	assert.False(t, entries[2].clearedAt.IsZero())
	assert.False(t, entries[3].locked, "level after the highest cleared one is playable")
	assert.True(t, entries[4].locked)
}

func TestMenuDifficultyCycles(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	assert.Equal(t, config.DifficultyNormal, m.Result().Difficulty)

	for range menuDifficulty {
		next, _ := m.Update(runeKey("s"))
		m = next.(MenuModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	assert.Equal(t, config.DifficultyHard, m.Result().Difficulty)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	assert.Equal(t, config.DifficultyEasy, m.Result().Difficulty)
}

func TestMenuSelectsCampaign(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	require.NotNil(t, cmd)

	r := m.Result()
	assert.False(t, r.Quit)
	assert.Equal(t, "ecomatch", r.GameID)
	assert.Equal(t, 0, r.Level)
}

func TestMenuLevelSelectRejectsLockedLevel(t *testing.T) {
	store := openTestStore(t)
	m := NewMenuModel(store, testRuntime())

	for range menuSelectLevel {
		next, _ := m.Update(runeKey("s"))
		m = next.(MenuModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	require.True(t, m.inLevelSelect)

	// Nothing cleared yet, so level 2 is locked
	next, _ = m.Update(runeKey("s"))
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.Nil(t, cmd)
	assert.False(t, m.selected)

	next, _ = m.Update(runeKey("w"))
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.True(t, m.selected)
	assert.Equal(t, 1, m.Result().Level)
}

func TestNewGameUsesModeAndLevel(t *testing.T) {
	cfg := testRuntime()

	g := NewGame("ecomatch", config.DifficultyEasy, 2, nil)
	g.Reset(cfg)
	assert.Equal(t, "ecomatch", g.ID())
	assert.Equal(t, 2, g.State().Level)

	endless := NewGame("ecomatch_endless", config.DifficultyNormal, 0, nil)
	endless.Reset(cfg)
	eg, ok := endless.(*ecomatch.Game)
	require.True(t, ok)
	assert.Equal(t, "endless", eg.Snapshot().Mode)
}

func TestModelBackToMenuAfterGameOver(t *testing.T) {
	m := NewModel(NewGame("ecomatch", config.DifficultyNormal, 0, nil), nil, testRuntime())
	m.Init()

	// Back while playing deselects and stays in the game
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.BackToMenu())

	m.gameState.GameOver = true
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.BackToMenu())
	assert.Empty(t, m.View())
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, testRuntime(), "tester")

	// Endless is the second entry
	next, _ := s.Update(runeKey("s"))
	s = next.(SessionModel)
	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	require.Equal(t, viewGame, s.view)
	require.NotNil(t, cmd)
	assert.Equal(t, "ecomatch_endless", s.game.game.ID())
	assert.Contains(t, s.View(), "Endless")

	// Finish the game and go back
	s.game.gameState.GameOver = true
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	assert.Equal(t, viewMenu, s.view)
	assert.False(t, s.quitting)

	// Scoreboard and back
	for range menuScores {
		next, _ = s.Update(runeKey("s"))
		s = next.(SessionModel)
	}
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	require.Equal(t, viewScores, s.view)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	assert.Equal(t, viewMenu, s.view)

	_, cmd = s.Update(runeKey("q"))
	assert.NotNil(t, cmd)
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.MarkLevelCleared(1, "Seedling Grove", 620))
	_, err := store.SaveScore("ecomatch", 900, 2)
	require.NoError(t, err)
	_, err = store.SaveScore("ecomatch_endless", 1500, 0)
	require.NoError(t, err)
	_, err = store.SaveScore("ecomatch_endless", 500, 0)
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30)
	require.Equal(t, tabCampaign, m.tab)
	levels := len(config.DefaultEcoMatchConfig().Levels)
	require.Len(t, m.levels, levels)
	assert.Equal(t, 900, m.best)

	view := m.View()
	assert.Contains(t, view, "Seedling Grove")
	assert.Contains(t, view, "620")
	assert.Contains(t, view, "open")
	assert.Contains(t, view, "locked")
	assert.Contains(t, view, fmt.Sprintf("Restored: 1/%d  Best run: 900", levels))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	require.Equal(t, tabEndless, m.tab)
	require.Len(t, m.scores, 2)
	assert.Equal(t, 1500, m.scores[0].Score)
	assert.Nil(t, m.levels)
	view = m.View()
	assert.Contains(t, view, "1500")
	assert.Contains(t, view, "Best: 1500  Runs: 2  Average: 1000")

	// Two tabs wrap in both directions
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	assert.Equal(t, tabCampaign, m.tab)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	assert.Equal(t, tabEndless, m.tab)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	assert.NotNil(t, cmd)
	assert.True(t, m.IsGoingBack())
	assert.False(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, m.View(), "No biomes restored yet")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Contains(t, m.View(), "No endless runs recorded yet")

	next, _ = m.Update(runeKey("q"))
	m = next.(ScoreboardModel)
	assert.True(t, m.IsQuitting())
}

func TestScoreboardSizesLevelNameColumn(t *testing.T) {
	long := "Longleaf Pine Savanna Corridor"
	m := ScoreboardModel{
		width:  100,
		height: 30,
		levels: []levelEntry{{level: config.LevelConfig{Name: "Grove"}}, {level: config.LevelConfig{Name: long}}},
	}
	cols := m.createTable().Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, len(long), cols[1].Width)

	m.width = 40
	assert.Equal(t, minNameWidth, m.createTable().Columns()[1].Width, "narrow screens keep the minimum")

	m.levels = m.levels[:1]
	m.width = 100
	assert.Equal(t, minNameWidth, m.createTable().Columns()[1].Width, "short names keep the minimum")
}
