package ecomatch

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/match3"
)

const (
	cellWidth    = 3 // Each tile is drawn as a glyph between two markers
	hudHeight    = 4 // Three HUD lines and a gap
	footerHeight = 2 // Status line and gap
)

// tileColors maps tile types to display colors.
var tileColors = map[match3.TileType]core.Color{
	match3.Tree:       core.ColorGreen,
	match3.Solar:      core.ColorYellow,
	match3.Wind:       core.ColorCyan,
	match3.Recycle:    core.ColorBrightGreen,
	match3.Water:      core.ColorBlue,
	match3.Energy:     core.ColorOrange,
	match3.Coral:      core.ColorPink,
	match3.Cactus:     core.ColorBrown,
	match3.Glacier:    core.ColorBrightCyan,
	match3.Bamboo:     core.ColorBrightYellow,
	match3.Supernova:  core.ColorBrightMagenta,
	match3.Tsunami:    core.ColorBrightBlue,
	match3.Earthquake: core.ColorRed,
	match3.Meteor:     core.ColorBrightRed,
	match3.Phoenix:    core.ColorMagenta,
}

func boardWidth(size int) int {
	return size*cellWidth + 2
}

func boardHeight(size int) int {
	return size + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := core.NewRect((g.screenW-boardWidth(g.size))/2, hudHeight, boardWidth(g.size), boardHeight(g.size))

	g.renderHUD(dst)
	g.renderBoard(dst, board)
	g.renderStatus(dst, board.Bottom())
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and level info.
func (g *Game) renderHUD(dst *core.Screen) {
	title := "EcoMatch"
	if g.mode == ModeCampaign {
		lc := g.levelConfig()
		title = fmt.Sprintf("EcoMatch - %s", lc.Name)
		if lc.Biome != "" {
			title += fmt.Sprintf(" (%s)", lc.Biome)
		}
	} else {
		title = "EcoMatch - Endless"
	}
	dst.DrawTextCenteredColored(0, title, core.ColorBrightGreen)

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Score: %d  Target: %d/%d",
			g.levelIndex+1, len(g.cfg.Levels), g.score, g.levelScore, g.level.TargetScore)
	} else {
		info = fmt.Sprintf("Score: %d  Types: %d", g.score, len(g.level.TileTypes))
	}
	dst.DrawTextCentered(1, info)

	movesColor := core.ColorDefault
	if g.movesLeft <= 5 {
		movesColor = core.ColorBrightRed
	}
	moves := fmt.Sprintf("Moves: %d", g.movesLeft)
	if g.chain > 1 {
		moves += fmt.Sprintf("  Chain x%d", g.chain)
	}
	dst.DrawTextCenteredColored(2, moves, movesColor)
}

// renderBoard draws the framed grid with cursor, selection and hint markers.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	frameColor := core.ColorGray
	if g.phase == PhaseShuffling {
		frameColor = core.ColorYellow
	}
	dst.DrawBoxColored(frame, frameColor)

	matched := make(map[string]bool, len(g.matched))
	for _, t := range g.matched {
		matched[t.ID] = true
	}

	for _, t := range g.grid {
		x := frame.X + 1 + t.Col*cellWidth
		y := frame.Y + 1 + t.Row

		color, ok := tileColors[t.Type]
		if !ok {
			color = core.ColorWhite
		}
		if matched[t.ID] {
			color = core.ColorBrightWhite
		}

		left, right := g.markers(t)
		dst.SetColored(x, y, left, core.ColorWhite)
		dst.SetColored(x+1, y, t.Type.Glyph(), color)
		dst.SetColored(x+2, y, right, core.ColorWhite)
	}
}

// markers returns the runes drawn on either side of a tile.
func (g *Game) markers(t match3.Tile) (rune, rune) {
	switch {
	case t.Row == g.cursorRow && t.Col == g.cursorCol && g.phase == PhaseIdle:
		return '[', ']'
	case g.selected && t.Row == g.selRow && t.Col == g.selCol:
		return '<', '>'
	case g.hint != nil && (t.ID == g.hint.Tile1.ID || t.ID == g.hint.Tile2.ID):
		return '(', ')'
	}
	return ' ', ' '
}

// renderStatus draws the line below the board.
func (g *Game) renderStatus(dst *core.Screen, y int) {
	var msg string
	color := core.ColorDefault
	switch {
	case g.phase == PhaseShuffling:
		msg = "No moves left - shuffling"
		color = core.ColorYellow
	case g.phase == PhaseSwapBack:
		msg = "No match"
		color = core.ColorRed
	case g.phase == PhaseClearing && g.lastGain > 0:
		msg = fmt.Sprintf("+%d", g.lastGain)
		color = core.ColorBrightGreen
	case g.hint != nil && g.phase == PhaseIdle:
		msg = fmt.Sprintf("Hint: swap %s with %s (%d tiles)",
			g.hint.Tile1.ID, g.hint.Tile2.ID, g.hint.MatchCount)
		color = core.ColorCyan
	case len(g.unlocked) > 0:
		msg = "Power-ups:"
		for _, p := range g.unlocked {
			msg += fmt.Sprintf(" %c=%s", p.Glyph(), p)
		}
		color = core.ColorMagenta
	}
	if msg != "" {
		dst.DrawTextCenteredColored(y, msg, color)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		lines := []string{fmt.Sprintf("%s restored!", g.levelConfig().Name)}
		if g.unlockedNow != "" {
			lines = append(lines, fmt.Sprintf("Unlocked: %s %s", g.unlockedNow.Emoji(), g.unlockedNow))
		}
		if g.levelIndex >= len(g.cfg.Levels)-1 {
			lines = append(lines, "Final level complete!")
		} else {
			lines = append(lines, fmt.Sprintf("Next: %s", g.cfg.Levels[g.levelIndex+1].Name))
		}
		g.drawOverlay(dst, board, lines...)
		return
	}

	if g.won {
		g.drawOverlay(dst, board, "PLANET RESTORED!", fmt.Sprintf("Final score: %d", g.score), "Press R to restart")
		return
	}

	if g.gameOver {
		reason := "Out of moves"
		if g.movesLeft > 0 {
			reason = "No moves possible"
		}
		g.drawOverlay(dst, board, "GAME OVER", reason, fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// drawOverlay draws a text overlay centered on the screen width and the
// board height. Widths are measured in terminal cells so emoji lines stay
// inside the box; a box wider than the screen is pinned to the left edge.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.CenteredRect(g.screenW, board.H, boxW, boxH)
	box.Y += board.Y

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := box.X + (box.W-runewidth.StringWidth(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
