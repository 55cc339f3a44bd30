package match3

import (
	"fmt"

	"github.com/cristiparaschiv/kids-arcade/internal/core"
)

const (
	cellWidth  = 4 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	r := g.engine.Rules()
	boardW := r.Cols*cellWidth + 1
	boardH := r.Rows*cellHeight + 1
	hudHeight := 3

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	hint := "Please resize terminal"
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderHUD draws the score, level and move counters.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	titleX := boardX + (boardW-len(title))/2
	dst.DrawText(titleX, 0, title)

	scoreStr := fmt.Sprintf("Score: %d", g.score)
	dst.DrawText(boardX, 1, scoreStr)

	var infoStr string
	if g.mode == ModeCampaign {
		infoStr = fmt.Sprintf("Level %d/%d  Goal: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	} else {
		infoStr = "Free Play"
	}
	infoX := boardX + boardW - len(infoStr)
	if infoX < boardX {
		infoX = boardX
	}
	dst.DrawText(infoX, 1, infoStr)

	movesStr := fmt.Sprintf("Moves: %d", g.movesLeft)
	dst.DrawText(boardX, 2, movesStr)

	if g.combo > 1 && g.phase != phaseIdle {
		comboStr := fmt.Sprintf("Combo x%d!", g.combo)
		comboX := boardX + boardW - len(comboStr)
		dst.DrawTextColored(comboX, 2, comboStr, core.ColorBrightYellow)
	}
}

// renderBoard draws the grid with tiles, cursor and selection markers.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	r := g.engine.Rules()

	// Grid lines
	for y := 0; y <= r.Rows; y++ {
		for x := 0; x <= r.Cols; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == r.Cols:
				corner = '┐'
			case y == r.Rows && x == 0:
				corner = '└'
			case y == r.Rows && x == r.Cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == r.Rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == r.Cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < r.Cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < r.Rows {
				dst.SetColored(px, py+1, '│', core.ColorGray)
			}
		}
	}

	// Tiles
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			tile := g.board.Tiles[row][col]
			cx := boardX + col*cellWidth + 2 // Center of the cell
			cy := boardY + row*cellHeight + 1

			glyph := tile.Type.Glyph()
			color := tile.Type.Color()
			if tile.Matched {
				glyph = '*'
				color = core.ColorBrightWhite
			}
			dst.SetColored(cx, cy, glyph, color)

			pos := Position{Row: row, Col: col}
			switch {
			case g.phase == phaseIdle && pos == g.cursor:
				dst.SetColored(cx-1, cy, '[', core.ColorBrightWhite)
				dst.SetColored(cx+1, cy, ']', core.ColorBrightWhite)
			case g.selected != nil && pos == *g.selected:
				dst.SetColored(cx-1, cy, '(', core.ColorBrightCyan)
				dst.SetColored(cx+1, cy, ')', core.ColorBrightCyan)
			}
		}
	}
}

// renderOverlays draws banners on top of the board.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerY := boardY + boardH/2

	drawBanner := func(lines ...string) {
		for i, line := range lines {
			x := boardX + (boardW-len(line))/2
			dst.DrawText(x, centerY-len(lines)/2+i, line)
		}
	}

	switch {
	case g.won:
		drawBanner("*** YOU WIN! ***", fmt.Sprintf("Final score: %d", g.score), "Press R to play again")
	case g.gameOver:
		drawBanner("GAME OVER", "Out of moves!", "Press R to restart")
	case g.levelCleared:
		level := GetLevel(g.levelIndex)
		name := ""
		if level != nil {
			name = level.Name
		}
		drawBanner(fmt.Sprintf("Level clear: %s", name), "Get ready...")
	case g.paused:
		drawBanner("PAUSED", "Press P to resume")
	case g.shuffleBanner > 0:
		drawBanner("No moves left - shuffling!")
	}

	// Help line under the board
	help := "arrows: move  space: select/swap  p: pause  q: quit"
	helpX := boardX + (boardW-len(help))/2
	dst.DrawTextColored(helpX, boardY+boardH+1, help, core.ColorGray)
}
