package match3

import (
	"math/rand"

	"github.com/cristiparaschiv/kids-arcade/internal/core"
	"github.com/cristiparaschiv/kids-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeFreePlay Mode = "freeplay"
)

// Pacing constants, in simulation ticks at 60 fps.
const (
	previewTicks    = 20  // How long an illegal swap is shown before revert
	clearTicks      = 15  // How long matched tiles stay highlighted
	shuffleTicks    = 60  // How long the reshuffle banner is shown
	levelClearDelay = 120 // Level-cleared banner duration
	freePlayMoves   = 50  // Move budget in free play mode
)

// phase tracks what the board is currently doing between player inputs.
type phase int

const (
	phaseIdle    phase = iota // Waiting for input
	phasePreview              // Showing an illegal swap before reverting it
	phaseClear                // Matched tiles highlighted, gravity pending
	phaseFall                 // Gravity applied, checking for chained matches
)

// Game drives the match-three board: it owns the current board, sequences
// swap attempts into cascades, paces the steps for animation, and decides
// level progression. All board math is delegated to the Engine.
type Game struct {
	mode   Mode
	rng    *rand.Rand
	engine *Engine
	tick   uint64

	score  int
	board  Board
	cursor Position
	// selected is the picked-up tile awaiting a swap target; nil when
	// nothing is selected.
	selected *Position

	levelIndex    int
	currentTarget int
	movesLeft     int

	// Cascade state
	phase          phase
	phaseTicks     int
	combo          int
	pendingMatches []Match
	revertA        Position
	revertB        Position

	// Banner timers
	shuffleBanner int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// Package-level variables for config
var (
	selectedStartLevel int
	configPath         string
)

// SetStartLevel sets the starting level (1-based). 0 means start from the
// beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// SetConfigPath sets a custom YAML config path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new campaign mode match-three game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewFreePlay creates a new free play match-three game (fixed move budget,
// no score target).
func NewFreePlay() *Game {
	return &Game{
		mode: ModeFreePlay,
	}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_free", func() registry.Game {
		return NewFreePlay()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeFreePlay {
		return "match3_free"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeFreePlay {
		return "Fruit Match (Free Play)"
	}
	return "Fruit Match"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(loadRules(configPath), g.rng)
	g.tick = 0
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.phase = phaseIdle
	g.phaseTicks = 0
	g.combo = 0
	g.pendingMatches = nil
	g.selected = nil
	g.shuffleBanner = 0
	g.levelClearTicks = 0

	if g.mode == ModeCampaign && selectedStartLevel > 0 && selectedStartLevel <= LevelCount() {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	} else {
		g.levelIndex = 0
	}
	g.loadLevel()

	g.board = g.newPlayableBoard()
	g.cursor = Position{Row: g.engine.Rules().Rows / 2, Col: g.engine.Rules().Cols / 2}

	g.checkScreenSize()
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.mode == ModeFreePlay {
		g.currentTarget = 0
		g.movesLeft = freePlayMoves
		return
	}

	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}

	g.currentTarget = level.Target
	g.movesLeft = level.Moves
}

// newPlayableBoard generates boards until one has at least one valid move.
func (g *Game) newPlayableBoard() Board {
	for {
		b := g.engine.NewBoard()
		if g.engine.HasValidMoves(b) {
			return b
		}
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	r := g.engine.Rules()
	minW := r.Cols*cellWidth + 1 + 4
	minH := r.Rows*cellHeight + 1 + 5
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.shuffleBanner > 0 {
		g.shuffleBanner--
	}

	// Level cleared animation, then advance
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case phaseIdle:
		g.handleInput(in)
	case phasePreview:
		g.phaseTicks++
		if g.phaseTicks >= previewTicks {
			// Swap back; the revert is itself a mechanical swap
			g.board = g.engine.SwapTiles(g.board, g.revertA, g.revertB)
			g.phase = phaseIdle
			g.phaseTicks = 0
		}
	case phaseClear:
		g.phaseTicks++
		if g.phaseTicks >= clearTicks {
			g.board = g.engine.ApplyGravity(g.board)
			g.phase = phaseFall
			g.phaseTicks = 0
		}
	case phaseFall:
		g.stepCascade()
	}

	return core.StepResult{State: g.State()}
}

// handleInput processes cursor movement and tile selection.
func (g *Game) handleInput(in core.InputFrame) {
	r := g.engine.Rules()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, r.Rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, r.Rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, r.Cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, r.Cols-1)
	}

	if !in.Has(core.ActionSelect) {
		return
	}

	switch {
	case g.selected == nil:
		sel := g.cursor
		g.selected = &sel
	case *g.selected == g.cursor:
		g.selected = nil
	case g.selected.AdjacentTo(g.cursor):
		g.attemptSwap(*g.selected, g.cursor)
		g.selected = nil
	default:
		// Too far away: move the selection instead
		sel := g.cursor
		g.selected = &sel
	}
}

// attemptSwap applies the caller-facing legality policy: the swap must be
// between adjacent positions and must produce at least one match. Illegal
// swaps are shown briefly and reverted without consuming a move.
func (g *Game) attemptSwap(a, b Position) {
	swapped := g.engine.SwapTiles(g.board, a, b)
	matches := g.engine.FindAllMatches(swapped)

	g.board = swapped

	if len(matches) == 0 {
		g.revertA = a
		g.revertB = b
		g.phase = phasePreview
		g.phaseTicks = 0
		return
	}

	g.movesLeft--
	g.combo = 1
	g.startClear(matches)
}

// startClear scores the matches at the current combo level and marks them
// for removal.
func (g *Game) startClear(matches []Match) {
	g.score += g.engine.CalculateScore(matches, g.combo)
	g.pendingMatches = matches
	g.board = g.engine.MarkMatches(g.board, matches)
	g.phase = phaseClear
	g.phaseTicks = 0
}

// stepCascade runs after gravity: chained matches continue the cascade at a
// higher combo level, otherwise the board settles and end-of-move rules
// apply.
func (g *Game) stepCascade() {
	matches := g.engine.FindAllMatches(g.board)
	if len(matches) > 0 {
		g.combo++
		g.startClear(matches)
		return
	}

	// Cascade finished
	g.phase = phaseIdle
	g.phaseTicks = 0
	g.pendingMatches = nil

	if g.mode == ModeCampaign && g.score >= g.currentTarget {
		g.levelCleared = true
		g.levelClearTicks = 0
		return
	}

	if g.movesLeft <= 0 {
		g.gameOver = true
		return
	}

	if !g.engine.HasValidMoves(g.board) {
		g.board = g.newPlayableBoard()
		g.shuffleBanner = shuffleTicks
	}
}

// advanceLevel moves to the next level with a fresh board.
// Score carries over; the move budget resets.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.board = g.newPlayableBoard()
	g.selected = nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
