package match3

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateCascading    GameStateType = "cascading"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "freeplay"
	Level     int    // Current level (1-indexed for display), 0 for free play
	Target    int    // Current score target
	MovesLeft int
	Score     int
	Combo     int
	Cursor    Position
	Types     [][]TileType // Tile types by (row, col)
	IDs       [][]int      // Tile IDs by (row, col)
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.phase != phaseIdle:
		state = StateCascading
	}

	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	types := make([][]TileType, g.board.Rows)
	ids := make([][]int, g.board.Rows)
	for r := 0; r < g.board.Rows; r++ {
		types[r] = make([]TileType, g.board.Cols)
		ids[r] = make([]int, g.board.Cols)
		for c := 0; c < g.board.Cols; c++ {
			types[r][c] = g.board.Tiles[r][c].Type
			ids[r][c] = g.board.Tiles[r][c].ID
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     level,
		Target:    g.currentTarget,
		MovesLeft: g.movesLeft,
		Score:     g.score,
		Combo:     g.combo,
		Cursor:    g.cursor,
		Types:     types,
		IDs:       ids,
		State:     state,
	}
}
