package match3

import (
	"testing"

	"github.com/cristiparaschiv/kids-arcade/internal/core"
)

func testRuntimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestResetDeterministic(t *testing.T) {
	g1 := New()
	g1.Reset(testRuntimeConfig(12345))

	g2 := New()
	g2.Reset(testRuntimeConfig(12345))

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	for r := range s1.Types {
		for c := range s1.Types[r] {
			if s1.Types[r][c] != s2.Types[r][c] || s1.IDs[r][c] != s2.IDs[r][c] {
				t.Fatalf("same seed should produce the same board, diverges at (%d,%d)", r, c)
			}
		}
	}
}

func TestResetStartsPlayable(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(42))

	if len(g.engine.FindAllMatches(g.board)) != 0 {
		t.Error("initial board must have no matches")
	}
	if !g.engine.HasValidMoves(g.board) {
		t.Error("initial board must have at least one valid move")
	}
	if g.movesLeft != Levels[0].Moves {
		t.Errorf("movesLeft = %d, expected %d", g.movesLeft, Levels[0].Moves)
	}
	if g.currentTarget != Levels[0].Target {
		t.Errorf("target = %d, expected %d", g.currentTarget, Levels[0].Target)
	}
}

func TestFreePlayHasNoTarget(t *testing.T) {
	g := NewFreePlay()
	g.Reset(testRuntimeConfig(42))

	if g.currentTarget != 0 {
		t.Errorf("free play target = %d, expected 0", g.currentTarget)
	}
	if g.movesLeft != freePlayMoves {
		t.Errorf("free play moves = %d, expected %d", g.movesLeft, freePlayMoves)
	}
}

func TestCursorMovement(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.cursor = Position{Row: 0, Col: 0}

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	if g.cursor != (Position{Row: 0, Col: 1}) {
		t.Errorf("cursor = %v, expected (0,1)", g.cursor)
	}

	// Clamped at the edges
	g.cursor = Position{Row: 0, Col: 0}
	in = core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in)
	if g.cursor != (Position{Row: 0, Col: 0}) {
		t.Errorf("cursor should clamp at the top edge, got %v", g.cursor)
	}
}

// plantedBoard returns a board with exactly one legal move: swapping
// (3,5) up to (2,5) completes a blueberry run on row 2.
func plantedBoard() Board {
	types := checkerboard()
	types[2][3] = TileBlueberry
	types[2][4] = TileBlueberry
	types[3][5] = TileBlueberry
	return boardFromTypes(types)
}

func TestIllegalSwapRevertsWithoutConsumingMove(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.board = boardFromTypes(checkerboard())
	movesBefore := g.movesLeft
	before := g.board.clone()

	// Swapping two checkerboard neighbors never creates a match.
	g.attemptSwap(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 1})

	if g.phase != phasePreview {
		t.Fatalf("phase = %v, expected preview", g.phase)
	}
	if boardsEqual(g.board, before) {
		t.Error("swap preview should show the exchanged board")
	}

	// Run the preview out; the board must revert.
	for i := 0; i < previewTicks+1; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.phase != phaseIdle {
		t.Fatalf("phase = %v, expected idle after revert", g.phase)
	}
	if !boardsEqual(g.board, before) {
		t.Error("board should revert to its pre-swap state")
	}
	if g.movesLeft != movesBefore {
		t.Error("illegal swap must not consume a move")
	}
}

func TestLegalSwapScoresAndCascades(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.board = plantedBoard()
	movesBefore := g.movesLeft

	g.attemptSwap(Position{Row: 3, Col: 5}, Position{Row: 2, Col: 5})

	if g.phase != phaseClear {
		t.Fatalf("phase = %v, expected clear", g.phase)
	}
	if g.movesLeft != movesBefore-1 {
		t.Error("legal swap should consume exactly one move")
	}
	if g.score != 30 {
		t.Errorf("score = %d, expected 30 for a 3-match at combo 1", g.score)
	}

	// The marked tiles should be flagged for the clear animation.
	marked := 0
	for r := 0; r < g.board.Rows; r++ {
		for c := 0; c < g.board.Cols; c++ {
			if g.board.Tiles[r][c].Matched {
				marked++
			}
		}
	}
	if marked != 3 {
		t.Errorf("marked tiles = %d, expected 3", marked)
	}

	// Run the cascade to completion; refills may chain, but the board
	// must settle.
	for i := 0; i < 10000 && g.phase != phaseIdle; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.phase != phaseIdle {
		t.Fatal("cascade did not settle")
	}
	if len(g.engine.FindAllMatches(g.board)) != 0 {
		t.Error("settled board must have no matches")
	}
	if g.score < 30 {
		t.Errorf("score = %d, expected at least 30", g.score)
	}
}

func TestSelectionFlow(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.board = boardFromTypes(checkerboard())
	g.cursor = Position{Row: 4, Col: 4}

	// First select picks up the tile.
	in := core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	if g.selected == nil || *g.selected != (Position{Row: 4, Col: 4}) {
		t.Fatal("select should pick up the cursor tile")
	}

	// Selecting the same tile drops it.
	in = core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	if g.selected != nil {
		t.Error("selecting the same tile should deselect")
	}

	// Selecting a far-away tile moves the selection.
	in = core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	g.cursor = Position{Row: 0, Col: 0}
	in = core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	if g.selected == nil || *g.selected != (Position{Row: 0, Col: 0}) {
		t.Error("selecting a non-adjacent tile should move the selection")
	}
}

func TestGameOverWhenMovesExhausted(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.board = plantedBoard()
	g.movesLeft = 1
	g.currentTarget = 1 << 30 // Unreachable

	g.attemptSwap(Position{Row: 3, Col: 5}, Position{Row: 2, Col: 5})
	for i := 0; i < 10000 && !g.gameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.gameOver {
		t.Error("exhausting the move budget should end the game")
	}
	if !g.State().GameOver {
		t.Error("State() should report game over")
	}
}

func TestLevelClearedOnTarget(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.board = plantedBoard()
	g.currentTarget = 10 // A single 3-match clears it

	g.attemptSwap(Position{Row: 3, Col: 5}, Position{Row: 2, Col: 5})
	for i := 0; i < 10000 && !g.levelCleared; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.levelCleared {
		t.Fatal("reaching the target should clear the level")
	}

	// Run out the banner; the game should advance to level 2 with a
	// fresh move budget.
	for i := 0; i < levelClearDelay+1; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.levelIndex != 1 {
		t.Errorf("levelIndex = %d, expected 1", g.levelIndex)
	}
	if g.movesLeft != Levels[1].Moves {
		t.Errorf("movesLeft = %d, expected %d", g.movesLeft, Levels[1].Moves)
	}
}

func TestReshuffleWhenNoMoves(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))

	// A settled board with no valid moves must be replaced by a playable
	// one without touching score or moves.
	g.board = boardFromTypes(checkerboard())
	g.score = 123
	g.movesLeft = 5
	g.phase = phaseFall

	g.Step(core.NewInputFrame())

	if !g.engine.HasValidMoves(g.board) {
		t.Error("reshuffle should produce a board with valid moves")
	}
	if g.score != 123 || g.movesLeft != 5 {
		t.Error("reshuffle must not change score or move count")
	}
	if g.shuffleBanner == 0 {
		t.Error("reshuffle should raise the shuffle banner")
	}
}

func TestPauseTogglesAndBlocksInput(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(1))
	g.cursor = Position{Row: 4, Col: 4}

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.paused {
		t.Fatal("pause action should pause the game")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	if g.cursor != (Position{Row: 4, Col: 4}) {
		t.Error("input should be ignored while paused")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if g.paused {
		t.Error("pause action should unpause")
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig(42))

	snap := g.Snapshot()
	if snap.Mode != "campaign" {
		t.Errorf("Snapshot Mode = %s, expected campaign", snap.Mode)
	}
	if snap.Level != 1 {
		t.Errorf("Snapshot Level = %d, expected 1", snap.Level)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, expected playing", snap.State)
	}
	if len(snap.Types) != g.board.Rows || len(snap.Types[0]) != g.board.Cols {
		t.Error("Snapshot grid dimensions should match the board")
	}
}
