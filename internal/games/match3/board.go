// Package match3 implements a match-three puzzle game: swap adjacent fruit
// tiles to line up three or more of a kind, clear them, and chain cascades
// for combo points.
//
// The board engine in this file is pure and deterministic: every operation
// takes a board value and returns a new one, the input board is never
// mutated, and all randomness comes from the injected rand source. Pacing,
// animation and input handling live in game.go.
package match3

import (
	"math"
	"math/rand"

	"github.com/cristiparaschiv/kids-arcade/internal/core"
)

// TileType identifies the kind of fruit occupying a cell.
type TileType int

const (
	TileCherry TileType = iota
	TileBanana
	TileGrape
	TileApple
	TileBlueberry
	TileOrange
)

// Glyph returns the rune used to draw this tile type.
func (t TileType) Glyph() rune {
	switch t {
	case TileCherry:
		return '@'
	case TileBanana:
		return ')'
	case TileGrape:
		return '%'
	case TileApple:
		return 'O'
	case TileBlueberry:
		return 'o'
	case TileOrange:
		return '0'
	default:
		return '?'
	}
}

// Color returns the display color for this tile type.
func (t TileType) Color() core.Color {
	switch t {
	case TileCherry:
		return core.ColorBrightRed
	case TileBanana:
		return core.ColorBrightYellow
	case TileGrape:
		return core.ColorBrightMagenta
	case TileApple:
		return core.ColorBrightGreen
	case TileBlueberry:
		return core.ColorBrightBlue
	case TileOrange:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileCherry:
		return "cherry"
	case TileBanana:
		return "banana"
	case TileGrape:
		return "grape"
	case TileApple:
		return "apple"
	case TileBlueberry:
		return "blueberry"
	case TileOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Position is a (row, col) board coordinate.
type Position struct {
	Row, Col int
}

// AdjacentTo returns true if the two positions differ by exactly 1 in
// exactly one axis (4-directional, no diagonals).
func (p Position) AdjacentTo(o Position) bool {
	dr := core.Abs(p.Row - o.Row)
	dc := core.Abs(p.Col - o.Col)
	return dr+dc == 1
}

// Tile is the content of one board cell.
//
// ID is unique within a board and is reassigned whenever a tile's identity
// changes (spawn or resample); tiles that merely fall keep their ID. Row and
// Col always mirror the tile's position in the board grid. Matched marks the
// tile for removal by ApplyGravity; Spawned marks tiles filled in by the
// most recent gravity pass (a display hint only).
type Tile struct {
	ID      int
	Type    TileType
	Row     int
	Col     int
	Matched bool
	Spawned bool
}

// Match is a run of MinMatchSize or more same-typed tiles in a row or
// column. Horizontal and vertical runs through the same cell are reported
// as separate matches; callers needing the set of cleared cells must union
// the position sets.
type Match struct {
	Type      TileType
	Positions []Position
}

// Size returns the number of tiles in the match.
func (m Match) Size() int {
	return len(m.Positions)
}

// Board is a fixed-size grid of tiles. Boards are value-like: engine
// operations return fresh boards and never touch their input.
type Board struct {
	Rows  int
	Cols  int
	Tiles [][]Tile
}

// At returns the tile at the given position.
// Out-of-range positions are programmer errors and panic via bounds checks.
func (b Board) At(p Position) Tile {
	return b.Tiles[p.Row][p.Col]
}

// clone makes a deep copy of the board.
func (b Board) clone() Board {
	tiles := make([][]Tile, b.Rows)
	for r := range tiles {
		tiles[r] = make([]Tile, b.Cols)
		copy(tiles[r], b.Tiles[r])
	}
	return Board{Rows: b.Rows, Cols: b.Cols, Tiles: tiles}
}

// Rules holds the tunable board parameters.
type Rules struct {
	Rows            int
	Cols            int
	TileTypes       int     // number of distinct tile types in play (max 6)
	MinMatchSize    int     // minimum run length that counts as a match
	PointsPerTile   int     // base points per matched tile
	ComboMultiplier float64 // cascade bonus, applied as multiplier^(combo-1)
}

// DefaultRules returns the classic 8x8 six-fruit configuration.
func DefaultRules() Rules {
	return Rules{
		Rows:            8,
		Cols:            8,
		TileTypes:       6,
		MinMatchSize:    3,
		PointsPerTile:   10,
		ComboMultiplier: 1.5,
	}
}

// Engine generates and transforms boards under a fixed rule set.
// It owns the tile ID counter and the random source; it holds no board
// state of its own.
type Engine struct {
	rules  Rules
	rng    *rand.Rand
	nextID int
}

// NewEngine creates an engine with the given rules and random source.
func NewEngine(rules Rules, rng *rand.Rand) *Engine {
	return &Engine{
		rules: rules,
		rng:   rng,
	}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// newTile mints a tile with a fresh unique ID.
func (e *Engine) newTile(row, col int, t TileType) Tile {
	e.nextID++
	return Tile{ID: e.nextID, Type: t, Row: row, Col: col}
}

// randomType picks a uniformly random tile type.
func (e *Engine) randomType() TileType {
	return TileType(e.rng.Intn(e.rules.TileTypes))
}

// randomTypeExcept picks a uniformly random tile type other than exclude.
func (e *Engine) randomTypeExcept(exclude TileType) TileType {
	t := TileType(e.rng.Intn(e.rules.TileTypes - 1))
	if t >= exclude {
		t++
	}
	return t
}

// NewBoard produces a fresh board of random tiles with no pre-existing
// matches: matched cells are resampled to a different type until the
// detector comes back empty. The loop is uncapped; with six types on an
// 8x8 grid each pass strictly shrinks the match set in expectation.
func (e *Engine) NewBoard() Board {
	tiles := make([][]Tile, e.rules.Rows)
	for r := range tiles {
		tiles[r] = make([]Tile, e.rules.Cols)
		for c := range tiles[r] {
			tiles[r][c] = e.newTile(r, c, e.randomType())
		}
	}
	board := Board{Rows: e.rules.Rows, Cols: e.rules.Cols, Tiles: tiles}

	for {
		matches := e.FindAllMatches(board)
		if len(matches) == 0 {
			return board
		}
		for _, p := range matchedPositions(matches) {
			old := board.Tiles[p.Row][p.Col]
			board.Tiles[p.Row][p.Col] = e.newTile(p.Row, p.Col, e.randomTypeExcept(old.Type))
		}
	}
}

// FindAllMatches scans every row and column for runs of MinMatchSize or
// more same-typed tiles. Pure function of the board.
func (e *Engine) FindAllMatches(b Board) []Match {
	var matches []Match

	// Horizontal runs
	for r := 0; r < b.Rows; r++ {
		runStart := 0
		for c := 1; c <= b.Cols; c++ {
			if c < b.Cols && b.Tiles[r][c].Type == b.Tiles[r][runStart].Type {
				continue
			}
			if c-runStart >= e.rules.MinMatchSize {
				m := Match{Type: b.Tiles[r][runStart].Type}
				for i := runStart; i < c; i++ {
					m.Positions = append(m.Positions, Position{Row: r, Col: i})
				}
				matches = append(matches, m)
			}
			runStart = c
		}
	}

	// Vertical runs
	for c := 0; c < b.Cols; c++ {
		runStart := 0
		for r := 1; r <= b.Rows; r++ {
			if r < b.Rows && b.Tiles[r][c].Type == b.Tiles[runStart][c].Type {
				continue
			}
			if r-runStart >= e.rules.MinMatchSize {
				m := Match{Type: b.Tiles[runStart][c].Type}
				for i := runStart; i < r; i++ {
					m.Positions = append(m.Positions, Position{Row: i, Col: c})
				}
				matches = append(matches, m)
			}
			runStart = r
		}
	}

	return matches
}

// matchedPositions returns the deduplicated union of all matches' cells.
func matchedPositions(matches []Match) []Position {
	seen := make(map[Position]bool)
	var union []Position
	for _, m := range matches {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				union = append(union, p)
			}
		}
	}
	return union
}

// SwapTiles exchanges the tiles at the two positions, updating each moved
// tile's coordinates while preserving its ID and type. The swap is
// unconditional; legality (adjacency plus a resulting match) is the
// caller's policy. Swapping twice restores the original board.
func (e *Engine) SwapTiles(b Board, p1, p2 Position) Board {
	next := b.clone()

	t1 := next.Tiles[p1.Row][p1.Col]
	t2 := next.Tiles[p2.Row][p2.Col]

	t1.Row, t1.Col = p2.Row, p2.Col
	t2.Row, t2.Col = p1.Row, p1.Col

	next.Tiles[p1.Row][p1.Col] = t2
	next.Tiles[p2.Row][p2.Col] = t1

	return next
}

// MarkMatches flags every cell belonging to any of the given matches.
// The marked board is the input to ApplyGravity's clear step.
func (e *Engine) MarkMatches(b Board, matches []Match) Board {
	next := b.clone()
	for _, p := range matchedPositions(matches) {
		next.Tiles[p.Row][p.Col].Matched = true
	}
	return next
}

// ApplyGravity removes marked tiles, compacts each column downward
// preserving the survivors' relative order, types and IDs, and fills the
// vacated top cells with freshly minted random tiles flagged Spawned.
// Spawned flags from earlier passes are cleared on surviving tiles.
func (e *Engine) ApplyGravity(b Board) Board {
	next := b.clone()

	for c := 0; c < next.Cols; c++ {
		// Collect survivors bottom-up
		var kept []Tile
		for r := next.Rows - 1; r >= 0; r-- {
			if !next.Tiles[r][c].Matched {
				kept = append(kept, next.Tiles[r][c])
			}
		}

		// Place survivors at the bottom, new tiles above
		for i, r := 0, next.Rows-1; r >= 0; i, r = i+1, r-1 {
			if i < len(kept) {
				t := kept[i]
				t.Row, t.Col = r, c
				t.Spawned = false
				next.Tiles[r][c] = t
			} else {
				t := e.newTile(r, c, e.randomType())
				t.Spawned = true
				next.Tiles[r][c] = t
			}
		}
	}

	return next
}

// CalculateScore converts a cascade step's matches and combo level into
// points: sum of matchSize x PointsPerTile, multiplied by
// ComboMultiplier^(comboLevel-1) for combos past the first, floored.
// Cells shared by a horizontal and a vertical match count toward both.
func (e *Engine) CalculateScore(matches []Match, comboLevel int) int {
	base := 0
	for _, m := range matches {
		base += m.Size() * e.rules.PointsPerTile
	}
	if comboLevel > 1 {
		bonus := math.Pow(e.rules.ComboMultiplier, float64(comboLevel-1))
		return int(math.Floor(float64(base) * bonus))
	}
	return base
}

// HasValidMoves reports whether at least one adjacent swap would create a
// match. Trying swap-right and swap-down per cell covers every adjacent
// pair exactly once; short-circuits on the first success.
func (e *Engine) HasValidMoves(b Board) bool {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			p := Position{Row: r, Col: c}
			if c+1 < b.Cols {
				swapped := e.SwapTiles(b, p, Position{Row: r, Col: c + 1})
				if len(e.FindAllMatches(swapped)) > 0 {
					return true
				}
			}
			if r+1 < b.Rows {
				swapped := e.SwapTiles(b, p, Position{Row: r + 1, Col: c})
				if len(e.FindAllMatches(swapped)) > 0 {
					return true
				}
			}
		}
	}
	return false
}
