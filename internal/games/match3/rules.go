package match3

import (
	"github.com/cristiparaschiv/kids-arcade/internal/config"
	"github.com/cristiparaschiv/kids-arcade/internal/core"
)

// loadRules builds the engine rule set from YAML config, falling back to
// the defaults on error or missing fields.
func loadRules(path string) Rules {
	cfg, err := config.LoadMatch3(path)
	if err != nil {
		return DefaultRules()
	}
	return rulesFromConfig(cfg)
}

// rulesFromConfig maps a Match3Config onto Rules, ignoring unset fields
// and clamping values the renderer and glyph table can't handle.
func rulesFromConfig(cfg config.Match3Config) Rules {
	r := DefaultRules()

	if cfg.Board.Rows > 0 {
		r.Rows = core.Clamp(cfg.Board.Rows, 4, 12)
	}
	if cfg.Board.Cols > 0 {
		r.Cols = core.Clamp(cfg.Board.Cols, 4, 12)
	}
	if cfg.Board.TileTypes > 0 {
		// Fewer than 4 types makes a matchless initial board unlikely to
		// converge; more than 6 has no glyphs.
		r.TileTypes = core.Clamp(cfg.Board.TileTypes, 4, 6)
	}
	if cfg.Board.MinMatchSize > 0 {
		r.MinMatchSize = core.Clamp(cfg.Board.MinMatchSize, 3, 5)
	}
	if cfg.Scoring.PointsPerTile > 0 {
		r.PointsPerTile = cfg.Scoring.PointsPerTile
	}
	if cfg.Scoring.ComboMultiplier > 0 {
		r.ComboMultiplier = cfg.Scoring.ComboMultiplier
	}

	return r
}
