// Package config provides YAML-based configuration loading for the arcade:
// game rules for the match-three board and screen-time limits for the
// parental controls.
package config

// Match3Config contains all configuration for the Fruit Match game.
type Match3Config struct {
	Board   Match3Board   `yaml:"board"`
	Scoring Match3Scoring `yaml:"scoring"`
}

// Match3Board defines the board dimensions and match rule.
type Match3Board struct {
	Rows         int `yaml:"rows"`
	Cols         int `yaml:"cols"`
	TileTypes    int `yaml:"tile_types"`
	MinMatchSize int `yaml:"min_match_size"`
}

// Match3Scoring defines the scoring parameters.
type Match3Scoring struct {
	PointsPerTile   int     `yaml:"points_per_tile"`
	ComboMultiplier float64 `yaml:"combo_multiplier"`
}

// PlaytimeConfig defines the screen-time limits enforced by the arcade.
// Zero values disable the corresponding limit.
type PlaytimeConfig struct {
	DailyMinutes   int           `yaml:"daily_minutes"`
	SessionMinutes int           `yaml:"session_minutes"`
	Bedtime        BedtimeConfig `yaml:"bedtime"`
}

// BedtimeConfig defines a no-play window in local wall-clock time.
/// Times are "HH:MM"; the window may wrap past midnight (e.g. 20:30-07:00).
// Empty strings disable the window.
type BedtimeConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}
