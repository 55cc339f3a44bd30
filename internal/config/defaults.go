package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

//go:embed defaults/playtime.yaml
var defaultPlaytimeYAML []byte

// DefaultMatch3Config returns the default Fruit Match configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Rows:         8,
			Cols:         8,
			TileTypes:    6,
			MinMatchSize: 3,
		},
		Scoring: Match3Scoring{
			PointsPerTile:   10,
			ComboMultiplier: 1.5,
		},
	}
}

// DefaultPlaytimeConfig returns the default screen-time limits:
// one hour per day, half-hour sessions, no play after 20:30.
func DefaultPlaytimeConfig() PlaytimeConfig {
	return PlaytimeConfig{
		DailyMinutes:   60,
		SessionMinutes: 30,
		Bedtime: BedtimeConfig{
			Start: "20:30",
			End:   "07:00",
		},
	}
}
