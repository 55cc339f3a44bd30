package match3

// Level defines a campaign level: reach the target score before running
// out of moves.
type Level struct {
	ID     int
	Name   string
	Target int // Score required to clear the level
	Moves  int // Move budget for the level
}

// Levels defines the campaign levels with increasing difficulty.
// Targets assume cascades; a single 3-match is worth 30 points.
var Levels = []Level{
	{ID: 1, Name: "Fruit Basket", Target: 500, Moves: 20},
	{ID: 2, Name: "Juice Stand", Target: 900, Moves: 20},
	{ID: 3, Name: "Orchard Walk", Target: 1400, Moves: 22},
	{ID: 4, Name: "Berry Patch", Target: 2000, Moves: 22},
	{ID: 5, Name: "Smoothie Time", Target: 2800, Moves: 24},
	{ID: 6, Name: "Harvest Rush", Target: 3800, Moves: 24},
	{ID: 7, Name: "Fruit Salad", Target: 5000, Moves: 26},
	{ID: 8, Name: "Jam Factory", Target: 6500, Moves: 26},
	{ID: 9, Name: "Tutti Frutti", Target: 8200, Moves: 28},
	{ID: 10, Name: "Golden Orchard", Target: 10000, Moves: 28},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}
