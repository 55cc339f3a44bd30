// kidsarcade is a kid-friendly TUI arcade for playing puzzle games in
// the terminal, with parental screen time limits built in.
//
// Usage:
//
//	kidsarcade list              - List available games
//	kidsarcade play <game>       - Play a game
//	kidsarcade menu              - Start menu to pick games interactively
//	kidsarcade serve             - Start SSH server for remote play
//	kidsarcade scores <game>     - Show high scores for a game
//	kidsarcade limits            - Show and manage screen time limits
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.kidsarcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/cristiparaschiv/kids-arcade/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kidsarcade",
	Short: "Kids Arcade - Fruit-matching puzzle fun in your terminal",
	Long: `Kids Arcade is a terminal gaming platform for kids, with a
fruit-matching puzzle game and parental screen time limits.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  limits   - Show and manage screen time limits

Examples:
  kidsarcade list
  kidsarcade play match3
  kidsarcade menu
  kidsarcade serve --ssh :2222
  kidsarcade scores match3
  kidsarcade limits`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kidsarcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(limitsCmd)
}
