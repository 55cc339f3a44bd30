package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cristiparaschiv/kids-arcade/internal/playtime"
	"github.com/cristiparaschiv/kids-arcade/internal/storage"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show screen time limits and today's usage",
	Long: `Display the configured screen time limits, the bedtime window,
and how much play time has been used today.

Limits are configured in playtime.yaml (see ~/.kidsarcade/configs/).

Examples:
  kidsarcade limits
  kidsarcade limits set-pin`,
	Run: runLimits,
}

var setPinCmd = &cobra.Command{
	Use:   "set-pin",
	Short: "Set the parent PIN used to override limits",
	Long: `Set or replace the parent PIN.

The PIN lets a parent override a blocked game start. It is stored as a
bcrypt hash in the scores database.`,
	Run: runSetPin,
}

func init() {
	limitsCmd.AddCommand(setPinCmd)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func runLimits(_ *cobra.Command, _ []string) {
	limits := loadLimits()

	fmt.Println("Screen time limits:")
	fmt.Println()

	if limits.Daily > 0 {
		fmt.Printf("  Daily limit:    %s\n", formatDuration(limits.Daily))
	} else {
		fmt.Println("  Daily limit:    off")
	}

	if limits.Session > 0 {
		fmt.Printf("  Session limit:  %s\n", formatDuration(limits.Session))
	} else {
		fmt.Println("  Session limit:  off")
	}

	if limits.InBedtime(time.Now()) {
		fmt.Printf("  Bedtime:        %s - %s (active now)\n", limits.BedtimeStart, limits.BedtimeEnd)
	} else if limits.BedtimeStart != limits.BedtimeEnd {
		fmt.Printf("  Bedtime:        %s - %s\n", limits.BedtimeStart, limits.BedtimeEnd)
	} else {
		fmt.Println("  Bedtime:        off")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return
	}
	defer store.Close()

	used, err := store.UsedToday(time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read today's usage: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("  Used today:     %s\n", formatDuration(used))
	if limits.Daily > 0 {
		remaining := limits.Daily - used
		if remaining < 0 {
			remaining = 0
		}
		fmt.Printf("  Remaining:      %s\n", formatDuration(remaining))
	}

	hash, err := store.GetSetting("parent_pin")
	fmt.Println()
	if err == nil && hash != "" {
		fmt.Println("  Parent PIN:     set")
	} else {
		fmt.Println("  Parent PIN:     not set (run 'kidsarcade limits set-pin')")
	}
}

func runSetPin(_ *cobra.Command, _ []string) {
	fmt.Print("New parent PIN: ")
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading PIN: %v\n", err)
		os.Exit(1)
	}

	fmt.Print("Repeat PIN: ")
	repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading PIN: %v\n", err)
		os.Exit(1)
	}

	if string(pin) != string(repeat) {
		fmt.Fprintln(os.Stderr, "PINs do not match.")
		os.Exit(1)
	}

	hash, err := playtime.HashPIN(string(pin))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SetSetting("parent_pin", hash); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing PIN: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Parent PIN updated.")
}
