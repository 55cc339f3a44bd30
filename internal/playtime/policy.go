// Package playtime implements the parental screen time policy: daily
// and per-session play budgets plus a bedtime window during which play
// is blocked. The policy is pure; callers supply recorded usage and the
// current time.
package playtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cristiparaschiv/kids-arcade/internal/config"
)

// Reason explains why a Decision blocked play.
type Reason string

const (
	ReasonAllowed      Reason = ""
	ReasonDailyLimit   Reason = "daily_limit"
	ReasonSessionLimit Reason = "session_limit"
	ReasonBedtime      Reason = "bedtime"
)

// Decision is the outcome of evaluating the policy at a point in time.
type Decision struct {
	Allowed   bool
	Reason    Reason
	Remaining time.Duration // Time left before the binding limit hits; 0 when blocked
}

// ClockTime is a time of day without a date, minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" (24-hour).
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("playtime: invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("playtime: invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("playtime: invalid minute in %q", s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Limits holds the effective policy values. Zero durations disable the
// corresponding limit; a zero-width bedtime window disables bedtime.
type Limits struct {
	Daily        time.Duration
	Session      time.Duration
	BedtimeStart ClockTime
	BedtimeEnd   ClockTime
	bedtimeSet   bool
}

// FromConfig builds Limits from the playtime config section.
// Invalid bedtime strings disable the bedtime window.
func FromConfig(cfg config.PlaytimeConfig) Limits {
	l := Limits{
		Daily:   time.Duration(cfg.DailyMinutes) * time.Minute,
		Session: time.Duration(cfg.SessionMinutes) * time.Minute,
	}

	start, err1 := ParseClockTime(cfg.Bedtime.Start)
	end, err2 := ParseClockTime(cfg.Bedtime.End)
	if err1 == nil && err2 == nil && start != end {
		l.BedtimeStart = start
		l.BedtimeEnd = end
		l.bedtimeSet = true
	}

	return l
}

// InBedtime reports whether now falls inside the bedtime window.
// A window whose start is later than its end wraps past midnight,
// e.g. 20:30 to 07:00 covers the evening and the early morning.
func (l Limits) InBedtime(now time.Time) bool {
	if !l.bedtimeSet {
		return false
	}
	cur := ClockTime(now.Hour()*60 + now.Minute())
	if l.BedtimeStart < l.BedtimeEnd {
		return cur >= l.BedtimeStart && cur < l.BedtimeEnd
	}
	return cur >= l.BedtimeStart || cur < l.BedtimeEnd
}

// Evaluate decides whether play is allowed given the usage already
// recorded today and the elapsed time of the running session. Bedtime
// wins over budget limits; among budgets the one with less time left
// is binding.
func (l Limits) Evaluate(usedToday, sessionElapsed time.Duration, now time.Time) Decision {
	if l.InBedtime(now) {
		return Decision{Allowed: false, Reason: ReasonBedtime}
	}

	remaining := time.Duration(-1)

	if l.Daily > 0 {
		left := l.Daily - usedToday
		if left <= 0 {
			return Decision{Allowed: false, Reason: ReasonDailyLimit}
		}
		remaining = left
	}

	if l.Session > 0 {
		left := l.Session - sessionElapsed
		if left <= 0 {
			return Decision{Allowed: false, Reason: ReasonSessionLimit}
		}
		if remaining < 0 || left < remaining {
			remaining = left
		}
	}

	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Reason: ReasonAllowed, Remaining: remaining}
}

// Describe renders a Reason as a message suitable for the player.
func (r Reason) Describe() string {
	switch r {
	case ReasonDailyLimit:
		return "Play time for today is used up. See you tomorrow!"
	case ReasonSessionLimit:
		return "Time for a break! Come back a bit later."
	case ReasonBedtime:
		return "It's bedtime. The arcade is closed until morning."
	default:
		return ""
	}
}
