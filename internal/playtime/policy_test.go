package playtime

import (
	"testing"
	"time"

	"github.com/cristiparaschiv/kids-arcade/internal/config"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.Local)
}

func testLimits(t *testing.T) Limits {
	t.Helper()
	return FromConfig(config.PlaytimeConfig{
		DailyMinutes:   60,
		SessionMinutes: 30,
		Bedtime: config.BedtimeConfig{
			Start: "20:30",
			End:   "07:00",
		},
	})
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"20:30", 1230, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeString(t *testing.T) {
	if s := ClockTime(1230).String(); s != "20:30" {
		t.Errorf("String() = %q, want 20:30", s)
	}
	if s := ClockTime(5).String(); s != "00:05" {
		t.Errorf("String() = %q, want 00:05", s)
	}
}

func TestBedtimeWrapsMidnight(t *testing.T) {
	l := testLimits(t)

	tests := []struct {
		hour, min int
		want      bool
	}{
		{19, 0, false},
		{20, 29, false},
		{20, 30, true},
		{23, 59, true},
		{0, 0, true},
		{6, 59, true},
		{7, 0, false},
		{12, 0, false},
	}

	for _, tt := range tests {
		if got := l.InBedtime(at(tt.hour, tt.min)); got != tt.want {
			t.Errorf("InBedtime(%02d:%02d) = %v, want %v", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestBedtimeSameDayWindow(t *testing.T) {
	l := FromConfig(config.PlaytimeConfig{
		Bedtime: config.BedtimeConfig{Start: "13:00", End: "15:00"},
	})

	if !l.InBedtime(at(14, 0)) {
		t.Error("14:00 should fall inside a 13:00-15:00 window")
	}
	if l.InBedtime(at(12, 0)) || l.InBedtime(at(15, 0)) {
		t.Error("times outside 13:00-15:00 should not be in the window")
	}
}

func TestEvaluateAllowed(t *testing.T) {
	l := testLimits(t)

	d := l.Evaluate(10*time.Minute, 5*time.Minute, at(12, 0))
	if !d.Allowed {
		t.Fatalf("expected allowed, got reason %q", d.Reason)
	}
	// Session has 25m left, daily has 50m; session is binding.
	if d.Remaining != 25*time.Minute {
		t.Errorf("Remaining = %v, want 25m", d.Remaining)
	}
}

func TestEvaluateDailyBinding(t *testing.T) {
	l := testLimits(t)

	// Daily has 10m left, session has 25m; daily is binding.
	d := l.Evaluate(50*time.Minute, 5*time.Minute, at(12, 0))
	if !d.Allowed {
		t.Fatalf("expected allowed, got reason %q", d.Reason)
	}
	if d.Remaining != 10*time.Minute {
		t.Errorf("Remaining = %v, want 10m", d.Remaining)
	}
}

func TestEvaluateDailyExhausted(t *testing.T) {
	l := testLimits(t)

	d := l.Evaluate(60*time.Minute, 0, at(12, 0))
	if d.Allowed {
		t.Fatal("expected blocked")
	}
	if d.Reason != ReasonDailyLimit {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonDailyLimit)
	}
}

func TestEvaluateSessionExhausted(t *testing.T) {
	l := testLimits(t)

	d := l.Evaluate(0, 30*time.Minute, at(12, 0))
	if d.Allowed {
		t.Fatal("expected blocked")
	}
	if d.Reason != ReasonSessionLimit {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonSessionLimit)
	}
}

func TestEvaluateBedtimeWins(t *testing.T) {
	l := testLimits(t)

	// Plenty of budget left, but it's bedtime.
	d := l.Evaluate(0, 0, at(21, 0))
	if d.Allowed {
		t.Fatal("expected blocked during bedtime")
	}
	if d.Reason != ReasonBedtime {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonBedtime)
	}
}

func TestEvaluateZeroLimitsDisable(t *testing.T) {
	l := FromConfig(config.PlaytimeConfig{})

	d := l.Evaluate(10*time.Hour, 10*time.Hour, at(3, 0))
	if !d.Allowed {
		t.Errorf("zero config should disable all limits, got reason %q", d.Reason)
	}
}

func TestInvalidBedtimeDisablesWindow(t *testing.T) {
	l := FromConfig(config.PlaytimeConfig{
		Bedtime: config.BedtimeConfig{Start: "not-a-time", End: "07:00"},
	})

	if l.InBedtime(at(3, 0)) {
		t.Error("invalid bedtime config should disable the window")
	}
}

func TestReasonDescribe(t *testing.T) {
	for _, r := range []Reason{ReasonDailyLimit, ReasonSessionLimit, ReasonBedtime} {
		if r.Describe() == "" {
			t.Errorf("Describe() for %q should not be empty", r)
		}
	}
	if ReasonAllowed.Describe() != "" {
		t.Error("Describe() for the allowed reason should be empty")
	}
}

func TestPINHashAndVerify(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN() failed: %v", err)
	}
	if hash == "1234" {
		t.Error("hash should not equal the plain PIN")
	}

	if err := VerifyPIN(hash, "1234"); err != nil {
		t.Errorf("VerifyPIN() with correct PIN failed: %v", err)
	}
	if err := VerifyPIN(hash, "4321"); err != ErrPINMismatch {
		t.Errorf("VerifyPIN() with wrong PIN = %v, want ErrPINMismatch", err)
	}
}

func TestPINTooShort(t *testing.T) {
	if _, err := HashPIN("123"); err == nil {
		t.Error("HashPIN() should reject PINs shorter than 4 characters")
	}
}
