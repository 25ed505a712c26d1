package profile

import (
	"testing"
	"time"
)

func TestComputeStreak(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want StreakMode
	}{
		{"first session ever", time.Time{}, base, StreakReset},
		{"same instant", base, base, StreakNone},
		{"one hour later", base, base.Add(1 * time.Hour), StreakNone},
		{"just under a day", base, base.Add(23*time.Hour + 59*time.Minute), StreakNone},
		{"exactly one day", base, base.Add(24 * time.Hour), StreakIncrement},
		{"25 hours", base, base.Add(25 * time.Hour), StreakIncrement},
		{"just under two days", base, base.Add(47 * time.Hour), StreakIncrement},
		{"two days", base, base.Add(48 * time.Hour), StreakReset},
		{"49 hours", base, base.Add(49 * time.Hour), StreakReset},
		{"a week later", base, base.Add(7 * 24 * time.Hour), StreakReset},
		{"clock went backwards", base, base.Add(-2 * time.Hour), StreakReset},
	}

	for _, tt := range tests {
		got := ComputeStreak(tt.last, tt.now)
		if got != tt.want {
			t.Errorf("%s: ComputeStreak() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// Elapsed-time semantics: a session late at night followed by one just
// after midnight is still "day zero" because less than 24h passed.
func TestComputeStreak_MidnightBoundaryNotCrossed(t *testing.T) {
	last := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	now := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)
	if got := ComputeStreak(last, now); got != StreakNone {
		t.Errorf("ComputeStreak() = %v, want StreakNone", got)
	}
}

func TestStreakModeApply(t *testing.T) {
	tests := []struct {
		mode   StreakMode
		streak int
		want   int
	}{
		{StreakNone, 3, 3},
		{StreakIncrement, 3, 4},
		{StreakReset, 3, 1},
		{StreakReset, 0, 1},
	}
	for _, tt := range tests {
		if got := tt.mode.Apply(tt.streak); got != tt.want {
			t.Errorf("(%v).Apply(%d) = %d, want %d", tt.mode, tt.streak, got, tt.want)
		}
	}
}
