package profile

import "time"

// StreakMode is the action ComputeStreak tells the fold to apply.
type StreakMode int

const (
	// StreakNone leaves the counter unchanged (another session within
	// the same 24-hour bucket).
	StreakNone StreakMode = iota
	// StreakIncrement extends the streak (next consecutive day).
	StreakIncrement
	// StreakReset restarts the counter at one (first session ever, or
	// the streak was broken).
	StreakReset
)

// ComputeStreak classifies the gap between the previous session and now.
// The day arithmetic is elapsed-time based: "same day" means fewer than
// 24 hours have passed, not that the wall-clock date matches. A session
// at 23:59 followed by one at 00:01 therefore still counts as day zero.
// A zero last value means no session has ever been folded.
func ComputeStreak(last, now time.Time) StreakMode {
	if last.IsZero() {
		return StreakReset
	}
	elapsed := now.Sub(last)
	if elapsed < 0 {
		// Clock went backwards; treat as a broken streak.
		return StreakReset
	}
	switch elapsed / (24 * time.Hour) {
	case 0:
		return StreakNone
	case 1:
		return StreakIncrement
	default:
		return StreakReset
	}
}

// Apply returns the new streak counter for the given mode.
func (m StreakMode) Apply(streak int) int {
	switch m {
	case StreakIncrement:
		return streak + 1
	case StreakReset:
		return 1
	default:
		return streak
	}
}
