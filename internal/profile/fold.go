package profile

import (
	"math"
	"time"
)

// FoldResult carries everything one fold produces. All four pieces are
// computed together; a fold never partially applies.
type FoldResult struct {
	Progress     Progress
	Skills       SkillSet
	Achievements AchievementSet
	// NewlyUnlocked lists achievement IDs unlocked by this fold, in
	// table order. Already-unlocked achievements never reappear here.
	NewlyUnlocked []string
}

// FoldSession folds one completed session into the trainee's snapshot and
// returns the updated state plus any newly unlocked achievements. It is a
// pure function of (snapshot, result, now): it performs no I/O, mutates
// nothing in place, and leaves persistence and notification to the caller.
//
// The caller must supply a validated result (see NormalizeResult) and an
// atomically-obtained snapshot, and must commit the output before folding
// the same user's next session.
func FoldSession(snap Snapshot, result SessionResult, now time.Time) FoldResult {
	prev := snap.Progress

	p := Progress{
		TotalSessions:      prev.TotalSessions + 1,
		CompletedScenarios: prev.CompletedScenarios + 1,
		TotalTimeMs:        prev.TotalTimeMs + result.DurationMs,
		LastSessionAt:      now,
	}

	// Incremental mean over the previous *rounded* average. Long-lived
	// accounts can drift from the true mean of raw scores; the recurrence
	// is kept as-is because stored averages were produced by it.
	p.AverageScore = int(math.Round(
		(float64(prev.AverageScore)*float64(prev.TotalSessions) + float64(result.Score)) /
			float64(p.TotalSessions)))

	p.Streak = ComputeStreak(prev.LastSessionAt, now).Apply(prev.Streak)

	skills := UpdateSkills(snap.Skills, result.SkillsGained)

	achievements := snap.Achievements.Clone()
	var unlocked []string
	for _, def := range Definitions() {
		if _, have := achievements[def.ID]; have {
			continue
		}
		if !def.Requirement(p, skills, result) {
			continue
		}
		achievements[def.ID] = Achievement{
			UnlockedAt:  now,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
		}
		unlocked = append(unlocked, def.ID)
	}

	return FoldResult{
		Progress:      p,
		Skills:        skills,
		Achievements:  achievements,
		NewlyUnlocked: unlocked,
	}
}
