package profile

import "time"

// Skill identifies one of the four tracked teaching competencies.
type Skill string

const (
	SkillEmpathy            Skill = "empathy"
	SkillConflictResolution Skill = "conflictResolution"
	SkillBoundaryKeeping    Skill = "boundaryKeeping"
	SkillPatience           Skill = "patience"
)

// AllSkills returns the tracked skills in display order.
func AllSkills() []Skill {
	return []Skill{SkillEmpathy, SkillConflictResolution, SkillBoundaryKeeping, SkillPatience}
}

// DisplayName returns a human-readable label for the skill.
func (s Skill) DisplayName() string {
	switch s {
	case SkillEmpathy:
		return "Empathy"
	case SkillConflictResolution:
		return "Conflict Resolution"
	case SkillBoundaryKeeping:
		return "Boundary Keeping"
	case SkillPatience:
		return "Patience"
	default:
		return string(s)
	}
}

// SkillSet maps a skill to its 0-100 score. A missing key means the skill
// has never been scored; updates treat it as the 50-point baseline, which
// is distinct from an earned score of 0.
type SkillSet map[Skill]int

// Clone returns an independent copy of the set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Progress accumulates a trainee's lifetime session statistics.
type Progress struct {
	TotalSessions      int
	CompletedScenarios int
	// AverageScore is the rounded mean of all folded session scores.
	AverageScore int
	// TotalTimeMs is the summed session duration in milliseconds.
	TotalTimeMs int64
	// Streak counts consecutive practice days, bucketed by elapsed
	// 24-hour periods rather than calendar dates.
	Streak int
	// LastSessionAt is zero until the first session is folded.
	LastSessionAt time.Time
}

// SessionResult is the outcome of one completed training conversation,
// produced by the evaluator. Values are validated at the boundary
// (see NormalizeResult); the fold assumes they are in range.
type SessionResult struct {
	Score      int   // 0-100
	DurationMs int64 // session length in milliseconds
	// SkillsGained holds per-skill signals for this session.
	// Absent skills contribute no signal (treated as 0).
	SkillsGained SkillSet
}

// Achievement is a permanently unlocked badge.
type Achievement struct {
	UnlockedAt  time.Time `json:"unlockedAt"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// AchievementSet maps achievement ID to its unlock record.
// Entries are written at most once and never overwritten.
type AchievementSet map[string]Achievement

// Clone returns an independent copy of the set.
func (a AchievementSet) Clone() AchievementSet {
	out := make(AchievementSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Snapshot is the atomically-loaded per-user state the fold operates on.
// The caller owns serialization: concurrent folds for the same user must
// not start from the same snapshot or updates will be lost.
type Snapshot struct {
	Progress     Progress
	Skills       SkillSet
	Achievements AchievementSet
}

// NewSnapshot returns the zero state created at registration.
func NewSnapshot() Snapshot {
	return Snapshot{
		Skills:       SkillSet{},
		Achievements: AchievementSet{},
	}
}
