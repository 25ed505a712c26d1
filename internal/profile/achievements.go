package profile

// Definition describes one unlockable achievement. The requirement is
// evaluated against the already-updated progress and skills plus the
// session that triggered the fold.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Requirement func(p Progress, s SkillSet, r SessionResult) bool
}

// Definitions returns the fixed achievement table in evaluation order.
// IDs and requirements are load-bearing: stored unlock records key on the
// ID, so entries must not be renamed or retuned once shipped.
func Definitions() []Definition {
	return []Definition{
		{
			ID:          "first_session",
			Title:       "First Steps",
			Description: "Complete your first training session",
			Icon:        "🎉",
			Requirement: func(p Progress, _ SkillSet, _ SessionResult) bool {
				return p.TotalSessions >= 1
			},
		},
		{
			ID:          "empathy_master",
			Title:       "Empathy Master",
			Description: "Reach an empathy score of 80",
			Icon:        "💖",
			Requirement: func(_ Progress, s SkillSet, _ SessionResult) bool {
				return s[SkillEmpathy] >= 80
			},
		},
		{
			ID:          "patient_teacher",
			Title:       "Patient Teacher",
			Description: "Reach a patience score of 90",
			Icon:        "🧘",
			Requirement: func(_ Progress, s SkillSet, _ SessionResult) bool {
				return s[SkillPatience] >= 90
			},
		},
		{
			ID:          "perfectionist",
			Title:       "Perfectionist",
			Description: "Score 95 or higher in a single session",
			Icon:        "⭐",
			Requirement: func(_ Progress, _ SkillSet, r SessionResult) bool {
				return r.Score >= 95
			},
		},
		{
			ID:          "week_streak",
			Title:       "Week Streak",
			Description: "Practice seven days in a row",
			Icon:        "🔥",
			Requirement: func(p Progress, _ SkillSet, _ SessionResult) bool {
				return p.Streak >= 7
			},
		},
	}
}
