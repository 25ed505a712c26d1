package profile

import (
	"fmt"
	"math"
)

// InvalidInputError reports a session value that failed boundary
// validation. It marks a programming error in the caller, not a transient
// fault: retrying the same input will fail the same way.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid session input: %s = %v", e.Field, e.Value)
}

// NormalizeResult validates raw session numbers as they arrive off the
// wire and converts them into a SessionResult the fold can trust. This is
// the single place where "missing or out-of-range" policy lives; past this
// point every value is a finite integer in range.
//
// Skill gains for unknown skill names are dropped; gains for tracked
// skills must be finite and within 0-100.
func NormalizeResult(score, durationMs float64, gains map[string]float64) (SessionResult, error) {
	if !isFinite(score) || score < 0 || score > 100 {
		return SessionResult{}, &InvalidInputError{Field: "score", Value: score}
	}
	if !isFinite(durationMs) || durationMs < 0 {
		return SessionResult{}, &InvalidInputError{Field: "durationMs", Value: durationMs}
	}

	tracked := make(map[Skill]bool, len(AllSkills()))
	for _, s := range AllSkills() {
		tracked[s] = true
	}

	gained := SkillSet{}
	for name, v := range gains {
		if !tracked[Skill(name)] {
			continue
		}
		if !isFinite(v) || v < 0 || v > 100 {
			return SessionResult{}, &InvalidInputError{Field: "skillsGained." + name, Value: v}
		}
		gained[Skill(name)] = int(math.Round(v))
	}

	return SessionResult{
		Score:        int(math.Round(score)),
		DurationMs:   int64(durationMs),
		SkillsGained: gained,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
