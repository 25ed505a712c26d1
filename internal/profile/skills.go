package profile

import "math"

// Skill update weights. History dominates so a single noisy session can't
// swing a score, but recent behavior still moves it.
const (
	historyWeight = 0.7
	sessionWeight = 0.3

	// baselineScore stands in for a skill that has never been scored.
	// An uninitialized skill is "average", not zero.
	baselineScore = 50

	maxScore = 100
)

// UpdateSkills folds one session's skill signals into the current scores
// using a fixed-weight exponential moving average. Every tracked skill is
// scored in the result: a missing current value defaults to the baseline,
// a missing gained value contributes 0. The result is rounded, then capped
// at 100; inputs are non-negative by construction so no floor is applied.
func UpdateSkills(current, gained SkillSet) SkillSet {
	out := make(SkillSet, len(AllSkills()))
	for _, skill := range AllSkills() {
		cur := baselineScore
		if v, ok := current[skill]; ok {
			cur = v
		}
		gain := 0
		if v, ok := gained[skill]; ok {
			gain = v
		}
		score := math.Round(float64(cur)*historyWeight + float64(gain)*sessionWeight)
		if score > maxScore {
			score = maxScore
		}
		out[skill] = int(score)
	}
	return out
}
