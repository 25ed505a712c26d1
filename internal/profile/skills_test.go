package profile

import "testing"

func TestUpdateSkills_FirstSession(t *testing.T) {
	// No prior scores: every skill starts from the 50-point baseline.
	got := UpdateSkills(SkillSet{}, SkillSet{
		SkillEmpathy:  90,
		SkillPatience: 95,
	})

	tests := []struct {
		skill Skill
		want  int
	}{
		{SkillEmpathy, 62},  // round(50*0.7 + 90*0.3)
		{SkillPatience, 64}, // round(50*0.7 + 95*0.3) = round(63.5)
		{SkillConflictResolution, 35},
		{SkillBoundaryKeeping, 35},
	}
	for _, tt := range tests {
		if got[tt.skill] != tt.want {
			t.Errorf("UpdateSkills()[%s] = %d, want %d", tt.skill, got[tt.skill], tt.want)
		}
	}
}

func TestUpdateSkills_NoGains(t *testing.T) {
	// A session with no signal decays every skill toward zero:
	// result = round(current * 0.7).
	current := SkillSet{
		SkillEmpathy:            80,
		SkillConflictResolution: 33,
		SkillBoundaryKeeping:    0,
	}
	got := UpdateSkills(current, SkillSet{})

	tests := []struct {
		skill Skill
		want  int
	}{
		{SkillEmpathy, 56},            // round(80*0.7)
		{SkillConflictResolution, 23}, // round(23.1)
		{SkillBoundaryKeeping, 0},
		{SkillPatience, 35}, // absent current defaults to 50
	}
	for _, tt := range tests {
		if got[tt.skill] != tt.want {
			t.Errorf("UpdateSkills()[%s] = %d, want %d", tt.skill, got[tt.skill], tt.want)
		}
	}
}

func TestUpdateSkills_CapsAt100(t *testing.T) {
	got := UpdateSkills(SkillSet{SkillEmpathy: 100}, SkillSet{SkillEmpathy: 100})
	if got[SkillEmpathy] != 100 {
		t.Errorf("UpdateSkills()[empathy] = %d, want 100", got[SkillEmpathy])
	}
}

func TestUpdateSkills_RangeInvariant(t *testing.T) {
	// Every combination of in-range inputs stays in [0,100].
	for cur := 0; cur <= 100; cur += 10 {
		for gain := 0; gain <= 100; gain += 10 {
			got := UpdateSkills(
				SkillSet{SkillPatience: cur},
				SkillSet{SkillPatience: gain},
			)
			v := got[SkillPatience]
			if v < 0 || v > 100 {
				t.Errorf("UpdateSkills(cur=%d, gain=%d) = %d, out of range", cur, gain, v)
			}
		}
	}
}

func TestUpdateSkills_DoesNotMutateInputs(t *testing.T) {
	current := SkillSet{SkillEmpathy: 40}
	gained := SkillSet{SkillEmpathy: 60}
	UpdateSkills(current, gained)

	if current[SkillEmpathy] != 40 || len(current) != 1 {
		t.Errorf("current mutated: %v", current)
	}
	if gained[SkillEmpathy] != 60 || len(gained) != 1 {
		t.Errorf("gained mutated: %v", gained)
	}
}

func TestUpdateSkills_ScoresEveryTrackedSkill(t *testing.T) {
	got := UpdateSkills(SkillSet{}, SkillSet{})
	if len(got) != len(AllSkills()) {
		t.Fatalf("expected %d skills, got %d", len(AllSkills()), len(got))
	}
	for _, s := range AllSkills() {
		if _, ok := got[s]; !ok {
			t.Errorf("skill %s missing from result", s)
		}
	}
}
