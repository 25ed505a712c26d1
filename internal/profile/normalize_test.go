package profile

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeResult_Valid(t *testing.T) {
	got, err := NormalizeResult(87.4, 600000, map[string]float64{
		"empathy":  90,
		"patience": 62.5,
	})
	if err != nil {
		t.Fatalf("NormalizeResult() error = %v", err)
	}
	if got.Score != 87 {
		t.Errorf("Score = %d, want 87", got.Score)
	}
	if got.DurationMs != 600000 {
		t.Errorf("DurationMs = %d, want 600000", got.DurationMs)
	}
	if got.SkillsGained[SkillEmpathy] != 90 {
		t.Errorf("empathy gain = %d, want 90", got.SkillsGained[SkillEmpathy])
	}
	if got.SkillsGained[SkillPatience] != 63 {
		t.Errorf("patience gain = %d, want 63", got.SkillsGained[SkillPatience])
	}
}

func TestNormalizeResult_DropsUnknownSkills(t *testing.T) {
	got, err := NormalizeResult(50, 0, map[string]float64{
		"charisma": 99,
		"empathy":  40,
	})
	if err != nil {
		t.Fatalf("NormalizeResult() error = %v", err)
	}
	if len(got.SkillsGained) != 1 {
		t.Errorf("SkillsGained = %v, want only empathy", got.SkillsGained)
	}
}

func TestNormalizeResult_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		duration float64
		gains    map[string]float64
	}{
		{"NaN score", math.NaN(), 0, nil},
		{"infinite score", math.Inf(1), 0, nil},
		{"negative score", -1, 0, nil},
		{"score above 100", 101, 0, nil},
		{"negative duration", 50, -5, nil},
		{"NaN duration", 50, math.NaN(), nil},
		{"NaN gain", 50, 0, map[string]float64{"empathy": math.NaN()}},
		{"gain above 100", 50, 0, map[string]float64{"patience": 120}},
		{"negative gain", 50, 0, map[string]float64{"patience": -3}},
	}

	for _, tt := range tests {
		_, err := NormalizeResult(tt.score, tt.duration, tt.gains)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
			continue
		}
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: error = %T, want *InvalidInputError", tt.name, err)
		}
	}
}

func TestDefinitions_StableIDs(t *testing.T) {
	want := []string{"first_session", "empathy_master", "patient_teacher", "perfectionist", "week_streak"}
	defs := Definitions()
	if len(defs) != len(want) {
		t.Fatalf("len(Definitions()) = %d, want %d", len(defs), len(want))
	}
	for i, def := range defs {
		if def.ID != want[i] {
			t.Errorf("Definitions()[%d].ID = %q, want %q", i, def.ID, want[i])
		}
		if def.Requirement == nil {
			t.Errorf("%q has nil requirement", def.ID)
		}
	}
}
