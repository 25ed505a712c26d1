package llm

import (
	"math"
	"testing"
)

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}

	tests := []struct {
		in, out int
		want    float64
	}{
		{0, 0, 0},
		{1_000_000, 0, 1},
		{0, 1_000_000, 5},
		{500_000, 200_000, 1.5},
	}
	for _, tt := range tests {
		got := c.Cost(tt.in, tt.out)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Cost(%d, %d) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("claude-haiku-4-5-20251001"); c == nil {
		t.Error("LookupCost(claude-haiku-4-5-20251001) = nil, want pricing")
	}
	if c := LookupCost("gpt-4o-mini"); c == nil {
		t.Error("LookupCost(gpt-4o-mini) = nil, want pricing")
	}
	if c := LookupCost("not-a-model"); c != nil {
		t.Errorf("LookupCost(not-a-model) = %+v, want nil", c)
	}
}

func TestDefaultModelsArePriced(t *testing.T) {
	// The friendly-name defaults must resolve to models in the pricing
	// table so the usage report can attach a cost.
	defaults := []string{
		resolveModel("claude-haiku", anthropicModels),
		resolveModel("gpt-4o-mini", openaiModels),
		resolveModel("gemini-flash", geminiModels),
	}
	for _, id := range defaults {
		if LookupCost(id) == nil {
			t.Errorf("default model %q has no pricing entry", id)
		}
	}
}
