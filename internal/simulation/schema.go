package simulation

import "teachsim/internal/llm"

// VerdictSchema constrains the evaluator's output. Skill keys match the
// profile package's tracked skill names.
var VerdictSchema = &llm.Schema{
	Name:        "session-verdict",
	Description: "Graded outcome of one training conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"description": "Overall performance against the scenario objectives",
				"minimum":     0,
				"maximum":     100,
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Specific feedback naming one strength and one improvement",
			},
			"skillsGained": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"empathy":            map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"conflictResolution": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"boundaryKeeping":    map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"patience":           map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				},
				"required":             []any{"empathy", "conflictResolution", "boundaryKeeping", "patience"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"score", "feedback", "skillsGained"},
		"additionalProperties": false,
	},
}
