package simulation

import (
	"context"
	"encoding/json"
	"fmt"

	"teachsim/internal/llm"
	"teachsim/internal/profile"
)

// Config tunes the LLM requests the simulator makes.
type Config struct {
	// ChatMaxTokens caps persona replies.
	ChatMaxTokens int
	// EvalMaxTokens caps the evaluator verdict.
	EvalMaxTokens int
	// ChatTemperature controls persona variability. Evaluation always
	// runs at temperature 0.
	ChatTemperature float64
}

// DefaultConfig returns the standard simulator tuning.
func DefaultConfig() Config {
	return Config{
		ChatMaxTokens:   400,
		EvalMaxTokens:   1200,
		ChatTemperature: 0.8,
	}
}

// Service runs training conversations: persona chat turns and end-of-session
// evaluation.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a simulation service backed by the given provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ErrUnknownScenario reports a scenario ID not in the catalog.
type ErrUnknownScenario struct {
	ID string
}

func (e *ErrUnknownScenario) Error() string {
	return fmt.Sprintf("unknown scenario: %q", e.ID)
}

// Verdict is the evaluator's graded outcome for a session.
type Verdict struct {
	Score        float64            `json:"score"`
	Feedback     string             `json:"feedback"`
	SkillsGained map[string]float64 `json:"skillsGained"`
}

// Reply generates the persona's next message given the conversation so far.
// The transcript must end with a teacher turn.
func (s *Service) Reply(ctx context.Context, scenarioID string, transcript []Turn) (string, error) {
	sc := FindScenario(scenarioID)
	if sc == nil {
		return "", &ErrUnknownScenario{ID: scenarioID}
	}

	ctx = llm.WithPurpose(ctx, "persona-chat")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      PersonaPrompt(sc),
		Messages:    transcriptMessages(transcript),
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: s.cfg.ChatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("persona reply: %w", err)
	}

	return resp.Text(), nil
}

// Evaluate grades a finished conversation. The returned SessionResult has
// passed boundary validation; DurationMs comes from the caller's measured
// session length, not the model.
func (s *Service) Evaluate(ctx context.Context, scenarioID string, transcript []Turn, durationMs int64) (profile.SessionResult, string, error) {
	sc := FindScenario(scenarioID)
	if sc == nil {
		return profile.SessionResult{}, "", &ErrUnknownScenario{ID: scenarioID}
	}

	ctx = llm.WithPurpose(ctx, "evaluation")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: evaluatorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(sc, transcript)},
		},
		Schema:    VerdictSchema,
		MaxTokens: s.cfg.EvalMaxTokens,
	})
	if err != nil {
		return profile.SessionResult{}, "", fmt.Errorf("evaluate session: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return profile.SessionResult{}, "", &llm.ErrInvalidResponse{Err: err}
	}

	result, err := profile.NormalizeResult(verdict.Score, float64(durationMs), verdict.SkillsGained)
	if err != nil {
		return profile.SessionResult{}, "", fmt.Errorf("evaluate session: %w", err)
	}

	return result, verdict.Feedback, nil
}

// transcriptMessages maps conversation turns onto LLM roles. The persona
// is the assistant; the teacher is the user.
func transcriptMessages(transcript []Turn) []llm.Message {
	out := make([]llm.Message, 0, len(transcript))
	for _, t := range transcript {
		role := llm.RoleUser
		if t.Sender == SenderPersona {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: t.Content})
	}
	return out
}
