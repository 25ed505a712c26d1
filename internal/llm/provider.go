package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the abstraction over chat-completion backends. The
// simulation layer calls Generate for persona replies (plain text) and
// for transcript evaluation (schema-constrained JSON).
type Provider interface {
	// Generate sends a prompt to the LLM and returns the completion.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and the returned Content is JSON
	// validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the LLM's role and constraints (the scenario persona,
	// or the evaluator rubric).
	System string

	// Messages is the conversation history in order.
	Messages []Message

	// Schema, when set, constrains the response to JSON conforming to
	// this definition. Nil means free text.
	Schema *Schema

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Persona chat runs warm,
	// evaluation runs at 0.
	Temperature float64
}

// Message is a single turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "session-verdict").
	Name string

	// Description guides the model toward the intended content.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the completion: validated JSON when a Schema was
	// requested, otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the content as a plain string with surrounding
// whitespace trimmed. Convenience for unstructured persona replies.
func (r *Response) Text() string {
	s := string(r.Content)
	// Some backends return free text wrapped as a JSON string.
	var unquoted string
	if err := json.Unmarshal(r.Content, &unquoted); err == nil {
		s = unquoted
	}
	return strings.TrimSpace(s)
}
