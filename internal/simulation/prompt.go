package simulation

import (
	"fmt"
	"strings"
)

const personaSystemPrompt = `You are role-playing %s, a %s, in a teacher training simulator.
The trainee is a teacher speaking with you. Stay in character for the entire conversation.

Your situation:
%s

Rules:
- Respond only as %s. Never break character, never mention being an AI or a simulation.
- React realistically to what the teacher says: de-escalate when handled well, push back when handled poorly.
- Keep replies conversational, 1-4 sentences.
- Do not resolve the situation on your own; the teacher has to earn it.`

const evaluatorSystemPrompt = `You are an expert instructor of teacher communication skills.
You will receive the transcript of a training conversation between a trainee teacher and a
role-played persona. Grade the trainee's performance.

Score each dimension 0-100:
- empathy: did the teacher acknowledge feelings and perspective before responding?
- conflictResolution: did the teacher de-escalate and move the conversation toward resolution?
- boundaryKeeping: did the teacher hold professional limits without being cold or punitive?
- patience: did the teacher stay measured under pressure, without rushing or snapping?

The overall score reflects how well the trainee met the scenario objectives.
Feedback must be specific: quote or paraphrase moments from the transcript, name one
strength and one concrete improvement. Respond with JSON only.`

// PersonaPrompt builds the system prompt that puts the model in character
// for a scenario.
func PersonaPrompt(sc *Scenario) string {
	return fmt.Sprintf(personaSystemPrompt,
		sc.PersonaName, sc.PersonaRole, sc.Situation, sc.PersonaName)
}

// Turn is one exchange in a training conversation. Sender is either
// "teacher" (the trainee) or "persona".
type Turn struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

const (
	SenderTeacher = "teacher"
	SenderPersona = "persona"
)

// buildEvaluationMessage renders the scenario context and transcript into
// the user message the evaluator grades.
func buildEvaluationMessage(sc *Scenario, transcript []Turn) string {
	var b strings.Builder

	b.WriteString("Scenario: ")
	b.WriteString(sc.Title)
	b.WriteString("\n")
	b.WriteString(sc.Description)
	b.WriteString("\n\nObjectives:\n")
	for _, obj := range sc.Objectives {
		b.WriteString("- ")
		b.WriteString(obj)
		b.WriteString("\n")
	}

	b.WriteString("\nTranscript:\n")
	for _, t := range transcript {
		label := "Teacher"
		if t.Sender == SenderPersona {
			label = sc.PersonaName
		}
		fmt.Fprintf(&b, "%s: %s\n", label, t.Content)
	}

	b.WriteString("\nGrade the teacher's performance.")
	return b.String()
}
