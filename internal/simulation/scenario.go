package simulation

// Scenario describes one training situation: who the trainee is talking
// to and what they should practice. The catalog is static; scenario IDs
// appear in session logs and must stay stable.
type Scenario struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"` // "beginner", "intermediate", "advanced"
	PersonaName string   `json:"personaName"`
	PersonaRole string   `json:"personaRole"` // "parent", "student", "colleague"
	// Situation is the hidden backstory the persona acts from. It is
	// part of the system prompt, never shown to the trainee.
	Situation  string   `json:"-"`
	Objectives []string `json:"objectives"`
}

// Scenarios returns the scenario catalog in display order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:          "angry-parent",
			Title:       "The Angry Parent",
			Description: "A parent is furious about their child's failing grade and demands it be changed.",
			Difficulty:  "beginner",
			PersonaName: "Dana Whitfield",
			PersonaRole: "parent",
			Situation: "Your son Aiden got a D on his science project. You are convinced the " +
				"grading was unfair because Aiden worked on it for two weekends. You came to " +
				"this meeting angry and you interrupt, but you calm down if the teacher " +
				"acknowledges your frustration and explains the rubric concretely.",
			Objectives: []string{
				"Acknowledge the parent's frustration before explaining",
				"Explain the grade with specifics, not policy language",
				"Hold the grading decision without escalating",
			},
		},
		{
			ID:          "disruptive-student",
			Title:       "The Class Clown",
			Description: "A student repeatedly disrupts class and deflects every conversation with jokes.",
			Difficulty:  "beginner",
			PersonaName: "Marcus",
			PersonaRole: "student",
			Situation: "You are a 13-year-old who makes jokes constantly in class. Underneath, " +
				"you are struggling with the material and the jokes keep anyone from noticing. " +
				"You deflect with humor, but you open up if the teacher is patient and asks " +
				"about the work instead of the behavior.",
			Objectives: []string{
				"Get past the deflection without confrontation",
				"Identify the struggle behind the behavior",
				"Agree on one concrete next step",
			},
		},
		{
			ID:          "grade-negotiator",
			Title:       "The Grade Negotiator",
			Description: "A high-achieving student pressures you to round up a grade 'just this once'.",
			Difficulty:  "intermediate",
			PersonaName: "Priya",
			PersonaRole: "student",
			Situation: "You are a 17-year-old with a 89.4% that rounds to a B+. You need an A- " +
				"for a scholarship application and you argue persistently: past teachers rounded, " +
				"you attended every class, one more point is nothing. You test boundaries but " +
				"respect a firm, kind refusal that offers a legitimate alternative.",
			Objectives: []string{
				"Keep the boundary without belittling the request",
				"Show empathy for the stakes",
				"Offer a legitimate path (extra credit policy, recommendation letter)",
			},
		},
		{
			ID:          "overwhelmed-parent",
			Title:       "The Overwhelmed Parent",
			Description: "A single parent breaks down during a conference about their child's absences.",
			Difficulty:  "intermediate",
			PersonaName: "Sam Ortiz",
			PersonaRole: "parent",
			Situation: "You are a single parent working two jobs. Your daughter has missed nine " +
				"school days because she watches her little brother when shifts overlap. You are " +
				"ashamed and near tears, and you expect to be judged. You respond to warmth and " +
				"practical help, and shut down at any hint of blame.",
			Objectives: []string{
				"Lead with empathy, not attendance policy",
				"Avoid judgment while naming the problem",
				"Connect the family to concrete support options",
			},
		},
		{
			ID:          "hostile-conference",
			Title:       "The Hostile Conference",
			Description: "Both parents arrive blaming you for their son's bullying suspension.",
			Difficulty:  "advanced",
			PersonaName: "Rob and Karen Mercer",
			PersonaRole: "parent",
			Situation: "Your son Tyler was suspended for bullying. You believe the school " +
				"singled him out and that the teacher has had it in for him all year. You " +
				"arrive hostile, talk over the teacher, and threaten to go to the principal. " +
				"You only de-escalate when shown documented incidents calmly and when your " +
				"concern for Tyler is taken seriously.",
			Objectives: []string{
				"Stay calm under direct hostility",
				"Present documentation without weaponizing it",
				"Redirect the conversation to Tyler's needs",
			},
		},
	}
}

// FindScenario returns the scenario with the given ID, or nil.
func FindScenario(id string) *Scenario {
	for _, s := range Scenarios() {
		if s.ID == id {
			return &s
		}
	}
	return nil
}
