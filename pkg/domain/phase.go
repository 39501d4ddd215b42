package domain

// TerminalPhaseID is the reserved phase id meaning "game over".
// It is distinct from every real phase id in the scenario graph.
const TerminalPhaseID = "end"

// Choice is one selectable option within a phase.
type Choice struct {
	// Label is the human-readable name of the choice.
	Label string `json:"label" yaml:"label"`

	// Points is the number of drink points the choice is worth. Never negative.
	Points int `json:"points" yaml:"points"`

	// Reaction is the narrative text shown after the choice is made.
	Reaction string `json:"reaction" yaml:"reaction"`
}

// Phase represents one node of the scenario graph.
type Phase struct {
	ID string `json:"id" yaml:"id"`

	// Prompt is the narrative text shown to the user when the phase is entered.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Choices are the selectable options, answered by 1-based index.
	// At least one choice per phase.
	Choices []Choice `json:"choices" yaml:"choices"`

	// Next is the id of the successor phase, or TerminalPhaseID.
	Next string `json:"next" yaml:"next"`
}

// ChoiceAt returns the choice for a 1-based index, or false when the index
// is out of range.
func (p *Phase) ChoiceAt(index int) (Choice, bool) {
	if index < 1 || index > len(p.Choices) {
		return Choice{}, false
	}
	return p.Choices[index-1], true
}
