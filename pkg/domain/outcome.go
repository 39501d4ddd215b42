package domain

// OutcomeKind defines the category of an advance result.
type OutcomeKind string

const (
	// OutcomeAdvanced means a valid choice was resolved and the session
	// moved to the next phase.
	OutcomeAdvanced OutcomeKind = "advanced"

	// OutcomeCompleted means the choice pushed the session into the
	// terminal state.
	OutcomeCompleted OutcomeKind = "completed"

	// OutcomeReprompt means the input did not parse as a valid choice
	// index; the current phase is re-displayed and nothing is mutated.
	OutcomeReprompt OutcomeKind = "reprompt"

	// OutcomeAlreadyFinished means the session was already terminal.
	OutcomeAlreadyFinished OutcomeKind = "already_finished"

	// OutcomeIntegrityFault means the session referenced an unknown phase.
	OutcomeIntegrityFault OutcomeKind = "integrity_fault"
)

// Outcome describes the result of advancing a session.
type Outcome struct {
	Kind OutcomeKind

	// Reaction is the chosen option's reaction text (Advanced, Completed).
	Reaction string

	// Points is the raw point value of the chosen option (Advanced, Completed).
	Points int

	// TotalPoints is the accumulator after the choice (Advanced, Completed).
	TotalPoints int

	// Phase is the phase to display: the current phase on Reprompt, the
	// successor on Advanced. Nil otherwise.
	Phase *Phase
}
