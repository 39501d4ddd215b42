// Package engine implements the session state machine core.
package engine

import (
	"strconv"
	"strings"

	"github.com/sakenomibu/nomibot/pkg/domain"
	"github.com/sakenomibu/nomibot/pkg/scenario"
)

// DefaultThreshold is the cumulative point value at which a session
// transitions to completed.
const DefaultThreshold = 8

// Engine advances sessions through the scenario graph. It is pure: Advance
// never performs I/O and never mutates its input session.
type Engine struct {
	graph     *scenario.Graph
	threshold int
}

// New creates an engine over the given graph. A threshold <= 0 falls back
// to DefaultThreshold.
func New(graph *scenario.Graph, threshold int) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{graph: graph, threshold: threshold}
}

// Threshold returns the completion threshold in effect.
func (e *Engine) Threshold() int {
	return e.threshold
}

// NewSession creates a fresh session at the entry phase. It is also the
// restart path: the caller overwrites the stored record with the result.
func (e *Engine) NewSession(userID string) *domain.Session {
	return domain.NewSession(userID, e.graph.EntryID())
}

// EntryPhase returns the designated entry phase.
func (e *Engine) EntryPhase() *domain.Phase {
	p, _ := e.graph.PhaseByID(e.graph.EntryID())
	return p
}

// Advance resolves one inbound input against the session and returns the
// new session state plus the outcome to render. The input session is never
// mutated; callers persist the returned session.
func (e *Engine) Advance(session *domain.Session, rawInput string) (*domain.Session, domain.Outcome) {
	if session.Completed() {
		return session.Clone(), domain.Outcome{Kind: domain.OutcomeAlreadyFinished}
	}

	phase, ok := e.graph.PhaseByID(session.CurrentPhaseID)
	if !ok {
		// The stored phase id no longer resolves. Recoverable data fault,
		// the session is left untouched.
		return session.Clone(), domain.Outcome{Kind: domain.OutcomeIntegrityFault}
	}

	choice, ok := parseChoice(phase, rawInput)
	if !ok {
		// Unrecognized input re-displays the prompt without mutation, so
		// this path is safe to hit any number of times.
		return session.Clone(), domain.Outcome{Kind: domain.OutcomeReprompt, Phase: phase}
	}

	next := session.Clone()
	next.TotalPoints += choice.Points
	next.History = append(next.History, domain.HistoryEntry{
		PhaseID:     phase.ID,
		ChoiceLabel: choice.Label,
		Points:      choice.Points,
	})

	// Crossing the threshold terminates the game. Walking off the end of
	// the graph terminates it too, keeping "terminal iff completed" intact.
	if next.TotalPoints >= e.threshold || phase.Next == domain.TerminalPhaseID {
		next.Status = domain.StatusCompleted
		next.CurrentPhaseID = domain.TerminalPhaseID
		return next, domain.Outcome{
			Kind:        domain.OutcomeCompleted,
			Reaction:    choice.Reaction,
			Points:      choice.Points,
			TotalPoints: next.TotalPoints,
		}
	}

	next.Status = domain.StatusInProgress
	next.CurrentPhaseID = phase.Next

	nextPhase, ok := e.graph.PhaseByID(phase.Next)
	if !ok {
		// Points and history are already committed on next; only the
		// prompt for the successor cannot be rendered.
		return next, domain.Outcome{Kind: domain.OutcomeIntegrityFault}
	}

	return next, domain.Outcome{
		Kind:        domain.OutcomeAdvanced,
		Reaction:    choice.Reaction,
		Points:      choice.Points,
		TotalPoints: next.TotalPoints,
		Phase:       nextPhase,
	}
}

// parseChoice interprets rawInput as a 1-based choice index for the phase.
func parseChoice(phase *domain.Phase, rawInput string) (domain.Choice, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(rawInput))
	if err != nil {
		return domain.Choice{}, false
	}
	return phase.ChoiceAt(index)
}
