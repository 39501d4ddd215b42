// Package scenario holds the fixed phase graph of the game and its
// startup-time validation.
package scenario

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

//go:embed scenario.yaml
var defaultTable []byte

// Graph is the read-only phase graph, keyed by phase id.
type Graph struct {
	entryID string
	phases  map[string]*domain.Phase
}

type document struct {
	Entry  string         `yaml:"entry"`
	Phases []domain.Phase `yaml:"phases"`
}

// Load parses and validates the scenario table shipped with the binary.
func Load() (*Graph, error) {
	return Parse(defaultTable)
}

// Parse builds a graph from a YAML document and validates it.
func Parse(data []byte) (*Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario table: %w", err)
	}
	return New(doc.Entry, doc.Phases)
}

// New builds a graph from parsed phases and validates it.
func New(entryID string, phases []domain.Phase) (*Graph, error) {
	g := &Graph{
		entryID: entryID,
		phases:  make(map[string]*domain.Phase, len(phases)),
	}
	for i := range phases {
		p := phases[i]
		if p.ID == domain.TerminalPhaseID {
			return nil, fmt.Errorf("phase id %q collides with the terminal marker", p.ID)
		}
		if _, dup := g.phases[p.ID]; dup {
			return nil, fmt.Errorf("duplicate phase id %q", p.ID)
		}
		g.phases[p.ID] = &p
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// EntryID returns the id of the designated entry phase.
func (g *Graph) EntryID() string {
	return g.entryID
}

// PhaseByID resolves a phase id. The terminal marker is not a phase and
// never resolves.
func (g *Graph) PhaseByID(id string) (*domain.Phase, bool) {
	p, ok := g.phases[id]
	return p, ok
}

// Phases returns all phases, for introspection.
func (g *Graph) Phases() []domain.Phase {
	out := make([]domain.Phase, 0, len(g.phases))
	for _, p := range g.phases {
		out = append(out, *p)
	}
	return out
}

// validate walks the graph from the entry phase and checks the structural
// invariants: every successor resolves or is the terminal marker, the
// terminal marker is reachable, there are no cycles, and every phase has at
// least one choice with non-negative points.
func (g *Graph) validate() error {
	if g.entryID == "" {
		return fmt.Errorf("scenario has no entry phase")
	}
	if _, ok := g.phases[g.entryID]; !ok {
		return fmt.Errorf("entry phase %q not found", g.entryID)
	}

	visited := make(map[string]bool)
	current := g.entryID

	for current != domain.TerminalPhaseID {
		if visited[current] {
			return fmt.Errorf("cycle detected at phase %q", current)
		}
		visited[current] = true

		phase, ok := g.phases[current]
		if !ok {
			return fmt.Errorf("broken link: phase %q not found", current)
		}
		if len(phase.Choices) == 0 {
			return fmt.Errorf("phase %q has no choices", phase.ID)
		}
		for _, c := range phase.Choices {
			if c.Points < 0 {
				return fmt.Errorf("phase %q choice %q has negative points", phase.ID, c.Label)
			}
		}
		current = phase.Next
	}

	// Phases not reachable from the entry are dead data.
	for id := range g.phases {
		if !visited[id] {
			return fmt.Errorf("phase %q is unreachable from the entry phase", id)
		}
	}
	return nil
}
