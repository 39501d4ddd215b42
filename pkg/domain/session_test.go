package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_IsIndependent(t *testing.T) {
	s := NewSession("U1", "entry")
	s.History = append(s.History, HistoryEntry{PhaseID: "entry", ChoiceLabel: "ビール", Points: 3})

	cp := s.Clone()
	cp.TotalPoints = 99
	cp.History[0].Points = 99
	cp.History = append(cp.History, HistoryEntry{PhaseID: "phase2-1"})

	assert.Zero(t, s.TotalPoints)
	require.Len(t, s.History, 1)
	assert.Equal(t, 3, s.History[0].Points)
}

func TestSessionUpdate_ApplyPartial(t *testing.T) {
	s := NewSession("U1", "entry")
	s.TotalPoints = 6
	s.History = []HistoryEntry{{PhaseID: "entry", Points: 3}, {PhaseID: "phase2-1", Points: 3}}

	phase := "phase2-2"
	SessionUpdate{CurrentPhaseID: &phase}.Apply(s)

	assert.Equal(t, "phase2-2", s.CurrentPhaseID)
	assert.Equal(t, 6, s.TotalPoints)
	assert.Len(t, s.History, 2)
	assert.Equal(t, StatusInProgress, s.Status)
}

func TestUpdateFrom_RoundTrips(t *testing.T) {
	s := NewSession("U1", "entry")
	s.Status = StatusCompleted
	s.CurrentPhaseID = TerminalPhaseID
	s.TotalPoints = 9
	s.History = []HistoryEntry{{PhaseID: "entry", Points: 3}}

	target := NewSession("U1", "entry")
	UpdateFrom(s).Apply(target)

	assert.Equal(t, s.Status, target.Status)
	assert.Equal(t, s.CurrentPhaseID, target.CurrentPhaseID)
	assert.Equal(t, s.TotalPoints, target.TotalPoints)
	assert.Equal(t, s.History, target.History)
}

func TestChoiceAt(t *testing.T) {
	p := &Phase{
		ID: "entry",
		Choices: []Choice{
			{Label: "a", Points: 3},
			{Label: "b", Points: 2},
		},
	}

	c, ok := p.ChoiceAt(1)
	require.True(t, ok)
	assert.Equal(t, "a", c.Label)

	c, ok = p.ChoiceAt(2)
	require.True(t, ok)
	assert.Equal(t, "b", c.Label)

	for _, index := range []int{0, -1, 3} {
		_, ok := p.ChoiceAt(index)
		assert.False(t, ok, "index %d", index)
	}
}
