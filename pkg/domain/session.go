package domain

// Status defines the coarse lifecycle tag of a session.
type Status string

const (
	StatusInactive   Status = "inactive"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// HistoryEntry records one resolved choice.
type HistoryEntry struct {
	PhaseID     string `json:"phaseId"`
	ChoiceLabel string `json:"choiceLabel"`
	Points      int    `json:"points"`
}

// Session represents a user's persisted progress through the phase graph.
//
// Invariants: TotalPoints equals the sum of Points over History;
// CurrentPhaseID is TerminalPhaseID exactly when Status is completed;
// History is append-only.
type Session struct {
	UserID string `json:"userId"`

	// DisplayName is the platform profile name captured on follow.
	DisplayName string `json:"displayName,omitempty"`

	Status         Status         `json:"status"`
	CurrentPhaseID string         `json:"currentPhaseId"`
	TotalPoints    int            `json:"totalPoints"`
	History        []HistoryEntry `json:"history"`
}

// NewSession creates a fresh in-progress session at the entry phase.
func NewSession(userID, entryPhaseID string) *Session {
	return &Session{
		UserID:         userID,
		Status:         StatusInProgress,
		CurrentPhaseID: entryPhaseID,
		TotalPoints:    0,
		History:        []HistoryEntry{},
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	cp := *s
	cp.History = make([]HistoryEntry, len(s.History))
	copy(cp.History, s.History)
	return &cp
}

// Completed reports whether the session reached the terminal state.
func (s *Session) Completed() bool {
	return s.Status == StatusCompleted
}

// SessionUpdate is a field-level partial update for a session document.
// Nil fields are left untouched by the store.
type SessionUpdate struct {
	DisplayName    *string         `json:"displayName,omitempty"`
	Status         *Status         `json:"status,omitempty"`
	CurrentPhaseID *string         `json:"currentPhaseId,omitempty"`
	TotalPoints    *int            `json:"totalPoints,omitempty"`
	History        *[]HistoryEntry `json:"history,omitempty"`
}

// UpdateFrom builds the full update that makes a stored document match s.
func UpdateFrom(s *Session) SessionUpdate {
	history := make([]HistoryEntry, len(s.History))
	copy(history, s.History)
	return SessionUpdate{
		Status:         &s.Status,
		CurrentPhaseID: &s.CurrentPhaseID,
		TotalPoints:    &s.TotalPoints,
		History:        &history,
	}
}

// Apply merges the update into the session in place.
func (u SessionUpdate) Apply(s *Session) {
	if u.DisplayName != nil {
		s.DisplayName = *u.DisplayName
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
	if u.CurrentPhaseID != nil {
		s.CurrentPhaseID = *u.CurrentPhaseID
	}
	if u.TotalPoints != nil {
		s.TotalPoints = *u.TotalPoints
	}
	if u.History != nil {
		s.History = make([]HistoryEntry, len(*u.History))
		copy(s.History, *u.History)
	}
}
