// Package session holds the explicit per-conversation state that the
// dashboard UI used to keep as ambient globals: chat history, the selected
// question buffer, and the machine/period the charts are pinned to.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/machine"
)

// Message is one chat history entry.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session is the state of one dashboard conversation.
type Session struct {
	mu sync.Mutex

	ID               string
	Machine          string
	Period           curve.Period
	SelectedQuestion string

	messages []Message
	lastSeen time.Time
	welcome  string
}

// suggestionWindow: suggested questions stay visible while the history is
// still this short.
const suggestionWindow = 6

func newSession(id, welcome string) *Session {
	s := &Session{
		ID:       id,
		Machine:  machine.H75,
		Period:   curve.Week,
		lastSeen: time.Now(),
		welcome:  welcome,
	}
	s.messages = []Message{{Role: "assistant", Content: welcome}}
	return s
}

// Append adds one message to the history.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: role, Content: content})
	s.lastSeen = time.Now()
}

// History returns a copy of the chat history.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ShowSuggestions reports whether the suggested-question buttons should
// still be offered.
func (s *Session) ShowSuggestions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages) <= suggestionWindow
}

// Select stores the chosen suggested question; Take consumes it.
func (s *Session) Select(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedQuestion = question
	s.lastSeen = time.Now()
}

// Take returns the pending selected question and clears the buffer.
func (s *Session) Take() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.SelectedQuestion
	s.SelectedQuestion = ""
	return q
}

// SetView pins the session to a machine and period.
func (s *Session) SetView(machineID string, period curve.Period) error {
	if _, err := machine.Lookup(machineID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Machine = machineID
	s.Period = period
	s.lastSeen = time.Now()
	return nil
}

// View returns the pinned machine and period.
func (s *Session) View() (string, curve.Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Machine, s.Period
}

// Clear resets the history to the welcome message and drops any selected
// question.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []Message{{Role: "assistant", Content: s.welcome}}
	s.SelectedQuestion = ""
	s.lastSeen = time.Now()
}

// Manager owns all live sessions, keyed by opaque IDs.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	welcome  string
	maxIdle  time.Duration
}

// NewManager creates a session manager. maxIdle <= 0 disables eviction.
func NewManager(welcome string, maxIdle time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		welcome:  welcome,
		maxIdle:  maxIdle,
	}
}

// Get returns the session for id, creating a new one (with a fresh uuid)
// when id is empty or unknown.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}

	s := newSession(uuid.NewString(), m.welcome)
	m.sessions[s.ID] = s
	return s
}

// Evict removes sessions idle longer than maxIdle and returns how many were
// dropped.
func (m *Manager) Evict() int {
	if m.maxIdle <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.maxIdle)
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
