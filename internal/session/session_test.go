package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/machine"
)

func TestManager_GetCreatesAndReuses(t *testing.T) {
	m := NewManager("hola", 0)

	s := m.Get("")
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	again := m.Get(s.ID)
	assert.Same(t, s, again)
	assert.Equal(t, 1, m.Len())

	other := m.Get("no-such-session")
	assert.NotSame(t, s, other)
	assert.Equal(t, 2, m.Len())
}

func TestSession_WelcomeAndClear(t *testing.T) {
	m := NewManager("bienvenido", 0)
	s := m.Get("")

	h := s.History()
	require.Len(t, h, 1)
	assert.Equal(t, "assistant", h[0].Role)
	assert.Equal(t, "bienvenido", h[0].Content)

	s.Append("user", "consumo?")
	s.Append("assistant", "180 kWh")
	s.Select("¿Cómo está la eficiencia?")
	require.Len(t, s.History(), 3)

	s.Clear()
	h = s.History()
	require.Len(t, h, 1)
	assert.Equal(t, "bienvenido", h[0].Content)
	assert.Empty(t, s.Take())
}

func TestSession_SuggestionsWindow(t *testing.T) {
	m := NewManager("hola", 0)
	s := m.Get("")

	assert.True(t, s.ShowSuggestions())
	for i := 0; i < 6; i++ {
		s.Append("user", "x")
	}
	// 7 messages including the welcome: past the window.
	assert.False(t, s.ShowSuggestions())
}

func TestSession_SelectedQuestionBuffer(t *testing.T) {
	m := NewManager("hola", 0)
	s := m.Get("")

	s.Select("¿Cuál es el consumo actual?")
	assert.Equal(t, "¿Cuál es el consumo actual?", s.Take())
	assert.Empty(t, s.Take(), "Take consumes the buffer")
}

func TestSession_SetView(t *testing.T) {
	m := NewManager("hola", 0)
	s := m.Get("")

	mc, p := s.View()
	assert.Equal(t, machine.H75, mc)
	assert.Equal(t, curve.Week, p)

	require.NoError(t, s.SetView(machine.Extrusora, curve.Month))
	mc, p = s.View()
	assert.Equal(t, machine.Extrusora, mc)
	assert.Equal(t, curve.Month, p)

	err := s.SetView("Prensa X", curve.Day)
	assert.ErrorIs(t, err, machine.ErrUnknownMachine)
}

func TestManager_Evict(t *testing.T) {
	m := NewManager("hola", 10*time.Millisecond)
	s := m.Get("")
	keep := m.Get("")

	time.Sleep(20 * time.Millisecond)
	keep.Append("user", "sigo aquí")

	n := m.Evict()
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, m.Len())

	// The evicted ID now creates a fresh session.
	fresh := m.Get(s.ID)
	assert.NotEqual(t, s.ID, fresh.ID)
}
