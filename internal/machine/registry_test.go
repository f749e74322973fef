package machine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownProfiles(t *testing.T) {
	p, err := Lookup(H75)
	require.NoError(t, err)
	assert.Equal(t, 180.0, p.Base)
	assert.Equal(t, 35.0, p.AmpTheoretical)
	assert.Equal(t, 25.0, p.AmpActual)
	assert.Equal(t, 0.0, p.PhaseTheoretical)
	assert.Equal(t, math.Pi, p.PhaseActual)

	p, err = Lookup(Extrusora)
	require.NoError(t, err)
	assert.Equal(t, 220.0, p.Base)
	assert.Equal(t, math.Pi/4, p.PhaseTheoretical)
	assert.Equal(t, -math.Pi/4, p.PhaseActual)

	p, err = Lookup(Inyectora)
	require.NoError(t, err)
	assert.Equal(t, 160.0, p.Base)
	assert.Equal(t, math.Pi/2, p.PhaseTheoretical)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("Prensa X")
	assert.ErrorIs(t, err, ErrUnknownMachine)

	_, err = InfoFor("Prensa X")
	assert.ErrorIs(t, err, ErrUnknownMachine)

	_, err = StatusFor("Prensa X")
	assert.ErrorIs(t, err, ErrUnknownMachine)
}

func TestIDs_ExactlyThree(t *testing.T) {
	ids := IDs()
	require.Len(t, ids, 3)
	assert.Equal(t, []string{H75, Extrusora, Inyectora}, ids)

	for _, id := range ids {
		_, err := Lookup(id)
		assert.NoError(t, err)
		_, err = InfoFor(id)
		assert.NoError(t, err)
		status, err := StatusFor(id)
		assert.NoError(t, err)
		assert.NotEmpty(t, status)
	}
}
