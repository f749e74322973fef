package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sume/estra/internal/machine"
)

func TestGenerate_Deterministic(t *testing.T) {
	for _, id := range machine.IDs() {
		for _, p := range Periods() {
			a, err := Generate(id, p, p.Points())
			require.NoError(t, err, "%s/%s", id, p)
			b, err := Generate(id, p, p.Points())
			require.NoError(t, err)

			assert.Equal(t, a.T, b.T)
			assert.Equal(t, a.Theoretical, b.Theoretical, "theoretical must be bit-identical")
			assert.Equal(t, a.Actual, b.Actual, "actual must be bit-identical")
		}
	}
}

func TestGenerate_BoundaryClosure(t *testing.T) {
	for _, id := range machine.IDs() {
		prof, err := machine.Lookup(id)
		require.NoError(t, err)

		for _, p := range Periods() {
			s, err := Generate(id, p, p.Points())
			require.NoError(t, err)

			scaledBase := prof.Base * p.Factor()
			last := len(s.Theoretical) - 1
			assert.Equal(t, scaledBase, s.Theoretical[0], "%s/%s theoretical[0]", id, p)
			assert.Equal(t, scaledBase, s.Theoretical[last])
			assert.Equal(t, scaledBase, s.Actual[0])
			assert.Equal(t, scaledBase, s.Actual[last])
		}
	}
}

func TestGenerate_Lengths(t *testing.T) {
	for _, n := range []int{1, 2, 12, 24, 30, 100} {
		s, err := Generate(machine.H75, Week, n)
		require.NoError(t, err)
		assert.Len(t, s.T, n)
		assert.Len(t, s.Theoretical, n)
		assert.Len(t, s.Actual, n)
	}
}

func TestGenerate_H75Week(t *testing.T) {
	s, err := Generate(machine.H75, Week, 24)
	require.NoError(t, err)

	require.Len(t, s.T, 24)
	for i, ti := range s.T {
		assert.Equal(t, i+1, ti, "indices are 1-based")
	}

	assert.Equal(t, 180.0, s.Theoretical[0])
	assert.Equal(t, 180.0, s.Theoretical[23])
	assert.Equal(t, 180.0, s.Actual[0])
	assert.Equal(t, 180.0, s.Actual[23])

	// Second sample follows the closed-form formula (H75 phases: 0 and π).
	w := 2 * math.Pi * 2 / 24.0
	assert.InDelta(t, 180+35*math.Sin(w), s.Theoretical[1], 1e-12)
	assert.InDelta(t, 180-25*math.Sin(w+math.Pi), s.Actual[1], 1e-12)
}

func TestGenerate_PeriodScaling(t *testing.T) {
	s, err := Generate(machine.H75, Day, 30)
	require.NoError(t, err)
	assert.InDelta(t, 180.0/7.0, s.Theoretical[0], 1e-9, "daily baseline is 1/7 of weekly")

	s, err = Generate(machine.H75, Month, 12)
	require.NoError(t, err)
	assert.InDelta(t, 180.0*4.33, s.Theoretical[0], 1e-9)
}

func TestGenerate_UnknownMachine(t *testing.T) {
	_, err := Generate("UnknownMachine", Week, 24)
	require.Error(t, err)
	assert.ErrorIs(t, err, machine.ErrUnknownMachine)
}

func TestGenerate_RejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1, -24} {
		_, err := Generate(machine.H75, Week, n)
		assert.ErrorIs(t, err, ErrInvalidPointCount, "n=%d", n)
	}
}

func TestGenerateDefault_UsesCanonicalCount(t *testing.T) {
	s, err := GenerateDefault(machine.Extrusora, Month)
	require.NoError(t, err)
	assert.Len(t, s.T, 12)
}

func TestPeriod_FactorFallback(t *testing.T) {
	// Unrecognized periods keep the weekly scale rather than failing.
	assert.Equal(t, 1.0, Period("Trimestre").Factor())
	assert.Equal(t, 24, Period("Trimestre").Points())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Semana")
	require.NoError(t, err)
	assert.Equal(t, Week, p)

	p, err = ParsePeriod("Dia")
	require.NoError(t, err)
	assert.Equal(t, Day, p)

	_, err = ParsePeriod("Trimestre")
	assert.Error(t, err)
}
