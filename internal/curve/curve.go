// Package curve generates the synthetic energy curves plotted on the
// dashboard and their derived statistics. Generation is pure and
// deterministic: the same machine, period and point count always produce
// bit-identical series, which is what keeps this package testable without
// any fixtures.
package curve

import (
	"math"

	"github.com/sume/estra/internal/machine"
)

// Series is one generated pair of curves. T holds 1-based time indices;
// Theoretical and Actual have the same length as T.
type Series struct {
	Machine     string    `json:"machine"`
	Period      Period    `json:"period"`
	T           []int     `json:"t"`
	Theoretical []float64 `json:"theoretical"`
	Actual      []float64 `json:"actual"`
}

// Generate produces the synthetic curve pair for one cost center.
//
// Both curves oscillate around the period-scaled baseline and are forced to
// start and end exactly on it, so a full cycle closes on itself.
func Generate(machineID string, period Period, pointCount int) (*Series, error) {
	if pointCount <= 0 {
		return nil, ErrInvalidPointCount
	}

	p, err := machine.Lookup(machineID)
	if err != nil {
		return nil, err
	}

	f := period.Factor()
	base := p.Base * f
	ampTheo := p.AmpTheoretical * f
	ampActual := p.AmpActual * f

	s := &Series{
		Machine:     machineID,
		Period:      period,
		T:           make([]int, pointCount),
		Theoretical: make([]float64, pointCount),
		Actual:      make([]float64, pointCount),
	}

	for i := 0; i < pointCount; i++ {
		t := float64(i + 1)
		w := 2 * math.Pi * t / float64(pointCount)
		s.T[i] = i + 1
		s.Theoretical[i] = base + ampTheo*math.Sin(w+p.PhaseTheoretical)
		s.Actual[i] = base - ampActual*math.Sin(w+p.PhaseActual)
	}

	// Boundary closure: first and last samples sit on the scaled baseline.
	s.Theoretical[0] = base
	s.Theoretical[pointCount-1] = base
	s.Actual[0] = base
	s.Actual[pointCount-1] = base

	return s, nil
}

// GenerateDefault generates the series with the period's canonical point count.
func GenerateDefault(machineID string, period Period) (*Series, error) {
	return Generate(machineID, period, period.Points())
}
