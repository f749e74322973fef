package curve

import "math"

// Summary holds the fixed statistics derived from one Series.
type Summary struct {
	MeanTheoretical float64 `json:"mean_theoretical"`
	MeanActual      float64 `json:"mean_actual"`
	EfficiencyPct   float64 `json:"efficiency_pct"`
}

// Summarize computes curve means and the efficiency percentage, defined as
// the closeness of the actual mean to the theoretical mean.
func Summarize(s *Series) (Summary, error) {
	if len(s.Theoretical) == 0 {
		return Summary{}, ErrInvalidPointCount
	}

	mt := mean(s.Theoretical)
	ma := mean(s.Actual)
	if mt == 0 {
		return Summary{}, ErrZeroTheoreticalMean
	}

	return Summary{
		MeanTheoretical: mt,
		MeanActual:      ma,
		EfficiencyPct:   (1 - math.Abs(ma-mt)/mt) * 100,
	}, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
