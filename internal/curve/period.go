package curve

import "fmt"

// Period is the reporting granularity. It controls both the scale factor
// applied to a machine's baseline and the canonical number of points shown.
type Period string

const (
	Day   Period = "Día"
	Week  Period = "Semana"
	Month Period = "Mes"
)

// Factor returns the scale applied to base and amplitudes for this period.
// An unrecognized period deliberately falls back to 1 so that callers that
// bypass ParsePeriod still get the weekly baseline.
func (p Period) Factor() float64 {
	switch p {
	case Day:
		return 1.0 / 7.0 // one seventh of the weekly baseline
	case Week:
		return 1
	case Month:
		return 4.33 // ~4.33 weeks per month
	default:
		return 1
	}
}

// Points returns the canonical display point count: 30 days, 24 weeks,
// 12 months. Unrecognized periods use the weekly count.
func (p Period) Points() int {
	switch p {
	case Day:
		return 30
	case Week:
		return 24
	case Month:
		return 12
	default:
		return 24
	}
}

// Unit returns the consumption unit label for this period.
func (p Period) Unit() string {
	switch p {
	case Day:
		return "kWh/día"
	case Month:
		return "kWh/mes"
	default:
		return "kWh/semana"
	}
}

// ParsePeriod validates a period string at the API boundary. Unlike
// Factor, it rejects unknown values.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Day, Week, Month:
		return Period(s), nil
	}
	// Accept the accent-free spellings query strings tend to carry.
	switch s {
	case "Dia", "dia", "día":
		return Day, nil
	case "semana":
		return Week, nil
	case "mes":
		return Month, nil
	}
	return "", fmt.Errorf("curve: unknown period %q", s)
}

// Periods lists the selectable periods in display order.
func Periods() []Period {
	return []Period{Day, Week, Month}
}
