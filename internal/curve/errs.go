package curve

import "errors"

var (
	// ErrInvalidPointCount indicates a non-positive point count; the curve
	// formula is undefined at zero points.
	ErrInvalidPointCount = errors.New("curve: point count must be positive")

	// ErrZeroTheoreticalMean indicates that efficiency cannot be computed
	// because the theoretical mean is zero.
	ErrZeroTheoreticalMean = errors.New("curve: theoretical mean is zero")
)
