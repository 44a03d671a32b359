package xaj

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ordinateSumTol bounds how far a unit-hydrograph kernel's mass may drift
// from 1 before it is rejected as invalid.
const ordinateSumTol = 1e-6

// OrdinateGenerator produces unit-hydrograph ordinates from a shape
// parameter. Generation (e.g. the GR4J S-curve construction) is an external
// collaborator; this package only consumes and validates its output.
type OrdinateGenerator func(shape float64) []float64

// ValidateOrdinates checks that a kernel is non-empty, finite, non-negative
// and conserves mass (ordinates sum to 1 within tolerance).
func ValidateOrdinates(ordinates []float64) error {
	if len(ordinates) == 0 {
		return fmt.Errorf("unit hydrograph: empty ordinate sequence")
	}
	for i, o := range ordinates {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return fmt.Errorf("unit hydrograph: ordinate %d is not finite", i)
		}
		if o < 0 {
			return fmt.Errorf("unit hydrograph: ordinate %d is negative (%g)", i, o)
		}
	}
	if sum := floats.Sum(ordinates); math.Abs(sum-1) > ordinateSumTol {
		return fmt.Errorf("unit hydrograph: ordinates sum to %g, want 1", sum)
	}
	return nil
}

// OrdinatesFrom invokes an external ordinate generator with the given shape
// parameter and validates the returned kernel before handing it to the
// router.
func OrdinatesFrom(gen OrdinateGenerator, shape float64) ([]float64, error) {
	if gen == nil {
		return nil, fmt.Errorf("unit hydrograph: nil ordinate generator")
	}
	ordinates := gen(shape)
	if err := ValidateOrdinates(ordinates); err != nil {
		return nil, fmt.Errorf("generated for shape %g: %w", shape, err)
	}
	return ordinates, nil
}
