package xaj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrdinates(t *testing.T) {
	cases := []struct {
		name      string
		ordinates []float64
		wantErr   bool
	}{
		{"valid kernel", []float64{0.2, 0.5, 0.3}, false},
		{"single ordinate", []float64{1.0}, false},
		{"empty", nil, true},
		{"negative ordinate", []float64{0.6, -0.1, 0.5}, true},
		{"mass deficit", []float64{0.4, 0.4}, true},
		{"NaN", []float64{math.NaN(), 1.0}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrdinates(tc.ordinates)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrdinatesFrom_ValidGenerator(t *testing.T) {
	// GIVEN an external generator producing ceil(2*shape) uniform ordinates
	gen := func(shape float64) []float64 {
		n := int(math.Ceil(2 * shape))
		ords := make([]float64, n)
		for i := range ords {
			ords[i] = 1 / float64(n)
		}
		return ords
	}

	// WHEN ordinates are requested for shape 2.5
	got, err := OrdinatesFrom(gen, 2.5)

	// THEN the 5-ordinate kernel passes validation
	assert.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestOrdinatesFrom_RejectsBadKernel(t *testing.T) {
	// GIVEN a generator that loses mass
	gen := func(shape float64) []float64 { return []float64{0.5} }

	// WHEN ordinates are requested
	_, err := OrdinatesFrom(gen, 1)

	// THEN the kernel is rejected before reaching the router
	assert.Error(t, err)
}

func TestOrdinatesFrom_NilGenerator(t *testing.T) {
	_, err := OrdinatesFrom(nil, 1)
	assert.Error(t, err)
}
