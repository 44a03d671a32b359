package xaj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearReservoir_ZeroK_PassThrough(t *testing.T) {
	// GIVEN a reservoir with no recession
	lr := LinearReservoir{K: 0, Q0: 0.01}
	inflow := []float64{1, 4, 0, 2.5}

	// WHEN the inflow is routed
	got := lr.Route(inflow)

	// THEN the output is the inflow unchanged
	assert.Equal(t, inflow, got)
}

func TestLinearReservoir_KNearOne_HoldsPreviousOutflow(t *testing.T) {
	// GIVEN a reservoir with recession approaching 1
	lr := LinearReservoir{K: 0.999999, Q0: 5}
	inflow := []float64{100, 0, 42}

	// WHEN the inflow is routed
	got := lr.Route(inflow)

	// THEN each output stays within a whisker of the previous outflow
	prev := lr.Q0
	for t_, q := range got {
		if math.Abs(q-prev) > 1e-3*(math.Abs(prev)+100) {
			t.Errorf("step %d: q=%g drifted from previous %g", t_, q, prev)
		}
		prev = q
	}
}

func TestLinearReservoir_Recurrence(t *testing.T) {
	// GIVEN a mid-range recession coefficient
	lr := LinearReservoir{K: 0.4, Q0: 2}

	// WHEN a short series is routed
	got := lr.Route([]float64{10, 5})

	// THEN q[t] = inflow[t]*(1-k) + q[t-1]*k
	want0 := 10*0.6 + 2*0.4
	want1 := 5*0.6 + want0*0.4
	assert.InDelta(t, want0, got[0], 1e-12)
	assert.InDelta(t, want1, got[1], 1e-12)
}

func TestUnitHydrograph_SingleOrdinate_Identity(t *testing.T) {
	// GIVEN the degenerate kernel [1.0]
	uh := UnitHydrograph{Ordinates: []float64{1.0}}
	inflow := []float64{3, 0, 7, 1}

	// WHEN the inflow is routed
	got := uh.Route(inflow)

	// THEN the output is a zero-delay pass-through of the inflow
	assert.Equal(t, inflow, got)
}

func TestUnitHydrograph_SpreadsPulseCausally(t *testing.T) {
	// GIVEN a 3-ordinate kernel and a single unit pulse at t=1
	uh := UnitHydrograph{Ordinates: []float64{0.2, 0.5, 0.3}}
	inflow := []float64{0, 1, 0, 0, 0}

	// WHEN the pulse is routed
	got := uh.Route(inflow)

	// THEN the kernel appears shifted to the pulse time and nothing
	// arrives before it
	want := []float64{0, 0.2, 0.5, 0.3, 0}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "step %d", i)
	}
}

func TestUnitHydrograph_OutputLengthMatchesInput(t *testing.T) {
	// GIVEN a kernel longer than the inflow series
	uh := UnitHydrograph{Ordinates: []float64{0.25, 0.25, 0.25, 0.25}}

	// WHEN a 2-step series is routed
	got := uh.Route([]float64{8, 4})

	// THEN the output covers exactly the input timesteps
	if len(got) != 2 {
		t.Fatalf("output length: got %d, want 2", len(got))
	}
	assert.InDelta(t, 2.0, got[0], 1e-12)
	assert.InDelta(t, 3.0, got[1], 1e-12)
}
