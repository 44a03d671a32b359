package xaj

// SurfaceRouter converts the combined (pervious + impervious) surface-runoff
// series into a surface discharge series of the same length. Two
// implementations exist: LinearReservoir (single-pole recession) and
// UnitHydrograph (causal convolution against a fixed kernel). The router is
// chosen once per simulation run.
type SurfaceRouter interface {
	Route(inflow []float64) []float64
}

// LinearReservoir routes inflow through a first-order storage,
// q[t] = inflow[t]*(1-k) + q[t-1]*k. K=0 is pass-through; as K approaches 1
// the output holds near the previous outflow regardless of inflow.
type LinearReservoir struct {
	K  float64 // recession coefficient, 0 <= K < 1
	Q0 float64 // outflow before the first timestep
}

func (lr LinearReservoir) Route(inflow []float64) []float64 {
	q := make([]float64, len(inflow))
	prev := lr.Q0
	for t, in := range inflow {
		prev = in*(1-lr.K) + prev*lr.K
		q[t] = prev
	}
	return q
}

// UnitHydrograph routes inflow by discrete causal convolution against its
// ordinate kernel. The full convolution has len(inflow)+len(ordinates)-1
// terms; Route returns the first len(inflow) of them, which is all the
// driver consumes.
type UnitHydrograph struct {
	Ordinates []float64
}

func (u UnitHydrograph) Route(inflow []float64) []float64 {
	q := make([]float64, len(inflow))
	for t := range inflow {
		for j, o := range u.Ordinates {
			if j > t {
				break
			}
			q[t] += inflow[t-j] * o
		}
	}
	return q
}
