package xaj

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunMetrics aggregates one basin's simulated discharge series for final
// reporting. Useful for eyeballing mass behavior and comparing partitioning
// variants over the same forcing.
type RunMetrics struct {
	Basin          string
	Timesteps      int
	TotalDischarge float64 // sum of q over the run
	MeanDischarge  float64
	PeakDischarge  float64
	PeakStep       int // timestep index of the peak
}

// Summarize computes RunMetrics for one basin's discharge series.
func Summarize(basin string, q []float64) RunMetrics {
	m := RunMetrics{Basin: basin, Timesteps: len(q)}
	if len(q) == 0 {
		return m
	}
	m.TotalDischarge = floats.Sum(q)
	m.MeanDischarge = stat.Mean(q, nil)
	m.PeakStep = floats.MaxIdx(q)
	m.PeakDischarge = q[m.PeakStep]
	return m
}

// Print displays the per-basin summary at the end of a run.
func (m RunMetrics) Print() {
	fmt.Printf("=== Basin %s ===\n", m.Basin)
	fmt.Printf("Timesteps       : %d\n", m.Timesteps)
	fmt.Printf("Total discharge : %.4f\n", m.TotalDischarge)
	fmt.Printf("Mean discharge  : %.4f\n", m.MeanDischarge)
	fmt.Printf("Peak discharge  : %.4f (step %d)\n", m.PeakDischarge, m.PeakStep)
}
