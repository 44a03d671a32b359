package xaj

import "fmt"

// NetRainfallEps is the threshold below which a timestep's net rainfall is
// treated as zero by the source partitioners: the free-water tank is deemed
// unchanged (fr = fr0) instead of dividing runoff by a vanishing pe.
const NetRainfallEps = 1e-5

// Parameters holds the time-invariant XAJ parameter set for one basin.
// KI, KG, CI, CG and CS are defined on a 24-hour timestep; the sub-stepped
// source partitioner converts KI/KG to the configured interval.
type Parameters struct {
	UM float64 // upper soil layer capacity, mm (> 0)
	LM float64 // lower soil layer capacity, mm (> 0)
	DM float64 // deep soil layer capacity, mm (> 0)
	C  float64 // deep-layer evaporation coefficient (0..1)
	B  float64 // soil storage heterogeneity exponent (> 0)
	IM float64 // impervious area fraction (0 <= IM < 1)
	SM float64 // free-water tank capacity, mm (> 0)
	EX float64 // free-water heterogeneity exponent (> 0)
	KI float64 // interflow outflow coefficient (>= 0, KI+KG < 1)
	KG float64 // groundwater outflow coefficient (>= 0, KI+KG < 1)
	CI float64 // interflow reservoir recession coefficient (0 <= CI < 1)
	CG float64 // groundwater reservoir recession coefficient (0 <= CG < 1)
	CS float64 // surface reservoir recession coefficient (0 <= CS < 1); unused in unit-hydrograph mode
}

// WM returns the total areal mean tension water capacity UM+LM+DM.
func (p Parameters) WM() float64 { return p.UM + p.LM + p.DM }

// State is the full mutable hydrologic state of one basin. Components never
// mutate a State in place; each step consumes the previous State and returns
// a new one, so the driver is the sole owner.
type State struct {
	WU float64 // upper layer tension water, 0 <= WU <= UM
	WL float64 // lower layer tension water, 0 <= WL <= LM
	WD float64 // deep layer tension water, 0 <= WD <= DM
	S  float64 // free-water tank storage depth, >= 0
	FR float64 // runoff-producing area fraction, 0 < FR <= 1
	QS float64 // surface reservoir outflow
	QI float64 // interflow reservoir outflow
	QG float64 // groundwater reservoir outflow
}

// DefaultState returns the empirical warm-start state for a parameter set:
// soil layers and the tank at 60% capacity, a 2% producing area, and a small
// positive outflow in each routing reservoir.
func DefaultState(p Parameters) State {
	return State{
		WU: 0.6 * p.UM,
		WL: 0.6 * p.LM,
		WD: 0.6 * p.DM,
		S:  0.6 * p.SM,
		FR: 0.02,
		QS: 0.01,
		QI: 0.01,
		QG: 0.01,
	}
}

// Forcing is one timestep of basin-mean meteorological input.
// Negative values are clamped to zero by the engine before use.
type Forcing struct {
	Prcp float64 // precipitation, mm
	PET  float64 // potential evapotranspiration, mm
}

// SourceMethod selects the free-water-tank partitioning algorithm.
// Resolved once at simulator construction, never re-checked per step.
type SourceMethod int

const (
	// SourceSingle applies the closed-form tank update once per timestep.
	SourceSingle SourceMethod = iota
	// SourceSliced divides each timestep's runoff into <5mm slices and
	// iterates the tank update once per slice.
	SourceSliced
)

// ParseSourceMethod maps the configuration names "sources" and "sources5mm"
// to their SourceMethod values. Unknown names are a configuration error.
func ParseSourceMethod(name string) (SourceMethod, error) {
	switch name {
	case "sources":
		return SourceSingle, nil
	case "sources5mm":
		return SourceSliced, nil
	default:
		return 0, fmt.Errorf("unknown source method %q (want \"sources\" or \"sources5mm\")", name)
	}
}

func (m SourceMethod) String() string {
	switch m {
	case SourceSingle:
		return "sources"
	case SourceSliced:
		return "sources5mm"
	default:
		return fmt.Sprintf("SourceMethod(%d)", int(m))
	}
}

// SourceBook selects between the two published formulations of the
// sub-stepped partitioner. The two texts derive structurally parallel but
// deliberately different slice updates; both are kept verbatim.
type SourceBook int

const (
	// BookShuiWenYuBao follows <<ShuiWenYuBao>> 5th edition.
	BookShuiWenYuBao SourceBook = iota
	// BookGongChengShuiWenXue follows <<GongChengShuiWenXue>> 3rd edition.
	BookGongChengShuiWenXue
)

// ParseSourceBook maps the configuration names to their SourceBook values.
func ParseSourceBook(name string) (SourceBook, error) {
	switch name {
	case "ShuiWenYuBao":
		return BookShuiWenYuBao, nil
	case "GongChengShuiWenXue":
		return BookGongChengShuiWenXue, nil
	default:
		return 0, fmt.Errorf("unknown source book %q (want \"ShuiWenYuBao\" or \"GongChengShuiWenXue\")", name)
	}
}

func (b SourceBook) String() string {
	switch b {
	case BookShuiWenYuBao:
		return "ShuiWenYuBao"
	case BookGongChengShuiWenXue:
		return "GongChengShuiWenXue"
	default:
		return fmt.Sprintf("SourceBook(%d)", int(b))
	}
}

// Config groups the run-wide simulation options. Zero value means: standard
// single-step partitioning, ShuiWenYuBao book, daily timestep, linear
// reservoir surface routing.
type Config struct {
	Source SourceMethod // partitioning variant
	Book   SourceBook   // formulation used when Source == SourceSliced
	// IntervalHours is the simulation timestep length in hours (default 24).
	// KI/KG are defined per day and converted to this interval by the
	// sub-stepped partitioner.
	IntervalHours int
	// UH holds externally supplied unit-hydrograph ordinates. Nil selects
	// linear-reservoir surface routing with CS; non-nil selects convolution
	// routing for the surface component.
	UH []float64
}
