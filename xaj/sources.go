package xaj

import "math"

// SourceResult carries one timestep of source partitioning output: the
// surface, interflow and groundwater runoff components plus the updated
// free-water tank state carried to the next step.
type SourceResult struct {
	RS float64 // surface runoff component
	RI float64 // interflow runoff component
	RG float64 // groundwater runoff component
	FR float64 // producing area fraction after the step
	S  float64 // tank storage after the step
}

// PartitionSources splits generated runoff into surface, interflow and
// groundwater components with a single closed-form free-water-tank update
// (<<ShuiWenYuBao>> 5th ed., eq. 2.84-2.88).
//
// When pe falls below NetRainfallEps the step is treated as producing no
// tank change: the producing area fraction is held at fr0 instead of
// evaluating r/pe against a vanishing denominator. Antecedent storage over
// the new producing area is capped at SM before the fractional power so the
// capacity curve never sees a negative base. Small negative component values
// from floating-point error are floored at zero.
func PartitionSources(p Parameters, pe, r, s0, fr0 float64) SourceResult {
	ms := p.SM * (1 + p.EX)

	fr := fr0
	if pe >= NetRainfallEps {
		// Floored at 0.001 so a runoff that floating-point error floored
		// to zero cannot zero the divisor below.
		fr = clamp(r/pe, 0.001, 1)
	}

	// Tank storage re-expressed over the current producing area.
	su := fr0 * s0 / fr
	if su > p.SM {
		su = p.SM
	}

	au := ms * (1 - math.Pow(1-su/p.SM, 1/(1+p.EX)))
	var rs float64
	if pe+au < ms {
		rs = fr * (pe + su - p.SM + p.SM*math.Pow(1-(pe+au)/ms, p.EX+1))
	} else {
		rs = fr * (pe + su - p.SM)
	}

	s := su + (r-rs)/fr
	ri := p.KI * s * fr
	rg := p.KG * s * fr
	s1 := s * (1 - p.KI - p.KG)

	return SourceResult{
		RS: math.Max(rs, 0),
		RI: math.Max(ri, 0),
		RG: math.Max(rg, 0),
		FR: fr,
		S:  s1,
	}
}
