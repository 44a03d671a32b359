package xaj

import "math"

// GenerationResult carries one timestep of runoff generation output together
// with the updated soil moisture. R is pervious-area runoff, RIm the
// impervious-area runoff, E total actual evapotranspiration and PE the net
// rainfall remaining after evaporation.
type GenerationResult struct {
	R   float64
	RIm float64
	E   float64
	PE  float64
	WU  float64
	WL  float64
	WD  float64
}

// soilEvaporation computes the three-layer evaporation split. The upper
// layer evaporates at potential rate until its water plus fresh rainfall is
// exhausted; the lower layer supplies the residual demand scaled by its
// relative wetness, with a floor at the deep-evaporation coefficient C; the
// deep layer fires only when the lower layer is below both C*LM and the
// scaled residual demand, covering the deficit.
func soilEvaporation(p Parameters, wu0, wl0, prcp, pet float64) (eu, el, ed float64) {
	if wu0+prcp >= pet {
		eu = pet
	} else {
		eu = wu0 + prcp
	}
	if wl0 < p.C*p.LM && wl0 < p.C*(pet-eu) {
		ed = p.C*(pet-eu) - wl0
	}
	switch {
	case wu0+prcp >= pet:
		el = 0
	case wl0 >= p.C*p.LM:
		el = (pet - eu) * wl0 / p.LM
	case wl0 >= p.C*(pet-eu):
		el = p.C * (pet - eu)
	default:
		el = wl0
	}
	return eu, el, ed
}

// storageCurveRunoff evaluates the basin storage-capacity curve for net
// rainfall pe over antecedent moisture w0. w0 must already be capped at WM so
// the fractional power sees a non-negative base.
func storageCurveRunoff(p Parameters, w0, pe float64) (r, rim float64) {
	wm := p.WM()
	wmm := wm * (1 + p.B) / (1 - p.IM)
	a := wmm * (1 - math.Pow(1-w0/wm, 1/(1+p.B)))
	// pe == 0 yields r == 0 on both branches, so no zero-rain special case.
	var rCal float64
	if pe+a < wmm {
		rCal = pe - (wm - w0) + wm*math.Pow(1-(a+pe)/wmm, 1+p.B)
	} else {
		rCal = pe - (wm - w0)
	}
	r = math.Max(rCal, 0)
	rim = math.Max(pe*p.IM, 0)
	return r, rim
}

// updateSoilStorage distributes the timestep's moisture change into the
// three layers top-down: the upper layer fills first, overflow beyond UM+LM
// reaches the deep layer, and the lower layer takes the water-balance
// remainder. The increment is pe-e-r, not pe-r: total evaporation is debited
// from net rainfall once more at this stage, so the post-update balance is
// w0 + pe - e - r. With no remaining water each layer
// simply loses its own evaporation. Results are clipped to [0, capacity] to
// absorb small numerical error.
func updateSoilStorage(p Parameters, wu0, wl0, wd0, eu, el, ed, pe, r float64) (wu, wl, wd float64) {
	e := eu + el + ed
	dw := math.Max(pe-e, 0)
	if dw > 0 {
		wu = math.Min(wu0+dw-r, p.UM)
		if wu0+wl0+dw-r > p.UM+p.LM {
			wd = wu0 + wl0 + wd0 + dw - r - p.UM - p.LM
		} else {
			wd = wd0
		}
		wl = wu0 + wl0 + wd0 + dw - r - wu - wd
	} else {
		wu = wu0 - eu
		wl = wl0 - el
		wd = wd0 - ed
	}
	wu = clamp(wu, 0, p.UM)
	wl = clamp(wl, 0, p.LM)
	wd = clamp(wd, 0, p.DM)
	return wu, wl, wd
}

// Generate performs one timestep of evapotranspiration and runoff
// generation. Forcing is clamped to non-negative before use; antecedent
// moisture is capped at WM before the capacity-curve exponentiation.
func Generate(p Parameters, f Forcing, wu0, wl0, wd0 float64) GenerationResult {
	prcp := math.Max(f.Prcp, 0)
	pet := math.Max(f.PET, 0)

	w0 := math.Min(wu0+wl0+wd0, p.WM())

	eu, el, ed := soilEvaporation(p, wu0, wl0, prcp, pet)
	e := eu + el + ed

	pe := math.Max(prcp-e, 0)
	r, rim := storageCurveRunoff(p, w0, pe)

	wu, wl, wd := updateSoilStorage(p, wu0, wl0, wd0, eu, el, ed, pe, r)

	return GenerationResult{R: r, RIm: rim, E: e, PE: pe, WU: wu, WL: wl, WD: wd}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
