package xaj

import "fmt"

// Validate rejects parameter sets that would produce undefined recurrence
// math mid-run. The time loop is stateful, so a single corrupted step
// poisons every step after it; all range checks therefore happen here,
// before the simulation starts, never per timestep.
func (p Parameters) Validate() error {
	if p.UM <= 0 || p.LM <= 0 || p.DM <= 0 {
		return fmt.Errorf("soil capacities must be positive: UM=%g LM=%g DM=%g", p.UM, p.LM, p.DM)
	}
	if p.C < 0 || p.C > 1 {
		return fmt.Errorf("deep evaporation coefficient C=%g outside [0,1]", p.C)
	}
	if p.B <= 0 {
		return fmt.Errorf("storage heterogeneity exponent B=%g must be positive", p.B)
	}
	if p.IM < 0 || p.IM >= 1 {
		return fmt.Errorf("impervious fraction IM=%g outside [0,1)", p.IM)
	}
	if p.SM <= 0 {
		return fmt.Errorf("free-water capacity SM=%g must be positive", p.SM)
	}
	if p.EX <= 0 {
		return fmt.Errorf("free-water heterogeneity exponent EX=%g must be positive", p.EX)
	}
	if p.KI < 0 || p.KG < 0 {
		return fmt.Errorf("outflow coefficients must be non-negative: KI=%g KG=%g", p.KI, p.KG)
	}
	// KI+KG >= 1 makes the sub-daily conversion root complex; physically,
	// the tank cannot release more than it stores.
	if p.KI+p.KG >= 1 {
		return fmt.Errorf("KI+KG=%g must be below 1", p.KI+p.KG)
	}
	if p.CI < 0 || p.CI >= 1 {
		return fmt.Errorf("interflow recession CI=%g outside [0,1)", p.CI)
	}
	if p.CG < 0 || p.CG >= 1 {
		return fmt.Errorf("groundwater recession CG=%g outside [0,1)", p.CG)
	}
	if p.CS < 0 || p.CS >= 1 {
		return fmt.Errorf("surface recession CS=%g outside [0,1)", p.CS)
	}
	return nil
}

// validateConfig checks run-wide options once at simulator construction.
func validateConfig(cfg Config) error {
	switch cfg.Source {
	case SourceSingle, SourceSliced:
	default:
		return fmt.Errorf("unknown source method %v", cfg.Source)
	}
	switch cfg.Book {
	case BookShuiWenYuBao, BookGongChengShuiWenXue:
	default:
		return fmt.Errorf("unknown source book %v", cfg.Book)
	}
	if cfg.IntervalHours <= 0 || cfg.IntervalHours > 24 {
		return fmt.Errorf("interval %d hours outside (0,24]", cfg.IntervalHours)
	}
	if cfg.UH != nil {
		if err := ValidateOrdinates(cfg.UH); err != nil {
			return err
		}
	}
	return nil
}
