package edm

import "math"

// Schedule is a geometric progression of library lengths L = floor(2^s)
// for s = Start, Start+Step, ..., Stop.
type Schedule struct {
	Start float64 `yaml:"start" json:"start"`
	Stop  float64 `yaml:"stop" json:"stop"`
	Step  float64 `yaml:"step" json:"step"`
}

// DefaultSchedule spans 16 to 2048 in half-octave steps.
func DefaultSchedule() Schedule {
	return Schedule{Start: 4, Stop: 11, Step: 0.5}
}

// Lengths returns the distinct scheduled lengths, ascending, that satisfy
// L < n-e for a series of length n embedded in e dimensions.
func (s Schedule) Lengths(n, e int) []int {
	if s.Step <= 0 || s.Stop < s.Start {
		return nil
	}

	limit := n - e
	out := make([]int, 0, int((s.Stop-s.Start)/s.Step)+1)
	// Count steps rather than accumulating Step to keep the endpoint exact.
	for k := 0; ; k++ {
		exp := s.Start + float64(k)*s.Step
		if exp > s.Stop+1e-9 {
			break
		}
		l := int(math.Floor(math.Pow(2, exp)))
		if l >= limit {
			break
		}
		if len(out) > 0 && out[len(out)-1] == l {
			continue
		}
		out = append(out, l)
	}
	return out
}
