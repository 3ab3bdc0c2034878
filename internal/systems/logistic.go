package systems

import (
	"fmt"

	"github.com/san-kum/ccm/internal/dynamo"
)

// CoupledLogistic is the two-species logistic map with asymmetric coupling
// used to demonstrate convergent cross mapping:
//
//	X[t] = X[t-1] (rx - rx X[t-1] - bxy Y[t-1])
//	Y[t] = Y[t-1] (ry - ry Y[t-1] - byx X[t-1])
//
// With the defaults X forces Y five times harder than Y forces X.
type CoupledLogistic struct {
	Rx, Ry   float64
	Bxy, Byx float64
	X0, Y0   float64
}

func NewCoupledLogistic() *CoupledLogistic {
	return &CoupledLogistic{Rx: 3.8, Ry: 3.5, Bxy: 0.02, Byx: 0.1, X0: 0.1, Y0: 0.4}
}

func (c *CoupledLogistic) StateDim() int              { return 2 }
func (c *CoupledLogistic) DefaultState() dynamo.State { return dynamo.State{c.X0, c.Y0} }

func (c *CoupledLogistic) Next(s dynamo.State) dynamo.State {
	x, y := s[0], s[1]
	return dynamo.State{
		x * (c.Rx - c.Rx*x - c.Bxy*y),
		y * (c.Ry - c.Ry*y - c.Byx*x),
	}
}

func (c *CoupledLogistic) GetParams() map[string]float64 {
	return map[string]float64{"rx": c.Rx, "ry": c.Ry, "bxy": c.Bxy, "byx": c.Byx, "x0": c.X0, "y0": c.Y0}
}

func (c *CoupledLogistic) SetParam(name string, v float64) error {
	switch name {
	case "rx":
		c.Rx = v
	case "ry":
		c.Ry = v
	case "bxy":
		c.Bxy = v
	case "byx":
		c.Byx = v
	case "x0":
		c.X0 = v
	case "y0":
		c.Y0 = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// Logistic is the single-species logistic map x[t] = r x[t-1] (1 - x[t-1]).
type Logistic struct {
	R, X0 float64
}

func NewLogistic() *Logistic { return &Logistic{R: 3.9, X0: 0.4} }

func (l *Logistic) StateDim() int              { return 1 }
func (l *Logistic) DefaultState() dynamo.State { return dynamo.State{l.X0} }

func (l *Logistic) Next(s dynamo.State) dynamo.State {
	return dynamo.State{l.R * s[0] * (1 - s[0])}
}

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{"r": l.R, "x0": l.X0}
}

func (l *Logistic) SetParam(name string, v float64) error {
	switch name {
	case "r":
		l.R = v
	case "x0":
		l.X0 = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
