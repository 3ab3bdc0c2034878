package systems

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/ccm/internal/dynamo"
)

// Noise draws two independent white-noise series. Each variable has its
// own PCG stream, so x does not change when only y's distribution does.
// The incoming state is ignored.
type Noise struct {
	Uniform     bool
	Mu, Sigma   float64
	seed        uint64
	x, y        distuv.Rander
	initialized bool
}

func NewNoise(seed uint64) *Noise {
	return &Noise{Mu: 0, Sigma: 1, seed: seed}
}

func (n *Noise) StateDim() int { return 2 }

func (n *Noise) DefaultState() dynamo.State {
	n.reset()
	return dynamo.State{n.x.Rand(), n.y.Rand()}
}

func (n *Noise) Next(_ dynamo.State) dynamo.State {
	if !n.initialized {
		n.reset()
	}
	return dynamo.State{n.x.Rand(), n.y.Rand()}
}

func (n *Noise) reset() {
	n.x = n.dist(rand.NewPCG(n.seed, 1))
	n.y = n.dist(rand.NewPCG(n.seed, 2))
	n.initialized = true
}

func (n *Noise) dist(src rand.Source) distuv.Rander {
	if n.Uniform {
		half := n.Sigma * math.Sqrt(3)
		return distuv.Uniform{Min: n.Mu - half, Max: n.Mu + half, Src: src}
	}
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma, Src: src}
}

func (n *Noise) GetParams() map[string]float64 {
	u := 0.0
	if n.Uniform {
		u = 1
	}
	return map[string]float64{"mu": n.Mu, "sigma": n.Sigma, "uniform": u}
}

func (n *Noise) SetParam(name string, v float64) error {
	switch name {
	case "mu":
		n.Mu = v
	case "sigma":
		n.Sigma = v
	case "uniform":
		n.Uniform = v != 0
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	n.initialized = false
	return nil
}

// Periodic repeats one sampled sine period of integer length P exactly, so
// windows one period apart are bit-identical. State is (phase, value).
type Periodic struct {
	P         int
	Amplitude float64
}

func NewPeriodic() *Periodic { return &Periodic{P: 7, Amplitude: 1} }

func (p *Periodic) StateDim() int { return 2 }

func (p *Periodic) DefaultState() dynamo.State { return dynamo.State{0, p.value(0)} }

func (p *Periodic) Next(s dynamo.State) dynamo.State {
	k := (int(s[0]) + 1) % p.P
	return dynamo.State{float64(k), p.value(k)}
}

func (p *Periodic) value(k int) float64 {
	return p.Amplitude * math.Sin(2*math.Pi*float64(k)/float64(p.P))
}

func (p *Periodic) GetParams() map[string]float64 {
	return map[string]float64{"period": float64(p.P), "amplitude": p.Amplitude}
}

func (p *Periodic) SetParam(name string, v float64) error {
	switch name {
	case "period":
		if v < 2 {
			return fmt.Errorf("period must be at least 2, got %v", v)
		}
		p.P = int(v)
	case "amplitude":
		p.Amplitude = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
