package viz

import (
	"strings"
)

// Braille cells hold a 2x4 dot grid; the bit for dot (x, y) is
// pixelMap[y][x] above the 0x2800 base.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// Scatter plots (xs[i], ys[i]) scaled to fill the canvas. Larger y is drawn
// higher.
func (c *Canvas) Scatter(xs, ys []float64) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return
	}
	x0, x1 := bounds(xs[:n])
	y0, y1 := bounds(ys[:n])
	pw, ph := c.Width*2-1, c.Height*4-1

	for i := 0; i < n; i++ {
		px := int((xs[i] - x0) / (x1 - x0) * float64(pw))
		py := ph - int((ys[i]-y0)/(y1-y0)*float64(ph))
		c.Set(px, py)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
