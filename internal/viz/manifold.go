package viz

import (
	"fmt"

	"github.com/san-kum/ccm/internal/edm"
)

// RenderManifold draws a two-coordinate projection of a shadow manifold:
// the first lag against the last one. A one-dimensional manifold is drawn
// against its next row instead.
func RenderManifold(m *edm.Manifold, width, height int) string {
	if m == nil || m.Rows() < 2 {
		return ""
	}

	var xs, ys []float64
	if m.Dim() == 1 {
		for i := 0; i+1 < m.Rows(); i++ {
			xs = append(xs, m.Row(i)[0])
			ys = append(ys, m.Row(i + 1)[0])
		}
	} else {
		last := m.Dim() - 1
		for i := 0; i < m.Rows(); i++ {
			r := m.Row(i)
			xs = append(xs, r[0])
			ys = append(ys, r[last])
		}
	}

	c := NewCanvas(width, height)
	c.Scatter(xs, ys)

	caption := fmt.Sprintf("lag 0 vs lag %d, %d points", max(m.Dim()-1, 1), len(xs))
	return Panel.Render(c.String() + Subtle.Render(caption))
}
