package viz

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ccm/internal/edm"
)

// RenderCurves plots rho against the schedule index of each curve. Empty
// curves are left out; with nothing to draw the result is empty.
func RenderCurves(curves []edm.Labeled, theme Theme, width, height int) string {
	var (
		data  [][]float64
		names []string
		lo    = -1
		hi    = 0
	)
	for _, c := range curves {
		if len(c.Curve) == 0 {
			continue
		}
		data = append(data, c.Curve.Rhos())
		names = append(names, c.Name)
		if lo < 0 || c.Curve[0].L < lo {
			lo = c.Curve[0].L
		}
		hi = max(hi, c.Curve.Final().L)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(theme.curveColors(len(data))...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("rho vs L = %d..%d", lo, hi)),
	)
}

// RenderTable lays the curves out side by side, one row per library length.
func RenderTable(curves []edm.Labeled) string {
	var lengths []int
	byName := make([]map[int]edm.Point, len(curves))
	headers := []string{"L"}
	for i, c := range curves {
		headers = append(headers, c.Name)
		byName[i] = make(map[int]edm.Point, len(c.Curve))
		for _, p := range c.Curve {
			byName[i][p.L] = p
			lengths = append(lengths, p.L)
		}
	}
	slices.Sort(lengths)
	lengths = slices.Compact(lengths)

	rhos := make(map[[2]int]float64)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers(headers...)
	for r, l := range lengths {
		row := []string{strconv.Itoa(l)}
		for i := range curves {
			p, ok := byName[i][l]
			if !ok {
				row = append(row, "-")
				continue
			}
			rhos[[2]int{r, i + 1}] = p.Rho
			row = append(row, formatPoint(p))
		}
		t.Row(row...)
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return base.Inherit(Title)
		}
		if rho, ok := rhos[[2]int{row, col}]; ok {
			return base.Inherit(RhoStyle(rho))
		}
		return base.Inherit(MetricLabel)
	}).Render()
}

// RenderSkills tabulates forecast skill by embedding dimension and horizon,
// marking the row at best.
func RenderSkills(skills []edm.Skill, best int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("E", "Tp", "rho", "MAE", "RMSE")
	for _, s := range skills {
		e := strconv.Itoa(s.E)
		if s.E == best {
			e += " *"
		}
		t.Row(e, strconv.Itoa(s.Tp),
			strconv.FormatFloat(s.Rho, 'f', 4, 64),
			strconv.FormatFloat(s.MAE, 'f', 4, 64),
			strconv.FormatFloat(s.RMSE, 'f', 4, 64))
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return base.Inherit(Title)
		}
		if col == 2 && row < len(skills) {
			return base.Inherit(RhoStyle(skills[row].Rho))
		}
		return base.Inherit(MetricLabel)
	}).Render()
}

func formatPoint(p edm.Point) string {
	s := strconv.FormatFloat(p.Rho, 'f', 4, 64)
	if p.Spread > 0 {
		s += " ±" + strconv.FormatFloat(p.Spread, 'f', 3, 64)
	}
	return s
}
