package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ccm/internal/edm"
)

var sample = []edm.Labeled{
	{Name: "x_from_y", Curve: edm.Curve{{L: 16, Rho: 0.65}, {L: 32, Rho: 0.9}, {L: 64, Rho: 0.96}}},
	{Name: "y_from_x", Curve: edm.Curve{{L: 16, Rho: -0.2}, {L: 64, Rho: 0.19, Spread: 0.04}}},
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)

	if c.Grid[0][0] != brailleBase+0x1 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBase+0x80 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}

	c.Clear()
	if c.Grid[0][0] != brailleBase {
		t.Error("Clear left dots set")
	}
}

func TestCanvasScatterCorners(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Scatter([]float64{0, 1}, []float64{0, 1})

	// (0,0) lands bottom-left, (1,1) top-right.
	if c.Grid[1][0] == brailleBase {
		t.Error("expected bottom-left dot")
	}
	if c.Grid[0][3] == brailleBase {
		t.Error("expected top-right dot")
	}
}

func TestRenderManifold(t *testing.T) {
	series := make([]float64, 50)
	for i := range series {
		series[i] = float64(i % 7)
	}
	m, err := edm.Embed(series, 3)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderManifold(m, 20, 5)
	if !strings.Contains(out, "47 points") {
		t.Errorf("missing caption in %q", out)
	}

	m1, _ := edm.Embed(series, 1)
	if out := RenderManifold(m1, 20, 5); !strings.Contains(out, "48 points") {
		t.Errorf("one-dimensional projection caption wrong: %q", out)
	}
	if RenderManifold(nil, 20, 5) != "" {
		t.Error("expected empty output for nil manifold")
	}
}

func TestRenderCurves(t *testing.T) {
	out := RenderCurves(sample, ThemeMinimal, 30, 8)
	for _, want := range []string{"x_from_y", "y_from_x", "L = 16..64"} {
		if !strings.Contains(out, want) {
			t.Errorf("plot missing %q", want)
		}
	}

	if RenderCurves([]edm.Labeled{{Name: "empty"}}, ThemeMinimal, 30, 8) != "" {
		t.Error("expected empty plot for empty curves")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sample)
	for _, want := range []string{"0.6500", "0.9600", "0.1900 ±0.040", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSkills(t *testing.T) {
	skills := []edm.Skill{{E: 1, Tp: 1, Rho: 0.9}, {E: 2, Tp: 1, Rho: 0.99}}
	out := RenderSkills(skills, 2)
	if !strings.Contains(out, "2 *") || !strings.Contains(out, "0.9900") {
		t.Errorf("skills table:\n%s", out)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}
	out := Sparkline([]float64{-1, 0, 1, 2})
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("Sparkline missing extremes: %q", out)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("expected fallback to first theme")
	}
	if got := ThemeRetroGreen.curveColors(5); len(got) != 5 || got[3] != got[0] {
		t.Errorf("curveColors = %v", got)
	}
}

func TestWatchModelUpdates(t *testing.T) {
	updates := make(chan tea.Msg, 4)
	var m tea.Model = NewWatchModel("coupled", 2, updates)

	m, _ = m.Update(PointMsg{Direction: edm.DirXFromY, Point: edm.Point{L: 32, Rho: 0.9}})
	m, _ = m.Update(PointMsg{Direction: edm.DirXFromY, Point: edm.Point{L: 16, Rho: 0.6}})
	m, _ = m.Update(PointMsg{Direction: edm.DirYFromX, Point: edm.Point{L: 16, Rho: 0.1}})

	wm := m.(WatchModel)
	curves := wm.Curves()
	if got := curves[0].Curve; len(got) != 2 || got[0].L != 16 || got[1].L != 32 {
		t.Errorf("points not kept in L order: %v", got)
	}
	if !strings.Contains(wm.View(), "3/4") {
		t.Errorf("progress missing from view:\n%s", wm.View())
	}

	res := &edm.Result{XFromY: curves[0].Curve, YFromX: curves[1].Curve}
	m, _ = m.Update(DoneMsg{Result: res})
	if view := m.View(); !strings.Contains(view, "done") || !strings.Contains(view, "x->y") {
		t.Errorf("done view:\n%s", view)
	}

	m, _ = m.Update(DoneMsg{Err: errors.New("boom")})
	if !strings.Contains(m.View(), "failed: boom") {
		t.Error("error not shown")
	}
}

func TestWatchModelKeys(t *testing.T) {
	var m tea.Model = NewWatchModel("x", 0, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.(WatchModel).theme != 1 {
		t.Error("t did not cycle theme")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestWaitForClosedChannel(t *testing.T) {
	ch := make(chan tea.Msg)
	close(ch)
	if _, ok := waitFor(ch)().(DoneMsg); !ok {
		t.Error("closed channel should end the run")
	}
}
