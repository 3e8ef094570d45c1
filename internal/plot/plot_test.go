package plot

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/trajectory"
	"gonum.org/v1/gonum/spatial/r3"
)

func lob(t *testing.T, target r3.Vec) []r3.Vec {
	t.Helper()
	p, err := ballistic.NewArcHeight(6, false)
	if err != nil {
		t.Fatal(err)
	}
	sol, err := ballistic.Solve(ballistic.Geometry{Target: target, Gravity: ballistic.StandardGravity}, p)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := trajectory.Sample(sol, 40)
	if err != nil {
		t.Fatal(err)
	}
	return pts
}

func TestFitCorners(t *testing.T) {
	pts := lob(t, r3.Vec{X: 12, Z: 16})
	proj := Fit(pts, 41, 11)

	first, ok := proj.Cell(pts[0])
	if !ok || first.Col != 0 || first.Row != 10 {
		t.Fatalf("origin cell = %+v %v", first, ok)
	}
	last, ok := proj.Cell(pts[len(pts)-1])
	if !ok || last.Col != 40 || last.Row != 10 {
		t.Fatalf("target cell = %+v %v", last, ok)
	}
	// apex sits on the top row, halfway across
	mid, ok := proj.Cell(pts[20])
	if !ok || mid.Row != 0 || mid.Col != 20 {
		t.Fatalf("apex cell = %+v %v", mid, ok)
	}
	for _, v := range pts {
		if _, ok := proj.Cell(v); !ok {
			t.Fatalf("%v off grid", v)
		}
	}
}

func TestFitDegenerate(t *testing.T) {
	// vertical path: a single column
	pts := []r3.Vec{{Y: 0}, {Y: 3}, {Y: 5}}
	proj := Fit(pts, 9, 6)
	for _, v := range pts {
		c, ok := proj.Cell(v)
		if !ok || c.Col != 4 {
			t.Fatalf("%v -> %+v %v", v, c, ok)
		}
	}

	// empty path and a zero grid still give a usable projection
	proj = Fit(nil, 0, 0)
	if c, ok := proj.Cell(r3.Vec{}); !ok || c != (Cell{}) {
		t.Fatalf("empty fit -> %+v %v", c, ok)
	}

	// outside the fitted bounds
	proj = Fit(pts, 9, 6)
	if _, ok := proj.Cell(r3.Vec{Y: 50}); ok {
		t.Fatal("point above the path should be off grid")
	}
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(30, 10)

	pts := lob(t, r3.Vec{X: -20})
	Draw(s, pts, "longbow")

	if r, _, _, _ := s.GetContent(0, 0); r != 'l' {
		t.Fatalf("title starts with %q", r)
	}
	// grid is 30×9 below the title; both ends land on its bottom row
	if r, _, _, _ := s.GetContent(0, 9); r != GlyphOrigin {
		t.Fatalf("origin glyph = %q", r)
	}
	if r, _, _, _ := s.GetContent(29, 9); r != GlyphTarget {
		t.Fatalf("target glyph = %q", r)
	}
	var path int
	for x := 0; x < 30; x++ {
		for y := 1; y < 10; y++ {
			if r, _, _, _ := s.GetContent(x, y); r == GlyphPath {
				path++
			}
		}
	}
	if path < 10 {
		t.Fatalf("only %d path cells drawn", path)
	}
}
