// Package plot draws a side view of a predicted trajectory on a terminal grid.
package plot

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// Glyphs used by Draw.
const (
	GlyphPath   = '•'
	GlyphOrigin = 'o'
	GlyphTarget = 'X'
	GlyphGround = '─'
)

var (
	pathStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	originStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	groundStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Cell is a terminal column and row.
type Cell struct {
	Col, Row int
}

// Projection maps the vertical plane through a path's first and last points
// onto a Cols×Rows grid. Row 0 is the top.
type Projection struct {
	origin     r3.Vec
	axis       r3.Vec // unit horizontal direction, origin toward the last point
	minS, maxS float64
	minY, maxY float64
	Cols, Rows int
}

// Fit returns a projection that shows every point on a cols×rows grid.
func Fit(points []r3.Vec, cols, rows int) Projection {
	p := Projection{Cols: max(cols, 1), Rows: max(rows, 1), axis: vmath.Forward}
	if len(points) == 0 {
		p.maxS, p.maxY = 1, 1
		return p
	}
	p.origin = points[0]
	if d := vmath.Flatten(r3.Sub(points[len(points)-1], p.origin)); r3.Norm(d) > 1e-9 {
		p.axis = r3.Unit(d)
	}

	p.minS, p.maxS = math.Inf(1), math.Inf(-1)
	p.minY, p.maxY = math.Inf(1), math.Inf(-1)
	for _, v := range points {
		s := p.along(v)
		p.minS, p.maxS = math.Min(p.minS, s), math.Max(p.maxS, s)
		p.minY, p.maxY = math.Min(p.minY, v.Y), math.Max(p.maxY, v.Y)
	}
	// keep a flat or vertical path from collapsing to a single line
	if p.maxS-p.minS < 1e-9 {
		p.minS, p.maxS = p.minS-1, p.maxS+1
	}
	if p.maxY-p.minY < 1e-9 {
		p.minY, p.maxY = p.minY-1, p.maxY+1
	}
	return p
}

func (p Projection) along(v r3.Vec) float64 {
	return r3.Dot(vmath.Flatten(r3.Sub(v, p.origin)), p.axis)
}

// Cell returns the grid cell for v and whether it lies on the grid.
func (p Projection) Cell(v r3.Vec) (Cell, bool) {
	fx := (p.along(v) - p.minS) / (p.maxS - p.minS)
	fy := (v.Y - p.minY) / (p.maxY - p.minY)
	c := Cell{
		Col: int(math.Round(fx * float64(p.Cols-1))),
		Row: p.Rows - 1 - int(math.Round(fy*float64(p.Rows-1))),
	}
	ok := c.Col >= 0 && c.Col < p.Cols && c.Row >= 0 && c.Row < p.Rows
	return c, ok
}

// Draw clears s and renders points with the title on the top row. The path
// uses the rows below the title.
func Draw(s tcell.Screen, points []r3.Vec, title string) {
	s.Clear()
	w, h := s.Size()
	drawText(s, 0, 0, title, textStyle)
	if len(points) == 0 || h < 2 {
		s.Show()
		return
	}

	proj := Fit(points, w, h-1)
	// launch height as the ground line
	if g, ok := proj.Cell(points[0]); ok {
		for col := 0; col < w; col++ {
			s.SetContent(col, g.Row+1, GlyphGround, nil, groundStyle)
		}
	}
	for _, v := range points {
		if c, ok := proj.Cell(v); ok {
			s.SetContent(c.Col, c.Row+1, GlyphPath, nil, pathStyle)
		}
	}
	if c, ok := proj.Cell(points[0]); ok {
		s.SetContent(c.Col, c.Row+1, GlyphOrigin, nil, originStyle)
	}
	if c, ok := proj.Cell(points[len(points)-1]); ok {
		s.SetContent(c.Col, c.Row+1, GlyphTarget, nil, targetStyle)
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
