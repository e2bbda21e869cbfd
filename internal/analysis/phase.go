package analysis

import (
	"fmt"
	"strings"
)

// PhasePortrait2D holds a projection of a recorded trajectory onto two
// state components.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []struct{ X, Y float64 }
}

// ExtractPhasePortrait projects recorded states onto the (xIdx, yIdx)
// plane. Returns nil when an index is out of range.
func ExtractPhasePortrait(states [][]float64, xIdx, yIdx int) *PhasePortrait2D {
	if len(states) == 0 || xIdx >= len(states[0]) || yIdx >= len(states[0]) {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, len(states)),
	}

	for _, s := range states {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{s[xIdx], s[yIdx]})
	}
	return portrait
}

// RenderASCII draws the portrait into a fixed-size character grid.
func (p *PhasePortrait2D) RenderASCII(width, height int) string {
	if len(p.Points) == 0 {
		return "(no data)"
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / spanX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/spanY*float64(height-1))
		grid[row][col] = '*'
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("x%d vs x%d  [%.3f, %.3f] x [%.3f, %.3f]\n",
		p.YIndex, p.XIndex, minX, maxX, minY, maxY))
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
