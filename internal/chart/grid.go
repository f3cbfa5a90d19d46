package chart

import (
	"fmt"
	"image"

	"github.com/stitchworks/knitchart/internal/parallel"
)

// Grid is the finished chart: one Color per stitch cell, row-major, row 0
// at the top. A Grid is built once and read-only afterwards.
type Grid struct {
	rows  int
	cols  int
	cells []Color
}

// BuildOptions control grid construction.
type BuildOptions struct {
	// Garter collapses color changes onto right-side rows: every
	// even-indexed row after the first is overwritten with the row above
	// it, so a color change never lands on a wrong-side row where garter
	// fabric would show a jog.
	Garter bool

	// Workers sets how many goroutines quantize cells. Zero means one per
	// CPU. Quantization is independent per cell, so the worker count never
	// changes the output.
	Workers int
}

// BuildGrid quantizes every stitch cell of the chart described by geom.
//
// Rows are fanned out across a worker pool, each row with its own sampler.
// Any sampling failure aborts the whole build; there is no partial grid.
func BuildGrid(img image.Image, geom Geometry, opts BuildOptions) (*Grid, error) {
	g := &Grid{
		rows:  geom.Rows,
		cols:  geom.Cols,
		cells: make([]Color, geom.Cells()),
	}

	rowErrs := make([]error, geom.Rows)
	pool := parallel.Start(opts.Workers)
	for row := 0; row < geom.Rows; row++ {
		row := row // per-iteration copy: module targets pre-1.22 loop semantics
		pool.Do(func() {
			s := NewSampler(img, geom)
			for col := 0; col < geom.Cols; col++ {
				c, err := s.Sample(row, col)
				if err != nil {
					rowErrs[row] = err
					return
				}
				g.cells[row*geom.Cols+col] = c
			}
		})
	}
	pool.Wait()

	for _, err := range rowErrs {
		if err != nil {
			return nil, fmt.Errorf("building grid: %w", err)
		}
	}

	if opts.Garter {
		g.collapseGarterRows()
	}

	return g, nil
}

// collapseGarterRows copies each odd row over the even row below it.
// Row 0 has no predecessor and keeps its quantized colors.
func (g *Grid) collapseGarterRows() {
	for row := 2; row < g.rows; row += 2 {
		copy(g.cells[row*g.cols:(row+1)*g.cols], g.cells[(row-1)*g.cols:row*g.cols])
	}
}

// Rows returns the number of chart rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of chart columns (the cast-on count).
func (g *Grid) Cols() int { return g.cols }

// At returns the color of the cell at (row, col). It panics when the
// coordinates are outside the grid, like a slice index would.
func (g *Grid) At(row, col int) Color {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("chart: cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return g.cells[row*g.cols+col]
}

// Palette returns every distinct color in the grid, in first-appearance
// order (row-major).
func (g *Grid) Palette() []Color {
	seen := make(map[Color]bool)
	var palette []Color
	for _, c := range g.cells {
		if !seen[c] {
			seen[c] = true
			palette = append(palette, c)
		}
	}
	return palette
}
