package chart

import (
	"fmt"
	"image"
	"math"
)

// Sampler picks the representative color of individual stitch cells.
//
// For each cell it tallies the exact colors of every source pixel inside
// the cell's pixel box and returns the most frequent one. Ties go to the
// color seen first in row-major pixel order, which keeps the output
// deterministic across runs. The count and first-seen maps are retained
// between calls to avoid reallocating them for every cell; their contents
// are not reused.
//
// A Sampler is not safe for concurrent use. Grid construction gives each
// worker its own.
type Sampler struct {
	img    image.Image
	geom   Geometry
	counts map[Color]int
	order  map[Color]int
}

// NewSampler binds a sampler to an image and chart geometry.
func NewSampler(img image.Image, geom Geometry) *Sampler {
	return &Sampler{
		img:    img,
		geom:   geom,
		counts: make(map[Color]int),
		order:  make(map[Color]int),
	}
}

// Sample returns the representative color for the stitch cell at
// (row, col).
//
// The cell's pixel box is floored from the fractional cell size, clamped
// to the image bounds, and widened to at least one pixel so degenerate
// geometry (more stitches than pixels) still samples something. A box
// that cannot be made to intersect the image at all is ErrGeometry.
func (s *Sampler) Sample(row, col int) (Color, error) {
	x0, y0, x1, y1, err := s.cellBox(row, col)
	if err != nil {
		return Color{}, err
	}

	for k := range s.counts {
		delete(s.counts, k)
	}
	for k := range s.order {
		delete(s.order, k)
	}

	bounds := s.img.Bounds()
	seen := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := ColorOf(s.img.At(bounds.Min.X+x, bounds.Min.Y+y))
			if _, ok := s.order[c]; !ok {
				s.order[c] = seen
				seen++
			}
			s.counts[c]++
		}
	}

	var best Color
	bestCount, bestOrder := 0, seen
	for c, n := range s.counts {
		o := s.order[c]
		if n > bestCount || (n == bestCount && o < bestOrder) {
			best, bestCount, bestOrder = c, n, o
		}
	}

	return best, nil
}

// cellBox computes the half-open pixel box [x0,x1)×[y0,y1) that the cell
// at (row, col) samples from.
func (s *Sampler) cellBox(row, col int) (x0, y0, x1, y1 int, err error) {
	bounds := s.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	x0 = int(math.Floor(float64(col) * s.geom.CellWidth))
	x1 = int(math.Floor(float64(col+1) * s.geom.CellWidth))
	y0 = int(math.Floor(float64(row) * s.geom.CellHeight))
	y1 = int(math.Floor(float64(row+1) * s.geom.CellHeight))

	// x0 and y0 are never negative for valid cell coordinates, so the box
	// only misses the image entirely when its origin floors past the far
	// edge. A zero-width or zero-height box is widened below instead.
	if x0 >= w || y0 >= h {
		return 0, 0, 0, 0, fmt.Errorf(
			"%w: cell (%d,%d) samples box (%d,%d)-(%d,%d) outside %dx%d image",
			ErrGeometry, row, col, x0, y0, x1, y1, w, h)
	}

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, w)
	y1 = min(y1, h)

	// Fractional cells narrower than a pixel floor to an empty box; widen
	// to the single pixel under the cell's origin.
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	return x0, y0, x1, y1, nil
}
