package chart

// Cell addresses one stitch in the grid.
type Cell struct {
	Row int
	Col int
}

// Region is a maximal 4-connected block of same-colored stitches: one
// intarsia bobbin's worth of knitting. Regions partition the grid; every
// cell belongs to exactly one region.
type Region struct {
	// ID is the region's index in discovery order, starting at 0.
	ID int

	// Color shared by every cell in the region.
	Color Color

	// Cells in the order the flood fill visited them. The first cell is
	// the region's row-major seed.
	Cells []Cell
}

// StitchCount is the number of stitches in the region, the figure a
// knitter uses to wind the bobbin.
func (r *Region) StitchCount() int {
	return len(r.Cells)
}

// Label names the region with letters the way charts letter their
// bobbins: A through Z, then two-letter names. Region 26 is "BA", not
// "AA"; the leading letter counts from A=0 like any other base-26 digit.
func (r *Region) Label() string {
	if r.ID == 0 {
		return "A"
	}

	var buf [8]byte
	i := len(buf)
	for n := r.ID; n > 0; n /= 26 {
		i--
		buf[i] = byte('A' + n%26)
	}
	return string(buf[i:])
}

// FindRegions partitions the grid into maximal 4-connected same-color
// regions.
//
// Cells are visited in row-major order; each unlabeled cell seeds a new
// region that is flood-filled through its same-color up/down/left/right
// neighbors. Diagonal adjacency never merges regions, since intarsia
// bobbins only follow side, top, and bottom joins.
//
// The second return value maps each cell (indexed row*cols+col) to the ID
// of its owning region.
func FindRegions(g *Grid) ([]Region, []int) {
	labels := make([]int, g.rows*g.cols)
	for i := range labels {
		labels[i] = -1
	}

	var regions []Region
	// Explicit work list instead of recursion: a single-color chart is one
	// region covering every cell, far deeper than the stack should go.
	queue := make([]int, 0, 64)

	for seed := 0; seed < len(labels); seed++ {
		if labels[seed] >= 0 {
			continue
		}

		id := len(regions)
		color := g.cells[seed]
		region := Region{ID: id, Color: color}

		queue = append(queue[:0], seed)
		labels[seed] = id

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]

			row, col := idx/g.cols, idx%g.cols
			region.Cells = append(region.Cells, Cell{Row: row, Col: col})

			for _, n := range [4]int{idx - g.cols, idx + g.cols, idx - 1, idx + 1} {
				if n < 0 || n >= len(labels) || labels[n] >= 0 {
					continue
				}
				// Left/right neighbors must stay on the same row.
				if (n == idx-1 || n == idx+1) && n/g.cols != row {
					continue
				}
				if g.cells[n] != color {
					continue
				}
				labels[n] = id
				queue = append(queue, n)
			}
		}

		regions = append(regions, region)
	}

	return regions, labels
}
