package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/stitchworks/knitchart/internal/chart"
)

// previewCellWidth is the rendered width of one stitch in preview pixels.
const previewCellWidth = 10

// Preview rasterizes the grid as a small PNG-ready image: one flat
// rectangle per stitch, no lattice or labels. It is a quick visual sanity
// check before opening the SVG in an editor.
func Preview(grid *chart.Grid, geom chart.Geometry) *image.NRGBA {
	cellH := int(math.Round(previewCellWidth * geom.Aspect))
	if cellH < 1 {
		cellH = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, grid.Cols()*previewCellWidth, grid.Rows()*cellH))
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			cell := image.Rect(
				col*previewCellWidth, row*cellH,
				(col+1)*previewCellWidth, (row+1)*cellH,
			)
			draw.Draw(img, cell, image.NewUniform(grid.At(row, col)), image.Point{}, draw.Src)
		}
	}
	return img
}
