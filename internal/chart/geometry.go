package chart

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the two failure classes the pipeline can produce on
// its own. Everything else (decode, encode) belongs to the callers.
var (
	// ErrInvalidInput marks rejected user parameters: a non-positive
	// cast-on count or a malformed gauge pair.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeometry marks a degenerate sampling box, typically a cast-on
	// count that exceeds the pixel width of the source image.
	ErrGeometry = errors.New("degenerate geometry")
)

// Geometry maps chart cells onto source-image pixels.
//
// Cols is the cast-on stitch count. Rows is derived so that the chart's
// physical aspect ratio matches the source image's, given that knitted
// stitches are wider than they are tall. CellWidth and CellHeight are the
// pixel-space dimensions of one stitch cell; they are fractional on
// purpose, and cell boundaries are floored only at sampling time.
type Geometry struct {
	Cols       int
	Rows       int
	CellWidth  float64
	CellHeight float64

	// Aspect is the gauge-derived height/width ratio of one stitch,
	// stitches-per-10cm divided by rows-per-10cm, or 1 when no gauge was
	// given. Renderers use it to shape chart boxes.
	Aspect float64
}

// NewGeometry derives the chart geometry from the source image size, the
// cast-on stitch count, and an optional gauge pair (both values are counts
// per 10 cm; pass zero for both to get square stitches).
//
// The gauge values must be supplied together: exactly one non-zero value
// is rejected, as is any negative value.
func NewGeometry(imgWidth, imgHeight, castOn int, gaugeStitches, gaugeRows float64) (Geometry, error) {
	if imgWidth < 1 || imgHeight < 1 {
		return Geometry{}, fmt.Errorf("%w: image size %dx%d", ErrInvalidInput, imgWidth, imgHeight)
	}
	if castOn < 1 {
		return Geometry{}, fmt.Errorf("%w: cast-on stitch count %d, must be at least 1", ErrInvalidInput, castOn)
	}
	if gaugeStitches < 0 || gaugeRows < 0 {
		return Geometry{}, fmt.Errorf("%w: negative gauge %g/%g", ErrInvalidInput, gaugeStitches, gaugeRows)
	}
	if !isFinite(gaugeStitches) || !isFinite(gaugeRows) {
		return Geometry{}, fmt.Errorf("%w: gauge %g/%g is not finite", ErrInvalidInput, gaugeStitches, gaugeRows)
	}
	if (gaugeStitches == 0) != (gaugeRows == 0) {
		return Geometry{}, fmt.Errorf("%w: gauge stitches and gauge rows must be given together", ErrInvalidInput)
	}

	aspect := 1.0
	if gaugeRows > 0 {
		aspect = gaugeStitches / gaugeRows
	}

	rows := int(math.Round(float64(imgHeight) / float64(imgWidth) * float64(castOn) / aspect))
	if rows < 1 {
		rows = 1
	}

	return Geometry{
		Cols:       castOn,
		Rows:       rows,
		CellWidth:  float64(imgWidth) / float64(castOn),
		CellHeight: float64(imgHeight) / float64(rows),
		Aspect:     aspect,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Cells returns the total number of stitch cells in the chart.
func (g Geometry) Cells() int {
	return g.Cols * g.Rows
}
