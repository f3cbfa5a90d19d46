// Package render turns a finished chart grid and its intarsia regions
// into output documents: the SVG chart itself and an optional raster
// preview.
//
// The SVG layout follows knitting-chart conventions: stitch 1 is the
// rightmost column and row 1 is the bottom row, because that is the order
// the piece is knitted in. Cells are drawn wider than tall according to
// the gauge aspect ratio, a gray "box-thread" lattice separates stitches,
// and each cell can carry its region's bobbin letter in a contrasting
// color.
package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/stitchworks/knitchart/internal/chart"
)

// TextMode selects what, if anything, is written inside each stitch cell.
type TextMode int

const (
	// TextNone leaves cells empty.
	TextNone TextMode = iota
	// TextThread writes each cell's region letter, the bobbin to knit
	// the stitch from.
	TextThread
)

const (
	// boxWidth is the rendered width of one stitch cell in SVG user
	// units. Heights derive from it through the gauge aspect ratio.
	boxWidth = 20.0

	gridStroke = "#B5B5B5"
)

// Options control SVG generation.
type Options struct {
	// Text selects per-cell labels. The default is TextNone.
	Text TextMode

	// Legend appends a bobbin table under the chart: one line per
	// region with its color swatch and stitch count.
	Legend bool
}

type svgDocument struct {
	XMLName xml.Name   `xml:"svg"`
	Xmlns   string     `xml:"xmlns,attr"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	Groups  []svgGroup `xml:"g"`
}

type svgGroup struct {
	ID    string    `xml:"id,attr,omitempty"`
	Paths []svgPath `xml:"path"`
	Texts []svgText `xml:"text"`
}

type svgPath struct {
	Fill          string `xml:"fill,attr,omitempty"`
	Stroke        string `xml:"stroke,attr,omitempty"`
	StrokeWidth   string `xml:"stroke-width,attr,omitempty"`
	StrokeLinecap string `xml:"stroke-linecap,attr,omitempty"`
	D             string `xml:"d,attr"`
}

type svgText struct {
	X        string `xml:"x,attr"`
	Y        string `xml:"y,attr"`
	Anchor   string `xml:"text-anchor,attr,omitempty"`
	FontSize string `xml:"font-size,attr,omitempty"`
	Fill     string `xml:"fill,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// SVG writes the chart for grid as an SVG document.
//
// regions and labels must come from chart.FindRegions on the same grid;
// geom supplies the stitch aspect ratio. The output is deterministic for
// identical inputs.
func SVG(w io.Writer, grid *chart.Grid, regions []chart.Region, labels []int, geom chart.Geometry, opts Options) error {
	g := &generator{
		grid:      grid,
		regions:   regions,
		labels:    labels,
		opts:      opts,
		boxHeight: boxWidth * geom.Aspect,
	}
	g.lineWidth = boxWidth / 6.0

	doc := g.document()

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	return nil
}

type generator struct {
	grid      *chart.Grid
	regions   []chart.Region
	labels    []int
	opts      Options
	boxHeight float64
	lineWidth float64
}

func (g *generator) document() *svgDocument {
	cols, rows := g.grid.Cols(), g.grid.Rows()

	// One extra column for row numbers, one extra row for stitch
	// numbers, and half a line width of bleed on each side.
	width := float64(cols+1)*boxWidth + g.lineWidth
	height := float64(rows+1)*g.boxHeight + g.lineWidth
	if g.opts.Legend {
		height += float64(len(g.regions)+1) * g.boxHeight
	}

	doc := &svgDocument{
		Xmlns:  "http://www.w3.org/2000/svg",
		Width:  ftoa(width),
		Height: ftoa(height),
	}

	doc.Groups = append(doc.Groups, g.boxes(), g.gridLines(), g.rulers())
	if g.opts.Text == TextThread {
		doc.Groups = append(doc.Groups, g.threadLetters())
	}
	if g.opts.Legend {
		doc.Groups = append(doc.Groups, g.legend())
	}
	return doc
}

// cellOrigin returns the top-left corner of the cell at (row, col),
// offset by the grid line bleed.
func (g *generator) cellOrigin(row, col int) (x, y float64) {
	m := g.lineWidth / 2.0
	return m + float64(col)*boxWidth, m + float64(row)*g.boxHeight
}

func (g *generator) boxes() svgGroup {
	group := svgGroup{ID: "boxes"}
	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			x, y := g.cellOrigin(row, col)
			group.Paths = append(group.Paths, svgPath{
				Fill: g.grid.At(row, col).Hex(),
				D: fmt.Sprintf("M %s %s l %s 0 l 0 %s l -%s 0 z",
					ftoa(x), ftoa(y), ftoa(boxWidth), ftoa(g.boxHeight), ftoa(boxWidth)),
			})
		}
	}
	return group
}

// gridLines draws the box-thread lattice as a single path.
func (g *generator) gridLines() svgGroup {
	cols, rows := g.grid.Cols(), g.grid.Rows()
	m := g.lineWidth / 2.0

	var d []byte
	for col := 0; col <= cols; col++ {
		x := m + float64(col)*boxWidth
		d = fmt.Appendf(d, "M %s %s l 0 %s ", ftoa(x), ftoa(m), ftoa(float64(rows)*g.boxHeight))
	}
	for row := 0; row <= rows; row++ {
		y := m + float64(row)*g.boxHeight
		d = fmt.Appendf(d, "M %s %s l %s 0 ", ftoa(m), ftoa(y), ftoa(float64(cols)*boxWidth))
	}

	return svgGroup{
		ID: "grid",
		Paths: []svgPath{{
			Stroke:        gridStroke,
			StrokeWidth:   ftoa(g.lineWidth),
			StrokeLinecap: "square",
			D:             string(d[:len(d)-1]),
		}},
	}
}

// rulers numbers the stitches right-to-left along the bottom and the rows
// bottom-up along the right edge, the order the chart is knitted in.
func (g *generator) rulers() svgGroup {
	cols, rows := g.grid.Cols(), g.grid.Rows()
	group := svgGroup{ID: "rulers"}

	for col := 0; col < cols; col++ {
		x, _ := g.cellOrigin(rows, col)
		group.Texts = append(group.Texts, svgText{
			X:        ftoa(x + boxWidth/2),
			Y:        ftoa(g.lineWidth/2 + (float64(rows)+0.7)*g.boxHeight),
			Anchor:   "middle",
			FontSize: ftoa(g.boxHeight * 0.6),
			Value:    strconv.Itoa(cols - col),
		})
	}

	for row := 0; row < rows; row++ {
		_, y := g.cellOrigin(row, cols)
		group.Texts = append(group.Texts, svgText{
			X:        ftoa(g.lineWidth/2 + (float64(cols)+0.5)*boxWidth),
			Y:        ftoa(y + 0.7*g.boxHeight),
			Anchor:   "middle",
			FontSize: ftoa(g.boxHeight * 0.6),
			Value:    strconv.Itoa(rows - row),
		})
	}

	return group
}

// threadLetters writes each cell's bobbin letter in black or white,
// whichever contrasts with the cell color.
func (g *generator) threadLetters() svgGroup {
	group := svgGroup{ID: "threads"}
	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			region := &g.regions[g.labels[row*g.grid.Cols()+col]]
			x, y := g.cellOrigin(row, col)
			group.Texts = append(group.Texts, svgText{
				X:        ftoa(x + boxWidth/2),
				Y:        ftoa(y + 0.7*g.boxHeight),
				Anchor:   "middle",
				FontSize: ftoa(g.boxHeight * 0.6),
				Fill:     g.grid.At(row, col).LabelColor().Hex(),
				Value:    region.Label(),
			})
		}
	}
	return group
}

// legend lists every region under the chart: swatch, letter, and the
// stitch count to wind onto the bobbin.
func (g *generator) legend() svgGroup {
	group := svgGroup{ID: "legend"}
	top := g.lineWidth/2 + (float64(g.grid.Rows())+1.5)*g.boxHeight

	for i, region := range g.regions {
		y := top + float64(i)*g.boxHeight
		group.Paths = append(group.Paths, svgPath{
			Fill: region.Color.Hex(),
			D: fmt.Sprintf("M %s %s l %s 0 l 0 %s l -%s 0 z",
				ftoa(g.lineWidth/2), ftoa(y), ftoa(boxWidth), ftoa(g.boxHeight*0.8), ftoa(boxWidth)),
		})
		group.Texts = append(group.Texts, svgText{
			X:        ftoa(g.lineWidth/2 + boxWidth*1.5),
			Y:        ftoa(y + 0.65*g.boxHeight),
			FontSize: ftoa(g.boxHeight * 0.6),
			Value:    fmt.Sprintf("%s: %d sts", region.Label(), region.StitchCount()),
		})
	}
	return group
}

// ftoa formats an SVG coordinate without trailing zeros.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
