package chart

import (
	"math/rand"
	"testing"
)

func mustBuildGrid(t *testing.T, rows [][]Color, castOn int, opts BuildOptions) *Grid {
	t.Helper()
	img := imageFromGrid(t, rows)
	b := img.Bounds()
	geom := mustGeometry(t, b.Dx(), b.Dy(), castOn, 0, 0)

	g, err := BuildGrid(img, geom, opts)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	return g
}

func TestBuildGrid_DimensionsMatchGeometry(t *testing.T) {
	img := uniformImage(120, 90, blue)
	geom := mustGeometry(t, 120, 90, 24, 22, 30)

	g, err := BuildGrid(img, geom, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if g.Rows() != geom.Rows || g.Cols() != geom.Cols {
		t.Errorf("grid: got %dx%d, want %dx%d", g.Rows(), g.Cols(), geom.Rows, geom.Cols)
	}
}

func TestBuildGrid_PixelPerfectScenario(t *testing.T) {
	// The 2x2 reference scenario: each cell quantizes to its own pixel.
	g := mustBuildGrid(t, [][]Color{
		{red, red},
		{blue, red},
	}, 2, BuildOptions{})

	want := [][]Color{
		{red, red},
		{blue, red},
	}
	for row := range want {
		for col := range want[row] {
			if got := g.At(row, col); got != want[row][col] {
				t.Errorf("cell (%d,%d): got %v, want %v", row, col, got, want[row][col])
			}
		}
	}
}

func TestBuildGrid_OnlySourceColors(t *testing.T) {
	// Noise image downsampled 4:1 must never invent a color.
	rng := rand.New(rand.NewSource(42))
	const size = 32
	rows := make([][]Color, size)
	source := make(map[Color]bool)
	for y := range rows {
		rows[y] = make([]Color, size)
		for x := range rows[y] {
			c := Color{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
			rows[y][x] = c
			source[c] = true
		}
	}

	g := mustBuildGrid(t, rows, size/4, BuildOptions{})
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if c := g.At(row, col); !source[c] {
				t.Errorf("cell (%d,%d): color %v not present in source image", row, col, c)
			}
		}
	}
}

func TestBuildGrid_GarterCollapsesEvenRows(t *testing.T) {
	// Eight distinct single-color pixel rows, one stitch per pixel.
	colors := []Color{
		{R: 10}, {R: 20}, {R: 30}, {R: 40},
		{R: 50}, {R: 60}, {R: 70}, {R: 80},
	}
	rows := make([][]Color, len(colors))
	for y, c := range colors {
		rows[y] = []Color{c, c, c, c, c, c, c, c}
	}

	g := mustBuildGrid(t, rows, 8, BuildOptions{Garter: true})

	// Row 0 keeps its own color.
	if got := g.At(0, 0); got != colors[0] {
		t.Errorf("row 0: got %v, want %v", got, colors[0])
	}

	for row := 2; row < g.Rows(); row += 2 {
		for col := 0; col < g.Cols(); col++ {
			if g.At(row, col) != g.At(row-1, col) {
				t.Errorf("garter: cell (%d,%d)=%v differs from row above %v",
					row, col, g.At(row, col), g.At(row-1, col))
			}
		}
	}

	// Odd rows keep the quantized colors.
	for row := 1; row < g.Rows(); row += 2 {
		if got := g.At(row, 0); got != colors[row] {
			t.Errorf("row %d: got %v, want %v", row, got, colors[row])
		}
	}
}

func TestBuildGrid_GarterOffLeavesRowsAlone(t *testing.T) {
	rows := [][]Color{
		{red, red},
		{green, green},
		{blue, blue},
		{white, white},
	}
	g := mustBuildGrid(t, rows, 2, BuildOptions{})

	for y, row := range rows {
		if got := g.At(y, 0); got != row[0] {
			t.Errorf("row %d: got %v, want %v", y, got, row[0])
		}
	}
}

func TestBuildGrid_CastOnWiderThanImage(t *testing.T) {
	// A cast-on count past the pixel width makes every cell sub-pixel.
	// The chart must still build, with each cell taking the color of the
	// pixel under it.
	img := uniformImage(3, 3, green)
	geom := mustGeometry(t, 3, 3, 12, 0, 0)

	g, err := BuildGrid(img, geom, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if g.Cols() != 12 {
		t.Fatalf("cols: got %d, want 12", g.Cols())
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if got := g.At(row, col); got != green {
				t.Errorf("cell (%d,%d): got %v, want %v", row, col, got, green)
			}
		}
	}
}

func TestBuildGrid_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const size = 40
	rows := make([][]Color, size)
	for y := range rows {
		rows[y] = make([]Color, size)
		for x := range rows[y] {
			// Few colors so cells genuinely contend and tie-break.
			palette := []Color{red, green, blue, white, black}
			rows[y][x] = palette[rng.Intn(len(palette))]
		}
	}

	sequential := mustBuildGrid(t, rows, 13, BuildOptions{Workers: 1})
	parallel := mustBuildGrid(t, rows, 13, BuildOptions{Workers: 8})

	for row := 0; row < sequential.Rows(); row++ {
		for col := 0; col < sequential.Cols(); col++ {
			if sequential.At(row, col) != parallel.At(row, col) {
				t.Errorf("cell (%d,%d): sequential %v != parallel %v",
					row, col, sequential.At(row, col), parallel.At(row, col))
			}
		}
	}
}

func TestGrid_Palette(t *testing.T) {
	g := mustBuildGrid(t, [][]Color{
		{red, red},
		{blue, red},
	}, 2, BuildOptions{})

	palette := g.Palette()
	if len(palette) != 2 {
		t.Fatalf("palette size: got %d, want 2", len(palette))
	}
	if palette[0] != red || palette[1] != blue {
		t.Errorf("palette order: got %v, want [red blue]", palette)
	}
}
