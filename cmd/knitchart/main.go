// Command knitchart converts a raster image into an intarsia knitting
// chart: an SVG grid of stitch cells colored from the source image, with
// contiguous color blocks lettered and counted for bobbin planning.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/stitchworks/knitchart/internal/chart"
	"github.com/stitchworks/knitchart/internal/gauge"
	"github.com/stitchworks/knitchart/internal/imageio"
	"github.com/stitchworks/knitchart/internal/preset"
	"github.com/stitchworks/knitchart/internal/render"
)

var cli struct {
	Input  string `short:"i" required:"" type:"existingfile" help:"Source image (png, jpeg, gif, bmp, tiff, webp)."`
	Output string `short:"o" required:"" placeholder:"FILE" help:"Destination SVG file."`

	Stitches      int    `short:"s" default:"22" help:"Cast-on stitch count, the chart width."`
	GaugeStitches string `placeholder:"GAUGE" help:"Stitch gauge, e.g. 22 or 30/4in. Requires --gauge-rows."`
	GaugeRows     string `placeholder:"GAUGE" help:"Row gauge, e.g. 30 or 42/4in. Requires --gauge-stitches."`
	Garter        bool   `short:"g" help:"Collapse color changes onto right-side rows for garter fabric."`

	Text    string `default:"thread" enum:"none,thread" help:"Per-stitch labels: none or bobbin letters."`
	Legend  bool   `default:"true" negatable:"" help:"Append the bobbin legend under the chart."`
	Preview string `placeholder:"FILE" help:"Also write a PNG preview of the chart."`

	Presets string `placeholder:"FILE" help:"TOML gauge preset file."`
	Preset  string `help:"Preset name to apply from the preset file."`

	Workers int  `default:"0" help:"Quantizer worker count, 0 means one per CPU."`
	Verbose bool `short:"v" help:"Enable debug logging."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("knitchart"),
		kong.Description("Generate an intarsia knitting chart from an image."),
		kong.UsageOnError(),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	kctx.FatalIfErrorf(run(logger))
}

func run(logger *log.Logger) error {
	if err := applyPreset(logger); err != nil {
		return err
	}

	gaugeStitches, gaugeRows, err := parseGauges()
	if err != nil {
		return err
	}

	img, info, err := imageio.Load(cli.Input)
	if err != nil {
		return err
	}
	logger.Debug("decoded source image",
		"file", cli.Input, "format", info.Format, "width", info.Width, "height", info.Height)

	geom, err := chart.NewGeometry(info.Width, info.Height, cli.Stitches, gaugeStitches, gaugeRows)
	if err != nil {
		return err
	}
	logger.Debug("chart geometry",
		"cols", geom.Cols, "rows", geom.Rows,
		"cell_width", geom.CellWidth, "cell_height", geom.CellHeight)

	grid, err := chart.BuildGrid(img, geom, chart.BuildOptions{
		Garter:  cli.Garter,
		Workers: cli.Workers,
	})
	if err != nil {
		return err
	}

	regions, labels := chart.FindRegions(grid)
	logger.Info("chart built",
		"stitches", geom.Cols, "rows", geom.Rows,
		"colors", len(grid.Palette()), "bobbins", len(regions))

	if err := writeSVG(grid, regions, labels, geom); err != nil {
		return err
	}
	logger.Info("wrote chart", "file", cli.Output)

	if cli.Preview != "" {
		if err := imageio.SavePNG(render.Preview(grid, geom), cli.Preview); err != nil {
			return err
		}
		logger.Info("wrote preview", "file", cli.Preview)
	}

	return nil
}

// applyPreset overlays the selected preset onto any flags the user left
// at their defaults.
func applyPreset(logger *log.Logger) error {
	if cli.Preset == "" && cli.Presets == "" {
		return nil
	}
	if cli.Preset == "" || cli.Presets == "" {
		return fmt.Errorf("--preset and --presets must be given together")
	}

	file, err := preset.Load(cli.Presets)
	if err != nil {
		return err
	}
	p, err := file.Resolve(cli.Preset)
	if err != nil {
		return err
	}

	if p.Stitches > 0 {
		cli.Stitches = p.Stitches
	}
	if p.GaugeStitches != "" {
		cli.GaugeStitches = p.GaugeStitches
	}
	if p.GaugeRows != "" {
		cli.GaugeRows = p.GaugeRows
	}
	if p.Garter {
		cli.Garter = true
	}

	logger.Debug("applied preset", "name", cli.Preset,
		"stitches", cli.Stitches, "gauge_stitches", cli.GaugeStitches, "gauge_rows", cli.GaugeRows)
	return nil
}

func parseGauges() (gaugeStitches, gaugeRows float64, err error) {
	if (cli.GaugeStitches == "") != (cli.GaugeRows == "") {
		return 0, 0, fmt.Errorf("--gauge-stitches and --gauge-rows must be given together")
	}
	if cli.GaugeStitches == "" {
		return 0, 0, nil
	}

	if gaugeStitches, err = gauge.Parse(cli.GaugeStitches); err != nil {
		return 0, 0, fmt.Errorf("--gauge-stitches: %w", err)
	}
	if gaugeRows, err = gauge.Parse(cli.GaugeRows); err != nil {
		return 0, 0, fmt.Errorf("--gauge-rows: %w", err)
	}
	return gaugeStitches, gaugeRows, nil
}

func writeSVG(grid *chart.Grid, regions []chart.Region, labels []int, geom chart.Geometry) error {
	out, err := os.Create(cli.Output)
	if err != nil {
		return fmt.Errorf("creating %q: %w", cli.Output, err)
	}

	opts := render.Options{Legend: cli.Legend}
	if cli.Text == "thread" {
		opts.Text = render.TextThread
	}

	if err := render.SVG(out, grid, regions, labels, geom, opts); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", cli.Output, err)
	}
	return nil
}
