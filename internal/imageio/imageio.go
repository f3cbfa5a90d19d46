// Package imageio handles the two image I/O edges of the pipeline:
// decoding the source picture and encoding the optional raster preview.
// The chart core never touches the filesystem.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/vp8l" // register VP8L decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Info describes a decoded source image.
type Info struct {
	Width  int
	Height int
	Format string
}

// Load decodes the image at path, applying any EXIF orientation so a
// phone photo samples the way it displays.
func Load(path string) (image.Image, Info, error) {
	info, err := describe(path)
	if err != nil {
		return nil, Info{}, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decoding %q: %w", path, err)
	}

	// Orientation may have swapped the decoded dimensions.
	b := img.Bounds()
	info.Width, info.Height = b.Dx(), b.Dy()

	return img, info, nil
}

// describe reads just the image header for the registered format name.
func describe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading %q: %w", path, err)
	}

	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// SavePNG encodes img to path as PNG.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return nil
}
