package chart

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an exact 8-bit RGB value sampled from the source image.
//
// Equality is exact channel equality; two colors that merely look alike are
// distinct. Alpha is discarded during sampling, so Color has no alpha
// component.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorOf reduces any color.Color to an exact 8-bit Color, dropping alpha.
func ColorOf(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA implements color.Color so a chart Color can be handed straight to
// the image/draw machinery when rendering previews.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}.RGBA()
}

// Luminance returns the CIE L* lightness of the color in [0, 1].
func (c Color) Luminance() float64 {
	l, _, _ := c.colorful().Lab()
	return l
}

// LabelColor picks black or white, whichever reads better as text drawn on
// top of this color. Dark blocks get white labels, light blocks get black.
func (c Color) LabelColor() Color {
	if c.Luminance() < 0.5 {
		return Color{R: 0xFF, G: 0xFF, B: 0xFF}
	}
	return Color{}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
