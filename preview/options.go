package preview

import "image/color"

// Palette holds the preview colors.
type Palette struct {
	Water   color.RGBA
	Land    color.RGBA
	Outline color.RGBA
	Label   color.RGBA
}

// DefaultPalette returns a blue sea with sandy land and dark outlines.
func DefaultPalette() Palette {
	return Palette{
		Water:   color.RGBA{R: 0x1c, G: 0x3f, B: 0x6e, A: 0xff},
		Land:    color.RGBA{R: 0xd9, G: 0xc2, B: 0x8b, A: 0xff},
		Outline: color.RGBA{R: 0x3b, G: 0x2a, B: 0x1a, A: 0xff},
		Label:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	palette      Palette
	workers      int
	outlineWidth float64
	labelSize    float64
}

func defaultOptions() options {
	return options{
		palette:      DefaultPalette(),
		outlineWidth: 1.5,
		labelSize:    12,
	}
}

// WithPalette sets the colors.
func WithPalette(p Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithWorkers sets the number of tile workers. Values <= 0 select
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithOutlineWidth sets the outline stroke width in pixels. Zero disables
// outlines.
func WithOutlineWidth(w float64) Option {
	return func(o *options) {
		if w < 0 {
			w = 0
		}
		o.outlineWidth = w
	}
}

// WithLabelSize sets the label font size in points at 72 DPI.
func WithLabelSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.labelSize = size
		}
	}
}
