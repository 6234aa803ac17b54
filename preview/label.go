package preview

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// label is a string anchored at a pixel baseline origin.
type label struct {
	text string
	dot  fixed.Point26_6
	rect image.Rectangle
}

var parseRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// facePool hands out one font.Face per goroutine: faces cache glyph
// buffers and must not be shared.
type facePool struct {
	size float64
	p    sync.Pool
}

func newFacePool(size float64) (*facePool, error) {
	f, err := parseRegular()
	if err != nil {
		return nil, err
	}
	fp := &facePool{size: size}
	fp.p.New = func() any {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			// The font parsed already; NewFace only rejects bad options.
			panic(err)
		}
		return face
	}
	return fp, nil
}

func (fp *facePool) get() font.Face  { return fp.p.Get().(font.Face) }
func (fp *facePool) put(f font.Face) { fp.p.Put(f) }

// layout measures text drawn with its baseline origin at (x, y).
func (fp *facePool) layout(text string, x, y int) label {
	face := fp.get()
	defer fp.put(face)

	dot := fixed.P(x, y)
	bounds, _ := font.BoundString(face, text)
	bounds = bounds.Add(dot)
	return label{
		text: text,
		dot:  dot,
		rect: image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()),
	}
}
