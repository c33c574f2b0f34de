package inpaint

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Pixmap represents a rectangular RGBA8 pixel buffer.
//
// Pixels are stored row-major without padding, 4 bytes per pixel, with
// straight (non-premultiplied) alpha.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapFromRGBA wraps an existing RGBA8 buffer without copying.
// data must hold exactly width*height*4 bytes.
func NewPixmapFromRGBA(data []byte, width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixmap %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("pixmap %dx%d has %d bytes, want %d: %w",
			width, height, len(data), width*height*4, ErrBufferSize)
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   data,
	}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the pixmap are ignored.
func (p *Pixmap) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
// Returns transparent black outside the pixmap.
func (p *Pixmap) GetPixel(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{
		R: p.data[i+0],
		G: p.data[i+1],
		B: p.data[i+2],
		A: p.data[i+3],
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c color.NRGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{
		width:  p.width,
		height: p.height,
		data:   data,
	}
}

// ToImage converts the pixmap to an image.NRGBA. The pixel data is copied.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	// Fast path: NRGBA has the same layout
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := (y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (bounds.Min.X-nrgba.Rect.Min.X)*4
			copy(pm.data[y*width*4:(y+1)*width*4], nrgba.Pix[start:start+width*4])
		}
		return pm
	}

	// Generic path: let image/draw un-premultiply into an NRGBA view
	dst := &image.NRGBA{
		Pix:    pm.data,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
