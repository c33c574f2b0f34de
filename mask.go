package inpaint

import (
	"fmt"
	"image"
	"strings"
)

// Threshold is the default mask cut-off: a pixel is masked when its mask
// value is strictly greater than Threshold.
const Threshold = 128

// Channel selects which component of a colour image encodes mask intensity.
type Channel uint8

const (
	// ChannelRed reads the red channel (channel 0 of an RGBA buffer).
	ChannelRed Channel = iota
	// ChannelGreen reads the green channel.
	ChannelGreen
	// ChannelBlue reads the blue channel.
	ChannelBlue
	// ChannelAlpha reads the alpha channel.
	ChannelAlpha
	// ChannelLuma reads Rec. 601 luminance of the straight RGB values.
	ChannelLuma
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	case ChannelAlpha:
		return "alpha"
	case ChannelLuma:
		return "luma"
	default:
		return "unknown"
	}
}

// ParseChannel parses a channel name, case-insensitively. The empty string
// selects ChannelRed.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "red", "r":
		return ChannelRed, nil
	case "green", "g":
		return ChannelGreen, nil
	case "blue", "b":
		return ChannelBlue, nil
	case "alpha", "a":
		return ChannelAlpha, nil
	case "luma", "gray", "grey":
		return ChannelLuma, nil
	default:
		return 0, fmt.Errorf("inpaint: unknown mask channel %q", s)
	}
}

// pick extracts the selected channel from a straight-alpha RGBA pixel.
func (c Channel) pick(r, g, b, a uint8) uint8 {
	switch c {
	case ChannelGreen:
		return g
	case ChannelBlue:
		return b
	case ChannelAlpha:
		return a
	case ChannelLuma:
		// #nosec G115 -- weights sum to 1000, result is in [0, 255]
		return uint8((int(r)*299 + int(g)*587 + int(b)*114 + 500) / 1000)
	default:
		return r
	}
}

// Mask marks the region of an image to remove.
// Values range from 0 to 255; values above Threshold are masked.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
// All values are initialized to 0 (nothing masked).
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewMaskFromRGBA creates a mask from one channel of a raw RGBA8 buffer
// (row-major, 4 bytes per pixel, no padding). The data is copied.
func NewMaskFromRGBA(data []byte, width, height int, ch Channel) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mask %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("mask %dx%d has %d bytes, want %d: %w",
			width, height, len(data), width*height*4, ErrBufferSize)
	}

	m := NewMask(width, height)
	for i := range m.data {
		o := i * 4
		m.data[i] = ch.pick(data[o], data[o+1], data[o+2], data[o+3])
	}
	return m, nil
}

// NewMaskFromImage creates a mask from one channel of an image.
func NewMaskFromImage(img image.Image, ch Channel) *Mask {
	pm := FromImage(img)
	m := NewMask(pm.width, pm.height)
	for i := range m.data {
		o := i * 4
		m.data[i] = ch.pick(pm.data[o], pm.data[o+1], pm.data[o+2], pm.data[o+3])
	}
	return m
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// IsMasked reports whether (x, y) is above Threshold.
func (m *Mask) IsMasked(x, y int) bool {
	return m.At(x, y) > Threshold
}

// Count returns the number of values above Threshold.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v > Threshold {
			n++
		}
	}
	return n
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Invert inverts all mask values (255 - value).
// Useful when the segmentation marks the region to keep.
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = 255 - m.data[i]
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Data returns the underlying mask data slice.
func (m *Mask) Data() []uint8 {
	return m.data
}

// Dilate grows the masked region (values above Threshold) by amount pixels
// in every direction, so a single masked pixel becomes a
// (2*amount+1)×(2*amount+1) square. Newly covered pixels are set to 255;
// existing values are kept.
//
// Dilation runs as a horizontal pass followed by a vertical pass.
func (m *Mask) Dilate(amount int) {
	if amount <= 0 || len(m.data) == 0 {
		return
	}

	grow := make([]bool, len(m.data))
	commit := func() {
		for i, g := range grow {
			if g {
				m.data[i] = 255
				grow[i] = false
			}
		}
	}

	// horizontal dilation
	for y := 0; y < m.height; y++ {
		row := y * m.width
		for x := 0; x < m.width; x++ {
			if m.data[row+x] <= Threshold {
				continue
			}
			for off := -amount; off <= amount; off++ {
				nx := x + off
				if nx < 0 || nx >= m.width || m.data[row+nx] > Threshold {
					continue
				}
				grow[row+nx] = true
			}
		}
	}
	commit()

	// vertical dilation
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.data[y*m.width+x] <= Threshold {
				continue
			}
			for off := -amount; off <= amount; off++ {
				ny := y + off
				if ny < 0 || ny >= m.height || m.data[ny*m.width+x] > Threshold {
					continue
				}
				grow[ny*m.width+x] = true
			}
		}
	}
	commit()
}
