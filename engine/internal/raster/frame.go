// Package raster converts 8-bit matrix contents to and from image.Image and
// hosts the pixel kernels the engine runs on them.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Frame is a densely packed 8-bit raster with 1, 3 or 4 channels in
// B, G, R, A order.
type Frame struct {
	Rows, Cols, Channels int
	Pix                  []byte
}

// NewFrame allocates a zeroed frame.
func NewFrame(rows, cols, channels int) Frame {
	return Frame{Rows: rows, Cols: cols, Channels: channels, Pix: make([]byte, rows*cols*channels)}
}

// At returns channel c of the pixel at (x, y).
func (f Frame) At(x, y, c int) byte {
	return f.Pix[(y*f.Cols+x)*f.Channels+c]
}

// Image returns f as a *image.Gray (one channel) or *image.NRGBA.
func (f Frame) Image() image.Image {
	r := image.Rect(0, 0, f.Cols, f.Rows)
	if f.Channels == 1 {
		g := image.NewGray(r)
		copy(g.Pix, f.Pix)
		return g
	}
	out := image.NewNRGBA(r)
	for i, j := 0, 0; i < len(f.Pix); i, j = i+f.Channels, j+4 {
		out.Pix[j+0] = f.Pix[i+2]
		out.Pix[j+1] = f.Pix[i+1]
		out.Pix[j+2] = f.Pix[i+0]
		if f.Channels == 4 {
			out.Pix[j+3] = f.Pix[i+3]
		} else {
			out.Pix[j+3] = 0xff
		}
	}
	return out
}

// FromImage converts img to a frame with the given channel count.
// Colour images reduced to one channel use the ITU-R BT.601 luma weights.
func FromImage(img image.Image, channels int) Frame {
	b := img.Bounds()
	f := NewFrame(b.Dy(), b.Dx(), channels)

	if channels == 1 {
		if g, ok := img.(*image.Gray); ok && g.Stride == b.Dx() {
			copy(f.Pix, g.Pix)
			return f
		}
		for y := 0; y < f.Rows; y++ {
			for x := 0; x < f.Cols; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				f.Pix[y*f.Cols+x] = Luma(c.R, c.G, c.B)
			}
		}
		return f
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	for i, j := 0, 0; j < len(nrgba.Pix); i, j = i+channels, j+4 {
		f.Pix[i+0] = nrgba.Pix[j+2]
		f.Pix[i+1] = nrgba.Pix[j+1]
		f.Pix[i+2] = nrgba.Pix[j+0]
		if channels == 4 {
			f.Pix[i+3] = nrgba.Pix[j+3]
		}
	}
	return f
}

// Luma returns the BT.601 luma of an RGB triple, rounded.
func Luma(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000)
}

// Gray reduces f to one channel.
func (f Frame) Gray() Frame {
	if f.Channels == 1 {
		return f
	}
	out := NewFrame(f.Rows, f.Cols, 1)
	for i := range out.Pix {
		p := f.Pix[i*f.Channels:]
		out.Pix[i] = Luma(p[2], p[1], p[0])
	}
	return out
}

// Opaque reports whether every alpha value of a 4-channel frame is 255.
func (f Frame) Opaque() bool {
	if f.Channels != 4 {
		return true
	}
	for i := 3; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// WithChannels converts f to the given channel count.
func (f Frame) WithChannels(channels int) Frame {
	if f.Channels == channels {
		return f
	}
	if channels == 1 {
		return f.Gray()
	}
	return FromImage(f.Image(), channels)
}
