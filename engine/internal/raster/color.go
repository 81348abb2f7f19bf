package raster

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Space is a three-channel colour space reachable from RGB.
type Space int

const (
	HSV Space = iota
	HSVFull
	HLS
	HLSFull
	Lab
	Luv
	XYZ
	YCrCb
)

func clamp8(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func hueScale(full bool) float64 {
	if full {
		return 255.0 / 360.0
	}
	return 0.5
}

// FromRGB converts one RGB triple to 8-bit channels of s, OpenCV scaling.
func FromRGB(s Space, r, g, b uint8) [3]uint8 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	switch s {
	case HSV, HSVFull:
		h, sat, v := c.Hsv()
		return [3]uint8{clamp8(h * hueScale(s == HSVFull)), clamp8(sat * 255), clamp8(v * 255)}
	case HLS, HLSFull:
		h, sat, l := c.Hsl()
		return [3]uint8{clamp8(h * hueScale(s == HLSFull)), clamp8(l * 255), clamp8(sat * 255)}
	case Lab:
		l, a, bb := c.Lab()
		return [3]uint8{clamp8(l * 255), clamp8(a*100 + 128), clamp8(bb*100 + 128)}
	case Luv:
		l, u, v := c.Luv()
		return [3]uint8{clamp8(l * 255), clamp8((u*100 + 134) * 255 / 354), clamp8((v*100 + 140) * 255 / 262)}
	case XYZ:
		x, y, z := c.Xyz()
		return [3]uint8{clamp8(x * 255), clamp8(y * 255), clamp8(z * 255)}
	default: // YCrCb
		yy := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		return [3]uint8{clamp8(yy), clamp8((float64(r)-yy)*0.713 + 128), clamp8((float64(b)-yy)*0.564 + 128)}
	}
}

// ToRGB is the inverse of FromRGB.
func ToRGB(s Space, p [3]uint8) (r, g, b uint8) {
	var c colorful.Color
	switch s {
	case HSV, HSVFull:
		c = colorful.Hsv(float64(p[0])/hueScale(s == HSVFull), float64(p[1])/255, float64(p[2])/255)
	case HLS, HLSFull:
		c = colorful.Hsl(float64(p[0])/hueScale(s == HLSFull), float64(p[2])/255, float64(p[1])/255)
	case Lab:
		c = colorful.Lab(float64(p[0])/255, (float64(p[1])-128)/100, (float64(p[2])-128)/100)
	case Luv:
		c = colorful.Luv(float64(p[0])/255, (float64(p[1])*354/255-134)/100, (float64(p[2])*262/255-140)/100)
	case XYZ:
		c = colorful.Xyz(float64(p[0])/255, float64(p[1])/255, float64(p[2])/255)
	default: // YCrCb
		yy, cr, cb := float64(p[0]), float64(p[1])-128, float64(p[2])-128
		return clamp8(yy + 1.403*cr), clamp8(yy - 0.714*cr - 0.344*cb), clamp8(yy + 1.773*cb)
	}
	return c.Clamped().RGB255()
}

// Convert maps a 3-channel B,G,R (or R,G,B when rgb is set) frame into s.
func Convert(f Frame, s Space, rgb bool) Frame {
	out := NewFrame(f.Rows, f.Cols, 3)
	for i := 0; i < f.Rows*f.Cols; i++ {
		p := f.Pix[i*f.Channels:]
		r, g, b := p[2], p[1], p[0]
		if rgb {
			r, b = b, r
		}
		v := FromRGB(s, r, g, b)
		copy(out.Pix[i*3:], v[:])
	}
	return out
}

// ConvertBack maps a frame in s to B,G,R (or R,G,B when rgb is set).
func ConvertBack(f Frame, s Space, rgb bool) Frame {
	out := NewFrame(f.Rows, f.Cols, 3)
	for i := 0; i < f.Rows*f.Cols; i++ {
		p := f.Pix[i*3:]
		r, g, b := ToRGB(s, [3]uint8{p[0], p[1], p[2]})
		if rgb {
			r, b = b, r
		}
		out.Pix[i*3+0], out.Pix[i*3+1], out.Pix[i*3+2] = b, g, r
	}
	return out
}
