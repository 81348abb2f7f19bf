package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"
)

// Filter selects a resampling filter for Resize.
type Filter int

const (
	Nearest Filter = iota
	Linear
	Cubic
	Area
	Lanczos
)

func (f Filter) resample() transform.ResampleFilter {
	switch f {
	case Nearest:
		return transform.NearestNeighbor
	case Cubic:
		return transform.CatmullRom
	case Area:
		return transform.Box
	case Lanczos:
		return transform.Lanczos
	default:
		return transform.Linear
	}
}

// fromRGBA converts a bild result back to a frame of the source channel count.
func fromRGBA(img image.Image, channels int) Frame {
	if channels == 1 {
		// bild returns RGBA even for gray input; R carries the value.
		b := img.Bounds()
		f := NewFrame(b.Dy(), b.Dx(), 1)
		if rgba, ok := img.(*image.RGBA); ok {
			for i := range f.Pix {
				f.Pix[i] = rgba.Pix[i*4]
			}
			return f
		}
		return FromImage(img, 1)
	}
	return FromImage(img, channels)
}

// Gaussian blurs f with standard deviation sigma.
func Gaussian(f Frame, sigma float64) Frame {
	if sigma <= 0 {
		return f
	}
	return fromRGBA(blur.Gaussian(f.Image(), sigma), f.Channels)
}

// SigmaForKernel derives a Gaussian sigma from a kernel size the way
// getGaussianKernel does when sigma is not given.
func SigmaForKernel(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// Median applies a median filter of the given radius.
func Median(f Frame, radius float64) Frame {
	return fromRGBA(effect.Median(f.Image(), radius), f.Channels)
}

// Resize resamples f to cols x rows.
func Resize(f Frame, cols, rows int, filter Filter) Frame {
	if cols == f.Cols && rows == f.Rows {
		return f
	}
	return fromRGBA(transform.Resize(f.Image(), cols, rows, filter.resample()), f.Channels)
}

// Sobel returns the gradient magnitude of the gray version of f.
func Sobel(f Frame) Frame {
	return fromRGBA(effect.Sobel(f.Gray().Image()), 1)
}

// Binarize sets pixels at or above level to 255 and the rest to 0.
func Binarize(f Frame, level uint8) Frame {
	return FromImage(segment.Threshold(f.Gray().Image(), level), 1)
}

// Otsu returns the threshold maximizing between-class variance of a gray frame.
func Otsu(f Frame) uint8 {
	var hist [256]int
	for _, v := range f.Pix {
		hist[v]++
	}
	total := len(f.Pix)
	if total == 0 {
		return 0
	}
	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}
	var sumB, best float64
	var wB int
	var level uint8
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(t)
		}
	}
	return level
}

// Hysteresis keeps magnitude pixels at or above high and any pixel at or
// above low 8-connected to one of them.
func Hysteresis(mag Frame, low, high float64) Frame {
	out := NewFrame(mag.Rows, mag.Cols, 1)
	var stack []int
	for i, v := range mag.Pix {
		if float64(v) >= high {
			out.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%mag.Cols, i/mag.Cols
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= mag.Cols || ny >= mag.Rows {
					continue
				}
				j := ny*mag.Cols + nx
				if out.Pix[j] == 0 && float64(mag.Pix[j]) >= low {
					out.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

// Component is a connected region of foreground pixels.
type Component struct {
	Bounds   image.Rectangle
	Area     int
	Centroid [2]float64
}

// Diameter is the diameter of a disc with the component's area.
func (c Component) Diameter() float64 {
	return 2 * math.Sqrt(float64(c.Area)/math.Pi)
}

// Components labels the 8-connected regions of non-zero pixels in a gray
// frame, in raster order of their first pixel.
func Components(mask Frame) []Component {
	seen := make([]bool, len(mask.Pix))
	var out []Component
	var stack []int
	for start, v := range mask.Pix {
		if v == 0 || seen[start] {
			continue
		}
		c := Component{Bounds: image.Rect(mask.Cols, mask.Rows, 0, 0)}
		var sx, sy float64
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%mask.Cols, i/mask.Cols
			c.Area++
			sx += float64(x)
			sy += float64(y)
			c.Bounds.Min.X = min(c.Bounds.Min.X, x)
			c.Bounds.Min.Y = min(c.Bounds.Min.Y, y)
			c.Bounds.Max.X = max(c.Bounds.Max.X, x+1)
			c.Bounds.Max.Y = max(c.Bounds.Max.Y, y+1)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= mask.Cols || ny >= mask.Rows {
						continue
					}
					j := ny*mask.Cols + nx
					if mask.Pix[j] != 0 && !seen[j] {
						seen[j] = true
						stack = append(stack, j)
					}
				}
			}
		}
		c.Centroid = [2]float64{sx / float64(c.Area), sy / float64(c.Area)}
		out = append(out, c)
	}
	return out
}

// Invert returns 255 - v for every sample.
func Invert(f Frame) Frame {
	out := NewFrame(f.Rows, f.Cols, f.Channels)
	for i, v := range f.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// Foreground marks pixels brighter than the Otsu level of f.
func Foreground(f Frame) Frame {
	gray := f.Gray()
	level := Otsu(gray)
	if level == 255 {
		return NewFrame(f.Rows, f.Cols, 1)
	}
	return Binarize(gray, level+1)
}
