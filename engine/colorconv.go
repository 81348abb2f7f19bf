package engine

import (
	"github.com/wippyai/cvbridge/engine/internal/raster"
)

type conversion struct {
	in int
	fn func(raster.Frame) raster.Frame
}

// conversions maps OpenCV color conversion codes to frame transforms.
// Codes missing from the table fail with a native error.
var conversions = map[int32]conversion{
	0:  {3, addAlpha(false)},   // BGR2BGRA
	1:  {4, dropAlpha(false)},  // BGRA2BGR
	2:  {3, addAlpha(true)},    // BGR2RGBA
	3:  {4, dropAlpha(true)},   // RGBA2BGR
	4:  {3, swapRB},            // BGR2RGB
	5:  {4, swapRB},            // BGRA2RGBA
	6:  {3, toGray(false)},     // BGR2GRAY
	7:  {3, toGray(true)},      // RGB2GRAY
	8:  {1, fromGray(3)},       // GRAY2BGR
	9:  {1, fromGray(4)},       // GRAY2BGRA
	10: {4, toGray(false)},     // BGRA2GRAY
	11: {4, toGray(true)},      // RGBA2GRAY
	32: {3, into(raster.XYZ, false)},
	33: {3, into(raster.XYZ, true)},
	34: {3, back(raster.XYZ, false)},
	35: {3, back(raster.XYZ, true)},
	36: {3, into(raster.YCrCb, false)},
	37: {3, into(raster.YCrCb, true)},
	38: {3, back(raster.YCrCb, false)},
	39: {3, back(raster.YCrCb, true)},
	40: {3, into(raster.HSV, false)},
	41: {3, into(raster.HSV, true)},
	44: {3, into(raster.Lab, false)},
	45: {3, into(raster.Lab, true)},
	50: {3, into(raster.Luv, false)},
	51: {3, into(raster.Luv, true)},
	52: {3, into(raster.HLS, false)},
	53: {3, into(raster.HLS, true)},
	54: {3, back(raster.HSV, false)},
	55: {3, back(raster.HSV, true)},
	56: {3, back(raster.Lab, false)},
	57: {3, back(raster.Lab, true)},
	58: {3, back(raster.Luv, false)},
	59: {3, back(raster.Luv, true)},
	60: {3, back(raster.HLS, false)},
	61: {3, back(raster.HLS, true)},
	66: {3, into(raster.HSVFull, false)},
	67: {3, into(raster.HSVFull, true)},
	68: {3, into(raster.HLSFull, false)},
	69: {3, into(raster.HLSFull, true)},
	70: {3, back(raster.HSVFull, false)},
	71: {3, back(raster.HSVFull, true)},
	72: {3, back(raster.HLSFull, false)},
	73: {3, back(raster.HLSFull, true)},
}

func into(s raster.Space, rgb bool) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame { return raster.Convert(f, s, rgb) }
}

func back(s raster.Space, rgb bool) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame { return raster.ConvertBack(f, s, rgb) }
}

func swapRB(f raster.Frame) raster.Frame {
	out := raster.NewFrame(f.Rows, f.Cols, f.Channels)
	copy(out.Pix, f.Pix)
	for i := 0; i < len(out.Pix); i += f.Channels {
		out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
	}
	return out
}

func addAlpha(swap bool) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame {
		out := raster.NewFrame(f.Rows, f.Cols, 4)
		for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = f.Pix[i], f.Pix[i+1], f.Pix[i+2], 0xff
			if swap {
				out.Pix[j], out.Pix[j+2] = out.Pix[j+2], out.Pix[j]
			}
		}
		return out
	}
}

func dropAlpha(swap bool) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame {
		out := raster.NewFrame(f.Rows, f.Cols, 3)
		for i, j := 0, 0; i < len(f.Pix); i, j = i+4, j+3 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = f.Pix[i], f.Pix[i+1], f.Pix[i+2]
			if swap {
				out.Pix[j], out.Pix[j+2] = out.Pix[j+2], out.Pix[j]
			}
		}
		return out
	}
}

func toGray(rgb bool) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame {
		if rgb {
			f = swapRB(f)
		}
		return f.Gray()
	}
}

func fromGray(cn int) func(raster.Frame) raster.Frame {
	return func(f raster.Frame) raster.Frame {
		out := raster.NewFrame(f.Rows, f.Cols, cn)
		for i, v := range f.Pix {
			p := out.Pix[i*cn:]
			p[0], p[1], p[2] = v, v, v
			if cn == 4 {
				p[3] = 0xff
			}
		}
		return out
	}
}
