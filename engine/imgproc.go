package engine

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/native"
)

// Border modes, OpenCV numbering.
const (
	borderConstant   int32 = 0
	borderReplicate  int32 = 1
	borderReflect    int32 = 2
	borderWrap       int32 = 3
	borderReflect101 int32 = 4
	borderIsolated   int32 = 16
)

// Interpolation flags, OpenCV numbering.
const (
	interNearest     int32 = 0
	interLinear      int32 = 1
	interCubic       int32 = 2
	interArea        int32 = 3
	interLanczos4    int32 = 4
	interLinearExact int32 = 5
)

// Threshold types, OpenCV numbering.
const (
	threshBinary    int32 = 0
	threshBinaryInv int32 = 1
	threshTrunc     int32 = 2
	threshToZero    int32 = 3
	threshToZeroInv int32 = 4
	threshOtsu      int32 = 8
	threshTriangle  int32 = 16
)

// CvtColor converts src into dst with an OpenCV color conversion code.
func (e *Engine) CvtColor(src, dst native.Mat, code int32) error {
	const op = "CvtColor"
	s, d := e.mat(op, src), e.mat(op, dst)
	conv, ok := conversions[code]
	if !ok {
		return nativeErrf(op, "color conversion %d is not supported", code)
	}
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	if f.Channels != conv.in {
		return nativeErrf(op, "conversion %d expects %d channels, got %d", code, conv.in, f.Channels)
	}
	return e.store(op, d, conv.fn(f))
}

// MatchTemplate slides templ over image and stores the match score map in result.
func (e *Engine) MatchTemplate(img, templ, result native.Mat, method int32, mask native.Mat) error {
	const op = "MatchTemplate"
	hi, ht, hr, hm := e.mat(op, img), e.mat(op, templ), e.mat(op, result), e.mat(op, mask)
	if !hm.empty() {
		return nativeErrf(op, "template masks are not supported")
	}
	if method < 0 || method > 5 {
		return nativeErrf(op, "unknown match method %d", method)
	}
	if hi.typ != ht.typ || channelsOf(hi.typ) != 1 {
		return nativeErrf(op, "image and template must share a single-channel type")
	}
	iv, err := e.planes(op, hi)
	if err != nil {
		return err
	}
	tv, err := e.planes(op, ht)
	if err != nil {
		return err
	}
	W, H, w, h := hi.cols(), hi.rows(), ht.cols(), ht.rows()
	if w > W || h > H {
		return nativeErrf(op, "template %dx%d larger than image %dx%d", w, h, W, H)
	}

	var tMean, tNorm float64
	for _, v := range tv {
		tMean += v
	}
	tMean /= float64(len(tv))
	for _, v := range tv {
		if method == 4 || method == 5 {
			tNorm += (v - tMean) * (v - tMean)
		} else {
			tNorm += v * v
		}
	}

	rw, rh := W-w+1, H-h+1
	out := make([]float64, rw*rh)
	for y := 0; y < rh; y++ {
		for x := 0; x < rw; x++ {
			var iMean float64
			if method == 4 || method == 5 {
				for ty := 0; ty < h; ty++ {
					for tx := 0; tx < w; tx++ {
						iMean += iv[(y+ty)*W+x+tx]
					}
				}
				iMean /= float64(w * h)
			}
			var score, iNorm float64
			for ty := 0; ty < h; ty++ {
				for tx := 0; tx < w; tx++ {
					a := iv[(y+ty)*W+x+tx]
					b := tv[ty*w+tx]
					switch method {
					case 0, 1:
						score += (a - b) * (a - b)
						iNorm += a * a
					case 2, 3:
						score += a * b
						iNorm += a * a
					default:
						score += (a - iMean) * (b - tMean)
						iNorm += (a - iMean) * (a - iMean)
					}
				}
			}
			if method == 1 || method == 3 || method == 5 {
				if den := math.Sqrt(iNorm * tNorm); den > math.SmallestNonzeroFloat32 {
					score /= den
				} else if method == 5 {
					score = 0
				}
			}
			out[y*rw+x] = score
		}
	}
	return e.storePlanes(op, hr, rh, rw, depth32F, out)
}

// PyrDown blurs and halves src.
func (e *Engine) PyrDown(src, dst native.Mat, size native.Size, border int32) error {
	const op = "PyrDown"
	s, d := e.mat(op, src), e.mat(op, dst)
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	cols, rows := int(size.Width), int(size.Height)
	if cols == 0 || rows == 0 {
		cols, rows = (f.Cols+1)/2, (f.Rows+1)/2
	}
	blurred := raster.Gaussian(f, raster.SigmaForKernel(5))
	return e.store(op, d, raster.Resize(blurred, cols, rows, raster.Nearest))
}

// PyrUp doubles and blurs src.
func (e *Engine) PyrUp(src, dst native.Mat, size native.Size, border int32) error {
	const op = "PyrUp"
	s, d := e.mat(op, src), e.mat(op, dst)
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	cols, rows := int(size.Width), int(size.Height)
	if cols == 0 || rows == 0 {
		cols, rows = f.Cols*2, f.Rows*2
	}
	up := raster.Resize(f, cols, rows, raster.Linear)
	return e.store(op, d, raster.Gaussian(up, raster.SigmaForKernel(5)))
}

// GaussianBlur blurs src with a Gaussian kernel.
func (e *Engine) GaussianBlur(src, dst native.Mat, ksize native.Size, sigmaX, sigmaY float64, border int32) error {
	const op = "GaussianBlur"
	s, d := e.mat(op, src), e.mat(op, dst)
	if ksize.Width < 0 || (ksize.Width > 0 && ksize.Width%2 == 0) || ksize.Height < 0 || (ksize.Height > 0 && ksize.Height%2 == 0) {
		return nativeErrf(op, "kernel size %dx%d must be odd and positive", ksize.Width, ksize.Height)
	}
	sigma := sigmaX
	if sigma <= 0 {
		if ksize.Width == 0 {
			return nativeErrf(op, "either kernel size or sigma must be set")
		}
		sigma = raster.SigmaForKernel(int(ksize.Width))
	}
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	return e.store(op, d, raster.Gaussian(f, sigma))
}

// MedianBlur applies a median filter with an odd aperture.
func (e *Engine) MedianBlur(src, dst native.Mat, ksize int32) error {
	const op = "MedianBlur"
	s, d := e.mat(op, src), e.mat(op, dst)
	if ksize < 3 || ksize%2 == 0 {
		return nativeErrf(op, "aperture %d must be odd and greater than 1", ksize)
	}
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	return e.store(op, d, raster.Median(f, float64(ksize/2)))
}

var (
	laplace1 = [9]float64{0, 1, 0, 1, -4, 1, 0, 1, 0}
	laplace3 = [9]float64{2, 0, 2, 0, -8, 0, 2, 0, 2}
	scharrX  = [9]float64{-3, 0, 3, -10, 0, 10, -3, 0, 3}
	scharrY  = [9]float64{-3, -10, -3, 0, 0, 0, 3, 10, 3}
)

// Laplacian computes the Laplacian with aperture 1 or 3.
func (e *Engine) Laplacian(src, dst native.Mat, ddepth, ksize int32, scale, delta float64, border int32) error {
	const op = "Laplacian"
	var k [9]float64
	switch ksize {
	case 1:
		k = laplace1
	case 3:
		k = laplace3
	default:
		return nativeErrf(op, "aperture %d is not supported", ksize)
	}
	return e.convolve(op, src, dst, ddepth, k, scale, delta, border)
}

// Scharr computes the first x or y derivative with the Scharr operator.
func (e *Engine) Scharr(src, dst native.Mat, ddepth, dx, dy int32, scale, delta float64, border int32) error {
	const op = "Scharr"
	switch {
	case dx == 1 && dy == 0:
		return e.convolve(op, src, dst, ddepth, scharrX, scale, delta, border)
	case dx == 0 && dy == 1:
		return e.convolve(op, src, dst, ddepth, scharrY, scale, delta, border)
	default:
		return nativeErrf(op, "derivative order dx=%d dy=%d is not supported", dx, dy)
	}
}

func (e *Engine) convolve(op string, src, dst native.Mat, ddepth int32, k [9]float64, scale, delta float64, border int32) error {
	s, d := e.mat(op, src), e.mat(op, dst)
	vals, err := e.planes(op, s)
	if err != nil {
		return err
	}
	if ddepth < 0 {
		ddepth = depthOf(s.typ)
	}
	if ddepth > depth64F {
		return nativeErrf(op, "unsupported output depth %d", ddepth)
	}
	rows, cols, cn := s.rows(), s.cols(), channelsOf(s.typ)
	out := make([]float64, len(vals))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			for c := 0; c < cn; c++ {
				var acc float64
				for ky := -1; ky <= 1; ky++ {
					sy, ok := borderIndex(y+ky, rows, border)
					for kx := -1; kx <= 1; kx++ {
						sx, okx := borderIndex(x+kx, cols, border)
						if !ok || !okx {
							continue
						}
						acc += k[(ky+1)*3+kx+1] * vals[(sy*cols+sx)*cn+c]
					}
				}
				out[(y*cols+x)*cn+c] = acc*scale + delta
			}
		}
	}
	return e.storePlanes(op, d, rows, cols, makeType(ddepth, cn), out)
}

// borderIndex maps an out-of-range coordinate into [0, n). ok is false when
// the border is constant and the sample is outside.
func borderIndex(i, n int, border int32) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	if n == 1 {
		return 0, border != borderConstant
	}
	switch border &^ borderIsolated {
	case borderConstant:
		return 0, false
	case borderReplicate:
		return min(max(i, 0), n-1), true
	case borderReflect:
		if i < 0 {
			return -i - 1, true
		}
		return 2*n - i - 1, true
	case borderWrap:
		return ((i % n) + n) % n, true
	default:
		if i < 0 {
			return -i, true
		}
		return 2*n - i - 2, true
	}
}

// Canny finds edges using the gradient magnitude and hysteresis thresholds.
func (e *Engine) Canny(src, edges native.Mat, t1, t2 float64) error {
	const op = "Canny"
	s, d := e.mat(op, src), e.mat(op, edges)
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	low, high := math.Min(t1, t2), math.Max(t1, t2)
	return e.store(op, d, raster.Hysteresis(raster.Sobel(f), low, high))
}

// GoodFeaturesToTrack is not available in this engine.
func (e *Engine) GoodFeaturesToTrack(img, corners native.Mat, maxCorners int32, quality, minDist float64) error {
	const op = "GoodFeaturesToTrack"
	e.mat(op, img)
	e.mat(op, corners)
	return nativeErrf(op, "corner detection is not implemented by the in-process engine")
}

// Threshold applies a fixed-level threshold and returns the level used.
func (e *Engine) Threshold(src, dst native.Mat, thresh, maxValue float64, typ int32) (float64, error) {
	const op = "Threshold"
	s, d := e.mat(op, src), e.mat(op, dst)
	base := typ & 7
	if base > threshToZeroInv || typ&^(7|threshOtsu|threshTriangle) != 0 {
		return 0, nativeErrf(op, "unknown threshold type %d", typ)
	}
	if typ&threshTriangle != 0 {
		return 0, nativeErrf(op, "triangle thresholding is not supported")
	}
	vals, err := e.planes(op, s)
	if err != nil {
		return 0, err
	}
	if typ&threshOtsu != 0 {
		if s.typ != makeType(depth8U, 1) {
			return 0, nativeErrf(op, "Otsu thresholding needs an 8-bit single-channel image")
		}
		f, err := e.frame(op, s)
		if err != nil {
			return 0, err
		}
		thresh = float64(raster.Otsu(f))
	}
	if depthOf(s.typ) == depth8U {
		thresh = math.Floor(thresh)
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch base {
		case threshBinary:
			if v > thresh {
				out[i] = maxValue
			}
		case threshBinaryInv:
			if v <= thresh {
				out[i] = maxValue
			}
		case threshTrunc:
			out[i] = math.Min(v, thresh)
		case threshToZero:
			if v > thresh {
				out[i] = v
			}
		case threshToZeroInv:
			if v <= thresh {
				out[i] = v
			}
		}
	}
	return thresh, e.storePlanes(op, d, s.rows(), s.cols(), s.typ, out)
}

// Resize resamples src to size, or by fx, fy when size is zero.
func (e *Engine) Resize(src, dst native.Mat, size native.Size, fx, fy float64, interp int32) error {
	const op = "Resize"
	s, d := e.mat(op, src), e.mat(op, dst)
	f, err := e.frame(op, s)
	if err != nil {
		return err
	}
	cols, rows := int(size.Width), int(size.Height)
	if cols == 0 || rows == 0 {
		if fx <= 0 || fy <= 0 {
			return nativeErrf(op, "either size or scale factors must be positive")
		}
		cols, rows = int(math.Round(float64(f.Cols)*fx)), int(math.Round(float64(f.Rows)*fy))
	}
	if cols <= 0 || rows <= 0 {
		return nativeErrf(op, "target size %dx%d is empty", cols, rows)
	}
	var filter raster.Filter
	switch interp & 7 {
	case interNearest:
		filter = raster.Nearest
	case interLinear, interLinearExact:
		filter = raster.Linear
	case interCubic:
		filter = raster.Cubic
	case interArea:
		filter = raster.Area
	case interLanczos4:
		filter = raster.Lanczos
	default:
		return nativeErrf(op, "unknown interpolation %d", interp)
	}
	return e.store(op, d, raster.Resize(f, cols, rows, filter))
}

// ArcLength returns the perimeter of a curve read from native memory.
func (e *Engine) ArcLength(curve native.Points, closed bool) (float64, error) {
	const op = "ArcLength"
	if curve.Length < 0 {
		return 0, nativeErrf(op, "negative length %d", curve.Length)
	}
	if curve.Length < 2 {
		return 0, nil
	}
	raw, err := e.host.Copy(uint32(curve.Points), uint32(curve.Length)*native.PointStride)
	if err != nil {
		return 0, nativeErr(op, err)
	}
	pts := make([]image.Point, curve.Length)
	for i := range pts {
		pts[i] = image.Pt(int(int32(binary.LittleEndian.Uint32(raw[i*8:]))), int(int32(binary.LittleEndian.Uint32(raw[i*8+4:]))))
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += dist(pts[i-1], pts[i])
	}
	if closed {
		total += dist(pts[len(pts)-1], pts[0])
	}
	return total, nil
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// draw renders fn onto the 8-bit image in place.
func (e *Engine) draw(op string, m native.Mat, color native.Scalar, thickness int32, fn func(dc *gg.Context)) error {
	h := e.mat(op, m)
	f, err := e.frame(op, h)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(f.Image())
	defer dc.Close()

	if f.Channels == 1 {
		v := color.Val1 / 255
		dc.SetRGB(v, v, v)
	} else {
		dc.SetRGB(color.Val3/255, color.Val2/255, color.Val1/255)
	}
	fn(dc)
	if thickness < 0 {
		err = dc.Fill()
	} else {
		dc.SetLineWidth(float64(max(thickness, 1)))
		err = dc.Stroke()
	}
	if err != nil {
		return nativeErr(op, err)
	}
	out := raster.FromImage(dc.Image(), f.Channels)
	if f.Channels == 4 {
		// drawing leaves alpha untouched
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = f.Pix[i]
		}
	}
	return nativeErr(op, h.write(out.Pix))
}

// Circle draws a circle; negative thickness fills it.
func (e *Engine) Circle(img native.Mat, center native.Point, radius int32, color native.Scalar, thickness int32) error {
	return e.draw("Circle", img, color, thickness, func(dc *gg.Context) {
		dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	})
}

// Ellipse draws an elliptic arc rotated by angle degrees.
func (e *Engine) Ellipse(img native.Mat, center, axes native.Point, angle, startAngle, endAngle float64, color native.Scalar, thickness int32) error {
	return e.draw("Ellipse", img, color, thickness, func(dc *gg.Context) {
		cx, cy := float64(center.X), float64(center.Y)
		dc.Push()
		dc.RotateAbout(radians(angle), cx, cy)
		if endAngle-startAngle >= 360 {
			dc.DrawEllipse(cx, cy, float64(axes.X), float64(axes.Y))
		} else {
			dc.DrawEllipticalArc(cx, cy, float64(axes.X), float64(axes.Y), radians(startAngle), radians(endAngle))
		}
		dc.Pop()
	})
}

// Line draws a segment between pt1 and pt2.
func (e *Engine) Line(img native.Mat, pt1, pt2 native.Point, color native.Scalar, thickness int32) error {
	return e.draw("Line", img, color, max(thickness, 1), func(dc *gg.Context) {
		dc.DrawLine(float64(pt1.X), float64(pt1.Y), float64(pt2.X), float64(pt2.Y))
	})
}

// Rectangle draws r; negative thickness fills it.
func (e *Engine) Rectangle(img native.Mat, r native.Rect, color native.Scalar, thickness int32) error {
	return e.draw("Rectangle", img, color, thickness, func(dc *gg.Context) {
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	})
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
