package imgproc

import (
	"image"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// CvtColor converts src to another color space.
func CvtColor(src, dst *core.Mat, code ColorConversionCode) error {
	lib := src.Library()
	if err := core.SameLibrary("CvtColor", lib, dst); err != nil {
		return err
	}
	return lib.CvtColor(src.Ptr(), dst.Ptr(), colorCodes.Encode(code))
}

// MatchTemplate scores templ at every position of img. mask may be nil.
func MatchTemplate(img, templ, result *core.Mat, method TemplateMatchMode, mask *core.Mat) error {
	lib := img.Library()
	if err := core.SameLibrary("MatchTemplate", lib, templ, result, mask); err != nil {
		return err
	}
	var m native.Mat
	if mask != nil {
		m = mask.Ptr()
	} else {
		m = lib.NewMat()
		defer func() { _ = lib.CloseMat(m) }()
	}
	return lib.MatchTemplate(img.Ptr(), templ.Ptr(), result.Ptr(), matchModes.Encode(method), m)
}

// PyrDown blurs and halves src. A zero size selects the default.
func PyrDown(src, dst *core.Mat, size core.Size, border core.BorderType) error {
	lib := src.Library()
	if err := core.SameLibrary("PyrDown", lib, dst); err != nil {
		return err
	}
	return lib.PyrDown(src.Ptr(), dst.Ptr(), size.Native(), border.Code())
}

// PyrUp doubles and blurs src. A zero size selects the default.
func PyrUp(src, dst *core.Mat, size core.Size, border core.BorderType) error {
	lib := src.Library()
	if err := core.SameLibrary("PyrUp", lib, dst); err != nil {
		return err
	}
	return lib.PyrUp(src.Ptr(), dst.Ptr(), size.Native(), border.Code())
}

// GaussianBlur smooths src with a ksize Gaussian kernel.
func GaussianBlur(src, dst *core.Mat, ksize core.Size, sigmaX, sigmaY float64, border core.BorderType) error {
	lib := src.Library()
	if err := core.SameLibrary("GaussianBlur", lib, dst); err != nil {
		return err
	}
	return lib.GaussianBlur(src.Ptr(), dst.Ptr(), ksize.Native(), sigmaX, sigmaY, border.Code())
}

// MedianBlur replaces each pixel by the median of its ksize x ksize neighborhood.
func MedianBlur(src, dst *core.Mat, ksize int) error {
	lib := src.Library()
	if err := core.SameLibrary("MedianBlur", lib, dst); err != nil {
		return err
	}
	return lib.MedianBlur(src.Ptr(), dst.Ptr(), int32(ksize))
}

// Laplacian computes the Laplacian of src. ddepth -1 keeps the source depth.
func Laplacian(src, dst *core.Mat, ddepth core.MatType, ksize int, scale, delta float64, border core.BorderType) error {
	lib := src.Library()
	if err := core.SameLibrary("Laplacian", lib, dst); err != nil {
		return err
	}
	return lib.Laplacian(src.Ptr(), dst.Ptr(), int32(ddepth), int32(ksize), scale, delta, border.Code())
}

// Scharr computes the first x or y derivative of src with the Scharr kernel.
func Scharr(src, dst *core.Mat, ddepth core.MatType, dx, dy int, scale, delta float64, border core.BorderType) error {
	lib := src.Library()
	if err := core.SameLibrary("Scharr", lib, dst); err != nil {
		return err
	}
	return lib.Scharr(src.Ptr(), dst.Ptr(), int32(ddepth), int32(dx), int32(dy), scale, delta, border.Code())
}

// Canny finds edges in src.
func Canny(src, edges *core.Mat, t1, t2 float64) error {
	lib := src.Library()
	if err := core.SameLibrary("Canny", lib, edges); err != nil {
		return err
	}
	return lib.Canny(src.Ptr(), edges.Ptr(), t1, t2)
}

// GoodFeaturesToTrack finds strong corners in img.
func GoodFeaturesToTrack(img, corners *core.Mat, maxCorners int, quality, minDist float64) error {
	lib := img.Library()
	if err := core.SameLibrary("GoodFeaturesToTrack", lib, corners); err != nil {
		return err
	}
	return lib.GoodFeaturesToTrack(img.Ptr(), corners.Ptr(), int32(maxCorners), quality, minDist)
}

// Threshold applies typ to every element of src and returns the threshold
// used, which differs from thresh when typ includes ThresholdOtsu or
// ThresholdTriangle.
func Threshold(src, dst *core.Mat, thresh, maxValue float64, typ ThresholdType) (float64, error) {
	lib := src.Library()
	if err := core.SameLibrary("Threshold", lib, dst); err != nil {
		return 0, err
	}
	return lib.Threshold(src.Ptr(), dst.Ptr(), thresh, maxValue, int32(typ))
}

// Resize scales src to size, or by fx and fy when size is zero.
func Resize(src, dst *core.Mat, size core.Size, fx, fy float64, interp InterpolationFlag) error {
	lib := src.Library()
	if err := core.SameLibrary("Resize", lib, dst); err != nil {
		return err
	}
	return lib.Resize(src.Ptr(), dst.Ptr(), size.Native(), fx, fy, interpolationFlags.Encode(interp))
}

// ArcLength returns the perimeter of curve, or its length when it is open.
func ArcLength(curve []image.Point, closed bool) (float64, error) {
	lib := native.Default()
	st := marshal.NewStaging()
	defer st.FreeAndRelease(lib.Allocator())

	pts, err := marshal.StagePoints(lib, st, curve)
	if err != nil {
		return 0, err
	}
	return lib.ArcLength(pts, closed)
}
