package imgproc

import (
	"image"
	"image/color"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/native"
)

// scalar orders c the way matrices store it: blue, green, red, alpha.
func scalar(c color.RGBA) native.Scalar {
	return native.Scalar{Val1: float64(c.B), Val2: float64(c.G), Val3: float64(c.R), Val4: float64(c.A)}
}

// Circle draws a circle. A negative thickness fills it.
func Circle(img *core.Mat, center image.Point, radius int, c color.RGBA, thickness int) error {
	return img.Library().Circle(img.Ptr(), core.NativePoint(center), int32(radius), scalar(c), int32(thickness))
}

// Ellipse draws an elliptic arc rotated by angle degrees from startAngle to endAngle.
func Ellipse(img *core.Mat, center, axes image.Point, angle, startAngle, endAngle float64, c color.RGBA, thickness int) error {
	return img.Library().Ellipse(img.Ptr(), core.NativePoint(center), core.NativePoint(axes),
		angle, startAngle, endAngle, scalar(c), int32(thickness))
}

// Line draws a segment from pt1 to pt2.
func Line(img *core.Mat, pt1, pt2 image.Point, c color.RGBA, thickness int) error {
	return img.Library().Line(img.Ptr(), core.NativePoint(pt1), core.NativePoint(pt2), scalar(c), int32(thickness))
}

// Rectangle draws r. A negative thickness fills it.
func Rectangle(img *core.Mat, r image.Rectangle, c color.RGBA, thickness int) error {
	return img.Library().Rectangle(img.Ptr(), core.NativeRect(r), scalar(c), int32(thickness))
}
