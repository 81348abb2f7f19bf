package core

import (
	"image"

	"github.com/wippyai/cvbridge/native"
)

// Size is a width and height.
type Size struct {
	Width  int
	Height int
}

// NewSize returns a Size.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Native converts s for a native call.
func (s Size) Native() native.Size {
	return native.Size{Width: int32(s.Width), Height: int32(s.Height)}
}

// SizeFromNative converts a native size.
func SizeFromNative(s native.Size) Size {
	return Size{Width: int(s.Width), Height: int(s.Height)}
}

// Scalar holds up to four channel values.
type Scalar struct {
	Val1 float64
	Val2 float64
	Val3 float64
	Val4 float64
}

// NewScalar returns a Scalar.
func NewScalar(v1, v2, v3, v4 float64) Scalar {
	return Scalar{Val1: v1, Val2: v2, Val3: v3, Val4: v4}
}

// Native converts s for a native call.
func (s Scalar) Native() native.Scalar {
	return native.Scalar{Val1: s.Val1, Val2: s.Val2, Val3: s.Val3, Val4: s.Val4}
}

// ScalarFromNative converts a native scalar.
func ScalarFromNative(s native.Scalar) Scalar {
	return Scalar{Val1: s.Val1, Val2: s.Val2, Val3: s.Val3, Val4: s.Val4}
}

// KeyPoint is a feature found by a detector.
type KeyPoint struct {
	X, Y     float64
	Size     float64
	Angle    float64
	Response float64
	Octave   int
	ClassID  int
}

// KeyPointFromNative converts a native keypoint.
func KeyPointFromNative(kp native.KeyPoint) KeyPoint {
	return KeyPoint{
		X:        kp.X,
		Y:        kp.Y,
		Size:     kp.Size,
		Angle:    kp.Angle,
		Response: kp.Response,
		Octave:   int(kp.Octave),
		ClassID:  int(kp.ClassID),
	}
}

// NativePoint converts p for a native call.
func NativePoint(p image.Point) native.Point {
	return native.Point{X: int32(p.X), Y: int32(p.Y)}
}

// PointFromNative converts a native point.
func PointFromNative(p native.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// NativeRect converts r for a native call.
func NativeRect(r image.Rectangle) native.Rect {
	r = r.Canon()
	return native.Rect{
		X:      int32(r.Min.X),
		Y:      int32(r.Min.Y),
		Width:  int32(r.Dx()),
		Height: int32(r.Dy()),
	}
}
