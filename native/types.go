package native

import "github.com/wippyai/cvbridge/resource"

// Resource type ids used in the native handle table.
const (
	TypeMat uint32 = iota + 1
	TypeGpuMat
	TypeNet
	TypeCascadeClassifier
	TypeGpuCascade
	TypeMSER
	TypeSimpleBlobDetector
)

// Handle types. Each is an opaque token valid from the call that returned it
// until the matching Close call.
type (
	Mat                resource.Handle
	GpuMat             resource.Handle
	Net                resource.Handle
	CascadeClassifier  resource.Handle
	GpuCascade         resource.Handle
	MSER               resource.Handle
	SimpleBlobDetector resource.Handle
)

// Ptr is an address in the native library's linear memory. 0 is null.
type Ptr uint32

// Wire strides of the fixed-layout structs, little-endian.
const (
	PointStride    = 8  // x, y int32
	RectStride     = 16 // x, y, width, height int32
	KeyPointStride = 48 // x, y, size, angle, response float64; octave, class_id int32
)

// Point is {x, y}.
type Point struct {
	X, Y int32
}

// Size is {width, height}.
type Size struct {
	Width, Height int32
}

// Rect is {x, y, width, height}.
type Rect struct {
	X, Y, Width, Height int32
}

// Scalar is four float64 channels.
type Scalar struct {
	Val1, Val2, Val3, Val4 float64
}

// KeyPoint is a detected feature.
type KeyPoint struct {
	X, Y, Size, Angle, Response float64
	Octave, ClassID             int32
}

// ByteArray describes a contiguous byte run in native memory.
// It carries no ownership: each call documents who frees it.
type ByteArray struct {
	Data   Ptr
	Length int32
}

// Rects describes a native array of Length rects, RectStride bytes apart.
type Rects struct {
	Rects  Ptr
	Length int32
}

// KeyPoints describes a native array of Length keypoints, KeyPointStride bytes apart.
type KeyPoints struct {
	KeyPoints Ptr
	Length    int32
}

// Points describes a native array of Length points, PointStride bytes apart.
type Points struct {
	Points Ptr
	Length int32
}
