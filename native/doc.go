// Package native defines the narrow call surface of the native vision library.
//
// Everything that crosses the boundary is one of: an opaque handle (Mat,
// GpuMat, Net, CascadeClassifier, GpuCascade, MSER, SimpleBlobDetector), a
// small fixed-layout struct (Point, Size, Rect, Scalar, KeyPoint), a
// (pointer, length) descriptor (ByteArray, Rects, KeyPoints, Points) or an
// integer type code. Pointers refer to the library's own linear memory,
// reachable through Library.Memory.
//
// This package holds no wrappers. Safe ownership lives in core and the
// module packages built on it; the default implementation lives in engine.
package native
