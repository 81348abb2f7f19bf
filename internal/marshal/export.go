package marshal

import (
	"bytes"
	"encoding/binary"
	"image"
	"math"

	"github.com/wippyai/cvbridge"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

// ByteSource owns byte arrays handed out by the library.
type ByteSource interface {
	Memory() cvbridge.Memory
	ReleaseByteArray(buf native.ByteArray)
}

// RectSource owns rect arrays handed out by the library.
type RectSource interface {
	Memory() cvbridge.Memory
	CloseRects(rs native.Rects)
}

// KeyPointSource owns keypoint arrays handed out by the library.
type KeyPointSource interface {
	Memory() cvbridge.Memory
	CloseKeyPoints(kps native.KeyPoints)
}

// CopyBytes copies buf out of native memory and releases it.
// The result never aliases native memory.
func CopyBytes(src ByteSource, buf native.ByteArray) ([]byte, error) {
	defer src.ReleaseByteArray(buf)
	if buf.Length <= 0 {
		return nil, nil
	}
	view, err := src.Memory().Read(uint32(buf.Data), uint32(buf.Length))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindNative, err, "read byte array")
	}
	return bytes.Clone(view), nil
}

// DrainRects decodes rs and releases it.
func DrainRects(src RectSource, rs native.Rects) ([]image.Rectangle, error) {
	defer src.CloseRects(rs)
	if rs.Length <= 0 {
		return nil, nil
	}
	n, err := arrayBytes("read rects", rs.Length, native.RectStride)
	if err != nil {
		return nil, err
	}
	view, err := src.Memory().Read(uint32(rs.Rects), n)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindNative, err, "read rects")
	}
	out := make([]image.Rectangle, rs.Length)
	for i := range out {
		b := view[i*native.RectStride:]
		r := native.Rect{
			X:      int32(binary.LittleEndian.Uint32(b[0:])),
			Y:      int32(binary.LittleEndian.Uint32(b[4:])),
			Width:  int32(binary.LittleEndian.Uint32(b[8:])),
			Height: int32(binary.LittleEndian.Uint32(b[12:])),
		}
		out[i] = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
	}
	return out, nil
}

// DrainKeyPoints decodes kps and releases it.
func DrainKeyPoints(src KeyPointSource, kps native.KeyPoints) ([]native.KeyPoint, error) {
	defer src.CloseKeyPoints(kps)
	if kps.Length <= 0 {
		return nil, nil
	}
	n, err := arrayBytes("read keypoints", kps.Length, native.KeyPointStride)
	if err != nil {
		return nil, err
	}
	view, err := src.Memory().Read(uint32(kps.KeyPoints), n)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindNative, err, "read keypoints")
	}
	out := make([]native.KeyPoint, kps.Length)
	for i := range out {
		b := view[i*native.KeyPointStride:]
		out[i] = native.KeyPoint{
			X:        f64(b[0:]),
			Y:        f64(b[8:]),
			Size:     f64(b[16:]),
			Angle:    f64(b[24:]),
			Response: f64(b[32:]),
			Octave:   int32(binary.LittleEndian.Uint32(b[40:])),
			ClassID:  int32(binary.LittleEndian.Uint32(b[44:])),
		}
	}
	return out, nil
}

// arrayBytes returns the byte size of length elements of stride, failing
// when it does not fit the 32-bit address space.
func arrayBytes(what string, length int32, stride int) (uint32, error) {
	n := uint64(length) * uint64(stride)
	if n > math.MaxUint32 {
		return 0, errors.New(errors.PhaseDecode, errors.KindNative).
			Value(length).
			Detail("%s: %d elements of %d bytes exceed the address space", what, length, stride).
			Build()
	}
	return uint32(n), nil
}

func f64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
