package engine

import (
	"encoding/binary"
	"image"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/native"
)

// detectParams narrows the regions a detector reports.
type detectParams struct {
	window     image.Point // classifier window; smaller regions are noise
	minSize    image.Point
	maxSize    image.Point // zero means unbounded
	maxObjects int         // zero means unbounded
	largest    bool
}

// detectRegions finds foreground regions of f, sorted top to bottom then
// left to right.
func detectRegions(f raster.Frame, p detectParams) []image.Rectangle {
	mask := raster.Foreground(f)

	floor := image.Pt(max(p.window.X, p.minSize.X), max(p.window.Y, p.minSize.Y))
	var out []image.Rectangle
	for _, c := range raster.Components(mask) {
		sz := c.Bounds.Size()
		if sz.X < floor.X || sz.Y < floor.Y {
			continue
		}
		if p.maxSize.X > 0 && sz.X > p.maxSize.X || p.maxSize.Y > 0 && sz.Y > p.maxSize.Y {
			continue
		}
		out = append(out, c.Bounds)
	}

	if p.largest && len(out) > 1 {
		best := out[0]
		for _, r := range out[1:] {
			if area(r) > area(best) {
				best = r
			}
		}
		out = []image.Rectangle{best}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Min.Y != out[j].Min.Y {
			return out[i].Min.Y < out[j].Min.Y
		}
		return out[i].Min.X < out[j].Min.X
	})
	if p.maxObjects > 0 && len(out) > p.maxObjects {
		out = out[:p.maxObjects]
	}
	return out
}

func area(r image.Rectangle) int {
	s := r.Size()
	return s.X * s.Y
}

// rectArray stores rects in a fresh host block in wire layout.
func (e *Engine) rectArray(op string, rs []image.Rectangle) (native.Rects, error) {
	if len(rs) == 0 {
		return native.Rects{}, nil
	}
	buf := make([]byte, len(rs)*native.RectStride)
	for i, r := range rs {
		b := buf[i*native.RectStride:]
		binary.LittleEndian.PutUint32(b[0:], uint32(int32(r.Min.X)))
		binary.LittleEndian.PutUint32(b[4:], uint32(int32(r.Min.Y)))
		binary.LittleEndian.PutUint32(b[8:], uint32(int32(r.Dx())))
		binary.LittleEndian.PutUint32(b[12:], uint32(int32(r.Dy())))
	}
	arr, err := e.byteArray(op, buf)
	if err != nil {
		return native.Rects{}, err
	}
	return native.Rects{Rects: arr.Data, Length: int32(len(rs))}, nil
}

// CloseRects frees an array returned by a detector.
func (e *Engine) CloseRects(rs native.Rects) {
	if rs.Rects == 0 {
		return
	}
	if err := e.host.Release(uint32(rs.Rects)); err != nil {
		Logger().Warn("release rects", zap.Error(err))
	}
}

// keyPointArray stores keypoints in a fresh host block in wire layout.
func (e *Engine) keyPointArray(op string, kps []native.KeyPoint) (native.KeyPoints, error) {
	if len(kps) == 0 {
		return native.KeyPoints{}, nil
	}
	buf := make([]byte, len(kps)*native.KeyPointStride)
	for i, kp := range kps {
		b := buf[i*native.KeyPointStride:]
		putValue(b[0:], depth64F, kp.X)
		putValue(b[8:], depth64F, kp.Y)
		putValue(b[16:], depth64F, kp.Size)
		putValue(b[24:], depth64F, kp.Angle)
		putValue(b[32:], depth64F, kp.Response)
		binary.LittleEndian.PutUint32(b[40:], uint32(kp.Octave))
		binary.LittleEndian.PutUint32(b[44:], uint32(kp.ClassID))
	}
	arr, err := e.byteArray(op, buf)
	if err != nil {
		return native.KeyPoints{}, err
	}
	return native.KeyPoints{KeyPoints: arr.Data, Length: int32(len(kps))}, nil
}

// CloseKeyPoints frees an array returned by a feature detector.
func (e *Engine) CloseKeyPoints(kps native.KeyPoints) {
	if kps.KeyPoints == 0 {
		return
	}
	if err := e.host.Release(uint32(kps.KeyPoints)); err != nil {
		Logger().Warn("release keypoints", zap.Error(err))
	}
}
