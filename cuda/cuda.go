// Package cuda wraps device matrices and device cascade classifiers.
//
// Device matrices live in a separate memory from host matrices. Data moves
// between the two only through Upload and Download.
package cuda

import (
	"image"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// GpuMat is a matrix in device memory.
type GpuMat struct {
	lib native.Library
	ref handle.Ref[native.GpuMat]
}

// NewGpuMat returns an empty device matrix.
func NewGpuMat() *GpuMat {
	lib := native.Default()
	g := &GpuMat{lib: lib}
	handle.Track(g, &g.ref, "GpuMat", lib.NewGpuMat(), lib.CloseGpuMat)
	return g
}

// NewGpuMatFromMat uploads m into a new device matrix.
func NewGpuMatFromMat(m *core.Mat) (*GpuMat, error) {
	g := NewGpuMat()
	if err := g.Upload(m); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

// Close releases the device matrix and its device memory.
func (g *GpuMat) Close() error {
	return g.ref.Close()
}

// Upload replaces the device contents with a copy of m.
func (g *GpuMat) Upload(m *core.Mat) error {
	const op = "GpuMat_Upload"
	h := g.ref.Get(op)
	if err := core.SameLibrary(op, g.lib, m); err != nil {
		return err
	}
	return g.lib.GpuMatUpload(h, m.Ptr())
}

// Download copies the device contents into a new host matrix.
func (g *GpuMat) Download() (*core.Mat, error) {
	h, err := g.lib.GpuMatDownload(g.ref.Get("GpuMat_Download"))
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(g.lib, h), nil
}

func (g *GpuMat) Empty() bool { return g.lib.GpuMatEmpty(g.ref.Get("GpuMat_Empty")) }
func (g *GpuMat) Rows() int   { return int(g.lib.GpuMatRows(g.ref.Get("GpuMat_Rows"))) }
func (g *GpuMat) Cols() int   { return int(g.lib.GpuMatCols(g.ref.Get("GpuMat_Cols"))) }

// CascadeClassifier detects objects in device images.
type CascadeClassifier struct {
	lib native.Library
	ref handle.Ref[native.GpuCascade]
}

// NewCascadeClassifier loads a cascade file for device detection.
func NewCascadeClassifier(path string) (*CascadeClassifier, error) {
	if err := marshal.File(path); err != nil {
		return nil, err
	}
	lib := native.Default()
	h, err := lib.NewGpuCascade(path)
	if err != nil {
		return nil, err
	}
	c := &CascadeClassifier{lib: lib}
	handle.Track(c, &c.ref, "CascadeClassifier_GPU", h, lib.CloseGpuCascade)
	return c, nil
}

// Close releases the classifier.
func (c *CascadeClassifier) Close() error {
	return c.ref.Close()
}

// DetectMultiScale detects objects in img.
func (c *CascadeClassifier) DetectMultiScale(img *GpuMat) ([]image.Rectangle, error) {
	const op = "CascadeClassifier_GPU_DetectMultiScale"
	h := c.ref.Get(op)
	if img.lib != c.lib {
		return nil, errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Op(op).Detail("device matrix belongs to another native library").Build()
	}
	rs, err := c.lib.GpuCascadeDetectMultiScale(h, img.ref.Get(op))
	if err != nil {
		return nil, err
	}
	return marshal.DrainRects(c.lib, rs)
}

// SetFindLargestObject limits detection to the largest object.
func (c *CascadeClassifier) SetFindLargestObject(v bool) {
	c.lib.GpuCascadeSetFindLargestObject(c.ref.Get("CascadeClassifier_GPU_SetFindLargestObject"), v)
}

// SetMaxNumObjects caps the number of objects reported.
func (c *CascadeClassifier) SetMaxNumObjects(v int) {
	c.lib.GpuCascadeSetMaxNumObjects(c.ref.Get("CascadeClassifier_GPU_SetMaxNumObjects"), int32(v))
}

func (c *CascadeClassifier) SetMinNeighbors(v int) {
	c.lib.GpuCascadeSetMinNeighbors(c.ref.Get("CascadeClassifier_GPU_SetMinNeighbors"), int32(v))
}

func (c *CascadeClassifier) SetMinObjectSize(sz image.Point) {
	c.lib.GpuCascadeSetMinObjectSize(c.ref.Get("CascadeClassifier_GPU_SetMinObjectSize"), pointSize(sz))
}

func (c *CascadeClassifier) SetMaxObjectSize(sz image.Point) {
	c.lib.GpuCascadeSetMaxObjectSize(c.ref.Get("CascadeClassifier_GPU_SetMaxObjectSize"), pointSize(sz))
}

func (c *CascadeClassifier) SetScaleFactor(v float64) {
	c.lib.GpuCascadeSetScaleFactor(c.ref.Get("CascadeClassifier_GPU_SetScaleFactor"), v)
}

func (c *CascadeClassifier) FindLargestObject() bool {
	return c.lib.GpuCascadeFindLargestObject(c.ref.Get("CascadeClassifier_GPU_GetFindLargestObject"))
}

func (c *CascadeClassifier) MaxNumObjects() int {
	return int(c.lib.GpuCascadeMaxNumObjects(c.ref.Get("CascadeClassifier_GPU_GetMaxNumObjects")))
}

func (c *CascadeClassifier) MinNeighbors() int {
	return int(c.lib.GpuCascadeMinNeighbors(c.ref.Get("CascadeClassifier_GPU_GetMinNeighbors")))
}

func (c *CascadeClassifier) MinObjectSize() image.Point {
	return sizePoint(c.lib.GpuCascadeMinObjectSize(c.ref.Get("CascadeClassifier_GPU_GetMinObjectSize")))
}

func (c *CascadeClassifier) MaxObjectSize() image.Point {
	return sizePoint(c.lib.GpuCascadeMaxObjectSize(c.ref.Get("CascadeClassifier_GPU_GetMaxObjectSize")))
}

func (c *CascadeClassifier) ScaleFactor() float64 {
	return c.lib.GpuCascadeScaleFactor(c.ref.Get("CascadeClassifier_GPU_GetScaleFactor"))
}

// ClassifierSize returns the detection window of the loaded cascade.
func (c *CascadeClassifier) ClassifierSize() image.Point {
	return sizePoint(c.lib.GpuCascadeClassifierSize(c.ref.Get("CascadeClassifier_GPU_GetClassifierSize")))
}

func pointSize(p image.Point) native.Size {
	return native.Size{Width: int32(p.X), Height: int32(p.Y)}
}

func sizePoint(s native.Size) image.Point {
	return image.Pt(int(s.Width), int(s.Height))
}
