package engine

import (
	"image"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// gpuMat is a densely packed 2-D matrix in device memory.
type gpuMat struct {
	data       *matData
	rows, cols int
	typ        int32
}

// Drop implements resource.Dropper.
func (g *gpuMat) Drop() {
	if g.data != nil {
		g.data.release()
		g.data = nil
	}
}

// NewGpuMat returns an empty device matrix.
func (e *Engine) NewGpuMat() native.GpuMat {
	return native.GpuMat(e.gpuMats.Insert(&gpuMat{}))
}

// CloseGpuMat releases m and its device storage.
func (e *Engine) CloseGpuMat(m native.GpuMat) error {
	_, ok := e.gpuMats.Remove(resource.Handle(m))
	return e.released("GpuMat_Close", resource.Handle(m), ok)
}

func (e *Engine) gpuMat(op string, m native.GpuMat) *gpuMat {
	g, ok := e.gpuMats.Get(resource.Handle(m))
	if !ok {
		e.violation(op, resource.Handle(m))
	}
	return g
}

// GpuMatUpload copies src into device memory, replacing m's contents.
func (e *Engine) GpuMatUpload(m native.GpuMat, src native.Mat) error {
	const op = "GpuMat_Upload"
	g := e.gpuMat(op, m)
	h := e.mat(op, src)
	if len(h.dims) > 2 {
		return nativeErrf(op, "device matrices are 2-dimensional")
	}
	b, err := h.read()
	if err != nil {
		return nativeErr(op, err)
	}
	var data *matData
	if len(b) > 0 {
		if data, err = allocData(e.device, len(b)); err != nil {
			return nativeErr(op, err)
		}
		if err := e.device.Write(data.ptr, b); err != nil {
			data.release()
			return nativeErr(op, err)
		}
	}
	g.Drop()
	g.data, g.rows, g.cols, g.typ = data, h.rows(), h.cols(), h.typ
	return nil
}

// GpuMatDownload copies m into a new host matrix.
func (e *Engine) GpuMatDownload(m native.GpuMat) (native.Mat, error) {
	const op = "GpuMat_Download"
	g := e.gpuMat(op, m)
	if g.data == nil {
		return e.NewMat(), nil
	}
	b, err := e.device.Copy(g.data.ptr, g.data.size)
	if err != nil {
		return 0, nativeErr(op, err)
	}
	return e.newMat(op, []int{g.rows, g.cols}, g.typ, b)
}

func (e *Engine) GpuMatEmpty(m native.GpuMat) bool { return e.gpuMat("GpuMat_Empty", m).data == nil }
func (e *Engine) GpuMatRows(m native.GpuMat) int32 { return int32(e.gpuMat("GpuMat_Rows", m).rows) }
func (e *Engine) GpuMatCols(m native.GpuMat) int32 { return int32(e.gpuMat("GpuMat_Cols", m).cols) }

// gpuCascade is a classifier with its detection parameters held on the object.
type gpuCascade struct {
	cascade
	findLargest  bool
	maxObjects   int32
	minNeighbors int32
	minSize      native.Size
	maxSize      native.Size
	scale        float64
}

// NewGpuCascade loads a classifier file for device detection.
func (e *Engine) NewGpuCascade(path string) (native.GpuCascade, error) {
	c, err := parseCascade(path)
	if err != nil {
		return 0, errors.InvalidModel(path, err)
	}
	g := &gpuCascade{cascade: *c, minNeighbors: 4, scale: 1.2}
	return native.GpuCascade(e.gpuCascades.Insert(g)), nil
}

// CloseGpuCascade releases c.
func (e *Engine) CloseGpuCascade(c native.GpuCascade) error {
	_, ok := e.gpuCascades.Remove(resource.Handle(c))
	return e.released("CascadeClassifier_GPU_Close", resource.Handle(c), ok)
}

func (e *Engine) gpuCascade(op string, c native.GpuCascade) *gpuCascade {
	g, ok := e.gpuCascades.Get(resource.Handle(c))
	if !ok {
		e.violation(op, resource.Handle(c))
	}
	return g
}

// GpuCascadeDetectMultiScale detects objects in a device image.
func (e *Engine) GpuCascadeDetectMultiScale(c native.GpuCascade, img native.GpuMat) (native.Rects, error) {
	const op = "CascadeClassifier_GPU_DetectMultiScale"
	gc := e.gpuCascade(op, c)
	g := e.gpuMat(op, img)
	cn := channelsOf(g.typ)
	if g.data == nil || depthOf(g.typ) != depth8U || cn == 2 {
		return native.Rects{}, nativeErrf(op, "expected a non-empty 8-bit device image with 1, 3 or 4 channels")
	}
	b, err := e.device.Copy(g.data.ptr, g.data.size)
	if err != nil {
		return native.Rects{}, nativeErr(op, err)
	}
	found := detectRegions(raster.Frame{Rows: g.rows, Cols: g.cols, Channels: cn, Pix: b}, detectParams{
		window:     gc.window,
		minSize:    image.Pt(int(gc.minSize.Width), int(gc.minSize.Height)),
		maxSize:    image.Pt(int(gc.maxSize.Width), int(gc.maxSize.Height)),
		maxObjects: int(gc.maxObjects),
		largest:    gc.findLargest,
	})
	return e.rectArray(op, found)
}

func (e *Engine) GpuCascadeSetFindLargestObject(c native.GpuCascade, v bool) {
	e.gpuCascade("CascadeClassifier_GPU_SetFindLargestObject", c).findLargest = v
}

func (e *Engine) GpuCascadeSetMaxNumObjects(c native.GpuCascade, v int32) {
	e.gpuCascade("CascadeClassifier_GPU_SetMaxNumObjects", c).maxObjects = v
}

func (e *Engine) GpuCascadeSetMinNeighbors(c native.GpuCascade, v int32) {
	e.gpuCascade("CascadeClassifier_GPU_SetMinNeighbors", c).minNeighbors = v
}

func (e *Engine) GpuCascadeSetMaxObjectSize(c native.GpuCascade, v native.Size) {
	e.gpuCascade("CascadeClassifier_GPU_SetMaxObjectSize", c).maxSize = v
}

func (e *Engine) GpuCascadeSetMinObjectSize(c native.GpuCascade, v native.Size) {
	e.gpuCascade("CascadeClassifier_GPU_SetMinObjectSize", c).minSize = v
}

func (e *Engine) GpuCascadeSetScaleFactor(c native.GpuCascade, v float64) {
	e.gpuCascade("CascadeClassifier_GPU_SetScaleFactor", c).scale = v
}

func (e *Engine) GpuCascadeFindLargestObject(c native.GpuCascade) bool {
	return e.gpuCascade("CascadeClassifier_GPU_GetFindLargestObject", c).findLargest
}

func (e *Engine) GpuCascadeMaxNumObjects(c native.GpuCascade) int32 {
	return e.gpuCascade("CascadeClassifier_GPU_GetMaxNumObjects", c).maxObjects
}

func (e *Engine) GpuCascadeMinNeighbors(c native.GpuCascade) int32 {
	return e.gpuCascade("CascadeClassifier_GPU_GetMinNeighbors", c).minNeighbors
}

func (e *Engine) GpuCascadeMaxObjectSize(c native.GpuCascade) native.Size {
	return e.gpuCascade("CascadeClassifier_GPU_GetMaxObjectSize", c).maxSize
}

func (e *Engine) GpuCascadeMinObjectSize(c native.GpuCascade) native.Size {
	return e.gpuCascade("CascadeClassifier_GPU_GetMinObjectSize", c).minSize
}

func (e *Engine) GpuCascadeScaleFactor(c native.GpuCascade) float64 {
	return e.gpuCascade("CascadeClassifier_GPU_GetScaleFactor", c).scale
}

// GpuCascadeClassifierSize returns the classifier window size.
func (e *Engine) GpuCascadeClassifierSize(c native.GpuCascade) native.Size {
	w := e.gpuCascade("CascadeClassifier_GPU_GetClassifierSize", c).window
	return native.Size{Width: int32(w.X), Height: int32(w.Y)}
}
