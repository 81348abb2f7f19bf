package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/engine/internal/heap"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// matData is a reference-counted block of element storage. Every header
// pointing at it holds one reference.
type matData struct {
	heap *heap.Heap
	ptr  uint32
	size uint32
	refs atomic.Int32
}

// maxMatBytes bounds the storage of one matrix. Keeping it within int32
// keeps total, step, rows and cols representable on the native surface.
const maxMatBytes = math.MaxInt32

// shapeBytes returns the storage size of a dims matrix of typ. ok is false
// for negative dimensions and for sizes above maxMatBytes.
func shapeBytes(dims []int, typ int32) (size int, ok bool) {
	n := uint64(elemSize(typ))
	for _, d := range dims {
		if d < 0 || d > maxMatBytes {
			return 0, false
		}
		n *= uint64(d)
		if n > maxMatBytes {
			return 0, false
		}
	}
	return int(n), true
}

func allocData(hp *heap.Heap, size int) (*matData, error) {
	if size < 0 || size > maxMatBytes {
		return nil, fmt.Errorf("matrix of %d bytes exceeds the %d byte limit", size, maxMatBytes)
	}
	ptr, err := hp.Alloc(uint32(size), 8)
	if err != nil {
		return nil, err
	}
	d := &matData{heap: hp, ptr: ptr, size: uint32(size)}
	d.refs.Store(1)
	return d, nil
}

func (d *matData) retain() *matData {
	d.refs.Add(1)
	return d
}

func (d *matData) release() {
	switch n := d.refs.Add(-1); {
	case n == 0:
		if err := d.heap.Release(d.ptr); err != nil {
			Logger().Error("free matrix data", zap.Error(err))
		}
	case n < 0:
		Logger().Error("matrix data over-released", zap.Uint32("ptr", d.ptr))
	}
}

// matHeader describes a matrix over shared storage. Views share data with
// their parent and differ in dims, offset and step.
type matHeader struct {
	data   *matData
	dims   []int
	typ    int32
	offset uint32
	step   uint32 // bytes between rows of a 2-D matrix
}

// Drop implements resource.Dropper.
func (h *matHeader) Drop() {
	if h.data != nil {
		h.data.release()
		h.data = nil
	}
}

func (h *matHeader) empty() bool {
	return h.data == nil || h.total() == 0
}

func (h *matHeader) rows() int {
	switch len(h.dims) {
	case 0:
		return 0
	case 2:
		return h.dims[0]
	default:
		return -1
	}
}

func (h *matHeader) cols() int {
	switch len(h.dims) {
	case 0:
		return 0
	case 2:
		return h.dims[1]
	default:
		return -1
	}
}

func (h *matHeader) total() int {
	if len(h.dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range h.dims {
		n *= d
	}
	return n
}

func (h *matHeader) rowBytes() int {
	if len(h.dims) != 2 {
		return h.total() * elemSize(h.typ)
	}
	return h.dims[1] * elemSize(h.typ)
}

func (h *matHeader) continuous() bool {
	return len(h.dims) != 2 || h.dims[0] <= 1 || int(h.step) == h.rowBytes()
}

// read copies the matrix elements out of linear memory, densely packed.
func (h *matHeader) read() ([]byte, error) {
	if h.empty() {
		return nil, nil
	}
	base := h.data.ptr + h.offset
	if h.continuous() {
		return h.data.heap.Copy(base, uint32(h.total()*elemSize(h.typ)))
	}
	rb := h.rowBytes()
	out := make([]byte, 0, rb*h.rows())
	for r := 0; r < h.rows(); r++ {
		row, err := h.data.heap.Copy(base+uint32(r)*h.step, uint32(rb))
		if err != nil {
			return nil, err
		}
		out = append(out, row...)
	}
	return out, nil
}

// write stores densely packed elements into the matrix, honoring step.
func (h *matHeader) write(b []byte) error {
	if h.empty() {
		return nil
	}
	base := h.data.ptr + h.offset
	if h.continuous() {
		return h.data.heap.Write(base, b)
	}
	rb := h.rowBytes()
	for r := 0; r < h.rows(); r++ {
		if err := h.data.heap.Write(base+uint32(r)*h.step, b[r*rb:(r+1)*rb]); err != nil {
			return err
		}
	}
	return nil
}

// create gives h the requested shape, reallocating unless the current
// storage already matches. Matching views keep writing into shared storage.
func (e *Engine) create(h *matHeader, dims []int, typ int32) (reallocated bool, err error) {
	if h.data != nil && h.typ == typ && sameDims(h.dims, dims) {
		return false, nil
	}
	size, ok := shapeBytes(dims, typ)
	if !ok {
		return false, fmt.Errorf("matrix shape %v of type %d exceeds the %d byte limit", dims, typ, maxMatBytes)
	}
	var data *matData
	if size > 0 {
		if data, err = allocData(e.host, size); err != nil {
			return false, err
		}
	}
	h.Drop()
	h.data = data
	h.dims = append([]int(nil), dims...)
	h.typ = typ
	h.offset = 0
	h.step = 0
	if len(dims) == 2 {
		h.step = uint32(dims[1] * elemSize(typ))
	}
	return true, nil
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// newMat allocates a matrix of the given shape and registers it.
func (e *Engine) newMat(op string, dims []int, typ int32, contents []byte) (native.Mat, error) {
	if !validType(typ) {
		return 0, nativeErrf(op, "unsupported matrix type %d", typ)
	}
	for _, d := range dims {
		if d < 0 {
			return 0, nativeErrf(op, "negative dimension %v", dims)
		}
	}
	if _, ok := shapeBytes(dims, typ); !ok {
		return 0, nativeErrf(op, "matrix shape %v of type %d exceeds the %d byte limit", dims, typ, maxMatBytes)
	}
	h := &matHeader{}
	if _, err := e.create(h, dims, typ); err != nil {
		return 0, nativeErr(op, err)
	}
	if contents != nil {
		if err := h.write(contents); err != nil {
			h.Drop()
			return 0, nativeErr(op, err)
		}
	}
	return e.register(h), nil
}

func (e *Engine) register(h *matHeader) native.Mat {
	return native.Mat(e.mats.Insert(h))
}

func (e *Engine) mat(op string, m native.Mat) *matHeader {
	h, ok := e.mats.Get(resource.Handle(m))
	if !ok {
		e.violation(op, resource.Handle(m))
	}
	return h
}
