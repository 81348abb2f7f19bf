package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// NewMat returns an empty matrix.
func (e *Engine) NewMat() native.Mat {
	return e.register(&matHeader{})
}

// NewMatWithSize returns a zeroed rows x cols matrix of typ.
func (e *Engine) NewMatWithSize(rows, cols, typ int32) (native.Mat, error) {
	return e.newMat("Mat_NewWithSize", []int{int(rows), int(cols)}, typ, nil)
}

// NewMatFromScalar returns a 1x1 matrix holding s.
func (e *Engine) NewMatFromScalar(s native.Scalar, typ int32) (native.Mat, error) {
	return e.NewMatWithSizeFromScalar(s, 1, 1, typ)
}

// NewMatWithSizeFromScalar returns a rows x cols matrix filled with s.
func (e *Engine) NewMatWithSizeFromScalar(s native.Scalar, rows, cols, typ int32) (native.Mat, error) {
	const op = "Mat_NewWithSizeFromScalar"
	if !validType(typ) {
		return 0, nativeErrf(op, "unsupported matrix type %d", typ)
	}
	if rows < 0 || cols < 0 {
		return 0, nativeErrf(op, "negative size %dx%d", rows, cols)
	}
	dims := []int{int(rows), int(cols)}
	if _, ok := shapeBytes(dims, typ); !ok {
		return 0, nativeErrf(op, "matrix shape %dx%d of type %d exceeds the %d byte limit", rows, cols, typ, maxMatBytes)
	}
	vals := [4]float64{s.Val1, s.Val2, s.Val3, s.Val4}
	return e.newMat(op, dims, typ, scalarValues(vals, typ, int(rows)*int(cols)))
}

// NewMatFromBytes copies buf into a new rows x cols matrix. buf stays owned
// by the caller and is not referenced after the call returns.
func (e *Engine) NewMatFromBytes(rows, cols, typ int32, buf native.ByteArray) (native.Mat, error) {
	const op = "Mat_NewFromBytes"
	if !validType(typ) {
		return 0, nativeErrf(op, "unsupported matrix type %d", typ)
	}
	if rows < 0 || cols < 0 {
		return 0, nativeErrf(op, "negative size %dx%d", rows, cols)
	}
	want, ok := shapeBytes([]int{int(rows), int(cols)}, typ)
	if !ok {
		return 0, nativeErrf(op, "matrix shape %dx%d of type %d exceeds the %d byte limit", rows, cols, typ, maxMatBytes)
	}
	if int(buf.Length) != want {
		return 0, nativeErrf(op, "buffer holds %d bytes, %dx%d type %d needs %d", buf.Length, rows, cols, typ, want)
	}
	var contents []byte
	if want > 0 {
		var err error
		if contents, err = e.host.Copy(uint32(buf.Data), uint32(buf.Length)); err != nil {
			return 0, nativeErr(op, err)
		}
	}
	return e.newMat(op, []int{int(rows), int(cols)}, typ, contents)
}

// CloseMat releases m. The storage is freed once no other header shares it.
func (e *Engine) CloseMat(m native.Mat) error {
	_, ok := e.mats.Remove(resource.Handle(m))
	return e.released("Mat_Close", resource.Handle(m), ok)
}

// CloneMat returns a deep copy of m.
func (e *Engine) CloneMat(m native.Mat) (native.Mat, error) {
	const op = "Mat_Clone"
	h := e.mat(op, m)
	if h.data == nil {
		return e.register(&matHeader{dims: append([]int(nil), h.dims...), typ: h.typ}), nil
	}
	b, err := h.read()
	if err != nil {
		return 0, nativeErr(op, err)
	}
	return e.newMat(op, h.dims, h.typ, b)
}

// dim32 narrows a shape quantity for the native surface. shapeBytes keeps
// every header within int32, so a wider value is a broken header.
func dim32(op string, n int) int32 {
	if n > math.MaxInt32 || n < math.MinInt32 {
		panic(nativeErrf(op, "shape quantity %d does not fit int32", n))
	}
	return int32(n)
}

// MatRegion returns a header over the r sub-rectangle of m sharing its storage.
func (e *Engine) MatRegion(m native.Mat, r native.Rect) (native.Mat, error) {
	const op = "Mat_Region"
	h := e.mat(op, m)
	if len(h.dims) != 2 {
		return 0, nativeErrf(op, "region of a %d-dimensional matrix", len(h.dims))
	}
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 ||
		int64(r.X)+int64(r.Width) > int64(h.cols()) || int64(r.Y)+int64(r.Height) > int64(h.rows()) {
		return 0, nativeErrf(op, "rect %v outside %dx%d matrix", r, h.rows(), h.cols())
	}
	view := &matHeader{
		dims:   []int{int(r.Height), int(r.Width)},
		typ:    h.typ,
		offset: h.offset + uint32(r.Y)*h.step + uint32(int(r.X)*elemSize(h.typ)),
		step:   h.step,
	}
	if h.data != nil {
		view.data = h.data.retain()
	}
	return e.register(view), nil
}

// MatReshape returns a header with cn channels and rows rows sharing m's
// storage. 0 keeps the current value. m must be continuous.
func (e *Engine) MatReshape(m native.Mat, cn, rows int32) (native.Mat, error) {
	const op = "Mat_Reshape"
	h := e.mat(op, m)
	if !h.continuous() {
		return 0, nativeErrf(op, "matrix is not continuous")
	}
	curCn := channelsOf(h.typ)
	newCn := int(cn)
	if newCn == 0 {
		newCn = curCn
	}
	if newCn < 1 || newCn > maxChannels {
		return 0, nativeErrf(op, "bad channel count %d", cn)
	}
	values := h.total() * curCn
	if values%newCn != 0 {
		return 0, nativeErrf(op, "%d values do not split into %d channels", values, newCn)
	}
	elems := values / newCn
	newRows := int(rows)
	if newRows == 0 {
		newRows = h.rows()
		if newRows <= 0 {
			newRows = 1
		}
	}
	if newRows < 0 || (elems > 0 && elems%newRows != 0) {
		return 0, nativeErrf(op, "%d elements do not split into %d rows", elems, rows)
	}
	newCols := 0
	if newRows > 0 {
		newCols = elems / newRows
	}
	typ := makeType(depthOf(h.typ), newCn)
	view := &matHeader{
		dims:   []int{newRows, newCols},
		typ:    typ,
		offset: h.offset,
		step:   uint32(newCols * elemSize(typ)),
	}
	if h.data != nil {
		view.data = h.data.retain()
	}
	return e.register(view), nil
}

func (e *Engine) MatEmpty(m native.Mat) bool     { return e.mat("Mat_Empty", m).empty() }
func (e *Engine) MatRows(m native.Mat) int32     { return dim32("Mat_Rows", e.mat("Mat_Rows", m).rows()) }
func (e *Engine) MatCols(m native.Mat) int32     { return dim32("Mat_Cols", e.mat("Mat_Cols", m).cols()) }
func (e *Engine) MatType(m native.Mat) int32     { return e.mat("Mat_Type", m).typ }
func (e *Engine) MatTotal(m native.Mat) int32    { return dim32("Mat_Total", e.mat("Mat_Total", m).total()) }
func (e *Engine) MatStep(m native.Mat) int32     { return dim32("Mat_Step", int(e.mat("Mat_Step", m).step)) }
func (e *Engine) MatChannels(m native.Mat) int32 { return int32(channelsOf(e.mat("Mat_Channels", m).typ)) }

// MatSize returns every dimension of m.
func (e *Engine) MatSize(m native.Mat) []int32 {
	h := e.mat("Mat_Size", m)
	out := make([]int32, len(h.dims))
	for i, d := range h.dims {
		out[i] = int32(d)
	}
	return out
}

// MatCopyTo copies src into dst, reallocating dst unless it already matches.
func (e *Engine) MatCopyTo(src, dst native.Mat) error {
	const op = "Mat_CopyTo"
	s, d := e.mat(op, src), e.mat(op, dst)
	b, err := s.read()
	if err != nil {
		return nativeErr(op, err)
	}
	if _, err := e.create(d, s.dims, s.typ); err != nil {
		return nativeErr(op, err)
	}
	return nativeErr(op, d.write(b))
}

// MatCopyToWithMask copies the src elements whose mask value is non-zero.
// A newly allocated dst starts zeroed.
func (e *Engine) MatCopyToWithMask(src, dst, mask native.Mat) error {
	const op = "Mat_CopyToWithMask"
	s, d, mk := e.mat(op, src), e.mat(op, dst), e.mat(op, mask)
	if len(s.dims) != 2 || !sameDims(s.dims, mk.dims) {
		return nativeErrf(op, "mask size %v does not match %v", mk.dims, s.dims)
	}
	if depthOf(mk.typ) != depth8U || (channelsOf(mk.typ) != 1 && channelsOf(mk.typ) != channelsOf(s.typ)) {
		return nativeErrf(op, "mask must be 8U with 1 or %d channels", channelsOf(s.typ))
	}
	sb, err := s.read()
	if err != nil {
		return nativeErr(op, err)
	}
	mb, err := mk.read()
	if err != nil {
		return nativeErr(op, err)
	}
	if _, err := e.create(d, s.dims, s.typ); err != nil {
		return nativeErr(op, err)
	}
	db, err := d.read()
	if err != nil {
		return nativeErr(op, err)
	}

	es := elemSize(s.typ)
	mcn := channelsOf(mk.typ)
	csz := depthSize(depthOf(s.typ))
	for i := 0; i < s.total(); i++ {
		if mcn == 1 {
			if mb[i] != 0 {
				copy(db[i*es:(i+1)*es], sb[i*es:(i+1)*es])
			}
			continue
		}
		for c := 0; c < mcn; c++ {
			if mb[i*mcn+c] != 0 {
				off := i*es + c*csz
				copy(db[off:off+csz], sb[off:off+csz])
			}
		}
	}
	return nativeErr(op, d.write(db))
}

// MatConvertTo converts src to the depth of typ, keeping the channel count.
func (e *Engine) MatConvertTo(src, dst native.Mat, typ int32) error {
	const op = "Mat_ConvertTo"
	s, d := e.mat(op, src), e.mat(op, dst)
	if !validType(typ) {
		return nativeErrf(op, "unsupported matrix type %d", typ)
	}
	b, err := s.read()
	if err != nil {
		return nativeErr(op, err)
	}
	out := encodeValues(decodeValues(b, depthOf(s.typ)), depthOf(typ))
	if _, err := e.create(d, s.dims, makeType(depthOf(typ), channelsOf(s.typ))); err != nil {
		return nativeErr(op, err)
	}
	return nativeErr(op, d.write(out))
}

// MatToBytes copies m's elements into a new buffer in host memory.
// The caller frees it with ReleaseByteArray.
func (e *Engine) MatToBytes(m native.Mat) (native.ByteArray, error) {
	const op = "Mat_ToBytes"
	b, err := e.mat(op, m).read()
	if err != nil {
		return native.ByteArray{}, nativeErr(op, err)
	}
	return e.byteArray(op, b)
}

// byteArray places b in a fresh host block.
func (e *Engine) byteArray(op string, b []byte) (native.ByteArray, error) {
	if len(b) == 0 {
		return native.ByteArray{}, nil
	}
	if len(b) > math.MaxInt32 {
		return native.ByteArray{}, nativeErrf(op, "%d bytes exceed the buffer limit", len(b))
	}
	ptr, err := e.host.Alloc(uint32(len(b)), 8)
	if err != nil {
		return native.ByteArray{}, nativeErr(op, err)
	}
	if err := e.host.Write(ptr, b); err != nil {
		_ = e.host.Release(ptr)
		return native.ByteArray{}, nativeErr(op, err)
	}
	return native.ByteArray{Data: native.Ptr(ptr), Length: int32(len(b))}, nil
}

// ReleaseByteArray frees a buffer returned by the library.
func (e *Engine) ReleaseByteArray(buf native.ByteArray) {
	if buf.Data == 0 {
		return
	}
	if err := e.host.Release(uint32(buf.Data)); err != nil {
		Logger().Warn("release byte array", zap.Error(err))
	}
}

// elemAddr returns the address of byte column col of row in h, bounds-checked
// for a value of n bytes.
func (e *Engine) elemAddr(op string, h *matHeader, row, col int32, n int) (uint32, error) {
	if len(h.dims) != 2 || h.data == nil {
		return 0, nativeErrf(op, "matrix is empty or not 2-dimensional")
	}
	if row < 0 || int(row) >= h.rows() {
		return 0, errors.OutOfBounds(errors.PhaseNative, []string{op, "row"}, int(row), h.rows())
	}
	if col < 0 || (int(col)+1)*n > h.rowBytes() {
		return 0, errors.OutOfBounds(errors.PhaseNative, []string{op, "col"}, int(col), h.rowBytes()/n)
	}
	rel := uint64(h.offset) + uint64(row)*uint64(h.step) + uint64(col)*uint64(n)
	if rel+uint64(n) > uint64(h.data.size) {
		return 0, errors.OutOfBounds(errors.PhaseNative, []string{op, "offset"}, int(rel), int(h.data.size))
	}
	return h.data.ptr + uint32(rel), nil
}

// MatGetUChar returns byte col of row, OpenCV at<uchar> addressing.
func (e *Engine) MatGetUChar(m native.Mat, row, col int32) (uint8, error) {
	const op = "Mat_GetUChar"
	h := e.mat(op, m)
	addr, err := e.elemAddr(op, h, row, col, 1)
	if err != nil {
		return 0, err
	}
	v, err := h.data.heap.ReadU8(addr)
	return v, nativeErr(op, err)
}

// MatSetUChar stores v at byte col of row.
func (e *Engine) MatSetUChar(m native.Mat, row, col int32, v uint8) error {
	const op = "Mat_SetUChar"
	h := e.mat(op, m)
	addr, err := e.elemAddr(op, h, row, col, 1)
	if err != nil {
		return err
	}
	return nativeErr(op, h.data.heap.WriteU8(addr, v))
}

// MatGetFloat returns float col of row, OpenCV at<float> addressing.
func (e *Engine) MatGetFloat(m native.Mat, row, col int32) (float32, error) {
	const op = "Mat_GetFloat"
	h := e.mat(op, m)
	addr, err := e.elemAddr(op, h, row, col, 4)
	if err != nil {
		return 0, err
	}
	bits, err := h.data.heap.ReadU32(addr)
	return math.Float32frombits(bits), nativeErr(op, err)
}

// MatSetFloat stores v at float col of row.
func (e *Engine) MatSetFloat(m native.Mat, row, col int32, v float32) error {
	const op = "Mat_SetFloat"
	h := e.mat(op, m)
	addr, err := e.elemAddr(op, h, row, col, 4)
	if err != nil {
		return err
	}
	return nativeErr(op, h.data.heap.WriteU32(addr, math.Float32bits(v)))
}
