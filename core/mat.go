package core

import (
	"image"

	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// noCopy makes go vet's copylocks check flag Mats copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Mat is an owned native matrix.
type Mat struct {
	_   noCopy
	lib native.Library
	ref handle.Ref[native.Mat]
}

// MatFromNative adopts h. The returned Mat releases h on Close; the caller
// must not release it any other way.
func MatFromNative(l native.Library, h native.Mat) *Mat {
	m := &Mat{lib: l}
	handle.Track(m, &m.ref, "Mat", h, l.CloseMat)
	return m
}

func newMat(l native.Library, h native.Mat, err error) (*Mat, error) {
	if err != nil {
		return nil, err
	}
	return MatFromNative(l, h), nil
}

// NewMat returns an empty matrix.
func NewMat() *Mat {
	l := lib()
	return MatFromNative(l, l.NewMat())
}

// NewMatWithSize returns an uninitialized rows x cols matrix.
func NewMatWithSize(rows, cols int, mt MatType) (*Mat, error) {
	if err := checkInt32("Mat_NewWithSize", rows, cols); err != nil {
		return nil, err
	}
	l := lib()
	h, err := l.NewMatWithSize(int32(rows), int32(cols), int32(mt))
	return newMat(l, h, err)
}

// NewMatFromScalar returns a 1x1 matrix holding s.
func NewMatFromScalar(s Scalar, mt MatType) (*Mat, error) {
	l := lib()
	h, err := l.NewMatFromScalar(s.Native(), int32(mt))
	return newMat(l, h, err)
}

// NewMatWithSizeFromScalar returns a rows x cols matrix with every element set to s.
func NewMatWithSizeFromScalar(s Scalar, rows, cols int, mt MatType) (*Mat, error) {
	if err := checkInt32("Mat_NewWithSizeFromScalar", rows, cols); err != nil {
		return nil, err
	}
	l := lib()
	h, err := l.NewMatWithSizeFromScalar(s.Native(), int32(rows), int32(cols), int32(mt))
	return newMat(l, h, err)
}

// NewMatFromBytes returns a rows x cols matrix holding a copy of data.
func NewMatFromBytes(rows, cols int, mt MatType, data []byte) (*Mat, error) {
	if err := checkInt32("Mat_NewFromBytes", rows, cols); err != nil {
		return nil, err
	}
	l := lib()
	st := marshal.NewStaging()
	defer st.FreeAndRelease(l.Allocator())

	buf, err := marshal.StageBytes(l, st, data)
	if err != nil {
		return nil, err
	}
	h, err := l.NewMatFromBytes(int32(rows), int32(cols), int32(mt), buf)
	return newMat(l, h, err)
}

// Ptr returns the native handle. It panics if m is closed.
func (m *Mat) Ptr() native.Mat {
	return m.handle("Mat_Ptr")
}

// Library returns the library m belongs to.
func (m *Mat) Library() native.Library {
	return m.lib
}

func (m *Mat) handle(op string) native.Mat {
	return m.ref.Get(op)
}

// Close releases the matrix. Closing a closed Mat does nothing.
func (m *Mat) Close() error {
	if m == nil {
		return nil
	}
	return m.ref.Close()
}

// Closed reports whether Close was called.
func (m *Mat) Closed() bool {
	return m.ref.Closed()
}

// Clone returns a deep copy.
func (m *Mat) Clone() (*Mat, error) {
	h, err := m.lib.CloneMat(m.handle("Mat_Clone"))
	return newMat(m.lib, h, err)
}

// Region returns a view of r. The view shares m's storage.
func (m *Mat) Region(r image.Rectangle) (*Mat, error) {
	const op = "Mat_Region"
	r = r.Canon()
	if err := checkInt32(op, r.Min.X, r.Min.Y, r.Dx(), r.Dy()); err != nil {
		return nil, err
	}
	h, err := m.lib.MatRegion(m.handle(op), NativeRect(r))
	return newMat(m.lib, h, err)
}

// Reshape returns a view with cn channels and rows rows; 0 keeps the current
// value. The view shares m's storage.
func (m *Mat) Reshape(cn, rows int) (*Mat, error) {
	h, err := m.lib.MatReshape(m.handle("Mat_Reshape"), int32(cn), int32(rows))
	return newMat(m.lib, h, err)
}

func (m *Mat) Empty() bool   { return m.lib.MatEmpty(m.handle("Mat_Empty")) }
func (m *Mat) Rows() int     { return int(m.lib.MatRows(m.handle("Mat_Rows"))) }
func (m *Mat) Cols() int     { return int(m.lib.MatCols(m.handle("Mat_Cols"))) }
func (m *Mat) Channels() int { return int(m.lib.MatChannels(m.handle("Mat_Channels"))) }
func (m *Mat) Total() int    { return int(m.lib.MatTotal(m.handle("Mat_Total"))) }
func (m *Mat) Step() int     { return int(m.lib.MatStep(m.handle("Mat_Step"))) }

// Type returns the element type.
func (m *Mat) Type() (MatType, error) {
	return ParseMatType(m.lib.MatType(m.handle("Mat_Type")))
}

// Size returns the extent of every dimension.
func (m *Mat) Size() []int {
	dims := m.lib.MatSize(m.handle("Mat_Size"))
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = int(d)
	}
	return out
}

// CopyTo copies m into dst, reallocating dst as needed.
func (m *Mat) CopyTo(dst *Mat) error {
	const op = "Mat_CopyTo"
	if err := SameLibrary(op, m.lib, dst); err != nil {
		return err
	}
	return m.lib.MatCopyTo(m.handle(op), dst.handle(op))
}

// CopyToWithMask copies the elements of m where mask is non-zero.
func (m *Mat) CopyToWithMask(dst, mask *Mat) error {
	const op = "Mat_CopyToWithMask"
	if err := SameLibrary(op, m.lib, dst, mask); err != nil {
		return err
	}
	return m.lib.MatCopyToWithMask(m.handle(op), dst.handle(op), mask.handle(op))
}

// ConvertTo converts m to mt into dst, saturating.
func (m *Mat) ConvertTo(dst *Mat, mt MatType) error {
	const op = "Mat_ConvertTo"
	if err := SameLibrary(op, m.lib, dst); err != nil {
		return err
	}
	return m.lib.MatConvertTo(m.handle(op), dst.handle(op), int32(mt))
}

// ToBytes returns a copy of the elements in row-major order.
func (m *Mat) ToBytes() ([]byte, error) {
	buf, err := m.lib.MatToBytes(m.handle("Mat_ToBytes"))
	if err != nil {
		return nil, err
	}
	return marshal.CopyBytes(m.lib, buf)
}

// UCharAt returns the byte at row, col.
func (m *Mat) UCharAt(row, col int) (uint8, error) {
	const op = "Mat_GetUChar"
	if err := checkInt32(op, row, col); err != nil {
		return 0, err
	}
	return m.lib.MatGetUChar(m.handle(op), int32(row), int32(col))
}

// SetUCharAt sets the byte at row, col.
func (m *Mat) SetUCharAt(row, col int, v uint8) error {
	const op = "Mat_SetUChar"
	if err := checkInt32(op, row, col); err != nil {
		return err
	}
	return m.lib.MatSetUChar(m.handle(op), int32(row), int32(col), v)
}

// FloatAt returns the float32 at row, col.
func (m *Mat) FloatAt(row, col int) (float32, error) {
	const op = "Mat_GetFloat"
	if err := checkInt32(op, row, col); err != nil {
		return 0, err
	}
	return m.lib.MatGetFloat(m.handle(op), int32(row), int32(col))
}

// SetFloatAt sets the float32 at row, col.
func (m *Mat) SetFloatAt(row, col int, v float32) error {
	const op = "Mat_SetFloat"
	if err := checkInt32(op, row, col); err != nil {
		return err
	}
	return m.lib.MatSetFloat(m.handle(op), int32(row), int32(col), v)
}

// Compare sets dst to 255 where a ct b holds and 0 elsewhere.
func Compare(a, b, dst *Mat, ct CompareType) error {
	const op = "Mat_Compare"
	if err := SameLibrary(op, a.lib, b, dst); err != nil {
		return err
	}
	return a.lib.MatCompare(a.handle(op), b.handle(op), dst.handle(op), compareTypes.Encode(ct))
}

// CountNonZero counts the non-zero elements of a single-channel matrix.
func CountNonZero(m *Mat) (int, error) {
	n, err := m.lib.MatCountNonZero(m.handle("Mat_CountNonZero"))
	return int(n), err
}

// MinMaxLoc returns the extremes of a single-channel matrix and where they occur first.
func MinMaxLoc(m *Mat) (minVal, maxVal float64, minLoc, maxLoc image.Point, err error) {
	lo, hi, loAt, hiAt, err := m.lib.MatMinMaxLoc(m.handle("Mat_MinMaxLoc"))
	if err != nil {
		return 0, 0, image.Point{}, image.Point{}, err
	}
	return lo, hi, PointFromNative(loAt), PointFromNative(hiAt), nil
}
