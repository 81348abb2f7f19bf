package engine

import (
	"math"

	"github.com/wippyai/cvbridge/native"
)

// Comparison codes, OpenCV numbering.
const (
	cmpEQ int32 = iota
	cmpGT
	cmpGE
	cmpLT
	cmpLE
	cmpNE
)

// MatCompare sets dst to 255 where a <ct> b holds and 0 elsewhere, per channel.
func (e *Engine) MatCompare(a, b, dst native.Mat, ct int32) error {
	const op = "Mat_Compare"
	ha, hb, hd := e.mat(op, a), e.mat(op, b), e.mat(op, dst)
	if !sameDims(ha.dims, hb.dims) || ha.typ != hb.typ {
		return nativeErrf(op, "operands differ in size or type")
	}
	if ct < cmpEQ || ct > cmpNE {
		return nativeErrf(op, "unknown comparison %d", ct)
	}
	ab, err := ha.read()
	if err != nil {
		return nativeErr(op, err)
	}
	bb, err := hb.read()
	if err != nil {
		return nativeErr(op, err)
	}
	av := decodeValues(ab, depthOf(ha.typ))
	bv := decodeValues(bb, depthOf(hb.typ))
	out := make([]byte, len(av))
	for i := range av {
		if compare(av[i], bv[i], ct) {
			out[i] = 255
		}
	}
	if _, err := e.create(hd, ha.dims, makeType(depth8U, channelsOf(ha.typ))); err != nil {
		return nativeErr(op, err)
	}
	return nativeErr(op, hd.write(out))
}

func compare(x, y float64, ct int32) bool {
	switch ct {
	case cmpEQ:
		return x == y
	case cmpGT:
		return x > y
	case cmpGE:
		return x >= y
	case cmpLT:
		return x < y
	case cmpLE:
		return x <= y
	default:
		return x != y
	}
}

// MatCountNonZero counts non-zero elements of a single-channel matrix.
func (e *Engine) MatCountNonZero(m native.Mat) (int32, error) {
	const op = "Mat_CountNonZero"
	h := e.mat(op, m)
	if channelsOf(h.typ) != 1 {
		return 0, nativeErrf(op, "matrix must have one channel")
	}
	b, err := h.read()
	if err != nil {
		return 0, nativeErr(op, err)
	}
	var n int32
	for _, v := range decodeValues(b, depthOf(h.typ)) {
		if v != 0 {
			n++
		}
	}
	return n, nil
}

// MatMinMaxLoc finds the extreme values of a single-channel matrix and the
// first location of each in row-major order.
func (e *Engine) MatMinMaxLoc(m native.Mat) (minVal, maxVal float64, minLoc, maxLoc native.Point, err error) {
	const op = "Mat_MinMaxLoc"
	h := e.mat(op, m)
	if channelsOf(h.typ) != 1 || len(h.dims) != 2 {
		return 0, 0, minLoc, maxLoc, nativeErrf(op, "matrix must be 2-dimensional with one channel")
	}
	b, err := h.read()
	if err != nil {
		return 0, 0, minLoc, maxLoc, nativeErr(op, err)
	}
	vals := decodeValues(b, depthOf(h.typ))
	if len(vals) == 0 {
		return 0, 0, native.Point{X: -1, Y: -1}, native.Point{X: -1, Y: -1}, nil
	}
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	cols := h.cols()
	for i, v := range vals {
		if v < minVal {
			minVal = v
			minLoc = native.Point{X: int32(i % cols), Y: int32(i / cols)}
		}
		if v > maxVal {
			maxVal = v
			maxLoc = native.Point{X: int32(i % cols), Y: int32(i / cols)}
		}
	}
	return minVal, maxVal, minLoc, maxLoc, nil
}
