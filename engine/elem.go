package engine

import (
	"encoding/binary"
	"math"
)

// Element depths, OpenCV numbering.
const (
	depth8U  int32 = 0
	depth8S  int32 = 1
	depth16U int32 = 2
	depth16S int32 = 3
	depth32S int32 = 4
	depth32F int32 = 5
	depth64F int32 = 6

	maxChannels = 4
)

func depthOf(typ int32) int32 { return typ & 7 }

func channelsOf(typ int32) int { return int(typ>>3) + 1 }

func makeType(depth int32, cn int) int32 { return depth + int32(cn-1)<<3 }

func validType(typ int32) bool {
	return typ >= 0 && depthOf(typ) <= depth64F && channelsOf(typ) <= maxChannels
}

func depthSize(depth int32) int {
	switch depth {
	case depth8U, depth8S:
		return 1
	case depth16U, depth16S:
		return 2
	case depth32S, depth32F:
		return 4
	default:
		return 8
	}
}

// elemSize is the size in bytes of one element (all channels).
func elemSize(typ int32) int {
	return depthSize(depthOf(typ)) * channelsOf(typ)
}

func getValue(b []byte, depth int32) float64 {
	switch depth {
	case depth8U:
		return float64(b[0])
	case depth8S:
		return float64(int8(b[0]))
	case depth16U:
		return float64(binary.LittleEndian.Uint16(b))
	case depth16S:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case depth32S:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case depth32F:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
}

// putValue stores v rounding half to even and saturating for integer depths.
func putValue(b []byte, depth int32, v float64) {
	switch depth {
	case depth8U:
		b[0] = uint8(saturate(v, 0, math.MaxUint8))
	case depth8S:
		b[0] = byte(int8(saturate(v, math.MinInt8, math.MaxInt8)))
	case depth16U:
		binary.LittleEndian.PutUint16(b, uint16(saturate(v, 0, math.MaxUint16)))
	case depth16S:
		binary.LittleEndian.PutUint16(b, uint16(int16(saturate(v, math.MinInt16, math.MaxInt16))))
	case depth32S:
		binary.LittleEndian.PutUint32(b, uint32(int32(saturate(v, math.MinInt32, math.MaxInt32))))
	case depth32F:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	default:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

func saturate(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.RoundToEven(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// decodeValues expands raw element bytes into one float64 per channel value.
func decodeValues(b []byte, depth int32) []float64 {
	sz := depthSize(depth)
	out := make([]float64, len(b)/sz)
	for i := range out {
		out[i] = getValue(b[i*sz:], depth)
	}
	return out
}

func encodeValues(vals []float64, depth int32) []byte {
	sz := depthSize(depth)
	out := make([]byte, len(vals)*sz)
	for i, v := range vals {
		putValue(out[i*sz:], depth, v)
	}
	return out
}

func scalarValues(s [4]float64, typ int32, n int) []byte {
	cn := channelsOf(typ)
	depth := depthOf(typ)
	one := make([]byte, elemSize(typ))
	for c := 0; c < cn; c++ {
		putValue(one[c*depthSize(depth):], depth, s[c])
	}
	out := make([]byte, 0, n*len(one))
	for i := 0; i < n; i++ {
		out = append(out, one...)
	}
	return out
}
