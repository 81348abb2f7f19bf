package core

import (
	"github.com/wippyai/cvbridge/internal/codes"
)

// MatType is a matrix element type: a depth and a channel count.
type MatType int32

// Depths.
const (
	MatTypeCV8U  MatType = 0
	MatTypeCV8S  MatType = 1
	MatTypeCV16U MatType = 2
	MatTypeCV16S MatType = 3
	MatTypeCV32S MatType = 4
	MatTypeCV32F MatType = 5
	MatTypeCV64F MatType = 6
)

const (
	MatChannels1 MatType = 0
	MatChannels2 MatType = 1 << 3
	MatChannels3 MatType = 2 << 3
	MatChannels4 MatType = 3 << 3
)

const (
	MatTypeCV8UC1 = MatTypeCV8U + MatChannels1
	MatTypeCV8UC2 = MatTypeCV8U + MatChannels2
	MatTypeCV8UC3 = MatTypeCV8U + MatChannels3
	MatTypeCV8UC4 = MatTypeCV8U + MatChannels4

	MatTypeCV8SC1 = MatTypeCV8S + MatChannels1
	MatTypeCV8SC2 = MatTypeCV8S + MatChannels2
	MatTypeCV8SC3 = MatTypeCV8S + MatChannels3
	MatTypeCV8SC4 = MatTypeCV8S + MatChannels4

	MatTypeCV16UC1 = MatTypeCV16U + MatChannels1
	MatTypeCV16UC2 = MatTypeCV16U + MatChannels2
	MatTypeCV16UC3 = MatTypeCV16U + MatChannels3
	MatTypeCV16UC4 = MatTypeCV16U + MatChannels4

	MatTypeCV16SC1 = MatTypeCV16S + MatChannels1
	MatTypeCV16SC2 = MatTypeCV16S + MatChannels2
	MatTypeCV16SC3 = MatTypeCV16S + MatChannels3
	MatTypeCV16SC4 = MatTypeCV16S + MatChannels4

	MatTypeCV32SC1 = MatTypeCV32S + MatChannels1
	MatTypeCV32SC2 = MatTypeCV32S + MatChannels2
	MatTypeCV32SC3 = MatTypeCV32S + MatChannels3
	MatTypeCV32SC4 = MatTypeCV32S + MatChannels4

	MatTypeCV32FC1 = MatTypeCV32F + MatChannels1
	MatTypeCV32FC2 = MatTypeCV32F + MatChannels2
	MatTypeCV32FC3 = MatTypeCV32F + MatChannels3
	MatTypeCV32FC4 = MatTypeCV32F + MatChannels4

	MatTypeCV64FC1 = MatTypeCV64F + MatChannels1
	MatTypeCV64FC2 = MatTypeCV64F + MatChannels2
	MatTypeCV64FC3 = MatTypeCV64F + MatChannels3
	MatTypeCV64FC4 = MatTypeCV64F + MatChannels4
)

var matTypes = codes.New("MatType", matTypeEntries()...)

func matTypeEntries() []codes.Entry[MatType] {
	depths := [...]string{"CV8U", "CV8S", "CV16U", "CV16S", "CV32S", "CV32F", "CV64F"}
	entries := make([]codes.Entry[MatType], 0, len(depths)*4)
	for cn := MatType(0); cn < 4; cn++ {
		for d, name := range depths {
			entries = append(entries, codes.Entry[MatType]{
				Value: MatType(d) + cn<<3,
				Name:  "MatType" + name + "C" + string(rune('1'+cn)),
			})
		}
	}
	return entries
}

// ParseMatType decodes a type code returned by the library.
func ParseMatType(code int32) (MatType, error) { return matTypes.Decode(code) }

// MatTypes lists every matrix type.
func MatTypes() []MatType { return matTypes.Values() }

// Depth returns the depth part of t.
func (t MatType) Depth() MatType { return t & 7 }

// Channels returns the channel count of t.
func (t MatType) Channels() int { return int(t>>3) + 1 }

func (t MatType) String() string { return matTypes.Name(t) }

// BorderType selects how pixels outside the image are extrapolated.
type BorderType int32

const (
	BorderConstant    BorderType = 0
	BorderReplicate   BorderType = 1
	BorderReflect     BorderType = 2
	BorderWrap        BorderType = 3
	BorderReflect101  BorderType = 4
	BorderTransparent BorderType = 5
	BorderDefault                = BorderReflect101
	BorderIsolated    BorderType = 16
)

var borderTypes = codes.New("BorderType",
	codes.Entry[BorderType]{Value: BorderConstant, Name: "BorderConstant"},
	codes.Entry[BorderType]{Value: BorderReplicate, Name: "BorderReplicate"},
	codes.Entry[BorderType]{Value: BorderReflect, Name: "BorderReflect"},
	codes.Entry[BorderType]{Value: BorderWrap, Name: "BorderWrap"},
	codes.Entry[BorderType]{Value: BorderReflect101, Name: "BorderReflect101"},
	codes.Entry[BorderType]{Value: BorderTransparent, Name: "BorderTransparent"},
	codes.Entry[BorderType]{Value: BorderDefault, Name: "BorderDefault"},
	codes.Entry[BorderType]{Value: BorderIsolated, Name: "BorderIsolated"},
)

// ParseBorderType decodes a border code.
func ParseBorderType(code int32) (BorderType, error) { return borderTypes.Decode(code) }

func (b BorderType) String() string { return borderTypes.Name(b) }

// Code returns the wire code of b.
func (b BorderType) Code() int32 { return borderTypes.Encode(b) }

// CompareType is an element-wise comparison.
type CompareType int32

const (
	CompareEQ CompareType = iota
	CompareGT
	CompareGE
	CompareLT
	CompareLE
	CompareNE
)

var compareTypes = codes.New("CompareType",
	codes.Entry[CompareType]{Value: CompareEQ, Name: "CompareEQ"},
	codes.Entry[CompareType]{Value: CompareGT, Name: "CompareGT"},
	codes.Entry[CompareType]{Value: CompareGE, Name: "CompareGE"},
	codes.Entry[CompareType]{Value: CompareLT, Name: "CompareLT"},
	codes.Entry[CompareType]{Value: CompareLE, Name: "CompareLE"},
	codes.Entry[CompareType]{Value: CompareNE, Name: "CompareNE"},
)

// ParseCompareType decodes a comparison code.
func ParseCompareType(code int32) (CompareType, error) { return compareTypes.Decode(code) }

func (c CompareType) String() string { return compareTypes.Name(c) }

// CPUFeature is an optional instruction set.
type CPUFeature int32

const (
	CPUMMX     CPUFeature = 1
	CPUSSE     CPUFeature = 2
	CPUSSE2    CPUFeature = 3
	CPUSSE3    CPUFeature = 4
	CPUSSSE3   CPUFeature = 5
	CPUSSE4_1  CPUFeature = 6
	CPUSSE4_2  CPUFeature = 7
	CPUPOPCNT  CPUFeature = 8
	CPUFP16    CPUFeature = 9
	CPUAVX     CPUFeature = 10
	CPUAVX2    CPUFeature = 11
	CPUFMA3    CPUFeature = 12
	CPUAVX512F CPUFeature = 13
	CPUNEON    CPUFeature = 100
)

var cpuFeatures = codes.New("CPUFeature",
	codes.Entry[CPUFeature]{Value: CPUMMX, Name: "CPUMMX"},
	codes.Entry[CPUFeature]{Value: CPUSSE, Name: "CPUSSE"},
	codes.Entry[CPUFeature]{Value: CPUSSE2, Name: "CPUSSE2"},
	codes.Entry[CPUFeature]{Value: CPUSSE3, Name: "CPUSSE3"},
	codes.Entry[CPUFeature]{Value: CPUSSSE3, Name: "CPUSSSE3"},
	codes.Entry[CPUFeature]{Value: CPUSSE4_1, Name: "CPUSSE4_1"},
	codes.Entry[CPUFeature]{Value: CPUSSE4_2, Name: "CPUSSE4_2"},
	codes.Entry[CPUFeature]{Value: CPUPOPCNT, Name: "CPUPOPCNT"},
	codes.Entry[CPUFeature]{Value: CPUFP16, Name: "CPUFP16"},
	codes.Entry[CPUFeature]{Value: CPUAVX, Name: "CPUAVX"},
	codes.Entry[CPUFeature]{Value: CPUAVX2, Name: "CPUAVX2"},
	codes.Entry[CPUFeature]{Value: CPUFMA3, Name: "CPUFMA3"},
	codes.Entry[CPUFeature]{Value: CPUAVX512F, Name: "CPUAVX512F"},
	codes.Entry[CPUFeature]{Value: CPUNEON, Name: "CPUNEON"},
)

// ParseCPUFeature decodes a feature code.
func ParseCPUFeature(code int32) (CPUFeature, error) { return cpuFeatures.Decode(code) }

func (f CPUFeature) String() string { return cpuFeatures.Name(f) }
