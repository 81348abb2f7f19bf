package engine

import (
	"math"
	"testing"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

func TestShapeBytes(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		typ  int32
		want int
		ok   bool
	}{
		{"empty", nil, makeType(depth8U, 1), 1, true},
		{"small", []int{4, 4}, makeType(depth8U, 3), 48, true},
		{"zero row", []int{0, math.MaxInt32}, makeType(depth8U, 1), 0, true},
		{"at limit", []int{1, math.MaxInt32}, makeType(depth8U, 1), math.MaxInt32, true},
		{"one past limit", []int{1, math.MaxInt32}, makeType(depth8U, 2), 0, false},
		{"wraps uint32", []int{65536, 65536}, makeType(depth8U, 1), 0, false},
		{"wraps through channels", []int{32768, 32768}, makeType(depth32F, 4), 0, false},
		{"negative", []int{-1, 4}, makeType(depth8U, 1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := shapeBytes(tt.dims, tt.typ)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("shapeBytes(%v) = %d, %v; want %d, %v", tt.dims, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEngine_OversizedShapeLeavesNeighboursAlone(t *testing.T) {
	e := newEngine(t)
	victim := mustMat(t)(e.NewMatWithSize(2, 2, makeType(depth8U, 1)))
	defer e.CloseMat(victim)
	for r := int32(0); r < 2; r++ {
		for c := int32(0); c < 2; c++ {
			if err := e.MatSetUChar(victim, r, c, 7); err != nil {
				t.Fatal(err)
			}
		}
	}
	before := e.Stats()

	ctors := map[string]func() (native.Mat, error){
		"with size": func() (native.Mat, error) {
			return e.NewMatWithSize(65536, 65536, makeType(depth8U, 1))
		},
		"from scalar": func() (native.Mat, error) {
			return e.NewMatWithSizeFromScalar(native.Scalar{Val1: 1}, 65536, 65536, makeType(depth8U, 1))
		},
		"from bytes": func() (native.Mat, error) {
			return e.NewMatFromBytes(65536, 65536, makeType(depth8U, 1), stage(t, e, make([]byte, 8)))
		},
		"wide float": func() (native.Mat, error) {
			return e.NewMatWithSize(32768, 32768, makeType(depth32F, 4))
		},
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			m, err := ctor()
			if errors.KindOf(err) != errors.KindNative {
				t.Fatalf("err = %v, want native error", err)
			}
			if m != 0 {
				t.Errorf("handle = %d, want 0 on failure", m)
			}
		})
	}

	after := e.Stats()
	if after.LiveHandles != before.LiveHandles {
		t.Errorf("live handles %d -> %d", before.LiveHandles, after.LiveHandles)
	}
	for r := int32(0); r < 2; r++ {
		for c := int32(0); c < 2; c++ {
			if v, _ := e.MatGetUChar(victim, r, c); v != 7 {
				t.Errorf("victim (%d,%d) = %d, want 7", r, c, v)
			}
		}
	}
}

func TestEngine_RegionOverflowingRect(t *testing.T) {
	e := newEngine(t)
	m := mustMat(t)(e.NewMatWithSize(4, 4, makeType(depth8U, 1)))
	defer e.CloseMat(m)

	rects := []native.Rect{
		{X: 0, Y: math.MaxInt32, Width: 1, Height: 1},
		{X: math.MaxInt32, Y: 0, Width: 1, Height: 1},
		{X: 1, Y: 1, Width: math.MaxInt32, Height: 1},
		{X: 1, Y: 1, Width: 1, Height: math.MaxInt32},
	}
	for _, r := range rects {
		v, err := e.MatRegion(m, r)
		if errors.KindOf(err) != errors.KindNative {
			t.Errorf("MatRegion(%+v) err = %v, want native error", r, err)
			e.CloseMat(v)
		}
	}
	if n := e.Stats().LiveHandles; n != 1 {
		t.Errorf("live handles = %d, want 1", n)
	}
}

func TestEngine_ShapeQueriesFitInt32(t *testing.T) {
	e := newEngine(t)
	m := mustMat(t)(e.NewMatWithSize(3, 5, makeType(depth32F, 2)))
	defer e.CloseMat(m)
	if e.MatRows(m) != 3 || e.MatCols(m) != 5 || e.MatTotal(m) != 15 || e.MatStep(m) != 40 {
		t.Errorf("shape = %dx%d total %d step %d", e.MatRows(m), e.MatCols(m), e.MatTotal(m), e.MatStep(m))
	}
	expectPanicKind(t, errors.KindNative, func() { dim32("Mat_Total", math.MaxInt32+1) })
}
