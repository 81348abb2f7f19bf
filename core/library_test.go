package core

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/errors"
)

// twoLibraries creates a source and a victim on one engine, then a fresh
// engine whose first handles collide with them.
func twoLibraries(t *testing.T) (src, victim, foreign *Mat) {
	t.Helper()
	useEngine(t)
	src, err := NewMatFromBytes(1, 4, MatTypeCV8UC1, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	victim, err = NewMatFromBytes(1, 4, MatTypeCV8UC1, []byte{9, 9, 9, 9})
	require.NoError(t, err)

	useEngine(t)
	filler, err := NewMatWithSize(1, 1, MatTypeCV8UC1)
	require.NoError(t, err)
	foreign, err = NewMatWithSizeFromScalar(NewScalar(0, 0, 0, 0), 1, 4, MatTypeCV8UC1)
	require.NoError(t, err)
	require.Equal(t, victim.Ptr(), foreign.Ptr(), "handles should collide across engines")

	t.Cleanup(func() {
		for _, m := range []*Mat{src, victim, filler, foreign} {
			_ = m.Close()
		}
	})
	return src, victim, foreign
}

func TestSameLibrary_RejectsForeignOperands(t *testing.T) {
	src, victim, foreign := twoLibraries(t)

	ops := map[string]func() error{
		"CopyTo":         func() error { return src.CopyTo(foreign) },
		"CopyToWithMask": func() error { return src.CopyToWithMask(victim, foreign) },
		"ConvertTo":      func() error { return src.ConvertTo(foreign, MatTypeCV8UC1) },
		"Compare":        func() error { return Compare(src, foreign, victim, CompareEQ) },
		"CompareDst":     func() error { return Compare(src, victim, foreign, CompareEQ) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, errors.KindInvalidInput, errors.KindOf(op()))
		})
	}

	b, err := victim.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9, 9}, b, "foreign handle must not resolve to the victim")
	b, err = foreign.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestSameLibrary_SkipsNil(t *testing.T) {
	useEngine(t)
	m := NewMat()
	defer m.Close()
	assert.NoError(t, SameLibrary("op", m.Library(), m, nil))
}

func TestMat_OversizedShape(t *testing.T) {
	e := useEngine(t)

	victim, err := NewMatFromBytes(2, 2, MatTypeCV8UC1, []byte{5, 5, 5, 5})
	require.NoError(t, err)
	defer victim.Close()

	big, err := NewMatWithSize(65536, 65536, MatTypeCV8UC1)
	assert.Nil(t, big)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	_, err = NewMatWithSizeFromScalar(NewScalar(1, 0, 0, 0), 65536, 65536, MatTypeCV8UC1)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	_, err = NewMatWithSize(math.MaxInt32+2, 1, MatTypeCV8UC1)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err), "int must not wrap into a small int32")

	b, err := victim.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 5, 5, 5}, b)
	assert.EqualValues(t, 1, e.Stats().LiveHandles)
}

func TestMat_RegionOverflowingRect(t *testing.T) {
	useEngine(t)

	m, err := NewMatWithSize(4, 4, MatTypeCV8UC1)
	require.NoError(t, err)
	defer m.Close()

	for _, r := range []image.Rectangle{
		image.Rect(0, math.MaxInt32, 1, math.MaxInt32+1),
		image.Rect(math.MaxInt32, 0, math.MaxInt32+1, 1),
		image.Rect(0, 1<<32, 1, 1<<32+1),
	} {
		roi, err := m.Region(r)
		assert.Nil(t, roi, "rect %v", r)
		assert.Error(t, err, "rect %v", r)
	}

	_, err = m.UCharAt(1<<32, 0)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}
