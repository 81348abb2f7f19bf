package features2d

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

func useEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(context.Background(), nil)
	require.NoError(t, err)
	restore := native.Swap(e)
	t.Cleanup(func() {
		restore()
		_ = e.Close(context.Background())
	})
	return e
}

func fill(t *testing.T, size int, bg, fg byte, r image.Rectangle) *core.Mat {
	t.Helper()
	pix := make([]byte, size*size)
	for i := range pix {
		pix[i] = bg
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pix[y*size+x] = fg
		}
	}
	m, err := core.NewMatFromBytes(size, size, core.MatTypeCV8UC1, pix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMSER_Detect(t *testing.T) {
	e := useEngine(t)
	d := NewMSER()
	defer d.Close()

	img := fill(t, 30, 0, 255, image.Rect(5, 10, 15, 20))
	before := e.Stats().HostBytes

	kps, err := d.Detect(img)
	require.NoError(t, err)
	require.Len(t, kps, 1)
	assert.Equal(t, 9.5, kps[0].X)
	assert.Equal(t, 14.5, kps[0].Y)
	assert.Equal(t, -1.0, kps[0].Angle)
	assert.Equal(t, -1, kps[0].ClassID)
	assert.InDelta(t, 2*math.Sqrt(100/math.Pi), kps[0].Size, 1e-9)
	assert.Equal(t, before, e.Stats().HostBytes)
}

func TestSimpleBlobDetector_Detect(t *testing.T) {
	useEngine(t)
	d := NewSimpleBlobDetector()
	defer d.Close()

	kps, err := d.Detect(fill(t, 30, 255, 0, image.Rect(20, 20, 26, 26)))
	require.NoError(t, err)
	require.Len(t, kps, 1)
	assert.Equal(t, 22.5, kps[0].X)
	assert.Equal(t, 22.5, kps[0].Y)

	kps, err = d.Detect(fill(t, 10, 255, 255, image.Rectangle{}))
	require.NoError(t, err)
	assert.Empty(t, kps)
}

func TestDetect_RejectsFloat(t *testing.T) {
	useEngine(t)
	d := NewMSER()
	defer d.Close()

	img, err := core.NewMatWithSize(4, 4, core.MatTypeCV32FC1)
	require.NoError(t, err)
	defer img.Close()

	_, err = d.Detect(img)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))
}

func TestDetectors_Close(t *testing.T) {
	e := useEngine(t)

	m := NewMSER()
	b := NewSimpleBlobDetector()
	require.NoError(t, m.Close())
	require.NoError(t, b.Close())
	require.NoError(t, m.Close())

	s := e.Stats()
	assert.Zero(t, s.LiveHandles)
	assert.Zero(t, s.DoubleReleases)
	assert.Panics(t, func() { _, _ = b.Detect(nil) })
}

func TestDetect_ForeignImage(t *testing.T) {
	useEngine(t)
	img := fill(t, 32, 255, 0, image.Rect(8, 8, 20, 20))

	useEngine(t)
	mser := NewMSER()
	defer mser.Close()
	blobs := NewSimpleBlobDetector()
	defer blobs.Close()

	_, err := mser.Detect(img)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
	_, err = blobs.Detect(img)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}
