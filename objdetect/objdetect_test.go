package objdetect

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

const faceCascade = `<?xml version="1.0"?>
<opencv_storage>
<cascade type_id="opencv-cascade-classifier">
  <stageType>BOOST</stageType>
  <featureType>HAAR</featureType>
  <height>4</height>
  <width>4</width>
  <stageNum>1</stageNum>
</cascade>
</opencv_storage>
`

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

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// scene returns a dark 20x20 image with bright rects.
func scene(t *testing.T, rects ...image.Rectangle) *core.Mat {
	t.Helper()
	const size = 20
	pix := make([]byte, size*size)
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				pix[y*size+x] = 255
			}
		}
	}
	m, err := core.NewMatFromBytes(size, size, core.MatTypeCV8UC1, pix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestCascadeClassifier_Load(t *testing.T) {
	useEngine(t)
	c := NewCascadeClassifier()
	defer c.Close()

	tests := []struct {
		name string
		path string
		kind errors.Kind
	}{
		{"nul in path", "face\x00.xml", errors.KindInvalidPath},
		{"invalid utf8", "\xff\xfe.xml", errors.KindInvalidPath},
		{"empty path", "", errors.KindInvalidPath},
		{"missing file", filepath.Join(t.TempDir(), "missing.xml"), errors.KindNotFound},
		{"not a cascade", writeFile(t, "junk.xml", "<html/>"), errors.KindInvalidModel},
		{"valid", writeFile(t, "face.xml", faceCascade), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Load(tt.path)
			assert.Equal(t, tt.kind, errors.KindOf(err), "err = %v", err)
		})
	}
}

func TestCascadeClassifier_Detect(t *testing.T) {
	e := useEngine(t)
	c := NewCascadeClassifier()
	defer c.Close()

	img := scene(t, image.Rect(10, 12, 16, 17), image.Rect(2, 2, 8, 8), image.Rect(15, 2, 17, 4))

	_, err := c.DetectMultiScale(img)
	assert.Equal(t, errors.KindNative, errors.KindOf(err), "nothing loaded")

	require.NoError(t, c.Load(writeFile(t, "face.xml", faceCascade)))

	before := e.Stats().HostBytes
	rects, err := c.DetectMultiScale(img)
	require.NoError(t, err)
	assert.Equal(t, []image.Rectangle{image.Rect(2, 2, 8, 8), image.Rect(10, 12, 16, 17)}, rects)
	assert.Equal(t, before, e.Stats().HostBytes, "result array must be released")

	rects, err = c.DetectMultiScaleWithParams(img, 1.1, 3, 0, image.Pt(6, 6), image.Point{})
	require.NoError(t, err)
	assert.Equal(t, []image.Rectangle{image.Rect(2, 2, 8, 8)}, rects)

	_, err = c.DetectMultiScaleWithParams(img, 1.0, 3, 0, image.Point{}, image.Point{})
	assert.Equal(t, errors.KindNative, errors.KindOf(err))
}

func TestCascadeClassifier_NoDetections(t *testing.T) {
	useEngine(t)
	c := NewCascadeClassifier()
	defer c.Close()
	require.NoError(t, c.Load(writeFile(t, "face.xml", faceCascade)))

	rects, err := c.DetectMultiScale(scene(t))
	require.NoError(t, err)
	assert.Empty(t, rects)
}

func TestCascadeClassifier_Close(t *testing.T) {
	e := useEngine(t)
	c := NewCascadeClassifier()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Zero(t, e.Stats().DoubleReleases)
	assert.Zero(t, e.Stats().LiveHandles)

	assert.Panics(t, func() { _ = c.Load("face.xml") })
}

func TestCascadeClassifier_ForeignImage(t *testing.T) {
	useEngine(t)
	img := scene(t, image.Rect(2, 2, 8, 8))

	useEngine(t)
	c := NewCascadeClassifier()
	defer c.Close()
	require.NoError(t, c.Load(writeFile(t, "face.xml", faceCascade)))

	_, err := c.DetectMultiScale(img)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
	_, err = c.DetectMultiScaleWithParams(img, 1.1, 3, 0, image.Point{}, image.Point{})
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}
