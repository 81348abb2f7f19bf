package dnn

import (
	"context"
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

const tinyNet = `name: tiny
layers:
  - name: data
    type: Input
  - name: flat
    type: Flatten
  - name: scaled
    type: Scale
    scale: 2
  - name: prob
    type: Softmax
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

func TestReadNet_Errors(t *testing.T) {
	useEngine(t)
	dir := t.TempDir()
	proto := writeFile(t, "net.prototxt", tinyNet)

	tests := []struct {
		name string
		load func() (*Net, error)
		kind errors.Kind
	}{
		{"caffe missing weights", func() (*Net, error) { return ReadNetFromCaffe(proto, filepath.Join(dir, "w.caffemodel")) }, errors.KindNotFound},
		{"caffe missing prototxt", func() (*Net, error) { return ReadNetFromCaffe(filepath.Join(dir, "n.prototxt"), proto) }, errors.KindNotFound},
		{"caffe bad path", func() (*Net, error) { return ReadNetFromCaffe("a\x00b", proto) }, errors.KindInvalidPath},
		{"tensorflow junk", func() (*Net, error) { return ReadNetFromTensorflow(writeFile(t, "bad.pb", "layers: [")) }, errors.KindInvalidModel},
		{"tensorflow missing", func() (*Net, error) { return ReadNetFromTensorflow(filepath.Join(dir, "m.pb")) }, errors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.load()
			assert.Nil(t, n)
			assert.Equal(t, tt.kind, errors.KindOf(err), "err = %v", err)
		})
	}
}

func TestNet_Forward(t *testing.T) {
	e := useEngine(t)

	n, err := ReadNetFromCaffe(writeFile(t, "net.prototxt", tinyNet), writeFile(t, "w.caffemodel", "weights"))
	require.NoError(t, err)
	defer n.Close()
	assert.False(t, n.Empty())

	img, err := core.NewMatFromBytes(2, 2, core.MatTypeCV8UC1, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	defer img.Close()

	blob, err := BlobFromImage(img, 1, core.Size{}, core.Scalar{}, false, false)
	require.NoError(t, err)

	_, err = n.Forward("")
	assert.Equal(t, errors.KindNative, errors.KindOf(err), "no input bound")

	assert.Equal(t, errors.KindUnicode, errors.KindOf(n.SetInput(blob, "données")))
	require.NoError(t, n.SetInput(blob, "data"))
	require.NoError(t, blob.Close())

	scaled, err := n.Forward("scaled")
	require.NoError(t, err)
	defer scaled.Close()
	assert.Equal(t, 1, scaled.Rows())
	assert.Equal(t, 4, scaled.Cols())
	for i, want := range []float32{2, 4, 6, 8} {
		v, err := scaled.FloatAt(0, i)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	prob, err := n.Forward("")
	require.NoError(t, err)
	defer prob.Close()
	var sum float64
	for i := 0; i < 4; i++ {
		v, err := prob.FloatAt(0, i)
		require.NoError(t, err)
		sum += float64(v)
	}
	assert.InDelta(t, 1, sum, 1e-6)

	_, err = n.Forward("sortie→")
	assert.Equal(t, errors.KindUnicode, errors.KindOf(err))
	_, err = n.Forward("missing")
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	require.NoError(t, n.Close())
	require.NoError(t, scaled.Close())
	require.NoError(t, prob.Close())
	require.NoError(t, img.Close())
	s := e.Stats()
	assert.Zero(t, s.LiveHandles)
	assert.Zero(t, s.HostBytes, "the net's bound input must be released with it")
}

func TestBlobChannelSharesStorage(t *testing.T) {
	e := useEngine(t)

	img, err := core.NewMatFromBytes(1, 2, core.MatTypeCV8UC3, []byte{10, 20, 30, 40, 50, 60})
	require.NoError(t, err)
	defer img.Close()

	blob, err := BlobFromImage(img, 0.5, core.Size{}, core.NewScalar(10, 0, 0, 0), true, false)
	require.NoError(t, err)

	size, err := GetBlobSize(blob)
	require.NoError(t, err)
	assert.Equal(t, core.NewScalar(1, 3, 1, 2), size)

	red, err := GetBlobChannel(blob, 0, 0)
	require.NoError(t, err)
	require.NoError(t, blob.Close())

	for i, want := range []float32{10, 25} {
		v, err := red.FloatAt(0, i)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	require.NoError(t, red.SetFloatAt(0, 0, 99))
	again, err := red.FloatAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(99), again)

	require.NoError(t, red.Close())
	assert.Equal(t, int64(1), e.Stats().LiveHandles)

	_, err = GetBlobChannel(img, 0, 5)
	assert.Error(t, err)
	_, err = GetBlobSize(img)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))
}

func TestNet_SetInputForeignBlob(t *testing.T) {
	useEngine(t)
	img, err := core.NewMatFromBytes(2, 2, core.MatTypeCV8UC1, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	defer img.Close()
	blob, err := BlobFromImage(img, 1, core.Size{}, core.Scalar{}, false, false)
	require.NoError(t, err)
	defer blob.Close()

	useEngine(t)
	n, err := ReadNetFromCaffe(writeFile(t, "net.prototxt", tinyNet), writeFile(t, "w.caffemodel", "weights"))
	require.NoError(t, err)
	defer n.Close()

	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(n.SetInput(blob, "data")))
	_, err = n.Forward("")
	assert.Equal(t, errors.KindNative, errors.KindOf(err), "no input bound")
}
