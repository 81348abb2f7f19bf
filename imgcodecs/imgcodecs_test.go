package imgcodecs

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
	"github.com/wippyai/cvbridge/internal/codes/codestest"
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

// gradient returns a rows x cols BGR image whose blue and green follow x and y.
func gradient(t *testing.T, rows, cols int) (*core.Mat, []byte) {
	t.Helper()
	pix := make([]byte, rows*cols*3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := pix[(y*cols+x)*3:]
			p[0], p[1], p[2] = byte(x*10), byte(y*10), 128
		}
	}
	m, err := core.NewMatFromBytes(rows, cols, core.MatTypeCV8UC3, pix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, pix
}

func TestEncodeDecode(t *testing.T) {
	e := useEngine(t)
	img, pix := gradient(t, 6, 8)
	before := e.Stats().HostBytes

	buf, err := IMEncode(PNGFileExt, img)
	require.NoError(t, err)
	require.NotEmpty(t, buf)
	assert.Equal(t, []byte("\x89PNG"), buf[:4])
	assert.Equal(t, before, e.Stats().HostBytes, "encoded buffer must be released after copying")

	decoded, err := IMDecode(buf, IMReadColor)
	require.NoError(t, err)
	defer decoded.Close()
	got, err := decoded.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, pix, got)

	gray, err := IMDecode(buf, IMReadGrayScale)
	require.NoError(t, err)
	defer gray.Close()
	assert.Equal(t, 1, gray.Channels())

	_, err = IMEncode(".nope", img)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))
	_, err = IMEncode("png\x00", img)
	assert.Equal(t, errors.KindInvalidString, errors.KindOf(err))

	_, err = IMDecode(nil, IMReadColor)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	junk, err := IMDecode([]byte("not an image"), IMReadColor)
	require.NoError(t, err)
	defer junk.Close()
	assert.True(t, junk.Empty())
}

func TestReadWrite(t *testing.T) {
	useEngine(t)
	img, pix := gradient(t, 4, 5)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	require.NoError(t, IMWrite(path, img))

	back, err := IMRead(path, IMReadColor)
	require.NoError(t, err)
	defer back.Close()
	got, err := back.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, pix, got)

	unchanged, err := IMRead(path, IMReadUnchanged)
	require.NoError(t, err)
	defer unchanged.Close()
	assert.Equal(t, 3, unchanged.Channels(), "opaque image reads as three channels")

	_, err = IMRead(filepath.Join(dir, "missing.png"), IMReadColor)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	_, err = IMRead("bad\x00.png", IMReadColor)
	assert.Equal(t, errors.KindInvalidPath, errors.KindOf(err))

	junkPath := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junkPath, []byte("junk"), 0o644))
	junk, err := IMRead(junkPath, IMReadColor)
	require.NoError(t, err)
	defer junk.Close()
	assert.True(t, junk.Empty())

	assert.Equal(t, errors.KindNative, errors.KindOf(IMWrite(filepath.Join(dir, "out.nope"), img)))
	assert.Error(t, IMWrite(filepath.Join(dir, "no", "such", "dir.png"), img))
}

func TestReducedRead(t *testing.T) {
	useEngine(t)
	img, _ := gradient(t, 8, 16)
	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, IMWrite(path, img))

	small, err := IMRead(path, IMReadReducedColor2)
	require.NoError(t, err)
	defer small.Close()
	assert.Equal(t, []int{4, 8}, small.Size())
	assert.Equal(t, 3, small.Channels())

	tiny, err := IMRead(path, IMReadReducedGrayscale8)
	require.NoError(t, err)
	defer tiny.Close()
	assert.Equal(t, []int{1, 2}, tiny.Size())
	assert.Equal(t, 1, tiny.Channels())
}

func TestImageReadMode(t *testing.T) {
	assert.Equal(t, "IMReadReducedColor4", IMReadReducedColor4.String())
	_, err := ParseImageReadMode(3)
	assert.Equal(t, errors.KindInvalidEnum, errors.KindOf(err))
}

func TestCodeSets_RoundTrip(t *testing.T) {
	sets := map[string]func(*testing.T){
		"ImageReadMode": func(t *testing.T) { codestest.RoundTrip(t, readModes) },
	}
	for name, check := range sets {
		t.Run(name, check)
	}
}
