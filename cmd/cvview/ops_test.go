package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/imgcodecs"
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

func checker(t *testing.T, rows, cols int) *core.Mat {
	t.Helper()
	pix := make([]byte, rows*cols*3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if (x/4+y/4)%2 == 0 {
				p := pix[(y*cols+x)*3:]
				p[0], p[1], p[2] = 200, 180, 160
			}
		}
	}
	m, err := core.NewMatFromBytes(rows, cols, core.MatTypeCV8UC3, pix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestOps(t *testing.T) {
	tests := []struct {
		op         string
		rows, cols int
		channels   int
	}{
		{"copy", 16, 24, 3},
		{"gray", 16, 24, 1},
		{"blur", 16, 24, 3},
		{"median", 16, 24, 3},
		{"canny", 16, 24, 1},
		{"otsu", 16, 24, 1},
		{"pyrdown", 8, 12, 3},
		{"half", 8, 12, 3},
	}
	require.Len(t, tests, len(ops), "every op is covered")

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			e := useEngine(t)
			src := checker(t, 16, 24)
			o, err := lookupOp(tt.op)
			require.NoError(t, err)

			res, err := o.apply(src)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, res.Rows())
			assert.Equal(t, tt.cols, res.Cols())
			assert.Equal(t, tt.channels, res.Channels())

			require.NoError(t, res.Close())
			assert.EqualValues(t, 1, e.Stats().LiveHandles, "only the source stays live")
		})
	}
}

func TestLookupOp_Unknown(t *testing.T) {
	_, err := lookupOp("sharpen")
	assert.ErrorContains(t, err, "unknown op")
}

func TestProcess(t *testing.T) {
	useEngine(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imgcodecs.IMWrite(in, checker(t, 16, 24)))

	out := filepath.Join(dir, "out.png")
	res, err := process(in, out, ops["gray"])
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, 1, res.Channels())

	back, err := imgcodecs.IMRead(out, imgcodecs.IMReadUnchanged)
	require.NoError(t, err)
	defer back.Close()
	assert.Equal(t, 24, back.Cols())

	_, err = process(filepath.Join(dir, "missing.png"), "", ops["copy"])
	assert.Error(t, err)
}
