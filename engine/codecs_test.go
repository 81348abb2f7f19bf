package engine

import (
	"path/filepath"
	"testing"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

func gradient(t *testing.T, e *Engine, rows, cols int) native.Mat {
	t.Helper()
	pix := make([]byte, rows*cols*3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := pix[(y*cols+x)*3:]
			p[0], p[1], p[2] = byte(x*10), byte(y*10), 128
		}
	}
	return mustMat(t)(e.NewMatFromBytes(int32(rows), int32(cols), makeType(depth8U, 3), stage(t, e, pix)))
}

func TestIMEncodeDecode(t *testing.T) {
	e := newEngine(t)
	img := gradient(t, e, 6, 8)
	defer e.CloseMat(img)

	buf, err := e.IMEncode(".png", img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Length == 0 {
		t.Fatal("empty encoding")
	}

	decoded, err := e.IMDecode(buf, readColor)
	e.ReleaseByteArray(buf)
	if err != nil {
		t.Fatal(err)
	}
	defer e.CloseMat(decoded)
	if string(matBytes(t, e, decoded)) != string(matBytes(t, e, img)) {
		t.Error("png round trip changed pixels")
	}

	if _, err := e.IMEncode(".nope", img); errors.KindOf(err) != errors.KindNative {
		t.Errorf("unknown extension: err = %v", err)
	}
	if _, err := e.IMDecode(native.ByteArray{}, readColor); errors.KindOf(err) != errors.KindNative {
		t.Errorf("empty buffer: err = %v", err)
	}
	junk, err := e.IMDecode(stage(t, e, []byte("not an image")), readColor)
	if err != nil {
		t.Fatal(err)
	}
	if !e.MatEmpty(junk) {
		t.Error("undecodable buffer should give an empty matrix")
	}
	_ = e.CloseMat(junk)
}

func TestIMReadWrite(t *testing.T) {
	e := newEngine(t)
	img := gradient(t, e, 8, 8)
	defer e.CloseMat(img)
	path := filepath.Join(t.TempDir(), "out.png")

	ok, err := e.IMWrite(path, img)
	if err != nil || !ok {
		t.Fatalf("write = %v, %v", ok, err)
	}

	tests := []struct {
		name       string
		flags      int32
		rows, cols int32
		cn         int32
	}{
		{"color", readColor, 8, 8, 3},
		{"grayscale", readGrayscale, 8, 8, 1},
		{"unchanged opaque", readUnchanged, 8, 8, 3},
		{"reduced color 2", readReduced2 | readColor, 4, 4, 3},
		{"reduced grayscale 4", readReduced4, 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := e.IMRead(path, tt.flags)
			if err != nil {
				t.Fatal(err)
			}
			defer e.CloseMat(m)
			if e.MatRows(m) != tt.rows || e.MatCols(m) != tt.cols || e.MatChannels(m) != tt.cn {
				t.Errorf("read %dx%dx%d, want %dx%dx%d",
					e.MatRows(m), e.MatCols(m), e.MatChannels(m), tt.rows, tt.cols, tt.cn)
			}
		})
	}

	missing, err := e.IMRead(filepath.Join(t.TempDir(), "missing.png"), readColor)
	if err != nil {
		t.Fatal(err)
	}
	if !e.MatEmpty(missing) {
		t.Error("missing file should read as an empty matrix")
	}
	_ = e.CloseMat(missing)

	if _, err := e.IMWrite(filepath.Join(t.TempDir(), "out.nope"), img); errors.KindOf(err) != errors.KindNative {
		t.Errorf("unknown extension: err = %v", err)
	}
	empty := e.NewMat()
	defer e.CloseMat(empty)
	if _, err := e.IMWrite(path, empty); errors.KindOf(err) != errors.KindNative {
		t.Errorf("empty image: err = %v", err)
	}
}
