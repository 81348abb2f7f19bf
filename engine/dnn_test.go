package engine

import (
	"math"
	"testing"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
)

const testNet = `name: tiny
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

func TestParseNet_Errors(t *testing.T) {
	tests := map[string]string{
		"no layers":       "name: x\n",
		"unknown type":    "layers:\n  - {name: a, type: Input}\n  - {name: b, type: Conv}\n",
		"first not input": "layers:\n  - {name: a, type: ReLU}\n",
		"duplicate":       "layers:\n  - {name: a, type: Input}\n  - {name: a, type: ReLU}\n",
		"forward bottom":  "layers:\n  - {name: a, type: Input}\n  - {name: b, type: ReLU, bottom: c}\n",
		"not yaml":        "layers: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseNet(writeFile(t, "net.yaml", content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadNet(t *testing.T) {
	e := newEngine(t)
	proto := writeFile(t, "net.prototxt", testNet)

	if _, err := e.ReadNetFromCaffe(proto, "/nonexistent/weights.caffemodel"); errors.KindOf(err) != errors.KindInvalidModel {
		t.Errorf("missing weights: err = %v", err)
	}
	if _, err := e.ReadNetFromTensorflow(writeFile(t, "bad.pb", "layers: [")); errors.KindOf(err) != errors.KindInvalidModel {
		t.Errorf("bad model: err = %v", err)
	}

	n, err := e.ReadNetFromCaffe(proto, writeFile(t, "w.caffemodel", "weights"))
	if err != nil {
		t.Fatal(err)
	}
	if e.NetEmpty(n) {
		t.Error("loaded net reports empty")
	}
	if err := e.CloseNet(n); err != nil {
		t.Fatal(err)
	}
	if err := e.CloseNet(n); errors.KindOf(err) != errors.KindDoubleRelease {
		t.Errorf("second close: err = %v", err)
	}
}

func TestNetForward(t *testing.T) {
	e := newEngine(t)
	n, err := e.ReadNetFromTensorflow(writeFile(t, "net.yaml", testNet))
	if err != nil {
		t.Fatal(err)
	}
	defer e.CloseNet(n)

	img := mustMat(t)(e.NewMatFromBytes(2, 2, makeType(depth8U, 1), stage(t, e, []byte{1, 2, 3, 4})))
	defer e.CloseMat(img)
	blob, err := e.BlobFromImage(img, 1, native.Size{}, native.Scalar{}, false, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.NetForward(n, ""); errors.KindOf(err) != errors.KindNative {
		t.Errorf("forward without input: err = %v", err)
	}
	if err := e.NetSetInput(n, blob, "missing"); errors.KindOf(err) != errors.KindNative {
		t.Errorf("unknown input: err = %v", err)
	}
	if err := e.NetSetInput(n, blob, ""); err != nil {
		t.Fatal(err)
	}
	// the net keeps its own reference to the blob
	if err := e.CloseMat(blob); err != nil {
		t.Fatal(err)
	}

	scaled, err := e.NetForward(n, "scaled")
	if err != nil {
		t.Fatal(err)
	}
	defer e.CloseMat(scaled)
	if e.MatRows(scaled) != 1 || e.MatCols(scaled) != 4 {
		t.Errorf("scaled shape = %dx%d, want 1x4", e.MatRows(scaled), e.MatCols(scaled))
	}
	for i, want := range []float32{2, 4, 6, 8} {
		if v, _ := e.MatGetFloat(scaled, 0, int32(i)); v != want {
			t.Errorf("scaled[%d] = %v, want %v", i, v, want)
		}
	}

	prob, err := e.NetForward(n, "")
	if err != nil {
		t.Fatal(err)
	}
	defer e.CloseMat(prob)
	var sum float64
	prev := float32(-1)
	for i := int32(0); i < 4; i++ {
		v, _ := e.MatGetFloat(prob, 0, i)
		if v <= prev {
			t.Errorf("softmax not increasing at %d", i)
		}
		prev = v
		sum += float64(v)
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("softmax sums to %v", sum)
	}

	if _, err := e.NetForward(n, "nope"); errors.KindOf(err) != errors.KindNative {
		t.Errorf("unknown output: err = %v", err)
	}
}

func TestBlobFromImage(t *testing.T) {
	e := newEngine(t)
	// 1x2 BGR image
	img := mustMat(t)(e.NewMatFromBytes(1, 2, makeType(depth8U, 3), stage(t, e, []byte{10, 20, 30, 40, 50, 60})))
	defer e.CloseMat(img)

	blob, err := e.BlobFromImage(img, 0.5, native.Size{}, native.Scalar{Val1: 10}, true, false)
	if err != nil {
		t.Fatal(err)
	}
	size, err := e.GetBlobSize(blob)
	if err != nil {
		t.Fatal(err)
	}
	if size != (native.Scalar{Val1: 1, Val2: 3, Val3: 1, Val4: 2}) {
		t.Errorf("blob size = %+v", size)
	}
	if e.MatRows(blob) != -1 || e.MatCols(blob) != -1 {
		t.Errorf("4-D blob rows/cols = %d/%d, want -1", e.MatRows(blob), e.MatCols(blob))
	}

	// channel 0 after swapRB is red, minus mean 10, times 0.5
	red, err := e.GetBlobChannel(blob, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.CloseMat(blob); err != nil {
		t.Fatal(err)
	}
	for i, want := range []float32{10, 25} {
		if v, _ := e.MatGetFloat(red, 0, int32(i)); v != want {
			t.Errorf("red[%d] = %v, want %v", i, v, want)
		}
	}
	if err := e.CloseMat(red); err != nil {
		t.Fatal(err)
	}
	if s := e.Stats(); s.LiveHandles != 1 {
		t.Errorf("live handles = %d, want only the image", s.LiveHandles)
	}

	if _, err := e.GetBlobSize(img); errors.KindOf(err) != errors.KindNative {
		t.Errorf("blob size of a 2-D mat: err = %v", err)
	}
}

func TestBlobFromImage_ResizeAndCrop(t *testing.T) {
	e := newEngine(t)
	img := mustMat(t)(e.NewMatWithSizeFromScalar(native.Scalar{Val1: 100}, 20, 40, makeType(depth8U, 1)))
	defer e.CloseMat(img)

	blob, err := e.BlobFromImage(img, 1, native.Size{Width: 10, Height: 10}, native.Scalar{}, false, true)
	if err != nil {
		t.Fatal(err)
	}
	defer e.CloseMat(blob)
	size, _ := e.GetBlobSize(blob)
	if size.Val3 != 10 || size.Val4 != 10 {
		t.Errorf("cropped blob = %+v, want 10x10", size)
	}

	if _, err := e.GetBlobChannel(blob, 0, 1); errors.KindOf(err) != errors.KindOutOfBounds {
		t.Errorf("channel out of range: err = %v", err)
	}
}
