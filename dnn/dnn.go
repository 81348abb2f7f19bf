// Package dnn wraps neural network inference.
//
// Layer names cross the boundary as ASCII; a name with other characters is
// rejected with a unicode error before any call is made.
package dnn

import (
	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// Net is a loaded network.
type Net struct {
	lib native.Library
	ref handle.Ref[native.Net]
}

func newNet(lib native.Library, h native.Net, err error) (*Net, error) {
	if err != nil {
		return nil, err
	}
	n := &Net{lib: lib}
	handle.Track(n, &n.ref, "Net", h, lib.CloseNet)
	return n, nil
}

// ReadNetFromCaffe loads a network from a description and its weights.
// A missing file fails with not_found, a file the library cannot use with
// invalid_model.
func ReadNetFromCaffe(prototxt, model string) (*Net, error) {
	if err := marshal.File(prototxt); err != nil {
		return nil, err
	}
	if err := marshal.File(model); err != nil {
		return nil, err
	}
	lib := native.Default()
	h, err := lib.ReadNetFromCaffe(prototxt, model)
	return newNet(lib, h, err)
}

// ReadNetFromTensorflow loads a network from a single model file.
func ReadNetFromTensorflow(model string) (*Net, error) {
	if err := marshal.File(model); err != nil {
		return nil, err
	}
	lib := native.Default()
	h, err := lib.ReadNetFromTensorflow(model)
	return newNet(lib, h, err)
}

// Close releases the network and the inputs bound to it.
func (n *Net) Close() error {
	return n.ref.Close()
}

// Empty reports whether the network has no layers.
func (n *Net) Empty() bool {
	return n.lib.NetEmpty(n.ref.Get("Net_Empty"))
}

// SetInput binds blob to the input layer name, or the first input layer when
// name is empty. The network keeps its own reference to the blob's storage,
// so blob may be closed afterwards.
func (n *Net) SetInput(blob *core.Mat, name string) error {
	h := n.ref.Get("Net_SetInput")
	if err := marshal.ASCII(name); err != nil {
		return err
	}
	if err := core.SameLibrary("Net_SetInput", n.lib, blob); err != nil {
		return err
	}
	return n.lib.NetSetInput(h, blob.Ptr(), name)
}

// Forward runs the network and returns the output of layer outputName, or of
// the last layer when outputName is empty.
func (n *Net) Forward(outputName string) (*core.Mat, error) {
	h := n.ref.Get("Net_Forward")
	if err := marshal.ASCII(outputName); err != nil {
		return nil, err
	}
	out, err := n.lib.NetForward(h, outputName)
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(n.lib, out), nil
}

// BlobFromImage converts img into a 1xCxHxW float blob: optionally resized
// (or center-cropped when crop is set) to size, channels swapped when swapRB
// is set, mean subtracted and the result multiplied by scale.
func BlobFromImage(img *core.Mat, scale float64, size core.Size, mean core.Scalar, swapRB, crop bool) (*core.Mat, error) {
	lib := img.Library()
	h, err := lib.BlobFromImage(img.Ptr(), scale, size.Native(), mean.Native(), swapRB, crop)
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(lib, h), nil
}

// GetBlobChannel returns channel chIdx of image imgIdx as a 2-D view sharing
// the blob's storage.
func GetBlobChannel(blob *core.Mat, imgIdx, chIdx int) (*core.Mat, error) {
	lib := blob.Library()
	h, err := lib.GetBlobChannel(blob.Ptr(), int32(imgIdx), int32(chIdx))
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(lib, h), nil
}

// GetBlobSize returns the blob's dimensions as N, C, H, W.
func GetBlobSize(blob *core.Mat) (core.Scalar, error) {
	s, err := blob.Library().GetBlobSize(blob.Ptr())
	if err != nil {
		return core.Scalar{}, err
	}
	return core.ScalarFromNative(s), nil
}
