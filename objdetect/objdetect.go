// Package objdetect wraps cascade classifiers.
package objdetect

import (
	"image"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// CascadeClassifier detects objects with a trained cascade.
type CascadeClassifier struct {
	lib native.Library
	ref handle.Ref[native.CascadeClassifier]
}

// NewCascadeClassifier returns a classifier with no cascade loaded.
func NewCascadeClassifier() *CascadeClassifier {
	lib := native.Default()
	c := &CascadeClassifier{lib: lib}
	handle.Track(c, &c.ref, "CascadeClassifier", lib.NewCascadeClassifier(), lib.CloseCascadeClassifier)
	return c
}

// Close releases the classifier.
func (c *CascadeClassifier) Close() error {
	return c.ref.Close()
}

// Load reads a cascade file.
//
// A path that cannot be passed to the library fails with invalid_path, a
// missing file with not_found and a file the library rejects with
// invalid_model.
func (c *CascadeClassifier) Load(path string) error {
	h := c.ref.Get("CascadeClassifier_Load")
	if err := marshal.File(path); err != nil {
		return err
	}
	ok, err := c.lib.CascadeClassifierLoad(h, path)
	if err != nil {
		return err
	}
	if !ok {
		return errors.InvalidModel(path, nil)
	}
	return nil
}

// DetectMultiScale detects objects in img with default parameters.
func (c *CascadeClassifier) DetectMultiScale(img *core.Mat) ([]image.Rectangle, error) {
	const op = "CascadeClassifier_DetectMultiScale"
	h := c.ref.Get(op)
	if err := core.SameLibrary(op, c.lib, img); err != nil {
		return nil, err
	}
	rs, err := c.lib.DetectMultiScale(h, img.Ptr())
	if err != nil {
		return nil, err
	}
	return marshal.DrainRects(c.lib, rs)
}

// DetectMultiScaleWithParams detects objects in img. scale is the step
// between search scales and must exceed 1; minSize and maxSize bound the
// objects reported, a zero value leaving that side open.
func (c *CascadeClassifier) DetectMultiScaleWithParams(img *core.Mat, scale float64,
	minNeighbors, flags int, minSize, maxSize image.Point) ([]image.Rectangle, error) {
	const op = "CascadeClassifier_DetectMultiScaleWithParams"
	h := c.ref.Get(op)
	if err := core.SameLibrary(op, c.lib, img); err != nil {
		return nil, err
	}
	rs, err := c.lib.DetectMultiScaleWithParams(h, img.Ptr(),
		scale, int32(minNeighbors), int32(flags),
		native.Size{Width: int32(minSize.X), Height: int32(minSize.Y)},
		native.Size{Width: int32(maxSize.X), Height: int32(maxSize.Y)})
	if err != nil {
		return nil, err
	}
	return marshal.DrainRects(c.lib, rs)
}
