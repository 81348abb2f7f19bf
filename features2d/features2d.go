// Package features2d wraps keypoint detectors.
package features2d

import (
	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/internal/handle"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

func keyPoints(lib native.Library, kps native.KeyPoints, err error) ([]core.KeyPoint, error) {
	if err != nil {
		return nil, err
	}
	raw, err := marshal.DrainKeyPoints(lib, kps)
	if err != nil {
		return nil, err
	}
	out := make([]core.KeyPoint, len(raw))
	for i, kp := range raw {
		out[i] = core.KeyPointFromNative(kp)
	}
	return out, nil
}

// MSER finds maximally stable extremal regions.
type MSER struct {
	lib native.Library
	ref handle.Ref[native.MSER]
}

// NewMSER returns a detector with default parameters.
func NewMSER() *MSER {
	lib := native.Default()
	d := &MSER{lib: lib}
	handle.Track(d, &d.ref, "MSER", lib.NewMSER(), lib.CloseMSER)
	return d
}

// Detect returns one keypoint per region found in img.
func (d *MSER) Detect(img *core.Mat) ([]core.KeyPoint, error) {
	h := d.ref.Get("MSER_Detect")
	if err := core.SameLibrary("MSER_Detect", d.lib, img); err != nil {
		return nil, err
	}
	kps, err := d.lib.MSERDetect(h, img.Ptr())
	return keyPoints(d.lib, kps, err)
}

// Close releases the detector.
func (d *MSER) Close() error {
	return d.ref.Close()
}

// SimpleBlobDetector finds dark blobs.
type SimpleBlobDetector struct {
	lib native.Library
	ref handle.Ref[native.SimpleBlobDetector]
}

// NewSimpleBlobDetector returns a detector with default parameters.
func NewSimpleBlobDetector() *SimpleBlobDetector {
	lib := native.Default()
	d := &SimpleBlobDetector{lib: lib}
	handle.Track(d, &d.ref, "SimpleBlobDetector", lib.NewSimpleBlobDetector(), lib.CloseSimpleBlobDetector)
	return d
}

// Detect returns one keypoint per blob found in img.
func (d *SimpleBlobDetector) Detect(img *core.Mat) ([]core.KeyPoint, error) {
	h := d.ref.Get("SimpleBlobDetector_Detect")
	if err := core.SameLibrary("SimpleBlobDetector_Detect", d.lib, img); err != nil {
		return nil, err
	}
	kps, err := d.lib.SimpleBlobDetectorDetect(h, img.Ptr())
	return keyPoints(d.lib, kps, err)
}

// Close releases the detector.
func (d *SimpleBlobDetector) Close() error {
	return d.ref.Close()
}
