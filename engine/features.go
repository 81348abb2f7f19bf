package engine

import (
	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// blobDetector reports connected regions as keypoints. MSER looks for bright
// regions, SimpleBlobDetector for dark ones.
type blobDetector struct {
	dark    bool
	minArea int
	maxArea int // zero means unbounded
}

// NewMSER returns an MSER detector with OpenCV's default area bounds.
func (e *Engine) NewMSER() native.MSER {
	return native.MSER(e.msers.Insert(&blobDetector{minArea: 60, maxArea: 14400}))
}

// CloseMSER releases d.
func (e *Engine) CloseMSER(d native.MSER) error {
	_, ok := e.msers.Remove(resource.Handle(d))
	return e.released("MSER_Close", resource.Handle(d), ok)
}

// MSERDetect detects keypoints in img.
func (e *Engine) MSERDetect(d native.MSER, img native.Mat) (native.KeyPoints, error) {
	const op = "MSER_Detect"
	det, ok := e.msers.Get(resource.Handle(d))
	if !ok {
		e.violation(op, resource.Handle(d))
	}
	return e.detectKeyPoints(op, det, img)
}

// NewSimpleBlobDetector returns a blob detector with OpenCV's default area bounds.
func (e *Engine) NewSimpleBlobDetector() native.SimpleBlobDetector {
	return native.SimpleBlobDetector(e.blobs.Insert(&blobDetector{dark: true, minArea: 25, maxArea: 5000}))
}

// CloseSimpleBlobDetector releases d.
func (e *Engine) CloseSimpleBlobDetector(d native.SimpleBlobDetector) error {
	_, ok := e.blobs.Remove(resource.Handle(d))
	return e.released("SimpleBlobDetector_Close", resource.Handle(d), ok)
}

// SimpleBlobDetectorDetect detects keypoints in img.
func (e *Engine) SimpleBlobDetectorDetect(d native.SimpleBlobDetector, img native.Mat) (native.KeyPoints, error) {
	const op = "SimpleBlobDetector_Detect"
	det, ok := e.blobs.Get(resource.Handle(d))
	if !ok {
		e.violation(op, resource.Handle(d))
	}
	return e.detectKeyPoints(op, det, img)
}

func (e *Engine) detectKeyPoints(op string, det *blobDetector, img native.Mat) (native.KeyPoints, error) {
	f, err := e.frame(op, e.mat(op, img))
	if err != nil {
		return native.KeyPoints{}, err
	}
	mask := raster.Foreground(f)
	if det.dark {
		mask = raster.Invert(mask)
	}
	var kps []native.KeyPoint
	for _, c := range raster.Components(mask) {
		if c.Area < det.minArea || det.maxArea > 0 && c.Area > det.maxArea {
			continue
		}
		kps = append(kps, native.KeyPoint{
			X:       c.Centroid[0],
			Y:       c.Centroid[1],
			Size:    c.Diameter(),
			Angle:   -1,
			Octave:  0,
			ClassID: -1,
		})
	}
	return e.keyPointArray(op, kps)
}
