package engine

import (
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// cascade is a loaded classifier description. Only the window size and
// feature type take part in detection.
type cascade struct {
	loaded  bool
	window  image.Point
	feature string
}

// cascadeFile matches both the current <cascade> layout and the legacy
// <size>W H</size> layout of OpenCV classifier files.
type cascadeFile struct {
	XMLName xml.Name     `xml:"opencv_storage"`
	Cascade *cascadeNode `xml:"cascade"`
	Legacy  []legacyNode `xml:",any"`
}

type cascadeNode struct {
	FeatureType string `xml:"featureType"`
	Width       int    `xml:"width"`
	Height      int    `xml:"height"`
	StageNum    int    `xml:"stageNum"`
}

type legacyNode struct {
	XMLName xml.Name
	TypeID  string `xml:"type_id,attr"`
	Size    string `xml:"size"`
}

// parseCascade reads a classifier description from path.
func parseCascade(path string) (*cascade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f cascadeFile
	if err := xml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if n := f.Cascade; n != nil {
		if n.Width <= 0 || n.Height <= 0 {
			return nil, fmt.Errorf("%s: cascade window %dx%d", path, n.Width, n.Height)
		}
		return &cascade{loaded: true, window: image.Pt(n.Width, n.Height), feature: n.FeatureType}, nil
	}
	for _, n := range f.Legacy {
		if !strings.Contains(n.TypeID, "haar") {
			continue
		}
		fields := strings.Fields(n.Size)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: malformed size %q", path, n.Size)
		}
		w, errW := strconv.Atoi(fields[0])
		h, errH := strconv.Atoi(fields[1])
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%s: malformed size %q", path, n.Size)
		}
		return &cascade{loaded: true, window: image.Pt(w, h), feature: "HAAR"}, nil
	}
	return nil, fmt.Errorf("%s: no cascade found", path)
}

// NewCascadeClassifier returns an empty classifier.
func (e *Engine) NewCascadeClassifier() native.CascadeClassifier {
	return native.CascadeClassifier(e.cascades.Insert(&cascade{}))
}

// CloseCascadeClassifier releases c.
func (e *Engine) CloseCascadeClassifier(c native.CascadeClassifier) error {
	_, ok := e.cascades.Remove(resource.Handle(c))
	return e.released("CascadeClassifier_Close", resource.Handle(c), ok)
}

func (e *Engine) cascade(op string, c native.CascadeClassifier) *cascade {
	cc, ok := e.cascades.Get(resource.Handle(c))
	if !ok {
		e.violation(op, resource.Handle(c))
	}
	return cc
}

// CascadeClassifierLoad loads a classifier file into c. It reports false,
// leaving c unchanged, when the file cannot be read or parsed.
func (e *Engine) CascadeClassifierLoad(c native.CascadeClassifier, path string) (bool, error) {
	const op = "CascadeClassifier_Load"
	cc := e.cascade(op, c)
	parsed, err := parseCascade(path)
	if err != nil {
		debugf("%s: %v", op, err)
		return false, nil
	}
	*cc = *parsed
	return true, nil
}

// DetectMultiScale detects objects with default parameters.
func (e *Engine) DetectMultiScale(c native.CascadeClassifier, img native.Mat) (native.Rects, error) {
	return e.DetectMultiScaleWithParams(c, img, 1.1, 3, 0, native.Size{}, native.Size{})
}

// DetectMultiScaleWithParams detects objects of at least minSize and at
// most maxSize (zero means unbounded).
func (e *Engine) DetectMultiScaleWithParams(c native.CascadeClassifier, img native.Mat, scale float64, minNeighbors, flags int32, minSize, maxSize native.Size) (native.Rects, error) {
	const op = "CascadeClassifier_DetectMultiScale"
	cc := e.cascade(op, c)
	h := e.mat(op, img)
	if !cc.loaded {
		return native.Rects{}, nativeErrf(op, "classifier is empty")
	}
	if scale <= 1 {
		return native.Rects{}, nativeErrf(op, "scale factor %g must exceed 1", scale)
	}
	f, err := e.frame(op, h)
	if err != nil {
		return native.Rects{}, err
	}
	found := detectRegions(f, detectParams{
		window:  cc.window,
		minSize: image.Pt(int(minSize.Width), int(minSize.Height)),
		maxSize: image.Pt(int(maxSize.Width), int(maxSize.Height)),
	})
	return e.rectArray(op, found)
}
