package engine

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"
	"github.com/wippyai/cvbridge/resource"
)

// netFile is the YAML network description read by both loaders.
type netFile struct {
	Name   string      `yaml:"name"`
	Layers []layerSpec `yaml:"layers"`
}

type layerSpec struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Bottom string  `yaml:"bottom"`
	Scale  float64 `yaml:"scale"`
}

var layerTypes = map[string]bool{
	"Input":   true,
	"Flatten": true,
	"ReLU":    true,
	"Scale":   true,
	"Softmax": true,
}

// network is a loaded layer graph plus the blobs bound to its inputs.
// Bound blobs hold a reference on their storage until replaced or dropped.
type network struct {
	name   string
	layers []layerSpec
	inputs map[string]*matHeader
}

// Drop implements resource.Dropper.
func (n *network) Drop() {
	for k, h := range n.inputs {
		h.Drop()
		delete(n.inputs, k)
	}
}

func parseNet(path string) (*network, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f netFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("%s: no layers", path)
	}
	seen := make(map[string]bool, len(f.Layers))
	for i, l := range f.Layers {
		if l.Name == "" {
			return nil, fmt.Errorf("%s: layer %d has no name", path, i)
		}
		if !layerTypes[l.Type] {
			return nil, fmt.Errorf("%s: layer %s: unknown type %q", path, l.Name, l.Type)
		}
		if seen[l.Name] {
			return nil, fmt.Errorf("%s: duplicate layer %s", path, l.Name)
		}
		if l.Bottom != "" && !seen[l.Bottom] {
			return nil, fmt.Errorf("%s: layer %s: bottom %s is not defined before it", path, l.Name, l.Bottom)
		}
		if i == 0 && l.Type != "Input" {
			return nil, fmt.Errorf("%s: first layer must be Input", path)
		}
		seen[l.Name] = true
	}
	return &network{name: f.Name, layers: f.Layers, inputs: map[string]*matHeader{}}, nil
}

// ReadNetFromCaffe loads a network from a description and a weights file.
func (e *Engine) ReadNetFromCaffe(prototxt, model string) (native.Net, error) {
	if _, err := os.Stat(model); err != nil {
		return 0, errors.InvalidModel(model, err)
	}
	return e.readNet(prototxt)
}

// ReadNetFromTensorflow loads a network from a single model file.
func (e *Engine) ReadNetFromTensorflow(model string) (native.Net, error) {
	return e.readNet(model)
}

func (e *Engine) readNet(path string) (native.Net, error) {
	n, err := parseNet(path)
	if err != nil {
		return 0, errors.InvalidModel(path, err)
	}
	debugf("net %q loaded with %d layers", n.name, len(n.layers))
	return native.Net(e.nets.Insert(n)), nil
}

func (e *Engine) net(op string, n native.Net) *network {
	nn, ok := e.nets.Get(resource.Handle(n))
	if !ok {
		e.violation(op, resource.Handle(n))
	}
	return nn
}

// CloseNet releases n and any blobs bound to it.
func (e *Engine) CloseNet(n native.Net) error {
	_, ok := e.nets.Remove(resource.Handle(n))
	return e.released("Net_Close", resource.Handle(n), ok)
}

// NetEmpty reports whether n has no layers.
func (e *Engine) NetEmpty(n native.Net) bool {
	return len(e.net("Net_Empty", n).layers) == 0
}

// NetSetInput binds blob to the input layer called name, or to the first
// input layer when name is empty.
func (e *Engine) NetSetInput(n native.Net, blob native.Mat, name string) error {
	const op = "Net_SetInput"
	nn := e.net(op, n)
	h := e.mat(op, blob)
	if name == "" {
		name = nn.layers[0].Name
	}
	if l := nn.layer(name); l == nil || l.Type != "Input" {
		return nativeErrf(op, "no input layer named %q", name)
	}
	if h.empty() || depthOf(h.typ) != depth32F {
		return nativeErrf(op, "input must be a non-empty 32-bit float blob")
	}
	if old := nn.inputs[name]; old != nil {
		old.Drop()
	}
	bound := *h
	bound.dims = append([]int(nil), h.dims...)
	bound.data = h.data.retain()
	nn.inputs[name] = &bound
	return nil
}

func (n *network) layer(name string) *layerSpec {
	for i := range n.layers {
		if n.layers[i].Name == name {
			return &n.layers[i]
		}
	}
	return nil
}

// tensor is a dense float blob flowing through a forward pass.
type tensor struct {
	dims []int
	vals []float64
}

// NetForward runs the network up to outputName (the last layer when empty)
// and returns that layer's output.
func (e *Engine) NetForward(n native.Net, outputName string) (native.Mat, error) {
	const op = "Net_Forward"
	nn := e.net(op, n)
	if outputName == "" {
		outputName = nn.layers[len(nn.layers)-1].Name
	}
	if nn.layer(outputName) == nil {
		return 0, nativeErrf(op, "no layer named %q", outputName)
	}

	outputs := make(map[string]tensor, len(nn.layers))
	var prev string
	for _, l := range nn.layers {
		bottom := l.Bottom
		if bottom == "" {
			bottom = prev
		}
		var in tensor
		if l.Type == "Input" {
			h := nn.inputs[l.Name]
			if h == nil {
				return 0, nativeErrf(op, "input %q is not set", l.Name)
			}
			b, err := h.read()
			if err != nil {
				return 0, nativeErr(op, err)
			}
			in = tensor{dims: append([]int(nil), h.dims...), vals: decodeValues(b, depthOf(h.typ))}
		} else {
			in = outputs[bottom]
		}
		out, err := runLayer(l, in)
		if err != nil {
			return 0, nativeErrf(op, "layer %s: %v", l.Name, err)
		}
		outputs[l.Name] = out
		prev = l.Name
		if l.Name == outputName {
			break
		}
	}

	out := outputs[outputName]
	return e.newMat(op, out.dims, makeType(depth32F, 1), encodeValues(out.vals, depth32F))
}

func runLayer(l layerSpec, in tensor) (tensor, error) {
	if len(in.dims) == 0 {
		return tensor{}, fmt.Errorf("empty input")
	}
	out := tensor{dims: append([]int(nil), in.dims...), vals: make([]float64, len(in.vals))}
	switch l.Type {
	case "Input":
		copy(out.vals, in.vals)
	case "Flatten":
		copy(out.vals, in.vals)
		out.dims = []int{in.dims[0], len(in.vals) / max(in.dims[0], 1)}
	case "ReLU":
		for i, v := range in.vals {
			out.vals[i] = math.Max(v, 0)
		}
	case "Scale":
		s := l.Scale
		if s == 0 {
			s = 1
		}
		for i, v := range in.vals {
			out.vals[i] = v * s
		}
	case "Softmax":
		per := len(in.vals) / max(in.dims[0], 1)
		for start := 0; start < len(in.vals); start += per {
			softmax(out.vals[start:start+per], in.vals[start:start+per])
		}
	}
	return out, nil
}

func softmax(dst, src []float64) {
	peak := math.Inf(-1)
	for _, v := range src {
		peak = math.Max(peak, v)
	}
	var sum float64
	for i, v := range src {
		dst[i] = math.Exp(v - peak)
		sum += dst[i]
	}
	for i := range dst {
		dst[i] /= sum
	}
}

// BlobFromImage converts an 8-bit image to a 1xCxHxW float blob.
func (e *Engine) BlobFromImage(img native.Mat, scale float64, size native.Size, mean native.Scalar, swapRB, crop bool) (native.Mat, error) {
	const op = "BlobFromImage"
	f, err := e.frame(op, e.mat(op, img))
	if err != nil {
		return 0, err
	}
	if w, h := int(size.Width), int(size.Height); w > 0 && h > 0 && (w != f.Cols || h != f.Rows) {
		if crop {
			k := math.Max(float64(w)/float64(f.Cols), float64(h)/float64(f.Rows))
			cols, rows := int(math.Round(float64(f.Cols)*k)), int(math.Round(float64(f.Rows)*k))
			f = cropCenter(raster.Resize(f, cols, rows, raster.Linear), w, h)
		} else {
			f = raster.Resize(f, w, h, raster.Linear)
		}
	}

	cn := f.Channels
	m := [4]float64{mean.Val1, mean.Val2, mean.Val3, mean.Val4}
	plane := f.Rows * f.Cols
	vals := make([]float64, cn*plane)
	for c := 0; c < cn; c++ {
		src := c
		if swapRB && cn >= 3 && c != 1 && c < 3 {
			src = 2 - c
		}
		for i := 0; i < plane; i++ {
			vals[c*plane+i] = (float64(f.Pix[i*cn+src]) - m[c]) * scale
		}
	}
	return e.newMat(op, []int{1, cn, f.Rows, f.Cols}, makeType(depth32F, 1), encodeValues(vals, depth32F))
}

func cropCenter(f raster.Frame, w, h int) raster.Frame {
	x0, y0 := (f.Cols-w)/2, (f.Rows-h)/2
	out := raster.NewFrame(h, w, f.Channels)
	for y := 0; y < h; y++ {
		row := f.Pix[((y0+y)*f.Cols+x0)*f.Channels:]
		copy(out.Pix[y*w*f.Channels:(y+1)*w*f.Channels], row)
	}
	return out
}

// GetBlobChannel returns channel chIdx of image imgIdx as an HxW view
// sharing the blob's storage.
func (e *Engine) GetBlobChannel(blob native.Mat, imgIdx, chIdx int32) (native.Mat, error) {
	const op = "GetBlobChannel"
	h := e.mat(op, blob)
	if len(h.dims) != 4 || h.data == nil {
		return 0, nativeErrf(op, "expected a 4-dimensional blob")
	}
	n, c, rows, cols := h.dims[0], h.dims[1], h.dims[2], h.dims[3]
	if imgIdx < 0 || int(imgIdx) >= n {
		return 0, errors.OutOfBounds(errors.PhaseNative, []string{op, "image"}, int(imgIdx), n)
	}
	if chIdx < 0 || int(chIdx) >= c {
		return 0, errors.OutOfBounds(errors.PhaseNative, []string{op, "channel"}, int(chIdx), c)
	}
	es := elemSize(h.typ)
	view := &matHeader{
		data:   h.data.retain(),
		dims:   []int{rows, cols},
		typ:    h.typ,
		offset: h.offset + uint32((int(imgIdx)*c+int(chIdx))*rows*cols*es),
		step:   uint32(cols * es),
	}
	return e.register(view), nil
}

// GetBlobSize returns the blob's N, C, H, W.
func (e *Engine) GetBlobSize(blob native.Mat) (native.Scalar, error) {
	const op = "GetBlobSize"
	h := e.mat(op, blob)
	if len(h.dims) != 4 {
		return native.Scalar{}, nativeErrf(op, "expected a 4-dimensional blob, got %d dimensions", len(h.dims))
	}
	return native.Scalar{
		Val1: float64(h.dims[0]),
		Val2: float64(h.dims[1]),
		Val3: float64(h.dims[2]),
		Val4: float64(h.dims[3]),
	}, nil
}
