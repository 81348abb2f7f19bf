package engine

import (
	"github.com/wippyai/cvbridge/engine/internal/raster"
)

// frame reads an 8-bit 1, 3 or 4 channel matrix as a raster frame.
func (e *Engine) frame(op string, h *matHeader) (raster.Frame, error) {
	if h.empty() {
		return raster.Frame{}, nativeErrf(op, "matrix is empty")
	}
	cn := channelsOf(h.typ)
	if len(h.dims) != 2 || depthOf(h.typ) != depth8U || cn == 2 {
		return raster.Frame{}, nativeErrf(op, "expected an 8-bit image with 1, 3 or 4 channels, got type %d", h.typ)
	}
	b, err := h.read()
	if err != nil {
		return raster.Frame{}, nativeErr(op, err)
	}
	return raster.Frame{Rows: h.rows(), Cols: h.cols(), Channels: cn, Pix: b}, nil
}

// store writes f into h, reallocating h to the frame's shape when needed.
func (e *Engine) store(op string, h *matHeader, f raster.Frame) error {
	if _, err := e.create(h, []int{f.Rows, f.Cols}, makeType(depth8U, f.Channels)); err != nil {
		return nativeErr(op, err)
	}
	return nativeErr(op, h.write(f.Pix))
}

// planes reads any 2-D matrix as float64 values, channel-interleaved.
func (e *Engine) planes(op string, h *matHeader) ([]float64, error) {
	if h.empty() || len(h.dims) != 2 {
		return nil, nativeErrf(op, "expected a non-empty 2-dimensional matrix")
	}
	b, err := h.read()
	if err != nil {
		return nil, nativeErr(op, err)
	}
	return decodeValues(b, depthOf(h.typ)), nil
}

func (e *Engine) storePlanes(op string, h *matHeader, rows, cols int, typ int32, vals []float64) error {
	if _, err := e.create(h, []int{rows, cols}, typ); err != nil {
		return nativeErr(op, err)
	}
	return nativeErr(op, h.write(encodeValues(vals, depthOf(typ))))
}
