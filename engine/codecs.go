package engine

import (
	"bytes"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/wippyai/cvbridge/engine/internal/raster"
	"github.com/wippyai/cvbridge/native"
)

// Image read flags, OpenCV numbering.
const (
	readUnchanged         int32 = -1
	readGrayscale         int32 = 0
	readColor             int32 = 1
	readReduced2          int32 = 16
	readReduced4          int32 = 32
	readReduced8          int32 = 64
	readIgnoreOrientation int32 = 128
)

// readShape returns the channel count and downscale factor flags ask for,
// given the decoded image.
func readShape(img image.Image, flags int32) (channels, factor int) {
	factor = 1
	switch {
	case flags == readUnchanged:
		switch img.ColorModel() {
		case color.GrayModel, color.Gray16Model:
			return 1, 1
		}
		if raster.FromImage(img, 4).Opaque() {
			return 3, 1
		}
		return 4, 1
	case flags&readReduced8 != 0:
		factor = 8
	case flags&readReduced4 != 0:
		factor = 4
	case flags&readReduced2 != 0:
		factor = 2
	}
	if flags&readColor == 0 {
		return 1, factor
	}
	return 3, factor
}

func (e *Engine) decoded(op string, img image.Image, flags int32) (native.Mat, error) {
	cn, factor := readShape(img, flags)
	if factor > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, max(b.Dx()/factor, 1), max(b.Dy()/factor, 1), imaging.Box)
	}
	f := raster.FromImage(img, cn)
	return e.newMat(op, []int{f.Rows, f.Cols}, makeType(depth8U, cn), f.Pix)
}

func decodeOptions(flags int32) []imaging.DecodeOption {
	return []imaging.DecodeOption{imaging.AutoOrientation(flags == readUnchanged || flags&readIgnoreOrientation == 0)}
}

// IMRead loads an image file. An unreadable or undecodable file yields an
// empty matrix.
func (e *Engine) IMRead(path string, flags int32) (native.Mat, error) {
	const op = "Image_IMRead"
	img, err := imaging.Open(path, decodeOptions(flags)...)
	if err != nil {
		debugf("%s %s: %v", op, path, err)
		return e.NewMat(), nil
	}
	return e.decoded(op, img, flags)
}

// IMWrite saves m in the format implied by path's extension.
func (e *Engine) IMWrite(path string, m native.Mat) (bool, error) {
	const op = "Image_IMWrite"
	f, err := e.frame(op, e.mat(op, m))
	if err != nil {
		return false, err
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return false, nativeErrf(op, "could not find a writer for %q", path)
	}
	if err := imaging.Save(f.Image(), path); err != nil {
		debugf("%s %s: %v", op, path, err)
		return false, nil
	}
	return true, nil
}

// IMEncode encodes m into a new host buffer the caller releases with
// ReleaseByteArray.
func (e *Engine) IMEncode(ext string, m native.Mat) (native.ByteArray, error) {
	const op = "Image_IMEncode"
	f, err := e.frame(op, e.mat(op, m))
	if err != nil {
		return native.ByteArray{}, err
	}
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
	if err != nil {
		return native.ByteArray{}, nativeErrf(op, "could not find an encoder for %q", ext)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, f.Image(), format); err != nil {
		return native.ByteArray{}, nativeErr(op, err)
	}
	return e.byteArray(op, buf.Bytes())
}

// IMDecode decodes an encoded image staged in host memory. The buffer stays
// owned by the caller.
func (e *Engine) IMDecode(buf native.ByteArray, flags int32) (native.Mat, error) {
	const op = "Image_IMDecode"
	if buf.Data == 0 || buf.Length <= 0 {
		return 0, nativeErrf(op, "buffer is empty")
	}
	raw, err := e.host.Copy(uint32(buf.Data), uint32(buf.Length))
	if err != nil {
		return 0, nativeErr(op, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw), decodeOptions(flags)...)
	if err != nil {
		debugf("%s: %v", op, err)
		return e.NewMat(), nil
	}
	return e.decoded(op, img, flags)
}
