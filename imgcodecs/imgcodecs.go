// Package imgcodecs reads, writes, encodes and decodes images.
package imgcodecs

import (
	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/codes"
	"github.com/wippyai/cvbridge/internal/marshal"
	"github.com/wippyai/cvbridge/native"
)

// ImageReadMode controls the channels and scale of a decoded image.
type ImageReadMode int32

const (
	IMReadUnchanged         ImageReadMode = -1
	IMReadGrayScale         ImageReadMode = 0
	IMReadColor             ImageReadMode = 1
	IMReadAnyDepth          ImageReadMode = 2
	IMReadAnyColor          ImageReadMode = 4
	IMReadLoadGDAL          ImageReadMode = 8
	IMReadReducedGrayscale2 ImageReadMode = 16
	IMReadReducedColor2     ImageReadMode = 17
	IMReadReducedGrayscale4 ImageReadMode = 32
	IMReadReducedColor4     ImageReadMode = 33
	IMReadReducedGrayscale8 ImageReadMode = 64
	IMReadReducedColor8     ImageReadMode = 65
	IMReadIgnoreOrientation ImageReadMode = 128
)

var readModes = codes.New("ImageReadMode",
	codes.Entry[ImageReadMode]{Value: IMReadUnchanged, Name: "IMReadUnchanged"},
	codes.Entry[ImageReadMode]{Value: IMReadGrayScale, Name: "IMReadGrayScale"},
	codes.Entry[ImageReadMode]{Value: IMReadColor, Name: "IMReadColor"},
	codes.Entry[ImageReadMode]{Value: IMReadAnyDepth, Name: "IMReadAnyDepth"},
	codes.Entry[ImageReadMode]{Value: IMReadAnyColor, Name: "IMReadAnyColor"},
	codes.Entry[ImageReadMode]{Value: IMReadLoadGDAL, Name: "IMReadLoadGDAL"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedGrayscale2, Name: "IMReadReducedGrayscale2"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedColor2, Name: "IMReadReducedColor2"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedGrayscale4, Name: "IMReadReducedGrayscale4"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedColor4, Name: "IMReadReducedColor4"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedGrayscale8, Name: "IMReadReducedGrayscale8"},
	codes.Entry[ImageReadMode]{Value: IMReadReducedColor8, Name: "IMReadReducedColor8"},
	codes.Entry[ImageReadMode]{Value: IMReadIgnoreOrientation, Name: "IMReadIgnoreOrientation"},
)

// ParseImageReadMode decodes a read mode. Combined flags do not decode.
func ParseImageReadMode(code int32) (ImageReadMode, error) { return readModes.Decode(code) }

func (m ImageReadMode) String() string { return readModes.Name(m) }

// FileExt is an encoder selector such as ".png".
type FileExt string

const (
	PNGFileExt  FileExt = ".png"
	JPEGFileExt FileExt = ".jpg"
	GIFFileExt  FileExt = ".gif"
	BMPFileExt  FileExt = ".bmp"
	TIFFFileExt FileExt = ".tif"
)

// IMRead loads the image at path. A missing file fails with not_found; a
// file that exists but does not decode yields an empty Mat.
func IMRead(path string, mode ImageReadMode) (*core.Mat, error) {
	if err := marshal.File(path); err != nil {
		return nil, err
	}
	lib := native.Default()
	h, err := lib.IMRead(path, int32(mode))
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(lib, h), nil
}

// IMWrite saves img in the format implied by path's extension.
func IMWrite(path string, img *core.Mat) error {
	const op = "Image_IMWrite"
	if err := marshal.Path(path); err != nil {
		return err
	}
	ok, err := img.Library().IMWrite(path, img.Ptr())
	if err != nil {
		return err
	}
	if !ok {
		return errors.Native(op, "could not write "+path)
	}
	return nil
}

// IMEncode encodes img into a new byte slice.
func IMEncode(ext FileExt, img *core.Mat) ([]byte, error) {
	if err := marshal.CString(string(ext)); err != nil {
		return nil, err
	}
	lib := img.Library()
	buf, err := lib.IMEncode(string(ext), img.Ptr())
	if err != nil {
		return nil, err
	}
	return marshal.CopyBytes(lib, buf)
}

// IMDecode decodes an encoded image. A buffer that does not decode yields
// an empty Mat; an empty buffer is an error.
func IMDecode(buf []byte, mode ImageReadMode) (*core.Mat, error) {
	lib := native.Default()
	st := marshal.NewStaging()
	defer st.FreeAndRelease(lib.Allocator())

	arr, err := marshal.StageBytes(lib, st, buf)
	if err != nil {
		return nil, err
	}
	h, err := lib.IMDecode(arr, int32(mode))
	if err != nil {
		return nil, err
	}
	return core.MatFromNative(lib, h), nil
}
