package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/imgproc"
)

// op transforms src into a new matrix owned by the caller.
type op struct {
	name  string
	about string
	apply func(src *core.Mat) (*core.Mat, error)
}

var ops = map[string]op{
	"copy": {"copy", "copy unchanged", func(src *core.Mat) (*core.Mat, error) {
		return src.Clone()
	}},
	"gray": {"gray", "BGR to grayscale", gray},
	"blur": {"blur", "5x5 Gaussian blur", func(src *core.Mat) (*core.Mat, error) {
		return into(func(dst *core.Mat) error {
			return imgproc.GaussianBlur(src, dst, core.NewSize(5, 5), 1.5, 1.5, core.BorderDefault)
		})
	}},
	"median": {"median", "5x5 median filter", func(src *core.Mat) (*core.Mat, error) {
		return into(func(dst *core.Mat) error { return imgproc.MedianBlur(src, dst, 5) })
	}},
	"canny": {"canny", "Canny edges on grayscale", func(src *core.Mat) (*core.Mat, error) {
		return viaGray(src, func(g, dst *core.Mat) error { return imgproc.Canny(g, dst, 50, 150) })
	}},
	"otsu": {"otsu", "Otsu binarization on grayscale", func(src *core.Mat) (*core.Mat, error) {
		return viaGray(src, func(g, dst *core.Mat) error {
			_, err := imgproc.Threshold(g, dst, 0, 255, imgproc.ThresholdBinary|imgproc.ThresholdOtsu)
			return err
		})
	}},
	"pyrdown": {"pyrdown", "halve with Gaussian pyramid", func(src *core.Mat) (*core.Mat, error) {
		return into(func(dst *core.Mat) error {
			return imgproc.PyrDown(src, dst, core.Size{}, core.BorderDefault)
		})
	}},
	"half": {"half", "resize to half with area interpolation", func(src *core.Mat) (*core.Mat, error) {
		return into(func(dst *core.Mat) error {
			return imgproc.Resize(src, dst, core.Size{}, 0.5, 0.5, imgproc.InterpolationArea)
		})
	}},
}

// opNames returns the op names in sorted order.
func opNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupOp(name string) (op, error) {
	o, ok := ops[name]
	if !ok {
		return op{}, fmt.Errorf("unknown op %q (have %s)", name, strings.Join(opNames(), ", "))
	}
	return o, nil
}

// into runs f on a fresh destination and closes it if f fails.
func into(f func(dst *core.Mat) error) (*core.Mat, error) {
	dst := core.NewMat()
	if err := f(dst); err != nil {
		_ = dst.Close()
		return nil, err
	}
	return dst, nil
}

func gray(src *core.Mat) (*core.Mat, error) {
	if src.Channels() == 1 {
		return src.Clone()
	}
	return into(func(dst *core.Mat) error { return imgproc.CvtColor(src, dst, imgproc.ColorBGRToGray) })
}

func viaGray(src *core.Mat, f func(g, dst *core.Mat) error) (*core.Mat, error) {
	g, err := gray(src)
	if err != nil {
		return nil, err
	}
	defer g.Close()
	return into(func(dst *core.Mat) error { return f(g, dst) })
}

// describe summarizes a matrix for display.
func describe(m *core.Mat) string {
	if m.Empty() {
		return "empty"
	}
	mt, err := m.Type()
	if err != nil {
		return fmt.Sprintf("%dx%d (%v)", m.Cols(), m.Rows(), err)
	}
	return fmt.Sprintf("%dx%d %s", m.Cols(), m.Rows(), mt)
}
