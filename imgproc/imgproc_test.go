package imgproc

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/codes/codestest"
	"github.com/wippyai/cvbridge/native"
)

func useEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(context.Background(), nil)
	require.NoError(t, err)
	restore := native.Swap(e)
	t.Cleanup(func() {
		restore()
		_ = e.Close(context.Background())
	})
	return e
}

func matFrom(t *testing.T, rows, cols int, mt core.MatType, data []byte) *core.Mat {
	t.Helper()
	m, err := core.NewMatFromBytes(rows, cols, mt, data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func empty(t *testing.T) *core.Mat {
	t.Helper()
	m := core.NewMat()
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestCvtColor(t *testing.T) {
	useEngine(t)

	src := matFrom(t, 1, 3, core.MatTypeCV8UC3, []byte{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	})
	gray := empty(t)
	require.NoError(t, CvtColor(src, gray, ColorBGRToGray))
	b, err := gray.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{29, 150, 76}, b)

	err = CvtColor(src, empty(t), ColorBGRToBGR565)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	err = CvtColor(gray, empty(t), ColorBGRToHSV)
	assert.Equal(t, errors.KindNative, errors.KindOf(err), "channel mismatch")
}

func TestThreshold(t *testing.T) {
	useEngine(t)

	src := matFrom(t, 1, 3, core.MatTypeCV8UC1, []byte{10, 100, 200})
	dst := empty(t)
	used, err := Threshold(src, dst, 100, 255, ThresholdBinary)
	require.NoError(t, err)
	assert.Equal(t, 100.0, used)
	b, err := dst.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255}, b)

	used, err = Threshold(src, dst, 0, 255, ThresholdBinary|ThresholdOtsu)
	require.NoError(t, err)
	assert.Less(t, used, 200.0)
	assert.GreaterOrEqual(t, used, 10.0)
}

func TestMatchTemplate(t *testing.T) {
	e := useEngine(t)

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i * 9)
	}
	img := matFrom(t, 4, 4, core.MatTypeCV8UC1, data)
	templ := matFrom(t, 2, 2, core.MatTypeCV8UC1, []byte{45, 54, 81, 90})
	result := empty(t)

	live := e.Stats().LiveHandles
	require.NoError(t, MatchTemplate(img, templ, result, TmSqdiff, nil))
	assert.Equal(t, live, e.Stats().LiveHandles, "temporary mask must be released")

	assert.Equal(t, 3, result.Rows())
	assert.Equal(t, 3, result.Cols())
	lo, _, loAt, _, err := core.MinMaxLoc(result)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, image.Pt(1, 1), loAt)
}

func TestResizeAndPyramids(t *testing.T) {
	useEngine(t)

	src, err := core.NewMatWithSizeFromScalar(core.NewScalar(80, 0, 0, 0), 8, 8, core.MatTypeCV8UC1)
	require.NoError(t, err)
	defer src.Close()

	half := empty(t)
	require.NoError(t, Resize(src, half, core.Size{}, 0.5, 0.5, InterpolationLinear))
	assert.Equal(t, []int{4, 4}, half.Size())

	down := empty(t)
	require.NoError(t, PyrDown(src, down, core.Size{}, core.BorderDefault))
	assert.Equal(t, []int{4, 4}, down.Size())

	up := empty(t)
	require.NoError(t, PyrUp(src, up, core.Size{}, core.BorderDefault))
	assert.Equal(t, []int{16, 16}, up.Size())
}

func TestFilters(t *testing.T) {
	useEngine(t)

	src, err := core.NewMatWithSizeFromScalar(core.NewScalar(50, 0, 0, 0), 9, 9, core.MatTypeCV8UC1)
	require.NoError(t, err)
	defer src.Close()

	for name, f := range map[string]func(dst *core.Mat) error{
		"gaussian":  func(dst *core.Mat) error { return GaussianBlur(src, dst, core.NewSize(3, 3), 0, 0, core.BorderDefault) },
		"median":    func(dst *core.Mat) error { return MedianBlur(src, dst, 3) },
		"laplacian": func(dst *core.Mat) error { return Laplacian(src, dst, -1, 1, 1, 0, core.BorderDefault) },
		"scharr":    func(dst *core.Mat) error { return Scharr(src, dst, -1, 1, 0, 1, 0, core.BorderDefault) },
		"canny":     func(dst *core.Mat) error { return Canny(src, dst, 50, 150) },
	} {
		t.Run(name, func(t *testing.T) {
			dst := empty(t)
			require.NoError(t, f(dst))
			assert.Equal(t, []int{9, 9}, dst.Size())
		})
	}

	err = GaussianBlur(src, empty(t), core.NewSize(4, 4), 0, 0, core.BorderDefault)
	assert.Equal(t, errors.KindNative, errors.KindOf(err), "even kernel")

	err = GoodFeaturesToTrack(src, empty(t), 10, 0.01, 5)
	assert.Equal(t, errors.KindNative, errors.KindOf(err))
}

func TestDrawing(t *testing.T) {
	useEngine(t)

	img, err := core.NewMatWithSizeFromScalar(core.NewScalar(0, 0, 0, 0), 20, 20, core.MatTypeCV8UC3)
	require.NoError(t, err)
	defer img.Close()

	red := color.RGBA{R: 255, A: 255}
	require.NoError(t, Rectangle(img, image.Rect(4, 4, 16, 16), red, -1))

	b, err := img.ToBytes()
	require.NoError(t, err)
	px := func(x, y int) []byte { i := (y*20 + x) * 3; return b[i : i+3] }
	assert.Equal(t, []byte{0, 0, 255}, px(10, 10), "BGR order")
	assert.Equal(t, []byte{0, 0, 0}, px(1, 1))

	blue := color.RGBA{B: 255, A: 255}
	require.NoError(t, Circle(img, image.Pt(10, 10), 3, blue, -1))
	require.NoError(t, Line(img, image.Pt(0, 19), image.Pt(19, 19), blue, 1))
	require.NoError(t, Ellipse(img, image.Pt(10, 10), image.Pt(6, 3), 30, 0, 360, blue, 1))

	b, err = img.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0}, px(10, 10))
}

func TestArcLength(t *testing.T) {
	e := useEngine(t)
	before := e.Stats().HostBytes

	square := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	closed, err := ArcLength(square, true)
	require.NoError(t, err)
	assert.InDelta(t, 40, closed, 1e-9)

	open, err := ArcLength(square, false)
	require.NoError(t, err)
	assert.InDelta(t, 30, open, 1e-9)

	assert.Equal(t, before, e.Stats().HostBytes, "staged points must be freed")

	zero, err := ArcLength(nil, true)
	require.NoError(t, err)
	assert.Zero(t, zero)
}

func TestCodes(t *testing.T) {
	assert.Equal(t, ColorConversionCode(139), ColorCvtMax)
	assert.Equal(t, ColorBGRToBGRA, ColorRGBToRGBA)
	assert.Equal(t, "ColorBGRToBGRA", ColorRGBToRGBA.String())
	assert.Equal(t, "ColorBGRToGray", ColorBGRToGray.String())

	_, err := ParseColorConversionCode(42)
	assert.Equal(t, errors.KindInvalidEnum, errors.KindOf(err))
	c, err := ParseColorConversionCode(40)
	require.NoError(t, err)
	assert.Equal(t, ColorBGRToHSV, c)

	assert.Equal(t, "ThresholdBinaryInv|ThresholdOtsu", (ThresholdBinaryInv | ThresholdOtsu).String())
	assert.Equal(t, ThresholdTrunc, (ThresholdTrunc | ThresholdTriangle).Rule())
	_, err = ParseThresholdType(int32(ThresholdTrunc | ThresholdOtsu))
	assert.Equal(t, errors.KindInvalidEnum, errors.KindOf(err))

	assert.Equal(t, InterpolationLinear, InterpolationDefault)
	assert.Equal(t, "TmCcoeffNormed", TmCcoeffNormed.String())
}

func TestForeignOperandsRejected(t *testing.T) {
	useEngine(t)
	src := matFrom(t, 2, 2, core.MatTypeCV8UC1, []byte{1, 2, 3, 4})
	useEngine(t)
	dst := empty(t)

	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(CvtColor(src, dst, ColorGrayToBGR)))
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(MedianBlur(src, dst, 3)))
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(Canny(src, dst, 10, 20)))
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(MatchTemplate(src, src, dst, TmSqdiff, nil)))
	_, err := Threshold(src, dst, 1, 255, ThresholdBinary)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
	assert.True(t, dst.Empty(), "foreign destination must stay untouched")
}

func TestCodeSets_RoundTrip(t *testing.T) {
	sets := map[string]func(*testing.T){
		"ColorConversionCode": func(t *testing.T) { codestest.RoundTrip(t, colorCodes) },
		"ThresholdType": func(t *testing.T) { codestest.RoundTrip(t, thresholdTypes) },
		"InterpolationFlag": func(t *testing.T) { codestest.RoundTrip(t, interpolationFlags) },
		"TemplateMatchMode": func(t *testing.T) { codestest.RoundTrip(t, matchModes) },
	}
	for name, check := range sets {
		t.Run(name, check)
	}
}
