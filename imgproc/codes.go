package imgproc

import "github.com/wippyai/cvbridge/internal/codes"

// ColorConversionCode selects a color space conversion for CvtColor.
type ColorConversionCode int32

// Color conversion codes, OpenCV numbering. Codes sharing a value are aliases.
const (
	ColorBGRToBGRA       ColorConversionCode = 0
	ColorRGBToRGBA       ColorConversionCode = 0
	ColorBGRAToBGR       ColorConversionCode = 1
	ColorRGBAToRGB       ColorConversionCode = 1
	ColorBGRToRGBA       ColorConversionCode = 2
	ColorRGBToBGRA       ColorConversionCode = 2
	ColorRGBAToBGR       ColorConversionCode = 3
	ColorBGRAToRGB       ColorConversionCode = 3
	ColorBGRToRGB        ColorConversionCode = 4
	ColorRGBToBGR        ColorConversionCode = 4
	ColorBGRAToRGBA      ColorConversionCode = 5
	ColorRGBAToBGRA      ColorConversionCode = 5
	ColorBGRToGray       ColorConversionCode = 6
	ColorRGBToGray       ColorConversionCode = 7
	ColorGrayToBGR       ColorConversionCode = 8
	ColorGrayToRGB       ColorConversionCode = 8
	ColorGrayToBGRA      ColorConversionCode = 9
	ColorGrayToRGBA      ColorConversionCode = 9
	ColorBGRAToGray      ColorConversionCode = 10
	ColorRGBAToGray      ColorConversionCode = 11
	ColorBGRToBGR565     ColorConversionCode = 12
	ColorRGBToBGR565     ColorConversionCode = 13
	ColorBGR565ToBGR     ColorConversionCode = 14
	ColorBGR565ToRGB     ColorConversionCode = 15
	ColorBGRAToBGR565    ColorConversionCode = 16
	ColorRGBAToBGR565    ColorConversionCode = 17
	ColorBGR565ToBGRA    ColorConversionCode = 18
	ColorBGR565ToRGBA    ColorConversionCode = 19
	ColorGrayToBGR565    ColorConversionCode = 20
	ColorBGR565ToGray    ColorConversionCode = 21
	ColorBGRToBGR555     ColorConversionCode = 22
	ColorRGBToBGR555     ColorConversionCode = 23
	ColorBGR555ToBGR     ColorConversionCode = 24
	ColorBGR555ToRGB     ColorConversionCode = 25
	ColorBGRAToBGR555    ColorConversionCode = 26
	ColorRGBAToBGR555    ColorConversionCode = 27
	ColorBGR555ToBGRA    ColorConversionCode = 28
	ColorBGR555ToRGBA    ColorConversionCode = 29
	ColorGrayToBGR555    ColorConversionCode = 30
	ColorBGR555ToGRAY    ColorConversionCode = 31
	ColorBGRToXYZ        ColorConversionCode = 32
	ColorRGBToXYZ        ColorConversionCode = 33
	ColorXYZToBGR        ColorConversionCode = 34
	ColorXYZToRGB        ColorConversionCode = 35
	ColorBGRToYCrCb      ColorConversionCode = 36
	ColorRGBToYCrCb      ColorConversionCode = 37
	ColorYCrCbToBGR      ColorConversionCode = 38
	ColorYCrCbToRGB      ColorConversionCode = 39
	ColorBGRToHSV        ColorConversionCode = 40
	ColorRGBToHSV        ColorConversionCode = 41
	ColorBGRToLab        ColorConversionCode = 44
	ColorRGBToLab        ColorConversionCode = 45
	ColorBayerBGToBGR    ColorConversionCode = 46
	ColorBayerGBToBGR    ColorConversionCode = 47
	ColorBayerRGToBGR    ColorConversionCode = 48
	ColorBayerGRToBGR    ColorConversionCode = 49
	ColorBayerRGToRGB    ColorConversionCode = 46
	ColorBayerGRToRGB    ColorConversionCode = 47
	ColorBayerBGToRGB    ColorConversionCode = 48
	ColorBayerGBToRGB    ColorConversionCode = 49
	ColorBGRToLuv        ColorConversionCode = 50
	ColorRGBToLuv        ColorConversionCode = 51
	ColorBGRToHLS        ColorConversionCode = 52
	ColorRGBToHLS        ColorConversionCode = 53
	ColorHSVToBGR        ColorConversionCode = 54
	ColorHSVToRGB        ColorConversionCode = 55
	ColorLabToBGR        ColorConversionCode = 56
	ColorLabToRGB        ColorConversionCode = 57
	ColorLuvToBGR        ColorConversionCode = 58
	ColorLuvToRGB        ColorConversionCode = 59
	ColorHLSToBGR        ColorConversionCode = 60
	ColorHLSToRGB        ColorConversionCode = 61
	ColorBayerBGToBGRVNG ColorConversionCode = 62
	ColorBayerGBToBGRVNG ColorConversionCode = 63
	ColorBayerRGToBGRVNG ColorConversionCode = 64
	ColorBayerGRToBGRVNG ColorConversionCode = 65
	ColorBGRToHSVFull    ColorConversionCode = 66
	ColorRGBToHSVFull    ColorConversionCode = 67
	ColorBGRToHLSFull    ColorConversionCode = 68
	ColorRGBToHLSFull    ColorConversionCode = 69
	ColorHSVToBGRFull    ColorConversionCode = 70
	ColorHSVToRGBFull    ColorConversionCode = 71
	ColorHLSToBGRFull    ColorConversionCode = 72
	ColorHLSToRGBFull    ColorConversionCode = 73
	ColorLBGRToLab       ColorConversionCode = 74
	ColorLRGBToLab       ColorConversionCode = 75
	ColorLBGRToLuv       ColorConversionCode = 76
	ColorLRGBToLuv       ColorConversionCode = 77
	ColorLabToLBGR       ColorConversionCode = 78
	ColorLabToLRGB       ColorConversionCode = 79
	ColorLuvToLBGR       ColorConversionCode = 80
	ColorLuvToLRGB       ColorConversionCode = 81
	ColorBGRToYUV        ColorConversionCode = 82
	ColorRGBToYUV        ColorConversionCode = 83
	ColorYUVToBGR        ColorConversionCode = 84
	ColorYUVToRGB        ColorConversionCode = 85
	ColorBayerBGToGray   ColorConversionCode = 86
	ColorBayerGBToGray   ColorConversionCode = 87
	ColorBayerRGToGray   ColorConversionCode = 88
	ColorBayerGRToGray   ColorConversionCode = 89
	ColorYUVToRGBNV12    ColorConversionCode = 90
	ColorYUVToBGRNV12    ColorConversionCode = 91
	ColorYUVToRGBNV21    ColorConversionCode = 92
	ColorYUVToBGRNV21    ColorConversionCode = 93
	ColorYUVToRGBANV12   ColorConversionCode = 94
	ColorYUVToBGRANV12   ColorConversionCode = 95
	ColorYUVToRGBANV21   ColorConversionCode = 96
	ColorYUVToBGRANV21   ColorConversionCode = 97
	ColorYUVToRGBYV12    ColorConversionCode = 98
	ColorYUVToBGRYV12    ColorConversionCode = 99
	ColorYUVToRGBIYUV    ColorConversionCode = 100
	ColorYUVToBGRIYUV    ColorConversionCode = 101
	ColorYUVToRGBAYV12   ColorConversionCode = 102
	ColorYUVToBGRAYV12   ColorConversionCode = 103
	ColorYUVToRGBAIYUV   ColorConversionCode = 104
	ColorYUVToBGRAIYUV   ColorConversionCode = 105
	ColorYUVToGRAY420    ColorConversionCode = 106
	ColorYUVToRGBUYVY    ColorConversionCode = 107
	ColorYUVToBGRUYVY    ColorConversionCode = 108
	ColorYUVToRGBAUYVY   ColorConversionCode = 111
	ColorYUVToBGRAUYVY   ColorConversionCode = 112
	ColorYUVToRGBYUY2    ColorConversionCode = 115
	ColorYUVToBGRYUY2    ColorConversionCode = 116
	ColorYUVToRGBYVYU    ColorConversionCode = 117
	ColorYUVToBGRYVYU    ColorConversionCode = 118
	ColorYUVToRGBAYUY2   ColorConversionCode = 119
	ColorYUVToBGRAYUY2   ColorConversionCode = 120
	ColorYUVToRGBAYVYU   ColorConversionCode = 121
	ColorYUVToBGRAYVYU   ColorConversionCode = 122
	ColorYUVToGRAYUYVY   ColorConversionCode = 123
	ColorYUVToGRAYYUY2   ColorConversionCode = 124
	ColorRGBAToMRGBA     ColorConversionCode = 125
	ColorMRGBAToRGBA     ColorConversionCode = 126
	ColorRGBToYUVI420    ColorConversionCode = 127
	ColorBGRToYUVI420    ColorConversionCode = 128
	ColorRGBAToYUVI420   ColorConversionCode = 129
	ColorBGRAToYUVI420   ColorConversionCode = 130
	ColorRGBToYUVYV12    ColorConversionCode = 131
	ColorBGRToYUVYV12    ColorConversionCode = 132
	ColorRGBAToYUVYV12   ColorConversionCode = 133
	ColorBGRAToYUVYV12   ColorConversionCode = 134
	ColorBayerBGToBGREA  ColorConversionCode = 135
	ColorBayerGBToBGREA  ColorConversionCode = 136
	ColorBayerRGToBGREA  ColorConversionCode = 137
	ColorBayerGRToBGREA  ColorConversionCode = 138
	ColorCvtMax          ColorConversionCode = 139
)

var colorCodes = codes.New("ColorConversionCode", []codes.Entry[ColorConversionCode]{
	{Value: ColorBGRToBGRA, Name: "ColorBGRToBGRA"},
	{Value: ColorRGBToRGBA, Name: "ColorRGBToRGBA"},
	{Value: ColorBGRAToBGR, Name: "ColorBGRAToBGR"},
	{Value: ColorRGBAToRGB, Name: "ColorRGBAToRGB"},
	{Value: ColorBGRToRGBA, Name: "ColorBGRToRGBA"},
	{Value: ColorRGBToBGRA, Name: "ColorRGBToBGRA"},
	{Value: ColorRGBAToBGR, Name: "ColorRGBAToBGR"},
	{Value: ColorBGRAToRGB, Name: "ColorBGRAToRGB"},
	{Value: ColorBGRToRGB, Name: "ColorBGRToRGB"},
	{Value: ColorRGBToBGR, Name: "ColorRGBToBGR"},
	{Value: ColorBGRAToRGBA, Name: "ColorBGRAToRGBA"},
	{Value: ColorRGBAToBGRA, Name: "ColorRGBAToBGRA"},
	{Value: ColorBGRToGray, Name: "ColorBGRToGray"},
	{Value: ColorRGBToGray, Name: "ColorRGBToGray"},
	{Value: ColorGrayToBGR, Name: "ColorGrayToBGR"},
	{Value: ColorGrayToRGB, Name: "ColorGrayToRGB"},
	{Value: ColorGrayToBGRA, Name: "ColorGrayToBGRA"},
	{Value: ColorGrayToRGBA, Name: "ColorGrayToRGBA"},
	{Value: ColorBGRAToGray, Name: "ColorBGRAToGray"},
	{Value: ColorRGBAToGray, Name: "ColorRGBAToGray"},
	{Value: ColorBGRToBGR565, Name: "ColorBGRToBGR565"},
	{Value: ColorRGBToBGR565, Name: "ColorRGBToBGR565"},
	{Value: ColorBGR565ToBGR, Name: "ColorBGR565ToBGR"},
	{Value: ColorBGR565ToRGB, Name: "ColorBGR565ToRGB"},
	{Value: ColorBGRAToBGR565, Name: "ColorBGRAToBGR565"},
	{Value: ColorRGBAToBGR565, Name: "ColorRGBAToBGR565"},
	{Value: ColorBGR565ToBGRA, Name: "ColorBGR565ToBGRA"},
	{Value: ColorBGR565ToRGBA, Name: "ColorBGR565ToRGBA"},
	{Value: ColorGrayToBGR565, Name: "ColorGrayToBGR565"},
	{Value: ColorBGR565ToGray, Name: "ColorBGR565ToGray"},
	{Value: ColorBGRToBGR555, Name: "ColorBGRToBGR555"},
	{Value: ColorRGBToBGR555, Name: "ColorRGBToBGR555"},
	{Value: ColorBGR555ToBGR, Name: "ColorBGR555ToBGR"},
	{Value: ColorBGR555ToRGB, Name: "ColorBGR555ToRGB"},
	{Value: ColorBGRAToBGR555, Name: "ColorBGRAToBGR555"},
	{Value: ColorRGBAToBGR555, Name: "ColorRGBAToBGR555"},
	{Value: ColorBGR555ToBGRA, Name: "ColorBGR555ToBGRA"},
	{Value: ColorBGR555ToRGBA, Name: "ColorBGR555ToRGBA"},
	{Value: ColorGrayToBGR555, Name: "ColorGrayToBGR555"},
	{Value: ColorBGR555ToGRAY, Name: "ColorBGR555ToGRAY"},
	{Value: ColorBGRToXYZ, Name: "ColorBGRToXYZ"},
	{Value: ColorRGBToXYZ, Name: "ColorRGBToXYZ"},
	{Value: ColorXYZToBGR, Name: "ColorXYZToBGR"},
	{Value: ColorXYZToRGB, Name: "ColorXYZToRGB"},
	{Value: ColorBGRToYCrCb, Name: "ColorBGRToYCrCb"},
	{Value: ColorRGBToYCrCb, Name: "ColorRGBToYCrCb"},
	{Value: ColorYCrCbToBGR, Name: "ColorYCrCbToBGR"},
	{Value: ColorYCrCbToRGB, Name: "ColorYCrCbToRGB"},
	{Value: ColorBGRToHSV, Name: "ColorBGRToHSV"},
	{Value: ColorRGBToHSV, Name: "ColorRGBToHSV"},
	{Value: ColorBGRToLab, Name: "ColorBGRToLab"},
	{Value: ColorRGBToLab, Name: "ColorRGBToLab"},
	{Value: ColorBayerBGToBGR, Name: "ColorBayerBGToBGR"},
	{Value: ColorBayerGBToBGR, Name: "ColorBayerGBToBGR"},
	{Value: ColorBayerRGToBGR, Name: "ColorBayerRGToBGR"},
	{Value: ColorBayerGRToBGR, Name: "ColorBayerGRToBGR"},
	{Value: ColorBayerRGToRGB, Name: "ColorBayerRGToRGB"},
	{Value: ColorBayerGRToRGB, Name: "ColorBayerGRToRGB"},
	{Value: ColorBayerBGToRGB, Name: "ColorBayerBGToRGB"},
	{Value: ColorBayerGBToRGB, Name: "ColorBayerGBToRGB"},
	{Value: ColorBGRToLuv, Name: "ColorBGRToLuv"},
	{Value: ColorRGBToLuv, Name: "ColorRGBToLuv"},
	{Value: ColorBGRToHLS, Name: "ColorBGRToHLS"},
	{Value: ColorRGBToHLS, Name: "ColorRGBToHLS"},
	{Value: ColorHSVToBGR, Name: "ColorHSVToBGR"},
	{Value: ColorHSVToRGB, Name: "ColorHSVToRGB"},
	{Value: ColorLabToBGR, Name: "ColorLabToBGR"},
	{Value: ColorLabToRGB, Name: "ColorLabToRGB"},
	{Value: ColorLuvToBGR, Name: "ColorLuvToBGR"},
	{Value: ColorLuvToRGB, Name: "ColorLuvToRGB"},
	{Value: ColorHLSToBGR, Name: "ColorHLSToBGR"},
	{Value: ColorHLSToRGB, Name: "ColorHLSToRGB"},
	{Value: ColorBayerBGToBGRVNG, Name: "ColorBayerBGToBGRVNG"},
	{Value: ColorBayerGBToBGRVNG, Name: "ColorBayerGBToBGRVNG"},
	{Value: ColorBayerRGToBGRVNG, Name: "ColorBayerRGToBGRVNG"},
	{Value: ColorBayerGRToBGRVNG, Name: "ColorBayerGRToBGRVNG"},
	{Value: ColorBGRToHSVFull, Name: "ColorBGRToHSVFull"},
	{Value: ColorRGBToHSVFull, Name: "ColorRGBToHSVFull"},
	{Value: ColorBGRToHLSFull, Name: "ColorBGRToHLSFull"},
	{Value: ColorRGBToHLSFull, Name: "ColorRGBToHLSFull"},
	{Value: ColorHSVToBGRFull, Name: "ColorHSVToBGRFull"},
	{Value: ColorHSVToRGBFull, Name: "ColorHSVToRGBFull"},
	{Value: ColorHLSToBGRFull, Name: "ColorHLSToBGRFull"},
	{Value: ColorHLSToRGBFull, Name: "ColorHLSToRGBFull"},
	{Value: ColorLBGRToLab, Name: "ColorLBGRToLab"},
	{Value: ColorLRGBToLab, Name: "ColorLRGBToLab"},
	{Value: ColorLBGRToLuv, Name: "ColorLBGRToLuv"},
	{Value: ColorLRGBToLuv, Name: "ColorLRGBToLuv"},
	{Value: ColorLabToLBGR, Name: "ColorLabToLBGR"},
	{Value: ColorLabToLRGB, Name: "ColorLabToLRGB"},
	{Value: ColorLuvToLBGR, Name: "ColorLuvToLBGR"},
	{Value: ColorLuvToLRGB, Name: "ColorLuvToLRGB"},
	{Value: ColorBGRToYUV, Name: "ColorBGRToYUV"},
	{Value: ColorRGBToYUV, Name: "ColorRGBToYUV"},
	{Value: ColorYUVToBGR, Name: "ColorYUVToBGR"},
	{Value: ColorYUVToRGB, Name: "ColorYUVToRGB"},
	{Value: ColorBayerBGToGray, Name: "ColorBayerBGToGray"},
	{Value: ColorBayerGBToGray, Name: "ColorBayerGBToGray"},
	{Value: ColorBayerRGToGray, Name: "ColorBayerRGToGray"},
	{Value: ColorBayerGRToGray, Name: "ColorBayerGRToGray"},
	{Value: ColorYUVToRGBNV12, Name: "ColorYUVToRGBNV12"},
	{Value: ColorYUVToBGRNV12, Name: "ColorYUVToBGRNV12"},
	{Value: ColorYUVToRGBNV21, Name: "ColorYUVToRGBNV21"},
	{Value: ColorYUVToBGRNV21, Name: "ColorYUVToBGRNV21"},
	{Value: ColorYUVToRGBANV12, Name: "ColorYUVToRGBANV12"},
	{Value: ColorYUVToBGRANV12, Name: "ColorYUVToBGRANV12"},
	{Value: ColorYUVToRGBANV21, Name: "ColorYUVToRGBANV21"},
	{Value: ColorYUVToBGRANV21, Name: "ColorYUVToBGRANV21"},
	{Value: ColorYUVToRGBYV12, Name: "ColorYUVToRGBYV12"},
	{Value: ColorYUVToBGRYV12, Name: "ColorYUVToBGRYV12"},
	{Value: ColorYUVToRGBIYUV, Name: "ColorYUVToRGBIYUV"},
	{Value: ColorYUVToBGRIYUV, Name: "ColorYUVToBGRIYUV"},
	{Value: ColorYUVToRGBAYV12, Name: "ColorYUVToRGBAYV12"},
	{Value: ColorYUVToBGRAYV12, Name: "ColorYUVToBGRAYV12"},
	{Value: ColorYUVToRGBAIYUV, Name: "ColorYUVToRGBAIYUV"},
	{Value: ColorYUVToBGRAIYUV, Name: "ColorYUVToBGRAIYUV"},
	{Value: ColorYUVToGRAY420, Name: "ColorYUVToGRAY420"},
	{Value: ColorYUVToRGBUYVY, Name: "ColorYUVToRGBUYVY"},
	{Value: ColorYUVToBGRUYVY, Name: "ColorYUVToBGRUYVY"},
	{Value: ColorYUVToRGBAUYVY, Name: "ColorYUVToRGBAUYVY"},
	{Value: ColorYUVToBGRAUYVY, Name: "ColorYUVToBGRAUYVY"},
	{Value: ColorYUVToRGBYUY2, Name: "ColorYUVToRGBYUY2"},
	{Value: ColorYUVToBGRYUY2, Name: "ColorYUVToBGRYUY2"},
	{Value: ColorYUVToRGBYVYU, Name: "ColorYUVToRGBYVYU"},
	{Value: ColorYUVToBGRYVYU, Name: "ColorYUVToBGRYVYU"},
	{Value: ColorYUVToRGBAYUY2, Name: "ColorYUVToRGBAYUY2"},
	{Value: ColorYUVToBGRAYUY2, Name: "ColorYUVToBGRAYUY2"},
	{Value: ColorYUVToRGBAYVYU, Name: "ColorYUVToRGBAYVYU"},
	{Value: ColorYUVToBGRAYVYU, Name: "ColorYUVToBGRAYVYU"},
	{Value: ColorYUVToGRAYUYVY, Name: "ColorYUVToGRAYUYVY"},
	{Value: ColorYUVToGRAYYUY2, Name: "ColorYUVToGRAYYUY2"},
	{Value: ColorRGBAToMRGBA, Name: "ColorRGBAToMRGBA"},
	{Value: ColorMRGBAToRGBA, Name: "ColorMRGBAToRGBA"},
	{Value: ColorRGBToYUVI420, Name: "ColorRGBToYUVI420"},
	{Value: ColorBGRToYUVI420, Name: "ColorBGRToYUVI420"},
	{Value: ColorRGBAToYUVI420, Name: "ColorRGBAToYUVI420"},
	{Value: ColorBGRAToYUVI420, Name: "ColorBGRAToYUVI420"},
	{Value: ColorRGBToYUVYV12, Name: "ColorRGBToYUVYV12"},
	{Value: ColorBGRToYUVYV12, Name: "ColorBGRToYUVYV12"},
	{Value: ColorRGBAToYUVYV12, Name: "ColorRGBAToYUVYV12"},
	{Value: ColorBGRAToYUVYV12, Name: "ColorBGRAToYUVYV12"},
	{Value: ColorBayerBGToBGREA, Name: "ColorBayerBGToBGREA"},
	{Value: ColorBayerGBToBGREA, Name: "ColorBayerGBToBGREA"},
	{Value: ColorBayerRGToBGREA, Name: "ColorBayerRGToBGREA"},
	{Value: ColorBayerGRToBGREA, Name: "ColorBayerGRToBGREA"},
	{Value: ColorCvtMax, Name: "ColorCvtMax"},
}...)

// ParseColorConversionCode decodes a color conversion code.
func ParseColorConversionCode(code int32) (ColorConversionCode, error) {
	return colorCodes.Decode(code)
}

func (c ColorConversionCode) String() string { return colorCodes.Name(c) }

// TemplateMatchMode is the score MatchTemplate computes.
type TemplateMatchMode int32

const (
	TmSqdiff TemplateMatchMode = iota
	TmSqdiffNormed
	TmCcorr
	TmCcorrNormed
	TmCcoeff
	TmCcoeffNormed
)

var matchModes = codes.New("TemplateMatchMode",
	codes.Entry[TemplateMatchMode]{Value: TmSqdiff, Name: "TmSqdiff"},
	codes.Entry[TemplateMatchMode]{Value: TmSqdiffNormed, Name: "TmSqdiffNormed"},
	codes.Entry[TemplateMatchMode]{Value: TmCcorr, Name: "TmCcorr"},
	codes.Entry[TemplateMatchMode]{Value: TmCcorrNormed, Name: "TmCcorrNormed"},
	codes.Entry[TemplateMatchMode]{Value: TmCcoeff, Name: "TmCcoeff"},
	codes.Entry[TemplateMatchMode]{Value: TmCcoeffNormed, Name: "TmCcoeffNormed"},
)

// ParseTemplateMatchMode decodes a match mode.
func ParseTemplateMatchMode(code int32) (TemplateMatchMode, error) { return matchModes.Decode(code) }

func (m TemplateMatchMode) String() string { return matchModes.Name(m) }

// ThresholdType is a threshold rule, optionally combined with
// ThresholdOtsu or ThresholdTriangle.
type ThresholdType int32

const (
	ThresholdBinary    ThresholdType = 0
	ThresholdBinaryInv ThresholdType = 1
	ThresholdTrunc     ThresholdType = 2
	ThresholdToZero    ThresholdType = 3
	ThresholdToZeroInv ThresholdType = 4
	ThresholdMask      ThresholdType = 7
	ThresholdOtsu      ThresholdType = 8
	ThresholdTriangle  ThresholdType = 16
)

var thresholdTypes = codes.New("ThresholdType",
	codes.Entry[ThresholdType]{Value: ThresholdBinary, Name: "ThresholdBinary"},
	codes.Entry[ThresholdType]{Value: ThresholdBinaryInv, Name: "ThresholdBinaryInv"},
	codes.Entry[ThresholdType]{Value: ThresholdTrunc, Name: "ThresholdTrunc"},
	codes.Entry[ThresholdType]{Value: ThresholdToZero, Name: "ThresholdToZero"},
	codes.Entry[ThresholdType]{Value: ThresholdToZeroInv, Name: "ThresholdToZeroInv"},
	codes.Entry[ThresholdType]{Value: ThresholdMask, Name: "ThresholdMask"},
	codes.Entry[ThresholdType]{Value: ThresholdOtsu, Name: "ThresholdOtsu"},
	codes.Entry[ThresholdType]{Value: ThresholdTriangle, Name: "ThresholdTriangle"},
)

// ParseThresholdType decodes a threshold rule. Combined flags do not decode;
// split them with Rule and the Otsu or Triangle bit first.
func ParseThresholdType(code int32) (ThresholdType, error) { return thresholdTypes.Decode(code) }

// Rule returns t without the automatic threshold flags.
func (t ThresholdType) Rule() ThresholdType { return t & ThresholdMask }

func (t ThresholdType) String() string {
	if auto := t &^ ThresholdMask; auto != 0 && t.Rule() != 0 {
		return thresholdTypes.Name(t.Rule()) + "|" + thresholdTypes.Name(auto)
	}
	return thresholdTypes.Name(t)
}

// InterpolationFlag selects the Resize filter.
type InterpolationFlag int32

const (
	InterpolationNearestNeighbor InterpolationFlag = 0
	InterpolationLinear          InterpolationFlag = 1
	InterpolationCubic           InterpolationFlag = 2
	InterpolationArea            InterpolationFlag = 3
	InterpolationLanczos4        InterpolationFlag = 4
	InterpolationLinearExact     InterpolationFlag = 5
	InterpolationDefault                           = InterpolationLinear
	InterpolationMax             InterpolationFlag = 7
)

var interpolationFlags = codes.New("InterpolationFlag",
	codes.Entry[InterpolationFlag]{Value: InterpolationNearestNeighbor, Name: "InterpolationNearestNeighbor"},
	codes.Entry[InterpolationFlag]{Value: InterpolationLinear, Name: "InterpolationLinear"},
	codes.Entry[InterpolationFlag]{Value: InterpolationCubic, Name: "InterpolationCubic"},
	codes.Entry[InterpolationFlag]{Value: InterpolationArea, Name: "InterpolationArea"},
	codes.Entry[InterpolationFlag]{Value: InterpolationLanczos4, Name: "InterpolationLanczos4"},
	codes.Entry[InterpolationFlag]{Value: InterpolationLinearExact, Name: "InterpolationLinearExact"},
	codes.Entry[InterpolationFlag]{Value: InterpolationMax, Name: "InterpolationMax"},
)

// ParseInterpolationFlag decodes an interpolation flag.
func ParseInterpolationFlag(code int32) (InterpolationFlag, error) {
	return interpolationFlags.Decode(code)
}

func (f InterpolationFlag) String() string { return interpolationFlags.Name(f) }
