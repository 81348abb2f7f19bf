package native

import "github.com/wippyai/cvbridge"

// Library is the native call surface.
//
// Ownership conventions:
//   - constructors and calls returning a handle transfer it to the caller,
//     who releases it with the matching Close call;
//   - ByteArray results are allocated by the library and freed by the caller
//     with ReleaseByteArray;
//   - Rects and KeyPoints results are freed with CloseRects and CloseKeyPoints;
//   - ByteArray and Points arguments stay owned by the caller and are only
//     read during the call;
//   - strings are passed as NUL-free UTF-8; callers validate them first.
//
// Calling through a released handle is a boundary defect and panics with a
// use_after_release error. Closing a released handle returns a
// double_release error and is counted by the library.
type Library interface {
	MatAPI
	ImgprocAPI
	ObjdetectAPI
	FeaturesAPI
	DNNAPI
	CUDAAPI
	CodecsAPI
	WindowAPI

	// Memory is the linear memory every Ptr refers to.
	Memory() cvbridge.Memory
	// Allocator stages caller-owned buffers in Memory.
	Allocator() cvbridge.Allocator
	Version() string
	HardwareSupport(feature int32) bool
}

// MatAPI covers dense matrices and buffers.
type MatAPI interface {
	NewMat() Mat
	NewMatWithSize(rows, cols, typ int32) (Mat, error)
	NewMatFromScalar(s Scalar, typ int32) (Mat, error)
	NewMatWithSizeFromScalar(s Scalar, rows, cols, typ int32) (Mat, error)
	NewMatFromBytes(rows, cols, typ int32, buf ByteArray) (Mat, error)
	CloseMat(m Mat) error
	CloneMat(m Mat) (Mat, error)
	MatRegion(m Mat, r Rect) (Mat, error)
	MatReshape(m Mat, cn, rows int32) (Mat, error)

	MatEmpty(m Mat) bool
	MatRows(m Mat) int32
	MatCols(m Mat) int32
	MatChannels(m Mat) int32
	MatType(m Mat) int32
	MatTotal(m Mat) int32
	MatStep(m Mat) int32
	MatSize(m Mat) []int32

	MatCopyTo(src, dst Mat) error
	MatCopyToWithMask(src, dst, mask Mat) error
	MatConvertTo(src, dst Mat, typ int32) error
	MatToBytes(m Mat) (ByteArray, error)
	ReleaseByteArray(buf ByteArray)

	MatGetUChar(m Mat, row, col int32) (uint8, error)
	MatSetUChar(m Mat, row, col int32, v uint8) error
	MatGetFloat(m Mat, row, col int32) (float32, error)
	MatSetFloat(m Mat, row, col int32, v float32) error

	MatCompare(a, b, dst Mat, ct int32) error
	MatCountNonZero(m Mat) (int32, error)
	MatMinMaxLoc(m Mat) (minVal, maxVal float64, minLoc, maxLoc Point, err error)
}

// ImgprocAPI covers image processing and drawing.
type ImgprocAPI interface {
	CvtColor(src, dst Mat, code int32) error
	MatchTemplate(image, templ, result Mat, method int32, mask Mat) error
	PyrDown(src, dst Mat, size Size, border int32) error
	PyrUp(src, dst Mat, size Size, border int32) error
	GaussianBlur(src, dst Mat, ksize Size, sigmaX, sigmaY float64, border int32) error
	Laplacian(src, dst Mat, ddepth, ksize int32, scale, delta float64, border int32) error
	Scharr(src, dst Mat, ddepth, dx, dy int32, scale, delta float64, border int32) error
	MedianBlur(src, dst Mat, ksize int32) error
	Canny(src, edges Mat, t1, t2 float64) error
	GoodFeaturesToTrack(img, corners Mat, maxCorners int32, quality, minDist float64) error
	Threshold(src, dst Mat, thresh, maxValue float64, typ int32) (float64, error)
	Circle(img Mat, center Point, radius int32, color Scalar, thickness int32) error
	Ellipse(img Mat, center, axes Point, angle, startAngle, endAngle float64, color Scalar, thickness int32) error
	Line(img Mat, pt1, pt2 Point, color Scalar, thickness int32) error
	Rectangle(img Mat, r Rect, color Scalar, thickness int32) error
	Resize(src, dst Mat, size Size, fx, fy float64, interp int32) error
	ArcLength(curve Points, closed bool) (float64, error)
}

// ObjdetectAPI covers cascade classifiers.
type ObjdetectAPI interface {
	NewCascadeClassifier() CascadeClassifier
	CloseCascadeClassifier(c CascadeClassifier) error
	CascadeClassifierLoad(c CascadeClassifier, path string) (bool, error)
	DetectMultiScale(c CascadeClassifier, img Mat) (Rects, error)
	DetectMultiScaleWithParams(c CascadeClassifier, img Mat, scale float64, minNeighbors, flags int32, minSize, maxSize Size) (Rects, error)
	CloseRects(rs Rects)
}

// FeaturesAPI covers feature detectors.
type FeaturesAPI interface {
	NewMSER() MSER
	CloseMSER(d MSER) error
	MSERDetect(d MSER, img Mat) (KeyPoints, error)
	NewSimpleBlobDetector() SimpleBlobDetector
	CloseSimpleBlobDetector(d SimpleBlobDetector) error
	SimpleBlobDetectorDetect(d SimpleBlobDetector, img Mat) (KeyPoints, error)
	CloseKeyPoints(kps KeyPoints)
}

// DNNAPI covers neural networks and blobs.
type DNNAPI interface {
	ReadNetFromCaffe(prototxt, model string) (Net, error)
	ReadNetFromTensorflow(model string) (Net, error)
	CloseNet(n Net) error
	NetEmpty(n Net) bool
	NetSetInput(n Net, blob Mat, name string) error
	NetForward(n Net, outputName string) (Mat, error)
	BlobFromImage(img Mat, scale float64, size Size, mean Scalar, swapRB, crop bool) (Mat, error)
	GetBlobChannel(blob Mat, imgIdx, chIdx int32) (Mat, error)
	GetBlobSize(blob Mat) (Scalar, error)
}

// CUDAAPI covers device matrices and device classifiers.
type CUDAAPI interface {
	NewGpuMat() GpuMat
	CloseGpuMat(m GpuMat) error
	GpuMatUpload(m GpuMat, src Mat) error
	GpuMatDownload(m GpuMat) (Mat, error)
	GpuMatEmpty(m GpuMat) bool
	GpuMatRows(m GpuMat) int32
	GpuMatCols(m GpuMat) int32

	NewGpuCascade(path string) (GpuCascade, error)
	CloseGpuCascade(c GpuCascade) error
	GpuCascadeDetectMultiScale(c GpuCascade, img GpuMat) (Rects, error)
	GpuCascadeSetFindLargestObject(c GpuCascade, v bool)
	GpuCascadeSetMaxNumObjects(c GpuCascade, v int32)
	GpuCascadeSetMinNeighbors(c GpuCascade, v int32)
	GpuCascadeSetMaxObjectSize(c GpuCascade, v Size)
	GpuCascadeSetMinObjectSize(c GpuCascade, v Size)
	GpuCascadeSetScaleFactor(c GpuCascade, v float64)
	GpuCascadeFindLargestObject(c GpuCascade) bool
	GpuCascadeMaxNumObjects(c GpuCascade) int32
	GpuCascadeMinNeighbors(c GpuCascade) int32
	GpuCascadeMaxObjectSize(c GpuCascade) Size
	GpuCascadeMinObjectSize(c GpuCascade) Size
	GpuCascadeScaleFactor(c GpuCascade) float64
	GpuCascadeClassifierSize(c GpuCascade) Size
}

// CodecsAPI covers image files and encoded buffers.
type CodecsAPI interface {
	IMRead(path string, flags int32) (Mat, error)
	IMWrite(path string, m Mat) (bool, error)
	IMEncode(ext string, m Mat) (ByteArray, error)
	IMDecode(buf ByteArray, flags int32) (Mat, error)
}

// WindowAPI covers named windows. Callers confine it to one OS thread.
type WindowAPI interface {
	NewWindow(name string, flags int32) error
	WindowShow(name string, img Mat) error
	WindowWaitKey(delay int32) int32
	WindowGetProperty(name string, prop int32) (float64, error)
	WindowSetProperty(name string, prop int32, value float64) error
	WindowSetTitle(name, title string) error
	WindowMove(name string, x, y int32) error
	WindowResize(name string, width, height int32) error
	WindowClose(name string) error
}
