// Package engine is the in-process native library behind cvbridge.
//
// The engine implements native.Library without cgo. Matrix storage lives in
// wazero linear memories: a "host" memory for Mat data, exported buffers and
// detector results, and a "device" memory for GpuMat data. Both are plain
// memory-only modules managed by a first-fit allocator, so every Ptr handed
// across the boundary is a real offset that callers copy out of and free.
//
// # Resources
//
// Every Mat, GpuMat, Net, classifier and detector is a generation-tagged
// handle in a resource.Table. Releasing a handle bumps its slot
// generation; releasing it again is reported as a double release and
// counted in Stats. Calling through a released handle panics with a
// use_after_release error.
//
// Mat data blocks are reference counted. Region, Reshape and GetBlobChannel
// return new headers over the same block, so a view stays valid after its
// parent is closed and the block is freed with the last header.
//
// # Algorithms
//
// Pixel kernels (blur, median, resize, sobel), color conversion, drawing,
// and codecs are delegated to bild, go-colorful, gg and imaging. Detectors
// and networks are deterministic reference implementations:
//
//   - cascade detection reports connected foreground regions at least as
//     large as the classifier window;
//   - MSER and SimpleBlobDetector report centroids of bright and dark regions;
//   - networks are YAML layer graphs of Input, Flatten, ReLU, Scale and
//     Softmax layers.
//
// Windows render as half-block text to Config.WindowOutput.
//
// # Registration
//
// Importing the package registers a default engine with native.Register:
//
//	import _ "github.com/wippyai/cvbridge/engine"
//
// Tests that need isolated accounting create their own with New and install
// it with native.Swap.
package engine
