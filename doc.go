// Package cvbridge is a safe Go facade over a native computer vision library.
//
// The native library owns its memory, its reference counts and the lifetime
// of every resource it hands out. This module is the ownership and
// marshaling layer between that library and Go: opaque handles, bulk byte
// buffers, arrays of fixed-layout structs and integer type codes.
//
// # Architecture Overview
//
//	cvbridge/            Root package with Memory and Allocator interfaces
//	├── native/          The native call surface: handles, descriptors, Library
//	├── engine/          In-process native library over wazero linear memory
//	├── resource/        Generation-tagged handle table
//	├── errors/          Structured error types
//	├── core/            Mat wrapper, value types, type codes
//	├── imgproc/         Color conversion, filters, geometry, drawing
//	├── objdetect/       Cascade classifiers
//	├── features2d/      MSER and blob detectors
//	├── dnn/             Neural network handles and blob helpers
//	├── cuda/            Device matrices and device classifiers
//	├── imgcodecs/       Image file and buffer codecs
//	├── highgui/         Windows confined to one OS thread
//	└── cmd/cvview/      Command line and terminal viewer
//
// # Quick Start
//
//	img, err := imgcodecs.IMRead("photo.jpg", imgcodecs.IMReadColor)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	gray := core.NewMat()
//	defer gray.Close()
//	if err := imgproc.CvtColor(img, gray, imgproc.ColorBGRToGray); err != nil {
//	    log.Fatal(err)
//	}
//
// # Ownership
//
// Every wrapper (core.Mat, dnn.Net, cuda.GpuMat, ...) exclusively owns one
// native handle and must be closed exactly once. Wrappers carry a noCopy
// marker, so go vet reports accidental copies. Clone goes through the native
// library and returns an independent wrapper. A wrapper that is never closed
// is released by a runtime cleanup and a warning is logged.
//
// Region and Reshape return views. The native library reference counts the
// storage behind a matrix, so a view and its parent may be closed in any
// order; the storage is freed when the last of them is closed.
//
// # Buffers
//
// Byte buffers and struct arrays returned by the native library are copied
// into Go memory and released before the call returns. Go memory is never
// handed to the native allocator and native memory is never adopted by the
// Go allocator.
//
// # Thread Safety
//
// Distinct wrappers may be used from different goroutines. A single wrapper
// must not be used concurrently. Window calls are funneled through one
// locked OS thread by the highgui package.
package cvbridge
