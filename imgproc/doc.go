// Package imgproc wraps color conversion, filtering, thresholding, template
// matching, resizing and drawing.
//
// Every Mat argument of one call must belong to the same library. Output
// matrices are reallocated by the library when their size or type does not
// match the result.
package imgproc
