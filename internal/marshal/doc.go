// Package marshal moves values across the native boundary.
//
// Three directions are covered:
//
// Validation rejects strings the library cannot represent before any call is
// made. Strings cross as NUL-free UTF-8; some names must be plain ASCII.
//
// Staging copies Go-owned data into native memory for the duration of one
// call. The Go side keeps ownership: staged blocks are recorded in a Staging
// list and freed by the caller once the call returns.
//
// Export copies library-owned results into Go values and releases the native
// buffer immediately, so nothing returned to the caller aliases native
// memory. Arrays are drained element by element and a zero length is
// checked before the array pointer is touched.
package marshal
