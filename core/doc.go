// Package core wraps the native library's dense matrix and its value types.
//
// A Mat owns exactly one native handle. It is created by a constructor or
// adopted with MatFromNative and released by Close; a second Close on the same
// wrapper does nothing. Mats must not be copied by value. Calling any method
// on a closed Mat panics with a use_after_release error, and a Mat that is
// garbage collected without Close is released by a cleanup that logs a
// warning.
//
// Views made by Region and Reshape, and blob channels from the dnn package,
// share storage with their parent. Each view is still its own handle and is
// closed on its own; the shared storage lives until every handle on it is
// closed.
//
// Values crossing the boundary follow two rules. Byte buffers returned by the
// library are copied into Go memory and released before the call returns.
// Buffers passed to the library are staged for the duration of the call only.
//
// Type codes returned by the library, such as MatType, are decoded against a
// closed table. A code outside the table is reported as an invalid_enum error
// carrying the code; it is never passed through unchecked.
package core
