// Package errors provides structured error types for the cvbridge library.
//
// Errors are categorized by Phase (where at the native boundary the error
// occurred) and Kind (error category). The Error type carries the native call
// name, the symbolic type involved, the offending value and a cause chain.
//
// The kinds map onto four recoverable failure classes:
//
//   - invalid input representation: KindInvalidString, KindInvalidPath, KindUnicode
//   - resource construction failure: KindInvalidModel, KindNotFound
//   - type code decode failure: KindInvalidEnum
//   - native operation failure: KindNative
//
// KindDoubleRelease and KindUseAfterRelease describe boundary defects. They are
// reported so tests can detect them, never retried.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidEnum).
//		Type("MatType").
//		Value(int32(-1)).
//		Detail("unknown code").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidEnum(errors.PhaseDecode, int32(-1), "ColorConversionCode")
//	err := errors.Native("Mat_Region", "region exceeds matrix bounds")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
