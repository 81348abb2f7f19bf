package core

import (
	"math"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/native"

	// default in-process library
	_ "github.com/wippyai/cvbridge/engine"
)

// lib returns the library new wrappers bind to.
func lib() native.Library {
	return native.Default()
}

// Version returns the native library version.
func Version() string {
	return lib().Version()
}

// CheckHardwareSupport reports whether the CPU has feature.
func CheckHardwareSupport(feature CPUFeature) bool {
	return lib().HardwareSupport(cpuFeatures.Encode(feature))
}

// SameLibrary fails unless every non-nil mat was created by l. A handle is
// only meaningful to the library that issued it.
func SameLibrary(op string, l native.Library, mats ...*Mat) error {
	for i, m := range mats {
		if m != nil && m.lib != l {
			return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
				Op(op).
				Detail("operand %d belongs to another native library", i).
				Build()
		}
	}
	return nil
}

// checkInt32 fails if any of vals cannot cross the native boundary intact.
func checkInt32(op string, vals ...int) error {
	for _, v := range vals {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
				Op(op).
				Value(v).
				Detail("value does not fit int32").
				Build()
		}
	}
	return nil
}
