package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidEnum,
				Path:   []string{"mat", "type"},
				Op:     "Mat_Type",
				Type:   "MatType",
				Detail: "unknown code",
			},
			contains: []string{"[decode]", "invalid_enum", "mat.type", "Mat_Type", "(MatType)", " - unknown code"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRelease,
				Kind:  KindDoubleRelease,
			},
			contains: []string{"[release]", "double_release"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidModel,
				Detail: "bad prototxt",
				Cause:  errors.New("yaml: line 3"),
			},
			contains: []string{"[load]", "invalid_model", ": bad prototxt", "caused by", "yaml: line 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := InvalidModel("net.yaml", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Native("Mat_Region", "out of range")

	if !err.Is(&Error{Phase: PhaseNative, Kind: KindNative}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindNative}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseNative, Kind: KindUseAfterRelease}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("region: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseNative, Kind: KindNative}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("outer: %w", InvalidPath("a\x00b"))); got != KindInvalidPath {
		t.Errorf("KindOf = %q, want %q", got, KindInvalidPath)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidEnum).
		Path("window", "flags").
		Op("Window_GetProperty").
		Type("WindowFlag").
		Value(int32(42)).
		Cause(cause).
		Detail("expected one of %d codes, got %d", 4, 42).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidEnum {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEnum)
	}
	if len(err.Path) != 2 || err.Path[0] != "window" || err.Path[1] != "flags" {
		t.Errorf("Path = %v, want [window flags]", err.Path)
	}
	if err.Op != "Window_GetProperty" {
		t.Errorf("Op = %v", err.Op)
	}
	if err.Type != "WindowFlag" {
		t.Errorf("Type = %v", err.Type)
	}
	if err.Value != int32(42) {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected one of 4 codes, got 42" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
		value any
	}{
		{"InvalidString nul", InvalidString("ab\x00c"), PhaseValidate, KindInvalidString, "ab\x00c"},
		{"InvalidPath utf8", InvalidPath("\xff.png"), PhaseValidate, KindInvalidPath, "\xff.png"},
		{"UnicodeChars", UnicodeChars("prob→"), PhaseValidate, KindUnicode, "prob→"},
		{"InvalidModel", InvalidModel("m.pb", nil), PhaseLoad, KindInvalidModel, "m.pb"},
		{"EntryNotFound", EntryNotFound("missing.xml"), PhaseLoad, KindNotFound, "missing.xml"},
		{"InvalidEnum", InvalidEnum(PhaseDecode, int32(-1), "ColorConversionCode"), PhaseDecode, KindInvalidEnum, int32(-1)},
		{"DoubleRelease", DoubleRelease("Mat_Close", 0x01000001), PhaseRelease, KindDoubleRelease, uint32(0x01000001)},
		{"UseAfterRelease", UseAfterRelease("Mat_Rows", 7), PhaseNative, KindUseAfterRelease, uint32(7)},
		{"OutOfBounds", OutOfBounds(PhaseNative, []string{"row"}, 10, 5), PhaseNative, KindOutOfBounds, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Value != tt.value {
				t.Errorf("Value = %#v, want %#v", tt.err.Value, tt.value)
			}
		})
	}

	t.Run("InvalidString describes the NUL offset", func(t *testing.T) {
		err := InvalidString("ab\x00c")
		if !strings.Contains(err.Detail, "NUL at byte 2") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Native keeps the diagnostic", func(t *testing.T) {
		err := Native("Net_Forward", "layer prob: shape mismatch")
		if err.Op != "Net_Forward" || err.Detail != "layer prob: shape mismatch" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseNative, 1024, 8)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})
}
