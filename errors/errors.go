package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Phase indicates where at the native boundary the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // Go to native
	PhaseDecode   Phase = "decode"   // native to Go
	PhaseValidate Phase = "validate" // argument validation before a native call
	PhaseLoad     Phase = "load"     // model, classifier and image loading
	PhaseNative   Phase = "native"   // inside a native call
	PhaseRelease  Phase = "release"  // handle release
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidString   Kind = "invalid_string"
	KindInvalidPath     Kind = "invalid_path"
	KindUnicode         Kind = "unicode"
	KindInvalidModel    Kind = "invalid_model"
	KindNotFound        Kind = "not_found"
	KindInvalidEnum     Kind = "invalid_enum"
	KindNative          Kind = "native"
	KindDoubleRelease   Kind = "double_release"
	KindUseAfterRelease Kind = "use_after_release"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindAllocation      Kind = "allocation"
	KindUnsupported     Kind = "unsupported"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // native call name
	Type   string // symbolic type involved, e.g. "MatType"
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Op != "" || e.Type != "" {
		b.WriteString(": ")
		switch {
		case e.Op != "" && e.Type != "":
			b.WriteString(e.Op)
			b.WriteString(" (")
			b.WriteString(e.Type)
			b.WriteByte(')')
		case e.Op != "":
			b.WriteString(e.Op)
		default:
			b.WriteString(e.Type)
		}
	}

	if e.Detail != "" {
		if e.Op != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Op sets the native call name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Type sets the symbolic type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Invalid input representation

// InvalidString creates an error for a string the native call cannot represent
func InvalidString(s string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidString,
		Value:  s,
		Detail: describeString(s),
	}
}

// InvalidPath creates an error for a path the native call cannot represent
func InvalidPath(path string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidPath,
		Value:  path,
		Detail: describeString(path),
	}
}

// UnicodeChars creates an error for a string that must be ASCII
func UnicodeChars(s string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnicode,
		Value:  s,
		Detail: fmt.Sprintf("%q contains non-ASCII characters", s),
	}
}

func describeString(s string) string {
	if !utf8.ValidString(s) {
		return fmt.Sprintf("%q is not valid UTF-8", s)
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return fmt.Sprintf("%q contains NUL at byte %d", s, i)
	}
	return fmt.Sprintf("%q is not representable", s)
}

// Resource construction failure

// InvalidModel creates an error for a model or classifier file that failed to load
func InvalidModel(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidModel,
		Value:  path,
		Detail: fmt.Sprintf("failed to load %q", path),
		Cause:  cause,
	}
}

// EntryNotFound creates an error for a missing file
func EntryNotFound(path string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Value:  path,
		Detail: fmt.Sprintf("no entry at %q", path),
	}
}

// NotFound creates a generic not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Value:  name,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Type code decode failure

// InvalidEnum creates an invalid type code error carrying the offending value
func InvalidEnum(phase Phase, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Type:   enumType,
		Detail: fmt.Sprintf("invalid code %v for %s", value, enumType),
		Value:  value,
	}
}

// Native operation failure

// Native creates an opaque native failure carrying the library's diagnostic
func Native(op, diagnostic string) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindNative,
		Op:     op,
		Detail: diagnostic,
	}
}

// Boundary defects

// DoubleRelease reports a release of a handle that was already released
func DoubleRelease(op string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDoubleRelease,
		Op:     op,
		Value:  handle,
		Detail: fmt.Sprintf("handle %#x already released", handle),
	}
}

// UseAfterRelease reports a call through a handle that was already released
func UseAfterRelease(op string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindUseAfterRelease,
		Op:     op,
		Value:  handle,
		Detail: fmt.Sprintf("handle %#x used after release", handle),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
