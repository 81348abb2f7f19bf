// Package codes maps the library's integer type codes to Go enums.
//
// Encoding a Go enum value is total: every value has a code. Decoding a code
// received from the library is partial: a code outside the table fails with
// an invalid_enum error carrying the code.
package codes

import (
	"fmt"

	"github.com/wippyai/cvbridge/errors"
)

// Entry names one code of a Set.
type Entry[T ~int32] struct {
	Value T
	Name  string
}

// Set is a closed table of codes for one enum type.
type Set[T ~int32] struct {
	typeName string
	names    map[T]string
	order    []T
}

// New builds a Set. When several entries share a value the first name is
// the canonical one.
func New[T ~int32](typeName string, entries ...Entry[T]) *Set[T] {
	s := &Set[T]{typeName: typeName, names: make(map[T]string, len(entries))}
	for _, e := range entries {
		if _, dup := s.names[e.Value]; dup {
			continue
		}
		s.names[e.Value] = e.Name
		s.order = append(s.order, e.Value)
	}
	return s
}

// TypeName returns the enum's symbolic type name.
func (s *Set[T]) TypeName() string { return s.typeName }

// Encode returns the code for v.
func (s *Set[T]) Encode(v T) int32 { return int32(v) }

// Decode returns the enum value for code.
func (s *Set[T]) Decode(code int32) (T, error) {
	v := T(code)
	if _, ok := s.names[v]; !ok {
		return 0, errors.InvalidEnum(errors.PhaseDecode, code, s.typeName)
	}
	return v, nil
}

// Contains reports whether v is in the table.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.names[v]
	return ok
}

// Name returns the canonical name of v, or TypeName(code) when v is not in
// the table.
func (s *Set[T]) Name(v T) string {
	if n, ok := s.names[v]; ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", s.typeName, int32(v))
}

// Values returns the distinct values in declaration order.
func (s *Set[T]) Values() []T {
	return append([]T(nil), s.order...)
}
