// Package codestest checks code tables from the packages that declare them.
package codestest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cvbridge/errors"
	"github.com/wippyai/cvbridge/internal/codes"
)

// RoundTrip checks that every value of s survives Encode then Decode, and
// that codes just outside the table fail with invalid_enum.
func RoundTrip[T ~int32](t *testing.T, s *codes.Set[T]) {
	t.Helper()
	values := s.Values()
	require.NotEmpty(t, values, s.TypeName())

	hi := int32(math.MinInt32)
	for _, v := range values {
		got, err := s.Decode(s.Encode(v))
		require.NoError(t, err, s.Name(v))
		assert.Equal(t, v, got, s.Name(v))
		hi = max(hi, s.Encode(v))
	}

	for _, code := range []int32{-1, hi + 1} {
		if s.Contains(T(code)) {
			continue
		}
		_, err := s.Decode(code)
		var e *errors.Error
		if assert.ErrorAs(t, err, &e, "%s code %d", s.TypeName(), code) {
			assert.Equal(t, errors.KindInvalidEnum, e.Kind)
			assert.Equal(t, code, e.Value)
		}
	}
	assert.False(t, s.Contains(T(hi+1)), "%s max+1", s.TypeName())
}
