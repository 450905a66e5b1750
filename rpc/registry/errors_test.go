package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFault(t *testing.T) {
	require.NoError(t, ParseFault(nil))

	for _, tc := range []struct {
		exception string
		expected  error
	}{
		{"unhandled exception: \"asset not found\"", ErrNotFound},
		{"unhandled exception: \"owner witness check failed\"", ErrUnauthorized},
		{"unhandled exception: \"invalid argument: null receiver\"", ErrInvalidArgument},
		{"unhandled exception: \"asset is not transferable\"", ErrInvariantViolation},
	} {
		t.Run(tc.exception, func(t *testing.T) {
			orig := errors.New("script failed (FAULT state) due to an error: " + tc.exception)
			err := ParseFault(orig)
			require.ErrorIs(t, err, tc.expected)
			require.ErrorIs(t, err, orig)
		})
	}

	other := errors.New("connection refused")
	err := ParseFault(other)
	require.Equal(t, other, err)
	for _, e := range []error{ErrNotFound, ErrUnauthorized, ErrInvalidArgument, ErrInvariantViolation} {
		require.NotErrorIs(t, err, e)
	}
}
