package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorContains checks that err contains every expected substring.
func AssertErrorContains(t *testing.T, err error, expected ...string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	for _, e := range expected {
		assert.Contains(t, err.Error(), e)
	}
}

// RequireErrorIs fails the test immediately unless err wraps target.
func RequireErrorIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "expected %q to wrap %q", err, target)
}
