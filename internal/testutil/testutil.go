// Package testutil provides shared test helpers for the Jaunts core
// packages: fault assertions, recording collaborator fakes, and file and
// environment helpers.
//
// All helpers accept [testing.TB]. Functions that halt the test on failure
// use [require] from testify; functions that record failures without
// stopping use [assert].
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

// RequireErrorCode halts the test if err is nil, holds no *sserr.Error,
// or its outermost *sserr.Error does not carry code.
//
// Example:
//
//	_, err := svc.RemoveFleetByID(ctx, uuid.Nil)
//	testutil.RequireErrorCode(t, err, sserr.CodeValidation)
func RequireErrorCode(t testing.TB, err error, code sserr.Code, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	e, ok := sserr.AsError(err)
	require.True(t, ok, "expected *sserr.Error, got %T: %v", err, err)
	require.Equal(t, code, e.Code,
		"error code mismatch: got %q, want %q (message: %s)", e.Code, code, e.Message)
}

// AssertErrorCode records a failure (without halting) if err does not
// carry code on its outermost *sserr.Error.
func AssertErrorCode(t testing.TB, err error, code sserr.Code, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	e, ok := sserr.AsError(err)
	if !assert.True(t, ok, "expected *sserr.Error, got %T: %v", err, err) {
		return false
	}
	return assert.Equal(t, code, e.Code,
		"error code mismatch: got %q, want %q (message: %s)", e.Code, code, e.Message)
}

// RequireFault checks the two-level shape every routed fault has: an
// outer category error with outerMessage wrapping an inner cause with
// innerCode and innerMessage. It returns the inner cause.
func RequireFault(t testing.TB, err error, outerCode sserr.Code, outerMessage string,
	innerCode sserr.Code, innerMessage string,
) *sserr.Error {
	t.Helper()
	RequireErrorCode(t, err, outerCode)
	outer, _ := sserr.AsError(err)
	require.Equal(t, outerMessage, outer.Message)

	inner, ok := outer.Cause.(*sserr.Error)
	require.True(t, ok, "expected inner *sserr.Error, got %T: %v", outer.Cause, outer.Cause)
	require.Equal(t, innerCode, inner.Code)
	require.Equal(t, innerMessage, inner.Message)
	return inner
}

// RequireViolations halts the test unless err carries exactly want as its
// violation report, with parameters in the given order.
func RequireViolations(t testing.TB, err error, want []Violation) {
	t.Helper()
	v := sserr.ViolationsOf(err)
	require.NotNil(t, v, "expected a violation report on %v", err)

	params := make([]string, 0, len(want))
	for _, w := range want {
		params = append(params, w.Parameter)
	}
	require.Equal(t, params, v.Parameters(), "violated parameters")
	for _, w := range want {
		require.Equal(t, w.Messages, v.Messages(w.Parameter), "messages for %s", w.Parameter)
	}
}

// Violation is one expected entry of a violation report.
type Violation struct {
	Parameter string
	Messages  []string
}

// TempConfigFile creates a temporary file with the given content and
// extension (".yaml", ".json") inside t.TempDir().
func TempConfigFile(t testing.TB, content, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config"+ext)
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err, "failed to write temp config file %s", path)
	return path
}

// SetEnv sets an environment variable and restores the previous value
// when the test completes. Do not combine with t.Parallel() for shared
// variables.
func SetEnv(t testing.TB, key, value string) {
	t.Helper()
	prev, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value), "failed to set env var %s", key)
	t.Cleanup(func() {
		if existed {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

// UnsetEnv unsets an environment variable and restores it when the test
// completes.
func UnsetEnv(t testing.TB, key string) {
	t.Helper()
	prev, existed := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key), "failed to unset env var %s", key)
	t.Cleanup(func() {
		if existed {
			_ = os.Setenv(key, prev)
		}
	})
}
