package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertLinkTo checks that path is a symlink pointing at target
func AssertLinkTo(t *testing.T, path, target string, msgAndArgs ...interface{}) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	if !assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", path) {
		return false
	}
	got, err := os.Readlink(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, target, got, msgAndArgs...)
}

// AssertNotExists checks that nothing, not even a dangling link, exists at path
func AssertNotExists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

// AssertSameFile checks that two paths are hard links to the same file
func AssertSameFile(t *testing.T, a, b string) bool {
	t.Helper()

	ai, err := os.Stat(a)
	if !assert.NoError(t, err) {
		return false
	}
	bi, err := os.Lstat(b)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.True(t, os.SameFile(ai, bi), "%s and %s are not the same file", a, b)
}
