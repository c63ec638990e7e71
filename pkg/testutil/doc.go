// Package testutil provides helpers for building repository and site trees
// in tests: files, directories, symlinks, extension descriptors and
// assertions about the links relink leaves behind.
package testutil
