// Package filesystem provides the OS-backed implementation of types.FS.
//
// Links are created with native symlink and link calls. On Windows, where
// creating symlinks usually needs elevated rights, directory links fall back
// to junctions and file links to hard links through mklink.
package filesystem
