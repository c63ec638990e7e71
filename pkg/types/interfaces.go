package types

import (
	"io/fs"
)

// FS is the filesystem surface relink reads from and writes links to.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	Readlink(name string) (string, error)

	// Symlink creates a file symlink
	Symlink(oldname, newname string) error

	// SymlinkDir creates a directory link
	SymlinkDir(oldname, newname string) error

	// Link creates a hard link
	Link(oldname, newname string) error

	// Remove removes a file, an empty directory or a link without following it
	Remove(name string) error
}
