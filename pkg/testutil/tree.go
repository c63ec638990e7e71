package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content below dir, creating
// parent directories as needed.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "creating %s", path)
	return path
}

// CreateDir creates a directory below parent
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(path, 0755), "creating directory %s", path)
	return path
}

// CreateSymlink creates a symbolic link pointing to target
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755), "creating parent of %s", link)
	require.NoError(t, os.Symlink(target, link), "creating symlink %s -> %s", link, target)
}

// Entry describes one path of a tree snapshot
type Entry struct {
	Kind   string // "dir", "file" or "link"
	Target string // link target, for links
}

// Snapshot records every path below root without following links. Paths are
// relative to root and slash separated.
func Snapshot(t *testing.T, root string) map[string]Entry {
	t.Helper()

	out := make(map[string]Entry)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = Entry{Kind: "link", Target: target}
		case info.IsDir():
			out[rel] = Entry{Kind: "dir"}
		default:
			out[rel] = Entry{Kind: "file"}
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

// Paths returns the sorted keys of a snapshot
func Paths(snapshot map[string]Entry) []string {
	paths := make([]string, 0, len(snapshot))
	for path := range snapshot {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
