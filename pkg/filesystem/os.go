package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// commandRunner runs an external command and returns its combined output
type commandRunner func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// osFS implements types.FS using the OS filesystem
type osFS struct {
	platform types.Platform
	run      commandRunner
}

// NewOS creates an OS filesystem using the link primitives of platform
func NewOS(platform types.Platform) types.FS {
	return &osFS{platform: platform, run: runCommand}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) Symlink(oldname, newname string) error {
	err := os.Symlink(oldname, newname)
	if err == nil || o.platform != types.PlatformWindows {
		return err
	}
	// Unprivileged Windows accounts cannot create symlinks
	return o.mklink("/H", newname, oldname)
}

func (o *osFS) SymlinkDir(oldname, newname string) error {
	err := os.Symlink(oldname, newname)
	if err == nil || o.platform != types.PlatformWindows {
		return err
	}
	return o.mklink("/J", newname, oldname)
}

func (o *osFS) Link(oldname, newname string) error {
	err := os.Link(oldname, newname)
	if err == nil || o.platform != types.PlatformWindows {
		return err
	}
	return o.mklink("/H", newname, oldname)
}

func (o *osFS) mklink(flag, link, target string) error {
	link = filepath.FromSlash(link)
	target = filepath.FromSlash(target)
	args := []string{"/C", "mklink", flag, link, target}
	logging.LogCommand("cmd", args)

	out, err := o.run("cmd", args...)
	if err != nil {
		return &os.LinkError{
			Op:  "mklink " + flag,
			Old: target,
			New: link,
			Err: fmt.Errorf("%w: %s", err, out),
		}
	}
	return nil
}

// IsLink reports whether info describes a link on platform. Windows
// junctions are reported as irregular files.
func IsLink(info fs.FileInfo, platform types.Platform) bool {
	if info == nil {
		return false
	}
	mode := info.Mode()
	if mode&fs.ModeSymlink != 0 {
		return true
	}
	return platform == types.PlatformWindows && mode&fs.ModeIrregular != 0
}
