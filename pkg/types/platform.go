package types

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects the link primitives used by the filesystem. It is resolved
// once at startup and passed explicitly to whatever creates links.
type Platform int

const (
	// PlatformPOSIX uses native symlink and link calls
	PlatformPOSIX Platform = iota

	// PlatformWindows falls back to junctions and mklink when native calls fail
	PlatformWindows
)

// String returns the configuration name of the platform
func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	default:
		return "posix"
	}
}

// PlatformFor maps a GOOS value to a platform
func PlatformFor(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// ParsePlatform parses a configured platform name. "auto" and the empty
// string resolve to the running operating system.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return PlatformFor(runtime.GOOS), nil
	case "posix", "unix", "linux", "darwin":
		return PlatformPOSIX, nil
	case "windows", "win":
		return PlatformWindows, nil
	}
	return PlatformPOSIX, fmt.Errorf("unknown platform %q", name)
}
