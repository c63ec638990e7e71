package siteversion

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/blang/semver/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

var (
	releasePattern  = regexp.MustCompile(`\bRELEASE\s*=\s*['"]([0-9][^'"]*)['"]`)
	devLevelPattern = regexp.MustCompile(`\bDEV_LEVEL\s*=\s*['"]?([0-9][^'";\s]*)['"]?`)
	majorPattern    = regexp.MustCompile(`\bMAJOR_VERSION\s*=\s*['"]?(\d+)`)
	minorPattern    = regexp.MustCompile(`\bMINOR_VERSION\s*=\s*['"]?(\d+)`)
	patchPattern    = regexp.MustCompile(`\bPATCH_VERSION\s*=\s*['"]?(\d+)`)
)

// Result is the outcome of a detection
type Result struct {
	Version string

	// File is the declaration file the version was read from. Empty when
	// the fallback version is used.
	File string
}

// Detected reports whether the version was read from the site
func (r Result) Detected() bool {
	return r.File != ""
}

// Detector reads site versions
type Detector struct {
	fs       types.FS
	files    []string
	fallback string
	logger   zerolog.Logger
}

// NewDetector creates a detector. files are relative to the site root and
// tried in order; fallback is used when none of them yields a version.
func NewDetector(fsys types.FS, files []string, fallback string) *Detector {
	return &Detector{
		fs:       fsys,
		files:    files,
		fallback: fallback,
		logger:   logging.GetLogger("siteversion"),
	}
}

// Detect returns the version of the site at siteRoot
func (d *Detector) Detect(siteRoot string) Result {
	for _, rel := range d.files {
		path := filepath.Join(siteRoot, filepath.FromSlash(rel))
		content, err := d.fs.ReadFile(path)
		if err != nil {
			d.logger.Trace().Err(err).Str("file", path).Msg("Version file not readable")
			continue
		}

		version, err := Parse(content)
		if err != nil {
			d.logger.Debug().Err(err).Str("file", path).Msg("No version in file")
			continue
		}

		d.logger.Info().Str("version", version).Str("file", path).Msg("Detected site version")
		return Result{Version: version, File: path}
	}

	d.logger.Warn().
		Str("site", siteRoot).
		Str("fallback", d.fallback).
		Msg("Could not detect the site version, using fallback")
	return Result{Version: d.fallback}
}

// Parse extracts the short version from the content of a version file
func Parse(content []byte) (string, error) {
	if release := submatch(releasePattern, content); release != "" {
		if level := submatch(devLevelPattern, content); level != "" {
			return release + "." + level, nil
		}
		return release, nil
	}

	major := submatch(majorPattern, content)
	minor := submatch(minorPattern, content)
	if major != "" && minor != "" {
		patch := submatch(patchPattern, content)
		if patch == "" {
			patch = "0"
		}
		return fmt.Sprintf("%s.%s.%s", major, minor, patch), nil
	}

	return "", errors.New(errors.ErrVersionNotFound, "no version declaration found")
}

func submatch(re *regexp.Regexp, content []byte) string {
	m := re.FindSubmatch(content)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// AtLeast reports whether version is greater than or equal to threshold.
// Short versions such as "1.5" or "3.10" are accepted.
func AtLeast(version, threshold string) (bool, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrVersionInvalid, "invalid version %q", version)
	}
	t, err := semver.ParseTolerant(threshold)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrVersionInvalid, "invalid threshold %q", threshold)
	}
	return v.GTE(t), nil
}
