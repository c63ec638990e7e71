package linker

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Manager performs unlink and link passes. It holds no state besides its
// filesystem and platform.
type Manager struct {
	fs       types.FS
	platform types.Platform
	logger   zerolog.Logger
}

// New creates a Manager
func New(fsys types.FS, platform types.Platform) *Manager {
	return &Manager{
		fs:       fsys,
		platform: platform,
		logger:   logging.GetLogger("linker"),
	}
}

// Unlink removes the destinations of mapping. Destination directories are
// removed whether they are links or real trees; destination files only when
// they are links or regular files. Missing destinations are ignored.
func (m *Manager) Unlink(mapping types.LinkMapping) types.LinkResults {
	var results types.LinkResults

	for _, pair := range mapping.Directories.Pairs() {
		if r, ok := m.removeDirectory(pair); ok {
			results = append(results, m.report(r))
		}
	}
	for _, set := range []types.LinkSet{mapping.Files, mapping.HardLinks} {
		for _, pair := range set.Pairs() {
			if r, ok := m.removeFile(pair); ok {
				results = append(results, m.report(r))
			}
		}
	}
	return results
}

// Link creates the links of mapping, replacing anything at the destinations.
// Parent directories are expected to exist in the site.
func (m *Manager) Link(mapping types.LinkMapping) types.LinkResults {
	var results types.LinkResults

	for _, pair := range mapping.Directories.Pairs() {
		results = append(results, m.report(m.create(types.ActionSymlinkDir, pair, m.fs.SymlinkDir)))
	}
	for _, pair := range mapping.Files.Pairs() {
		results = append(results, m.report(m.create(types.ActionSymlink, pair, m.fs.Symlink)))
	}
	for _, pair := range mapping.HardLinks.Pairs() {
		results = append(results, m.report(m.create(types.ActionHardLink, pair, m.fs.Link)))
	}
	return results
}

func (m *Manager) removeDirectory(pair types.LinkPair) (types.LinkResult, bool) {
	dest := pair.Destination
	info, err := m.fs.Lstat(dest)
	if os.IsNotExist(err) {
		return types.LinkResult{}, false
	}
	result := types.LinkResult{Action: types.ActionUnlink, Source: pair.Source, Destination: dest}
	switch {
	case err != nil:
		result.Err = errors.Wrapf(err, errors.ErrLinkRemove, "cannot inspect %s", dest)
	case info.IsDir() && !m.isLink(info):
		result.Action = types.ActionRemoveTree
		if err := m.removeTree(dest); err != nil {
			result.Err = errors.Wrapf(err, errors.ErrDirRemove, "cannot remove directory %s", dest)
		}
	default:
		if err := m.fs.Remove(dest); err != nil {
			result.Err = errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove %s", dest)
		}
	}
	return result, true
}

func (m *Manager) removeFile(pair types.LinkPair) (types.LinkResult, bool) {
	dest := pair.Destination
	info, err := m.fs.Lstat(dest)
	if os.IsNotExist(err) {
		return types.LinkResult{}, false
	}
	result := types.LinkResult{Action: types.ActionUnlink, Source: pair.Source, Destination: dest}
	if err != nil {
		result.Err = errors.Wrapf(err, errors.ErrLinkRemove, "cannot inspect %s", dest)
		return result, true
	}
	if !m.isLink(info) && !info.Mode().IsRegular() {
		m.logger.Debug().Str("path", dest).Msg("Leaving non-file destination in place")
		return types.LinkResult{}, false
	}
	if err := m.fs.Remove(dest); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove %s", dest)
	}
	return result, true
}

// removeTree deletes path. Links are removed as single entries at every
// level; only real directories are descended into. The first failure aborts
// the removal of path.
func (m *Manager) removeTree(path string) error {
	info, err := m.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if m.isLink(info) || !info.IsDir() {
		return m.fs.Remove(path)
	}

	entries, err := m.fs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := m.removeTree(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return m.fs.Remove(path)
}

// clear removes whatever exists at path so a link can take its place. Only
// directory links may replace a real directory tree; file and hard link
// destinations are cleared when they hold a link or a regular file.
func (m *Manager) clear(action types.LinkAction, path string) error {
	info, err := m.fs.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if m.isLink(info) {
		return m.fs.Remove(path)
	}
	if action == types.ActionSymlinkDir {
		if info.IsDir() {
			return m.removeTree(path)
		}
		return m.fs.Remove(path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrLinkRemove, "%s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrLinkRemove, "%s is not a regular file", path)
	}
	return m.fs.Remove(path)
}

func (m *Manager) create(action types.LinkAction, pair types.LinkPair, link func(oldname, newname string) error) types.LinkResult {
	result := types.LinkResult{Action: action, Source: pair.Source, Destination: pair.Destination}
	if err := m.clear(action, pair.Destination); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrLinkRemove, "cannot replace %s", pair.Destination).
			WithDetail("source", pair.Source)
		return result
	}
	if err := link(pair.Source, pair.Destination); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrLinkCreate, "cannot link %s", pair.Destination).
			WithDetail("source", pair.Source)
	}
	return result
}

func (m *Manager) isLink(info os.FileInfo) bool {
	return filesystem.IsLink(info, m.platform)
}

func (m *Manager) report(r types.LinkResult) types.LinkResult {
	if r.Err != nil {
		m.logger.Warn().
			Err(r.Err).
			Str("action", string(r.Action)).
			Str("source", r.Source).
			Str("destination", r.Destination).
			Msg("Link operation failed")
		return r
	}
	m.logger.Debug().
		Str("action", string(r.Action)).
		Str("source", r.Source).
		Str("destination", r.Destination).
		Msg("Link operation done")
	return r
}
