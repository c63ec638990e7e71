package mapping

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

func mapComponent(m *Mapper, ext types.Extension) (types.LinkMapping, error) {
	var mapping types.LinkMapping
	c := ext.Component
	if c == nil {
		return mapping, errors.Newf(errors.ErrInvalidInput, "component %s has no layout", ext.Name)
	}

	mapping.AddDirectory(c.SiteFolder, m.target("components", ext.Name))
	mapping.AddDirectory(c.AdminFolder, m.target("administrator", "components", ext.Name))
	if c.MediaFolder != "" {
		mapping.AddDirectory(c.MediaFolder, m.target("media", ext.Name))
	}

	if c.CLIFolder != "" {
		scripts, err := m.cliScripts(c.CLIFolder)
		if err != nil {
			return types.LinkMapping{}, err
		}
		for _, name := range scripts {
			mapping.AddHardLink(filepath.Join(c.CLIFolder, name), m.target("cli", name))
		}
	}

	m.addLanguages(&mapping, c.SiteLanguages, m.target())
	m.addLanguages(&mapping, c.AdminLanguages, m.target("administrator"))
	return mapping, nil
}

// cliScripts lists the regular files of dir matching the CLI pattern
func (m *Mapper) cliScripts(dir string) ([]string, error) {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list CLI scripts in %s", dir).
			WithDetail("path", dir)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(m.opts.CLIPattern, entry.Name()); !ok {
			continue
		}
		info, err := m.fs.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		scripts = append(scripts, entry.Name())
	}
	return scripts, nil
}

func mapModule(m *Mapper, ext types.Extension) (types.LinkMapping, error) {
	var mapping types.LinkMapping
	base := m.clientBase(ext.Client)
	mapping.AddDirectory(ext.Path, filepath.Join(base, "modules", ext.Name))
	m.addLanguages(&mapping, ext.Languages, base)
	return mapping, nil
}

func mapTemplate(m *Mapper, ext types.Extension) (types.LinkMapping, error) {
	var mapping types.LinkMapping
	base := m.clientBase(ext.Client)
	mapping.AddDirectory(ext.Path, filepath.Join(base, "templates", ext.Name))
	m.addLanguages(&mapping, ext.Languages, base)
	return mapping, nil
}

// mapPlugin links the plugin folder as a whole on sites that load plugins
// from their own folder. Older sites keep every plugin of a group in one
// folder, so each item of the plugin is linked there individually.
func mapPlugin(m *Mapper, ext types.Extension) (types.LinkMapping, error) {
	var mapping types.LinkMapping
	group := m.target("plugins", ext.Group)

	if m.pluginFolders {
		mapping.AddDirectory(ext.Path, filepath.Join(group, ext.Name))
	} else {
		entries, err := m.fs.ReadDir(ext.Path)
		if err != nil {
			return types.LinkMapping{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot list plugin %s", ext.Path).
				WithDetail("path", ext.Path)
		}
		for _, entry := range entries {
			source := filepath.Join(ext.Path, entry.Name())
			destination := filepath.Join(group, entry.Name())
			info, err := m.fs.Stat(source)
			if err != nil {
				m.logger.Warn().Err(err).Str("path", source).Msg("Skipping unreadable plugin item")
				continue
			}
			if info.IsDir() {
				mapping.AddDirectory(source, destination)
			} else {
				mapping.AddFile(source, destination)
			}
		}
	}

	// Plugins are registered on the back-end whatever their client
	m.addLanguages(&mapping, ext.Languages, m.target("administrator"))
	return mapping, nil
}
