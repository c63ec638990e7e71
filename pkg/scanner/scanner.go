package scanner

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/manifest"
	"github.com/arthur-debert/relink/pkg/types"
)

// Scanner builds the extension inventory of a repository
type Scanner struct {
	fs      types.FS
	reader  *manifest.Reader
	layout  config.Layout
	markers []string
	logger  zerolog.Logger
}

// New creates a Scanner configured by cfg
func New(fsys types.FS, cfg *config.Config) *Scanner {
	return &Scanner{
		fs:      fsys,
		reader:  manifest.NewReader(fsys, manifest.OptionsFromConfig(cfg)),
		layout:  cfg.Layout,
		markers: cfg.Plugins.GroupMarkers,
		logger:  logging.GetLogger("scanner"),
	}
}

// scanFolder is a folder holding extension directories, with the client
// given to extensions that do not declare one
type scanFolder struct {
	path   string
	client types.Client
}

// Scan discovers every extension below repositoryRoot
func (s *Scanner) Scan(repositoryRoot string) (*types.Inventory, error) {
	info, err := s.fs.Stat(repositoryRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "repository root does not exist").
				WithDetail("path", repositoryRoot)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access repository root").
			WithDetail("path", repositoryRoot)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "repository root is not a directory").
			WithDetail("path", repositoryRoot)
	}

	done := logging.LogOperationStart(s.logger, "scan")
	defer done()

	inv := &types.Inventory{
		Component: s.scanComponent(filepath.Join(repositoryRoot, s.layout.Component)),
		Modules:   s.scanCategory(s.clientFolders(filepath.Join(repositoryRoot, s.layout.Modules)), types.KindModule),
		Plugins:   s.scanCategory(s.groupFolders(filepath.Join(repositoryRoot, s.layout.Plugins)), types.KindPlugin),
		Templates: s.scanCategory(s.clientFolders(filepath.Join(repositoryRoot, s.layout.Templates)), types.KindTemplate),
	}

	s.logger.Info().
		Str("component", inv.Component.Name).
		Int("modules", len(inv.Modules)).
		Int("plugins", len(inv.Plugins)).
		Int("templates", len(inv.Templates)).
		Msg("Repository scanned")
	return inv, nil
}

// scanComponent reads the component directory. A repository without a
// component yields a placeholder record.
func (s *Scanner) scanComponent(dir string) types.Extension {
	placeholder := types.Extension{Kind: types.KindComponent}
	if !s.isDir(dir) {
		s.logger.Debug().Str("path", dir).Msg("No component directory")
		return placeholder
	}

	ext, err := s.reader.Read(dir, types.KindComponent)
	if err != nil {
		s.reject(dir, err)
		return placeholder
	}
	return ext
}

// clientFolders returns admin/ and site/ when either exists, the category
// folder itself otherwise
func (s *Scanner) clientFolders(base string) []scanFolder {
	admin := filepath.Join(base, s.layout.Admin)
	site := filepath.Join(base, s.layout.Site)
	if s.isDir(admin) || s.isDir(site) {
		return []scanFolder{
			{path: admin, client: types.ClientAdministrator},
			{path: site, client: types.ClientSite},
		}
	}
	return []scanFolder{{path: base, client: types.ClientSite}}
}

// groupFolders returns every sub-directory of base when one of the known
// group folders exists, base itself otherwise
func (s *Scanner) groupFolders(base string) []scanFolder {
	grouped := false
	for _, marker := range s.markers {
		if s.isDir(filepath.Join(base, marker)) {
			grouped = true
			break
		}
	}
	if !grouped {
		return []scanFolder{{path: base}}
	}

	var folders []scanFolder
	for _, dir := range s.subdirectories(base) {
		folders = append(folders, scanFolder{path: dir})
	}
	return folders
}

func (s *Scanner) scanCategory(folders []scanFolder, kind types.ExtensionKind) []types.Extension {
	var found []types.Extension
	for _, folder := range folders {
		if !s.isDir(folder.path) {
			continue
		}
		for _, dir := range s.subdirectories(folder.path) {
			ext, err := s.reader.Read(dir, kind)
			if err != nil {
				s.reject(dir, err)
				continue
			}
			if ext.Client == types.ClientNone && kind != types.KindPlugin {
				ext.Client = folder.client
			}
			s.logger.Debug().
				Str("kind", kind.String()).
				Str("name", ext.Name).
				Str("path", dir).
				Msg("Found extension")
			found = append(found, ext)
		}
	}
	return found
}

func (s *Scanner) reject(dir string, err error) {
	if errors.IsSkippable(err) {
		s.logger.Trace().Err(err).Str("path", dir).Msg("Not an extension directory")
		return
	}
	s.logger.Warn().Err(err).Str("path", dir).Msg("Skipping extension")
}

// subdirectories lists the immediate sub-directories of dir, following links
func (s *Scanner) subdirectories(dir string) []string {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", dir).Msg("Cannot read directory")
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() || s.isDir(path) {
			dirs = append(dirs, path)
		}
	}
	return dirs
}

func (s *Scanner) isDir(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}
