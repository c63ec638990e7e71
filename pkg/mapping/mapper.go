package mapping

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/registry"
	"github.com/arthur-debert/relink/pkg/siteversion"
	"github.com/arthur-debert/relink/pkg/types"
)

// mapFunc computes the mapping of one extension kind
type mapFunc func(m *Mapper, ext types.Extension) (types.LinkMapping, error)

var kindMappers = registry.New[types.ExtensionKind, mapFunc]()

func init() {
	registry.MustRegister(kindMappers, types.KindComponent, mapComponent)
	registry.MustRegister(kindMappers, types.KindModule, mapModule)
	registry.MustRegister(kindMappers, types.KindPlugin, mapPlugin)
	registry.MustRegister(kindMappers, types.KindTemplate, mapTemplate)
}

// Options configures a Mapper
type Options struct {
	// TargetRoot is the root of the site installation
	TargetRoot string

	// SiteVersion is the version of the site
	SiteVersion string

	// FolderThreshold is the first site version loading each plugin from
	// its own folder
	FolderThreshold string

	// CLIPattern matches the component CLI scripts to hard-link
	CLIPattern string
}

// OptionsFromConfig builds mapper options for a site
func OptionsFromConfig(cfg *config.Config, targetRoot, siteVersion string) Options {
	return Options{
		TargetRoot:      targetRoot,
		SiteVersion:     siteVersion,
		FolderThreshold: cfg.Plugins.FolderThreshold,
		CLIPattern:      cfg.CLI.Pattern,
	}
}

// Mapper computes link mappings for a site
type Mapper struct {
	fs            types.FS
	opts          Options
	pluginFolders bool
	logger        zerolog.Logger
}

// New creates a Mapper. It fails when the site version or the threshold
// cannot be compared.
func New(fsys types.FS, opts Options) (*Mapper, error) {
	folders, err := siteversion.AtLeast(opts.SiteVersion, opts.FolderThreshold)
	if err != nil {
		return nil, err
	}

	m := &Mapper{
		fs:            fsys,
		opts:          opts,
		pluginFolders: folders,
		logger:        logging.GetLogger("mapping"),
	}
	m.logger.Debug().
		Str("target", opts.TargetRoot).
		Str("version", opts.SiteVersion).
		Bool("pluginFolders", folders).
		Msg("Mapper ready")
	return m, nil
}

// PluginFolders reports whether plugins are linked as a single folder
func (m *Mapper) PluginFolders() bool {
	return m.pluginFolders
}

// Map computes the mapping of ext
func (m *Mapper) Map(ext types.Extension) (types.LinkMapping, error) {
	if ext.IsZero() {
		return types.LinkMapping{}, errors.New(errors.ErrInvalidInput, "cannot map an extension without a name")
	}

	fn, err := kindMappers.Get(ext.Kind)
	if err != nil {
		return types.LinkMapping{}, errors.Wrapf(err, errors.ErrInvalidInput, "no mapper for kind %q", ext.Kind)
	}

	mapping, err := fn(m, ext)
	if err != nil {
		return types.LinkMapping{}, err
	}

	for _, c := range mapping.Collisions {
		m.logger.Info().
			Str("extension", ext.Name).
			Str("destination", c.Replaced.Destination).
			Str("replaced", c.Replaced.Source).
			Str("by", c.By.Source).
			Msg("Link declared twice, last declaration wins")
	}
	return mapping, nil
}

// target joins elements below the site root
func (m *Mapper) target(elem ...string) string {
	return filepath.Join(append([]string{m.opts.TargetRoot}, elem...)...)
}

// clientBase is the site root for front-end extensions and
// administrator/ for everything else
func (m *Mapper) clientBase(client types.Client) string {
	if client.IsSite() {
		return m.target()
	}
	return m.target("administrator")
}

// addLanguages adds one file link per declared language file. The directory
// structure of the declaration is flattened into the locale folder.
func (m *Mapper) addLanguages(mapping *types.LinkMapping, group types.LanguageGroup, base string) {
	for _, lang := range group.All() {
		rel := filepath.FromSlash(lang.Path)
		source := filepath.Join(group.Folder, rel)
		mapping.AddFile(source, filepath.Join(base, "language", lang.Locale, filepath.Base(rel)))
	}
}
