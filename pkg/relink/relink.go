package relink

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/linker"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/mapping"
	"github.com/arthur-debert/relink/pkg/scanner"
	"github.com/arthur-debert/relink/pkg/siteversion"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/arthur-debert/relink/pkg/ui"
)

// Options configures a Relinker
type Options struct {
	SiteRoot       string
	RepositoryRoot string

	// Config defaults to config.Default()
	Config *config.Config

	// FS defaults to the OS filesystem of the configured platform
	FS types.FS

	// Printer defaults to stdout
	Printer *ui.Printer
}

// Skipped is an extension whose links could not be computed
type Skipped struct {
	Extension types.Extension
	Err       error
}

// Report summarizes a run
type Report struct {
	SiteVersion siteversion.Result
	Inventory   *types.Inventory
	Platform    types.Platform

	// Succeeded counts the link operations that went through
	Succeeded int
	Failures  types.LinkResults
	Skipped   []Skipped
}

// OK reports whether every extension was processed without failure
func (r *Report) OK() bool {
	return len(r.Failures) == 0 && len(r.Skipped) == 0
}

// Relinker runs the link phases for one site and one repository
type Relinker struct {
	mapper  *mapping.Mapper
	linker  *linker.Manager
	printer *ui.Printer
	report  *Report
	skipped map[string]bool
	logger  zerolog.Logger
}

// New prepares a run: the site version is resolved and the repository
// scanned. Nothing is written until one of the phases runs.
func New(opts Options) (*Relinker, error) {
	logger := logging.GetLogger("relink")

	if opts.SiteRoot == "" || opts.RepositoryRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "site root and repository root are required")
	}

	// Link targets are stored as given, so both roots must be absolute
	siteRoot, err := filepath.Abs(opts.SiteRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve site root").
			WithDetail("path", opts.SiteRoot)
	}
	repositoryRoot, err := filepath.Abs(opts.RepositoryRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve repository root").
			WithDetail("path", opts.RepositoryRoot)
	}

	cfg := opts.Config
	if cfg == nil {
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}

	platform := cfg.Platform()
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS(platform)
	}
	printer := opts.Printer
	if printer == nil {
		printer = ui.NewPrinter(os.Stdout, ui.FormatAuto)
	}

	if err := checkDir(fsys, siteRoot, "site root"); err != nil {
		return nil, err
	}

	version := siteversion.Result{Version: cfg.Site.Version}
	if version.Version == "" {
		version = siteversion.NewDetector(fsys, cfg.Site.VersionFiles, cfg.Site.DefaultVersion).Detect(siteRoot)
	} else {
		logger.Info().Str("version", version.Version).Msg("Using configured site version")
	}

	mapper, err := mapping.New(fsys, mapping.OptionsFromConfig(cfg, siteRoot, version.Version))
	if err != nil {
		return nil, err
	}

	inventory, err := scanner.New(fsys, cfg).Scan(repositoryRoot)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("site", siteRoot).
		Str("repository", repositoryRoot).
		Str("platform", platform.String()).
		Int("extensions", inventory.Count()).
		Msg("Relinker ready")

	return &Relinker{
		mapper:  mapper,
		linker:  linker.New(fsys, platform),
		printer: printer,
		report: &Report{
			SiteVersion: version,
			Inventory:   inventory,
			Platform:    platform,
		},
		skipped: make(map[string]bool),
		logger:  logger,
	}, nil
}

func checkDir(fsys types.FS, path, what string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrNotFound, "%s does not exist", what).WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", what).WithDetail("path", path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", what).WithDetail("path", path)
	}
	return nil
}

// Report returns the report of the phases run so far
func (r *Relinker) Report() *Report {
	return r.report
}

// Run executes the eight phases in order and returns the report
func (r *Relinker) Run() *Report {
	done := logging.LogOperationStart(r.logger, "relink")
	defer done()

	r.UnlinkComponent()
	r.LinkComponent()
	r.UnlinkModules()
	r.LinkModules()
	r.UnlinkPlugins()
	r.LinkPlugins()
	r.UnlinkTemplates()
	r.LinkTemplates()

	for _, f := range r.report.Failures {
		r.logger.Warn().
			Str("action", string(f.Action)).
			Str("source", f.Source).
			Str("destination", f.Destination).
			Err(f.Err).
			Msg("Failed link operation")
	}
	r.logger.Info().
		Int("succeeded", r.report.Succeeded).
		Int("failed", len(r.report.Failures)).
		Int("skipped", len(r.report.Skipped)).
		Msg("Relink finished")
	return r.report
}

// UnlinkComponent removes the links of the component
func (r *Relinker) UnlinkComponent() { r.pass(ui.PhaseUnlink, r.report.Inventory.ByKind(types.KindComponent)) }

// LinkComponent creates the links of the component
func (r *Relinker) LinkComponent() { r.pass(ui.PhaseLink, r.report.Inventory.ByKind(types.KindComponent)) }

// UnlinkModules removes the links of every module
func (r *Relinker) UnlinkModules() { r.pass(ui.PhaseUnlink, r.report.Inventory.ByKind(types.KindModule)) }

// LinkModules creates the links of every module
func (r *Relinker) LinkModules() { r.pass(ui.PhaseLink, r.report.Inventory.ByKind(types.KindModule)) }

// UnlinkPlugins removes the links of every plugin
func (r *Relinker) UnlinkPlugins() { r.pass(ui.PhaseUnlink, r.report.Inventory.ByKind(types.KindPlugin)) }

// LinkPlugins creates the links of every plugin
func (r *Relinker) LinkPlugins() { r.pass(ui.PhaseLink, r.report.Inventory.ByKind(types.KindPlugin)) }

// UnlinkTemplates removes the links of every template
func (r *Relinker) UnlinkTemplates() { r.pass(ui.PhaseUnlink, r.report.Inventory.ByKind(types.KindTemplate)) }

// LinkTemplates creates the links of every template
func (r *Relinker) LinkTemplates() { r.pass(ui.PhaseLink, r.report.Inventory.ByKind(types.KindTemplate)) }

// pass maps every extension again and applies the mapping. The mapping is
// recomputed because the unlink pass of a category may have changed what
// the mapper reads.
func (r *Relinker) pass(phase ui.Phase, exts []types.Extension) {
	for _, ext := range exts {
		r.printer.Progress(phase, ext)

		m, err := r.mapper.Map(ext)
		if err != nil {
			r.skip(ext, err)
			continue
		}

		var results types.LinkResults
		if phase == ui.PhaseUnlink {
			results = r.linker.Unlink(m)
		} else {
			results = r.linker.Link(m)
		}
		r.report.Succeeded += results.Succeeded()
		r.report.Failures = append(r.report.Failures, results.Failed()...)
	}
}

// skip records ext once, however many phases fail to map it
func (r *Relinker) skip(ext types.Extension, err error) {
	key := string(ext.Kind) + ":" + ext.Path
	if r.skipped[key] {
		return
	}
	r.skipped[key] = true

	r.logger.Warn().Err(err).
		Str("kind", string(ext.Kind)).
		Str("extension", ext.Name).
		Msg("Skipping extension")
	r.printer.Warning("skipping %s %s: %v", ext.Kind, ext.Label(), err)
	r.report.Skipped = append(r.report.Skipped, Skipped{Extension: ext, Err: err})
}
