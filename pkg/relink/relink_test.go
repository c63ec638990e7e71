package relink

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/testutil"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/arthur-debert/relink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionPHP = `<?php
final class JVersion
{
	public $RELEASE = '3.2';
	public $DEV_LEVEL = '1';
}
`

// newRepository builds a repository with one extension of each kind
func newRepository(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()

	testutil.CreateFile(t, repo, "component/example.xml", testutil.ComponentXML("com_example", "frontend", "backend", "",
		[]testutil.Lang{{Tag: "en-GB", Path: "language/en-GB.com_example.ini"}}, nil))
	testutil.CreateFile(t, repo, "component/frontend/com_example.php", "<?php")
	testutil.CreateFile(t, repo, "component/backend/com_example.php", "<?php")
	testutil.CreateFile(t, repo, "component/language/en-GB.com_example.ini", "COM_EXAMPLE=\"Example\"")

	testutil.CreateFile(t, repo, "modules/site/mod_menu/mod_menu.xml", testutil.ModuleXML("mod_menu", "", ""))
	testutil.CreateFile(t, repo, "modules/site/mod_menu/mod_menu.php", "<?php")

	testutil.CreateFile(t, repo, "plugins/system/cache/cache.xml", testutil.PluginXML("cache", "system", ""))
	testutil.CreateFile(t, repo, "plugins/system/cache/cache.php", "<?php")

	testutil.CreateFile(t, repo, "templates/site/protostar/templateDetails.xml", testutil.TemplateXML("protostar", "site"))
	testutil.CreateFile(t, repo, "templates/site/protostar/index.php", "<?php")
	return repo
}

// newSite builds a 3.2.1 site with the folders links are created in
func newSite(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relink tests need a POSIX filesystem")
	}
	site := t.TempDir()
	testutil.CreateFile(t, site, "libraries/cms/version/version.php", versionPHP)
	for _, dir := range []string{"components", "administrator/components", "language/en-GB", "modules", "plugins/system", "templates"} {
		testutil.CreateDir(t, site, dir)
	}
	return site
}

func newRelinker(t *testing.T, site, repo string, out *bytes.Buffer, fsys types.FS) *Relinker {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Link.Platform = "posix"

	r, err := New(Options{
		SiteRoot:       site,
		RepositoryRoot: repo,
		Config:         cfg,
		FS:             fsys,
		Printer:        ui.NewPrinter(out, ui.FormatText),
	})
	require.NoError(t, err)
	return r
}

func TestRun_Scenario(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	var out bytes.Buffer

	report := newRelinker(t, site, repo, &out, nil).Run()
	assert.True(t, report.OK(), "failures: %v skipped: %v", report.Failures, report.Skipped)
	assert.Equal(t, "3.2.1", report.SiteVersion.Version)
	assert.True(t, report.SiteVersion.Detected())
	assert.Equal(t, 4, report.Inventory.Count())

	testutil.AssertLinkTo(t, filepath.Join(site, "components", "com_example"), filepath.Join(repo, "component", "frontend"))
	testutil.AssertLinkTo(t, filepath.Join(site, "administrator", "components", "com_example"), filepath.Join(repo, "component", "backend"))
	testutil.AssertLinkTo(t, filepath.Join(site, "language", "en-GB", "en-GB.com_example.ini"), filepath.Join(repo, "component", "language", "en-GB.com_example.ini"))
	testutil.AssertLinkTo(t, filepath.Join(site, "modules", "mod_menu"), filepath.Join(repo, "modules", "site", "mod_menu"))
	testutil.AssertLinkTo(t, filepath.Join(site, "plugins", "system", "cache"), filepath.Join(repo, "plugins", "system", "cache"))
	testutil.AssertLinkTo(t, filepath.Join(site, "templates", "protostar"), filepath.Join(repo, "templates", "site", "protostar"))

	entries, err := os.ReadDir(filepath.Join(site, "plugins", "system"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Equal(t, []string{
		"Unlinking component com_example",
		"Linking component com_example",
		"Unlinking module mod_menu (site)",
		"Linking module mod_menu (site)",
		"Unlinking plugin cache (system)",
		"Linking plugin cache (system)",
		"Unlinking template protostar (site)",
		"Linking template protostar (site)",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

// chdir switches the working directory for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestRun_RelativeRoots(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	relRepo, err := filepath.Rel(site, repo)
	require.NoError(t, err)
	chdir(t, site)
	wd, err := os.Getwd()
	require.NoError(t, err)
	absRepo := filepath.Join(wd, relRepo)

	var out bytes.Buffer
	report := newRelinker(t, ".", relRepo, &out, nil).Run()
	require.True(t, report.OK(), "failures: %v", report.Failures)

	testutil.AssertLinkTo(t, filepath.Join(site, "modules", "mod_menu"), filepath.Join(absRepo, "modules", "site", "mod_menu"))
	testutil.AssertLinkTo(t, filepath.Join(site, "language", "en-GB", "en-GB.com_example.ini"), filepath.Join(absRepo, "component", "language", "en-GB.com_example.ini"))
	_, err = os.Stat(filepath.Join(site, "modules", "mod_menu", "mod_menu.php"))
	assert.NoError(t, err, "link should resolve to the repository")
}

func TestRun_Idempotent(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	var out bytes.Buffer

	require.True(t, newRelinker(t, site, repo, &out, nil).Run().OK())
	first := testutil.Snapshot(t, site)

	require.True(t, newRelinker(t, site, repo, &out, nil).Run().OK())
	assert.Equal(t, first, testutil.Snapshot(t, site))
}

func TestRun_ReplacesRealDirectory(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	testutil.CreateFile(t, site, "modules/mod_menu/stale.php", "<?php")
	var out bytes.Buffer

	require.True(t, newRelinker(t, site, repo, &out, nil).Run().OK())
	testutil.AssertLinkTo(t, filepath.Join(site, "modules", "mod_menu"), filepath.Join(repo, "modules", "site", "mod_menu"))
	testutil.AssertNotExists(t, filepath.Join(site, "modules", "mod_menu", "stale.php"))
}

func TestRun_LegacyPluginLayout(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	testutil.CreateDir(t, repo, "plugins/system/cache/tmpl")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Site.Version = "1.5.26"
	var out bytes.Buffer
	r, err := New(Options{SiteRoot: site, RepositoryRoot: repo, Config: cfg, Printer: ui.NewPrinter(&out, ui.FormatText)})
	require.NoError(t, err)

	report := r.Run()
	require.True(t, report.OK(), "failures: %v", report.Failures)
	assert.False(t, report.SiteVersion.Detected())

	plugin := filepath.Join(repo, "plugins", "system", "cache")
	testutil.AssertLinkTo(t, filepath.Join(site, "plugins", "system", "cache.php"), filepath.Join(plugin, "cache.php"))
	testutil.AssertLinkTo(t, filepath.Join(site, "plugins", "system", "cache.xml"), filepath.Join(plugin, "cache.xml"))
	testutil.AssertLinkTo(t, filepath.Join(site, "plugins", "system", "tmpl"), filepath.Join(plugin, "tmpl"))
	testutil.AssertNotExists(t, filepath.Join(site, "plugins", "system", "cache"))
}

func TestRun_LinkFailureDoesNotStopOtherPhases(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	require.NoError(t, os.Remove(filepath.Join(site, "modules")))
	var out bytes.Buffer

	report := newRelinker(t, site, repo, &out, nil).Run()
	require.Len(t, report.Failures, 1)
	assert.Equal(t, types.ActionSymlinkDir, report.Failures[0].Action)
	assert.Equal(t, filepath.Join(site, "modules", "mod_menu"), report.Failures[0].Destination)

	testutil.AssertLinkTo(t, filepath.Join(site, "plugins", "system", "cache"), filepath.Join(repo, "plugins", "system", "cache"))
	testutil.AssertLinkTo(t, filepath.Join(site, "templates", "protostar"), filepath.Join(repo, "templates", "site", "protostar"))
	assert.Contains(t, out.String(), "Linking template protostar (site)")
}

// unreadableFS fails ReadDir on one path once it is armed
type unreadableFS struct {
	types.FS
	path  string
	armed bool
}

func (u *unreadableFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if u.armed && name == u.path {
		return nil, &os.PathError{Op: "readdir", Path: name, Err: os.ErrPermission}
	}
	return u.FS.ReadDir(name)
}

func TestRun_UnmappableExtensionIsSkippedOnce(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	plugin := filepath.Join(repo, "plugins", "system", "cache")
	fsys := &unreadableFS{FS: filesystem.NewOS(types.PlatformPOSIX), path: plugin}

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Site.Version = "1.5.26"
	var out bytes.Buffer
	r, err := New(Options{SiteRoot: site, RepositoryRoot: repo, Config: cfg, FS: fsys, Printer: ui.NewPrinter(&out, ui.FormatText)})
	require.NoError(t, err)
	fsys.armed = true

	report := r.Run()
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "cache", report.Skipped[0].Extension.Name)
	assert.True(t, errors.IsErrorCode(report.Skipped[0].Err, errors.ErrFileAccess))
	assert.Empty(t, report.Failures)
	assert.False(t, report.OK())
	assert.Equal(t, 1, strings.Count(out.String(), "Warning: skipping plugin cache (system)"))

	testutil.AssertLinkTo(t, filepath.Join(site, "templates", "protostar"), filepath.Join(repo, "templates", "site", "protostar"))
}

func TestRun_NoComponent(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	require.NoError(t, os.RemoveAll(filepath.Join(repo, "component")))
	var out bytes.Buffer

	report := newRelinker(t, site, repo, &out, nil).Run()
	assert.True(t, report.OK())
	assert.NotContains(t, out.String(), "component")
	testutil.AssertNotExists(t, filepath.Join(site, "components", "com_example"))
}

func TestPhases_RunIndividually(t *testing.T) {
	repo, site := newRepository(t), newSite(t)
	var out bytes.Buffer
	r := newRelinker(t, site, repo, &out, nil)

	r.LinkModules()
	dest := filepath.Join(site, "modules", "mod_menu")
	testutil.AssertLinkTo(t, dest, filepath.Join(repo, "modules", "site", "mod_menu"))
	testutil.AssertNotExists(t, filepath.Join(site, "templates", "protostar"))

	r.UnlinkModules()
	testutil.AssertNotExists(t, dest)
	assert.Equal(t, 2, r.Report().Succeeded)
}

func TestNew_Errors(t *testing.T) {
	repo := newRepository(t)

	_, err := New(Options{RepositoryRoot: repo})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = New(Options{SiteRoot: filepath.Join(t.TempDir(), "missing"), RepositoryRoot: repo})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	site := newSite(t)
	_, err = New(Options{SiteRoot: site, RepositoryRoot: filepath.Join(t.TempDir(), "missing")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	cfg, cerr := config.Default()
	require.NoError(t, cerr)
	cfg.Site.Version = "not-a-version"
	_, err = New(Options{SiteRoot: site, RepositoryRoot: repo, Config: cfg})
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionInvalid))
}
