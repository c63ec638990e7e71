package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "component", cfg.Layout.Component)
	assert.Equal(t, "modules", cfg.Layout.Modules)
	assert.Equal(t, "admin", cfg.Layout.Admin)
	assert.Equal(t, "*.xml", cfg.Manifest.Pattern)
	assert.Equal(t, []string{"extension", "install"}, cfg.Manifest.RootTags)
	assert.Equal(t, "*.php", cfg.CLI.Pattern)
	assert.Equal(t, []string{"system", "content", "user"}, cfg.Plugins.GroupMarkers)
	assert.Equal(t, "1.6.0", cfg.Plugins.FolderThreshold)
	assert.Equal(t, "libraries/joomla/version.php", cfg.Site.VersionFiles[0])
	assert.Len(t, cfg.Site.VersionFiles, 4)
	assert.Equal(t, "1.5", cfg.Site.DefaultVersion)
	assert.Empty(t, cfg.Site.Version)
	assert.Equal(t, "auto", cfg.Link.Platform)
	assert.Empty(t, cfg.Source)
}

func TestLoad_RepositoryTOML(t *testing.T) {
	root := t.TempDir()
	content := `
[layout]
component = "com"

[plugins]
group_markers = ["system", "authentication"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".relink.toml"), []byte(content), 0644))

	cfg, err := Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "com", cfg.Layout.Component)
	assert.Equal(t, "modules", cfg.Layout.Modules, "unset keys keep their defaults")
	assert.Equal(t, []string{"system", "authentication"}, cfg.Plugins.GroupMarkers)
	assert.Equal(t, filepath.Join(root, ".relink.toml"), cfg.Source)
}

func TestLoad_RepositoryYAML(t *testing.T) {
	root := t.TempDir()
	content := "site:\n  version: \"3.10\"\nlink:\n  platform: windows\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "relink.yaml"), []byte(content), 0644))

	cfg, err := Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.10", cfg.Site.Version)
	assert.Equal(t, types.PlatformWindows, cfg.Platform())
}

func TestLoad_LookupOrder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "relink.toml"), []byte("[layout]\nmodules = \"mods\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "relink.yaml"), []byte("layout:\n  modules: other\n"), 0644))

	cfg, err := Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "mods", cfg.Layout.Modules)
}

func TestLoad_Overrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".relink.toml"), []byte("[link]\nplatform = \"windows\"\n"), 0644))

	cfg, err := Load(root, map[string]interface{}{
		"link.platform": "posix",
		"site.version":  "",
	})
	require.NoError(t, err)
	assert.Equal(t, types.PlatformPOSIX, cfg.Platform())
	assert.Empty(t, cfg.Site.Version, "empty overrides are ignored")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad toml", "[layout\n", errors.ErrConfigLoad},
		{"bad platform", "[link]\nplatform = \"beos\"\n", errors.ErrConfigValid},
		{"bad threshold", "[plugins]\nfolder_threshold = \"soon\"\n", errors.ErrConfigValid},
		{"bad pattern", "[manifest]\npattern = \"[*.xml\"\n", errors.ErrConfigValid},
		{"no root tags", "[manifest]\nroot_tags = []\n", errors.ErrConfigValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, ".relink.toml"), []byte(tt.content), 0644))
			_, err := Load(root, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestMarshal(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "[layout]")
	assert.Contains(t, text, "folder_threshold")
	assert.Contains(t, text, "1.6.0")
	assert.NotContains(t, text, "Source")
}
