package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// RepositoryConfigFiles are the repository config file names, in lookup order
var RepositoryConfigFiles = []string{".relink.toml", "relink.toml", ".relink.yaml", "relink.yaml"}

// Default returns the embedded defaults
func Default() (*Config, error) {
	return Load("", nil)
}

// Load builds the configuration for a repository. repositoryRoot may be empty
// to skip the repository config file. overrides are flat keys such as
// "link.platform" and take precedence over everything else; empty string
// values are ignored.
func Load(repositoryRoot string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	source := ""
	if repositoryRoot != "" {
		source = findRepositoryConfig(repositoryRoot)
	}
	if source != "" {
		if err := k.Load(file.Provider(source), parserFor(source)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		logger.Debug().Str("path", source).Msg("Loaded repository config")
	}

	if flat := nonEmpty(overrides); len(flat) > 0 {
		if err := k.Load(confmap.Provider(flat, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late during a run
func (c *Config) Validate() error {
	if !doublestar.ValidatePattern(c.Manifest.Pattern) {
		return errors.Newf(errors.ErrConfigValid, "invalid manifest pattern %q", c.Manifest.Pattern)
	}
	if !doublestar.ValidatePattern(c.CLI.Pattern) {
		return errors.Newf(errors.ErrConfigValid, "invalid cli pattern %q", c.CLI.Pattern)
	}
	if len(c.Manifest.RootTags) == 0 {
		return errors.New(errors.ErrConfigValid, "manifest.root_tags must not be empty")
	}
	if _, err := semver.ParseTolerant(c.Plugins.FolderThreshold); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid plugins.folder_threshold %q", c.Plugins.FolderThreshold)
	}
	if _, err := types.ParsePlatform(c.Link.Platform); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid link.platform")
	}
	return nil
}

// Platform resolves link.platform
func (c *Config) Platform() types.Platform {
	p, _ := types.ParsePlatform(c.Link.Platform)
	return p
}

func findRepositoryConfig(root string) string {
	for _, name := range RepositoryConfigFiles {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return yaml.Parser()
	}
	return toml.Parser()
}

func nonEmpty(overrides map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(overrides))
	for key, value := range overrides {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		out[key] = value
	}
	return out
}
