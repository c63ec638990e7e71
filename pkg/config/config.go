package config

// Config is the complete relink configuration.
type Config struct {
	Layout   Layout   `koanf:"layout" toml:"layout"`
	Manifest Manifest `koanf:"manifest" toml:"manifest"`
	CLI      Scripts  `koanf:"cli" toml:"cli"`
	Plugins  Plugins  `koanf:"plugins" toml:"plugins"`
	Site     Site     `koanf:"site" toml:"site"`
	Link     Link     `koanf:"link" toml:"link"`

	// Source is the repository config file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// Layout holds the folder names of the repository layout
type Layout struct {
	Component string `koanf:"component" toml:"component"`
	Modules   string `koanf:"modules" toml:"modules"`
	Plugins   string `koanf:"plugins" toml:"plugins"`
	Templates string `koanf:"templates" toml:"templates"`
	Site      string `koanf:"site" toml:"site"`
	Admin     string `koanf:"admin" toml:"admin"`
	CLI       string `koanf:"cli" toml:"cli"`
}

// Manifest holds descriptor lookup settings
type Manifest struct {
	// Pattern matches descriptor file names
	Pattern string `koanf:"pattern" toml:"pattern"`
	// RootTags are the accepted root element names, preferred first
	RootTags []string `koanf:"root_tags" toml:"root_tags"`
}

// Scripts holds the component CLI script settings
type Scripts struct {
	Pattern string `koanf:"pattern" toml:"pattern"`
}

// Plugins holds plugin layout settings
type Plugins struct {
	GroupMarkers    []string `koanf:"group_markers" toml:"group_markers"`
	FolderThreshold string   `koanf:"folder_threshold" toml:"folder_threshold"`
}

// Site holds target installation settings
type Site struct {
	VersionFiles   []string `koanf:"version_files" toml:"version_files"`
	DefaultVersion string   `koanf:"default_version" toml:"default_version"`
	// Version skips detection when set
	Version string `koanf:"version" toml:"version"`
}

// Link holds link creation settings
type Link struct {
	Platform string `koanf:"platform" toml:"platform"`
}
