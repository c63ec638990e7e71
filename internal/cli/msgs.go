package cli

import (
	_ "embed"
)

const (
	// Command descriptions
	MsgRootShort = "Link a Joomla extension repository into a site"
	MsgRootLong  = `relink links the extensions of a development repository into a Joomla
installation, so that edits in the repository show up in the site at once.

It reads the XML descriptor of every extension below component/, modules/,
plugins/ and templates/, removes whatever currently sits at the extension's
place in the site and links the repository folders and language files there.

Running it again is safe: links are always recreated from scratch.`
	MsgVersionShort = "Print version information"
	MsgConfigShort  = "Print the effective configuration as TOML"
	MsgConfigLong   = `Print the configuration relink would use for a repository: the built-in
defaults, merged with the repository's .relink.toml, relink.toml, .relink.yaml
or relink.yaml, merged with the command-line flags.`

	// Output
	MsgBanner        = "relink %s"
	MsgDone          = "Done: %d link operation(s)"
	MsgVersionFormat = "relink version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
	MsgConfigSource  = "# loaded from %s\n"
	MsgMissingArgs   = "requires a site root and a repository root, got %d argument(s)"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPlatform    = "Link primitives to use: auto, posix or windows"
	MsgFlagSiteVersion = "Site version to assume instead of detecting it"
	MsgFlagFormat      = "Output format: auto, term or text"
)

// MsgUsageTemplate is the usage template of every command
//
//go:embed usage.tmpl
var MsgUsageTemplate string
