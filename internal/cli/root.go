package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/relink/internal/version"
	"github.com/arthur-debert/relink/pkg/cobrax/topics"
	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/relink"
	"github.com/arthur-debert/relink/pkg/ui"
)

//go:embed help/*.md
var helpFiles embed.FS

// globalFlags are shared by the root command and its subcommands
type globalFlags struct {
	verbosity   int
	platform    string
	siteVersion string
	format      string
}

// overrides returns the configuration keys set on the command line
func (f *globalFlags) overrides() map[string]interface{} {
	return map[string]interface{}{
		"link.platform": f.platform,
		"site.version":  f.siteVersion,
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "relink <site> <repository>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Usage()
				return fmt.Errorf(MsgMissingArgs, len(args))
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelink(cmd, flags, args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.platform, "platform", "", MsgFlagPlatform)
	rootCmd.PersistentFlags().StringVar(&flags.siteVersion, "site-version", "", MsgFlagSiteVersion)
	rootCmd.Flags().StringVar(&flags.format, "format", "auto", MsgFlagFormat)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(flags))

	helpFS, err := fs.Sub(helpFiles, "help")
	if err == nil {
		_, err = topics.Initialize(rootCmd, helpFS, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func runRelink(cmd *cobra.Command, flags *globalFlags, site, repository string) error {
	logger := logging.GetLogger("cli")
	out := cmd.OutOrStdout()

	format, err := ui.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(out, format)
	printer.Banner(fmt.Sprintf(MsgBanner, version.Version))

	cfg, err := config.Load(repository, flags.overrides())
	if err != nil {
		return err
	}

	relinker, err := relink.New(relink.Options{
		SiteRoot:       site,
		RepositoryRoot: repository,
		Config:         cfg,
		Printer:        printer,
	})
	if err != nil {
		return err
	}

	report := relinker.Run()
	if len(report.Failures) == 0 {
		printer.Success(MsgDone, report.Succeeded)
	}
	printer.Failures(report.Failures)

	logger.Info().
		Str("siteVersion", report.SiteVersion.Version).
		Int("extensions", report.Inventory.Count()).
		Int("failed", len(report.Failures)).
		Int("skipped", len(report.Skipped)).
		Msg("Relink command finished")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config [repository]",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository := ""
			if len(args) == 1 {
				repository = args[0]
			}

			cfg, err := config.Load(repository, flags.overrides())
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Source != "" {
				fmt.Fprintf(out, MsgConfigSource, cfg.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
