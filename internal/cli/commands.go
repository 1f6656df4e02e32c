package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/portico/internal/version"
	"github.com/arthur-debert/portico/pkg/config"
	"github.com/arthur-debert/portico/pkg/export"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "portico",
		Short: "A source-based package manager",
		Long: `portico builds C and C++ libraries from source for a chosen target
triplet and lets you export the built set as a relocatable tree, archive,
NuGet package or installer.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// initPaths initializes the paths instance and shows a warning if using fallback
func initPaths() (paths.Paths, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize paths: %w", err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, "Warning: no %s marker found and %s not set.\n", paths.RootMarkerFile, paths.EnvRoot)
		fmt.Fprintf(os.Stderr, "Using current directory: %s\n", p.Root())
		fmt.Fprintf(os.Stderr, "For better results, either:\n")
		fmt.Fprintf(os.Stderr, "  - Run from within a portico tree (a directory containing %s)\n", paths.RootMarkerFile)
		fmt.Fprintf(os.Stderr, "  - Set the %s environment variable\n\n", paths.EnvRoot)
	}

	return p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("portico version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <package:triplet>...",
		Short: "Export built packages as a self-contained tree",
		Long: `Export collects the requested packages together with their transitive
dependencies and repackages them, plus the build-system integration files,
into one or more output formats.

Every requested package must already be built; export never builds. Formats
can be combined in a single invocation and all work off the same staged
tree.`,
		Example: `  # Preview what an export would contain
  portico export zlib --dry-run

  # Export a directory tree and a zip archive
  portico export zlib libpng:x64-windows --raw --zip

  # Export a NuGet package with an explicit id
  portico export zlib --nuget --nuget-id mylib --nuget-version 2.0.0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			cfg, err := config.Load(p.ConfigFilePath())
			if err != nil {
				return err
			}

			opts, err := export.ParseArguments(rawArguments(cmd, args), cfg.DefaultTriplet)
			if err != nil {
				return err
			}

			log.Info().
				Str("root", p.Root()).
				Int("packages", len(opts.Specs)).
				Msg("Exporting from portico root")

			exporter := export.New(export.ExporterOptions{
				Paths:  p,
				Config: cfg,
			})
			_, err = exporter.Export(opts)
			return err
		},
	}

	for _, sw := range export.SwitchDescriptions {
		cmd.Flags().Bool(sw.Name, false, sw.Description)
	}

	cmd.Flags().String(export.OptionNugetID, "", "Id of the NuGet package (overrides the export id)")
	cmd.Flags().String(export.OptionNugetVersion, "", "Version of the NuGet package")
	cmd.Flags().String(export.OptionIFWRepositoryURL, "", "URL of the online remote repository")
	cmd.Flags().String(export.OptionIFWPackagesDir, "", "Directory for the temporary installer packages")
	cmd.Flags().String(export.OptionIFWRepositoryDir, "", "Directory for the exported repository")
	cmd.Flags().String(export.OptionIFWConfigFile, "", "Temporary installer configuration file path")
	cmd.Flags().String(export.OptionIFWInstallerFile, "", "File path of the exported installer")

	return cmd
}

// rawArguments lifts the cobra flag state into the format-negotiation input:
// switches carry their boolean value, settings are included only when they
// were actually present on the command line.
func rawArguments(cmd *cobra.Command, args []string) export.RawArguments {
	raw := export.RawArguments{
		Packages: args,
		Switches: map[string]bool{},
		Settings: map[string]string{},
	}

	for _, sw := range export.SwitchDescriptions {
		value, _ := cmd.Flags().GetBool(sw.Name)
		raw.Switches[sw.Name] = value
	}

	settings := []string{
		export.OptionNugetID,
		export.OptionNugetVersion,
		export.OptionIFWRepositoryURL,
		export.OptionIFWPackagesDir,
		export.OptionIFWRepositoryDir,
		export.OptionIFWConfigFile,
		export.OptionIFWInstallerFile,
	}
	for _, name := range settings {
		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetString(name)
			raw.Settings[name] = value
		}
	}

	return raw
}
