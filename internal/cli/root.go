// Package cli provides the command-line interface of the documentation
// generator.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
)

// NewRootCommand returns the docgen root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "docgen",
		Short:        "Generate and check Markdown documentation for Bicep local extension resources",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// addCommonFlags registers the flags shared by generate and check, bound
// into opts.
func addCommonFlags(c *cobra.Command, opts *config.Options) {
	c.Flags().StringSliceVar(&opts.SourceDirs, "source", opts.SourceDirs, "Directories to scan for annotated declarations")
	c.Flags().StringSliceVar(&opts.FilePatterns, "pattern", opts.FilePatterns, "File name patterns to include")
	c.Flags().StringVar(&opts.IgnoreFile, "ignore-file", opts.IgnoreFile, "Path to an ignore file (default \".docgenignore\" in the first source dir)")
	c.Flags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
}

// applyFileConfig overlays config-file and environment values onto opts for
// every flag the user did not set explicitly.
func applyFileConfig(c *cobra.Command, opts *config.Options, configPath string) error {
	fileOpts, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	f := c.Flags()
	if !f.Changed("source") {
		opts.SourceDirs = fileOpts.SourceDirs
	}
	if !f.Changed("pattern") {
		opts.FilePatterns = fileOpts.FilePatterns
	}
	if !f.Changed("ignore-file") {
		opts.IgnoreFile = fileOpts.IgnoreFile
	}
	if !f.Changed("verbose") {
		opts.Verbose = fileOpts.Verbose
	}
	if f.Lookup("output") != nil && !f.Changed("output") {
		opts.OutputDir = fileOpts.OutputDir
	}
	if f.Lookup("force") != nil && !f.Changed("force") {
		opts.Force = fileOpts.Force
	}
	if f.Lookup("watch") != nil && !f.Changed("watch") {
		opts.Watch = fileOpts.Watch
	}
	if f.Lookup("extended") != nil && !f.Changed("extended") {
		opts.Extended = fileOpts.Extended
	}
	return nil
}

func initLogging(opts config.Options) {
	logger.Init(logger.DefaultConfig(), opts.Verbose)
}
