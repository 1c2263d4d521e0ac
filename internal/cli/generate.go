package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
	"github.com/Gijsreyn/bicep-local-docgen/internal/pipeline"
	"github.com/Gijsreyn/bicep-local-docgen/internal/watch"
)

func newGenerateCmd() *cobra.Command {
	opts := config.Default()
	var configPath string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate one Markdown document per resource declaration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyFileConfig(cmd, &opts, configPath); err != nil {
				return err
			}
			initLogging(opts)
			if err := opts.Validate(); err != nil {
				return err
			}

			if opts.Watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return watch.Run(ctx, opts)
			}

			sum, err := pipeline.Generate(opts)
			if err != nil {
				return err
			}
			return sum.Err()
		},
	}

	addCommonFlags(c, &opts)
	c.Flags().StringVarP(&opts.OutputDir, "output", "o", opts.OutputDir, "Directory the documents are written to")
	c.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "Overwrite existing output files")
	c.Flags().BoolVarP(&opts.Watch, "watch", "w", opts.Watch, "Regenerate when source files change")
	c.Flags().StringVar(&configPath, "config", "", "Path to a .docgen.yml config file")

	return c
}
