package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Gijsreyn/bicep-local-docgen/internal/checker"
	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
)

// ErrCheckFailed signals that at least one declaration failed a check; main
// turns it into a non-zero exit status.
var ErrCheckFailed = errors.New("documentation check failed")

func newCheckCmd() *cobra.Command {
	opts := config.Default()
	var configPath string

	c := &cobra.Command{
		Use:   "check",
		Short: "Check that resource declarations carry the required documentation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyFileConfig(cmd, &opts, configPath); err != nil {
				return err
			}
			initLogging(opts)
			if err := opts.Validate(); err != nil {
				return err
			}

			res, err := checker.Run(opts)
			if err != nil {
				return err
			}
			checker.Report(cmd.ErrOrStderr(), res)
			if res.HasErrors() {
				return ErrCheckFailed
			}
			return nil
		},
	}

	addCommonFlags(c, &opts)
	c.Flags().BoolVar(&opts.Extended, "extended", opts.Extended, "Also require front matter and custom sections")
	c.Flags().StringVar(&configPath, "config", "", "Path to a .docgen.yml config file")

	return c
}
