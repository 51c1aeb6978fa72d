package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/logging"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
)

type cli struct {
	verbose bool
	cfg     *config.Config
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "dmr",
		Short: "KTBB Daily Market Review",
		Long: `Computes the daily support/resistance band and the breakout/breakdown
triggers from 4H/1H shelves, weekly/24h/morning volume profiles and the
30m opening range.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if c.verbose {
				cfg.Logging.Level = "debug"
			}
			c.cfg = cfg
			c.logger = logging.Component(logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr()), "cli")
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newComputeCmd(c), newTokenCmd(c))
	return root
}
