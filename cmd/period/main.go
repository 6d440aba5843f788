// Command period parses, formats and manipulates calendar periods.
//
// Usage:
//
//	period parse 2018-05/2019-01
//	period format 2019-04-01 2019-07-01
//	period between 2019-04 2020-08 --unit quarter
//	period shell
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	configPath string
	output     string
	logLevel   string

	cfg    *Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "period",
		Short:         "Calendar period engine",
		Long:          "Parse, format, resolve and step through calendar periods such as 2018-Q2, 2019-W05 or 2018-05..12",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg != nil {
				// Commands run from the shell reuse the loaded config.
				return nil
			}
			cfg, err := LoadConfig(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			a.logger.Debug("Loaded config",
				zap.String("output", cfg.Output),
				zap.String("log_level", cfg.LogLevel))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default $HOME/.calperiod.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", OutputText, "Output format: text, iso, yaml or cbor")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(
		a.parseCmd(),
		a.formatCmd(),
		a.resolveCmd(),
		a.roundCmd(),
		a.betweenCmd(),
		a.stepCmd("next", "Print the periods following TEXT", true),
		a.stepCmd("prev", "Print the periods preceding TEXT", false),
		a.encodeCmd(),
		a.decodeCmd(),
		a.dumpCmd(),
		a.unitsCmd(),
		a.vectorsCmd(),
		a.runCmd(),
		a.shellCmd(),
	)

	return rootCmd
}
