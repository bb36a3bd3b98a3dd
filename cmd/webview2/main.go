package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/config"
	"github.com/wippyai/webview2/headless"
	"github.com/wippyai/webview2/webview2"
)

// options are shared by every command.
type options struct {
	configPath string
	debug      bool
	runtime    string
	cfg        *config.Config
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "webview2",
		Short:         "Drive a browser runtime from the command line",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				opts.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.StringVar(&opts.runtime, "runtime", "", "runtime to use: headless or native")

	cmd.AddCommand(
		newEvalCmd(opts),
		newVersionCmd(opts),
		newCompareCmd(opts),
		newReplCmd(opts),
	)
	return cmd
}

func (o *options) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.debug {
		cfg.Debug = true
	}
	if cmd.Flags().Changed("runtime") {
		cfg.Runtime = o.runtime
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	o.logger = logger
	com.SetLogger(logger.Named("com"))
	bridge.SetLogger(logger.Named("bridge"))
	webview2.SetLogger(logger.Named("webview2"))
	headless.SetLogger(logger.Named("headless"))
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
