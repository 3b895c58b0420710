package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openkraft/devpilot/internal/bootstrap"
	"github.com/openkraft/devpilot/internal/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions carries persistent flags and the logger built from them.
type globalOptions struct {
	logLevel  string
	logFormat string
	logger    *log.Logger
}

func (o *globalOptions) services() *bootstrap.Services {
	return bootstrap.New(o.logger)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: log.Nop()}

	cmd := &cobra.Command{
		Use:   "devpilot",
		Short: "Keep a full-stack dev environment healthy",
		Long: "devpilot scans a React + Express project for routing, navigation, handler and env " +
			"problems, repairs what it safely can, and reports the state of the local dev stack.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			format, err := log.ParseFormat(opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = log.New(log.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newDevCmd(opts))
	cmd.AddCommand(newConsoleCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show devpilot version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "devpilot %s (%s)\n", version, commit)
			return nil
		},
	}
}
