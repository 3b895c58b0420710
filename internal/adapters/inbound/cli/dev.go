package cli

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

func newDevCmd(opts *globalOptions) *cobra.Command {
	var (
		path string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the full dev stack",
		Long: "Optionally switch the console mode, then run the project's dev command in the foreground. " +
			"Readiness of the frontend and backend ports is logged as they come up. Ctrl-C stops the stack.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" && mode != domain.ConsoleClean && mode != domain.ConsoleVerbose {
				return fmt.Errorf("unknown mode %q (want %s or %s)", mode, domain.ConsoleClean, domain.ConsoleVerbose)
			}

			svc := opts.services()
			project, err := svc.Resolver.Resolve(path)
			if err != nil {
				return err
			}

			code, err := svc.Dev.Run(cmd.Context(), project, mode)
			if err != nil {
				return fmt.Errorf("dev stack: %w", err)
			}
			if code != 0 {
				return &StackExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path (any directory inside the project)")
	cmd.Flags().StringVar(&mode, "mode", "", "Console mode to apply first (clean or verbose)")

	return cmd
}
