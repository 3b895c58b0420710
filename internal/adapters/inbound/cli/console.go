package cli

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/adapters/outbound/tui"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

func newConsoleCmd(opts *globalOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Switch or show browser console verbosity flags",
		Long:  "Set the env flags that control frontend console output. clean silences debug output, verbose enables it.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown console mode %q (want %s, %s or show)", args[0], domain.ConsoleClean, domain.ConsoleVerbose)
		},
	}
	cmd.PersistentFlags().StringVar(&path, "path", ".", "Project path (any directory inside the project)")

	for _, mode := range []string{domain.ConsoleClean, domain.ConsoleVerbose} {
		cmd.AddCommand(newConsoleModeCmd(opts, &path, mode))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current console flag values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.services()
			project, err := svc.Resolver.Resolve(path)
			if err != nil {
				return err
			}
			flags, err := svc.Console.Flags(project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFlags(project.Config.EnvFile, flags))
			return nil
		},
	})

	return cmd
}

func newConsoleModeCmd(opts *globalOptions, path *string, mode string) *cobra.Command {
	return &cobra.Command{
		Use:   mode,
		Short: fmt.Sprintf("Apply the %s console flags to the env file", mode),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.services()
			project, err := svc.Resolver.Resolve(*path)
			if err != nil {
				return err
			}
			changes, err := svc.Console.SetMode(project, mode)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderEnvChanges(mode, project.Config.EnvFile, changes))
			return nil
		},
	}
}
