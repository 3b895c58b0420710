package cli

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/adapters/outbound/tui"
	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	*domain.StatusSummary
	Summary domain.FixSummary `json:"summary"`
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dev stack state, the last run and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.services()
			project, err := svc.Resolver.Resolve(path)
			if err != nil {
				return err
			}

			status := svc.Status.Report(cmd.Context(), project)
			summary := application.LastRunSummary(status)
			if jsonOutput {
				return renderJSON(cmd, statusOutput{StatusSummary: status, Summary: summary})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStatus(status))
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path (any directory inside the project)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
