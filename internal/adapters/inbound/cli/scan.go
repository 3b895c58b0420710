package cli

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/adapters/outbound/tui"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

type scanOutput struct {
	Report  *domain.ScanReport `json:"report"`
	Summary domain.FixSummary  `json:"summary"`
}

func newScanCmd(opts *globalOptions) *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Detect problems in the project without changing anything",
		Long:  "Run every check against the project and the local dev stack and report the issues found. Files are never modified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.services()
			project, err := svc.Resolver.Resolve(path)
			if err != nil {
				return err
			}

			report, err := svc.Scan.Scan(cmd.Context(), project)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if _, err := svc.Recorder.Record(project, "scan", report, nil); err != nil {
				opts.logger.WithError(err).Warn("could not record run")
			}

			summary := domain.Summarize(report, nil)
			if jsonOutput {
				return renderJSON(cmd, scanOutput{Report: report, Summary: summary})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScanReport(report))
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path (any directory inside the project)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
