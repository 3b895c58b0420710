package cli

import (
	"errors"
	"fmt"

	"github.com/openkraft/devpilot/internal/adapters/outbound/tui"
	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

type fixOutput struct {
	Report  *domain.ScanReport `json:"report"`
	Results []domain.FixResult `json:"results"`
	Summary domain.FixSummary  `json:"summary"`
	DryRun  bool               `json:"dry_run,omitempty"`
}

// confirmFix is swapped in tests; the default prompts on the terminal.
var confirmFix application.ConfirmFunc = tui.ConfirmFix

func newFixCmd(opts *globalOptions) *cobra.Command {
	var (
		path        string
		jsonOutput  bool
		dryRun      bool
		interactive bool
		kinds       []string
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Scan the project and repair every issue that has a safe fix",
		Long: "Scan the project, then apply fixes in severity order. Each fix is planned in full before " +
			"anything is written, so a failed fix leaves files untouched. Issues without a safe fix are reported as skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && jsonOutput {
				return fmt.Errorf("--interactive cannot be combined with --json")
			}

			svc := opts.services()
			project, err := svc.Resolver.Resolve(path)
			if err != nil {
				return err
			}

			report, err := svc.Scan.Scan(cmd.Context(), project)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fixOpts := domain.RemediationOptions{DryRun: dryRun}
			for _, k := range kinds {
				fixOpts.Kinds = append(fixOpts.Kinds, domain.IssueKind(k))
			}
			var confirm application.ConfirmFunc
			if interactive {
				confirm = confirmFix
			}

			results, runErr := svc.Remediation.Remediate(cmd.Context(), project, report, fixOpts, confirm)
			if errors.Is(runErr, domain.ErrBusy) {
				return runErr
			}
			if !dryRun {
				if _, err := svc.Recorder.Record(project, "fix", report, results); err != nil {
					opts.logger.WithError(err).Warn("could not record run")
				}
			}

			summary := domain.Summarize(report, results)
			if jsonOutput {
				if err := renderJSON(cmd, fixOutput{Report: report, Results: results, Summary: summary, DryRun: dryRun}); err != nil {
					return err
				}
				return runErr
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResults(results, dryRun))
			printSummary(cmd, summary)
			return runErr
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path (any directory inside the project)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan fixes without writing anything")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Confirm each fix before it is written")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only fix issues of this kind (repeatable)")

	return cmd
}
