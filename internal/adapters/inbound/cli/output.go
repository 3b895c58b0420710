package cli

import (
	"encoding/json"
	"fmt"

	"github.com/openkraft/devpilot/internal/adapters/outbound/tui"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/spf13/cobra"
)

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary writes the plain summary line that ends scan, fix and status output.
func printSummary(cmd *cobra.Command, s domain.FixSummary) {
	fmt.Fprint(cmd.OutOrStdout(), tui.SummaryLine(s))
}
