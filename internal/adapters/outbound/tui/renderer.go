package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/devpilot/internal/domain"
)

var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// SummaryLine is the machine-readable last line of scan, fix and status output.
// It is never styled.
func SummaryLine(s domain.FixSummary) string {
	return s.String() + "\n"
}

// RenderScanReport formats a scan report for terminal output.
func RenderScanReport(report *domain.ScanReport) string {
	var b strings.Builder

	title := headerStyle.Render("devpilot")
	subtitle := dimStyle.Render("Project scan")
	counts := fmt.Sprintf("%d issues  %d auto-fixable", len(report.Issues), len(report.AutoFixable()))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + titleStyle.Render(counts)))
	b.WriteString("\n\n")

	if report.CommitHash != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("commit"), faintStyle.Render(shortHash(report.CommitHash)))
	}
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("checks"), faintStyle.Render(strings.Join(report.Checks, ", ")))
	if report.Partial {
		b.WriteString("  " + warnStyle.Render("partial report: the scan was interrupted") + "\n")
	}
	b.WriteString("\n  " + separatorLine + "\n\n")

	if len(report.Issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n\n")
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render("Issues") + "  ")
	if n := report.CountSeverity(domain.SeverityCritical); n > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d critical", n)) + "  ")
	}
	if n := report.CountSeverity(domain.SeverityWarning); n > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", n)) + "  ")
	}
	if n := report.CountSeverity(domain.SeverityInfo); n > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", n)))
	}
	b.WriteString("\n\n")

	for _, issue := range domain.RemediationOrder(report.Issues) {
		renderIssue(&b, issue)
	}

	if len(report.AutoFixable()) > 0 {
		b.WriteString("\n  " + hintStyle.Render("Run devpilot fix to apply the automatic fixes.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	loc := issue.Location
	if issue.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, issue.Line)
	}
	fix := ""
	if issue.AutoFixable {
		fix = "  " + passStyle.Render("fixable")
	}
	fmt.Fprintf(b, "    %s %s  %s%s\n", severityTag(issue.Severity), fileStyle.Render(loc), faintStyle.Render(string(issue.Kind)), fix)
	fmt.Fprintf(b, "             %s\n", dimStyle.Render(issue.Detail))
	if issue.Suggestion != "" {
		fmt.Fprintf(b, "             %s\n", hintStyle.Render(issue.Suggestion))
	}
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical:
		return errorTagStyle.Render("critical")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn    ")
	default:
		return infoTagStyle.Render("info    ")
	}
}

// RenderFixResults formats the outcome of a remediation pass.
func RenderFixResults(results []domain.FixResult, dryRun bool) string {
	var b strings.Builder

	heading := "Remediation"
	if dryRun {
		heading = "Remediation (dry run)"
	}
	b.WriteString("\n  " + titleStyle.Render(heading) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if len(results) == 0 {
		b.WriteString("  " + dimStyle.Render("Nothing to do.") + "\n\n")
		return b.String()
	}

	for _, r := range results {
		var icon string
		switch r.Outcome {
		case domain.OutcomeFixed:
			icon = passStyle.Render("●")
		case domain.OutcomeFailed:
			icon = failStyle.Render("●")
		default:
			icon = skipStyle.Render("○")
		}
		fmt.Fprintf(&b, "    %s %s %s  %s\n", icon, padRight(string(r.Outcome), 8), fileStyle.Render(r.Location), faintStyle.Render(string(r.Kind)))

		switch {
		case r.Error != "":
			fmt.Fprintf(&b, "               %s\n", failStyle.Render(r.Error))
		case r.AppliedChange != "":
			fmt.Fprintf(&b, "               %s\n", dimStyle.Render(r.AppliedChange))
		case r.Reason != "":
			fmt.Fprintf(&b, "               %s\n", skipStyle.Render(r.Reason))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		ts := e.Timestamp
		if len(ts) > 16 {
			ts = ts[:16]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			padRight(e.Command, 5),
			issueCount(e.Issues),
		)
		if e.Command == "fix" {
			line += "  " + dimStyle.Render(fmt.Sprintf("fixed %d", e.Fixed))
		}

		if i > 0 {
			diff := e.Issues - entries[i-1].Issues
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func issueCount(n int) string {
	text := fmt.Sprintf("%d issues", n)
	if n == 0 {
		return passStyle.Render(text)
	}
	return warnStyle.Render(text)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
