package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/envfile"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

const unknown = "unknown"

// RenderStatus renders the environment, version control and last-run view.
func RenderStatus(s *domain.StatusSummary) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(headerStyle.Render("devpilot") + "\n" + dimStyle.Render(s.Root)))
	b.WriteString("\n")

	section(&b, "Environment")
	row(&b, "frontend", portState(s.Env.Frontend, s.Env.FrontendPort))
	row(&b, "backend", portState(s.Env.Backend, s.Env.BackendPort))
	envFile := failStyle.Render("missing")
	if s.Env.EnvFilePresent {
		envFile = passStyle.Render("present")
	}
	row(&b, "env file", fileStyle.Render(s.Env.EnvFile)+"  "+envFile)
	for _, k := range sortedKeys(s.Env.Flags) {
		row(&b, k, s.Env.Flags[k])
	}
	if s.Env.IsDegraded() {
		row(&b, "degraded", warnStyle.Render(strings.Join(s.Env.Degraded, ", ")))
	}

	section(&b, "Git")
	if !s.Git.Available {
		row(&b, "repository", skipStyle.Render(unknown))
	} else {
		row(&b, "branch", s.Git.Branch)
		row(&b, "commit", shortHash(s.Git.Commit))
		dirty := passStyle.Render("clean")
		if s.Git.Dirty {
			dirty = warnStyle.Render("dirty")
		}
		row(&b, "worktree", dirty)
	}

	section(&b, "Last run")
	if s.LastRun == nil || s.LastRun.Report == nil {
		row(&b, "report", skipStyle.Render(unknown))
	} else {
		r := s.LastRun.Report
		row(&b, "scanned", r.Timestamp.UTC().Format("2006-01-02 15:04:05Z"))
		if r.CommitHash != "" {
			row(&b, "at commit", shortHash(r.CommitHash))
		}
		row(&b, "issues", fmt.Sprintf("%d (%d critical)", len(r.Issues), r.CountSeverity(domain.SeverityCritical)))
		if len(s.LastRun.Results) > 0 {
			row(&b, "last fix", s.LastRun.Summary.String())
		}
	}

	if len(s.History) > 0 {
		b.WriteString(RenderHistory(s.History))
	}

	if len(s.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range s.Notes {
			b.WriteString("  " + hintStyle.Render(n) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderEnvChanges reports what a console mode switch wrote.
func RenderEnvChanges(mode, file string, changes []envfile.Change) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("console mode"), sectionHeaderStyle.Render(mode))
	if len(changes) == 0 {
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(file+" already up to date"))
		return b.String()
	}
	for _, c := range changes {
		switch {
		case c.Appended:
			fmt.Fprintf(&b, "    %s %s=%s\n", passStyle.Render("+"), c.Key, c.New)
		default:
			fmt.Fprintf(&b, "    %s %s=%s %s\n", warnStyle.Render("~"), c.Key, c.New, faintStyle.Render("(was "+c.Old+")"))
		}
	}
	return b.String()
}

// RenderFlags lists the current values of the declared flags.
func RenderFlags(file string, flags map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("flags"), fileStyle.Render(file))
	for _, k := range sortedKeys(flags) {
		v := flags[k]
		if v == "" {
			v = skipStyle.Render("unset")
		}
		fmt.Fprintf(&b, "    %s %s\n", padRight(k, 24), v)
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n  %s\n", sectionHeaderStyle.Render(title))
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(padRight(label, 16)), value)
}

func portState(state domain.PortState, port int) string {
	p := faintStyle.Render(fmt.Sprintf(":%d", port))
	switch state {
	case domain.PortUp:
		return passStyle.Render("up") + "  " + p
	case domain.PortDown:
		return failStyle.Render("down") + "  " + p
	default:
		return skipStyle.Render(unknown) + "  " + p
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
