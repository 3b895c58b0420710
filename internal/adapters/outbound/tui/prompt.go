package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/openkraft/devpilot/internal/domain"
)

// ConfirmFix asks on the terminal whether a planned fix should be written.
func ConfirmFix(issue domain.Issue, cs *domain.Changeset) (bool, error) {
	confirmed := true
	confirm := huh.NewConfirm().
		Title(FixPrompt(issue, cs)).
		Affirmative("Apply").
		Negative("Skip").
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// FixPrompt is the question shown for one planned fix.
func FixPrompt(issue domain.Issue, cs *domain.Changeset) string {
	paths := make([]string, 0, len(cs.Edits))
	for _, e := range cs.Edits {
		paths = append(paths, e.Path)
	}
	return fmt.Sprintf("%s at %s: %s (writes %s)", issue.Kind, issue.Location, cs.Description, strings.Join(paths, ", "))
}
