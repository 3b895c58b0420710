package check

import (
	"context"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// Handlers finds HTTP handlers registered twice in the same server file.
type Handlers struct{}

func (Handlers) Name() string { return "handlers" }

func (Handlers) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	var issues []domain.Issue
	for _, file := range in.ServerFiles() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := in.Reader.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		first := make(map[string]domain.Handler)
		counts := make(map[string]int)
		for _, h := range in.Parser.ParseHandlers(file, data) {
			key := h.Receiver + "." + h.Method + " " + h.Path
			counts[key]++
			if counts[key] == 1 {
				first[key] = h
				continue
			}
			if counts[key] > 2 {
				continue
			}
			issue := domain.NewIssue(domain.KindDuplicateHandler, fmt.Sprintf("%s#%s %s", file, h.Method, h.Path),
				domain.SeverityCritical,
				fmt.Sprintf("%s %s is registered on %s at lines %d and %d; only the first one runs",
					h.Method, h.Path, h.Receiver, first[key].Line, h.Line))
			issue.Line = h.Line
			issue.Suggestion = "merge the handlers or remove the unreachable one"
			issues = append(issues, issue)
		}
	}
	return issues, nil
}
