package check

import (
	"context"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// StackHealth reports a half-running dev stack from the probe result.
type StackHealth struct{}

func (StackHealth) Name() string { return "stack_health" }

func (StackHealth) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	s := in.Status
	switch {
	case s.Frontend == domain.PortUp && s.Backend == domain.PortDown:
		return []domain.Issue{serviceDown("backend", s.BackendPort, "frontend")}, nil
	case s.Backend == domain.PortUp && s.Frontend == domain.PortDown:
		return []domain.Issue{serviceDown("frontend", s.FrontendPort, "backend")}, nil
	}
	return nil, nil
}

func serviceDown(name string, port int, other string) domain.Issue {
	issue := domain.NewIssue(domain.KindServiceDown, fmt.Sprintf("port:%d", port), domain.SeverityWarning,
		fmt.Sprintf("%s is not listening on %d while the %s is up", name, port, other))
	issue.Suggestion = "restart the dev stack with devpilot dev"
	return issue
}
