package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/envfile"
)

// EnvFlags checks the env file against the declared flags.
type EnvFlags struct{}

func (EnvFlags) Name() string { return "env_flags" }

func (EnvFlags) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	cfg := in.Config
	if !in.Reader.Exists(cfg.EnvFile) {
		issue := domain.NewIssue(domain.KindMissingEnvFile, cfg.EnvFile, domain.SeverityWarning,
			fmt.Sprintf("%s does not exist", cfg.EnvFile))
		issue.AutoFixable = cfg.EnvExample != "" && in.Reader.Exists(cfg.EnvExample)
		if issue.AutoFixable {
			issue.Suggestion = fmt.Sprintf("copy %s to %s", cfg.EnvExample, cfg.EnvFile)
		} else {
			issue.Suggestion = fmt.Sprintf("create %s", cfg.EnvFile)
		}
		return []domain.Issue{issue}, nil
	}

	data, err := in.Reader.ReadFile(cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	env := envfile.Parse(data)

	var issues []domain.Issue
	for _, name := range cfg.FlagNames() {
		spec := cfg.Flags[name]
		loc := cfg.EnvFile + "#" + name
		value, ok := env.Get(name)
		if !ok {
			issue := domain.NewIssue(domain.KindMissingEnvFlag, loc, domain.SeverityWarning,
				fmt.Sprintf("%s is not set", name))
			if spec.Default != "" {
				issue.Suggestion = fmt.Sprintf("%s=%s", name, spec.Default)
				issue.AutoFixable = true
			}
			issues = append(issues, issue)
			continue
		}
		if !spec.Permits(value) {
			issue := domain.NewIssue(domain.KindMisconfiguredEnvFlag, loc, domain.SeverityWarning,
				fmt.Sprintf("%s=%q is not one of %s", name, value, strings.Join(spec.Allowed, ", ")))
			if occ := env.Occurrences(name); len(occ) > 0 {
				issue.Line = occ[len(occ)-1]
			}
			issue.Suggestion = fmt.Sprintf("set %s to one of %s", name, strings.Join(spec.Allowed, ", "))
			issues = append(issues, issue)
		}
	}

	for _, key := range env.DuplicateKeys() {
		occ := env.Occurrences(key)
		issue := domain.NewIssue(domain.KindDuplicateEnvKey, cfg.EnvFile+"#"+key, domain.SeverityWarning,
			fmt.Sprintf("%s is defined %d times; the last definition wins", key, len(occ)))
		issue.Line = occ[0]
		issue.Suggestion = "keep only the last definition"
		issue.AutoFixable = true
		issues = append(issues, issue)
	}
	return issues, nil
}
