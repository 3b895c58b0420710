package fixer

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/check"
	"github.com/openkraft/devpilot/internal/domain/envfile"
)

// EnvFileFixer creates the env file from its example.
type EnvFileFixer struct{}

func (EnvFileFixer) Kinds() []domain.IssueKind { return []domain.IssueKind{domain.KindMissingEnvFile} }

func (EnvFileFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	cfg := env.Config
	if env.Files.Exists(cfg.EnvFile) {
		return nil, domain.ErrAlreadyFixed
	}
	if cfg.EnvExample == "" || !env.Files.Exists(cfg.EnvExample) {
		return nil, fmt.Errorf("%s is missing: %w", cfg.EnvExample, domain.ErrNotApplicable)
	}
	data, err := env.Files.ReadFile(cfg.EnvExample)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.EnvExample, err)
	}

	cs := domain.NewChangeset(fmt.Sprintf("create %s from %s", cfg.EnvFile, cfg.EnvExample))
	cs.Set(cfg.EnvFile, data)
	return cs, nil
}

// EnvFlagFixer appends missing flags with their default and collapses
// duplicate keys.
type EnvFlagFixer struct{}

func (EnvFlagFixer) Kinds() []domain.IssueKind {
	return []domain.IssueKind{domain.KindMissingEnvFlag, domain.KindDuplicateEnvKey}
}

func (EnvFlagFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	file, key := check.SplitLocation(issue.Location)
	if key == "" || !env.Files.Exists(file) {
		return nil, domain.ErrNotApplicable
	}
	data, err := env.Files.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	f := envfile.Parse(data)

	var desc string
	switch issue.Kind {
	case domain.KindMissingEnvFlag:
		if _, ok := f.Get(key); ok {
			return nil, domain.ErrAlreadyFixed
		}
		spec, ok := env.Config.Flags[key]
		if !ok || spec.Default == "" {
			return nil, fmt.Errorf("%s has no default: %w", key, domain.ErrNotApplicable)
		}
		f.Set(key, spec.Default)
		desc = fmt.Sprintf("%s: append %s=%s", file, key, spec.Default)
	case domain.KindDuplicateEnvKey:
		if !f.Dedupe(key) {
			return nil, domain.ErrAlreadyFixed
		}
		desc = fmt.Sprintf("%s: keep the last definition of %s", file, key)
	default:
		return nil, domain.ErrNotApplicable
	}

	cs := domain.NewChangeset(desc)
	cs.Set(file, f.Bytes())
	return cs, nil
}
