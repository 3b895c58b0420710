// Package fixer holds the remediation strategies, one per issue kind.
//
// A fixer never writes. Plan re-reads the current project state and returns
// the complete changeset for one issue, so the engine can commit it as a
// unit or report it in a dry run.
package fixer

import (
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

// Env is what a fixer may read while planning.
type Env struct {
	Files  domain.FileReader
	Parser domain.SourceParser
	Config domain.ProjectConfig
}

// Fixer corrects issues of the kinds it declares. Plan returns
// domain.ErrAlreadyFixed when the target state is already in place and
// domain.ErrNotApplicable when the issue no longer matches the files.
type Fixer interface {
	Kinds() []domain.IssueKind
	Plan(env *Env, issue domain.Issue) (*domain.Changeset, error)
}

// Registry dispatches issues to fixers by kind.
type Registry map[domain.IssueKind]Fixer

// NewRegistry indexes fixers by every kind they declare. Later fixers win.
func NewRegistry(fixers ...Fixer) Registry {
	r := make(Registry)
	for _, f := range fixers {
		for _, k := range f.Kinds() {
			r[k] = f
		}
	}
	return r
}

// Default returns the registry with every built-in fixer.
func Default() Registry {
	return NewRegistry(
		RouteFixer{},
		LinkFixer{},
		NavigationFixer{},
		DuplicateRouteFixer{},
		EnvFileFixer{},
		EnvFlagFixer{},
	)
}

func (r Registry) Lookup(kind domain.IssueKind) (Fixer, bool) {
	f, ok := r[kind]
	return f, ok
}

// textFile is a line-addressable source file that round-trips its line endings.
type textFile struct {
	lines []string
	crlf  bool
}

func readText(files domain.FileReader, path string) (*textFile, []byte, error) {
	data, err := files.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s := string(data)
	crlf := strings.Contains(s, "\r\n")
	if crlf {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return &textFile{lines: strings.Split(s, "\n"), crlf: crlf}, data, nil
}

func (t *textFile) insert(at int, line string) {
	t.lines = append(t.lines, "")
	copy(t.lines[at+1:], t.lines[at:])
	t.lines[at] = line
}

// remove deletes the given 1-based line numbers.
func (t *textFile) remove(lineNos ...int) {
	drop := make(map[int]bool, len(lineNos))
	for _, n := range lineNos {
		drop[n-1] = true
	}
	kept := t.lines[:0:0]
	for i, l := range t.lines {
		if !drop[i] {
			kept = append(kept, l)
		}
	}
	t.lines = kept
}

func (t *textFile) bytes() []byte {
	eol := "\n"
	if t.crlf {
		eol = "\r\n"
	}
	return []byte(strings.Join(t.lines, eol))
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
