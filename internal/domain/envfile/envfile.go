// Package envfile edits line-oriented KEY=value environment files while
// preserving comments, blank lines and ordering.
package envfile

import (
	"bytes"
	"sort"
	"strings"
)

// Line is one physical line of an env file.
type Line struct {
	Raw   string
	Key   string // empty for comments, blanks and unparseable lines
	Value string
}

// File is a parsed env file.
type File struct {
	lines       []Line
	crlf        bool
	trailingEOL bool
}

// Change describes one key mutation performed by Set.
type Change struct {
	Key      string `json:"key"`
	Old      string `json:"old,omitempty"`
	New      string `json:"new"`
	Appended bool   `json:"appended,omitempty"`
}

// Parse reads env file content. It never fails: lines that are not
// assignments are kept verbatim.
func Parse(data []byte) *File {
	f := &File{
		crlf:        bytes.Contains(data, []byte("\r\n")),
		trailingEOL: len(data) == 0 || bytes.HasSuffix(data, []byte("\n")),
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" && len(data) == 0 {
		return f
	}
	for _, raw := range strings.Split(text, "\n") {
		f.lines = append(f.lines, parseLine(raw))
	}
	return f
}

func parseLine(raw string) Line {
	line := Line{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "#") {
		return line
	}
	s = strings.TrimPrefix(s, "export ")
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return line
	}
	line.Key = key
	line.Value = unquote(strings.TrimSpace(value))
	return line
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}

// Lines returns the parsed lines.
func (f *File) Lines() []Line { return f.lines }

// Get returns the effective value of key. The last definition wins.
func (f *File) Get(key string) (string, bool) {
	value, found := "", false
	for _, l := range f.lines {
		if l.Key == key {
			value, found = l.Value, true
		}
	}
	return value, found
}

// Values returns the effective value of every key.
func (f *File) Values() map[string]string {
	out := make(map[string]string)
	for _, l := range f.lines {
		if l.Key != "" {
			out[l.Key] = l.Value
		}
	}
	return out
}

// Occurrences returns the 1-based line numbers defining key.
func (f *File) Occurrences(key string) []int {
	var lines []int
	for i, l := range f.lines {
		if l.Key == key {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// DuplicateKeys returns keys defined more than once, sorted.
func (f *File) DuplicateKeys() []string {
	counts := make(map[string]int)
	for _, l := range f.lines {
		if l.Key != "" {
			counts[l.Key]++
		}
	}
	var keys []string
	for k, n := range counts {
		if n > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Set assigns key=value. A present key has its first line replaced in place
// and any later definitions dropped; an absent key is appended. Setting the
// value a key already has with a single definition is a no-op.
func (f *File) Set(key, value string) (Change, bool) {
	occ := f.Occurrences(key)
	if len(occ) == 0 {
		f.lines = append(f.lines, Line{Raw: key + "=" + value, Key: key, Value: value})
		return Change{Key: key, New: value, Appended: true}, true
	}

	first := occ[0] - 1
	old := f.lines[first].Value
	if len(occ) == 1 && old == value {
		return Change{}, false
	}

	f.lines[first] = Line{Raw: assignmentPrefix(f.lines[first].Raw) + key + "=" + value, Key: key, Value: value}
	f.drop(key, first)
	return Change{Key: key, Old: old, New: value}, true
}

// assignmentPrefix returns the indentation and any "export " keyword
// preceding the key on raw.
func assignmentPrefix(raw string) string {
	rest := strings.TrimLeft(raw, " \t")
	prefix := raw[:len(raw)-len(rest)]
	if strings.HasPrefix(rest, "export ") {
		prefix += "export "
	}
	return prefix
}

// Dedupe keeps only the last definition of key, which is the one dotenv
// loaders honour. It reports whether anything was removed.
func (f *File) Dedupe(key string) bool {
	occ := f.Occurrences(key)
	if len(occ) < 2 {
		return false
	}
	f.drop(key, occ[len(occ)-1]-1)
	return true
}

// drop removes every line defining key except the one at index keep.
func (f *File) drop(key string, keep int) {
	kept := f.lines[:0:0]
	for i, l := range f.lines {
		if l.Key == key && i != keep {
			continue
		}
		kept = append(kept, l)
	}
	f.lines = kept
}

// Bytes serializes the file using its original line ending style.
func (f *File) Bytes() []byte {
	eol := "\n"
	if f.crlf {
		eol = "\r\n"
	}
	var b strings.Builder
	for i, l := range f.lines {
		b.WriteString(l.Raw)
		if i < len(f.lines)-1 || f.trailingEOL {
			b.WriteString(eol)
		}
	}
	return []byte(b.String())
}
