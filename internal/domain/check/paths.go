package check

import (
	"path"
	"strings"
)

var (
	componentExts = []string{".tsx", ".jsx"}
	sourceExts    = []string{".tsx", ".jsx", ".ts", ".js", ".mjs", ".cjs"}
	serverExts    = []string{".js", ".ts", ".mjs", ".cjs"}
)

func hasExt(file string, exts ...string) bool {
	ext := path.Ext(file)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// isAuxiliary reports test, spec, story and declaration files.
func isAuxiliary(file string) bool {
	base := path.Base(file)
	for _, marker := range []string{".test.", ".spec.", ".stories.", ".d.ts"} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return strings.Contains(file, "__tests__/")
}

// Stem strips the extension from a relative file path.
func Stem(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

// ComponentName is the file base without extension.
func ComponentName(file string) string {
	return path.Base(Stem(file))
}

// ResolveImport maps a module specifier used in from to a project-relative
// path without extension. Bare package imports do not resolve.
func ResolveImport(from, spec string, aliases map[string]string) (string, bool) {
	var target string
	switch {
	case strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		target = path.Join(path.Dir(from), spec)
	default:
		matched := false
		for prefix, dir := range aliases {
			if strings.HasPrefix(spec, prefix) {
				target = path.Join(dir, strings.TrimPrefix(spec, prefix))
				matched = true
				break
			}
		}
		if !matched {
			return "", false
		}
	}
	if hasExt(target, sourceExts...) {
		target = Stem(target)
	}
	return path.Clean(target), true
}

// ImportsFile reports whether a resolved import target refers to file.
func ImportsFile(target, file string) bool {
	stem := Stem(file)
	return target == stem || target+"/index" == stem
}

// RelativeSpec builds the module specifier that imports file from from.
func RelativeSpec(from, file string) string {
	fromParts := splitDir(path.Dir(from))
	toParts := strings.Split(Stem(file), "/")

	i := 0
	for i < len(fromParts) && i < len(toParts)-1 && fromParts[i] == toParts[i] {
		i++
	}
	var parts []string
	for range fromParts[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[i:]...)
	spec := strings.Join(parts, "/")
	if !strings.HasPrefix(spec, "..") {
		spec = "./" + spec
	}
	return spec
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}

// SplitLocation splits a "file#anchor" issue location.
func SplitLocation(location string) (file, anchor string) {
	file, anchor, _ = strings.Cut(location, "#")
	return file, anchor
}
