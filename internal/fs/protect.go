package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// protectPattern is a parsed protect pattern with its matching strategy.
type protectPattern struct {
	pattern   string
	matchPath bool // true = match against absolute path and its ancestors; false = basename only
}

// ProtectMatcher checks paths against a set of patterns that must never be removed.
// Patterns without '/' match against the basename only.
// Patterns with '/' match against the absolute path or any of its ancestors,
// so protecting "/etc" also protects everything beneath it.
type ProtectMatcher struct {
	patterns []protectPattern
}

// NewProtectMatcher creates a ProtectMatcher from raw pattern strings.
// Blank lines and lines starting with '#' are skipped.
func NewProtectMatcher(rawPatterns []string) *ProtectMatcher {
	var patterns []protectPattern
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		matchPath := strings.Contains(raw, "/")
		if matchPath && raw != "/" {
			raw = strings.TrimSuffix(raw, "/")
		}
		patterns = append(patterns, protectPattern{
			pattern:   raw,
			matchPath: matchPath,
		})
	}
	return &ProtectMatcher{patterns: patterns}
}

// Match reports whether path is protected. Relative paths are made absolute first.
func (m *ProtectMatcher) Match(path string) bool {
	if len(m.patterns) == 0 || path == "" {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	basename := filepath.Base(abs)

	for _, p := range m.patterns {
		if p.matchPath {
			if matchSelfOrAncestor(p.pattern, abs) {
				return true
			}
			continue
		}
		matched, err := filepath.Match(p.pattern, basename)
		if err != nil {
			// Bad pattern; skip rather than crash.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// matchSelfOrAncestor walks from abs up to the root, matching each level.
// The root itself only matches an explicit "/" pattern against "/".
func matchSelfOrAncestor(pattern, abs string) bool {
	if pattern == "/" {
		return filepath.ToSlash(abs) == "/"
	}
	for p := abs; ; {
		if matched, err := filepath.Match(pattern, filepath.ToSlash(p)); err == nil && matched {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return false
		}
		p = parent
	}
}

// MatchBeneath reports whether a path pattern protects anything strictly
// beneath dir, so that removing dir recursively would delete protected
// content. Basename patterns are not considered; finding them would need a
// walk of the tree.
func (m *ProtectMatcher) MatchBeneath(dir string) bool {
	if len(m.patterns) == 0 || dir == "" {
		return false
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	dirParts := splitPath(abs)

	for _, p := range m.patterns {
		if !p.matchPath || !strings.HasPrefix(p.pattern, "/") {
			continue
		}
		patParts := splitPath(p.pattern)
		if len(patParts) <= len(dirParts) {
			continue
		}
		if matchParts(patParts[:len(dirParts)], dirParts) {
			return true
		}
	}
	return false
}

// IsAncestor reports whether dir lies strictly above path.
func IsAncestor(dir, path string) bool {
	dirParts, pathParts := splitPath(dir), splitPath(path)
	if len(dirParts) >= len(pathParts) {
		return false
	}
	for i := range dirParts {
		if dirParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}

// splitPath splits a cleaned absolute path into its components. The root
// has none.
func splitPath(p string) []string {
	p = strings.Trim(filepath.ToSlash(filepath.Clean(p)), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchParts matches path components against glob components one by one.
func matchParts(patterns, parts []string) bool {
	for i := range parts {
		matched, err := filepath.Match(patterns[i], parts[i])
		if err != nil || !matched {
			return false
		}
	}
	return true
}

// ParseProtectFile reads a protect file and returns the raw pattern strings.
// Returns nil and no error if the file does not exist.
func ParseProtectFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening protect file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading protect file: %w", err)
	}
	return patterns, nil
}
