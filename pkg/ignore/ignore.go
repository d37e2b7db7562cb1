// Package ignore loads .gitignore-style rule files and decides whether a path
// is excluded by them.
//
// Only a narrow subset of .gitignore is understood: every non-empty,
// non-comment line is one shell glob, and it is matched against the final
// component of a path. Negation and anchoring are not supported.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filestoprompt/pkg/glob"
)

// FileName is the name of the rule file looked up in a directory.
const FileName = ".gitignore"

// Rule is one pattern line read from a rule file.
type Rule struct {
	Pattern string // Glob pattern, exactly as written (trailing CR/LF removed).
	Source  string // Path of the file the rule came from.
	LineNo  int    // Line number in the source (1-based).
}

// Scope selects which loaded rules apply to a root.
type Scope int

const (
	// ScopeGlobal applies every rule loaded so far to every root.
	ScopeGlobal Scope = iota
	// ScopeRoot applies only the rules loaded from the root's own parent directory.
	ScopeRoot
)

// String returns the flag spelling of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeRoot:
		return "root"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ErrInvalidScope is returned by ParseScope for unknown scope names.
var ErrInvalidScope = errors.New("invalid gitignore scope")

// ParseScope converts a flag value into a Scope.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "", "global":
		return ScopeGlobal, nil
	case "root":
		return ScopeRoot, nil
	default:
		return 0, fmt.Errorf("%w: %q (want \"global\" or \"root\")", ErrInvalidScope, s)
	}
}

// ParseRules splits content into rules. Anything from the first CR or LF of a
// line onwards is dropped; empty lines and lines starting with '#' are skipped.
// No other whitespace is trimmed.
func ParseRules(source string, content []byte) []Rule {
	var rules []Rule
	for i, line := range strings.Split(string(content), "\n") {
		if j := strings.IndexByte(line, '\r'); j >= 0 {
			line = line[:j]
		}
		if line == "" || line[0] == '#' {
			continue
		}
		rules = append(rules, Rule{
			Pattern: line,
			Source:  source,
			LineNo:  i + 1, // 1-based line numbering.
		})
	}
	return rules
}

// Load reads the rule file located directly in dir. A missing file is not an
// error and yields no rules.
func Load(dir string) ([]Rule, error) {
	path := filepath.Join(dir, FileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}
	return ParseRules(path, content), nil
}

// IsIgnored reports whether path is excluded by rules and returns the first
// rule that matched. Each rule is tried against the final path component and,
// for directories, also against that component with a trailing slash.
func IsIgnored(m *glob.Matcher, path string, isDir bool, rules []Rule) (Rule, bool) {
	if len(rules) == 0 {
		return Rule{}, false
	}
	if m == nil {
		m = glob.NewMatcher()
	}

	name := filepath.Base(path)
	for _, rule := range rules {
		if m.Match(rule.Pattern, name) {
			return rule, true
		}
		if isDir && m.Match(rule.Pattern, name+"/") {
			return rule, true
		}
	}
	return Rule{}, false
}
