// Package glob implements shell-style wildcard matching of a single path
// component: '*' and '?' never cross a '/', '[...]' introduces a character
// class and there is no recursive '**'.
package glob

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	gobwas "github.com/gobwas/glob"
)

// Separator is the path separator that wildcards never match.
const Separator = '/'

// literal matches only the exact pattern text. It stands in for patterns that
// do not compile, such as a class naming an unknown "[:name:]".
type literal string

func (l literal) Match(s string) bool { return string(l) == s }

// Matcher compiles patterns on first use and caches them by pattern text.
type Matcher struct {
	mu    sync.RWMutex
	cache map[string]gobwas.Glob
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{cache: make(map[string]gobwas.Glob)}
}

var defaultMatcher = NewMatcher()

// Match reports whether name matches pattern using the shared Matcher.
func Match(pattern, name string) bool {
	return defaultMatcher.Match(pattern, name)
}

// Match reports whether name matches pattern. Matching is case-sensitive and
// never fails: an ill-formed pattern only matches its own text.
func (m *Matcher) Match(pattern, name string) bool {
	return m.compile(pattern).Match(name)
}

// MatchAny reports whether name matches at least one of patterns and returns
// the first pattern that did.
func (m *Matcher) MatchAny(patterns []string, name string) (string, bool) {
	for _, p := range patterns {
		if m.Match(p, name) {
			return p, true
		}
	}
	return "", false
}

func (m *Matcher) compile(pattern string) gobwas.Glob {
	m.mu.RLock()
	g, ok := m.cache[pattern]
	m.mu.RUnlock()
	if ok {
		return g
	}

	expr, err := translate(pattern)
	if err == nil {
		g, err = gobwas.Compile(expr, Separator)
	}
	if err != nil {
		g = literal(pattern)
	}

	m.mu.Lock()
	m.cache[pattern] = g
	m.mu.Unlock()
	return g
}

// translate rewrites a shell glob into gobwas syntax with the same meaning:
// braces lose their alternation role, classes are parsed the way fnmatch(3)
// reads them and an unterminated '[' is an ordinary byte.
func translate(pattern string) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	for i := 0; i < len(pattern); {
		r, w := utf8.DecodeRuneInString(pattern[i:])
		switch r {
		case '\\':
			if i+w == len(pattern) {
				b.WriteString(`\\`)
				i += w
				continue
			}
			next, nw := utf8.DecodeRuneInString(pattern[i+w:])
			b.WriteString(escapeRune(next))
			i += w + nw
			continue
		case '[':
			c, n, err := parseClass(pattern[i+w:])
			if errors.Is(err, errUnterminated) {
				b.WriteString(`\[`)
				i += w
				continue
			}
			if err != nil {
				return "", err
			}
			s, err := c.gobwas()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			i += w + n
			continue
		case '{', '}', ']':
			b.WriteString(escapeRune(r))
		default:
			b.WriteRune(r)
		}
		i += w
	}
	return b.String(), nil
}
