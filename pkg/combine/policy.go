package combine

import (
	"strings"

	"filestoprompt/pkg/glob"
)

// Reason tells which check rejected a file.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonHidden
	ReasonIgnoreGlob
	ReasonExtension
	ReasonGitignore
)

func (r Reason) String() string {
	switch r {
	case ReasonHidden:
		return "hidden"
	case ReasonIgnoreGlob:
		return "ignore-glob"
	case ReasonExtension:
		return "extension"
	case ReasonGitignore:
		return "gitignore"
	default:
		return "none"
	}
}

// Policy applies the name-based selection checks of a SelectionConfig.
type Policy struct {
	config  SelectionConfig
	matcher *glob.Matcher
}

// NewPolicy returns a Policy for cfg. A nil matcher gets a fresh one.
func NewPolicy(cfg SelectionConfig, m *glob.Matcher) *Policy {
	if m == nil {
		m = glob.NewMatcher()
	}
	return &Policy{config: cfg, matcher: m}
}

// Config returns the selection config the policy was built from.
func (p *Policy) Config() SelectionConfig { return p.config }

// ShouldInclude decides whether a file called name is selected. The checks
// run in a fixed order and the first failing one decides the Reason:
// hidden name, ignore globs, then extension suffixes. The .gitignore check
// needs the full path and is left to the caller.
func (p *Policy) ShouldInclude(name string) (bool, Reason) {
	if !p.config.IncludeHidden && strings.HasPrefix(name, ".") {
		return false, ReasonHidden
	}

	if _, ok := p.matcher.MatchAny(p.config.IgnoreGlobs, name); ok {
		return false, ReasonIgnoreGlob
	}

	if len(p.config.Extensions) > 0 && !hasAnySuffix(name, p.config.Extensions) {
		return false, ReasonExtension
	}

	return true, ReasonNone
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
