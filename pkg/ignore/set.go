package ignore

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Set holds the rules loaded for each directory. Every directory is read at
// most once; rules are never modified after loading.
type Set struct {
	scope  Scope
	loaded map[string][]Rule
	all    []Rule // Rules of every loaded directory, in load order.
	logger *zap.Logger
}

// NewSet returns an empty Set using the given scope.
func NewSet(scope Scope, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{
		scope:  scope,
		loaded: make(map[string][]Rule),
		logger: logger,
	}
}

// Add loads the rule file of dir unless it was loaded before and returns the
// rules found there. A rule file that exists but cannot be read is logged and
// treated as empty.
func (s *Set) Add(dir string) []Rule {
	key := filepath.Clean(dir)
	if rules, ok := s.loaded[key]; ok {
		return rules
	}

	rules, err := Load(key)
	if err != nil {
		s.logger.Warn("Failed to load ignore file", zap.String("dir", key), zap.Error(err))
		rules = nil
	}
	s.loaded[key] = rules
	s.all = append(s.all, rules...)

	s.logger.Debug("Loaded ignore rules",
		zap.String("dir", key),
		zap.Int("ruleCount", len(rules)),
		zap.Int("totalRules", len(s.all)))
	return rules
}

// Rules returns the rules that apply to root. With ScopeGlobal that is every
// rule loaded so far; with ScopeRoot only those of the root's parent directory.
func (s *Set) Rules(root string) []Rule {
	if s.scope == ScopeRoot {
		return s.loaded[filepath.Clean(ParentDir(root))]
	}
	return s.all
}

// ParentDir returns the directory whose rule file governs root. A trailing
// separator counts as its own component, so "proj/" maps to "proj" while
// "proj" maps to ".".
func ParentDir(root string) string {
	return filepath.Dir(root)
}
