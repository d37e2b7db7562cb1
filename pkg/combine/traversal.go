// File: pkg/combine/traversal.go
package combine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filestoprompt/pkg/glob"
	"filestoprompt/pkg/ignore"

	"go.uber.org/zap"
)

// EmitFunc receives every selected file path. A non-nil error stops the walk.
type EmitFunc func(path string) error

// Traverser walks one root and reports the files that survive selection.
type Traverser struct {
	policy  *Policy
	matcher *glob.Matcher
	logger  *zap.Logger
}

// NewTraverser returns a Traverser applying policy.
func NewTraverser(policy *Policy, m *glob.Matcher, logger *zap.Logger) *Traverser {
	if m == nil {
		m = glob.NewMatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Traverser{policy: policy, matcher: m, logger: logger}
}

// CheckRoots verifies that every root exists.
func CheckRoots(roots []string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &NotFoundError{Path: root}
			}
			return fmt.Errorf("failed to access %s: %w", root, err)
		}
	}
	return nil
}

// Traverse emits root itself when it is a regular file, without any
// selection check. When root is a directory, every regular file below it is
// checked against the policy and then against rules, in lexical order.
// Directories are never emitted.
func (t *Traverser) Traverse(root string, rules []ignore.Rule, emit EmitFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Path: root}
		}
		return fmt.Errorf("failed to access %s: %w", root, err)
	}

	switch {
	case info.Mode().IsRegular():
		t.logger.Debug("Processing file root", zap.String("path", root))
		return emit(root)
	case info.IsDir():
		t.logger.Debug("Processing directory root", zap.String("dir", root), zap.Int("ruleCount", len(rules)))
		return t.walk(root, rules, emit)
	default:
		t.logger.Debug("Skipping root that is neither a file nor a directory", zap.String("path", root))
		return nil
	}
}

func (t *Traverser) walk(root string, rules []ignore.Rule, emit EmitFunc) error {
	start := root
	if lst, err := os.Lstat(root); err == nil && lst.Mode()&fs.ModeSymlink != 0 {
		// WalkDir does not descend into a symlinked root; a trailing separator
		// makes it resolve the link.
		if !strings.HasSuffix(start, string(filepath.Separator)) {
			start += string(filepath.Separator)
		}
	}

	skipVCS := t.policy.Config().SkipVCSIgnore

	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			t.logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil // Skip paths that cause errors
		}
		if d.IsDir() {
			return nil
		}

		regular, err := isRegularEntry(path, d)
		if err != nil {
			t.logger.Warn("Failed to resolve entry during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !regular {
			t.logger.Debug("Skipping non-regular entry", zap.String("path", path))
			return nil
		}

		if ok, reason := t.policy.ShouldInclude(d.Name()); !ok {
			t.logger.Debug("Skipping file", zap.String("path", path), zap.Stringer("reason", reason))
			return nil
		}

		if !skipVCS {
			if rule, ok := ignore.IsIgnored(t.matcher, path, false, rules); ok {
				t.logger.Debug("Skipping file",
					zap.String("path", path),
					zap.Stringer("reason", ReasonGitignore),
					zap.String("pattern", rule.Pattern),
					zap.String("source", rule.Source))
				return nil
			}
		}

		return emit(path)
	})
}

// isRegularEntry reports whether d is a regular file, looking through
// symlinks. Symlinked directories count as non-regular and are not descended.
func isRegularEntry(path string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
