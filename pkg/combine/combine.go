package combine

import (
	"fmt"
	"time"

	"filestoprompt/pkg/glob"
	"filestoprompt/pkg/ignore"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Aggregator drives a whole run: it walks every root in order, reads each
// selected file and hands it to the sink.
type Aggregator struct {
	opts      Options
	sink      Sink
	reader    Reader
	rules     *ignore.Set
	traverser *Traverser
	logger    *zap.Logger
}

// NewAggregator wires an Aggregator. A nil reader reads from the local
// filesystem; a nil logger discards everything.
func NewAggregator(opts Options, sink Sink, reader Reader, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reader == nil {
		reader = NewOSReader(logger)
	}

	m := glob.NewMatcher()
	return &Aggregator{
		opts:      opts,
		sink:      sink,
		reader:    reader,
		rules:     ignore.NewSet(opts.Scope, logger),
		traverser: NewTraverser(NewPolicy(opts.Selection, m), m, logger),
		logger:    logger,
	}
}

// Run processes roots in the given order; no roots means the current
// directory. A missing root aborts the run before anything is written.
// Files that cannot be read are skipped and reported in the Summary.
func (a *Aggregator) Run(roots []string) (Summary, error) {
	startTime := time.Now()
	var summary Summary

	if len(roots) == 0 {
		roots = []string{"."}
	}
	if err := CheckRoots(roots); err != nil {
		return summary, err
	}

	a.logger.Debug("Starting combine process",
		zap.Strings("roots", roots),
		zap.Stringer("format", a.opts.Format),
		zap.Stringer("gitignoreScope", a.opts.Scope))

	if err := a.sink.Begin(); err != nil {
		return summary, fmt.Errorf("failed to write output header: %w", err)
	}

	emit := func(path string) error {
		return a.emit(path, &summary)
	}

	for _, root := range roots {
		if !a.opts.Selection.SkipVCSIgnore {
			a.rules.Add(ignore.ParentDir(root))
		}
		if err := a.traverser.Traverse(root, a.rules.Rules(root), emit); err != nil {
			return summary, err
		}
	}

	if err := a.sink.End(); err != nil {
		return summary, fmt.Errorf("failed to write output footer: %w", err)
	}

	a.logger.Debug("Combine process completed",
		zap.Int("emitted", summary.Emitted),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

func (a *Aggregator) emit(path string, summary *Summary) error {
	content, err := a.reader.ReadFile(path)
	if err != nil {
		a.logger.Warn("Skipping file due to error opening file", zap.String("path", path), zap.Error(err))
		summary.Skipped++
		summary.Warnings = multierr.Append(summary.Warnings, err)
		return nil
	}

	if err := a.sink.Write(FileRecord{Path: path, Content: content}); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	summary.Emitted++
	return nil
}
