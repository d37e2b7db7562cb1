// File: pkg/combine/config.go
package combine

import "filestoprompt/pkg/ignore"

// SelectionConfig holds the file selection rules for one run. It is never
// modified once the run has started.
type SelectionConfig struct {
	Extensions    []string // Required filename suffixes; empty accepts every name.
	IgnoreGlobs   []string // Glob patterns rejecting matching filenames.
	IncludeHidden bool     // If true, names starting with '.' are not rejected.
	SkipVCSIgnore bool     // If true, .gitignore files are neither loaded nor applied.
}

// Format selects the serialization written to the output sink.
type Format int

const (
	// FormatPlain writes "path\n---\ncontent\n---\n" per file.
	FormatPlain Format = iota
	// FormatXML writes one <document> block per file inside a single <documents> wrapper.
	FormatXML
)

// String returns a short name of the format.
func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "plain"
}

// Options configures an Aggregator.
type Options struct {
	Selection SelectionConfig
	Format    Format
	Scope     ignore.Scope // Which loaded .gitignore rules apply to each root.
}
