package combine

import "errors"

// ErrPathNotFound is matched by errors.Is for a root that does not exist.
var ErrPathNotFound = errors.New("path does not exist")

// NotFoundError reports a root that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return "Path does not exist: " + e.Path }

// Is makes errors.Is(err, ErrPathNotFound) hold.
func (e *NotFoundError) Is(target error) bool { return target == ErrPathNotFound }

// FileRecord is one selected file ready to be serialized.
type FileRecord struct {
	Path    string // Path as found during traversal.
	Content []byte // Whole file content, unmodified.
}

// Summary reports what a run did.
type Summary struct {
	Emitted  int   // Files written to the sink.
	Skipped  int   // Selected files that could not be read.
	Warnings error // Read failures of the skipped files, combined with multierr.
}
