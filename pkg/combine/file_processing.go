package combine

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Reader supplies the content of a selected file. The returned buffer belongs
// to the caller.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader reads files from the local filesystem, one at a time.
type OSReader struct {
	logger *zap.Logger
}

// NewOSReader returns an OSReader logging to logger.
func NewOSReader(logger *zap.Logger) *OSReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OSReader{logger: logger}
}

// ReadFile reads the whole file; the descriptor is closed before returning.
func (r *OSReader) ReadFile(path string) ([]byte, error) {
	r.logger.Debug("Reading file content", zap.String("filePath", path))

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	r.logger.Debug("Successfully read file content",
		zap.String("filePath", path),
		zap.Int("contentSizeBytes", len(content)))
	return content, nil
}
