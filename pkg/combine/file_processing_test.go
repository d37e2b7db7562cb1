package combine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSReaderReadFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.txt": "hello\x00world"})

	got, err := NewOSReader(nil).ReadFile(filepath.Join(base, "a.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello\x00world" {
		t.Fatalf("content = %q", got)
	}
}

func TestOSReaderReadFileErrors(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTree(t, base, map[string]string{"dir/a.txt": "a"})

	missing := filepath.Join(base, "missing.txt")
	_, err := NewOSReader(nil).ReadFile(missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ReadFile(missing) error = %v; want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "error reading file "+missing) {
		t.Fatalf("error %q does not name the file", err)
	}

	if _, err := NewOSReader(nil).ReadFile(filepath.Join(base, "dir")); err == nil {
		t.Fatalf("ReadFile(directory) must fail")
	}
}

// vanishingReader deletes one file right before the real reader opens it.
type vanishingReader struct {
	remove string
	next   Reader
}

func (r vanishingReader) ReadFile(path string) ([]byte, error) {
	if path == r.remove {
		if err := os.Remove(path); err != nil {
			return nil, err
		}
	}
	return r.next.ReadFile(path)
}

func TestRunSkipsFileRemovedBeforeRead(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.go": "a", "b.go": "b"})
	gone := filepath.Join(base, "a.go")

	out, summary := run(t, Options{}, vanishingReader{remove: gone, next: NewOSReader(nil)}, base)

	if summary.Emitted != 1 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if !errors.Is(summary.Warnings, fs.ErrNotExist) {
		t.Fatalf("Warnings = %v; want fs.ErrNotExist", summary.Warnings)
	}
	want := filepath.Join(base, "b.go") + "\n---\nb\n---\n"
	if out != want {
		t.Fatalf("output = %q; want %q", out, want)
	}
}
