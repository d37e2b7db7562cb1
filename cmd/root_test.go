package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func writeTree(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(base, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunPlainOutput(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"a.go":       "package a",
		".hidden.go": "package hidden",
		"b.txt":      "text",
	})

	code, out, stderr := execute("-e", ".go", base)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	want := filepath.Join(base, "a.go") + "\n---\npackage a\n---\n"
	if out != want {
		t.Fatalf("stdout = %q; want %q", out, want)
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr:\n%s", stderr)
	}
}

func TestRunXMLToFile(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"src/a.go": "a", "src/b.go": "b", "src/c.go": "c",
	})
	outPath := filepath.Join(base, "out.xml")

	code, stdout, stderr := execute("-o", outPath, "-c", filepath.Join(base, "src"))
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if stdout != "" {
		t.Fatalf("stdout must stay empty with -o, got %q", stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "<documents>\n") || !strings.HasSuffix(got, "</documents>\n") {
		t.Fatalf("missing wrapper:\n%s", got)
	}
	indices := regexp.MustCompile(`<document index="(\d+)">`).FindAllStringSubmatch(got, -1)
	if len(indices) != 3 {
		t.Fatalf("got %d documents; want 3:\n%s", len(indices), got)
	}
	for i, m := range indices {
		if m[1] != string(rune('1'+i)) {
			t.Fatalf("document %d has index %s", i, m[1])
		}
	}
}

func TestRunMissingRoot(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.go": "a"})
	outPath := filepath.Join(base, "out.txt")
	if err := os.WriteFile(outPath, []byte("previous"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	missing := filepath.Join(base, "no", "such", "dir")
	code, stdout, stderr := execute("-o", outPath, base, missing)
	if code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if strings.TrimSpace(stderr) != "Path does not exist: "+missing {
		t.Fatalf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "previous" {
		t.Fatalf("output file was modified: %q", data)
	}
}

func TestRunMissingRootCreatesNoFile(t *testing.T) {
	base := t.TempDir()
	outPath := filepath.Join(base, "out.xml")

	code, _, _ := execute("-c", "-o", outPath, filepath.Join(base, "missing"))
	if code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("output file must not be created, stat err = %v", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	code, stdout, stderr := execute("--bogus")
	if code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "Error: unknown flag: --bogus") || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("stderr must contain error and usage:\n%s", stderr)
	}
}

func TestRunInvalidScope(t *testing.T) {
	code, _, stderr := execute("--gitignore-scope", "everywhere", t.TempDir())
	if code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if !strings.Contains(stderr, "invalid gitignore scope") || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("stderr must contain error and usage:\n%s", stderr)
	}
}

func TestRunFileRootIsAlwaysIncluded(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{".env": "SECRET=1"})
	root := filepath.Join(base, ".env")

	code, out, stderr := execute("-e", ".go", "-i", ".env", root)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if out != root+"\n---\nSECRET=1\n---\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestRunIgnoreAndHiddenFlags(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"main.go":      "m",
		"main_test.go": "t",
		".golangci.go": "g",
	})

	code, out, stderr := execute("-H", "-i", "*_test.go", "--no-gitignore", base)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(out, ".golangci.go") || !strings.Contains(out, "main.go") {
		t.Fatalf("expected hidden and main files:\n%s", out)
	}
	if strings.Contains(out, "main_test.go") {
		t.Fatalf("ignored file present:\n%s", out)
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.go": "a"})

	code, out, stderr := execute("-v", base)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "DEBUG") {
		t.Fatalf("expected debug logs on stderr:\n%s", stderr)
	}
	if strings.Contains(out, "DEBUG") {
		t.Fatalf("diagnostics leaked into output:\n%s", out)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := execute("--version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out, "files-to-prompt, version ") {
		t.Fatalf("stdout = %q", out)
	}
}
