package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"filestoprompt/pkg/combine"
	"filestoprompt/pkg/config"
	"filestoprompt/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AppName is the name of the binary.
const AppName = "files-to-prompt"

// UsageError marks a failure caused by invalid command-line input. The usage
// text is printed along with it.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// NewRootCmd returns the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   AppName + " [paths...]",
		Short: "Concatenate a directory full of files into a single prompt",
		Long: `files-to-prompt writes the path and contents of every selected file below the given
paths (default: the current directory) to stdout or to a file, either as plain text
or wrapped in <documents> XML.

Files are skipped when their name starts with '.' (unless -H), matches an -i glob,
lacks every -e suffix, or matches a .gitignore rule of a root's parent directory.
A path given directly as a file is always included.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCombine,
	}
	cmd.SetVersionTemplate(version.Get().String() + "\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	config.RegisterFlags(cmd.Flags())
	return cmd
}

// Execute runs the root command with the process arguments and returns the
// exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the root command with args and returns the exit code: 0 on
// success, 1 on invalid arguments, a missing path or any other failure.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	color.NoColor = !isTerminal(stderr)

	c, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	red := color.New(color.FgRed)
	var usageErr *UsageError
	var notFound *combine.NotFoundError
	switch {
	case errors.As(err, &usageErr):
		red.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, c.UsageString())
	case errors.As(err, &notFound):
		red.Fprintln(stderr, notFound.Error())
	default:
		red.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
