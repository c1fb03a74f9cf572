package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kpgusev/calculator/internal/version"
)

// errSilent marks failures that were already reported to the user.
var errSilent = errors.New("silent failure")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "calc",
		Short: "Arbitrary-precision integer calculator",
		Long: `calc works with signed integers of any length.

Run without a subcommand to open the interactive calculator, or use
"calc eval" and "calc batch" from scripts.`,
		Version:           version.Current().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: prepareSession,
		RunE:              runInteractive,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to calc.toml (default: search upward, then $XDG_CONFIG_HOME/calc)")
	pf.String("color", "", "colorize output (auto|on|off)")
	pf.String("ui", "", "interactive UI (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Bool("no-history", false, "do not read or record history")
	pf.Bool("no-cache", false, "do not use the result cache")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|command|operation|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring)")
	pf.String("trace-format", "text", "trace format (text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")

	pf.String("cpu-profile", "", "write a CPU profile to the file")
	pf.String("mem-profile", "", "write a heap profile to the file")
	pf.String("runtime-trace", "", "write a runtime trace to the file")

	root.AddCommand(newEvalCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	sess := &session{stderr: stderr}
	err := root.ExecuteContext(withSession(ctx, sess))
	sess.finish(err)
	if err != nil {
		if !errors.Is(err, errSilent) {
			printError(stderr, err)
		}
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold).Sprint("error:")
	fmt.Fprintf(w, "%s %v\n", label, err)
}

// main executes the root command and exits with status 1 on failure.
func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
