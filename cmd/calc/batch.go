package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/batch"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Evaluate expressions read one per line",
		Long: `Evaluate every expression in a file, or standard input when the
argument is omitted or "-". Blank lines and lines starting with # are
skipped. Results are printed in input order; failures go to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().Int("jobs", 0, "concurrent evaluations (default: batch.jobs from config)")
	cmd.Flags().Bool("fail-fast", false, "stop after the first failing line")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

type batchPayload struct {
	Line    int            `json:"line"`
	Expr    string         `json:"expr"`
	Result  *resultPayload `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Skipped bool           `json:"skipped,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := readOutputFormat(cmd)
	if err != nil {
		return err
	}
	s := sessionFrom(cmd.Context())
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = s.cfg.Batch.Jobs
	}
	failFast, _ := cmd.Flags().GetBool("fail-fast")

	endRead := s.timer.Measure("read")
	items, err := readBatchInput(cmd, args)
	if err != nil {
		endRead("failed")
		return err
	}
	endRead(fmt.Sprintf("%d lines", len(items)))

	ctx := commandSpan(cmd)
	ev := s.evaluator(true)
	opts := batch.Options{
		Jobs:      jobs,
		FailFast:  failFast,
		Evaluator: ev,
		History:   ev.History,
	}

	mode, err := readUIMode(s.cfg.UI.Mode)
	if err != nil {
		return err
	}
	endEval := s.timer.Measure("evaluate")
	var outcomes []batch.Outcome
	var runErr error
	if format == "pretty" && !s.quiet && len(items) > 1 && shouldUseTUI(mode, cmd.ErrOrStderr()) {
		outcomes, runErr = runBatchWithUI(ctx, cmd.ErrOrStderr(), "Evaluating", items, opts)
	} else {
		outcomes, runErr = batch.Run(ctx, items, opts)
	}
	sum := batch.Summarize(outcomes)
	endEval(fmt.Sprintf("%d ok, %d failed", sum.OK, sum.Failed))

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if format == "json" {
		if err := writeBatchJSON(out, outcomes); err != nil {
			return err
		}
	} else {
		writeBatchPretty(out, errOut, outcomes)
		if !s.quiet {
			fmt.Fprintf(errOut, "%d ok, %d failed, %d skipped\n", sum.OK, sum.Failed, sum.Skipped)
		}
	}

	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		return errSilent
	}
	return nil
}

func readBatchInput(cmd *cobra.Command, args []string) ([]batch.Item, error) {
	if len(args) == 0 || args[0] == "-" {
		return batch.ReadItems(cmd.InOrStdin())
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := batch.ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return items, nil
}

func writeBatchPretty(out, errOut io.Writer, outcomes []batch.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			continue
		case o.Err != nil:
			fmt.Fprintf(errOut, "line %d: %s: %v\n", o.Line, o.Expr, o.Err)
		default:
			fmt.Fprintln(out, o.Result.Entry)
		}
	}
}

func writeBatchJSON(out io.Writer, outcomes []batch.Outcome) error {
	payload := make([]batchPayload, 0, len(outcomes))
	for _, o := range outcomes {
		p := batchPayload{Line: o.Line, Expr: o.Expr, Skipped: o.Skipped}
		switch {
		case o.Skipped:
		case o.Err != nil:
			p.Error = o.Err.Error()
		default:
			r := toPayload(o.Result)
			p.Result = &r
		}
		payload = append(payload, p)
	}
	return writeJSON(out, payload)
}
