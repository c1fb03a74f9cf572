package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/calc"
)

type resultPayload struct {
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	Result   string   `json:"result"`
	Entry    string   `json:"entry"`
	Cached   bool     `json:"cached,omitempty"`
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate one expression",
		Long: `Evaluate one expression and print the result.

Infix forms: a + b, a - b, a * b, a / b, a % b, a ^ b, n!
Prefix forms: gcd a b, lcm a b, prime n, fact n

Arguments are joined with spaces, so "calc eval 2 ^ 100" works unquoted.`,
		Example: `  calc eval 123456789 * 987654321
  calc eval "gcd(84, 36)"
  calc eval prime 1000003`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("entry", false, "print the full history entry instead of the bare result")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	format, err := readOutputFormat(cmd)
	if err != nil {
		return err
	}
	showEntry, _ := cmd.Flags().GetBool("entry")

	s := sessionFrom(cmd.Context())
	ctx := commandSpan(cmd)
	line := strings.Join(args, " ")

	endParse := s.timer.Measure("parse")
	expr, err := calc.ParseExpr(line)
	if err != nil {
		endParse("failed")
		return err
	}
	endParse(expr.Op.String())

	endEval := s.timer.Measure("evaluate")
	res, err := s.evaluator(true).Eval(ctx, expr.Op, expr.Operands...)
	if err != nil {
		endEval("failed")
		return err
	}
	if res.Cached {
		endEval("cached")
	} else {
		endEval("")
	}

	endRender := s.timer.Measure("render")
	defer endRender("")
	out := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(out, toPayload(res))
	}
	if showEntry {
		_, err = fmt.Fprintln(out, res.Entry)
	} else {
		_, err = fmt.Fprintln(out, res.Text)
	}
	return err
}

func toPayload(res calc.Result) resultPayload {
	return resultPayload{
		Op:       res.Op.String(),
		Operands: res.Operands,
		Result:   res.Text,
		Entry:    res.Entry,
		Cached:   res.Cached,
	}
}

func readOutputFormat(cmd *cobra.Command) (string, error) {
	v, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	format := strings.ToLower(strings.TrimSpace(v))
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", v)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
