package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/batch"
	"github.com/kpgusev/calculator/internal/ui"
)

type batchOutcome struct {
	outcomes []batch.Outcome
	err      error
}

func runBatchWithUI(ctx context.Context, out io.Writer, title string, items []batch.Item, opts batch.Options) ([]batch.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, items, optsCopy)
		outcomeCh <- batchOutcome{outcomes: res, err: err}
		close(events)
	}()

	exprs := make([]string, len(items))
	for i, it := range items {
		exprs[i] = it.Expr
	}
	model := ui.NewProgressModel(title, exprs, events)
	// stdin may carry the batch input
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// quitting the UI early abandons the remaining lines
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}

// runInteractive opens the calculator TUI, or prints help when the UI is off.
func runInteractive(cmd *cobra.Command, _ []string) error {
	s := sessionFrom(cmd.Context())
	mode, err := readUIMode(s.cfg.UI.Mode)
	if err != nil {
		return err
	}
	if !shouldUseTUI(mode, cmd.OutOrStdout()) {
		return cmd.Help()
	}

	ctx := commandSpan(cmd)
	opts := ui.CalculatorOptions{
		Context:   ctx,
		Evaluator: s.evaluator(true),
		Clipboard: cmd.ErrOrStderr(),
	}
	if h := s.historyStore(); h != nil {
		opts.OnClearHistory = h.Clear
	}
	program := tea.NewProgram(ui.NewCalculator(opts), tea.WithOutput(cmd.OutOrStdout()), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
