package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/store"
)

var errHistoryDisabled = errors.New("history is disabled (history.enabled = false or --no-history)")

type historyPayload struct {
	ID     uint32    `json:"id"`
	Op     string    `json:"op"`
	Entry  string    `json:"entry"`
	Result string    `json:"result"`
	At     time.Time `json:"at"`
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the calculation history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	addListFlags := func(c *cobra.Command) {
		c.Flags().Int("limit", 20, "entries to show (0 for all)")
		c.Flags().String("format", "pretty", "output format (pretty|json)")
	}
	addListFlags(cmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent calculations, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	addListFlags(listCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := openHistory(cmd)
			if err != nil {
				return err
			}
			if err := h.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			if !sessionFrom(cmd.Context()).quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

func openHistory(cmd *cobra.Command) (*store.History, error) {
	s := sessionFrom(cmd.Context())
	if !s.cfg.History.Enabled {
		return nil, errHistoryDisabled
	}
	path, err := s.cfg.HistoryFile()
	if err != nil {
		return nil, err
	}
	return store.OpenHistory(path, s.cfg.History.Limit), nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	format, err := readOutputFormat(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", limit)
	}
	h, err := openHistory(cmd)
	if err != nil {
		return err
	}
	records, err := h.List(limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		payload := make([]historyPayload, 0, len(records))
		for _, r := range records {
			payload = append(payload, historyPayload{ID: r.ID, Op: r.Op, Entry: r.Entry, Result: r.Text, At: r.At})
		}
		return writeJSON(out, payload)
	}
	if len(records) == 0 {
		if !sessionFrom(cmd.Context()).quiet {
			fmt.Fprintln(out, "history is empty")
		}
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(out, "%4d  %s\n", r.ID, r.Entry)
	}
	return nil
}
