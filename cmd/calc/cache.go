package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/store"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the on-disk result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := sessionFrom(cmd.Context())
			dir, err := s.cfg.CacheDir()
			if err != nil {
				return err
			}
			c, err := store.OpenCache(dir, s.cfg.Cache.MinDigits)
			if err != nil {
				return err
			}
			if err := c.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if !s.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", c.Dir())
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := sessionFrom(cmd.Context()).cfg.CacheDir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	})
	return cmd
}
