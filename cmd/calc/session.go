package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kpgusev/calculator/internal/calc"
	"github.com/kpgusev/calculator/internal/config"
	"github.com/kpgusev/calculator/internal/observ"
	"github.com/kpgusev/calculator/internal/store"
	"github.com/kpgusev/calculator/internal/trace"
)

type sessionKey struct{}

// session carries per-invocation state from PersistentPreRunE to the
// command and to execute's cleanup.
type session struct {
	stderr  io.Writer
	cfg     config.Config
	quiet   bool
	timings bool
	timer   *observ.Timer

	history *store.History
	cache   *store.Cache

	cleanups []func(failed bool)
}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) *session {
	if s, ok := ctx.Value(sessionKey{}).(*session); ok {
		return s
	}
	return &session{stderr: os.Stderr, cfg: config.Default(), timer: observ.NewTimer()}
}

func (s *session) onFinish(fn func(failed bool)) {
	s.cleanups = append(s.cleanups, fn)
}

// finish runs cleanups in reverse order of registration.
func (s *session) finish(err error) {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i](err != nil)
	}
	s.cleanups = nil
	if s.timings && s.timer != nil {
		fmt.Fprint(s.stderr, s.timer.Summary())
	}
}

func (s *session) warnf(format string, args ...any) {
	if s.quiet {
		return
	}
	label := color.New(color.FgYellow).Sprint("warning:")
	fmt.Fprintf(s.stderr, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// prepareSession loads configuration and starts profiling and tracing.
func prepareSession(cmd *cobra.Command, _ []string) error {
	s := sessionFrom(cmd.Context())
	s.stderr = cmd.ErrOrStderr()
	s.timer = observ.NewTimer()
	flags := cmd.Root().PersistentFlags()
	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	s.onFinish(func(bool) { stopProfiling() })

	endConfig := s.timer.Measure("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		endConfig("failed")
		return err
	}
	endConfig(cfg.Path)
	s.cfg = cfg
	applyColor(cfg.UI.Color)

	finishTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	s.onFinish(finishTrace)
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(config.Options{File: path})
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("ui") {
		v, _ := flags.GetString("ui")
		mode, err := readUIMode(v)
		if err != nil {
			return config.Config{}, err
		}
		cfg.UI.Mode = string(mode)
	}
	if flags.Changed("color") {
		v, _ := flags.GetString("color")
		mode, err := readUIMode(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --color: %w", err)
		}
		cfg.UI.Color = string(mode)
	}
	if off, _ := flags.GetBool("no-history"); off {
		cfg.History.Enabled = false
	}
	if off, _ := flags.GetBool("no-cache"); off {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

func applyColor(mode string) {
	switch strings.ToLower(mode) {
	case config.SwitchOn:
		color.NoColor = false
	case config.SwitchOff:
		color.NoColor = true
	}
}

// evaluator builds a calc.Evaluator backed by the configured history file
// and result cache. Storage problems are reported as warnings.
func (s *session) evaluator(record bool) *calc.Evaluator {
	ev := &calc.Evaluator{}
	if record {
		ev.History = calc.NewHistory(s.cfg.History.Limit)
		if h := s.historyStore(); h != nil {
			if err := h.Attach(ev.History, func(err error) { s.warnf("history: %v", err) }); err != nil {
				s.warnf("history: %v", err)
			}
		}
	}
	if c := s.resultCache(); c != nil {
		ev.Cache = c
	}
	return ev
}

func (s *session) historyStore() *store.History {
	if !s.cfg.History.Enabled {
		return nil
	}
	if s.history == nil {
		path, err := s.cfg.HistoryFile()
		if err != nil {
			s.warnf("history: %v", err)
			return nil
		}
		s.history = store.OpenHistory(path, s.cfg.History.Limit)
	}
	return s.history
}

func (s *session) resultCache() *store.Cache {
	if !s.cfg.Cache.Enabled {
		return nil
	}
	if s.cache == nil {
		dir, err := s.cfg.CacheDir()
		if err == nil {
			s.cache, err = store.OpenCache(dir, s.cfg.Cache.MinDigits)
		}
		if err != nil {
			s.warnf("cache: %v", err)
			return nil
		}
	}
	return s.cache
}

// commandSpan opens the ScopeCommand span for cmd and ends it on finish.
func commandSpan(cmd *cobra.Command) context.Context {
	ctx, span := trace.Start(cmd.Context(), trace.ScopeCommand, cmd.CommandPath())
	sessionFrom(ctx).onFinish(func(failed bool) {
		detail := ""
		if failed {
			detail = "failed"
		}
		span.End(detail)
	})
	return ctx
}
