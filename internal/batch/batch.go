// Package batch evaluates many calculator expressions concurrently while
// keeping results in input order.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kpgusev/calculator/internal/calc"
	"github.com/kpgusev/calculator/internal/trace"
)

// Status captures the progress state of one line.
type Status string

const (
	// StatusQueued indicates the line is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the line is being evaluated.
	StatusWorking Status = "working"
	// StatusDone indicates the line evaluated successfully.
	StatusDone Status = "done"
	// StatusError indicates the line failed.
	StatusError Status = "error"
)

// Event reports progress for one item.
type Event struct {
	Index   int
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Item is one expression taken from the input.
type Item struct {
	Line int // 1-based source line
	Expr string
}

// Outcome is the result of one item.
type Outcome struct {
	Item
	Result  calc.Result
	Err     error
	Skipped bool // not evaluated because an earlier line failed with FailFast
	Elapsed time.Duration
}

// Options configure Run.
type Options struct {
	// Jobs bounds concurrent evaluations; non-positive means GOMAXPROCS.
	Jobs int
	// FailFast stops scheduling new lines after the first failure.
	FailFast bool
	// Evaluator supplies the result cache. Its History is ignored; use History.
	Evaluator *calc.Evaluator
	// History receives successful results in input order after the run.
	History *calc.History
	// Progress receives per-item events; may be nil.
	Progress Sink
}

const maxLineSize = 1 << 20

// ReadItems reads one expression per line, skipping blank lines and lines
// starting with '#'.
func ReadItems(r io.Reader) ([]Item, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var items []Item
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, Item{Line: line, Expr: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return items, nil
}

// Run evaluates items on a bounded worker pool. Outcomes are returned in
// input order. The returned error is non-nil only when FailFast stopped the
// run or ctx was cancelled; per-line failures are reported in Outcome.Err.
func Run(ctx context.Context, items []Item, opts Options) ([]Outcome, error) {
	outcomes := make([]Outcome, len(items))
	for i, it := range items {
		outcomes[i] = Outcome{Item: it, Skipped: true}
		emit(opts.Progress, Event{Index: i, Status: StatusQueued})
	}
	if len(items) == 0 {
		return outcomes, nil
	}

	var ev calc.Evaluator
	if opts.Evaluator != nil {
		ev = *opts.Evaluator
	}
	ev.History = nil

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(items)))

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}

			emit(opts.Progress, Event{Index: i, Status: StatusWorking})
			sctx, span := trace.Start(gctx, trace.ScopeStep, "line "+strconv.Itoa(items[i].Line))
			start := time.Now()
			res, err := ev.EvalExpr(sctx, items[i].Expr)
			elapsed := time.Since(start)

			// each goroutine owns index i
			outcomes[i] = Outcome{Item: items[i], Result: res, Err: err, Elapsed: elapsed}
			if err != nil {
				span.End(err.Error())
				emit(opts.Progress, Event{Index: i, Status: StatusError, Err: err, Elapsed: elapsed})
				if opts.FailFast {
					return fmt.Errorf("line %d: %w", items[i].Line, err)
				}
				return nil
			}
			span.End("")
			emit(opts.Progress, Event{Index: i, Status: StatusDone, Elapsed: elapsed})
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if opts.History != nil {
		for _, o := range outcomes {
			if !o.Skipped && o.Err == nil {
				opts.History.Add(calc.Entry{Op: o.Result.Op, Line: o.Result.Entry, Result: o.Result.Text, At: time.Now()})
			}
		}
	}
	return outcomes, err
}

// Summary counts outcomes by state.
type Summary struct {
	OK, Failed, Skipped int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			s.Skipped++
		case o.Err != nil:
			s.Failed++
		default:
			s.OK++
		}
	}
	return s
}

func emit(s Sink, ev Event) {
	if s != nil {
		s.OnEvent(ev)
	}
}
