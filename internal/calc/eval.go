package calc

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kpgusev/calculator/internal/bignum"
	"github.com/kpgusev/calculator/internal/trace"
)

// Result is the outcome of one successful operation.
type Result struct {
	Op       Op
	Operands []string   // cleaned operand text as entered
	Value    bignum.Int // numeric result; zero for OpPrime
	Prime    bool       // OpPrime verdict
	Text     string     // canonical result, or "prime"/"not prime"
	Entry    string     // history line, e.g. "2 ^ 10 = 1024"
	Cached   bool       // served from the result cache
}

// ResultCache stores canonical results of expensive operations.
type ResultCache interface {
	Lookup(key string) (string, bool, error)
	Store(key, value string) error
}

// Evaluator runs operations, optionally consulting a result cache and
// recording successful results in a history.
// A zero Evaluator is ready to use.
type Evaluator struct {
	Cache   ResultCache
	History *History
	Now     func() time.Time
}

// Evaluate runs op on raw operands with a zero Evaluator.
func Evaluate(ctx context.Context, op Op, raw ...string) (Result, error) {
	var e Evaluator
	return e.Eval(ctx, op, raw...)
}

// EvalExpr parses and evaluates one expression line.
func (e *Evaluator) EvalExpr(ctx context.Context, line string) (Result, error) {
	expr, err := ParseExpr(line)
	if err != nil {
		return Result{}, err
	}
	return e.Eval(ctx, expr.Op, expr.Operands...)
}

// Eval validates the raw operands, applies op and records the result.
func (e *Evaluator) Eval(ctx context.Context, op Op, raw ...string) (Result, error) {
	if op == OpInvalid || op.Arity() == 0 {
		return Result{}, fmt.Errorf("%w: unknown operation", ErrSyntax)
	}
	if len(raw) != op.Arity() {
		return Result{}, fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrSyntax, op, op.Arity(), len(raw))
	}

	args := make([]bignum.Int, len(raw))
	texts := make([]string, len(raw))
	for i, r := range raw {
		v, text, err := ParseOperand(r, FieldName(i))
		if err != nil {
			return Result{}, err
		}
		args[i], texts[i] = v, text
	}

	_, span := trace.Start(ctx, trace.ScopeOperation, op.String())
	res, err := e.apply(ctx, op, args)
	if err != nil {
		span.End(err.Error())
		return Result{}, err
	}
	res.Operands = texts
	res.Entry = formatEntry(op, texts, res.Text)
	span.WithExtra("digits", strconv.Itoa(len(res.Text))).WithExtra("cached", strconv.FormatBool(res.Cached)).End("")

	if e.History != nil {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		e.History.Add(Entry{Op: op, Line: res.Entry, Result: res.Text, At: now()})
	}
	return res, nil
}

func (e *Evaluator) apply(ctx context.Context, op Op, args []bignum.Int) (Result, error) {
	if op == OpPrime {
		prime, err := bignum.IsPrime(args[0])
		if err != nil {
			return Result{}, err
		}
		text := "not prime"
		if prime {
			text = "prime"
		}
		return Result{Op: op, Prime: prime, Text: text}, nil
	}

	key := ""
	if e.Cache != nil && cacheable(op) {
		key = cacheKey(op, args)
		if text, ok := e.lookup(ctx, key); ok {
			if v, err := bignum.Parse(text); err == nil {
				return Result{Op: op, Value: v, Text: text, Cached: true}, nil
			}
		}
	}

	v, err := Apply(op, args...)
	if err != nil {
		return Result{}, err
	}
	text := v.String()
	if key != "" {
		if err := e.Cache.Store(key, text); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeStep, "cache:store", err.Error())
		}
	}
	return Result{Op: op, Value: v, Text: text}, nil
}

func (e *Evaluator) lookup(ctx context.Context, key string) (string, bool) {
	_, span := trace.Start(ctx, trace.ScopeStep, "cache:lookup")
	text, ok, err := e.Cache.Lookup(key)
	if err != nil {
		span.End(err.Error())
		return "", false
	}
	span.End(strconv.FormatBool(ok))
	return text, ok
}

// Apply runs a numeric operation on parsed operands. OpPrime is not numeric
// and is rejected; use bignum.IsPrime.
func Apply(op Op, args ...bignum.Int) (bignum.Int, error) {
	if len(args) != op.Arity() || op == OpPrime {
		return bignum.Int{}, fmt.Errorf("%w: cannot apply %s to %d operand(s)", ErrSyntax, op, len(args))
	}
	switch op {
	case OpAdd:
		return args[0].Add(args[1]), nil
	case OpSub:
		return args[0].Sub(args[1]), nil
	case OpMul:
		return args[0].Mul(args[1]), nil
	case OpDiv:
		return args[0].Quo(args[1])
	case OpMod:
		return args[0].Rem(args[1])
	case OpPow:
		return bignum.Pow(args[0], args[1])
	case OpFact:
		return bignum.Factorial(args[0])
	case OpGCD:
		return bignum.GCD(args[0], args[1]), nil
	case OpLCM:
		return bignum.LCM(args[0], args[1]), nil
	default:
		return bignum.Int{}, fmt.Errorf("%w: unknown operation", ErrSyntax)
	}
}

func cacheable(op Op) bool {
	return op == OpPow || op == OpFact
}

// cacheKey is built from canonical operands so "+02 ^ 10" and "2^10" share it.
func cacheKey(op Op, args []bignum.Int) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op.String())
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ":")
}

func formatEntry(op Op, operands []string, text string) string {
	switch op {
	case OpFact:
		return operands[0] + "! = " + text
	case OpGCD, OpLCM:
		return op.String() + "(" + operands[0] + ", " + operands[1] + ") = " + text
	case OpPrime:
		return operands[0] + ": " + text
	default:
		return operands[0] + " " + op.Symbol() + " " + operands[1] + " = " + text
	}
}
