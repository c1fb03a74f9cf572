package calc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrSyntax indicates an expression that does not match any accepted form.
var ErrSyntax = errors.New("invalid expression")

// Expr is a parsed but not yet validated calculator expression.
// Operands hold the raw operand text; Evaluate cleans and validates them.
type Expr struct {
	Op       Op
	Operands []string
}

func (e Expr) String() string {
	switch {
	case e.Op == OpFact && len(e.Operands) == 1:
		return e.Operands[0] + "!"
	case e.Op.Infix() && len(e.Operands) == 2:
		return e.Operands[0] + " " + e.Op.Symbol() + " " + e.Operands[1]
	default:
		return e.Op.String() + " " + strings.Join(e.Operands, " ")
	}
}

const infixOperators = "+-*/%^×÷"

// ParseExpr parses one expression in any of the accepted forms:
//
//	A + B, A - B, A * B, A / B, A % B, A ^ B
//	N!
//	add|sub|mul|div|mod|pow|gcd|lcm A B
//	fact|prime N
//	gcd(A, B)
func ParseExpr(line string) (Expr, error) {
	s := strings.TrimSpace(strings.ReplaceAll(norm.NFKC.String(line), "−", "-"))
	if s == "" {
		return Expr{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	if expr, ok, err := parsePrefix(s); ok || err != nil {
		return expr, err
	}
	if body, ok := strings.CutSuffix(s, "!"); ok {
		if strings.TrimSpace(body) == "" {
			return Expr{}, fmt.Errorf("%w: %q has no operand", ErrSyntax, line)
		}
		return Expr{Op: OpFact, Operands: []string{body}}, nil
	}
	return parseInfix(s, line)
}

func parsePrefix(s string) (Expr, bool, error) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '?'
	})
	if end == 0 {
		return Expr{}, false, nil
	}
	if end < 0 {
		end = len(s)
	}
	op, ok := LookupOp(s[:end])
	if !ok {
		return Expr{}, false, fmt.Errorf("%w: unknown operation %q", ErrSyntax, s[:end])
	}

	rest := strings.TrimSpace(s[end:])
	if inner, ok := strings.CutPrefix(rest, "("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return Expr{}, true, fmt.Errorf("%w: missing ')' in %q", ErrSyntax, s)
		}
		rest = inner
	}

	var operands []string
	if strings.Contains(rest, ",") {
		operands = strings.Split(rest, ",")
	} else {
		operands = strings.Fields(rest)
	}
	for i := range operands {
		operands[i] = strings.TrimSpace(operands[i])
	}
	if len(operands) != op.Arity() {
		return Expr{}, true, fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrSyntax, op, op.Arity(), len(operands))
	}
	return Expr{Op: op, Operands: operands}, true, nil
}

// parseInfix splits "A op B" at the first operator that follows at least one
// operand character, so leading signs and "-5 - -3" are handled.
func parseInfix(s, line string) (Expr, error) {
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	for j, r := range s[i:] {
		if !strings.ContainsRune(infixOperators, r) {
			continue
		}
		pos := i + j
		left := strings.TrimSpace(s[:pos])
		if left == "" || left == "+" || left == "-" {
			continue
		}
		op, _ := LookupOp(string(r))
		right := strings.TrimSpace(s[pos+len(string(r)):])
		if right == "" {
			return Expr{}, fmt.Errorf("%w: %q is missing the second operand", ErrSyntax, line)
		}
		return Expr{Op: op, Operands: []string{left, right}}, nil
	}
	return Expr{}, fmt.Errorf("%w: %q has no operator", ErrSyntax, line)
}
