package calc

import "strings"

// Op identifies a calculator operation.
type Op uint8

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpFact
	OpGCD
	OpLCM
	OpPrime
)

type opInfo struct {
	name   string
	symbol string
	label  string
	arity  int
}

var ops = [...]opInfo{
	OpInvalid: {name: "invalid", symbol: "?", label: "-"},
	OpAdd:     {name: "add", symbol: "+", label: "Addition", arity: 2},
	OpSub:     {name: "sub", symbol: "-", label: "Subtraction", arity: 2},
	OpMul:     {name: "mul", symbol: "*", label: "Multiplication", arity: 2},
	OpDiv:     {name: "div", symbol: "/", label: "Division", arity: 2},
	OpMod:     {name: "mod", symbol: "%", label: "Remainder", arity: 2},
	OpPow:     {name: "pow", symbol: "^", label: "Power", arity: 2},
	OpFact:    {name: "fact", symbol: "!", label: "Factorial", arity: 1},
	OpGCD:     {name: "gcd", symbol: "gcd", label: "GCD", arity: 2},
	OpLCM:     {name: "lcm", symbol: "lcm", label: "LCM", arity: 2},
	OpPrime:   {name: "prime", symbol: "prime?", label: "Primality check", arity: 1},
}

// aliases maps alternative spellings accepted by LookupOp.
var aliases = map[string]Op{
	"plus":      OpAdd,
	"minus":     OpSub,
	"−":         OpSub,
	"times":     OpMul,
	"×":         OpMul,
	"÷":         OpDiv,
	"rem":       OpMod,
	"power":     OpPow,
	"factorial": OpFact,
	"нод":       OpGCD,
	"нок":       OpLCM,
	"isprime":   OpPrime,
	"prime?":    OpPrime,
}

// Ops returns every valid operation in display order.
func Ops() []Op {
	return []Op{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpFact, OpGCD, OpLCM, OpPrime}
}

func (o Op) info() opInfo {
	if int(o) >= len(ops) {
		return ops[OpInvalid]
	}
	return ops[o]
}

// String returns the command name of the operation, e.g. "pow".
func (o Op) String() string { return o.info().name }

// Symbol returns the operator as it appears in expressions and history.
func (o Op) Symbol() string { return o.info().symbol }

// Label returns the human-readable operation name.
func (o Op) Label() string { return o.info().label }

// Arity returns the number of operands the operation takes.
func (o Op) Arity() int { return o.info().arity }

// Infix reports whether the operation is written between its operands.
func (o Op) Infix() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow:
		return true
	default:
		return false
	}
}

// LookupOp resolves an operation by name, symbol or alias, ignoring case.
func LookupOp(s string) (Op, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return OpInvalid, false
	}
	for _, op := range Ops() {
		if key == op.String() || key == op.Symbol() {
			return op, true
		}
	}
	if op, ok := aliases[key]; ok {
		return op, true
	}
	return OpInvalid, false
}
