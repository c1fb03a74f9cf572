package bignum

import (
	"fmt"
	"strings"
)

// String returns the canonical decimal form of x: a '-' for negative values
// followed by the digits, most significant first.
func (x Int) String() string {
	digits := x.mag()
	var b strings.Builder
	b.Grow(len(digits) + 1)
	if x.neg {
		b.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte('0' + digits[i])
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// Format implements fmt.Formatter.
// The verbs %d, %s and %v print the canonical form, %q prints it quoted.
// The '+' and ' ' flags force a sign position on non-negative values,
// width pads with spaces (or zeros after the sign with '0'), '-' left-aligns.
func (x Int) Format(state fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v', 'q':
	default:
		fmt.Fprintf(state, "%%!%c(bignum.Int=%s)", verb, x.String())
		return
	}

	text := x.String()
	sign := ""
	if x.neg {
		sign, text = "-", text[1:]
	} else if state.Flag('+') {
		sign = "+"
	} else if state.Flag(' ') {
		sign = " "
	}
	body := sign + text
	if verb == 'q' {
		body = `"` + body + `"`
	}

	width, ok := state.Width()
	pad := 0
	if ok && width > len(body) {
		pad = width - len(body)
	}
	switch {
	case pad == 0:
		_, _ = state.Write([]byte(body))
	case state.Flag('-'):
		_, _ = state.Write([]byte(body + strings.Repeat(" ", pad)))
	case state.Flag('0') && verb != 'q':
		_, _ = state.Write([]byte(sign + strings.Repeat("0", pad) + text))
	default:
		_, _ = state.Write([]byte(strings.Repeat(" ", pad) + body))
	}
}
