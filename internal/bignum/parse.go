package bignum

import "fmt"

// Parse converts a decimal string to an Int.
//
// The accepted form is an optional leading '+' or '-' followed by one or more
// ASCII digits. Redundant leading zeros are ignored and "-0" parses to zero.
// Any other character, including surrounding whitespace, yields ErrParse.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	text := s
	neg := false
	switch text[0] {
	case '+':
		text = text[1:]
	case '-':
		neg = true
		text = text[1:]
	}
	if text == "" {
		return Int{}, fmt.Errorf("%w: %q has no digits", ErrParse, s)
	}
	for len(text) > 1 && text[0] == '0' {
		text = text[1:]
	}

	digits := make([]uint8, len(text))
	for i := range len(text) {
		ch := text[len(text)-1-i]
		if ch < '0' || ch > '9' {
			return Int{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		digits[i] = ch - '0'
	}
	return newInt(neg, digits), nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
