package calc

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/kpgusev/calculator/internal/bignum"
)

var (
	// ErrEmptyOperand indicates an operand with no text after cleaning.
	ErrEmptyOperand = errors.New("is empty")
	// ErrMissingDigits indicates an operand consisting of a sign only.
	ErrMissingDigits = errors.New("enter digits")
	// ErrInvalidCharacters indicates an operand with non-digit characters.
	ErrInvalidCharacters = errors.New("contains invalid characters")
)

// InputError reports an operand rejected before it reaches the engine.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string { return e.Field + " " + e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// FieldName returns the display name of the i-th operand (0-based).
func FieldName(i int) string {
	switch i {
	case 0:
		return "operand 1"
	case 1:
		return "operand 2"
	default:
		return "operand"
	}
}

// Clean normalizes raw operand text: compatibility forms are folded with
// NFKC (so full-width digits become ASCII), U+2212 becomes '-', and all
// whitespace is removed, which allows digit grouping such as "1 000 000".
func Clean(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ReplaceAll(s, "−", "-")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Validate checks that text is an optional sign followed by ASCII digits.
func Validate(text, field string) error {
	if text == "" {
		return &InputError{Field: field, Err: ErrEmptyOperand}
	}
	start := 0
	if text[0] == '-' || text[0] == '+' {
		start = 1
	}
	if start >= len(text) {
		return &InputError{Field: field, Err: ErrMissingDigits}
	}
	for i := start; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return &InputError{Field: field, Err: ErrInvalidCharacters}
		}
	}
	return nil
}

// ParseOperand cleans, validates and parses raw operand text.
// It returns the cleaned text alongside the value.
func ParseOperand(raw, field string) (bignum.Int, string, error) {
	text := Clean(raw)
	if err := Validate(text, field); err != nil {
		return bignum.Int{}, text, err
	}
	v, err := bignum.Parse(text)
	if err != nil {
		return bignum.Int{}, text, err
	}
	return v, text, nil
}
