package calc

import (
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  42 ", "42"},
		{"1 000 000", "1000000"},
		{"−15", "-15"},
		{"１２３", "123"},
		{"\t-7\n", "-7"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"0", nil},
		{"+12", nil},
		{"-0012", nil},
		{"", ErrEmptyOperand},
		{"+", ErrMissingDigits},
		{"-", ErrMissingDigits},
		{"--1", ErrInvalidCharacters},
		{"1e5", ErrInvalidCharacters},
		{"٣", ErrInvalidCharacters},
	}
	for _, tc := range cases {
		err := Validate(tc.in, "operand 1")
		if tc.want == nil {
			if err != nil {
				t.Fatalf("Validate(%q) error: %v", tc.in, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("Validate(%q) error = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestInputError_Message(t *testing.T) {
	err := Validate("", FieldName(1))
	if got := err.Error(); got != "operand 2 is empty" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestParseOperand(t *testing.T) {
	v, text, err := ParseOperand(" -0 012 ", "operand 1")
	if err != nil {
		t.Fatalf("ParseOperand error: %v", err)
	}
	if text != "-0012" || v.String() != "-12" {
		t.Fatalf("ParseOperand = %v, %q", v, text)
	}
}
