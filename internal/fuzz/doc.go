// Package fuzztests houses Go fuzz harnesses for the calculator front end
// (operand cleaning -> expression parsing -> bignum arithmetic). They guard
// against panics, hangs and arithmetic identities breaking on arbitrary input.
//
// Does not: generate corpora, write files, run the CLI.
//
// Dependencies: internal/bignum, internal/calc.
package fuzztests
