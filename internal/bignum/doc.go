// Package bignum implements immutable arbitrary-precision decimal integers.
//
// # Representation
//
// [Int] stores a sign flag and the decimal digits of its magnitude, least
// significant first. Values are always canonical: there are no leading zero
// digits and zero is never negative, so equal values have equal
// representations and [Int.String] round-trips with [Parse].
//
// # Operations
//
// Addition, subtraction and multiplication use schoolbook digit loops and
// never fail. [Int.QuoRem] performs long division with a binary search for
// each quotient digit and returns quotient and remainder together; division
// truncates toward zero and the remainder carries the dividend's sign.
//
// The number-theory helpers [Pow], [Factorial], [GCD], [LCM] and [IsPrime]
// are built on these primitives. Pow, Factorial and IsPrime convert their
// argument to a native integer to drive their loops and reject arguments
// above fixed bounds with [ErrMagnitudeTooLarge]:
//
//	| Operation | Max digits | Max value |
//	| --------- | ---------- | --------- |
//	| Pow       | 7          | 10000     |
//	| Factorial | 5          | 10000     |
//	| IsPrime   | 12         |           |
//
// # Errors
//
// Failing operations return the zero Int together with one of the sentinel
// errors, possibly wrapped with detail; use [errors.Is] to classify them.
// No operation returns a partial result.
//
// All values are safe for concurrent use because no operation mutates an
// existing Int.
package bignum
