package bignum

import (
	"fmt"
	"math"
)

// Work bounds for the operations that bridge to native integers. They cap
// the cost of the loops driven by the argument and are part of the contract.
const (
	MaxExponentDigits  = 7
	MaxExponent        = 10000
	MaxFactorialDigits = 5
	MaxFactorial       = 10000
	MaxPrimeDigits     = 12
)

var (
	two   = FromInt64(2)
	three = FromInt64(3)
)

// native converts a non-negative x to int64 after checking the digit-count
// and value bounds.
func native(x Int, what string, maxDigits int, maxValue int64) (int64, error) {
	if x.Len() > maxDigits {
		return 0, fmt.Errorf("%w: %s has %d digits, limit is %d", ErrMagnitudeTooLarge, what, x.Len(), maxDigits)
	}
	v, ok := x.Int64()
	if !ok || v > maxValue {
		return 0, fmt.Errorf("%w: %s %s exceeds %d", ErrMagnitudeTooLarge, what, x, maxValue)
	}
	return v, nil
}

// Pow returns base**exp using exponentiation by squaring.
// The exponent must be non-negative and at most MaxExponent.
func Pow(base, exp Int) (Int, error) {
	if exp.IsNeg() {
		return Int{}, ErrNegativeExponent
	}
	if exp.IsZero() {
		return One(), nil
	}
	n, err := native(exp, "exponent", MaxExponentDigits, MaxExponent)
	if err != nil {
		return Int{}, err
	}
	result, cur := One(), base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(cur)
		}
		n >>= 1
		if n == 0 {
			break
		}
		cur = cur.Mul(cur)
	}
	return result, nil
}

// Factorial returns n! computed as the sequential product 1*2*...*n.
// n must be non-negative and at most MaxFactorial.
func Factorial(n Int) (Int, error) {
	if n.IsNeg() {
		return Int{}, ErrNegativeArgument
	}
	v, err := native(n, "factorial argument", MaxFactorialDigits, MaxFactorial)
	if err != nil {
		return Int{}, err
	}
	result := One()
	for i := int64(2); i <= v; i++ {
		result = result.Mul(FromInt64(i))
	}
	return result, nil
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b Int) Int {
	x, y := a.mag(), b.mag()
	for !isZeroDigits(y) {
		_, r := quoRemDigits(x, y)
		x, y = y, r
	}
	return newInt(false, x)
}

// LCM returns the least common multiple of |a| and |b|, or 0 if either is 0.
func LCM(a, b Int) Int {
	if a.IsZero() || b.IsZero() {
		return Zero()
	}
	g := GCD(a, b)
	q, _ := quoRemDigits(a.mag(), g.mag())
	return newInt(false, mulDigits(q, b.mag()))
}

// IsPrime reports whether n is prime using trial division by odd divisors
// up to the integer square root.
//
// Negative values, 0 and 1 are not prime and even values are rejected
// without a bound check. Odd values longer than MaxPrimeDigits digits
// yield ErrMagnitudeTooLarge.
func IsPrime(n Int) (bool, error) {
	if n.IsNeg() || n.Cmp(One()) <= 0 {
		return false, nil
	}
	if n.Equal(two) || n.Equal(three) {
		return true, nil
	}
	if n.IsEven() {
		return false, nil
	}
	v, err := native(n, "primality argument", MaxPrimeDigits, math.MaxInt64)
	if err != nil {
		return false, err
	}
	for i := int64(3); i*i <= v; i += 2 {
		if v%i == 0 {
			return false, nil
		}
	}
	return true, nil
}
