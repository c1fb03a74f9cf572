package bignum

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

var (
	// ErrParse indicates text that is not an optionally signed decimal integer.
	ErrParse = errors.New("invalid integer literal")
	// ErrDivisionByZero indicates an attempt to divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeExponent indicates a negative exponent or factorial argument.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrMagnitudeTooLarge indicates an argument above a documented work bound.
	ErrMagnitudeTooLarge = errors.New("magnitude too large")

	// ErrNegativeArgument is returned by Factorial; it matches ErrNegativeExponent.
	ErrNegativeArgument = fmt.Errorf("%w: factorial of negative number", ErrNegativeExponent)
)

// zeroDigits is the canonical magnitude of zero. It is shared and never written.
var zeroDigits = []uint8{0}

// Int represents an immutable signed decimal integer of unbounded magnitude.
//
// The zero value is canonical zero. Every operation returns a new Int and
// never writes to the digits of its operands.
type Int struct {
	neg bool
	// digits are base-10 little-endian (digits[0] is least significant).
	//
	// Canonical form has no most-significant zero digit unless the value is
	// zero, which is represented as [0] (or nil for the zero value).
	digits []uint8
}

// Zero returns canonical zero.
func Zero() Int { return Int{digits: zeroDigits} }

// One returns the integer 1.
func One() Int { return Int{digits: []uint8{1}} }

// FromInt64 creates an Int from an int64.
func FromInt64(v int64) Int {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	x := FromUint64(u)
	x.neg = true
	return x
}

// FromUint64 creates an Int from a uint64.
func FromUint64(v uint64) Int {
	if v == 0 {
		return Zero()
	}
	digits := make([]uint8, 0, 20)
	for v > 0 {
		digits = append(digits, uint8(v%10)) //nolint:gosec // G115: a decimal digit fits in uint8.
		v /= 10
	}
	return Int{digits: digits}
}

// newInt wraps a freshly built magnitude, canonicalizing digits and sign.
func newInt(neg bool, digits []uint8) Int {
	digits = trimDigits(digits)
	if isZeroDigits(digits) {
		return Zero()
	}
	return Int{neg: neg, digits: digits}
}

func (x Int) mag() []uint8 {
	if len(x.digits) == 0 {
		return zeroDigits
	}
	return x.digits
}

// IsZero reports whether x is zero.
func (x Int) IsZero() bool { return isZeroDigits(x.mag()) }

// IsNeg reports whether x is strictly negative.
func (x Int) IsNeg() bool { return x.neg }

// IsEven reports whether x is divisible by two.
func (x Int) IsEven() bool { return x.mag()[0]%2 == 0 }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.IsZero():
		return 0
	default:
		return 1
	}
}

// Len returns the number of decimal digits in the magnitude of x.
// Zero has one digit.
func (x Int) Len() int { return len(x.mag()) }

// Neg returns -x. Zero stays non-negative.
func (x Int) Neg() Int {
	if x.IsZero() {
		return Zero()
	}
	return Int{neg: !x.neg, digits: x.digits}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{digits: x.mag()}
}

// CmpAbs compares |x| and |y| and returns -1, 0, or 1.
func (x Int) CmpAbs(y Int) int {
	return cmpDigits(x.mag(), y.mag())
}

// Cmp compares x and y and returns -1, 0, or 1.
func (x Int) Cmp(y Int) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	cmp := cmpDigits(x.mag(), y.mag())
	if x.neg {
		return -cmp
	}
	return cmp
}

// Equal reports whether x and y hold the same value.
func (x Int) Equal(y Int) bool {
	return x.neg == y.neg && cmpDigits(x.mag(), y.mag()) == 0
}

// Int64 converts x to int64 if it fits.
func (x Int) Int64() (int64, bool) {
	digits := x.mag()
	// 19 digits always fit in uint64.
	if len(digits) > 19 {
		return 0, false
	}
	var mag uint64
	for i := len(digits) - 1; i >= 0; i-- {
		mag = mag*10 + uint64(digits[i])
	}
	if !x.neg {
		v, err := safecast.Conv[int64](mag)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	// Negative: allow magnitude up to 2^63.
	if mag == uint64(1)<<63 {
		return -1 << 63, true
	}
	v, err := safecast.Conv[int64](mag)
	if err != nil {
		return 0, false
	}
	return -v, true
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	xm, ym := x.mag(), y.mag()
	if x.neg == y.neg {
		return newInt(x.neg, addDigits(xm, ym))
	}
	switch cmpDigits(xm, ym) {
	case 0:
		return Zero()
	case 1:
		return newInt(x.neg, subDigits(xm, ym))
	default:
		return newInt(y.neg, subDigits(ym, xm))
	}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return newInt(x.neg != y.neg, mulDigits(x.mag(), y.mag()))
}

// QuoRem returns the truncated quotient x/y and the remainder x%y.
//
// The quotient is rounded toward zero and the remainder carries the sign of
// the dividend, so |r| < |y| and x == q*y + r.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	xm, ym := x.mag(), y.mag()
	if cmpDigits(xm, ym) < 0 {
		return Zero(), x, nil
	}
	qm, rm := quoRemDigits(xm, ym)
	return newInt(x.neg != y.neg, qm), newInt(x.neg, rm), nil
}

// Quo returns the quotient x/y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder x%y; it has the sign of x.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}
