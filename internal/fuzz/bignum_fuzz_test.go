package fuzztests

import (
	"errors"
	"math/big"
	"testing"

	"github.com/kpgusev/calculator/internal/bignum"
)

func FuzzParseRoundTrip(f *testing.F) {
	addNumberSeeds(f)
	f.Fuzz(func(t *testing.T, s string) {
		s = clip(s)
		x, err := bignum.Parse(s)
		if err != nil {
			if !errors.Is(err, bignum.ErrParse) {
				t.Fatalf("Parse(%q) returned unclassified error %v", s, err)
			}
			return
		}
		canon := x.String()
		y, err := bignum.Parse(canon)
		if err != nil {
			t.Fatalf("canonical form %q of %q does not parse: %v", canon, s, err)
		}
		if !x.Equal(y) || y.String() != canon {
			t.Fatalf("round trip %q -> %q -> %q", s, canon, y.String())
		}
		want, ok := new(big.Int).SetString(s, 10)
		if ok && want.String() != canon {
			t.Fatalf("Parse(%q) = %s, math/big says %s", s, canon, want)
		}
	})
}

func FuzzArithmeticMatchesMathBig(f *testing.F) {
	addPairSeeds(f)
	f.Fuzz(func(t *testing.T, as, bs string) {
		a, err := bignum.Parse(clip(as))
		if err != nil {
			return
		}
		b, err := bignum.Parse(clip(bs))
		if err != nil {
			return
		}
		ba, _ := new(big.Int).SetString(a.String(), 10)
		bb, _ := new(big.Int).SetString(b.String(), 10)

		check := func(op string, got bignum.Int, want *big.Int) {
			if got.String() != want.String() {
				t.Fatalf("%s %s %s = %s, want %s", a, op, b, got, want)
			}
		}
		check("+", a.Add(b), new(big.Int).Add(ba, bb))
		check("-", a.Sub(b), new(big.Int).Sub(ba, bb))
		check("*", a.Mul(b), new(big.Int).Mul(ba, bb))

		q, r, err := a.QuoRem(b)
		if b.IsZero() {
			if !errors.Is(err, bignum.ErrDivisionByZero) {
				t.Fatalf("%s / 0: err = %v", a, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("%s / %s: %v", a, b, err)
		}
		wq, wr := new(big.Int).QuoRem(ba, bb, new(big.Int))
		check("/", q, wq)
		check("%", r, wr)
		// remainder carries the dividend's sign and stays below the divisor
		if !r.IsZero() && r.IsNeg() != a.IsNeg() {
			t.Fatalf("%s %% %s = %s has the wrong sign", a, b, r)
		}
		if r.CmpAbs(b) >= 0 {
			t.Fatalf("|%s %% %s| = |%s| not below the divisor", a, b, r)
		}
	})
}
