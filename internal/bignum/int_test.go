package bignum

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestInt_ZeroValue(t *testing.T) {
	var x Int
	if got := x.String(); got != "0" {
		t.Fatalf("Int{}.String() = %q, want %q", got, "0")
	}
	if !x.IsZero() || x.IsNeg() || x.Sign() != 0 || x.Len() != 1 {
		t.Fatalf("Int{} is not canonical zero: zero=%v neg=%v sign=%d len=%d", x.IsZero(), x.IsNeg(), x.Sign(), x.Len())
	}
	if !x.Equal(Zero()) {
		t.Fatalf("Int{}.Equal(Zero()) = false, want true")
	}
	if got := x.Add(FromInt64(5)).String(); got != "5" {
		t.Fatalf("Int{} + 5 = %q, want 5", got)
	}
}

func TestFromInt64(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-7, "-7"},
		{10, "10"},
		{1234567890, "1234567890"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}
	for _, tc := range cases {
		if got := FromInt64(tc.in).String(); got != tc.want {
			t.Fatalf("FromInt64(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FromUint64(math.MaxUint64).String(); got != "18446744073709551615" {
		t.Fatalf("FromUint64(MaxUint64) = %q", got)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"+0", "0"},
		{"-000", "0"},
		{"000123", "123"},
		{"+42", "42"},
		{"-0042", "-42"},
		{"100", "100"},
		{"12345678901234567890123", "12345678901234567890123"},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if x := MustParse("-0"); x.IsNeg() {
		t.Fatalf("Parse(\"-0\") produced negative zero")
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{"", "-", "+", "12a", " 1", "1 ", "--1", "+-1", "1.0", "1_000", "0x10", "١٢", "∞"}
	for _, in := range inputs {
		got, err := Parse(in)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("Parse(%q) error = %v, want ErrParse", in, err)
		}
		if !got.Equal(Int{}) {
			t.Fatalf("Parse(%q) returned partial value %q", in, got)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{"0", "1", "-1", "9", "10", "-10", "999999999999999999999", "-100000000000000000000000000001"}
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		s := randDigits(r, 1+r.IntN(60))
		if r.IntN(2) == 0 && s != "0" {
			s = "-" + s
		}
		inputs = append(inputs, s)
	}
	for _, in := range inputs {
		if got := MustParse(in).String(); got != in {
			t.Fatalf("String(Parse(%q)) = %q", in, got)
		}
	}
}

func TestInt_Cmp(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"1", "0", 1},
		{"-1", "0", -1},
		{"-1", "1", -1},
		{"10", "9", 1},
		{"-10", "-9", -1},
		{"123", "124", -1},
		{"-123", "-124", 1},
		{"1000000000000000000000", "999999999999999999999", 1},
		{"42", "42", 0},
		{"-42", "-42", 0},
	}
	for _, tc := range cases {
		a, b := MustParse(tc.a), MustParse(tc.b)
		if got := a.Cmp(b); got != tc.want {
			t.Fatalf("Cmp(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := b.Cmp(a); got != -tc.want {
			t.Fatalf("Cmp(%s, %s) = %d, want %d", tc.b, tc.a, got, -tc.want)
		}
		if got := a.Equal(b); got != (tc.want == 0) {
			t.Fatalf("Equal(%s, %s) = %v", tc.a, tc.b, got)
		}
	}
	if got := MustParse("-50").CmpAbs(MustParse("49")); got != 1 {
		t.Fatalf("CmpAbs(-50, 49) = %d, want 1", got)
	}
}

func TestInt_Int64(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"-15", -15, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"9223372036854775808", 0, false},
		{"-9223372036854775808", math.MinInt64, true},
		{"-9223372036854775809", 0, false},
		{"18446744073709551615", 0, false},
		{"100000000000000000000", 0, false},
	}
	for _, tc := range cases {
		got, ok := MustParse(tc.in).Int64()
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Int64(%s) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInt_NegAbs(t *testing.T) {
	if got := Zero().Neg(); got.IsNeg() || !got.IsZero() {
		t.Fatalf("-0 = %q (neg=%v), want non-negative zero", got, got.IsNeg())
	}
	if got := FromInt64(5).Neg().String(); got != "-5" {
		t.Fatalf("-(5) = %q", got)
	}
	if got := FromInt64(-5).Neg().String(); got != "5" {
		t.Fatalf("-(-5) = %q", got)
	}
	if got := FromInt64(-5).Abs().String(); got != "5" {
		t.Fatalf("|-5| = %q", got)
	}
}

func TestInt_AddSub(t *testing.T) {
	cases := []struct {
		a, b, sum, diff string
	}{
		{"0", "0", "0", "0"},
		{"1", "-1", "0", "2"},
		{"-1", "1", "0", "-2"},
		{"999", "1", "1000", "998"},
		{"1", "999", "1000", "-998"},
		{"-999", "-1", "-1000", "-998"},
		{"1000", "-1", "999", "1001"},
		{"-1000", "1", "-999", "-1001"},
		{"123456789123456789", "987654321987654321", "1111111111111111110", "-864197532864197532"},
		{"100000000000000000000", "-99999999999999999999", "1", "199999999999999999999"},
	}
	for _, tc := range cases {
		a, b := MustParse(tc.a), MustParse(tc.b)
		if got := a.Add(b).String(); got != tc.sum {
			t.Fatalf("%s + %s = %q, want %q", tc.a, tc.b, got, tc.sum)
		}
		if got := a.Sub(b).String(); got != tc.diff {
			t.Fatalf("%s - %s = %q, want %q", tc.a, tc.b, got, tc.diff)
		}
	}
}

func TestInt_Mul(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{"0", "0", "0"},
		{"0", "-5", "0"},
		{"-5", "0", "0"},
		{"-3", "4", "-12"},
		{"-3", "-4", "12"},
		{"99", "99", "9801"},
		{"12345678901234567890", "98765432109876543210", "1219326311370217952237463801111263526900"},
	}
	for _, tc := range cases {
		got := MustParse(tc.a).Mul(MustParse(tc.b))
		if got.String() != tc.want {
			t.Fatalf("%s * %s = %q, want %q", tc.a, tc.b, got, tc.want)
		}
		if got.IsZero() && got.IsNeg() {
			t.Fatalf("%s * %s produced negative zero", tc.a, tc.b)
		}
	}
}

func TestInt_ArithmeticMatchesMathBig(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 300 {
		as, bs := randSigned(r, 40), randSigned(r, 40)
		a, b := MustParse(as), MustParse(bs)
		ba, bb := bigOf(t, as), bigOf(t, bs)

		if got, want := a.Add(b).String(), new(big.Int).Add(ba, bb).String(); got != want {
			t.Fatalf("%s + %s = %s, want %s", as, bs, got, want)
		}
		if got, want := a.Sub(b).String(), new(big.Int).Sub(ba, bb).String(); got != want {
			t.Fatalf("%s - %s = %s, want %s", as, bs, got, want)
		}
		if got, want := a.Mul(b).String(), new(big.Int).Mul(ba, bb).String(); got != want {
			t.Fatalf("%s * %s = %s, want %s", as, bs, got, want)
		}
		if got, want := a.Cmp(b), ba.Cmp(bb); got != want {
			t.Fatalf("Cmp(%s, %s) = %d, want %d", as, bs, got, want)
		}
	}
}

func TestInt_AlgebraicProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for range 200 {
		a, b := MustParse(randSigned(r, 30)), MustParse(randSigned(r, 30))
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("a+b != b+a for a=%s b=%s", a, b)
		}
		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatalf("a*b != b*a for a=%s b=%s", a, b)
		}
		if sum := a.Add(a.Neg()); !sum.IsZero() || sum.IsNeg() {
			t.Fatalf("a + (-a) = %q for a=%s", sum, a)
		}
	}
}

func TestInt_OperandsUnchanged(t *testing.T) {
	a, b := MustParse("-98765432109876543210"), MustParse("1234567")
	before := a.String() + "/" + b.String()
	_ = a.Add(b)
	_ = a.Sub(b)
	_ = a.Mul(b)
	_, _, _ = a.QuoRem(b)
	_ = GCD(a, b)
	_ = LCM(a, b)
	if after := a.String() + "/" + b.String(); after != before {
		t.Fatalf("operands mutated: before %s, after %s", before, after)
	}
}

func TestInt_Format(t *testing.T) {
	cases := []struct {
		format string
		in     string
		want   string
	}{
		{"%d", "-12", "-12"},
		{"%s", "12", "12"},
		{"%v", "0", "0"},
		{"%q", "-12", `"-12"`},
		{"%+d", "5", "+5"},
		{"% d", "5", " 5"},
		{"%5d", "-12", "  -12"},
		{"%05d", "-12", "-0012"},
		{"%-5d|", "-12", "-12  |"},
		{"%x", "12", "%!x(bignum.Int=12)"},
	}
	for _, tc := range cases {
		if got := fmt.Sprintf(tc.format, MustParse(tc.in)); got != tc.want {
			t.Fatalf("Sprintf(%q, %s) = %q, want %q", tc.format, tc.in, got, tc.want)
		}
	}
}

func TestInt_TextMarshaling(t *testing.T) {
	type payload struct {
		Value Int `json:"value"`
	}
	data, err := json.Marshal(payload{Value: MustParse("-1267650600228229401496703205376")})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if want := `{"value":"-1267650600228229401496703205376"}`; string(data) != want {
		t.Fatalf("json.Marshal = %s, want %s", data, want)
	}
	var back payload
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if back.Value.String() != "-1267650600228229401496703205376" {
		t.Fatalf("round trip = %s", back.Value)
	}
	if err := json.Unmarshal([]byte(`{"value":"12x"}`), &back); !errors.Is(err, ErrParse) {
		t.Fatalf("json.Unmarshal invalid error = %v, want ErrParse", err)
	}
}

func randDigits(r *rand.Rand, n int) string {
	var b strings.Builder
	b.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + r.IntN(10)))
	}
	return b.String()
}

// randSigned returns a canonical signed decimal of up to maxLen digits;
// roughly one in ten values is zero.
func randSigned(r *rand.Rand, maxLen int) string {
	if r.IntN(10) == 0 {
		return "0"
	}
	s := randDigits(r, 1+r.IntN(maxLen))
	if r.IntN(2) == 0 {
		return "-" + s
	}
	return s
}

func bigOf(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("big.Int.SetString(%q) failed", s)
	}
	return v
}
