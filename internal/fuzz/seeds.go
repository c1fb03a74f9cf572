package fuzztests

import (
	"testing"
)

const (
	maxFuzzInput = 512 // longer operands only slow the division harness
)

var numberSeeds = []string{
	"0",
	"-0",
	"+7",
	"0000123",
	"-987654321098765432109876543210",
	"99999999999999999999",
	"1",
	"-1",
	"",
	"-",
	"12a",
	"１２３",
}

var exprSeeds = []string{
	"1 + 2",
	"-5 - -5",
	"123456789 * 987654321",
	"-7 / 2",
	"-7 % 2",
	"2 ^ 100",
	"2^10000",
	"25!",
	"gcd 84 36",
	"lcm(4, 6)",
	"prime 1000003",
	"НОД 12 18",
	"１２ × ３",
	"10 ÷ 0",
	"5 − 3",
	"fact -1",
	"1 +",
	"+ 1",
	"((",
}

func addNumberSeeds(f *testing.F) {
	for _, s := range numberSeeds {
		f.Add(s)
	}
}

func addPairSeeds(f *testing.F) {
	for i, a := range numberSeeds {
		b := numberSeeds[(i+3)%len(numberSeeds)]
		f.Add(a, b)
	}
}

func addExprSeeds(f *testing.F) {
	for _, s := range exprSeeds {
		f.Add(s)
	}
}

func clip(s string) string {
	if len(s) > maxFuzzInput {
		return s[:maxFuzzInput]
	}
	return s
}
