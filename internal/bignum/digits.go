package bignum

// Magnitude helpers. Every function here takes canonical little-endian digit
// slices, treats them as read-only and returns a freshly allocated result.

func trimDigits(digits []uint8) []uint8 {
	for len(digits) > 1 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}
	if len(digits) == 0 {
		return zeroDigits
	}
	return digits
}

func isZeroDigits(digits []uint8) bool {
	return len(digits) == 1 && digits[0] == 0
}

func cmpDigits(a, b []uint8) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addDigits(a, b []uint8) []uint8 {
	n := max(len(a), len(b))
	out := make([]uint8, n+1)
	var carry uint8
	for i := range n + 1 {
		sum := carry
		if i < len(a) {
			sum += a[i]
		}
		if i < len(b) {
			sum += b[i]
		}
		out[i] = sum % 10
		carry = sum / 10
	}
	return trimDigits(out)
}

// subDigits returns a - b. It requires |a| >= |b|.
func subDigits(a, b []uint8) []uint8 {
	out := make([]uint8, len(a))
	borrow := 0
	for i := range a {
		v := int(a[i]) - borrow
		if i < len(b) {
			v -= int(b[i])
		}
		if v < 0 {
			v += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint8(v) //nolint:gosec // G115: v is in [0, 9].
	}
	return trimDigits(out)
}

func mulDigits(a, b []uint8) []uint8 {
	out := make([]uint8, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		var carry uint
		for j, bj := range b {
			cur := uint(out[i+j]) + uint(ai)*uint(bj) + carry
			out[i+j] = uint8(cur % 10) //nolint:gosec // G115: decimal digit.
			carry = cur / 10
		}
		for k := i + len(b); carry != 0; k++ {
			cur := uint(out[k]) + carry
			out[k] = uint8(cur % 10) //nolint:gosec // G115: decimal digit.
			carry = cur / 10
		}
	}
	return trimDigits(out)
}

// quoRemDigits performs schoolbook long division of magnitudes. b must be non-zero.
func quoRemDigits(a, b []uint8) (q, r []uint8) {
	if cmpDigits(a, b) < 0 {
		return zeroDigits, a
	}
	q = make([]uint8, len(a))
	r = zeroDigits
	for i := len(a) - 1; i >= 0; i-- {
		r = shiftInDigit(r, a[i])
		d := quotientDigit(b, r)
		q[i] = d
		if d != 0 {
			r = subDigits(r, mulDigits(b, []uint8{d}))
		}
	}
	return trimDigits(q), r
}

// shiftInDigit returns r*10 + d.
func shiftInDigit(r []uint8, d uint8) []uint8 {
	out := make([]uint8, len(r)+1)
	out[0] = d
	copy(out[1:], r)
	return trimDigits(out)
}

// quotientDigit returns the largest d in 0..9 with b*d <= r.
func quotientDigit(b, r []uint8) uint8 {
	lo, hi := uint8(0), uint8(9)
	var d uint8
	for lo <= hi {
		mid := (lo + hi) / 2
		if cmpDigits(mulDigits(b, []uint8{mid}), r) <= 0 {
			d = mid
			lo = mid + 1
		} else {
			if mid == 0 {
				break
			}
			hi = mid - 1
		}
	}
	return d
}
