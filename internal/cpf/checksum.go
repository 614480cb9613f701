package cpf

import "errors"

// ErrBodyNotKnown is returned when a body passed to ComputeCheckDigits is not
// exactly nine decimal digits.
var ErrBodyNotKnown = errors.New("cpf: body must be nine known digits")

// CheckDigitPair holds the two computed check digits as ASCII characters.
type CheckDigitPair [2]byte

func (p CheckDigitPair) String() string { return string(p[:]) }

// ComputeCheckDigits returns the check digits of a fully-known nine-digit body.
func ComputeCheckDigits(body string) (CheckDigitPair, error) {
	if len(body) != BodyLength {
		return CheckDigitPair{}, ErrBodyNotKnown
	}
	var d [BodyLength]byte
	for i := 0; i < BodyLength; i++ {
		if !isDigit(body[i]) {
			return CheckDigitPair{}, ErrBodyNotKnown
		}
		d[i] = body[i] - '0'
	}
	return checkDigits(&d), nil
}

// checkDigits works on digit values 0-9 and assumes d is fully known.
func checkDigits(d *[BodyLength]byte) CheckDigitPair {
	var s1, s2 int
	for i, v := range d {
		s1 += int(v) * (10 - i)
		s2 += int(v) * (11 - i)
	}
	first := ((s1 * 10) % 11) % 10
	s2 += first * 2
	second := ((s2 * 10) % 11) % 10
	return CheckDigitPair{byte('0' + first), byte('0' + second)}
}

// Matches reports whether the given check-digit characters agree with the
// computed pair. A placeholder matches any digit.
func Matches(given [2]byte, computed CheckDigitPair) bool {
	for i := range given {
		if !IsPlaceholder(given[i]) && given[i] != computed[i] {
			return false
		}
	}
	return true
}
