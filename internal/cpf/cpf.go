// Package cpf validates and completes Brazilian CPF numbers.
//
// A CPF is eleven digits: a nine-digit body followed by two check digits
// derived from it. Unknown digits are written as "_" or " " and the solver
// either confirms the number, fills in the check digits, or enumerates every
// body that is consistent with what is known.
//
//	111.444.777-35   fully known, checked
//	111.444.777-__   check digits computed
//	1234567__35      two body holes, 100 candidates searched
package cpf

import "strings"

const (
	// Length is the number of characters in a canonical CPF.
	Length = 11
	// BodyLength is the number of body digits preceding the check digits.
	BodyLength = 9
)

// IsPlaceholder reports whether c stands for an unknown digit.
func IsPlaceholder(c byte) bool {
	return c == '_' || c == ' '
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Canonical is an 11-character CPF with separators stripped. Every character
// is an ASCII digit or a placeholder.
type Canonical string

// Body returns the first nine characters.
func (c Canonical) Body() string { return string(c[:BodyLength]) }

// Verifiers returns the two given check-digit characters, placeholders included.
func (c Canonical) Verifiers() [2]byte {
	return [2]byte{c[BodyLength], c[BodyLength+1]}
}

// Holes returns the placeholder positions of c.
func (c Canonical) Holes() HoleSet {
	var h HoleSet
	for i := 0; i < len(c); i++ {
		if !IsPlaceholder(c[i]) {
			continue
		}
		if i < BodyLength {
			h.Body = append(h.Body, i)
		} else {
			h.Verifier = append(h.Verifier, i)
		}
	}
	return h
}

// HoleSet lists placeholder positions, split at the body boundary.
type HoleSet struct {
	Body     []int // indices < 9, ascending
	Verifier []int // indices 9 and 10, ascending
}

// Total is the number of placeholders in the CPF.
func (h HoleSet) Total() int { return len(h.Body) + len(h.Verifier) }

// isRepeated reports whether body is a single digit repeated, the sequences
// that are never issued as real CPFs.
func isRepeated(body string) bool {
	return strings.Count(body, body[:1]) == len(body)
}
