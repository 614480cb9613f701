package cpf

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFormat is matched by every *FormatError.
var ErrInvalidFormat = errors.New("cpf: invalid format")

// FormatError reports input that does not have the grouped CPF shape.
type FormatError struct {
	Input    string
	Trailing string // set when only strict mode rejected the input
}

func (e *FormatError) Error() string {
	if e.Trailing != "" {
		return fmt.Sprintf("cpf: unexpected trailing characters %q in %q", e.Trailing, e.Input)
	}
	return fmt.Sprintf("cpf: malformed input %q", e.Input)
}

func (e *FormatError) Is(target error) bool { return target == ErrInvalidFormat }

// cpfPattern matches DDD[ .]DDD[ .]DDD[ -]VV at the start of the input, where
// each D or V is a digit or a placeholder.
var cpfPattern = regexp.MustCompile(`^([0-9_ ]{3})[ .]?([0-9_ ]{3})[ .]?([0-9_ ]{3})[ \-]?([0-9_ ]{2})`)

// Unformat parses raw into its canonical form. Characters after a valid match
// are ignored: "111.444.777-35xyz" parses as "11144477735".
func Unformat(raw string) (Canonical, error) {
	c, _, err := unformat(raw)
	return c, err
}

// UnformatStrict is Unformat but rejects anything after the match.
func UnformatStrict(raw string) (Canonical, error) {
	c, end, err := unformat(raw)
	if err != nil {
		return "", err
	}
	if end != len(raw) {
		return "", &FormatError{Input: raw, Trailing: raw[end:]}
	}
	return c, nil
}

func unformat(raw string) (Canonical, int, error) {
	m := cpfPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return "", 0, &FormatError{Input: raw}
	}
	b := make([]byte, 0, Length)
	for g := 1; g <= 4; g++ {
		b = append(b, raw[m[2*g]:m[2*g+1]]...)
	}
	return Canonical(b), m[1], nil
}
