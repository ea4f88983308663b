package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is returned when a rule string cannot be parsed.
var ErrInvalidRule = errors.New("invalid rule")

// Rule is a life-like transition rule indexed by the live neighbor count.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is B3/S23.
var Conway = MustParseRule("B3/S23")

// ParseRule parses rules written as "B3/S23". Either part may be empty
// ("B2/S"), and the order of the two parts does not matter.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("%w %q: want B<digits>/S<digits>", ErrInvalidRule, s)
	}
	seen := map[byte]bool{}
	for _, part := range parts {
		if part == "" {
			return r, fmt.Errorf("%w %q: empty part", ErrInvalidRule, s)
		}
		kind := part[0]
		if seen[kind] {
			return r, fmt.Errorf("%w %q: duplicate %c", ErrInvalidRule, s, kind)
		}
		seen[kind] = true
		var dst *[9]bool
		switch kind {
		case 'B':
			dst = &r.Birth
		case 'S':
			dst = &r.Survive
		default:
			return r, fmt.Errorf("%w %q: unknown part %q", ErrInvalidRule, s, part)
		}
		for _, ch := range part[1:] {
			if ch < '0' || ch > '8' {
				return r, fmt.Errorf("%w %q: bad count %q", ErrInvalidRule, s, ch)
			}
			dst[ch-'0'] = true
		}
	}
	return r, nil
}

// MustParseRule is ParseRule for package-level rule literals.
func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Next returns the state of a cell given its current state and live neighbor count.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive[neighbors]
	}
	return r.Birth[neighbors]
}

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i, on := range r.Birth {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i, on := range r.Survive {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}
