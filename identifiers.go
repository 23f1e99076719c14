package gofirds

import (
	"errors"
	"fmt"
)

// Sentinel errors for identifier validation. Wrapped errors carry the detail.
var (
	ErrBadISIN = errors.New("bad ISIN")
	ErrBadLEI  = errors.New("bad LEI")
)

// ISIN is an International Securities Identification Number (ISO 6166): a
// two-letter country code, a nine-character instrument identifier and a check
// digit.
type ISIN string

// CountryCode returns the first two characters.
func (i ISIN) CountryCode() string {
	if len(i) < 2 {
		return ""
	}
	return string(i[:2])
}

// InstrumentIdentifier returns characters three to eleven.
func (i ISIN) InstrumentIdentifier() string {
	if len(i) < 11 {
		return ""
	}
	return string(i[2:11])
}

// CheckDigit returns the final digit, or -1 when it is not a digit.
func (i ISIN) CheckDigit() int {
	if len(i) != 12 {
		return -1
	}
	c := i[11]
	if c < '0' || c > '9' {
		return -1
	}
	return int(c - '0')
}

// VerifyChecksum reports whether the check digit is consistent with the rest
// of the code. Letters are expanded to two digits (A=10 .. Z=35) and a
// Luhn-style mod-10 sum is taken over the result.
func (i ISIN) VerifyChecksum() bool {
	if len(i) != 12 {
		return false
	}
	var digits []int
	for k := 0; k < 11; k++ {
		c := i[k]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, int(c-'0'))
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			digits = append(digits, v/10, v%10)
		case c >= 'a' && c <= 'z':
			v := int(c-'a') + 10
			digits = append(digits, v/10, v%10)
		default:
			return false
		}
	}
	// Double every other digit starting from the rightmost, summing the
	// digits of each product.
	sum := 0
	double := true
	for k := len(digits) - 1; k >= 0; k-- {
		d := digits[k]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10-sum%10)%10 == i.CheckDigit()
}

// Validate performs structural checks on the ISIN (length, character classes,
// checksum). It does not check that the code has actually been issued.
func (i ISIN) Validate() error {
	if n := len(i); n != 12 {
		return fmt.Errorf("%w: must be of length 12, not %d", ErrBadISIN, n)
	}
	if !isAlpha(string(i[:2])) {
		return fmt.Errorf("%w: country code must be letters, not %q", ErrBadISIN, i.CountryCode())
	}
	if !isAlnum(string(i[2:11])) {
		return fmt.Errorf("%w: instrument identifier must be alphanumeric, not %q", ErrBadISIN, i.InstrumentIdentifier())
	}
	if i.CheckDigit() < 0 {
		return fmt.Errorf("%w: check digit must be a number", ErrBadISIN)
	}
	if !i.VerifyChecksum() {
		return fmt.Errorf("%w: checksum validation failed", ErrBadISIN)
	}
	return nil
}

// LEI is a Legal Entity Identifier (ISO 17442): a four-character LOU prefix,
// a fourteen-character entity identifier and two check digits.
type LEI string

// LOUIdentifier returns the first four characters, which identify the local
// operating unit that issued the LEI.
func (l LEI) LOUIdentifier() string {
	if len(l) < 4 {
		return ""
	}
	return string(l[:4])
}

// EntityIdentifier returns characters five to eighteen.
func (l LEI) EntityIdentifier() string {
	if len(l) < 18 {
		return ""
	}
	return string(l[4:18])
}

// CheckDigits returns the final two characters.
func (l LEI) CheckDigits() string {
	if len(l) != 20 {
		return ""
	}
	return string(l[18:])
}

// VerifyChecksum reports whether the LEI's check digits are valid: the code
// with letters replaced by their base-36 values, read as a decimal integer,
// must be congruent to 1 modulo 97.
func (l LEI) VerifyChecksum() bool {
	if len(l) != 20 {
		return false
	}
	rem := 0
	for _, c := range l {
		var part int
		switch {
		case c >= '0' && c <= '9':
			part = int(c - '0')
		case c >= 'A' && c <= 'Z':
			part = int(c-'A') + 10
		case c >= 'a' && c <= 'z':
			part = int(c-'a') + 10
		default:
			return false
		}
		if part >= 10 {
			rem = (rem*100 + part) % 97
		} else {
			rem = (rem*10 + part) % 97
		}
	}
	return rem == 1
}

// Validate performs structural checks on the LEI (length, character classes,
// checksum). It does not check that the code has actually been issued.
func (l LEI) Validate() error {
	if n := len(l); n != 20 {
		return fmt.Errorf("%w: must be of length 20, not %d", ErrBadLEI, n)
	}
	if !isAlnum(l.LOUIdentifier()) {
		return fmt.Errorf("%w: LOU identifier must be alphanumeric, not %q", ErrBadLEI, l.LOUIdentifier())
	}
	if !isAlnum(l.EntityIdentifier()) {
		return fmt.Errorf("%w: entity identifier must be alphanumeric, not %q", ErrBadLEI, l.EntityIdentifier())
	}
	if !isDigits(l.CheckDigits()) {
		return fmt.Errorf("%w: check digits must be numbers, not %q", ErrBadLEI, l.CheckDigits())
	}
	if !l.VerifyChecksum() {
		return fmt.Errorf("%w: checksum validation failed", ErrBadLEI)
	}
	return nil
}

func isAlpha(s string) bool {
	for _, c := range s {
		if !('A' <= c && c <= 'Z' || 'a' <= c && c <= 'z') {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func isAlnum(s string) bool {
	for _, c := range s {
		if !('A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return s != ""
}
