// Package validate provides the domain-specific structural validators
// behind each identifier category: Luhn, VIN checksum shape, SSN
// masking tolerance, IPv4/IPv6 range checks, GPS bounds, DEA number
// shape, and the OCR-confusable digit/letter normalization shared by
// the identifier and name scanners.
package validate

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// ExtractDigits returns only the ASCII digit characters of s, in order.
// Idempotent: ExtractDigits(ExtractDigits(x)) == ExtractDigits(x).
func ExtractDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitLookalike maps an OCR-confusable letter to the digit it is
// commonly misrecognized as.
var digitLookalike = map[rune]rune{
	'O': '0', 'o': '0',
	'l': '1', 'I': '1', '|': '1',
	'B': '8',
	'S': '5', 's': '5',
	'Z': '2', 'z': '2',
	'G': '6',
	'g': '9', 'q': '9',
}

// letterLookalike is the inverse mapping, digit -> the most common
// OCR-confusable letter substitute, used when normalizing names.
var letterLookalike = map[rune]rune{
	'0': 'o',
	'1': 'l',
	'8': 'b',
	'5': 's',
	'2': 'z',
	'6': 'g',
	'9': 'g',
}

// NormalizeOCRDigits replaces OCR-confusable letters with their digit
// look-alikes. Idempotent on its own output (no digit maps to another
// digit).
func NormalizeOCRDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := digitLookalike[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeOCRLetters replaces digits with their OCR-confusable letter
// look-alikes — the inverse direction, used when anchoring name
// candidates that OCR has partly turned into digits.
func NormalizeOCRLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if l, ok := letterLookalike[r]; ok {
			b.WriteRune(l)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PassesLuhn reports whether the digit substring of s satisfies the
// Luhn checksum. Non-digit characters are ignored; fewer than two
// digits never passes.
func PassesLuhn(s string) bool {
	digits := ExtractDigits(s)
	if len(digits) < 2 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// AmexCompact reports whether digits is a 15-digit string with an Amex
// prefix (34 or 37) — the HIPAA-safe accept path for credit-card-shaped
// candidates that fail Luhn due to OCR corruption.
func AmexCompact(digits string) bool {
	return len(digits) == 15 && (strings.HasPrefix(digits, "34") || strings.HasPrefix(digits, "37"))
}

// knownTestCardPrefixes are well-known non-production test card BINs
// (Visa/Mastercard/Discover test numbers) accepted without a Luhn check.
var knownTestCardPrefixes = []string{"4111", "4012", "5555", "5105", "6011"}

// KnownTestCardPrefix reports whether digits begins with a published
// payment-network test card prefix.
func KnownTestCardPrefix(digits string) bool {
	for _, p := range knownTestCardPrefixes {
		if strings.HasPrefix(digits, p) {
			return true
		}
	}
	return false
}

// ValidCreditCard applies the full CREDIT_CARD acceptance rule: digit
// count in [13,19] AND (Luhn OR Amex-compact-15 OR known test prefix).
func ValidCreditCard(s string) bool {
	digits := ExtractDigits(s)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	return PassesLuhn(digits) || AmexCompact(digits) || KnownTestCardPrefix(digits)
}

// ValidSSNShape accepts a region containing 8-9 digits after OCR
// normalization, or a masked pattern with >=3 digits and >=2 mask
// characters drawn from {*, X, x}.
func ValidSSNShape(raw string) bool {
	normalized := NormalizeOCRDigits(raw)
	digits := ExtractDigits(normalized)
	if len(digits) == 8 || len(digits) == 9 {
		return true
	}
	maskCount := strings.Count(raw, "*") + strings.Count(raw, "X") + strings.Count(raw, "x")
	rawDigits := ExtractDigits(raw)
	return len(rawDigits) >= 3 && maskCount >= 2
}

// ValidVIN requires exactly 17 characters drawn from the VIN alphabet
// (no I, O, Q), at least one digit, and not all-identical characters.
func ValidVIN(s string) bool {
	if len(s) != 17 {
		return false
	}
	hasDigit := false
	allSame := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'A' && c <= 'Z':
			if c == 'I' || c == 'O' || c == 'Q' {
				return false
			}
		default:
			return false
		}
		if i > 0 && s[i] != s[0] {
			allSame = false
		}
	}
	return hasDigit && !allSame
}

// ValidDEANumber requires two letters then seven digits (OCR-equivalent
// digits permitted in the digit run), after uppercasing.
func ValidDEANumber(s string) bool {
	up := strings.ToUpper(s)
	normalized := NormalizeOCRDigits(up)
	if len(normalized) < 9 {
		return false
	}
	letters := normalized[:2]
	digits := normalized[2:9]
	for i := 0; i < 2; i++ {
		if letters[i] < 'A' || letters[i] > 'Z' {
			return false
		}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// ValidIPv4 requires four dotted octets, each <= 255.
func ValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// ValidIPv6 requires at most one "::" abbreviation, at most 8 groups,
// each group at most 4 hex digits.
func ValidIPv6(s string) bool {
	if strings.Count(s, "::") > 1 {
		return false
	}
	s = strings.Trim(s, ":")
	if s == "" {
		return false
	}
	groups := strings.Split(strings.ReplaceAll(s, "::", ":"), ":")
	if len(groups) == 0 || len(groups) > 8 {
		return false
	}
	for _, g := range groups {
		if g == "" {
			continue
		}
		if len(g) > 4 {
			return false
		}
		for _, c := range g {
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ValidGPS requires lat in [-90,90] and lon in [-180,180].
func ValidGPS(latStr, lonStr string) bool {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// ValidBitcoinAddress decodes a candidate base58check Bitcoin address
// and verifies its checksum, rejecting regex-shaped but structurally
// invalid matches (OCR noise, truncated strings).
func ValidBitcoinAddress(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 25 || len(s) > 62 {
		return false
	}
	_, _, err := base58.CheckDecode(s)
	return err == nil
}

// PhoneDigitCount returns the digit count of s, used by the PHONE
// acceptance rule (>=7 digits with no letters, >=10 alphanumerics with
// vanity letters present).
func PhoneDigitCount(s string) int {
	return len(ExtractDigits(s))
}

// HasLetters reports whether s contains any ASCII letter.
func HasLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
