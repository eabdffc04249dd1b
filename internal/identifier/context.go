package identifier

import "strings"

// windowAround returns the lowercase substring of full within radius
// bytes of [start,end), clamped to the string's bounds. Used by
// context-required patterns (HEALTHPLAN, PASSPORT) and by the
// PHONE/FAX exclusion checks.
func windowAround(full string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(full) {
		hi = len(full)
	}
	return strings.ToLower(full[lo:hi])
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

var healthPlanKeywords = []string{"health plan", "beneficiary", "medicare", "medicaid", "hic"}
var passportKeywords = []string{"passport"}
var ssnPhoneKeywords = []string{"ssn", "social security", "phone", "tel:", "call "}
var npiKeyword = []string{"npi"}
var faxKeyword = []string{"fax"}

// personContextKeywords guards the CITY patterns against a name-bearing
// context that happens to parse as "Label: Capitalized Word" — e.g. a
// patient label immediately preceding what looks like a city token.
var personContextKeywords = []string{"patient", "dr.", "mr.", "mrs.", "ms.", "guardian", "next of kin"}
