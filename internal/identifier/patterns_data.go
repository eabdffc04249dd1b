package identifier

import (
	"strconv"
	"strings"

	"phi-redactor/internal/span"
	"phi-redactor/internal/validate"
)

const ocrDigitClass = `0-9OoIlSsBZGgq`

func buildPatterns() []pattern {
	var p []pattern

	// SSN (100)
	ssnValidate := func(c *candidate) (bool, float64) {
		return validate.ValidSSNShape(c.text), 0.95
	}
	p = append(p,
		pattern{span.SSN, "ssn_bare", mustCompile(`\b[` + ocrDigitClass + `*Xx]{3}[-. ]?[` + ocrDigitClass + `*Xx]{2}[-. ]?[` + ocrDigitClass + `*Xx]{4}\b`), 0.95, ssnValidate, true, 0},
		pattern{span.SSN, "ssn_labeled", mustCompile(`(?i)\bSSN[:\s#-]*([` + ocrDigitClass + `*Xx]{3}[-. ]?[` + ocrDigitClass + `*Xx]{2}[-. ]?[` + ocrDigitClass + `*Xx]{4})\b`), 0.96, ssnValidate, true, 1},
	)

	// MRN (95)
	p = append(p,
		pattern{span.MRN, "mrn_labeled", mustCompile(`(?i)\bMRN[:\s#-]*([A-Za-z0-9-]{5,12})\b`), 0.90, always(0.90), true, 1},
	)

	// CREDIT_CARD (90)
	ccValidate := func(c *candidate) (bool, float64) {
		return validate.ValidCreditCard(c.text), 0.92
	}
	p = append(p,
		pattern{span.CreditCard, "credit_card", mustCompile(`\b(?:\d[ -]?){13,19}\b`), 0.92, ccValidate, true, 0},
	)

	// ACCOUNT / LICENSE / PASSPORT / IBAN / HEALTH_PLAN (85)
	p = append(p,
		pattern{span.Account, "account_labeled", mustCompile(`(?i)\bAccount(?:\s+(?:Number|No\.?|#))?[:\s#-]*([A-Za-z0-9-]{6,17})\b`), 0.88, always(0.88), true, 1},
		pattern{span.License, "license_labeled", mustCompile(`(?i)\bLicense(?:\s+(?:Number|No\.?|#))?[:\s#-]*([A-Za-z0-9-]{5,15})\b`), 0.86, always(0.86), true, 1},
		pattern{span.IBAN, "iban", mustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`), 0.88, always(0.88), true, 0},
		pattern{span.License, "dea_number", mustCompile(`(?i)\bDEA[:\s#-]*([A-Za-z]{2}[`+ocrDigitClass+`]{7})\b`), 0.90, func(c *candidate) (bool, float64) {
			return validate.ValidDEANumber(c.text), 0.90
		}, true, 1},
	)
	p = append(p,
		pattern{span.Passport, "passport_labeled", mustCompile(`(?i)\bPassport(?:\s+(?:Number|No\.?|#))?[:\s#-]*([A-Z]{1,2}\d{6,9})\b`), 0.90, always(0.90), true, 1},
		pattern{span.Passport, "passport_bare", mustCompile(`\b[A-Z]{1,2}\d{6,9}\b`), 0.80, func(c *candidate) (bool, float64) {
			near := windowAround(c.fullText, c.byteStart, c.byteEnd, 100)
			if !containsAny(near, passportKeywords) {
				return false, 0
			}
			close := windowAround(c.fullText, c.byteStart, c.byteEnd, 50)
			if containsAny(close, ssnPhoneKeywords) {
				return false, 0
			}
			return true, 0.80
		}, true, 0},
	)
	p = append(p,
		pattern{span.HealthPlan, "health_plan_labeled", mustCompile(`(?i)\b(?:Health\s*Plan|Beneficiary|HIC)(?:\s+(?:Number|No\.?|#))?[:\s#-]*([A-Za-z0-9-]{6,15})\b`), 0.88, always(0.88), true, 1},
		pattern{span.HealthPlan, "health_plan_contextual", mustCompile(`\b[A-Z0-9]{8,12}\b`), 0.72, func(c *candidate) (bool, float64) {
			near := windowAround(c.fullText, c.byteStart, c.byteEnd, 100)
			if !containsAny(near, healthPlanKeywords) {
				return false, 0
			}
			return true, 0.72
		}, true, 0},
	)

	// EMAIL (80)
	p = append(p,
		pattern{span.Email, "email", mustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), 0.95, always(0.95), true, 0},
	)

	// PHONE / FAX / IP / URL / MAC_ADDRESS / BITCOIN (75)
	p = append(p,
		pattern{span.Phone, "phone", mustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`), 0.85, func(c *candidate) (bool, float64) {
			before := windowAround(c.fullText, c.byteStart, c.byteEnd, 20)
			if containsAny(before, npiKeyword) {
				return false, 0
			}
			if validate.PhoneDigitCount(c.text) < 7 {
				return false, 0
			}
			return true, 0.85
		}, true, 0},
		pattern{span.Fax, "fax", mustCompile(`(?i)\bfax[^\d]{0,20}(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`), 0.88, func(c *candidate) (bool, float64) {
			if !containsAny(strings.ToLower(c.text), faxKeyword) {
				return false, 0
			}
			d := validate.PhoneDigitCount(c.text)
			return d == 10 || d == 11, 0.88
		}, true, 0},
		pattern{span.IP, "ipv4", mustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), 0.90, func(c *candidate) (bool, float64) {
			return validate.ValidIPv4(c.text), 0.90
		}, true, 0},
		pattern{span.URL, "url", mustCompile(`\bhttps?://[^\s<>"]+\b`), 0.92, always(0.92), true, 0},
		pattern{span.MACAddress, "mac_address", mustCompile(`\b(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}\b`), 0.93, always(0.93), true, 0},
		pattern{span.Bitcoin, "bitcoin", mustCompile(`\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`), 0.85, func(c *candidate) (bool, float64) {
			return validate.ValidBitcoinAddress(c.text), 0.85
		}, true, 0},
	)

	// VEHICLE / DEVICE / BIOMETRIC (70) — VEHICLE subsumes VIN, plate,
	// GPS, IPv6, workstation ID.
	p = append(p,
		pattern{span.Vehicle, "vin", mustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`), 0.90, func(c *candidate) (bool, float64) {
			return validate.ValidVIN(c.text), 0.90
		}, true, 0},
		pattern{span.Vehicle, "ipv6", mustCompile(`\b(?:[0-9A-Fa-f]{0,4}:){2,7}[0-9A-Fa-f]{0,4}\b`), 0.85, func(c *candidate) (bool, float64) {
			return validate.ValidIPv6(c.text), 0.85
		}, true, 0},
		pattern{span.Vehicle, "gps", mustCompile(`-?\d{1,3}\.\d{3,8},\s*-?\d{1,3}\.\d{3,8}`), 0.88, func(c *candidate) (bool, float64) {
			parts := strings.SplitN(c.text, ",", 2)
			if len(parts) != 2 {
				return false, 0
			}
			return validate.ValidGPS(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])), 0.88
		}, true, 0},
		pattern{span.Vehicle, "plate", mustCompile(`(?i)\b(?:license\s+plate|plate\s*#?|tag)[:\s#-]*([A-Z0-9]{5,8})\b`), 0.80, always(0.80), true, 1},
		pattern{span.Vehicle, "workstation_id", mustCompile(`(?i)\bworkstation(?:\s+id)?[:\s#-]*([A-Za-z0-9-]{3,20})\b`), 0.75, always(0.75), true, 1},
		pattern{span.Device, "device_labeled", mustCompile(`(?i)\b(?:Device|Serial)(?:\s+(?:Number|No\.?|#))?[:\s#-]*([A-Za-z0-9-]{6,20})\b`), 0.80, always(0.80), true, 1},
		pattern{span.Biometric, "biometric_labeled", mustCompile(`(?i)\b(?:Fingerprint|Retina|Iris|Biometric)\s*ID[:\s#-]*([A-Za-z0-9-]{4,20})\b`), 0.80, always(0.80), true, 1},
	)

	// DATE (60) — six sub-forms.
	p = append(p,
		pattern{span.Date, "date_dob_labeled", mustCompile(`(?i)\bDOB[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`), 0.95, always(0.95), true, 1},
		pattern{span.Date, "date_us_numeric", mustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`), 0.85, always(0.85), true, 0},
		pattern{span.Date, "date_iso", mustCompile(`\b\d{4}-\d{2}-\d{2}\b`), 0.88, always(0.88), true, 0},
		pattern{span.Date, "date_month_name", mustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`), 0.90, always(0.90), true, 0},
		pattern{span.Date, "date_military", mustCompile(`\b\d{2}[A-Za-z]{3}\d{2,4}\b`), 0.78, always(0.78), true, 0},
		pattern{span.Date, "date_contextual_year", mustCompile(`(?i)\bin\s+(?:19|20)\d{2}\b`), 0.70, always(0.70), true, 0},
	)

	// ZIPCODE (55)
	p = append(p,
		pattern{span.Zipcode, "zipcode", mustCompile(`\b\d{5}(?:-\d{4})?\b`), 0.75, always(0.75), true, 0},
	)

	// ADDRESS (50)
	p = append(p,
		pattern{span.Address, "address_us_street", mustCompile(`\b\d{1,6}\s+[A-Za-z0-9.]+(?:\s+[A-Za-z0-9.]+){0,4}\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\.?\b`), 0.85, always(0.85), true, 0},
		pattern{span.Address, "address_po_box", mustCompile(`(?i)\bP\.?\s*O\.?\s*Box\s+\d+\b`), 0.90, always(0.90), true, 0},
		pattern{span.Address, "address_highway", mustCompile(`(?i)\b(?:Highway|Hwy)\s+\d+[A-Za-z]?\b`), 0.78, always(0.78), true, 0},
		pattern{span.Address, "address_ca", mustCompile(`\b[A-Za-z0-9 .]{3,30}\s+(?:Rue|Chemin|Avenue)\s+[A-Za-z0-9 .]{0,30}\b`), 0.70, always(0.70), true, 0},
		pattern{span.Address, "address_uk", mustCompile(`\b\d{1,4}\s+[A-Za-z .]+\s+(?:Close|Crescent|Gardens|Mews)\b`), 0.70, always(0.70), true, 0},
		pattern{span.Address, "address_au", mustCompile(`\b\d{1,4}\s+[A-Za-z .]+\s+(?:Parade|Esplanade)\b`), 0.70, always(0.70), true, 0},
	)

	// CITY/STATE/COUNTY (45)
	cityGuard := func(conf float64) validateFunc {
		return func(c *candidate) (bool, float64) {
			near := windowAround(c.fullText, c.byteStart, c.byteEnd, 30)
			if containsAny(near, personContextKeywords) {
				return false, 0
			}
			return true, conf
		}
	}
	p = append(p,
		pattern{span.County, "county", mustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)?\s+County\b`), 0.80, always(0.80), true, 0},
		pattern{span.State, "state_abbrev_zip", mustCompile(`\b[A-Z]{2}\s+\d{5}\b`), 0.75, always(0.75), true, 0},
		pattern{span.City, "city_after_facility", mustCompile(`(?i)\b(?:Hospital|Clinic|Medical\s+Center|Health\s+Center)\b,?\s+(?:located\s+in\s+|in\s+)?([A-Z][a-zA-Z]{2,20})\b`), 0.72, cityGuard(0.72), true, 1},
		pattern{span.City, "city_labeled", mustCompile(`(?i)\bCity[:\s]*([A-Z][a-zA-Z .'-]{1,30})\b`), 0.75, cityGuard(0.75), true, 1},
	)

	// AGE (40) — HIPAA Safe Harbor: only ages >= 90 are in scope.
	ageValidator := func(c *candidate) (bool, float64) {
		n := onlyDigits(c.text)
		age, err := strconv.Atoi(n)
		if err != nil || age < 90 || age > 125 {
			return false, 0
		}
		return true, 0.88
	}
	p = append(p,
		pattern{span.Age, "age_labeled", mustCompile(`(?i)\bAge[:\s]*(\d{2,3})\b`), 0.90, ageValidator, true, 1},
		pattern{span.Age, "age_compound", mustCompile(`\b(\d{2,3})[- ]year[- ]old\b`), 0.88, ageValidator, true, 1},
		pattern{span.Age, "age_ordinal", mustCompile(`(?i)\bin (?:her|his|their) (?:90s|100s|110s|120s)\b`), 0.75, always(0.75), true, 0},
		pattern{span.Age, "age_demographic", mustCompile(`\b(9[0-9]|1[0-2][0-9])\s?[MF]\b`), 0.78, ageValidator, true, 1},
		pattern{span.Age, "age_range", mustCompile(`\b(9[0-9]|1[0-2][0-9])-(9[0-9]|1[0-2][0-9])\b`), 0.70, func(c *candidate) (bool, float64) {
			parts := strings.SplitN(c.text, "-", 2)
			if len(parts) != 2 {
				return false, 0
			}
			lo, err1 := strconv.Atoi(parts[0])
			hi, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil || lo < 90 || hi > 125 {
				return false, 0
			}
			return true, 0.70
		}, true, 0},
	)

	// RELATIVE_DATE (40)
	p = append(p,
		pattern{span.RelativeDate, "relative_date", mustCompile(`(?i)\b(?:yesterday|last (?:week|month|year)|next (?:week|month|year)|\d+ (?:days?|weeks?|months?|years?) ago)\b`), 0.75, always(0.75), true, 0},
	)

	// OCCUPATION (30)
	p = append(p,
		pattern{span.Occupation, "occupation_labeled", mustCompile(`(?i)\bworks? as an? ([a-z][a-z ]{2,30})\b`), 0.70, always(0.70), true, 1},
	)

	return p
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
