package validate

import "testing"

func TestExtractDigits(t *testing.T) {
	if got := ExtractDigits("123-45-6789"); got != "123456789" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDigits_Idempotent(t *testing.T) {
	s := "abc123-45x6789"
	once := ExtractDigits(s)
	twice := ExtractDigits(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeOCRDigits_Idempotent(t *testing.T) {
	s := "I23-45-6789"
	once := NormalizeOCRDigits(s)
	twice := NormalizeOCRDigits(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
	if once != "123-45-6789" {
		t.Errorf("got %q, want 123-45-6789", once)
	}
}

func TestPassesLuhn(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"4532015112830366", true},  // valid Visa test number
		{"4532015112830367", false}, // off by one
		{"", false},
		{"1", false},
	}
	for _, c := range cases {
		if got := PassesLuhn(c.in); got != c.want {
			t.Errorf("PassesLuhn(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidCreditCard_AmexPrefix(t *testing.T) {
	// 370000000000002 — 15 digits, Amex prefix 37, passes Luhn too.
	if !ValidCreditCard("370000000000002") {
		t.Error("expected Amex-prefixed candidate to validate")
	}
}

func TestValidCreditCard_WrongLength(t *testing.T) {
	if ValidCreditCard("12345") {
		t.Error("5 digits should never validate as a credit card")
	}
}

func TestValidSSNShape_NineDigits(t *testing.T) {
	if !ValidSSNShape("123-45-6789") {
		t.Error("9-digit SSN shape should validate")
	}
}

func TestValidSSNShape_OCRNoise(t *testing.T) {
	if !ValidSSNShape("I23-45-6789") {
		t.Error("OCR-corrupted SSN (I for 1) should still validate")
	}
}

func TestValidSSNShape_Masked(t *testing.T) {
	if !ValidSSNShape("XXX-XX-6789") {
		t.Error("masked SSN with >=3 digits and >=2 mask chars should validate")
	}
}

func TestValidSSNShape_Rejects(t *testing.T) {
	if ValidSSNShape("12-3") {
		t.Error("too few digits, no mask, should not validate")
	}
}

func TestValidVIN(t *testing.T) {
	if !ValidVIN("1HGCM82633A004352") {
		t.Error("expected valid VIN shape")
	}
	if ValidVIN("1HGCM82633A00435") { // 16 chars
		t.Error("wrong length should fail")
	}
	if ValidVIN("IHGCM82633A004352") { // contains I
		t.Error("VIN containing I should fail")
	}
	if ValidVIN("11111111111111111") { // all identical
		t.Error("all-identical VIN should fail")
	}
}

func TestValidDEANumber(t *testing.T) {
	if !ValidDEANumber("AB1234563") {
		t.Error("expected valid DEA shape")
	}
	if ValidDEANumber("A1234563") {
		t.Error("only one letter should fail")
	}
}

func TestValidIPv4(t *testing.T) {
	if !ValidIPv4("192.168.1.1") {
		t.Error("expected valid IPv4")
	}
	if ValidIPv4("256.1.1.1") {
		t.Error("octet > 255 should fail")
	}
	if ValidIPv4("1.2.3") {
		t.Error("too few octets should fail")
	}
}

func TestValidIPv6(t *testing.T) {
	if !ValidIPv6("2001:db8::1") {
		t.Error("expected valid IPv6 with abbreviation")
	}
	if ValidIPv6("2001::db8::1") {
		t.Error("two :: abbreviations should fail")
	}
	if ValidIPv6("2001:db8:85a3:0000:0000:8a2e:0370:7334:extra") {
		t.Error("too many groups should fail")
	}
}

func TestValidGPS(t *testing.T) {
	if !ValidGPS("37.7749", "-122.4194") {
		t.Error("expected valid San Francisco coordinates")
	}
	if ValidGPS("91", "0") {
		t.Error("latitude > 90 should fail")
	}
	if ValidGPS("0", "181") {
		t.Error("longitude > 180 should fail")
	}
}

func TestValidBitcoinAddress(t *testing.T) {
	// Well-known genesis block address.
	if !ValidBitcoinAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa") {
		t.Error("expected genesis address to validate")
	}
	if ValidBitcoinAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb") {
		t.Error("corrupted checksum should fail")
	}
}

func TestPhoneDigitCount(t *testing.T) {
	if got := PhoneDigitCount("(555) 123-4567"); got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestHasLetters(t *testing.T) {
	if !HasLetters("1-800-FLOWERS") {
		t.Error("expected letters detected")
	}
	if HasLetters("123-456-7890") {
		t.Error("should not detect letters in pure digits")
	}
}
