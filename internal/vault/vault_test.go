package vault

import "testing"

func TestSHA256Hex_Deterministic(t *testing.T) {
	a := SHA256HexString("hello")
	b := SHA256HexString("hello")
	if a != b {
		t.Error("SHA256HexString should be deterministic")
	}
	if a == SHA256HexString("world") {
		t.Error("different inputs should hash differently")
	}
}

func TestSHA256Hex_KnownVector(t *testing.T) {
	got := SHA256HexString("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("SHA256HexString(\"\") = %s, want %s", got, want)
	}
}

func TestHMACSHA256Hex_Deterministic(t *testing.T) {
	a := HMACSHA256Hex("key", "message")
	b := HMACSHA256Hex("key", "message")
	if a != b {
		t.Error("HMACSHA256Hex should be deterministic for identical inputs")
	}
}

func TestHMACSHA256Hex_KeySensitive(t *testing.T) {
	a := HMACSHA256Hex("key1", "message")
	b := HMACSHA256Hex("key2", "message")
	if a == b {
		t.Error("different keys should produce different MACs")
	}
}

func TestMerkleRoot_Empty(t *testing.T) {
	got, err := MerkleRootSHA256Hex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != SHA256HexString("") {
		t.Errorf("empty leaf set should hash the empty string")
	}
}

func TestMerkleRoot_SingleLeaf(t *testing.T) {
	leaf := SHA256HexString("leaf")
	got, err := MerkleRootSHA256Hex([]string{leaf})
	if err != nil {
		t.Fatal(err)
	}
	if got != leaf {
		t.Errorf("single-leaf root should equal the leaf itself, got %s want %s", got, leaf)
	}
}

func TestMerkleRoot_OddCountDuplicatesLast(t *testing.T) {
	l1 := SHA256HexString("a")
	l2 := SHA256HexString("b")
	l3 := SHA256HexString("c")

	// three leaves -> pairs (l1,l2), (l3,l3) -> one more level.
	got, err := MerkleRootSHA256Hex([]string{l1, l2, l3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(got))
	}

	// Root must differ from a 4-leaf tree with a distinct fourth leaf.
	l4 := SHA256HexString("d")
	got2, err := MerkleRootSHA256Hex([]string{l1, l2, l3, l4})
	if err != nil {
		t.Fatal(err)
	}
	if got == got2 {
		t.Error("duplicate-last-leaf root should differ from a genuine 4-leaf tree")
	}
}

func TestMerkleRoot_InvalidHexLeaf(t *testing.T) {
	_, err := MerkleRootSHA256Hex([]string{"not-hex"})
	if err == nil {
		t.Error("expected error for non-hex leaf")
	}
}

func TestMerkleRoot_WrongLengthLeaf(t *testing.T) {
	_, err := MerkleRootSHA256Hex([]string{"ab"})
	if err == nil {
		t.Error("expected error for short leaf")
	}
}

func TestDICOMHashToken_Shape(t *testing.T) {
	tok := DICOMHashToken("salt", "value")
	if len(tok) != len("ANON_")+24 {
		t.Errorf("token length %d, want %d", len(tok), len("ANON_")+24)
	}
	if tok[:5] != "ANON_" {
		t.Errorf("token should start with ANON_, got %s", tok)
	}
	for _, c := range tok[5:] {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			t.Errorf("expected uppercase hex suffix, got char %q in %s", c, tok)
		}
	}
}

func TestDICOMHashUID_Shape(t *testing.T) {
	uid, err := DICOMHashUID("salt", "value")
	if err != nil {
		t.Fatal(err)
	}
	if uid[:5] != "2.25." {
		t.Errorf("UID should start with 2.25., got %s", uid)
	}
}

func TestDICOMHashUID_Deterministic(t *testing.T) {
	a, err1 := DICOMHashUID("salt", "value")
	b, err2 := DICOMHashUID("salt", "value")
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if a != b {
		t.Error("DICOMHashUID should be deterministic")
	}
}
