// Package vault provides the hashing, Merkle-root, and anonymized-token
// utilities exposed as a secondary surface for building replacement
// strings: SHA-256, HMAC-SHA-256, a duplicate-last-leaf Merkle root over
// 32-byte hex leaves, and DICOM-style ANON_/UID token constructors. Key
// and message buffers are zeroized after use.
package vault

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// zeroize overwrites b with zero bytes in place. Go's garbage collector
// can still retain copies made by string<->[]byte conversions upstream
// of the caller; this only guarantees the specific buffer passed in no
// longer carries the sensitive bytes once this call returns.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SHA256HexString returns the hex-encoded SHA-256 digest of text.
func SHA256HexString(text string) string {
	return SHA256Hex([]byte(text))
}

// HMACSHA256Hex returns the hex-encoded HMAC-SHA-256 of message under
// key. key and message are zeroized before returning.
func HMACSHA256Hex(key, message string) string {
	keyBytes := []byte(key)
	msgBytes := []byte(message)
	defer zeroize(keyBytes)
	defer zeroize(msgBytes)

	mac := hmac.New(sha256.New, keyBytes)
	mac.Write(msgBytes)
	return hex.EncodeToString(mac.Sum(nil))
}

// ErrInvalidLeaf is returned by MerkleRootSHA256Hex when a leaf hash is
// not valid 32-byte hex.
type ErrInvalidLeaf struct {
	Index int
	Cause error
}

func (e *ErrInvalidLeaf) Error() string {
	return fmt.Sprintf("invalid leaf hash at index %d: %v", e.Index, e.Cause)
}

// MerkleRootSHA256Hex computes the SHA-256 Merkle root over a list of
// 32-byte hex leaf hashes. An odd level duplicates its last leaf before
// pairing. An empty leaf list returns the hash of the empty string.
func MerkleRootSHA256Hex(leafHashesHex []string) (string, error) {
	if len(leafHashesHex) == 0 {
		return SHA256HexString(""), nil
	}

	level := make([][32]byte, 0, len(leafHashesHex))
	for i, h := range leafHashesHex {
		decoded, err := hex.DecodeString(strings.TrimSpace(h))
		if err != nil {
			return "", &ErrInvalidLeaf{Index: i, Cause: err}
		}
		if len(decoded) != 32 {
			return "", &ErrInvalidLeaf{Index: i, Cause: fmt.Errorf("expected 32 bytes, got %d", len(decoded))}
		}
		var arr [32]byte
		copy(arr[:], decoded)
		level = append(level, arr)
	}

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			pair := make([]byte, 0, 64)
			pair = append(pair, left[:]...)
			pair = append(pair, right[:]...)
			next = append(next, sha256.Sum256(pair))
		}
		level = next
	}

	return hex.EncodeToString(level[0][:]), nil
}

// DICOMHashToken returns an "ANON_<24-hex-uppercase>" token derived from
// HMAC-SHA-256(salt, value).
func DICOMHashToken(salt, value string) string {
	h := HMACSHA256Hex(salt, value)
	return "ANON_" + strings.ToUpper(h[:24])
}

// DICOMHashUID returns a "2.25.<u128>" DICOM-style UID derived from the
// first 32 hex characters of HMAC-SHA-256(salt, value), interpreted as a
// 128-bit unsigned integer in decimal.
func DICOMHashUID(salt, value string) (string, error) {
	h := HMACSHA256Hex(salt, value)
	slice := h[:32]
	n, ok := new(big.Int).SetString(slice, 16)
	if !ok {
		return "", fmt.Errorf("invalid UID hash (hex->u128): %q", slice)
	}
	return "2.25." + n.String(), nil
}
