// Package commit implements the move commitment scheme. A commitment is a
// hex-encoded SHA-256 digest over the canonical 24-byte reveal encoding:
// the move value and both nonces, each as a little-endian 64-bit integer.
// Keeping the scheme in one place lets the digest primitive change without
// touching match logic.
package commit

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Size is the length of a hex-encoded commitment.
const Size = sha256.Size * 2

// Normalize lowercases a client-supplied commitment and reports whether it
// is a well-formed hex digest of the expected length.
func Normalize(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Size {
		return "", false
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", false
	}
	return s, true
}

// Digest computes the commitment for a reveal.
func Digest(move, nonce1, nonce2 uint64) string {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], move)
	binary.LittleEndian.PutUint64(buf[8:], nonce1)
	binary.LittleEndian.PutUint64(buf[16:], nonce2)
	sum := sha256.Sum256(buf[:])
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the stored commitment matches the digest of the
// revealed values. Commitments are stored lowercase; callers normalize
// client input before storing.
func Verify(commitment string, move, nonce1, nonce2 uint64) bool {
	return commitment == Digest(move, nonce1, nonce2)
}
