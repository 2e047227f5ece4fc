package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
)

// encodeSegment base64url-encodes a byte slice with padding stripped, per
// RFC 4648 §5. Used for the header, claims, and signature segments.
func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodeSegment base64url-decodes a string. It accepts missing padding
// (RawURLEncoding already expects none) but rejects any character outside
// the url-safe alphabet, including a literal "=", by returning a
// MalformedTokenError rather than a bare decode error.
func decodeSegment(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, newClaimError(KindMalformedToken, "", "invalid base64url segment", err)
	}
	return b, nil
}

// newHasher resolves a mac primitive name ("sha256", "sha384", "sha512")
// to its hash.Hash constructor.
func newHasher(macName string) (func() hash.Hash, error) {
	switch macName {
	case "sha256":
		return sha256.New, nil
	case "sha384":
		return sha512.New384, nil
	case "sha512":
		return sha512.New, nil
	default:
		return nil, newError(KindConfiguration, fmt.Sprintf("unsupported mac primitive %q", macName))
	}
}

// hmacSign computes a keyed MAC over message using the hash function
// named by macName. Keys shorter than the algorithm's minimum length (see
// algorithm.go) produce a ConfigurationError unless allowShortKey is set,
// in which case the MAC is still computed so that interop with short
// keys remains possible as an explicit opt-out, never a default path.
func hmacSign(macName string, key, message []byte, minKeyLen int, allowShortKey bool) ([]byte, error) {
	if !allowShortKey && len(key) < minKeyLen {
		return nil, newError(KindConfiguration, fmt.Sprintf("hmac key must be at least %d bytes for %s", minKeyLen, macName))
	}

	newH, err := newHasher(macName)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(newH, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// hmacEqual compares two MACs with hmac.Equal: constant time for
// operands of equal length; a length mismatch returns false at once.
func hmacEqual(a, b []byte) bool {
	return hmac.Equal(a, b)
}
