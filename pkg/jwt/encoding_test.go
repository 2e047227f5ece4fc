package jwt

import "testing"

func TestEncodeSegmentIsUnpadded(t *testing.T) {

	got := encodeSegment([]byte("a"))
	if got == "" {
		t.Fatalf("expected a non-empty segment")
	}
	for _, r := range got {
		if r == '=' {
			t.Fatalf("encoded segment must not contain padding, got %q", got)
		}
	}
}

func TestDecodeSegmentRejectsPadding(t *testing.T) {

	// "YQ==" is the padded base64 (not base64url) form of "a"
	if _, err := decodeSegment("YQ=="); err == nil {
		t.Errorf("expected a padded segment to be rejected")
	}
}

func TestDecodeSegmentRoundTrip(t *testing.T) {

	encoded := encodeSegment([]byte("hello world"))
	decoded, err := decodeSegment(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(decoded) != "hello world" {
		t.Errorf("expected round trip to preserve bytes, got %q", decoded)
	}
}

func TestHmacSignEnforcesMinKeyLength(t *testing.T) {

	_, err := hmacSign("sha256", []byte("short"), []byte("msg"), 32, false)
	if err == nil {
		t.Errorf("expected an error for a key shorter than the minimum length")
	}

	_, err = hmacSign("sha256", []byte("short"), []byte("msg"), 32, true)
	if err != nil {
		t.Errorf("expected allowShortKey=true to bypass the minimum length check, got %v", err)
	}
}

func TestHmacEqualConstantTime(t *testing.T) {

	a, _ := hmacSign("sha256", []byte("0123456789012345678901234567890123456789"), []byte("msg"), 32, false)
	b, _ := hmacSign("sha256", []byte("0123456789012345678901234567890123456789"), []byte("msg"), 32, false)

	if !hmacEqual(a, b) {
		t.Errorf("expected identical MACs to compare equal")
	}

	c, _ := hmacSign("sha256", []byte("0123456789012345678901234567890123456789"), []byte("other"), 32, false)
	if hmacEqual(a, c) {
		t.Errorf("expected different MACs to compare unequal")
	}
}
