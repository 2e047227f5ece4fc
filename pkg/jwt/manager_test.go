package jwt

import (
	"strings"
	"testing"
)

var secret = []byte("super-duper-secret-key-thats-at-least-32-bytes")

func TestGenerateAndParseRoundTrip(t *testing.T) {

	m := NewManager(NewRegistry())

	claims := map[string]any{
		"sub":   "joe",
		"admin": true,
	}

	tok, err := m.Generate(nil, claims, secret, &GenerateConfig{Algorithm: HS256})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !tok.Verified() {
		t.Fatalf("freshly generated token should be verified")
	}

	parsed, err := m.Parse(tok.Serialized(), secret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Verified() {
		t.Fatalf("expected verified token, signature should match")
	}

	got := parsed.Claims()
	if got["sub"] != "joe" {
		t.Errorf("expected sub=joe, got %v", got["sub"])
	}
	if got["admin"] != true {
		t.Errorf("expected admin=true, got %v", got["admin"])
	}
}

func TestBase64urlIsUnpadded(t *testing.T) {

	m := NewManager(NewRegistry())

	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, secret, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if strings.Contains(tok.Serialized(), "=") {
		t.Errorf("serialized token must not contain padding, got %q", tok.Serialized())
	}

	segments := strings.Split(tok.Serialized(), ".")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	// a padded segment should be rejected on parse
	padded := segments[0] + "=." + segments[1] + "." + segments[2]
	if _, err := m.Parse(padded, secret); err == nil {
		t.Errorf("expected parse to reject a padded segment")
	}
}

func TestSignatureTamperingNeverErrors(t *testing.T) {

	m := NewManager(NewRegistry())

	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, secret, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	segments := strings.Split(tok.Serialized(), ".")
	tampered := segments[0] + "." + segments[1] + "x" + "." + segments[2]

	parsed, err := m.Parse(tampered, secret)
	if err != nil {
		t.Fatalf("tampering should not produce a structural error, got: %v", err)
	}
	if parsed.Verified() {
		t.Errorf("tampered claims segment should not verify")
	}
}

func TestAlgNoneSubstitutionIsUnverifiedWithSecret(t *testing.T) {

	m := NewManager(NewRegistry())

	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, secret, &GenerateConfig{Algorithm: HS256})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	segments := strings.Split(tok.Serialized(), ".")
	headerNone := encodeSegment([]byte(`{"alg":"none"}`))
	forged := headerNone + "." + segments[1] + "."

	parsed, err := m.Parse(forged, secret)
	if err != nil {
		t.Fatalf("expected structural parse to succeed, got: %v", err)
	}
	if parsed.Verified() {
		t.Errorf("alg=none token parsed with a non-empty secret must never verify")
	}
}

func TestAlgNoneWithEmptySecretVerifies(t *testing.T) {

	m := NewManager(NewRegistry())

	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, nil, &GenerateConfig{Algorithm: None})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	parsed, err := m.Parse(tok.Serialized(), nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Verified() {
		t.Errorf("alg=none token parsed with no secret should verify")
	}
}

func TestDeterministicGeneration(t *testing.T) {

	m := NewManager(NewRegistry())
	claims := map[string]any{"sub": "joe", "aud": "shaw"}
	cfg := &GenerateConfig{Algorithm: HS256}

	a, err := m.Generate(nil, claims, secret, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := m.Generate(nil, claims, secret, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if a.Serialized() != b.Serialized() {
		t.Errorf("expected identical inputs to produce identical serialized tokens:\n%s\n%s", a.Serialized(), b.Serialized())
	}
}

func TestMalformedSegmentCount(t *testing.T) {

	m := NewManager(NewRegistry())

	if _, err := m.Parse("abc.def", secret); err == nil {
		t.Errorf("expected malformed token error for invalid json body")
	}

	tok, _ := m.Generate(nil, map[string]any{"sub": "joe"}, secret, nil)
	fourSegments := tok.Serialized() + ".extra"
	if _, err := m.Parse(fourSegments, secret); err == nil {
		t.Errorf("expected malformed token error for a 4-segment token")
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {

	m := NewManager(NewRegistry())

	header := encodeSegment([]byte(`{"alg":"RS256"}`))
	claims := encodeSegment([]byte(`{"sub":"joe"}`))
	token := header + "." + claims + ".sig"

	_, err := m.Parse(token, secret)
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != KindUnsupportedAlgorithm {
		t.Fatalf("expected UnsupportedAlgorithmError, got %v", err)
	}
}

func TestConfigurationErrorOnMissingSecret(t *testing.T) {

	m := NewManager(NewRegistry())

	_, err := m.Generate(nil, map[string]any{"sub": "joe"}, nil, &GenerateConfig{Algorithm: HS256})
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != KindConfiguration {
		t.Fatalf("expected ConfigurationError for missing secret, got %v", err)
	}
}

func TestAudPolymorphism(t *testing.T) {

	m := NewManager(NewRegistry())

	arr, err := m.Generate(nil, map[string]any{"aud": []string{"a", "b"}}, secret, &GenerateConfig{Algorithm: HS256})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(arr.Serialized(), "aud") {
		t.Fatalf("expected serialized token to contain aud claim")
	}

	single, err := m.Generate(nil, map[string]any{"aud": "a"}, secret, &GenerateConfig{Algorithm: HS256})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	parsed, err := m.Parse(single.Serialized(), secret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got, ok := parsed.Claim("aud")
	if !ok {
		t.Fatalf("expected aud claim to be present")
	}
	audSlice, ok := got.([]string)
	if !ok || len(audSlice) != 1 || audSlice[0] != "a" {
		t.Errorf("expected aud to decode to []string{\"a\"}, got %#v", got)
	}
}

func TestGenerateConfigClaims(t *testing.T) {

	m := NewManager(NewRegistry())

	delay := int64(0)
	duration := int64(10)
	cfg := &GenerateConfig{
		Algorithm:            HS256,
		Issuer:               "https://example.com",
		GenerateID:           true,
		IncludeIssuedTime:    true,
		ValidDelaySeconds:    &delay,
		ValidDurationSeconds: &duration,
	}

	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, secret, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims := tok.Claims()
	if claims["iss"] != "https://example.com" {
		t.Errorf("expected iss to be set from config, got %v", claims["iss"])
	}
	if _, ok := claims["jti"].(string); !ok {
		t.Errorf("expected jti to be a generated string, got %v", claims["jti"])
	}
	iat, ok := claims["iat"].(int64)
	if !ok {
		t.Fatalf("expected iat to be int64, got %T", claims["iat"])
	}
	exp, ok := claims["exp"].(int64)
	if !ok {
		t.Fatalf("expected exp to be int64, got %T", claims["exp"])
	}
	if exp != iat+10 {
		t.Errorf("expected exp = iat + 10, got iat=%d exp=%d", iat, exp)
	}
}

func TestStringOrURIRule(t *testing.T) {

	m := NewManager(NewRegistry())

	if _, err := m.Generate(nil, map[string]any{"iss": "foo:bar"}, secret, &GenerateConfig{Algorithm: HS256}); err == nil {
		t.Errorf("expected InvalidClaimValueError for a non-URI string containing ':'")
	}

	if _, err := m.Generate(nil, map[string]any{"iss": "https://example.com"}, secret, &GenerateConfig{Algorithm: HS256}); err != nil {
		t.Errorf("expected a valid absolute URI to be accepted, got %v", err)
	}

	if _, err := m.Generate(nil, map[string]any{"nickname": "a:b"}, secret, &GenerateConfig{Algorithm: HS256}); err == nil {
		t.Errorf("expected the StringOrURI rule to apply to application claims too")
	}
}

func TestShortKeyIsConfigurationError(t *testing.T) {

	m := NewManager(NewRegistry())

	shortKey := []byte("too-short")
	_, err := m.Generate(nil, map[string]any{"sub": "joe"}, shortKey, &GenerateConfig{Algorithm: HS256})
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != KindConfiguration {
		t.Fatalf("expected ConfigurationError for short key, got %v", err)
	}
}

func TestAllowShortKeysOption(t *testing.T) {

	m := NewManager(NewRegistry(), AllowShortKeys(true))

	shortKey := []byte("too-short")
	tok, err := m.Generate(nil, map[string]any{"sub": "joe"}, shortKey, &GenerateConfig{Algorithm: HS256})
	if err != nil {
		t.Fatalf("expected short key to be allowed as an explicit opt-out, got %v", err)
	}

	parsed, err := m.Parse(tok.Serialized(), shortKey)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Verified() {
		t.Errorf("expected token to verify with the same short key")
	}
}
