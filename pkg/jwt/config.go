package jwt

// GenerateConfig is an immutable declarative policy applied by
// Manager.Generate. Unset optional fields are simply not applied —
// generation never fails because an option was omitted.
type GenerateConfig struct {
	// Issuer, when non-empty, is written to the "iss" claim.
	Issuer string

	// GenerateID, when true, writes a fresh random UUID to "jti",
	// overriding any caller-provided value.
	GenerateID bool

	// IncludeIssuedTime, when true, writes the current Unix second to
	// "iat", overriding any caller-provided value.
	IncludeIssuedTime bool

	// ValidDelaySeconds, when non-nil, writes now+*ValidDelaySeconds to
	// "nbf". Must be non-negative.
	ValidDelaySeconds *int64

	// ValidDurationSeconds, when non-nil, writes
	// now+delay+*ValidDurationSeconds to "exp", where delay defaults to
	// zero for this computation even if ValidDelaySeconds is unset. Must
	// be non-negative.
	ValidDurationSeconds *int64

	// Algorithm is the signing algorithm used to mint the token.
	// Defaults to HS256 when the zero value is passed to Generate.
	Algorithm Algorithm
}

// defaultGenerateConfig is applied when the caller passes a nil config
// to Generate.
func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Algorithm: HS256}
}

func (c GenerateConfig) resolved() GenerateConfig {
	if c.Algorithm.id == "" {
		c.Algorithm = HS256
	}
	return c
}
