package jwt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tdeslauriers/tales/internal/util"
)

// configuredClaimOrder is the fixed order in which configuration-added
// claims are written, regardless of the order their GenerateConfig
// fields happen to be set in.
var configuredClaimOrder = []string{"iss", "jti", "iat", "nbf", "exp"}

// Manager generates and parses compact JWS tokens using a shared claim
// Registry and a configurable signing algorithm. A single Manager is
// meant to be constructed once and shared across concurrent request
// handlers: all of its state after construction is immutable, and it
// retains no secret across calls.
type Manager struct {
	codecs         map[string]Codec
	allowShortKeys bool
	logger         *slog.Logger
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// AllowShortKeys disables the minimum-key-length check on the HMAC
// primitive, for interop with keys shorter than the algorithm's spec
// minimum. Off by default; this is an explicit opt-out, never the
// default path.
func AllowShortKeys(allow bool) Option {
	return func(m *Manager) { m.allowShortKeys = allow }
}

// NewManager builds a Manager from a Registry snapshot. Later mutation
// of registry via Register does not affect a Manager already
// constructed from it.
func NewManager(registry *Registry, opts ...Option) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	m := &Manager{
		codecs: registry.clone(),
		logger: slog.Default().With(slog.String(util.PackageKey, util.PackageJwt), slog.String(util.ComponentKey, util.ComponentJwtManager)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate mints a new Token from caller-provided headers and claims,
// applying cfg's declarative policy (issuer, jti, timing claims,
// algorithm). headers and claims are copied defensively; the caller's
// originals are never retained or mutated. Returns a Token with
// Verified() == true.
func (m *Manager) Generate(headers map[string]any, claims map[string]any, secret []byte, cfg *GenerateConfig) (*Token, error) {
	effective := defaultGenerateConfig()
	if cfg != nil {
		effective = cfg.resolved()
	}

	if !effective.Algorithm.isNone() && len(secret) == 0 {
		return nil, newError(KindConfiguration, fmt.Sprintf("secret is required to sign with %s", effective.Algorithm.ID()))
	}

	hdrCopy := cloneMap(headers)
	claimCopy := cloneMap(claims)

	// configured claims override caller-supplied values for the same name
	now := time.Now().Unix()
	configuredSet := map[string]bool{}

	if effective.Issuer != "" {
		claimCopy["iss"] = effective.Issuer
		configuredSet["iss"] = true
	}
	if effective.GenerateID {
		claimCopy["jti"] = uuid.NewString()
		configuredSet["jti"] = true
	}
	if effective.IncludeIssuedTime {
		claimCopy["iat"] = now
		configuredSet["iat"] = true
	}
	delay := int64(0)
	if effective.ValidDelaySeconds != nil {
		delay = *effective.ValidDelaySeconds
		claimCopy["nbf"] = now + delay
		configuredSet["nbf"] = true
	}
	if effective.ValidDurationSeconds != nil {
		claimCopy["exp"] = now + delay + *effective.ValidDurationSeconds
		configuredSet["exp"] = true
	}

	claimOrder := buildClaimOrder(claimCopy, configuredSet)

	encodedClaims := make(map[string]any, len(claimCopy))
	for _, name := range claimOrder {
		value := claimCopy[name]
		encoded, err := m.encodeClaim(name, value)
		if err != nil {
			return nil, err
		}
		encodedClaims[name] = encoded
	}

	hdrOrder := make([]string, 0, len(hdrCopy)+1)
	for k := range hdrCopy {
		if k != "alg" {
			hdrOrder = append(hdrOrder, k)
		}
	}
	sort.Strings(hdrOrder)
	hdrCopy["alg"] = effective.Algorithm.ID()
	hdrOrder = append(hdrOrder, "alg")

	headerJSON, err := marshalOrdered(hdrOrder, hdrCopy)
	if err != nil {
		return nil, newError(KindMalformedToken, "failed to render header: "+err.Error())
	}
	claimsJSON, err := marshalOrdered(claimOrder, encodedClaims)
	if err != nil {
		return nil, newError(KindMalformedToken, "failed to render claims: "+err.Error())
	}

	headerSeg := encodeSegment(headerJSON)
	claimsSeg := encodeSegment(claimsJSON)
	signingInput := headerSeg + "." + claimsSeg

	var serialized string
	if effective.Algorithm.isNone() {
		serialized = signingInput + "."
	} else {
		sig, err := hmacSign(effective.Algorithm.macName, secret, []byte(signingInput), effective.Algorithm.minKeyLen, m.allowShortKeys)
		if err != nil {
			return nil, err
		}
		serialized = signingInput + "." + encodeSegment(sig)
	}

	return &Token{
		headers:  hdrCopy,
		claims:   claimCopy,
		order:    claimOrder,
		hdrOrder: hdrOrder,
		raw:      serialized,
		verified: true,
	}, nil
}

// Parse splits, decodes, and structurally validates a compact JWS
// string. Structural defects (bad segment count, bad base64, bad json,
// an unsupported alg, an unsupported claim shape) return an error.
// Signature mismatch is never an error: it is reported as
// Token.Verified() == false. Expiration/not-before are not enforced
// here; that is a policy decision left to pkg/authz or the caller.
func (m *Manager) Parse(serialized string, secret []byte) (*Token, error) {
	segments := strings.Split(serialized, ".")
	if len(segments) < 2 {
		return nil, newError(KindMalformedToken, "token must have at least 2 segments")
	}

	headerJSON, err := decodeSegment(segments[0])
	if err != nil {
		return nil, err
	}
	hdrOrder, hdrRaw, err := parseOrderedObject(headerJSON)
	if err != nil {
		return nil, err
	}

	algVal, ok := hdrRaw["alg"]
	if !ok {
		return nil, newError(KindMalformedToken, "header is missing required member \"alg\"")
	}
	var algID string
	if err := json.Unmarshal(algVal, &algID); err != nil {
		return nil, newError(KindMalformedToken, "header \"alg\" must be a string")
	}
	alg, err := lookupAlgorithm(algID)
	if err != nil {
		return nil, err
	}

	if alg.isNone() {
		if !(len(segments) == 2 || (len(segments) == 3 && segments[2] == "")) {
			return nil, newError(KindMalformedToken, "none-algorithm token must have exactly 2 segments")
		}
	} else {
		if len(segments) != 3 {
			return nil, newError(KindMalformedToken, fmt.Sprintf("%s token must have exactly 3 segments", alg.ID()))
		}
	}

	claimsJSON, err := decodeSegment(segments[1])
	if err != nil {
		return nil, err
	}
	claimOrder, claimRaw, err := parseOrderedObject(claimsJSON)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]any, len(hdrRaw))
	for _, name := range hdrOrder {
		v, err := decodeGeneric(hdrRaw[name])
		if err != nil {
			return nil, err
		}
		headers[name] = v
	}

	claims := make(map[string]any, len(claimRaw))
	for _, name := range claimOrder {
		generic, err := decodeGeneric(claimRaw[name])
		if err != nil {
			return nil, err
		}
		decoded, err := m.decodeClaim(name, generic)
		if err != nil {
			return nil, err
		}
		claims[name] = decoded
	}

	verified := false
	if alg.isNone() {
		verified = len(secret) == 0
	} else {
		sig, err := decodeSegment(segments[2])
		if err != nil {
			return nil, err
		}
		signingInput := segments[0] + "." + segments[1]
		expected, macErr := hmacSign(alg.macName, secret, []byte(signingInput), alg.minKeyLen, m.allowShortKeys)
		if macErr != nil {
			return nil, macErr
		}
		verified = hmacEqual(expected, sig)
	}

	return &Token{
		headers:  headers,
		claims:   claims,
		order:    claimOrder,
		hdrOrder: hdrOrder,
		raw:      serialized,
		verified: verified,
	}, nil
}

func (m *Manager) encodeClaim(name string, value any) (any, error) {
	if codec, ok := m.codecs[name]; ok {
		encoded, err := codec.Encode(value)
		if err != nil {
			return nil, newClaimError(KindClaimEncoding, name, "codec failed to encode claim", err)
		}
		return encoded, nil
	}
	encoded, err := encodePrimitive(name, value)
	if err != nil {
		return nil, err
	}
	if s, ok := encoded.(string); ok {
		if err := validateStringOrURI(name, s); err != nil {
			return nil, err
		}
	}
	return encoded, nil
}

func (m *Manager) decodeClaim(name string, raw any) (any, error) {
	if codec, ok := m.codecs[name]; ok {
		decoded, err := codec.Decode(raw)
		if err != nil {
			return nil, newClaimError(KindClaimDecoding, name, "codec failed to decode claim", err)
		}
		return decoded, nil
	}
	return decodePrimitive(name, raw)
}

// buildClaimOrder places caller-supplied claim names (sorted, since Go's
// built-in map type carries no iteration order of its own) first,
// followed by configuration-added claims in the fixed order
// iss, jti, iat, nbf, exp.
func buildClaimOrder(claims map[string]any, configured map[string]bool) []string {
	callerNames := make([]string, 0, len(claims))
	for k := range claims {
		if !configured[k] {
			callerNames = append(callerNames, k)
		}
	}
	sort.Strings(callerNames)

	order := make([]string, 0, len(claims))
	order = append(order, callerNames...)
	for _, name := range configuredClaimOrder {
		if configured[name] {
			order = append(order, name)
		}
	}
	return order
}
