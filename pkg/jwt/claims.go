package jwt

import "fmt"

// Codec is a bidirectional translator between an in-memory claim value
// and the JSON element used on the wire for one claim name. Encode
// receives whatever the caller passed in the claims map and must return
// something encoding/json can marshal directly (string, float64, bool,
// []any, map[string]any, or nil). Decode receives the generic value
// encoding/json produced when unmarshaling into interface{} (string,
// float64, bool, []any, map[string]any, or nil) and must return the
// in-memory value callers should see on the parsed Token.
type Codec struct {
	Encode func(value any) (any, error)
	Decode func(raw any) (any, error)
}

// Registry is the per-claim-name codec table. One codec may be
// registered per claim name; registration is expected to happen once,
// during setup, before the Registry is shared across concurrent readers
// by a Manager.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns a Registry pre-populated with the "aud" codec,
// which accepts either a JSON string or a JSON array of strings on read
// and always emits the array form on write, per the JWT StringOrURI/
// audience rules.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	// aud is pre-registered and cannot be overridden by callers; ignore
	// the error since we know the name is unused in a fresh registry.
	_ = r.Register("aud", audienceCodec())
	return r
}

// Register adds a codec under claim. It fails with a ConfigurationError
// (kind KindDuplicateRegistration) if claim is already registered.
func (r *Registry) Register(claim string, codec Codec) error {
	if _, exists := r.codecs[claim]; exists {
		return newClaimError(KindDuplicateRegistration, claim, "claim already has a registered codec", nil)
	}
	r.codecs[claim] = codec
	return nil
}

// clone returns a shallow copy of the registry's codec table, used so a
// Manager can hold its own snapshot independent of later mutation of the
// Registry the caller built it from.
func (r *Registry) clone() map[string]Codec {
	out := make(map[string]Codec, len(r.codecs))
	for k, v := range r.codecs {
		out[k] = v
	}
	return out
}

func audienceCodec() Codec {
	return Codec{
		Encode: func(value any) (any, error) {
			switch v := value.(type) {
			case []string:
				out := make([]any, len(v))
				for i, s := range v {
					out[i] = s
				}
				return out, nil
			case string:
				return []any{v}, nil
			case []any:
				return v, nil
			default:
				return nil, fmt.Errorf("aud must be a string or []string, got %T", value)
			}
		},
		Decode: func(raw any) (any, error) {
			switch v := raw.(type) {
			case string:
				return []string{v}, nil
			case []any:
				out := make([]string, len(v))
				for i, e := range v {
					s, ok := e.(string)
					if !ok {
						return nil, fmt.Errorf("aud array element %d is not a string", i)
					}
					out[i] = s
				}
				return out, nil
			case nil:
				return nil, fmt.Errorf("aud must not be null")
			default:
				return nil, fmt.Errorf("aud must be a string or array of strings, got %T", raw)
			}
		},
	}
}

// encodePrimitive renders a claim value with no registered codec to a
// JSON-marshalable element: strings, integral/floating numbers, and
// booleans pass through unchanged (strings are additionally subject to
// the StringOrURI rule by the caller). Any other runtime shape is
// rejected.
func encodePrimitive(claim string, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, newClaimError(KindInvalidClaimValue, claim, "string claim must not be null", nil)
	case string:
		return v, nil
	case bool:
		return v, nil
	case int:
		return v, nil
	case int32:
		return v, nil
	case int64:
		return v, nil
	case float32:
		return v, nil
	case float64:
		return v, nil
	default:
		return nil, newClaimError(KindUnsupportedClaimValue, claim, fmt.Sprintf("unsupported claim value type %T", value), nil)
	}
}

// decodePrimitive translates the generic JSON-decoded value for a claim
// with no registered codec back into an in-memory value. JSON numbers
// that are exact integers are normalized to int64 so that round-tripping
// an int64 claim (e.g. iat/nbf/exp) through generate/parse is stable.
func decodePrimitive(claim string, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case bool:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
		return v, nil
	case map[string]any, []any:
		return nil, newClaimError(KindMalformedToken, claim, fmt.Sprintf("unsupported claim json shape %T", raw), nil)
	default:
		return nil, newClaimError(KindMalformedToken, claim, fmt.Sprintf("unsupported claim json shape %T", raw), nil)
	}
}
