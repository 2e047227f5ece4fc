package capability

import "fmt"

// ClaimCodec renders a Set as a JSON array of capability name strings,
// in family order, and parses that same shape back into a Set. It has
// the same shape as pkg/jwt's Codec.Encode/Decode function fields, so it
// wires directly into a jwt.Registry without pkg/capability importing
// pkg/jwt:
//
//	codec := capability.NewClaimCodec(opsFamily)
//	registry.Register("ops_caps", jwt.Codec{Encode: codec.Encode, Decode: codec.Decode})
type ClaimCodec struct {
	family *Family
}

// NewClaimCodec returns a ClaimCodec bound to family.
func NewClaimCodec(family *Family) ClaimCodec {
	return ClaimCodec{family: family}
}

// Encode renders a *Set (or []string of capability names) as a JSON
// array of capability name strings in family order.
func (c ClaimCodec) Encode(value any) (any, error) {
	var set *Set
	switch v := value.(type) {
	case *Set:
		set = v
	case []string:
		s, err := Of(c.family, v...)
		if err != nil {
			return nil, err
		}
		set = s
	default:
		return nil, fmt.Errorf("capability claim must be a *capability.Set or []string, got %T", value)
	}

	names := set.Capabilities()
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out, nil
}

// Decode parses a JSON array of capability name strings into a *Set.
// Reading a capability name not present in the family returns an
// UnknownCapabilityError.
func (c ClaimCodec) Decode(raw any) (any, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("capability claim must be a json array of strings, got %T", raw)
	}
	names := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("capability claim array element %d is not a string", i)
		}
		names[i] = s
	}
	return Of(c.family, names...)
}
