package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// marshalOrdered renders a compact JSON object whose members appear in
// exactly the order given, rather than the alphabetical order
// encoding/json.Marshal would otherwise impose on a map. Manager.Generate's
// output is byte-for-byte reproducible because the order it passes is
// fixed: header names sorted with alg last, and claims in the order
// buildClaimOrder picks (caller claims sorted by name, then configured
// claims).
func marshalOrdered(order []string, values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range order {
		v, ok := values[key]
		if !ok {
			continue
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal member name %q: %w", key, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal member %q: %w", key, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// parseOrderedObject decodes a JSON object, returning its member names in
// wire order alongside each member's still-undecoded raw JSON. Callers
// translate each raw value with a claim/header-specific decoder.
func parseOrderedObject(data []byte) (order []string, raw map[string]json.RawMessage, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, newError(KindMalformedToken, "invalid json object: "+err.Error())
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, newError(KindMalformedToken, "expected a json object")
	}

	raw = make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, newError(KindMalformedToken, "invalid json object member name: "+err.Error())
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, newError(KindMalformedToken, "json object member name must be a string")
		}

		var member json.RawMessage
		if err := dec.Decode(&member); err != nil {
			return nil, nil, newError(KindMalformedToken, "invalid json object member value: "+err.Error())
		}

		if _, dup := raw[key]; !dup {
			order = append(order, key)
		}
		raw[key] = member
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, newError(KindMalformedToken, "invalid json object closing delimiter: "+err.Error())
	}

	return order, raw, nil
}

// decodeGeneric unmarshals a single raw JSON member into the generic
// shape encoding/json would produce inside a map[string]any: string,
// float64, bool, []any, map[string]any, or nil.
func decodeGeneric(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, newError(KindMalformedToken, "invalid json member: "+err.Error())
	}
	return v, nil
}
