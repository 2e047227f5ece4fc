package jwt

import "testing"

func TestLookupAlgorithmKnownIdentifiers(t *testing.T) {

	for _, id := range []string{"HS256", "HS384", "HS512", "none"} {
		alg, err := lookupAlgorithm(id)
		if err != nil {
			t.Errorf("expected %q to be a known algorithm, got %v", id, err)
		}
		if alg.ID() != id {
			t.Errorf("expected ID() == %q, got %q", id, alg.ID())
		}
	}
}

func TestLookupAlgorithmUnknown(t *testing.T) {

	_, err := lookupAlgorithm("RS256")
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != KindUnsupportedAlgorithm {
		t.Fatalf("expected UnsupportedAlgorithmError, got %v", err)
	}
}

func TestAlgorithmIsCaseSensitive(t *testing.T) {

	if _, err := lookupAlgorithm("hs256"); err == nil {
		t.Errorf("expected algorithm identifiers to be case-sensitive")
	}
	if _, err := lookupAlgorithm("NONE"); err == nil {
		t.Errorf("expected \"none\" to be lowercase-only")
	}
}
