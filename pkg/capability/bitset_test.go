package capability

import "testing"

func buildOpsFamily(t *testing.T) *Family {
	t.Helper()
	b := NewBuilder("ops")
	b.MustAdd("read").MustAdd("write").MustAdd("admin")
	return b.Seal()
}

func TestContainsAllUnion(t *testing.T) {

	family := buildOpsFamily(t)

	a, err := Of(family, "read")
	if err != nil {
		t.Fatalf("Of failed: %v", err)
	}
	b, err := Of(family, "write")
	if err != nil {
		t.Fatalf("Of failed: %v", err)
	}

	union, err := a.Union(b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}

	ok, err := union.ContainsAll("read", "write")
	if err != nil || !ok {
		t.Errorf("expected union to contain both read and write, ok=%v err=%v", ok, err)
	}

	okA, _ := a.ContainsAll("read")
	okB, _ := b.ContainsAll("write")
	if !(okA && okB) {
		t.Errorf("expected contains_all(A) and contains_all(B) to both hold")
	}
}

func TestContainsAllEmptyIsAlwaysTrue(t *testing.T) {

	family := buildOpsFamily(t)
	empty := Empty(family)

	ok, err := empty.ContainsAll()
	if err != nil || !ok {
		t.Errorf("contains_all of an empty requirement set should always be true, ok=%v err=%v", ok, err)
	}
}

func TestUnknownCapabilityErrors(t *testing.T) {

	family := buildOpsFamily(t)
	set := Empty(family)

	if err := set.Add("superuser"); err == nil {
		t.Errorf("expected UnknownCapabilityError adding a capability absent from the family")
	}

	if _, err := Of(family, "superuser"); err == nil {
		t.Errorf("expected UnknownCapabilityError building a set with an unknown capability")
	}
}

func TestDuplicateCapabilityInFamily(t *testing.T) {

	b := NewBuilder("dup")
	if err := b.Add("read"); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}
	if err := b.Add("read"); err == nil {
		t.Errorf("expected ConfigurationError adding a duplicate capability name")
	}
}

func TestCapabilitiesInFamilyOrder(t *testing.T) {

	family := buildOpsFamily(t)
	set, err := Of(family, "admin", "read")
	if err != nil {
		t.Fatalf("Of failed: %v", err)
	}

	got := set.Capabilities()
	want := []string{"read", "admin"}
	if len(got) != len(want) {
		t.Fatalf("expected %d capabilities, got %d: %v", len(want), len(got), got)
	}
	if got[0] != "read" || got[1] != "admin" {
		t.Errorf("expected capabilities in family order [read admin], got %v", got)
	}
}

func TestClaimCodecRoundTrip(t *testing.T) {

	family := buildOpsFamily(t)
	codec := NewClaimCodec(family)

	encoded, err := codec.Encode([]string{"read", "write"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	set, ok := decoded.(*Set)
	if !ok {
		t.Fatalf("expected decode to return a *Set, got %T", decoded)
	}

	ok2, err := set.ContainsAll("read", "write")
	if err != nil || !ok2 {
		t.Errorf("expected decoded set to contain read and write, ok=%v err=%v", ok2, err)
	}
}

func TestClaimCodecUnknownCapabilityOnRead(t *testing.T) {

	family := buildOpsFamily(t)
	codec := NewClaimCodec(family)

	_, err := codec.Decode([]any{"superuser"})
	if err == nil {
		t.Errorf("expected UnknownCapabilityError decoding a capability absent from the family")
	}
}
