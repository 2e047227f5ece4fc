package permissions

import "testing"

func records() []PermissionRecord {
	return []PermissionRecord{
		{ServiceName: "gallery", Permission: "IMAGE_WRITE", Active: true},
		{ServiceName: "gallery", Permission: "IMAGE_READ", Active: true},
		{ServiceName: "gallery", Permission: "IMAGE_DELETE", Active: false},
		{ServiceName: "pixie", Permission: "ALBUM_READ", Active: true},
	}
}

func TestBuildFamilyFiltersByServiceAndActive(t *testing.T) {

	family, err := BuildFamily("gallery", records())
	if err != nil {
		t.Fatalf("BuildFamily failed: %v", err)
	}

	if family.Size() != 2 {
		t.Fatalf("expected 2 capabilities in family, got %d", family.Size())
	}

	if _, ok := family.Ordinal("IMAGE_DELETE"); ok {
		t.Error("expected inactive permission to be excluded from family")
	}
	if _, ok := family.Ordinal("ALBUM_READ"); ok {
		t.Error("expected permission from a different service to be excluded from family")
	}
}

func TestBuildFamilyOrdersDeterministically(t *testing.T) {

	a, err := BuildFamily("gallery", records())
	if err != nil {
		t.Fatalf("BuildFamily failed: %v", err)
	}

	reversed := records()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	b, err := BuildFamily("gallery", reversed)
	if err != nil {
		t.Fatalf("BuildFamily failed: %v", err)
	}

	if a.Capabilities()[0] != b.Capabilities()[0] {
		t.Fatalf("expected ordinal assignment to be independent of input order: got %q and %q", a.Capabilities()[0], b.Capabilities()[0])
	}
	if a.Capabilities()[0] != "IMAGE_READ" {
		t.Errorf("expected alphabetically-first capability at ordinal 0, got %q", a.Capabilities()[0])
	}
}

func TestBuildSetOnlyIncludesActiveGrants(t *testing.T) {

	family, err := BuildFamily("gallery", records())
	if err != nil {
		t.Fatalf("BuildFamily failed: %v", err)
	}

	granted := []PermissionRecord{
		{ServiceName: "gallery", Permission: "IMAGE_READ", Active: true},
		{ServiceName: "gallery", Permission: "IMAGE_DELETE", Active: false}, // not a family member; must be dropped
	}

	set, err := BuildSet(family, granted)
	if err != nil {
		t.Fatalf("BuildSet failed: %v", err)
	}

	ok, err := set.Contains("IMAGE_READ")
	if err != nil || !ok {
		t.Errorf("expected set to contain IMAGE_READ, got ok=%v err=%v", ok, err)
	}

	if all, _ := set.ContainsAll("IMAGE_READ", "IMAGE_WRITE"); all {
		t.Error("expected ContainsAll to fail for an ungranted capability")
	}
}
