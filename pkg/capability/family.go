// Package capability implements compact, named capability sets: an
// ordered, closed collection of capability names (a Family) and a
// fixed-width bitset over a family's ordinals (a Set). It is the
// building block pkg/authz uses to decide whether a token's claim grants
// a required set of permissions.
package capability

import "fmt"

// Family is a named, ordered collection of capability names, each
// assigned a stable zero-based ordinal at build time. Families are
// immutable once built by Builder.Seal.
type Family struct {
	name        string
	ordinals    map[string]int
	names       []string // ordinal -> name
}

// Name returns the family's name, used to detect family mismatches when
// a bitset claims to belong to one family but is checked against
// another.
func (f *Family) Name() string { return f.name }

// Size returns the number of capabilities in the family.
func (f *Family) Size() int { return len(f.names) }

// Ordinal returns a capability's zero-based position in the family.
func (f *Family) Ordinal(capability string) (int, bool) {
	i, ok := f.ordinals[capability]
	return i, ok
}

// CapabilityAt returns the capability name at ordinal i.
func (f *Family) CapabilityAt(i int) (string, bool) {
	if i < 0 || i >= len(f.names) {
		return "", false
	}
	return f.names[i], true
}

// Capabilities returns the family's capability names in ordinal order.
func (f *Family) Capabilities() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Builder appends capability names, in order, into a new Family. Each
// name must be unique within the family being built.
type Builder struct {
	name     string
	ordinals map[string]int
	names    []string
}

// NewBuilder starts building a family with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		ordinals: make(map[string]int),
	}
}

// Add appends a capability name, assigning it the next ordinal. It
// returns an error if the name is already present in this family.
func (b *Builder) Add(capability string) error {
	if _, exists := b.ordinals[capability]; exists {
		return newError(KindConfiguration, fmt.Sprintf("capability %q already registered in family %q", capability, b.name))
	}
	b.ordinals[capability] = len(b.names)
	b.names = append(b.names, capability)
	return nil
}

// MustAdd is Add, panicking on error. Intended for static, in-code
// family declarations where a duplicate is a programmer error.
func (b *Builder) MustAdd(capability string) *Builder {
	if err := b.Add(capability); err != nil {
		panic(err)
	}
	return b
}

// Seal finalizes the family. The returned Family is immutable.
func (b *Builder) Seal() *Family {
	ordinals := make(map[string]int, len(b.ordinals))
	for k, v := range b.ordinals {
		ordinals[k] = v
	}
	names := make([]string, len(b.names))
	copy(names, b.names)
	return &Family{name: b.name, ordinals: ordinals, names: names}
}
