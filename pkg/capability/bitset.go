package capability

import "fmt"

const wordBits = 64

// Set is a compact bitset of capability ordinals belonging to exactly
// one Family. Two Sets are only meaningfully combined when they share a
// Family; Union rejects sets from different families.
type Set struct {
	family *Family
	words  []uint64
}

// Empty returns a Set over family with no capabilities set.
func Empty(family *Family) *Set {
	return &Set{family: family, words: make([]uint64, wordCount(family.Size()))}
}

// Of returns a Set over family containing exactly the named
// capabilities. It returns an UnknownCapabilityError if any name is not
// present in family.
func Of(family *Family, capabilities ...string) (*Set, error) {
	s := Empty(family)
	for _, c := range capabilities {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func wordCount(size int) int {
	return (size + wordBits - 1) / wordBits
}

// Family returns the family this set is defined over.
func (s *Set) Family() *Family { return s.family }

// Add sets the bit for capability. It returns an UnknownCapabilityError
// if capability is not present in the set's family.
func (s *Set) Add(capability string) error {
	i, ok := s.family.Ordinal(capability)
	if !ok {
		return newError(KindUnknownCapability, fmt.Sprintf("capability %q is not a member of family %q", capability, s.family.name))
	}
	s.words[i/wordBits] |= 1 << uint(i%wordBits)
	return nil
}

// Contains reports whether capability's bit is set. Returns false (with
// an error) if capability is unknown to the family.
func (s *Set) Contains(capability string) (bool, error) {
	i, ok := s.family.Ordinal(capability)
	if !ok {
		return false, newError(KindUnknownCapability, fmt.Sprintf("capability %q is not a member of family %q", capability, s.family.name))
	}
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0, nil
}

// ContainsAll reports whether every capability named in required is set.
// It returns an UnknownCapabilityError if any required name is absent
// from the family. ContainsAll of an empty list is always true.
func (s *Set) ContainsAll(required ...string) (bool, error) {
	req, err := Of(s.family, required...)
	if err != nil {
		return false, err
	}
	return s.containsAllBits(req), nil
}

// containsAllBits implements (this AND required) == required at the
// word level, i.e. required is a subset of s.
func (s *Set) containsAllBits(required *Set) bool {
	for i, w := range required.words {
		if i >= len(s.words) {
			if w != 0 {
				return false
			}
			continue
		}
		if s.words[i]&w != w {
			return false
		}
	}
	return true
}

// Capabilities returns the capability names set, in family order.
func (s *Set) Capabilities() []string {
	var out []string
	for i := 0; i < s.family.Size(); i++ {
		if s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0 {
			name, _ := s.family.CapabilityAt(i)
			out = append(out, name)
		}
	}
	return out
}

// Union returns a new Set containing the capabilities present in either
// s or other. Both must share the same family.
func (s *Set) Union(other *Set) (*Set, error) {
	if s.family != other.family {
		return nil, newError(KindFamilyMismatch, "cannot union sets from different families")
	}
	out := Empty(s.family)
	for i := range out.words {
		out.words[i] = s.words[i] | other.words[i]
	}
	return out, nil
}
