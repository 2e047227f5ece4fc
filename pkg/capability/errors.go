package capability

import "fmt"

// Kind identifies the category of an Error.
type Kind string

const (
	// KindConfiguration covers a duplicate capability name within a
	// family, and a missing or duplicate family name in a loaded file.
	KindConfiguration Kind = "configuration"

	// KindUnknownCapability covers a bitset referencing a capability
	// name absent from its family.
	KindUnknownCapability Kind = "unknown_capability"

	// KindFamilyMismatch covers a bitset whose family does not match
	// the family a caller expected it to belong to.
	KindFamilyMismatch Kind = "family_mismatch"
)

// Error is the typed error surface returned by this package.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrKind returns a sentinel *Error usable with errors.Is to test only
// the Kind field.
func ErrKind(k Kind) error {
	return &Error{Kind: k}
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}
