// Package authz implements the capability-based access-control model
// that sits on top of pkg/jwt and pkg/capability: a declarative set of
// {claim, required capabilities} pairs attached to a protected
// operation, and an Evaluator that checks a verified token against those
// declarations.
package authz

// Requirement declares that, for a request to be authorized, the token
// claim named Claim must be a capability set (pkg/capability.Set)
// containing every capability name in Needed.
type Requirement struct {
	Claim  string
	Needed []string
}

// Declaration is the ordered list of Requirements attached to one
// protected operation. All requirements must pass for the operation to
// be authorized.
type Declaration []Requirement

// Reason enumerates why Authorize denied a request.
type Reason string

const (
	ReasonUnverified             Reason = "unverified"
	ReasonExpired                Reason = "expired"
	ReasonNotYetValid            Reason = "not_yet_valid"
	ReasonMissingClaim           Reason = "missing_claim"
	ReasonFamilyMismatch         Reason = "family_mismatch"
	ReasonInsufficientCapability Reason = "insufficient_capabilities"
)

// Decision is the outcome of Authorize.
type Decision struct {
	Granted bool
	Reason  Reason
	Claim   string   // claim the denial pertains to, when applicable
	Missing []string // capability names missing, for ReasonInsufficientCapability
}

// Granted is the zero-value-friendly constructor for an authorized
// Decision.
func Granted() Decision {
	return Decision{Granted: true}
}

func denied(reason Reason, claim string, missing ...string) Decision {
	return Decision{Granted: false, Reason: reason, Claim: claim, Missing: missing}
}
