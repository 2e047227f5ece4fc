package authz

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tdeslauriers/tales/internal/util"
	"github.com/tdeslauriers/tales/pkg/capability"
	"github.com/tdeslauriers/tales/pkg/jwt"
)

// tokenReader is the subset of *jwt.Token Evaluator depends on, so tests
// can exercise Authorize without constructing a real signed token.
type tokenReader interface {
	Verified() bool
	Algorithm() string
	Claim(name string) (any, bool)
}

var _ tokenReader = (*jwt.Token)(nil)

// Evaluator holds the claim-name -> capability-family mapping
// ("injective registration supplied at startup") and decides whether a
// verified token satisfies a Declaration.
type Evaluator struct {
	families           map[string]*capability.Family
	allowNoneAlgorithm bool
	clock              func() time.Time
	logger             *slog.Logger
}

// EvaluatorOption configures an Evaluator at construction time.
type EvaluatorOption func(*Evaluator)

// AllowNoneAlgorithm lets a token whose header declares alg=none be
// treated as verified by Authorize, provided the token's own Verified()
// is true. Off by default: per spec, an alg=none token is always
// unverified from the evaluator's perspective unless the application
// explicitly opts in, guarding against algorithm-substitution attacks.
func AllowNoneAlgorithm(allow bool) EvaluatorOption {
	return func(e *Evaluator) { e.allowNoneAlgorithm = allow }
}

// WithClock overrides the evaluator's notion of "now", for tests.
func WithClock(clock func() time.Time) EvaluatorOption {
	return func(e *Evaluator) { e.clock = clock }
}

// NewEvaluator returns an empty Evaluator; register claim/family
// mappings with RegisterClaimFamily before building Declarations against
// it.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		families: make(map[string]*capability.Family),
		clock:    time.Now,
		logger:   slog.Default().With(slog.String(util.PackageKey, util.PackageAuthz), slog.String(util.ComponentKey, util.ComponentAuthz)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BindCapabilityClaim wires a capability family into both a jwt.Registry
// (so the claim round-trips as a *capability.Set) and this Evaluator (so
// Authorize knows which family governs that claim name). This is the
// usual way to set up a capability claim: one call at startup instead of
// registering the codec and the family mapping separately and risking
// them drifting apart.
func (e *Evaluator) BindCapabilityClaim(registry *jwt.Registry, claim string, family *capability.Family) error {
	codec := capability.NewClaimCodec(family)
	if err := registry.Register(claim, jwt.Codec{Encode: codec.Encode, Decode: codec.Decode}); err != nil {
		return err
	}
	return e.RegisterClaimFamily(claim, family)
}

// RegisterClaimFamily associates claim with family. The mapping must be
// injective: registering the same claim name twice is a
// ConfigurationError.
func (e *Evaluator) RegisterClaimFamily(claim string, family *capability.Family) error {
	if _, exists := e.families[claim]; exists {
		return capability.ErrKind(capability.KindConfiguration)
	}
	e.families[claim] = family
	return nil
}

// NewDeclaration validates reqs against the registered claim/family
// mappings and returns a Declaration. Every claim named must already be
// registered, and every needed capability name must be a member of that
// claim's family — both checked here, at registration time, rather than
// at request time, per spec.
func (e *Evaluator) NewDeclaration(reqs ...Requirement) (Declaration, error) {
	for _, r := range reqs {
		family, ok := e.families[r.Claim]
		if !ok {
			return nil, fmt.Errorf("claim %q has no registered capability family", r.Claim)
		}
		for _, needed := range r.Needed {
			if _, ok := family.Ordinal(needed); !ok {
				return nil, fmt.Errorf("capability %q is not a member of family %q (claim %q)", needed, family.Name(), r.Claim)
			}
		}
	}
	return Declaration(reqs), nil
}

// Authorize checks token against decl. It returns Granted only if every
// Requirement in decl passes; otherwise it returns the first Denied
// Decision encountered, in declaration order.
func (e *Evaluator) Authorize(token tokenReader, decl Declaration) Decision {
	if !e.isVerified(token) {
		return denied(ReasonUnverified, "")
	}

	if d, ok := e.checkValidityWindow(token); !ok {
		return d
	}

	for _, req := range decl {
		if d := e.checkRequirement(token, req); !d.Granted {
			return d
		}
	}

	return Granted()
}

// isVerified applies the algorithm-substitution guard: a token whose
// header names alg=none is never treated as verified unless the
// evaluator was explicitly configured to allow it.
func (e *Evaluator) isVerified(token tokenReader) bool {
	if !token.Verified() {
		return false
	}
	if token.Algorithm() == "none" && !e.allowNoneAlgorithm {
		return false
	}
	return true
}

func (e *Evaluator) checkValidityWindow(token tokenReader) (Decision, bool) {
	now := e.clock().Unix()

	if nbf, ok := token.Claim("nbf"); ok {
		if n, ok := asUnixSeconds(nbf); ok && now < n {
			return denied(ReasonNotYetValid, "nbf"), false
		}
	}
	if exp, ok := token.Claim("exp"); ok {
		if x, ok := asUnixSeconds(exp); ok && now >= x {
			return denied(ReasonExpired, "exp"), false
		}
	}
	return Decision{}, true
}

func (e *Evaluator) checkRequirement(token tokenReader, req Requirement) Decision {
	family, ok := e.families[req.Claim]
	if !ok {
		// registered at NewDeclaration time; absence here means the
		// evaluator's registry changed out from under the declaration.
		return denied(ReasonMissingClaim, req.Claim)
	}

	raw, ok := token.Claim(req.Claim)
	if !ok {
		return denied(ReasonMissingClaim, req.Claim)
	}

	set, ok := raw.(*capability.Set)
	if !ok {
		return denied(ReasonFamilyMismatch, req.Claim)
	}
	if set.Family() != family && set.Family().Name() != family.Name() {
		return denied(ReasonFamilyMismatch, req.Claim)
	}

	ok, err := set.ContainsAll(req.Needed...)
	if err != nil {
		return denied(ReasonFamilyMismatch, req.Claim)
	}
	if !ok {
		missing := missingCapabilities(set, req.Needed)
		return denied(ReasonInsufficientCapability, req.Claim, missing...)
	}

	return Granted()
}

func missingCapabilities(set *capability.Set, needed []string) []string {
	var missing []string
	for _, n := range needed {
		has, err := set.Contains(n)
		if err != nil || !has {
			missing = append(missing, n)
		}
	}
	return missing
}

// asUnixSeconds accepts the int64/float64 shapes decodePrimitive may
// produce for a numeric claim.
func asUnixSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
