package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tdeslauriers/tales/internal/util"
	"github.com/tdeslauriers/tales/pkg/authz"
	"github.com/tdeslauriers/tales/pkg/capability"
	"github.com/tdeslauriers/tales/pkg/jwt"
	"github.com/tdeslauriers/tales/pkg/permissions"
)

// CapabilityClaim is the claim name under which a principal's granted
// capability.Set travels in a minted token.
const CapabilityClaim = "capabilities"

// TokenMinter mints authorization tokens whose capability claim is bound
// to a live, DB-backed capability.Family rather than a hand-maintained
// scope string. One TokenMinter serves one service's tokens, since a
// capability.Family is itself scoped to a single service name.
type TokenMinter struct {
	service string
	secret  []byte

	manager   *jwt.Manager
	registry  *jwt.Registry
	evaluator *authz.Evaluator
	family    *capability.Family

	issuer   string
	lifetime time.Duration

	logger *slog.Logger
}

// NewTokenMinter loads serviceName's active permissions from svc and
// seals them into a capability.Family, then binds that family to
// CapabilityClaim on both a fresh jwt.Registry and a fresh
// authz.Evaluator, so tokens minted by the returned TokenMinter and
// tokens evaluated through its Evaluator agree on capability ordinals.
func NewTokenMinter(svc permissions.PermissionsService, serviceName, issuer string, secret []byte, lifetime time.Duration) (*TokenMinter, error) {

	family, err := svc.GetCapabilityFamily(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to build capability family for service '%s': %v", serviceName, err)
	}

	registry := jwt.NewRegistry()
	evaluator := authz.NewEvaluator()

	if err := evaluator.BindCapabilityClaim(registry, CapabilityClaim, family); err != nil {
		return nil, fmt.Errorf("failed to bind capability claim '%s' for service '%s': %v", CapabilityClaim, serviceName, err)
	}

	return &TokenMinter{
		service:   serviceName,
		secret:    secret,
		manager:   jwt.NewManager(registry),
		registry:  registry,
		evaluator: evaluator,
		family:    family,
		issuer:    issuer,
		lifetime:  lifetime,
		logger: slog.Default().
			With(slog.String(util.ServiceKey, "tales")).
			With(slog.String(util.ComponentKey, util.ComponentJwtManager)),
	}, nil
}

// Evaluator returns the authz.Evaluator bound to this minter's
// capability family, for use by request handlers authorizing tokens
// this minter issued.
func (m *TokenMinter) Evaluator() *authz.Evaluator {
	return m.evaluator
}

// Family returns the capability.Family this minter's tokens are scoped
// to.
func (m *TokenMinter) Family() *capability.Family {
	return m.family
}

// Mint builds a capability.Set for subject's granted permissions and
// signs an HS256 token carrying it under CapabilityClaim, with standard
// iss/jti/iat/nbf/exp claims populated from the minter's issuer and
// lifetime.
func (m *TokenMinter) Mint(subject string, granted []permissions.PermissionRecord) (*jwt.Token, error) {

	set, err := permissions.BuildSet(m.family, granted)
	if err != nil {
		m.logger.Error(fmt.Sprintf("failed to build capability set for subject '%s'", subject), slog.Any("error", err))
		return nil, fmt.Errorf("failed to build capability set for subject '%s': %v", subject, err)
	}

	delay := int64(0)
	duration := int64(m.lifetime.Seconds())

	token, err := m.manager.Generate(
		map[string]any{"typ": "JWT"},
		map[string]any{"sub": subject, CapabilityClaim: set},
		m.secret,
		&jwt.GenerateConfig{
			Issuer:               m.issuer,
			GenerateID:           true,
			IncludeIssuedTime:    true,
			ValidDelaySeconds:    &delay,
			ValidDurationSeconds: &duration,
		},
	)
	if err != nil {
		m.logger.Error(fmt.Sprintf("failed to mint token for subject '%s'", subject), slog.Any("error", err))
		return nil, fmt.Errorf("failed to mint token for subject '%s': %v", subject, err)
	}

	return token, nil
}

// Parse verifies and decodes a token this minter's Registry knows how
// to read back, so the returned Token's capability claim is a
// *capability.Set rather than its JSON string-array wire form.
func (m *TokenMinter) Parse(serialized string) (*jwt.Token, error) {
	return m.manager.Parse(serialized, m.secret)
}
