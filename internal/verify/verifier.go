// Package verify implements the verification core: the precision acceptance
// policy, the eligibility gate, the response interpreter, and the
// orchestrator that ties them to the SmartyStreets client.
package verify

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sells-group/address-verify/internal/model"
	"github.com/sells-group/address-verify/pkg/smarty"
)

// ServiceName is stamped into attempt bookkeeping on every provider call.
const ServiceName = "SmartyStreets"

// Verifier runs one synchronous verification pass over a location record.
// It holds no mutable state across calls; concurrent calls against the same
// record must be serialized by the caller.
type Verifier struct {
	client      smarty.Client
	gate        *Gate
	policy      Policy
	defaultToUS bool
	clock       clockwork.Clock
}

// VerifierOption configures the verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock substitutes the clock, for tests.
func WithVerifierClock(c clockwork.Clock) VerifierOption {
	return func(v *Verifier) {
		v.clock = c
	}
}

// NewVerifier composes the verification pipeline.
func NewVerifier(client smarty.Client, gate *Gate, policy Policy, defaultToUS bool, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		client:      client,
		gate:        gate,
		policy:      policy,
		defaultToUS: defaultToUS,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify gates eligibility, routes and performs the provider lookup,
// interprets the response, and stamps attempt bookkeeping. An ineligible
// record is returned untouched with an empty summary. Once the gate passes,
// bookkeeping is stamped regardless of lookup outcome; transport failures
// degrade to an unverified result carrying the error text.
func (v *Verifier) Verify(ctx context.Context, loc *model.Location, force bool) (bool, string) {
	if !v.gate.Eligible(ctx, loc, force) {
		return false, ""
	}

	now := v.clock.Now()
	route := smarty.RouteFor(loc.Country, v.defaultToUS)

	var outcome Outcome
	resp, err := v.client.Lookup(ctx, loc, route)
	if err != nil {
		zap.L().Warn("verify: lookup failed",
			zap.String("location", loc.ID),
			zap.String("route", route.String()),
			zap.Error(err),
		)
		outcome = Outcome{Summary: err.Error()}
	} else {
		outcome = Interpret(resp, route, v.policy, loc, now)
	}

	attemptedAt := now
	loc.StandardizeAttemptedService = ServiceName
	loc.StandardizeAttemptedAt = &attemptedAt
	loc.GeocodeAttemptedService = ServiceName
	loc.GeocodeAttemptedAt = &attemptedAt

	zap.L().Debug("verify: complete",
		zap.String("location", loc.ID),
		zap.String("route", route.String()),
		zap.Bool("verified", outcome.Verified),
		zap.String("summary", outcome.Summary),
	)
	return outcome.Verified, outcome.Summary
}
