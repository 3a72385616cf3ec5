package verify

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sells-group/address-verify/internal/country"
	"github.com/sells-group/address-verify/internal/model"
)

// DefaultCooldown is the minimum wait between provider attempts for a record.
// It debounces re-verification after a likely-transient failure; a forced
// call bypasses it.
const DefaultCooldown = 30 * time.Second

// Gate decides whether a location may be (re-)verified right now. It never
// mutates the record and never reaches the network.
type Gate struct {
	cooldown  time.Duration
	resolver  country.Resolver
	blacklist []string
	clock     clockwork.Clock
}

// GateOption configures the gate.
type GateOption func(*Gate)

// WithCooldown overrides the attempt cooldown.
func WithCooldown(d time.Duration) GateOption {
	return func(g *Gate) {
		g.cooldown = d
	}
}

// WithGateClock substitutes the clock, for tests.
func WithGateClock(c clockwork.Clock) GateOption {
	return func(g *Gate) {
		g.clock = c
	}
}

// NewGate creates a gate with the given blacklist identifiers. Identifiers
// are resolved to country names on every check; the reference table is owned
// externally and may change between calls.
func NewGate(resolver country.Resolver, blacklist []string, opts ...GateOption) *Gate {
	g := &Gate{
		cooldown:  DefaultCooldown,
		resolver:  resolver,
		blacklist: blacklist,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Eligible reports whether loc may be verified now.
func (g *Gate) Eligible(ctx context.Context, loc *model.Location, force bool) bool {
	if loc == nil {
		return false
	}
	if loc.GeoPointLocked {
		return false
	}

	if !force && loc.GeocodeAttemptedAt != nil &&
		g.clock.Now().Sub(*loc.GeocodeAttemptedAt) <= g.cooldown {
		return false
	}

	for _, id := range g.blacklist {
		name, err := g.resolver.ResolveCountry(ctx, id)
		if err != nil {
			// Unresolvable entries never block the check.
			zap.L().Debug("gate: blacklist entry unresolved",
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		if name == loc.Country {
			return false
		}
	}
	return true
}
