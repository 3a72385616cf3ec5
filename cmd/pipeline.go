package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/address-verify/internal/country"
	"github.com/sells-group/address-verify/internal/store"
	"github.com/sells-group/address-verify/internal/verify"
	"github.com/sells-group/address-verify/pkg/smarty"
)

// openStore connects to the configured database.
func openStore(ctx context.Context) (*store.PostgresStore, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, eris.New("store database_url is required (ADDRVERIFY_STORE_DATABASE_URL)")
	}
	return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns, cfg.Store.MinConns)
}

// buildResolver prefers the database-backed country reference table, falling
// back to the static map in the config file.
func buildResolver(st *store.PostgresStore) country.Resolver {
	if st != nil {
		return country.NewPostgresResolver(st.Pool())
	}
	return country.StaticResolver(cfg.Verify.Countries)
}

// buildVerifier assembles the verification pipeline from configuration.
func buildVerifier(resolver country.Resolver) *verify.Verifier {
	client := smarty.NewClient(cfg.Smarty.AuthID, cfg.Smarty.AuthToken,
		smarty.WithBaseURLs(cfg.Smarty.BaseURL, cfg.Smarty.InternationalBaseURL),
		smarty.WithRateLimit(cfg.Smarty.RateLimit),
		smarty.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Smarty.TimeoutSecs) * time.Second,
		}),
	)

	gate := verify.NewGate(resolver, cfg.Verify.Blacklist,
		verify.WithCooldown(time.Duration(cfg.Verify.CooldownSecs)*time.Second),
	)

	policy := verify.Policy{
		Standardization: verify.NewPrecisionSet(cfg.Policy.AddressPrecisions),
		Geocode:         verify.NewPrecisionSet(cfg.Policy.GeocodePrecisions),
		Mode:            verify.ParseMode(cfg.Policy.Mode),
	}

	return verify.NewVerifier(client, gate, policy, cfg.Verify.DefaultToUS)
}
