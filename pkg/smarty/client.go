// Package smarty provides the SmartyStreets address verification client,
// covering both the domestic street-address API and the international
// verify API.
package smarty

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/address-verify/internal/model"
)

const (
	domesticURL      = "https://api.smartystreets.com/street-address"
	internationalURL = "https://international-street.api.smartystreets.com/verify"
)

// LookupResponse is the provider's reply to a single lookup. Non-200 statuses
// are carried here rather than surfaced as errors so the interpreter can
// report the status text as the verification result.
type LookupResponse struct {
	StatusCode int
	Status     string
	Candidates []Candidate
}

// Client performs address lookups against SmartyStreets.
type Client interface {
	Lookup(ctx context.Context, loc *model.Location, route Route) (*LookupResponse, error)
}

// Option configures the client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for provider calls.
// Values of zero or less are ignored.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		if rps > 0 {
			burst := int(rps)
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithBaseURLs overrides the provider endpoints, for tests.
func WithBaseURLs(domestic, international string) Option {
	return func(c *client) {
		c.domesticURL = domestic
		c.internationalURL = international
	}
}

type client struct {
	httpClient       *http.Client
	authID           string
	authToken        string
	domesticURL      string
	internationalURL string
	limiter          *rate.Limiter
}

// NewClient creates a SmartyStreets client with the given credentials.
func NewClient(authID, authToken string, opts ...Option) Client {
	c := &client{
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		authID:           authID,
		authToken:        authToken,
		domesticURL:      domesticURL,
		internationalURL: internationalURL,
		limiter:          rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup queries the endpoint for the given route and parses the candidate
// list. A non-200 response is not an error; the status is returned for the
// caller to interpret.
func (c *client) Lookup(ctx context.Context, loc *model.Location, route Route) (*LookupResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "smarty: rate limit")
	}

	params := BuildParams(loc, route)
	params.Set("auth-id", c.authID)
	params.Set("auth-token", c.authToken)

	base := c.domesticURL
	if route == RouteInternational {
		base = c.internationalURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "smarty: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "smarty: %s lookup", route)
	}
	defer resp.Body.Close() //nolint:errcheck

	out := &LookupResponse{StatusCode: resp.StatusCode, Status: resp.Status}
	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("smarty: non-200 response",
			zap.String("route", route.String()),
			zap.String("status", resp.Status),
		)
		return out, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "smarty: read body")
	}
	if err := json.Unmarshal(body, &out.Candidates); err != nil {
		return nil, eris.Wrap(err, "smarty: parse candidates")
	}
	return out, nil
}
