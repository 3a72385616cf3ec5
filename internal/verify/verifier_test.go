package verify

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/address-verify/internal/country"
	"github.com/sells-group/address-verify/internal/model"
	"github.com/sells-group/address-verify/pkg/smarty"
)

// fakeClient records lookups and replays a canned response.
type fakeClient struct {
	resp   *smarty.LookupResponse
	err    error
	calls  int
	routes []smarty.Route
}

func (f *fakeClient) Lookup(_ context.Context, _ *model.Location, route smarty.Route) (*smarty.LookupResponse, error) {
	f.calls++
	f.routes = append(f.routes, route)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func okResponse() *smarty.LookupResponse {
	return &smarty.LookupResponse{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Candidates: []smarty.Candidate{domesticCandidate()},
	}
}

func newTestVerifier(client smarty.Client, clock clockwork.Clock, blacklist []string, resolver country.Resolver) *Verifier {
	if resolver == nil {
		resolver = country.StaticResolver{}
	}
	gate := NewGate(resolver, blacklist, WithGateClock(clock))
	return NewVerifier(client, gate, acceptingPolicy(), true, WithVerifierClock(clock))
}

func TestVerify_LockedRecordIsUntouched(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

	loc := &model.Location{GeoPointLocked: true, Street1: "original"}
	verified, summary := v.Verify(context.Background(), loc, false)

	assert.False(t, verified)
	assert.Empty(t, summary)
	assert.Zero(t, client.calls)
	assert.Equal(t, "original", loc.Street1)
	assert.Nil(t, loc.GeocodeAttemptedAt)
	assert.Empty(t, loc.GeocodeAttemptedService)
}

func TestVerify_CooldownMakesSecondCallANoOp(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	clock := clockwork.NewFakeClockAt(interpNow)
	v := newTestVerifier(client, clock, nil, nil)

	loc := &model.Location{Street1: "1600 Pennsylvania Ave NW"}
	verified, _ := v.Verify(context.Background(), loc, false)
	require.True(t, verified)
	require.NotNil(t, loc.GeocodeAttemptedAt)
	firstAttempt := *loc.GeocodeAttemptedAt

	clock.Advance(10 * time.Second)
	verified, summary := v.Verify(context.Background(), loc, false)

	assert.False(t, verified)
	assert.Empty(t, summary)
	assert.Equal(t, 1, client.calls)
	// Attempt timestamps are unchanged after the gated second call.
	assert.Equal(t, firstAttempt, *loc.GeocodeAttemptedAt)
}

func TestVerify_ForceBypassesCooldown(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	clock := clockwork.NewFakeClockAt(interpNow)
	v := newTestVerifier(client, clock, nil, nil)

	loc := &model.Location{Street1: "1600 Pennsylvania Ave NW"}
	v.Verify(context.Background(), loc, false)

	clock.Advance(5 * time.Second)
	verified, _ := v.Verify(context.Background(), loc, true)

	assert.True(t, verified)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, interpNow.Add(5*time.Second), *loc.GeocodeAttemptedAt)
}

func TestVerify_BlacklistedCountryIsANoOp(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	resolver := country.StaticResolver{"ref-1": "Elbonia"}
	clock := clockwork.NewFakeClockAt(interpNow)

	gate := NewGate(resolver, []string{"ref-1"}, WithGateClock(clock))
	v := NewVerifier(client, gate, acceptingPolicy(), true, WithVerifierClock(clock))

	loc := &model.Location{Country: "Elbonia"}
	verified, summary := v.Verify(context.Background(), loc, true)

	assert.False(t, verified)
	assert.Empty(t, summary)
	assert.Zero(t, client.calls)
	assert.Nil(t, loc.GeocodeAttemptedAt)
}

func TestVerify_SuccessStampsBookkeeping(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

	loc := &model.Location{Street1: "1600 Pennsylvania Ave NW", Country: "US"}
	verified, summary := v.Verify(context.Background(), loc, false)

	assert.True(t, verified)
	assert.Contains(t, summary, "Verified: verified")

	assert.Equal(t, ServiceName, loc.StandardizeAttemptedService)
	assert.Equal(t, ServiceName, loc.GeocodeAttemptedService)
	require.NotNil(t, loc.StandardizeAttemptedAt)
	require.NotNil(t, loc.GeocodeAttemptedAt)
	assert.Equal(t, interpNow, *loc.StandardizeAttemptedAt)
	assert.Equal(t, interpNow, *loc.GeocodeAttemptedAt)
}

func TestVerify_Non200StillStampsBookkeeping(t *testing.T) {
	client := &fakeClient{resp: &smarty.LookupResponse{
		StatusCode: http.StatusServiceUnavailable,
		Status:     "503 Service Unavailable",
	}}
	v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

	loc := &model.Location{Street1: "original"}
	verified, summary := v.Verify(context.Background(), loc, false)

	assert.False(t, verified)
	assert.Equal(t, "503 Service Unavailable", summary)
	assert.Equal(t, "original", loc.Street1)
	assert.NotNil(t, loc.GeocodeAttemptedAt)
	assert.Equal(t, ServiceName, loc.GeocodeAttemptedService)
}

func TestVerify_TransportErrorDegrades(t *testing.T) {
	client := &fakeClient{err: eris.New("connection refused")}
	v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

	loc := &model.Location{Street1: "original"}
	verified, summary := v.Verify(context.Background(), loc, false)

	assert.False(t, verified)
	assert.Contains(t, summary, "connection refused")
	// Bookkeeping is stamped whenever the gate passed.
	assert.NotNil(t, loc.StandardizeAttemptedAt)
	assert.NotNil(t, loc.GeocodeAttemptedAt)
	assert.Equal(t, "original", loc.Street1)
}

func TestVerify_Routing(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		expected smarty.Route
	}{
		{"us is domestic", "US", smarty.RouteDomestic},
		{"empty defaults to us", "", smarty.RouteDomestic},
		{"france is international", "FR", smarty.RouteInternational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{resp: okResponse()}
			v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

			v.Verify(context.Background(), &model.Location{Country: tt.country}, false)
			require.Len(t, client.routes, 1)
			assert.Equal(t, tt.expected, client.routes[0])
		})
	}
}

func TestVerify_NoCandidates(t *testing.T) {
	client := &fakeClient{resp: &smarty.LookupResponse{StatusCode: http.StatusOK, Status: "200 OK"}}
	v := newTestVerifier(client, clockwork.NewFakeClockAt(interpNow), nil, nil)

	verified, summary := v.Verify(context.Background(), &model.Location{Street1: "x"}, false)

	assert.False(t, verified)
	assert.Equal(t, "No Match", summary)
}
