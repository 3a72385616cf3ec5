package verify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sells-group/address-verify/internal/model"
	"github.com/sells-group/address-verify/pkg/smarty"
)

// Outcome is the interpreted result of one provider lookup.
type Outcome struct {
	Verified bool
	Summary  string
}

// noMatchSummary is reported when the provider returns zero candidates.
const noMatchSummary = "No Match"

// Interpret evaluates a lookup response against the policy and writes
// accepted fields into loc. Standardization and geocoding are checked
// independently: a rejected geocode still leaves accepted standardization
// fields in place, and vice versa. The geocode attempt result is recorded
// whenever a candidate was inspected, accepted or not.
func Interpret(resp *smarty.LookupResponse, route smarty.Route, policy Policy, loc *model.Location, now time.Time) Outcome {
	if resp.StatusCode != http.StatusOK {
		return Outcome{Summary: resp.Status}
	}
	if len(resp.Candidates) == 0 {
		return Outcome{Summary: noMatchSummary}
	}

	// The provider ranks candidates; the first is authoritative.
	cand := resp.Candidates[0]
	verified := true

	if cand.Analysis.VerificationStatus == smarty.StatusVerified &&
		policy.Standardization.Accepts(cand.Analysis.AddressPrecision, policy.Mode) {
		applyStandardization(loc, cand, route, now)
	} else {
		verified = false
	}

	loc.GeocodeAttemptedResult = cand.Metadata.GeocodePrecision
	if policy.Geocode.Accepts(cand.Metadata.GeocodePrecision, policy.Mode) {
		loc.GeoPoint = &model.GeoPoint{
			Latitude:  cand.Metadata.Latitude,
			Longitude: cand.Metadata.Longitude,
		}
		geocodedAt := now
		loc.GeocodedAt = &geocodedAt
	} else {
		verified = false
	}

	summary := fmt.Sprintf("Verified: %s; Address Precision: %s; Geocoding Precision %s",
		cand.Analysis.VerificationStatus,
		cand.Analysis.AddressPrecision,
		cand.Metadata.GeocodePrecision,
	)
	return Outcome{Verified: verified, Summary: summary}
}

func applyStandardization(loc *model.Location, cand smarty.Candidate, route smarty.Route, now time.Time) {
	switch route {
	case smarty.RouteInternational:
		loc.Street1 = cand.Address1
		loc.Street2 = cand.Address2
		if cand.Address2 == cand.Components.DependentLocality {
			// Some countries duplicate the locality into address2; drop it
			// rather than storing the city twice.
			loc.Street2 = ""
		}
		loc.City = cand.Components.DependentLocality
		loc.State = cand.Components.AdministrativeArea
		loc.PostalCode = cand.Components.PostalCode
	default:
		loc.Street1 = cand.DeliveryLine1
		loc.Street2 = cand.DeliveryLine2
		loc.City = cand.Components.CityName
		loc.County = cand.Components.CountyName
		loc.State = cand.Components.StateAbbreviation
		loc.PostalCode = cand.Components.Zipcode + "-" + cand.Components.Plus4Code
	}
	standardizedAt := now
	loc.StandardizedAt = &standardizedAt
}
