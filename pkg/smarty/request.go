package smarty

import (
	"net/url"

	"github.com/sells-group/address-verify/internal/model"
)

// BuildParams produces the provider query parameters for a location on the
// given route. Authentication parameters are appended by the client, not
// here, so the builder stays testable without credentials.
func BuildParams(loc *model.Location, route Route) url.Values {
	params := url.Values{}

	if route == RouteDomestic {
		// The domestic API takes a single street parameter; street2 is
		// appended directly with no separator.
		if street := loc.Street1 + loc.Street2; street != "" {
			params.Set("street", street)
		}
		setIfPresent(params, "city", loc.City)
		setIfPresent(params, "state", loc.State)
		setIfPresent(params, "zipcode", loc.PostalCode)
		return params
	}

	setIfPresent(params, "address1", loc.Street1)
	setIfPresent(params, "address2", loc.Street2)
	setIfPresent(params, "locality", loc.City)
	setIfPresent(params, "administrative_area", loc.State)
	setIfPresent(params, "postal_code", loc.PostalCode)
	// The international API requires country even when empty.
	params.Set("country", loc.Country)
	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
