package smarty

import "strings"

// Route selects which SmartyStreets API schema a lookup uses. The two
// endpoints take different parameters and return differently-shaped
// candidates, so the route drives both request building and response mapping.
type Route int

const (
	RouteDomestic Route = iota
	RouteInternational
)

// String implements fmt.Stringer.
func (r Route) String() string {
	if r == RouteInternational {
		return "international"
	}
	return "domestic"
}

// RouteFor picks the lookup route for a country value. US addresses use the
// domestic street-address API; an absent country falls back to domestic only
// when defaultToUS is configured. Everything else goes international.
func RouteFor(country string, defaultToUS bool) Route {
	c := strings.ToUpper(strings.TrimSpace(country))
	if c == "US" || (c == "" && defaultToUS) {
		return RouteDomestic
	}
	return RouteInternational
}
