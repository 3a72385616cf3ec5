package smarty

// Precision tiers reported by the provider for both address standardization
// and geocoding, coarsest to finest.
const (
	PrecisionAdministrativeArea = "AdministrativeArea"
	PrecisionLocality           = "Locality"
	PrecisionThoroughfare       = "Thoroughfare"
	PrecisionPremise            = "Premise"
	PrecisionDeliveryPoint      = "DeliveryPoint"
)

// StatusVerified is the analysis verification_status of a fully verified
// candidate.
const StatusVerified = "verified"

// Candidate is one provider-proposed resolution for a lookup. Domestic and
// international responses share this type; each route populates its own
// subset of fields. Candidates are parsed per call and discarded.
type Candidate struct {
	// International address lines.
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`

	// Domestic delivery lines.
	DeliveryLine1 string `json:"delivery_line_1,omitempty"`
	DeliveryLine2 string `json:"delivery_line_2,omitempty"`

	Analysis   Analysis   `json:"analysis"`
	Metadata   Metadata   `json:"metadata"`
	Components Components `json:"components"`
}

// Analysis carries the provider's verdict on address standardization.
type Analysis struct {
	VerificationStatus string `json:"verification_status,omitempty"`
	AddressPrecision   string `json:"address_precision,omitempty"`
}

// Metadata carries the provider's geocoding output.
type Metadata struct {
	GeocodePrecision string  `json:"geocode_precision,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
}

// Components is the per-route breakdown of the standardized address.
type Components struct {
	// International schema.
	DependentLocality  string `json:"dependent_locality,omitempty"`
	AdministrativeArea string `json:"administrative_area,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`

	// Domestic schema.
	CityName          string `json:"city_name,omitempty"`
	CountyName        string `json:"county_name,omitempty"`
	StateAbbreviation string `json:"state_abbreviation,omitempty"`
	Zipcode           string `json:"zipcode,omitempty"`
	Plus4Code         string `json:"plus4_code,omitempty"`
}
