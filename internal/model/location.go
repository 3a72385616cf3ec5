// Package model defines the location records the verifier operates on.
package model

import "time"

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Location is an address record owned by the host application. The verifier
// receives a mutable reference and writes normalized fields and geocoding
// metadata back into it.
type Location struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Street1    string `json:"street1,omitempty" yaml:"street1,omitempty"`
	Street2    string `json:"street2,omitempty" yaml:"street2,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	County     string `json:"county,omitempty" yaml:"county,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`

	// GeoPointLocked marks the record as hands-off: a locked location is
	// never mutated by the verifier, whatever the provider would say.
	GeoPointLocked bool      `json:"geo_point_locked,omitempty" yaml:"geo_point_locked,omitempty"`
	GeoPoint       *GeoPoint `json:"geo_point,omitempty" yaml:"geo_point,omitempty"`

	// Attempt bookkeeping. These are stamped on every call that reaches the
	// provider, whether or not the verification succeeded.
	StandardizeAttemptedAt      *time.Time `json:"standardize_attempted_at,omitempty" yaml:"standardize_attempted_at,omitempty"`
	StandardizeAttemptedService string     `json:"standardize_attempted_service,omitempty" yaml:"standardize_attempted_service,omitempty"`
	GeocodeAttemptedAt          *time.Time `json:"geocode_attempted_at,omitempty" yaml:"geocode_attempted_at,omitempty"`
	GeocodeAttemptedService     string     `json:"geocode_attempted_service,omitempty" yaml:"geocode_attempted_service,omitempty"`

	// GeocodeAttemptedResult records the last geocode precision the provider
	// reported, accepted or not.
	GeocodeAttemptedResult string `json:"geocode_attempted_result,omitempty" yaml:"geocode_attempted_result,omitempty"`

	// Success timestamps, set only when the corresponding precision check
	// passed.
	StandardizedAt *time.Time `json:"standardized_at,omitempty" yaml:"standardized_at,omitempty"`
	GeocodedAt     *time.Time `json:"geocoded_at,omitempty" yaml:"geocoded_at,omitempty"`
}
