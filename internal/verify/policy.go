package verify

// Mode selects how a precision set accepts a reported precision.
//
// The verification plugin this replaces reduced its acceptance check to "any
// precision passes while the set is non-empty". ModeNonEmptyAcceptsAny keeps
// that behavior available for deployments that depend on it;
// ModeExactMembership is the strict reading and the default.
type Mode string

const (
	ModeExactMembership    Mode = "exact_membership"
	ModeNonEmptyAcceptsAny Mode = "nonempty_accepts_any"
)

// ParseMode maps a configuration string to a Mode, defaulting to exact
// membership for unrecognized values.
func ParseMode(s string) Mode {
	if Mode(s) == ModeNonEmptyAcceptsAny {
		return ModeNonEmptyAcceptsAny
	}
	return ModeExactMembership
}

// PrecisionSet is an operator-configured set of acceptable precision tiers.
type PrecisionSet map[string]struct{}

// NewPrecisionSet builds a set from a list of tier names.
func NewPrecisionSet(tiers []string) PrecisionSet {
	s := make(PrecisionSet, len(tiers))
	for _, t := range tiers {
		s[t] = struct{}{}
	}
	return s
}

// Accepts reports whether the given precision passes under the mode.
func (s PrecisionSet) Accepts(precision string, mode Mode) bool {
	if mode == ModeNonEmptyAcceptsAny {
		return len(s) > 0
	}
	_, ok := s[precision]
	return ok
}

// Policy holds the acceptance thresholds for standardization and geocoding.
// The two checks are evaluated independently against their own sets.
type Policy struct {
	Standardization PrecisionSet
	Geocode         PrecisionSet
	Mode            Mode
}
