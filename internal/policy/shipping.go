// internal/policy/shipping.go
package policy

import (
	"strings"

	"schema-engine/internal/settings"
	"schema-engine/internal/textutil"
)

// ShippingProfile is the canonical shipping profile.
type ShippingProfile struct {
	Rate        float64
	Currency    string
	HandlingMin int
	HandlingMax int
	TransitMin  int
	TransitMax  int
	Description string
	Countries   []string
}

// HasRate reports whether a shippingRate should be emitted.
func (p ShippingProfile) HasRate() bool {
	return p.Rate > 0
}

// HasHandling reports whether handling bounds were supplied.
func (p ShippingProfile) HasHandling() bool {
	return p.HandlingMin > 0 || p.HandlingMax > 0
}

// HasTransit reports whether transit bounds were supplied.
func (p ShippingProfile) HasTransit() bool {
	return p.TransitMin > 0 || p.TransitMax > 0
}

// HasDeliveryTime reports whether a deliveryTime block should be emitted.
func (p ShippingProfile) HasDeliveryTime() bool {
	return p.HasHandling() || p.HasTransit()
}

// IsDegenerate reports whether the profile carries no information at all and
// must produce no document.
func (p ShippingProfile) IsDegenerate() bool {
	return !p.HasRate() && !p.HasDeliveryTime() &&
		p.Description == "" && len(p.Countries) == 0
}

// NormalizeShippingProfile turns a stored record into a canonical profile.
// Negative rates clamp to 0, the currency defaults to USD upper-cased, and
// inverted min/max day bounds are swapped.
func NormalizeShippingProfile(rec settings.ShippingProfileRecord) ShippingProfile {
	p := ShippingProfile{
		Rate:        rec.Rate,
		Currency:    strings.ToUpper(strings.TrimSpace(rec.Currency)),
		HandlingMin: clampDay(rec.HandlingMin),
		HandlingMax: clampDay(rec.HandlingMax),
		TransitMin:  clampDay(rec.TransitMin),
		TransitMax:  clampDay(rec.TransitMax),
		Description: rec.Description,
		Countries:   textutil.SplitLines(rec.Countries),
	}
	if p.Rate < 0 {
		p.Rate = 0
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.HandlingMax != 0 && p.HandlingMax < p.HandlingMin {
		p.HandlingMin, p.HandlingMax = p.HandlingMax, p.HandlingMin
	}
	if p.TransitMax != 0 && p.TransitMax < p.TransitMin {
		p.TransitMin, p.TransitMax = p.TransitMax, p.TransitMin
	}
	return p
}

func clampDay(d int) int {
	if d < 0 {
		return 0
	}
	return d
}
