// Package pricing resolves customer categories to discount policies and
// applies them to seat base prices. The registry is built once and never
// mutated, so lookups are safe from any goroutine without locking.
package pricing

import (
	"math"
	"strings"
)

// Policy is a named discount rule. Discount is a fraction of the base
// price, e.g. 0.10 for a 10% reduction.
type Policy struct {
	Name     string
	Discount float64
}

// registry maps lowercased customer categories to their policies.
var registry = map[string]Policy{
	"regular": {Name: "Regular", Discount: 0.00},
	"member":  {Name: "Member", Discount: 0.10},
	"student": {Name: "Student", Discount: 0.15},
	"senior":  {Name: "Senior", Discount: 0.20},
}

// Resolve returns the policy for a customer category. The lookup is
// case-insensitive; any category that is not registered resolves to the
// zero-discount Regular policy rather than failing.
func Resolve(customerType string) Policy {
	if p, ok := registry[strings.ToLower(customerType)]; ok {
		return p
	}
	return registry["regular"]
}

// Apply computes the discounted price, rounded half-up at the cent
// boundary. math.Round rounds half away from zero, which for the
// non-negative prices handled here is exactly round-half-up.
func (p Policy) Apply(basePrice float64) float64 {
	final := basePrice * (1 - p.Discount)
	return math.Round(final*100) / 100
}
