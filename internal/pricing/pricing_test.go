package pricing

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		customerType string
		wantPolicy   string
	}{
		{"regular", "regular", "Regular"},
		{"member", "member", "Member"},
		{"student", "student", "Student"},
		{"senior", "senior", "Senior"},
		{"uppercase matches", "MEMBER", "Member"},
		{"mixed case matches", "StUdEnT", "Student"},
		{"unknown falls back to regular", "vip", "Regular"},
		{"empty falls back to regular", "", "Regular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.customerType); got.Name != tt.wantPolicy {
				t.Errorf("Resolve(%q) = %s, want %s", tt.customerType, got.Name, tt.wantPolicy)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name         string
		customerType string
		basePrice    float64
		want         float64
	}{
		{"regular passthrough", "regular", 500.0, 500.00},
		{"member 10 percent", "member", 300.0, 270.00},
		{"student 15 percent", "student", 300.0, 255.00},
		{"senior 20 percent", "senior", 300.0, 240.00},
		{"half cent rounds up", "member", 299.995, 270.00},
		{"unknown category keeps base price", "platinum", 300.0, 300.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.customerType).Apply(tt.basePrice); got != tt.want {
				t.Errorf("Apply(%v) for %q = %v, want %v", tt.basePrice, tt.customerType, got, tt.want)
			}
		})
	}
}
