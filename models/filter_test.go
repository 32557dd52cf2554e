package models

import "testing"

func TestFilterNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"zero value", Filter{}, Filter{MinPrice: 0, MaxPrice: 1000}},
		{"trims text", Filter{Search: "  nike ", Brand: "\tLacoste"}, Filter{Search: "nike", Brand: "Lacoste", MaxPrice: 1000}},
		{"negative min", Filter{MinPrice: -5, MaxPrice: 50}, Filter{MinPrice: 0, MaxPrice: 50}},
		{"negative max", Filter{MinPrice: 10, MaxPrice: -1}, Filter{MinPrice: 10, MaxPrice: 1000}},
		{"explicit bounds kept", Filter{MinPrice: 20, MaxPrice: 80}, Filter{MinPrice: 20, MaxPrice: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	l := &Listing{Name: "Classic Pique Polo", Brand: "Lacoste", Price: 95}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"default matches", DefaultFilter(), true},
		{"name match ignores case", Filter{Search: "PIQUE", MaxPrice: 1000}, true},
		{"brand match", Filter{Search: "lacoste", MaxPrice: 1000}, true},
		{"no match", Filter{Search: "nike", MaxPrice: 1000}, false},
		{"inclusive bounds", Filter{MinPrice: 95, MaxPrice: 95}, true},
		{"below min", Filter{MinPrice: 96, MaxPrice: 1000}, false},
		{"above max", Filter{MinPrice: 0, MaxPrice: 94.99}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(l); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}
