package domain

import (
	"errors"
	"math"
	"testing"
)

func TestVehicleCapacity(t *testing.T) {
	v, err := NewVehicle("truck-1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := v.Capacity(); got != 500 {
		t.Errorf("Capacity() = %v, want 500", got)
	}

	var unknown *Vehicle
	if got := unknown.Capacity(); got != 0 {
		t.Errorf("nil vehicle Capacity() = %v, want 0", got)
	}

	profile := LoadProfile{MaxWeight: 456}
	if profile.ExceedsCapacity(v.Capacity()) {
		t.Errorf("456kg should fit in a 500kg vehicle")
	}
	if !(LoadProfile{MaxWeight: 500.5}).ExceedsCapacity(v.Capacity()) {
		t.Errorf("500.5kg should exceed a 500kg vehicle")
	}
	if profile.ExceedsCapacity(unknown.Capacity()) {
		t.Errorf("unknown capacity should never report exceeded")
	}
}

func TestNewVehicleRejectsInvalidCapacity(t *testing.T) {
	for _, c := range []float64{-1, math.NaN()} {
		if _, err := NewVehicle("x", c); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("capacity %v: err = %v, want ErrInvalidParameter", c, err)
		}
	}
}

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"buenos aires", Coordinates{Lat: -34.6037, Lon: -58.3816}, true},
		{"null island", Coordinates{}, false},
		{"nan lat", Coordinates{Lat: math.NaN(), Lon: 10}, false},
		{"out of range", Coordinates{Lat: 91, Lon: 10}, false},
		{"inf lon", Coordinates{Lat: 10, Lon: math.Inf(1)}, false},
	}

	for _, tc := range cases {
		if got := tc.c.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseStopKind(t *testing.T) {
	k, err := ParseStopKind(" customer ")
	if err != nil || k != StopKindCustomer {
		t.Fatalf("ParseStopKind = %q, %v", k, err)
	}
	if !k.Delivers() || StopKindDepot.Delivers() {
		t.Errorf("Delivers() mismatch")
	}
	if _, err := ParseStopKind("warehouse"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown kind err = %v", err)
	}
}
