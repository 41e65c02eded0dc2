package services

import (
	"cylinder-route-service/internal/domain"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopAt(id string, kind domain.StopKind, lat, lon float64) domain.Stop {
	return domain.Stop{ID: id, Kind: kind, Location: &domain.Coordinates{Lat: lat, Lon: lon}}
}

func ids(stops []domain.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.ID
	}
	return out
}

func TestReorderEmptyMiddle(t *testing.T) {
	seq := NewRouteSequencer()
	start := stopAt("S", domain.StopKindDepot, 0, 0.001)

	got := seq.Reorder(start, []domain.Stop{}, start, domain.OptimizationParams{})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, seq.Reorder(start, nil, start, domain.OptimizationParams{}))
}

func TestReorderPicksNearestFirst(t *testing.T) {
	seq := NewRouteSequencer()
	start := stopAt("S", domain.StopKindDepot, 0, 0.001)

	middle := []domain.Stop{
		stopAt("far", domain.StopKindCustomer, 0, 0.30),
		stopAt("near", domain.StopKindCustomer, 0, 0.01),
		stopAt("mid", domain.StopKindCustomer, 0, 0.10),
	}

	got := seq.Reorder(start, middle, start, domain.OptimizationParams{})
	assert.Equal(t, []string{"near", "mid", "far"}, ids(got))
	// Input is left untouched.
	assert.Equal(t, []string{"far", "near", "mid"}, ids(middle))
}

func TestReorderIsPermutation(t *testing.T) {
	seq := NewRouteSequencer()
	start := stopAt("S", domain.StopKindDepot, -34.60, -58.38)

	middle := []domain.Stop{
		stopAt("a", domain.StopKindCustomer, -34.62, -58.44),
		{ID: "nowhere", Kind: domain.StopKindCustomer},
		stopAt("b", domain.StopKindDistribution, -34.58, -58.40),
		stopAt("zero", domain.StopKindCustomer, 0, 0),
		stopAt("c", domain.StopKindCustomer, -34.70, -58.50),
		stopAt("a", domain.StopKindCustomer, -34.62, -58.44),
	}

	params := []domain.OptimizationParams{
		{},
		{PrioritizeFuel: true},
		{AvoidTraffic: true, UseRealTimeData: true},
		{PrioritizeFuel: true, AvoidTraffic: true, OptimizeForDistance: true},
	}

	for _, p := range params {
		got := seq.Reorder(start, middle, start, p)
		require.Len(t, got, len(middle))

		want := ids(middle)
		have := ids(got)
		sort.Strings(want)
		sort.Strings(have)
		assert.Equal(t, want, have)

		// Unscorable stops keep their relative order at the tail.
		assert.Equal(t, []string{"nowhere", "zero"}, ids(got[len(got)-2:]))
	}
}

func TestReorderStartWithoutLocation(t *testing.T) {
	seq := NewRouteSequencer()
	start := domain.Stop{ID: "S", Kind: domain.StopKindDepot}

	middle := []domain.Stop{
		stopAt("b", domain.StopKindCustomer, 0, 0.2),
		stopAt("a", domain.StopKindCustomer, 0, 0.1),
	}

	got := seq.Reorder(start, middle, start, domain.OptimizationParams{})
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestReorderPrefersStopsWithEmpties(t *testing.T) {
	seq := NewRouteSequencer()
	start := stopAt("S", domain.StopKindDepot, 0, 0)
	start.Location.Lon = 0.0001

	plain := stopAt("plain", domain.StopKindCustomer, 0, 0.0500)
	busy := stopAt("busy", domain.StopKindCustomer, 0, 0.0540)
	busy.EmptyCylinders = 10

	got := seq.Reorder(start, []domain.Stop{plain, busy}, start, domain.OptimizationParams{})
	assert.Equal(t, "busy", got[0].ID)
}

func TestReorderCustomWeighting(t *testing.T) {
	seq := &RouteSequencer{Weighting: func(s domain.Stop, _ domain.OptimizationParams) float64 {
		if s.ID == "far" {
			return 0.01
		}
		return 1
	}}
	start := stopAt("S", domain.StopKindDepot, 0, 0.001)

	got := seq.Reorder(start, []domain.Stop{
		stopAt("near", domain.StopKindCustomer, 0, 0.01),
		stopAt("far", domain.StopKindCustomer, 0, 0.30),
	}, start, domain.OptimizationParams{})
	assert.Equal(t, []string{"far", "near"}, ids(got))
}

func TestOptimizeRoutePinsEndpoints(t *testing.T) {
	seq := NewRouteSequencer()

	route := []domain.Stop{
		stopAt("start", domain.StopKindDepot, 0, 0.001),
		stopAt("far", domain.StopKindCustomer, 0, 0.30),
		stopAt("near", domain.StopKindCustomer, 0, 0.01),
		stopAt("end", domain.StopKindDepot, 0, 0.5),
	}

	got := seq.OptimizeRoute(route, domain.OptimizationParams{})
	assert.Equal(t, []string{"start", "near", "far", "end"}, ids(got))

	short := seq.OptimizeRoute(route[:2], domain.OptimizationParams{})
	assert.Equal(t, []string{"start", "far"}, ids(short))
}
