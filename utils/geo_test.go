package utils

import (
	"math"
	"testing"
)

func TestHaversineKmKnownDistances(t *testing.T) {
	// One degree of latitude is roughly 111.2 km everywhere.
	testCases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 13.7563, 100.5018, 13.7563, 100.5018, 0, 0.001},
		{"five km north", 13.7563, 100.5018, 13.7563 + 5.0/111.195, 100.5018, 5, 0.05},
		{"fifteen km north", 13.7563, 100.5018, 13.7563 + 15.0/111.195, 100.5018, 15, 0.1},
		{"bangkok to chiang mai", 13.7563, 100.5018, 18.7883, 98.9853, 581, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			if math.Abs(got-tc.wantKm) > tc.tolerance {
				t.Errorf("expected ~%.1f km, got %.3f km", tc.wantKm, got)
			}
		})
	}
}

func TestHaversineKmRadiusFiltering(t *testing.T) {
	centerLat, centerLng := 13.7563, 100.5018
	radius := 10.0

	near := HaversineKm(centerLat, centerLng, centerLat+5.0/111.195, centerLng)
	far := HaversineKm(centerLat, centerLng, centerLat+15.0/111.195, centerLng)

	if near > radius {
		t.Errorf("school 5 km away should be inside a 10 km radius, distance was %.3f", near)
	}
	if far <= radius {
		t.Errorf("school 15 km away should be outside a 10 km radius, distance was %.3f", far)
	}
	if near >= far {
		t.Errorf("nearer school must sort first: %.3f vs %.3f", near, far)
	}
}

func TestHaversineKmSymmetry(t *testing.T) {
	forward := HaversineKm(13.7563, 100.5018, 18.7883, 98.9853)
	backward := HaversineKm(18.7883, 98.9853, 13.7563, 100.5018)
	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("distance should be symmetric: %.9f vs %.9f", forward, backward)
	}
}
