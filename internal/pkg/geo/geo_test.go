package geo

import (
	"math"
	"testing"
)

const (
	schoolLat = -6.207676212766887
	schoolLng = 105.97295421490682
)

func TestHaversineDistanceZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{schoolLat, schoolLng},
		{-89.9, 179.9},
	}
	for _, p := range points {
		if d := HaversineDistance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("HaversineDistance(P, P) = %v, want 0 for P=%v", d, p)
		}
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	d1 := HaversineDistance(schoolLat, schoolLng, -6.3, 106.1)
	d2 := HaversineDistance(-6.3, 106.1, schoolLat, schoolLng)
	if d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineDistanceOneDegreeLatitude(t *testing.T) {
	// 1 degree of latitude on the same meridian is ~111.32 km.
	d := HaversineDistance(0, 105, 1, 105)
	want := 111320.0
	if math.Abs(d-want)/want > 0.01 {
		t.Errorf("1 degree latitude = %v m, want %v m +-1%%", d, want)
	}
}

func TestFenceCheck(t *testing.T) {
	fence := Fence{Lat: schoolLat, Lng: schoolLng, RadiusMeters: 50}

	near := fence.Check(schoolLat+0.00005, schoolLng) // ~5.5 m
	if !near.Within {
		t.Errorf("coordinate ~5.5 m away reported outside fence (distance %v)", near.DistanceMeters)
	}

	far := fence.Check(schoolLat+0.01, schoolLng) // ~1110 m
	if far.Within {
		t.Errorf("coordinate ~1.1 km away reported inside fence (distance %v)", far.DistanceMeters)
	}
	if far.DistanceMeters < 1000 || far.DistanceMeters > 1250 {
		t.Errorf("0.01 degree latitude offset = %v m, want ~1110 m", far.DistanceMeters)
	}
}

func TestOutsideMessage(t *testing.T) {
	r := Result{DistanceMeters: 123.4}
	want := "Jarak Anda (123m) di luar radius sekolah."
	if got := r.OutsideMessage(); got != want {
		t.Errorf("OutsideMessage() = %q, want %q", got, want)
	}
}
