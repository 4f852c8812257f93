package geo

import (
	"fmt"
	"math"
)

// HaversineDistance menghitung jarak antara dua titik koordinat dalam Meter.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // Jari-jari bumi dalam Meter

	// Konversi ke Radian
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	// Rumus Haversine
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Fence is a circular geofence around a fixed reference coordinate.
type Fence struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// Result carries the raw distance alongside the within/outside verdict so the
// caller can show it to the user.
type Result struct {
	DistanceMeters float64
	Within         bool
}

// Check evaluates a captured coordinate against the fence.
func (f Fence) Check(lat, lng float64) Result {
	d := HaversineDistance(lat, lng, f.Lat, f.Lng)
	return Result{
		DistanceMeters: d,
		Within:         d <= f.RadiusMeters,
	}
}

// OutsideMessage is the user-facing message shown when a coordinate falls
// outside the fence. The wording is part of the client contract.
func (r Result) OutsideMessage() string {
	return fmt.Sprintf("Jarak Anda (%dm) di luar radius sekolah.", int(math.Round(r.DistanceMeters)))
}
