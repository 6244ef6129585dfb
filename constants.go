package guidance

import "math"

// Earth constants in the English units used by most lessons.
const (
	// EarthRadiusFt is the equatorial radius of the Earth in feet.
	EarthRadiusFt = 2.0926e7
	// GMFt is the gravitational parameter of the Earth in ft^3/s^2.
	GMFt = 1.4077e16
	// G is the gravity acceleration at sea level in ft/s^2.
	G = 32.2
)

// Earth constants in the metric units used by the Kepler propagator.
const (
	// EarthRadiusKm is the equatorial radius of the Earth in kilometers.
	EarthRadiusKm = 6378.14
	// GMKm is the gravitational parameter of the Earth in km^3/s^2.
	GMKm = 3.986e5
)

// Unit conversions.
const (
	FtPerKm  = 3280.0
	FtPerNmi = 6076.0
	Deg2Rad  = math.Pi / 180
	Rad2Deg  = 180 / math.Pi
	HalfPi   = math.Pi / 2
)

// Km converts feet to kilometers.
func Km(ft float64) float64 {
	return ft / FtPerKm
}

// Ft converts kilometers to feet.
func Ft(km float64) float64 {
	return km * FtPerKm
}
