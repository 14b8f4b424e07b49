package cubesim

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// GeoPoint is a sub-satellite point on a spherical Earth, in degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64 // ]-180, 180]
}

// SubSatellitePoint returns the geocentric latitude and longitude below the inertial position.
// The Earth orientation only accounts for the mean sidereal time.
func SubSatellitePoint(R []float64, dt time.Time) GeoPoint {
	θgst := sidereal.Mean(julian.TimeToJD(dt.UTC())).Rad()
	ecef := ECI2ECEF(R, θgst)
	r := norm(ecef)
	if r == 0 {
		return GeoPoint{}
	}
	lat := math.Asin(ecef[2]/r) / deg2rad
	return GeoPoint{lat, Rad2deg180(math.Atan2(ecef[1], ecef[0]))}
}
