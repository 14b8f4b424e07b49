package cubesim

import (
	"fmt"
	"math"
	"time"
)

// Orbit defines a circular orbit via its orbital elements at a given epoch.
// Orbit is a value type: advancing it returns a new Orbit.
type Orbit struct {
	a, e, i, Ω, ω, ν float64
	epoch            time.Time
	Origin           CelestialObject // Orbit origin
}

// NewCircularOrbit returns a circular orbit around the Earth at the provided altitude (km)
// and inclination (degrees). RAAN and argument of periapsis are zero, and the spacecraft
// is at the ascending node (ν=0) at the epoch.
func NewCircularOrbit(altitude, inclination float64, epoch time.Time) (Orbit, error) {
	return NewCircularOrbitAround(Earth, altitude, inclination, epoch)
}

// NewCircularOrbitAround is the same as NewCircularOrbit for any central body.
func NewCircularOrbitAround(c CelestialObject, altitude, inclination float64, epoch time.Time) (Orbit, error) {
	if !finite(altitude) || altitude <= 0 {
		return Orbit{}, invalidParam("altitude", altitude, "must be a positive number of km")
	}
	a := c.Radius + altitude
	if a <= c.Radius {
		return Orbit{}, invalidParam("altitude", altitude, fmt.Sprintf("orbit intersects %s", c.Name))
	}
	if !finite(inclination) || inclination < 0 || inclination > 180 {
		return Orbit{}, invalidParam("inclination", inclination, "must be within [0, 180] degrees")
	}
	if epoch.IsZero() {
		return Orbit{}, invalidParam("epoch", 0, "an explicit epoch is required")
	}
	return Orbit{a: a, e: 0, i: Deg2rad(inclination), epoch: epoch.UTC(), Origin: c}, nil
}

// SemiMajorAxis returns a in km.
func (o Orbit) SemiMajorAxis() float64 {
	return o.a
}

// Eccentricity returns e, which is always zero for the orbits built here.
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// Inclination returns the inclination in degrees.
func (o Orbit) Inclination() float64 {
	return o.i / deg2rad
}

// Epoch returns the time at which these elements are defined.
func (o Orbit) Epoch() time.Time {
	return o.epoch
}

// Altitude returns the altitude above the mean radius of the origin.
func (o Orbit) Altitude() float64 {
	return o.a - o.Origin.Radius
}

// ArgLatitudeU returns the argument of latitude.
func (o Orbit) ArgLatitudeU() float64 {
	return math.Mod(o.ν+o.ω, 2*math.Pi)
}

// SemiParameter returns the semi parameter p.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// MeanMotion returns the constant angular rate in rad/s.
func (o Orbit) MeanMotion() float64 {
	return math.Sqrt(o.Origin.μ / (o.a * o.a * o.a))
}

// Period returns the period of this orbit.
func (o Orbit) Period() time.Duration {
	seconds := 2 * math.Pi / o.MeanMotion()
	return time.Duration(seconds * float64(time.Second))
}

// VNorm returns the circular velocity.
func (o Orbit) VNorm() float64 {
	return math.Sqrt(o.Origin.μ / o.a)
}

// At returns the orbit advanced to the provided time using the mean motion.
// The mean and true anomalies coincide since the orbit is circular.
func (o Orbit) At(dt time.Time) Orbit {
	Δt := dt.Sub(o.epoch).Seconds()
	ν := math.Mod(o.ν+o.MeanMotion()*Δt, 2*math.Pi)
	if ν < 0 {
		ν += 2 * math.Pi
	}
	o.ν = ν
	o.epoch = dt.UTC()
	return o
}

// RV returns the inertial position (km) and velocity (km/s) vectors.
func (o Orbit) RV() ([]float64, []float64) {
	p := o.SemiParameter()
	sinν, cosν := math.Sincos(o.ν)
	R := make([]float64, 3)
	R[0] = p * cosν / (1 + o.e*cosν)
	R[1] = p * sinν / (1 + o.e*cosν)
	R = PQW2ECI(o.i, o.ω, o.Ω, R)

	V := make([]float64, 3)
	V[0] = -math.Sqrt(o.Origin.μ/p) * sinν
	V[1] = math.Sqrt(o.Origin.μ/p) * (o.e + cosν)
	V = PQW2ECI(o.i, o.ω, o.Ω, V)
	return R, V
}

// R returns the radius vector.
func (o Orbit) R() []float64 {
	R, _ := o.RV()
	return R
}

// String implements the stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f u=%.3f @ %s", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ArgLatitudeU()), o.epoch.Format(time.RFC3339))
}

// OrbitSummary is what gets reported about the orbit of a run.
type OrbitSummary struct {
	SemiMajorAxis float64   `json:"semi_major_axis_km"`
	Eccentricity  float64   `json:"eccentricity"`
	Inclination   float64   `json:"inclination_deg"`
	Period        float64   `json:"period_min"`
	Epoch         time.Time `json:"epoch"`
}

// Summary returns the orbit summary.
func (o Orbit) Summary() OrbitSummary {
	return OrbitSummary{o.a, o.e, o.Inclination(), o.Period().Minutes(), o.epoch}
}
