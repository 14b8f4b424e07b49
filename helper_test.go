package cubesim

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

const eps = 1e-9

// testEpoch is the 2024 March equinox, when the Sun is along the ECI x axis.
var testEpoch = time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], eps, eps) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in Radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}

func mustOrbit(altitude, inclination float64) Orbit {
	o, err := NewCircularOrbit(altitude, inclination, testEpoch)
	if err != nil {
		panic(err)
	}
	return o
}

// alwaysDark forces a permanent eclipse.
type alwaysDark struct{}

func (alwaysDark) Sunlit(position, sunDirection []float64, body CelestialObject) bool { return false }
func (alwaysDark) String() string                                                     { return "dark" }
