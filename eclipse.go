package cubesim

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// IsSunlit returns whether the position (km) is illuminated using a cylindrical Earth shadow.
// The spacecraft is shadowed when it is on the night side (negative projection on the Sun
// direction) and closer to the Earth-Sun line than earthRadius. A perpendicular distance
// equal to earthRadius is sunlit.
func IsSunlit(position, sunDirection []float64, earthRadius float64) bool {
	ŝ := unit(sunDirection)
	s := dot(position, ŝ)
	if s >= 0 {
		return true
	}
	return perpendicular(position, ŝ, s) >= earthRadius
}

// perpendicular returns the distance from position to the line directed by ŝ, where s is the
// projection of position on ŝ.
func perpendicular(position, ŝ []float64, s float64) float64 {
	d := make([]float64, 3)
	for i := 0; i < 3; i++ {
		d[i] = position[i] - s*ŝ[i]
	}
	return norm(d)
}

// ShadowModel classifies a position as sunlit or shadowed.
type ShadowModel interface {
	Sunlit(position, sunDirection []float64, body CelestialObject) bool
	String() string
}

// Cylindrical is the cylindrical shadow model (see IsSunlit).
type Cylindrical struct{}

// Sunlit implements the ShadowModel interface.
func (Cylindrical) Sunlit(position, sunDirection []float64, body CelestialObject) bool {
	return IsSunlit(position, sunDirection, body.Radius)
}

func (Cylindrical) String() string {
	return "cylindrical"
}

// Conical only shadows the umbra: the cone tangent to both the Sun and the body, which
// narrows behind the body. The Sun is assumed to be at 1 AU.
type Conical struct{}

// Sunlit implements the ShadowModel interface.
func (Conical) Sunlit(position, sunDirection []float64, body CelestialObject) bool {
	ŝ := unit(sunDirection)
	s := dot(position, ŝ)
	if s >= 0 {
		return true
	}
	α := math.Asin((Sun.Radius - body.Radius) / AU) // umbra half angle
	umbra := body.Radius + s*math.Tan(α)            // s is negative behind the body
	if umbra <= 0 {
		return true
	}
	return perpendicular(position, ŝ, s) >= umbra
}

func (Conical) String() string {
	return "conical"
}

// ShadowModelFromString returns the shadow model from its name.
func ShadowModelFromString(name string) (ShadowModel, error) {
	switch strings.ToLower(name) {
	case "", "cylindrical":
		return Cylindrical{}, nil
	case "conical":
		return Conical{}, nil
	default:
		return nil, fmt.Errorf("unknown shadow model '%s'", name)
	}
}

// EclipseInterval is a contiguous run of shadowed samples.
type EclipseInterval struct {
	Start, End  int // sample indexes, inclusive
	Entry, Exit time.Time
}

// Duration returns the time spent between the first and last shadowed samples.
func (e EclipseInterval) Duration() time.Duration {
	return e.Exit.Sub(e.Entry)
}

// EclipseIntervals returns the shadowed runs of the illumination series.
func EclipseIntervals(sunlit []bool, times []time.Time) []EclipseInterval {
	var intervals []EclipseInterval
	start := -1
	for i, lit := range sunlit {
		if !lit && start < 0 {
			start = i
		}
		if start >= 0 && (lit || i == len(sunlit)-1) {
			end := i - 1
			if !lit {
				end = i
			}
			intervals = append(intervals, EclipseInterval{start, end, times[start], times[end]})
			start = -1
		}
	}
	return intervals
}
