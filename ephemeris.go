package cubesim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
)

// Ephemeris resolves the geocentric direction of the Sun.
type Ephemeris interface {
	// SunDirection returns the unit vector from the Earth to the Sun in the inertial frame.
	SunDirection(dt time.Time) ([]float64, error)
}

// MeeusEphemeris uses the low precision solar coordinates of Meeus, chapter 25.
// It needs no data file. A non-zero ValidFrom or ValidUntil restricts the epochs it serves.
//
// The coordinates are apparent, referred to the true equator of date, and are evaluated
// at the UTC Julian day rather than at JDE. Read as a fixed inertial direction they drift
// from J2000 with precession, about 0.014 degree per year, so the error stays well under a
// degree for epochs within decades of J2000 and does not move eclipse boundaries by more
// than a few seconds.
type MeeusEphemeris struct {
	ValidFrom, ValidUntil time.Time
}

// SunDirection implements the Ephemeris interface.
func (e MeeusEphemeris) SunDirection(dt time.Time) ([]float64, error) {
	if err := checkWindow("meeus", dt, e.ValidFrom, e.ValidUntil); err != nil {
		return nil, err
	}
	α, δ := solar.ApparentEquatorial(julian.TimeToJD(dt.UTC()))
	return equatorialUnit("meeus", dt, α.Rad(), δ.Rad())
}

// VSOP87Ephemeris uses the full VSOP87 theory for the Earth, loaded from Dir on first use.
// The same frame approximation as MeeusEphemeris applies.
type VSOP87Ephemeris struct {
	Dir                   string
	ValidFrom, ValidUntil time.Time
	earth                 *pp.V87Planet
	loadErr               error
}

// NewVSOP87Ephemeris returns a VSOP87 ephemeris reading the VSOP87B files in dir.
func NewVSOP87Ephemeris(dir string) *VSOP87Ephemeris {
	return &VSOP87Ephemeris{Dir: dir}
}

// SunDirection implements the Ephemeris interface.
func (e *VSOP87Ephemeris) SunDirection(dt time.Time) ([]float64, error) {
	if err := checkWindow("vsop87", dt, e.ValidFrom, e.ValidUntil); err != nil {
		return nil, err
	}
	if e.earth == nil && e.loadErr == nil {
		e.earth, e.loadErr = pp.LoadPlanetPath(pp.Earth, e.Dir)
		if e.loadErr != nil {
			e.loadErr = fmt.Errorf("could not load Earth from %s: %w", e.Dir, e.loadErr)
		}
	}
	if e.loadErr != nil {
		return nil, &EphemerisUnavailableError{DT: dt, Source: "vsop87", Err: e.loadErr}
	}
	α, δ, _ := solar.ApparentEquatorialVSOP87(e.earth, julian.TimeToJD(dt.UTC()))
	return equatorialUnit("vsop87", dt, α.Rad(), δ.Rad())
}

// FixedEphemeris always returns the same Sun direction, e.g. to force a geometry.
type FixedEphemeris struct {
	Direction []float64
}

// SunDirection implements the Ephemeris interface.
func (e FixedEphemeris) SunDirection(dt time.Time) ([]float64, error) {
	if len(e.Direction) != 3 || !finite(e.Direction...) || norm(e.Direction) == 0 {
		return nil, &EphemerisUnavailableError{DT: dt, Source: "fixed", Err: errors.New("direction must be a non-zero 3-vector")}
	}
	return unit(e.Direction), nil
}

func checkWindow(source string, dt, from, until time.Time) error {
	if dt.IsZero() {
		return &EphemerisUnavailableError{DT: dt, Source: source, Err: errors.New("zero time")}
	}
	if !from.IsZero() && dt.Before(from) {
		return &EphemerisUnavailableError{DT: dt, Source: source, Err: fmt.Errorf("before %s", from.UTC())}
	}
	if !until.IsZero() && dt.After(until) {
		return &EphemerisUnavailableError{DT: dt, Source: source, Err: fmt.Errorf("after %s", until.UTC())}
	}
	return nil
}

// equatorialUnit returns the unit vector for the right ascension α and declination δ in radians.
func equatorialUnit(source string, dt time.Time, α, δ float64) ([]float64, error) {
	sα, cα := math.Sincos(α)
	sδ, cδ := math.Sincos(δ)
	u := []float64{cδ * cα, cδ * sα, sδ}
	if !finite(u...) {
		return nil, &EphemerisUnavailableError{DT: dt, Source: source, Err: errors.New("non finite solar coordinates")}
	}
	return u, nil
}
