package cubesim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding scenario keys,
// e.g. CUBESIM_ORBIT_ALTITUDE for orbit.altitude.
const EnvPrefix = "CUBESIM"

// Scenario is everything needed to set up a mission, as read from a TOML file.
type Scenario struct {
	Origin       string    // central body
	Altitude     float64   // km
	Inclination  float64   // degrees
	Epoch        time.Time // zero if unset
	Timing       DurationConfig
	Power        PowerConfig
	Ephemeris    string // meeus, vsop87 or fixed
	VSOP87Dir    string
	SunDirection []float64 // for the fixed ephemeris
	Shadow       string    // cylindrical or conical
	Propagator   string    // analytic or rk4
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("orbit.origin", "earth")
	v.SetDefault("orbit.altitude", 500.0)
	v.SetDefault("orbit.inclination", 51.0)
	v.SetDefault("mission.duration", "240m")
	v.SetDefault("mission.step", StepSize.String())
	v.SetDefault("power.payload", 5.0)
	v.SetDefault("power.bus", 0.0)
	v.SetDefault("power.panel_area", 0.1)
	v.SetDefault("power.efficiency", 0.25)
	v.SetDefault("power.flux", SolarFlux)
	v.SetDefault("power.battery", 20.0)
	v.SetDefault("ephemeris.model", "meeus")
	v.SetDefault("ephemeris.sun", []string{"1", "0", "0"})
	v.SetDefault("eclipse.model", "cylindrical")
	v.SetDefault("propagator.method", "analytic")
}

// LoadScenario reads the scenario file at path. An empty path only uses the defaults and
// the environment.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Scenario{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return scenarioFrom(v)
}

func scenarioFrom(v *viper.Viper) (s Scenario, err error) {
	s.Origin = v.GetString("orbit.origin")
	s.Altitude = v.GetFloat64("orbit.altitude")
	s.Inclination = v.GetFloat64("orbit.inclination")
	if s.Epoch, err = readJDEorTime(v, "orbit.epoch"); err != nil {
		return
	}
	if s.Timing.Duration, err = readDuration(v, "mission.duration", time.Minute); err != nil {
		return
	}
	if s.Timing.Step, err = readDuration(v, "mission.step", time.Second); err != nil {
		return
	}
	s.Power = PowerConfig{
		PanelArea:       v.GetFloat64("power.panel_area"),
		PanelEfficiency: v.GetFloat64("power.efficiency"),
		PayloadPower:    v.GetFloat64("power.payload"),
		BusPower:        v.GetFloat64("power.bus"),
		SolarFlux:       v.GetFloat64("power.flux"),
		BatteryCapacity: v.GetFloat64("power.battery"),
	}
	s.Ephemeris = strings.ToLower(v.GetString("ephemeris.model"))
	s.VSOP87Dir = v.GetString("ephemeris.vsop87_dir")
	for _, c := range v.GetStringSlice("ephemeris.sun") {
		f, perr := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if perr != nil {
			return s, fmt.Errorf("ephemeris.sun: %w", perr)
		}
		s.SunDirection = append(s.SunDirection, f)
	}
	s.Shadow = v.GetString("eclipse.model")
	s.Propagator = strings.ToLower(v.GetString("propagator.method"))
	return
}

// readDuration reads either a Go duration string ("240m") or a bare number of units,
// so that `duration = 240` means 240 minutes and `step = 30` means 30 seconds.
func readDuration(v *viper.Viper, key string, unit time.Duration) (time.Duration, error) {
	var n float64
	switch val := v.Get(key).(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return val, nil
	case int64:
		n = float64(val)
	case int:
		n = float64(val)
	case float64:
		n = val
	default:
		raw := strings.TrimSpace(v.GetString(key))
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			d, derr := time.ParseDuration(raw)
			if derr != nil {
				return 0, fmt.Errorf("could not understand `%s`: %w", key, derr)
			}
			return d, nil
		}
		n = f
	}
	if !finite(n) || math.Abs(n)*float64(unit) > math.MaxInt64 {
		return 0, fmt.Errorf("could not understand `%s`: %v out of range", key, n)
	}
	return time.Duration(n * float64(unit)), nil
}

// readJDEorTime reads either a Julian date, a TOML date time or an RFC3339 string.
// Unset keys return the zero time.
func readJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	switch val := v.Get(key).(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val.UTC(), nil
	case float64:
		return julian.JDToTime(val).UTC(), nil
	case int64:
		return julian.JDToTime(float64(val)).UTC(), nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return time.Time{}, nil
	}
	if jde, err := strconv.ParseFloat(raw, 64); err == nil {
		return julian.JDToTime(jde).UTC(), nil
	}
	dt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not understand `%s`: %w", key, err)
	}
	return dt.UTC(), nil
}

// Orbit returns the circular orbit of this scenario. An empty origin is the Earth.
func (s Scenario) Orbit() (Orbit, error) {
	body := Earth
	if s.Origin != "" {
		var err error
		if body, err = CelestialObjectFromString(s.Origin); err != nil {
			return Orbit{}, fmt.Errorf("orbit.origin: %w", err)
		}
	}
	if body.Equals(Sun) {
		return Orbit{}, fmt.Errorf("orbit.origin: %s cannot shadow itself", body)
	}
	return NewCircularOrbitAround(body, s.Altitude, s.Inclination, s.Epoch)
}

// Mission returns the mission of this scenario.
func (s Scenario) Mission() (*Mission, error) {
	o, err := s.Orbit()
	if err != nil {
		return nil, err
	}
	m := NewMission(o, s.Timing, s.Power)
	switch s.Ephemeris {
	case "", "meeus":
		m.Ephemeris = MeeusEphemeris{}
	case "vsop87":
		m.Ephemeris = NewVSOP87Ephemeris(s.VSOP87Dir)
	case "fixed":
		m.Ephemeris = FixedEphemeris{s.SunDirection}
	default:
		return nil, fmt.Errorf("unknown ephemeris '%s'", s.Ephemeris)
	}
	if m.Shadow, err = ShadowModelFromString(s.Shadow); err != nil {
		return nil, err
	}
	switch s.Propagator {
	case "", "analytic":
		m.Propagator = AnalyticPropagator{}
	case "rk4":
		m.Propagator = RK4Propagator{}
	default:
		return nil, fmt.Errorf("unknown propagator '%s'", s.Propagator)
	}
	return m, nil
}
