package cubesim

import (
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

/* Handles the orbit and power budget simulation. */

// DurationConfig defines the simulated window and its sampling.
type DurationConfig struct {
	Duration time.Duration
	Step     time.Duration
}

// DefaultDurationConfig returns four hours sampled every StepSize.
func DefaultDurationConfig() DurationConfig {
	return DurationConfig{240 * time.Minute, StepSize}
}

// Mission defines a simulation run and its collaborators.
type Mission struct {
	Orbit      Orbit
	Timing     DurationConfig
	Power      PowerConfig
	Propagator Propagator
	Ephemeris  Ephemeris
	Shadow     ShadowModel
	logger     kitlog.Logger
	metrics    *Metrics
}

// NewMission returns a mission using the analytic propagator, the Meeus solar ephemeris
// and the cylindrical shadow.
func NewMission(o Orbit, d DurationConfig, p PowerConfig) *Mission {
	return &Mission{
		Orbit:      o,
		Timing:     d,
		Power:      p,
		Propagator: AnalyticPropagator{},
		Ephemeris:  MeeusEphemeris{},
		Shadow:     Cylindrical{},
		logger:     kitlog.NewNopLogger(),
	}
}

// WithLogger sets the logger of this mission.
func (m *Mission) WithLogger(logger kitlog.Logger) *Mission {
	m.logger = logger
	return m
}

// WithMetrics sets the metrics this mission reports to.
func (m *Mission) WithMetrics(metrics *Metrics) *Mission {
	m.metrics = metrics
	return m
}

// Result holds the aligned series of a run. Every slice has one entry per time step.
type Result struct {
	ID          uuid.UUID
	Orbit       OrbitSummary
	Grid        TimeGrid
	Times       []time.Time
	Trajectory  []TrajectorySample
	Sunlit      []bool
	Power       []PowerSample
	SoC         []float64 // Wh
	GroundTrack []GeoPoint
	Report      Report
}

// Len returns the number of time steps.
func (r *Result) Len() int {
	return len(r.Times)
}

// Run runs the default mission.
func Run(o Orbit, d DurationConfig, p PowerConfig) (*Result, error) {
	return NewMission(o, d, p).Run()
}

// Run propagates the orbit, classifies the illumination, computes the power balance and
// folds it into the battery state of charge. The first error of any stage aborts the run.
func (m *Mission) Run() (*Result, error) {
	start := time.Now()
	id := uuid.New()
	logger := kitlog.With(m.logger, "run", id)
	r, err := m.run(id, logger)
	if err != nil {
		level.Error(logger).Log("subsys", "mission", "err", err)
		r = nil
	}
	m.metrics.Observe(r, err, time.Since(start))
	return r, err
}

func (m *Mission) run(id uuid.UUID, logger kitlog.Logger) (*Result, error) {
	if m.Orbit.SemiMajorAxis() <= m.Orbit.Origin.Radius {
		return nil, invalidParam("semi_major_axis", m.Orbit.SemiMajorAxis(), "orbit must be above the surface")
	}
	prop, eph, shadow := m.Propagator, m.Ephemeris, m.Shadow
	if eph == nil {
		eph = MeeusEphemeris{}
	}
	if shadow == nil {
		shadow = Cylindrical{}
	}
	traj, err := PropagateWith(prop, m.Orbit, m.Timing.Duration, m.Timing.Step)
	if err != nil {
		return nil, err
	}
	if err := m.Power.Validate(); err != nil {
		return nil, err
	}
	n := traj.Len()
	level.Debug(logger).Log("subsys", "prop", "orbit", m.Orbit, "period", m.Orbit.Period(), "samples", n, "shadow", shadow)

	r := &Result{
		ID:          id,
		Orbit:       m.Orbit.Summary(),
		Grid:        traj.Grid,
		Times:       make([]time.Time, n),
		Trajectory:  make([]TrajectorySample, n),
		Sunlit:      make([]bool, n),
		GroundTrack: make([]GeoPoint, n),
	}
	for i, s := range traj.All() {
		ŝ, err := eph.SunDirection(s.DT)
		if err != nil {
			return nil, err
		}
		r.Times[i] = s.DT
		r.Trajectory[i] = s
		r.Sunlit[i] = shadow.Sunlit(s.R, ŝ, m.Orbit.Origin)
		r.GroundTrack[i] = SubSatellitePoint(s.R, s.DT)
	}

	r.Power = m.Power.PowerProfile(r.Sunlit)
	if r.SoC, err = SimulateBattery(r.Power, m.Timing.Step, m.Power.BatteryCapacity); err != nil {
		return nil, err
	}
	if r.Report, err = NewReport(r.Times, r.Sunlit, r.Power, r.SoC, m.Timing.Step, m.Power); err != nil {
		return nil, err
	}

	level.Info(logger).Log("subsys", "eps", "status", "finished", "samples", n, "eclipses", len(r.Report.Eclipses),
		"eclipse_fraction", r.Report.EclipseFraction, "min_soc(Wh)", r.Report.MinSoC, "final_soc(Wh)", r.Report.FinalSoC)
	if r.Report.LowBattery {
		level.Warn(logger).Log("subsys", "eps", "low_battery", r.Times[r.Report.FirstLowIndex], "threshold(Wh)", r.Report.LowBatteryThreshold)
	}
	return r, nil
}
