package cubesim

import (
	"iter"
	"math"
	"time"

	"github.com/ChristopherRabotin/cubesim/integrator"
)

const (
	// StepSize is the default step size of propagation.
	StepSize = 30 * time.Second
	// MaxRK4Step is the largest internal step used by the RK4 propagator.
	MaxRK4Step = 10 * time.Second
)

// TrajectorySample is one propagated state in the inertial frame centered on the origin.
type TrajectorySample struct {
	Index int
	DT    time.Time
	R     []float64 // km
	V     []float64 // km/s
}

// Propagator generates the trajectory of an orbit over a time grid.
// Implementations must be restartable: every call iterates from the orbit epoch.
type Propagator interface {
	Samples(o Orbit, g TimeGrid) iter.Seq2[int, TrajectorySample]
}

// AnalyticPropagator advances the circular orbit by its mean motion.
type AnalyticPropagator struct{}

// Samples implements the Propagator interface.
func (AnalyticPropagator) Samples(o Orbit, g TimeGrid) iter.Seq2[int, TrajectorySample] {
	return func(yield func(int, TrajectorySample) bool) {
		for i, dt := range g.All() {
			R, V := o.At(dt).RV()
			if !yield(i, TrajectorySample{i, dt, R, V}) {
				return
			}
		}
	}
}

// RK4Propagator numerically integrates the unperturbed two body problem.
type RK4Propagator struct {
	MaxStep time.Duration // Defaults to MaxRK4Step.
}

// Samples implements the Propagator interface.
func (p RK4Propagator) Samples(o Orbit, g TimeGrid) iter.Seq2[int, TrajectorySample] {
	return func(yield func(int, TrajectorySample) bool) {
		R, V := o.At(g.Start).RV()
		if !yield(0, TrajectorySample{0, g.Start, R, V}) || g.N == 1 {
			return
		}
		maxStep := p.MaxStep
		if maxStep <= 0 {
			maxStep = MaxRK4Step
		}
		sub := uint64(math.Ceil(float64(g.Step) / float64(maxStep)))
		state := make([]float64, 6)
		copy(state[:3], R)
		copy(state[3:], V)
		tb := &twoBody{
			μ:     o.Origin.GM(),
			state: state,
			sub:   sub,
			total: uint64(g.N-1) * sub,
		}
		tb.emit = func(i int, s []float64) bool {
			R := []float64{s[0], s[1], s[2]}
			V := []float64{s[3], s[4], s[5]}
			return yield(i, TrajectorySample{i, g.At(i), R, V})
		}
		integrator.NewRK4(0, g.Step.Seconds()/float64(sub), tb).Solve()
	}
}

// twoBody is the integrable of the RK4 propagator.
type twoBody struct {
	μ      float64
	state  []float64
	sub    uint64 // integration steps per grid step
	total  uint64
	halted bool
	emit   func(i int, s []float64) bool
}

func (b *twoBody) GetState() []float64 {
	return b.state
}

func (b *twoBody) SetState(i uint64, s []float64) {
	b.state = s
	if (i+1)%b.sub == 0 && !b.emit(int((i+1)/b.sub), s) {
		b.halted = true
	}
}

func (b *twoBody) Stop(i uint64) bool {
	return b.halted || i >= b.total
}

func (b *twoBody) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 6)
	r := norm(f[:3])
	bodyAcc := -b.μ / (r * r * r)
	// d\vec{R}/dt
	fDot[0] = f[3]
	fDot[1] = f[4]
	fDot[2] = f[5]
	// d\vec{V}/dt
	fDot[3] = bodyAcc * f[0]
	fDot[4] = bodyAcc * f[1]
	fDot[5] = bodyAcc * f[2]
	return
}

// Trajectory is a lazy and restartable sequence of samples over a time grid.
type Trajectory struct {
	Orbit Orbit
	Grid  TimeGrid
	prop  Propagator
}

// Propagate returns the trajectory of the orbit using the analytic propagator.
func Propagate(o Orbit, duration, step time.Duration) (*Trajectory, error) {
	return PropagateWith(AnalyticPropagator{}, o, duration, step)
}

// PropagateWith returns the trajectory of the orbit using the provided propagator.
func PropagateWith(p Propagator, o Orbit, duration, step time.Duration) (*Trajectory, error) {
	g, err := NewTimeGrid(o.Epoch(), duration, step)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = AnalyticPropagator{}
	}
	return &Trajectory{o, g, p}, nil
}

// Len returns the number of samples in the trajectory.
func (t *Trajectory) Len() int {
	return t.Grid.Len()
}

// All iterates over the trajectory from its first sample.
func (t *Trajectory) All() iter.Seq2[int, TrajectorySample] {
	return t.prop.Samples(t.Orbit, t.Grid)
}

// Samples materializes the whole trajectory.
func (t *Trajectory) Samples() []TrajectorySample {
	samples := make([]TrajectorySample, 0, t.Len())
	for _, s := range t.All() {
		samples = append(samples, s)
	}
	return samples
}
