package cubesim

import (
	"fmt"
	"iter"
	"time"
)

// MaxSamples bounds the number of samples of a grid, so that every series of a run fits
// in memory.
const MaxSamples = 1000000

// TimeGrid is an evenly spaced sequence of timestamps starting at Start.
// The grid truncates: it holds floor(duration/step) full steps plus the initial
// sample, so the last timestamp may fall short of the requested duration by
// less than one step.
type TimeGrid struct {
	Start time.Time
	Step  time.Duration
	N     int
}

// NewTimeGrid returns the grid spanning [start, start+duration].
func NewTimeGrid(start time.Time, duration, step time.Duration) (TimeGrid, error) {
	if duration <= 0 {
		return TimeGrid{}, invalidParam("duration", duration.Minutes(), "must be positive (minutes)")
	}
	if step <= 0 {
		return TimeGrid{}, invalidParam("step", step.Seconds(), "must be positive (seconds)")
	}
	if duration/step >= MaxSamples {
		return TimeGrid{}, invalidParam("step", step.Seconds(), fmt.Sprintf("yields more than %d samples over %s", MaxSamples, duration))
	}
	return TimeGrid{Start: start.UTC(), Step: step, N: int(duration/step) + 1}, nil
}

// Len returns the number of samples.
func (g TimeGrid) Len() int {
	return g.N
}

// At returns the i-th timestamp.
func (g TimeGrid) At(i int) time.Time {
	return g.Start.Add(time.Duration(i) * g.Step)
}

// Offset returns the time elapsed since the start at the i-th sample.
func (g TimeGrid) Offset(i int) time.Duration {
	return time.Duration(i) * g.Step
}

// End returns the last timestamp.
func (g TimeGrid) End() time.Time {
	return g.At(g.N - 1)
}

// All iterates over the grid.
func (g TimeGrid) All() iter.Seq2[int, time.Time] {
	return func(yield func(int, time.Time) bool) {
		for i := 0; i < g.N; i++ {
			if !yield(i, g.At(i)) {
				return
			}
		}
	}
}

// Times returns all the timestamps.
func (g TimeGrid) Times() []time.Time {
	times := make([]time.Time, 0, g.N)
	for _, dt := range g.All() {
		times = append(times, dt)
	}
	return times
}
