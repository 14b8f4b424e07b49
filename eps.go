package cubesim

import (
	"math"
	"time"
)

// EPS defines the interface for the energy storage of an electrical power subsystem.
type EPS interface {
	// Capacity returns the maximum state of charge in Wh.
	Capacity() float64
	// Charge returns the state of charge (Wh) after flowing the net power (W) during dt.
	Charge(soc, net float64, dt time.Duration) float64
}

/* Available EPS */

// IdealBattery has no charge or discharge losses. Energy beyond its capacity or below
// empty is silently discarded.
type IdealBattery struct {
	capacity float64 // Wh
}

// NewIdealBattery returns an ideal battery of the provided capacity in Wh.
func NewIdealBattery(capacity float64) (IdealBattery, error) {
	if !finite(capacity) || capacity <= 0 {
		return IdealBattery{}, invalidParam("battery_capacity", capacity, "must be positive (Wh)")
	}
	return IdealBattery{capacity}, nil
}

// Capacity implements the EPS interface.
func (b IdealBattery) Capacity() float64 {
	return b.capacity
}

// Charge implements the EPS interface.
func (b IdealBattery) Charge(soc, net float64, dt time.Duration) float64 {
	return clamp(soc+net*dt.Seconds()/3600, 0, b.capacity)
}

// SimulateBattery folds the power samples into the state of charge (Wh) of an initially full
// ideal battery. The value at index i is the charge once the net flow of step i is applied.
func SimulateBattery(samples []PowerSample, step time.Duration, capacity float64) ([]float64, error) {
	battery, err := NewIdealBattery(capacity)
	if err != nil {
		return nil, err
	}
	return SimulateEPS(battery, samples, step)
}

// SimulateEPS is the same as SimulateBattery for any EPS, which starts fully charged.
func SimulateEPS(eps EPS, samples []PowerSample, step time.Duration) ([]float64, error) {
	if step <= 0 {
		return nil, invalidParam("step", step.Seconds(), "must be positive (seconds)")
	}
	return scan(samples, eps.Capacity(), func(soc float64, s PowerSample) float64 {
		return eps.Charge(soc, s.Net, step)
	}), nil
}

// scan is a left fold which keeps every intermediate accumulator.
// Each output depends on the previous one: this cannot be computed out of order.
func scan[T, A any](xs []T, init A, f func(A, T) A) []A {
	out := make([]A, len(xs))
	acc := init
	for i, x := range xs {
		acc = f(acc, x)
		out[i] = acc
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}
