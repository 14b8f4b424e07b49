package cubesim

import (
	"errors"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPropagateAnalytic(t *testing.T) {
	o := mustOrbit(500, 51)
	traj, err := Propagate(o, 240*time.Minute, 30*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if traj.Len() != 481 {
		t.Fatalf("%d samples", traj.Len())
	}
	samples := traj.Samples()
	if len(samples) != traj.Len() {
		t.Fatalf("materialized %d samples out of %d", len(samples), traj.Len())
	}
	for i, s := range samples {
		if s.Index != i || !s.DT.Equal(traj.Grid.At(i)) {
			t.Fatalf("sample %d misaligned: %+v", i, s)
		}
		if !scalar.EqualWithinAbs(norm(s.R), 6871, 1e-8) {
			t.Fatalf("radius at %d: %f", i, norm(s.R))
		}
		if !scalar.EqualWithinAbs(norm(s.V), o.VNorm(), 1e-10) {
			t.Fatalf("velocity at %d: %f", i, norm(s.V))
		}
		if !scalar.EqualWithinAbs(dot(s.R, s.V), 0, 1e-6) {
			t.Fatalf("velocity not perpendicular to radius at %d", i)
		}
	}
}

func TestPropagateRestartable(t *testing.T) {
	traj, _ := Propagate(mustOrbit(700, 97.8), time.Hour, time.Minute)
	first := traj.Samples()
	// Stop half way and restart.
	for i := range traj.All() {
		if i == 30 {
			break
		}
	}
	second := traj.Samples()
	for i := range first {
		if !vectorsEqual(first[i].R, second[i].R) || !vectorsEqual(first[i].V, second[i].V) {
			t.Fatalf("restarted sample %d differs", i)
		}
	}
}

func TestPropagateRK4(t *testing.T) {
	o := mustOrbit(500, 51)
	analytic, _ := Propagate(o, 240*time.Minute, 30*time.Second)
	numeric, err := PropagateWith(RK4Propagator{}, o, 240*time.Minute, 30*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	exp := analytic.Samples()
	got := numeric.Samples()
	if len(got) != len(exp) {
		t.Fatalf("RK4 returned %d samples instead of %d", len(got), len(exp))
	}
	for i := range exp {
		if !got[i].DT.Equal(exp[i].DT) {
			t.Fatalf("time misaligned at %d", i)
		}
		if d := norm(vecSub(got[i].R, exp[i].R)); d > 1e-2 {
			t.Fatalf("RK4 drifted by %f km at %d", d, i)
		}
		if d := norm(vecSub(got[i].V, exp[i].V)); d > 1e-5 {
			t.Fatalf("RK4 velocity drifted by %f km/s at %d", d, i)
		}
	}
	// A step which is not a multiple of the max RK4 step.
	odd, _ := PropagateWith(RK4Propagator{MaxStep: 7 * time.Second}, o, 10*time.Minute, 45*time.Second)
	if odd.Len() != 14 || len(odd.Samples()) != 14 {
		t.Fatalf("odd step: %d samples", odd.Len())
	}
	// Early break stops the integration.
	count := 0
	for range numeric.All() {
		count++
		if count == 5 {
			break
		}
	}
	if count != 5 {
		t.Fatalf("iterated %d times", count)
	}
}

func TestPropagateSingleSample(t *testing.T) {
	for _, p := range []Propagator{AnalyticPropagator{}, RK4Propagator{}} {
		traj, err := PropagateWith(p, mustOrbit(500, 0), 10*time.Second, time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if samples := traj.Samples(); len(samples) != 1 {
			t.Fatalf("%T: %d samples", p, len(samples))
		}
	}
}

func TestPropagateInvalid(t *testing.T) {
	o := mustOrbit(500, 51)
	for _, tc := range []struct {
		duration, step time.Duration
		param          string
	}{
		{0, 30 * time.Second, "duration"},
		{time.Hour, 0, "step"},
		{time.Hour, -time.Second, "step"},
	} {
		traj, err := Propagate(o, tc.duration, tc.step)
		var invalid *InvalidParameterError
		if traj != nil || !errors.As(err, &invalid) || invalid.Param != tc.param {
			t.Fatalf("expected invalid %s, got %v", tc.param, err)
		}
	}
}
