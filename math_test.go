package cubesim

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(cross([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}), []float64{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}) {
		t.Fatal("cross fail")
	}
}

func TestUnit(t *testing.T) {
	u := unit([]float64{3, 0, 4})
	if !vectorsEqual(u, []float64{0.6, 0, 0.8}) {
		t.Fatalf("unit(3,0,4)=%+v", u)
	}
	if !vectorsEqual(unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of the zero vector should be the zero vector")
	}
	if !scalar.EqualWithinAbs(norm(unit([]float64{-1, 2, 7})), 1, eps) {
		t.Fatal("unit vector is not unitary")
	}
}

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if ok, err := anglesEqual(Deg2rad(i), Deg2rad(Rad2deg(Deg2rad(i)))); !ok {
			t.Fatalf("incorrect conversion for %3.2f: %s", i, err)
		}
	}
	if !scalar.EqualWithinAbs(Deg2rad(90), math.Pi/2, eps) {
		t.Fatal("90 deg != π/2")
	}
	if !scalar.EqualWithinAbs(Rad2deg(-math.Pi/2), 270, eps) {
		t.Fatal("-π/2 != 270 deg")
	}
	if !scalar.EqualWithinAbs(Rad2deg180(3*math.Pi/2), -90, eps) {
		t.Fatal("3π/2 != -90 deg")
	}
}

func TestFinite(t *testing.T) {
	if !finite(1, 2, -3) {
		t.Fatal("finite numbers reported as not finite")
	}
	if finite(1, math.NaN()) || finite(math.Inf(-1)) {
		t.Fatal("NaN or Inf reported as finite")
	}
}
