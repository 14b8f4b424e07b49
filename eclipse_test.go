package cubesim

import (
	"math"
	"testing"
	"time"
)

func TestIsSunlit(t *testing.T) {
	sun := []float64{1, 0, 0}
	for _, tc := range []struct {
		name   string
		R      []float64
		sunlit bool
	}{
		{"on the Earth-Sun line, night side", []float64{-7000, 0, 0}, false},
		{"on the Earth-Sun line, day side", []float64{7000, 0, 0}, true},
		{"night side, offset beyond the radius", []float64{-7000, 6371.5, 0}, true},
		{"night side, offset within the radius", []float64{-7000, 0, 6370}, false},
		{"grazing", []float64{-7000, 6371, 0}, true},
		{"terminator plane", []float64{0, 6871, 0}, true},
		{"far behind", []float64{-1e6, 100, -100}, false},
	} {
		if got := IsSunlit(tc.R, sun, Earth.Radius); got != tc.sunlit {
			t.Fatalf("%s: sunlit=%v", tc.name, got)
		}
		// The Sun direction does not need to be unitary.
		if got := IsSunlit(tc.R, []float64{42, 0, 0}, Earth.Radius); got != tc.sunlit {
			t.Fatalf("%s with non unit Sun direction: sunlit=%v", tc.name, got)
		}
		if got := (Cylindrical{}).Sunlit(tc.R, sun, Earth); got != tc.sunlit {
			t.Fatalf("%s with the cylindrical model: sunlit=%v", tc.name, got)
		}
	}
}

func TestIsSunlitAnyDirection(t *testing.T) {
	// Rotate the geometry around: an anti-parallel position is always shadowed.
	for θ := 0.0; θ < 2*math.Pi; θ += 0.1 {
		s, c := math.Sincos(θ)
		sun := []float64{c * 0.6, s * 0.6, 0.8}
		anti := []float64{-7000 * sun[0], -7000 * sun[1], -7000 * sun[2]}
		if IsSunlit(anti, sun, Earth.Radius) {
			t.Fatalf("θ=%f: anti-sun position is sunlit", θ)
		}
		// Offset perpendicular to the Sun direction by more than the radius.
		perp := []float64{-s, c, 0}
		offset := []float64{anti[0] + 6400*perp[0], anti[1] + 6400*perp[1], anti[2] + 6400*perp[2]}
		if !IsSunlit(offset, sun, Earth.Radius) {
			t.Fatalf("θ=%f: offset position is shadowed", θ)
		}
	}
}

func TestConical(t *testing.T) {
	sun := []float64{1, 0, 0}
	// Deep in the umbra.
	if (Conical{}).Sunlit([]float64{-7000, 0, 0}, sun, Earth) {
		t.Fatal("umbra is sunlit")
	}
	// The umbra narrows by about 32 km at 7000 km behind the Earth: penumbra is lit.
	if !(Conical{}).Sunlit([]float64{-7000, 6350, 0}, sun, Earth) {
		t.Fatal("penumbra is shadowed")
	}
	if (Cylindrical{}).Sunlit([]float64{-7000, 6350, 0}, sun, Earth) {
		t.Fatal("cylindrical shadow should cover this position")
	}
	// Past the umbra apex (about 1.38 million km).
	if !(Conical{}).Sunlit([]float64{-2e6, 0, 0}, sun, Earth) {
		t.Fatal("beyond the umbra apex is shadowed")
	}
	if !(Conical{}).Sunlit([]float64{7000, 0, 0}, sun, Earth) {
		t.Fatal("day side is shadowed")
	}
}

func TestShadowModelFromString(t *testing.T) {
	for name, exp := range map[string]string{"": "cylindrical", "Cylindrical": "cylindrical", "conical": "conical"} {
		m, err := ShadowModelFromString(name)
		if err != nil || m.String() != exp {
			t.Fatalf("%q: %v %v", name, m, err)
		}
	}
	if _, err := ShadowModelFromString("penumbral"); err == nil {
		t.Fatal("unknown model accepted")
	}
}

func TestEclipseIntervals(t *testing.T) {
	g, _ := NewTimeGrid(testEpoch, 5*time.Minute, time.Minute)
	times := g.Times()
	intervals := EclipseIntervals([]bool{true, false, false, true, false, false}, times)
	if len(intervals) != 2 {
		t.Fatalf("%d intervals", len(intervals))
	}
	if intervals[0].Start != 1 || intervals[0].End != 2 || intervals[0].Duration() != time.Minute {
		t.Fatalf("first interval: %+v", intervals[0])
	}
	if intervals[1].Start != 4 || intervals[1].End != 5 || !intervals[1].Exit.Equal(times[5]) {
		t.Fatalf("second interval: %+v", intervals[1])
	}
	if EclipseIntervals([]bool{true, true, true}, times) != nil {
		t.Fatal("sunlit series has eclipses")
	}
	all := EclipseIntervals([]bool{false, false, false}, times)
	if len(all) != 1 || all[0].Start != 0 || all[0].End != 2 {
		t.Fatalf("dark series: %+v", all)
	}
	single := EclipseIntervals([]bool{false}, times)
	if len(single) != 1 || single[0].Duration() != 0 {
		t.Fatalf("single dark sample: %+v", single)
	}
}
