package cubesim

import "testing"

func TestCelestialObjectFromString(t *testing.T) {
	for name, exp := range map[string]CelestialObject{"earth": Earth, "Earth": Earth, "SUN": Sun} {
		obj, err := CelestialObjectFromString(name)
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		if !obj.Equals(exp) {
			t.Fatalf("%s: got %s", name, obj)
		}
	}
	if _, err := CelestialObjectFromString("Vesta"); err == nil {
		t.Fatal("Vesta is not defined")
	}
	if Earth.Equals(Sun) {
		t.Fatal("Earth equals the Sun")
	}
	if Earth.GM() != 3.986004418e5 {
		t.Fatalf("Earth μ=%f", Earth.GM())
	}
}
