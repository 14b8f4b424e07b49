package cubesim

const (
	// SolarFlux is the solar constant at 1 AU in W/m^2.
	SolarFlux = 1361.0
	// LowBatteryRatio is the fraction of capacity under which the battery is reported low.
	LowBatteryRatio = 0.1
)

// PowerConfig sizes the electrical power budget of the spacecraft.
// Panels are assumed to always point at the Sun, hence no incidence derating.
type PowerConfig struct {
	PanelArea       float64 // m^2
	PanelEfficiency float64 // in ]0, 1[
	PayloadPower    float64 // W
	BusPower        float64 // W, fixed platform overhead (zero unless modeled)
	SolarFlux       float64 // W/m^2, SolarFlux if zero
	BatteryCapacity float64 // Wh
}

// DefaultPowerConfig returns the nominal 1U-ish configuration.
func DefaultPowerConfig() PowerConfig {
	return PowerConfig{PanelArea: 0.1, PanelEfficiency: 0.25, PayloadPower: 5, SolarFlux: SolarFlux, BatteryCapacity: 20}
}

// Validate returns an InvalidParameterError for the first out of range parameter.
func (c PowerConfig) Validate() error {
	switch {
	case !finite(c.PanelArea) || c.PanelArea <= 0:
		return invalidParam("panel_area", c.PanelArea, "must be positive (m^2)")
	case !finite(c.PanelEfficiency) || c.PanelEfficiency <= 0 || c.PanelEfficiency >= 1:
		return invalidParam("panel_efficiency", c.PanelEfficiency, "must be within ]0, 1[")
	case !finite(c.PayloadPower) || c.PayloadPower < 0:
		return invalidParam("payload_power", c.PayloadPower, "must be non-negative (W)")
	case !finite(c.BusPower) || c.BusPower < 0:
		return invalidParam("bus_power", c.BusPower, "must be non-negative (W)")
	case !finite(c.SolarFlux) || c.SolarFlux < 0:
		return invalidParam("solar_flux", c.SolarFlux, "must be non-negative (W/m^2), zero uses the solar constant")
	case !finite(c.BatteryCapacity) || c.BatteryCapacity <= 0:
		return invalidParam("battery_capacity", c.BatteryCapacity, "must be positive (Wh)")
	}
	return nil
}

func (c PowerConfig) flux() float64 {
	if c.SolarFlux == 0 {
		return SolarFlux
	}
	return c.SolarFlux
}

// ComputePower returns the generated and consumed power in W.
func (c PowerConfig) ComputePower(sunlit bool) (generated, consumed float64) {
	if sunlit {
		generated = c.flux() * c.PanelArea * c.PanelEfficiency
	}
	consumed = c.PayloadPower + c.BusPower
	return
}

// LowBatteryThreshold returns the state of charge (Wh) under which the battery is low.
func (c PowerConfig) LowBatteryThreshold() float64 {
	return c.BatteryCapacity * LowBatteryRatio
}

// PowerSample is the power balance at one time step.
type PowerSample struct {
	Generated float64 // W
	Consumed  float64 // W
	Net       float64 // W
}

// NewPowerSample returns the sample for the provided generation and consumption.
func NewPowerSample(generated, consumed float64) PowerSample {
	return PowerSample{generated, consumed, generated - consumed}
}

// PowerProfile returns the power samples aligned with the illumination series.
func (c PowerConfig) PowerProfile(sunlit []bool) []PowerSample {
	samples := make([]PowerSample, len(sunlit))
	for i, lit := range sunlit {
		samples[i] = NewPowerSample(c.ComputePower(lit))
	}
	return samples
}
