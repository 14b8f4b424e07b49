package cubesim

import (
	"fmt"
	"time"
)

// depletedε is the state of charge (Wh) under which the battery counts as empty.
const depletedε = 1e-9

// Report summarizes the power budget of a run.
type Report struct {
	MinSoC              float64 // Wh
	FinalSoC            float64 // Wh
	LowBatteryThreshold float64 // Wh
	LowBattery          bool    // SoC went under the threshold at least once
	FirstLowIndex       int     // -1 if never low
	FirstDepletedIndex  int     // -1 if never empty
	EclipseFraction     float64
	Eclipses            []EclipseInterval
	EnergyGenerated     float64 // Wh
	EnergyConsumed      float64 // Wh
}

// NewReport computes the report of aligned series, which must all have the same length.
func NewReport(times []time.Time, sunlit []bool, power []PowerSample, soc []float64, step time.Duration, conf PowerConfig) (Report, error) {
	n := len(soc)
	if len(times) != n || len(sunlit) != n || len(power) != n {
		return Report{}, fmt.Errorf("misaligned series: %d times, %d illumination, %d power and %d SoC samples", len(times), len(sunlit), len(power), n)
	}
	r := Report{
		LowBatteryThreshold: conf.LowBatteryThreshold(),
		FirstLowIndex:       -1,
		FirstDepletedIndex:  -1,
		Eclipses:            EclipseIntervals(sunlit, times),
	}
	if n == 0 {
		return r, nil
	}
	h := step.Seconds() / 3600
	r.MinSoC = soc[0]
	for i, q := range soc {
		if q < r.MinSoC {
			r.MinSoC = q
		}
		if r.FirstLowIndex < 0 && q < r.LowBatteryThreshold {
			r.FirstLowIndex = i
		}
		if r.FirstDepletedIndex < 0 && q < depletedε {
			r.FirstDepletedIndex = i
		}
		if !sunlit[i] {
			r.EclipseFraction++
		}
		r.EnergyGenerated += power[i].Generated * h
		r.EnergyConsumed += power[i].Consumed * h
	}
	r.EclipseFraction /= float64(n)
	r.FinalSoC = soc[n-1]
	r.LowBattery = r.FirstLowIndex >= 0
	return r, nil
}

// Verdict returns the human readable battery health statement.
func (r Report) Verdict() string {
	if r.LowBattery {
		return fmt.Sprintf("Battery SoC drops under %.0f%% (%.2f Wh) at some point: consider larger panels or lower payload power.", LowBatteryRatio*100, r.LowBatteryThreshold)
	}
	return "Battery SoC stays healthy during simulation period."
}
