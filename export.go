package cubesim

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

const dateFormat = "2006-01-02 15:04:05"

// PowerTableHeader is the header of the power table.
var PowerTableHeader = []string{"time", "generation_W", "consumption_W", "battery_soc_Wh", "in_sun", "lat_deg", "lon_deg"}

// WritePowerTable writes at most limit rows of the power profile as CSV (all rows if limit <= 0).
func WritePowerTable(w io.Writer, r *Result, limit int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PowerTableHeader); err != nil {
		return err
	}
	n := r.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		record := []string{
			r.Times[i].UTC().Format(dateFormat),
			strconv.FormatFloat(r.Power[i].Generated, 'f', 3, 64),
			strconv.FormatFloat(r.Power[i].Consumed, 'f', 3, 64),
			strconv.FormatFloat(r.SoC[i], 'f', 4, 64),
			strconv.FormatBool(r.Sunlit[i]),
			strconv.FormatFloat(r.GroundTrack[i].Latitude, 'f', 3, 64),
			strconv.FormatFloat(r.GroundTrack[i].Longitude, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// runSummary is the JSON document of a run, without the series.
type runSummary struct {
	ID                  string          `json:"id"`
	Orbit               OrbitSummary    `json:"orbit"`
	Samples             int             `json:"samples"`
	Step                string          `json:"step"`
	MinSoC              float64         `json:"min_soc_wh"`
	FinalSoC            float64         `json:"final_soc_wh"`
	LowBattery          bool            `json:"low_battery"`
	LowBatteryThreshold float64         `json:"low_battery_threshold_wh"`
	EclipseFraction     float64         `json:"eclipse_fraction"`
	Eclipses            []eclipseRecord `json:"eclipses"`
	EnergyGenerated     float64         `json:"energy_generated_wh"`
	EnergyConsumed      float64         `json:"energy_consumed_wh"`
	Verdict             string          `json:"verdict"`
}

type eclipseRecord struct {
	Entry    time.Time `json:"entry"`
	Exit     time.Time `json:"exit"`
	Duration string    `json:"duration"`
}

// WriteSummary writes the orbit summary and the report of the run as indented JSON.
func WriteSummary(w io.Writer, r *Result) error {
	s := runSummary{
		ID:                  r.ID.String(),
		Orbit:               r.Orbit,
		Samples:             r.Len(),
		Step:                r.Grid.Step.String(),
		MinSoC:              r.Report.MinSoC,
		FinalSoC:            r.Report.FinalSoC,
		LowBattery:          r.Report.LowBattery,
		LowBatteryThreshold: r.Report.LowBatteryThreshold,
		EclipseFraction:     r.Report.EclipseFraction,
		Eclipses:            []eclipseRecord{},
		EnergyGenerated:     r.Report.EnergyGenerated,
		EnergyConsumed:      r.Report.EnergyConsumed,
		Verdict:             r.Report.Verdict(),
	}
	for _, e := range r.Report.Eclipses {
		s.Eclipses = append(s.Eclipses, eclipseRecord{e.Entry, e.Exit, e.Duration().String()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
