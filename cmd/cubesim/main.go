package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ChristopherRabotin/cubesim"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
)

// This code reads the scenario, runs the simulation and prints the power budget.

var (
	scenario    string
	rows        int
	verbose     bool
	metricsFile string
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "scenario TOML file (defaults and CUBESIM_* environment if unset)")
	flag.IntVar(&rows, "rows", 200, "number of rows of the power table to print (0 for all)")
	flag.BoolVar(&verbose, "verbose", false, "log debug information")
	flag.StringVar(&metricsFile, "metrics", "", "write run metrics in the Prometheus text format to this file")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	if err := run(logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(logger kitlog.Logger) error {
	conf, err := cubesim.LoadScenario(scenario)
	if err != nil {
		return err
	}
	if conf.Epoch.IsZero() {
		conf.Epoch = time.Now().UTC()
		level.Debug(logger).Log("subsys", "conf", "epoch", conf.Epoch, "msg", "no epoch in scenario, using now")
	}
	mission, err := conf.Mission()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	mission.WithLogger(logger).WithMetrics(cubesim.NewMetrics(reg))

	result, err := mission.Run()
	if metricsFile != "" {
		if werr := prometheus.WriteToTextfile(metricsFile, reg); werr != nil {
			level.Warn(logger).Log("subsys", "metrics", "err", werr)
		}
	}
	if err != nil {
		return err
	}

	if err := cubesim.WriteSummary(os.Stdout, result); err != nil {
		return err
	}
	fmt.Println()
	if err := cubesim.WritePowerTable(os.Stdout, result, rows); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(result.Report.Verdict())
	return nil
}
