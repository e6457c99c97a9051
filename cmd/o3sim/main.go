// Package main provides the entry point for o3sim.
// o3sim is a cycle-accurate simulator of an out-of-order superscalar
// processor back end.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/o3sim/report"
	"github.com/sarchlab/o3sim/timing/core"
	"github.com/sarchlab/o3sim/timing/latency"
	"github.com/sarchlab/o3sim/timing/pipeline"
	"github.com/sarchlab/o3sim/trace"
)

var (
	configPath = flag.String("config", "", "Path to latency configuration JSON file")
	csvPath    = flag.String("csv", "", "Write per-instruction timing to a CSV file")
)

func main() {
	flag.Parse()

	if flag.NArg() != 4 {
		fmt.Fprintf(os.Stderr, "Error: Wrong number of inputs:%d\n", flag.NArg())
		fmt.Fprintf(os.Stderr, "Usage: o3sim [options] <ROB_SIZE> <IQ_SIZE> <WIDTH> <trace>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	config := pipeline.Config{
		ROBSize: parsePositive("ROB_SIZE", flag.Arg(0)),
		IQSize:  parsePositive("IQ_SIZE", flag.Arg(1)),
		Width:   parsePositive("WIDTH", flag.Arg(2)),
	}
	tracePath := flag.Arg(3)

	table := latency.NewTable()
	if *configPath != "" {
		timingConfig, err := latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
			atexit.Exit(1)
		}
		if err := timingConfig.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid timing config: %v\n", err)
			atexit.Exit(1)
		}
		table = latency.NewTableWithConfig(timingConfig)
	}

	file, err := os.Open(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Unable to open file %s\n", tracePath)
		atexit.Exit(1)
	}
	defer file.Close()

	c := core.NewCore(config, trace.NewReader(file), pipeline.WithLatencyTable(table))
	c.Run()

	out := report.NewWriter(os.Stdout)
	out.PrintTiming(c.Completed())

	stats := c.Stats()
	out.PrintSummary(report.Summary{
		Command: strings.Join(os.Args, " "),
		ROBSize: config.ROBSize,
		IQSize:  config.IQSize,
		Width:   config.Width,
		Retired: stats.Retired,
		Cycles:  stats.Cycles,
	})

	if *csvPath != "" {
		csv := report.NewCSVTraceWriter(*csvPath)
		csv.Init()
		for _, inst := range c.Completed() {
			csv.Write(inst)
		}
	}

	atexit.Exit(0)
}

// parsePositive parses a positional argument that must be a positive
// integer.
func parsePositive(name, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		fmt.Fprintf(os.Stderr, "Error: %s must be a positive integer, got %q\n", name, value)
		atexit.Exit(1)
	}
	return n
}
