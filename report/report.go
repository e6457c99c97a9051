// Package report formats simulation results in the simulator's reference
// output format: one timing line per retired instruction followed by a
// configuration and throughput summary.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/o3sim/trace"
)

// Writer formats simulation results to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// PrintTiming writes one line per retired instruction in program order.
// Each stage block is {entry_cycle, duration_in_stage}; src and dst show
// the original architectural register indices.
func (r *Writer) PrintTiming(insts []*trace.Instruction) {
	for _, inst := range insts {
		fmt.Fprintf(r.w,
			"%d fu{%d} src{%d,%d} dst{%d} "+
				"FE{%d,%d} DE{%d,%d} RN{%d,%d} RR{%d,%d} DI{%d,%d} "+
				"IS{%d,%d} EX{%d,%d} WB{%d,%d} RT{%d,%d}\n",
			inst.SeqNo, inst.OpType, inst.Src1, inst.Src2, inst.Dest,
			inst.FetchCycle, inst.DecodeCycle-inst.FetchCycle,
			inst.DecodeCycle, inst.RenameCycle-inst.DecodeCycle,
			inst.RenameCycle, inst.RegReadCycle-inst.RenameCycle,
			inst.RegReadCycle, inst.DispatchCycle-inst.RegReadCycle,
			inst.DispatchCycle, inst.IssueCycle-inst.DispatchCycle,
			inst.IssueCycle, inst.ExecuteCycle-inst.IssueCycle,
			inst.ExecuteCycle, inst.WritebackCycle-inst.ExecuteCycle,
			inst.WritebackCycle, inst.RetireCycle-inst.WritebackCycle,
			inst.RetireCycle, inst.CommitCycle-inst.RetireCycle,
		)
	}
}

// Summary holds the values printed in the closing summary block.
type Summary struct {
	// Command is the simulator invocation, reproduced verbatim.
	Command string
	// ROBSize, IQSize and Width are the machine configuration.
	ROBSize int
	IQSize  int
	Width   int
	// Retired is the dynamic instruction count.
	Retired uint64
	// Cycles is the total simulated cycle count.
	Cycles uint64
}

// IPC returns the retired instructions per cycle.
func (s Summary) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Retired) / float64(s.Cycles)
}

// PrintSummary writes the configuration and throughput summary block.
func (r *Writer) PrintSummary(s Summary) {
	fmt.Fprintf(r.w, "# === Simulator Command =========\n")
	fmt.Fprintf(r.w, "# %s\n", s.Command)
	fmt.Fprintf(r.w, "# === Processor Configuration ===\n")
	fmt.Fprintf(r.w, "# ROB_SIZE = %d\n", s.ROBSize)
	fmt.Fprintf(r.w, "# IQ_SIZE  = %d\n", s.IQSize)
	fmt.Fprintf(r.w, "# WIDTH    = %d\n", s.Width)
	fmt.Fprintf(r.w, "# === Simulation Results ========\n")
	fmt.Fprintf(r.w, "# Dynamic Instruction Count    = %d\n", s.Retired)
	fmt.Fprintf(r.w, "# Cycles                       = %d\n", s.Cycles)
	fmt.Fprintf(r.w, "# Instructions Per Cycle (IPC) = %.2f\n", s.IPC())
}
