package report_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/report"
	"github.com/sarchlab/o3sim/timing/pipeline"
	"github.com/sarchlab/o3sim/trace"
)

var _ = Describe("Writer", func() {
	var (
		buf    *bytes.Buffer
		writer *report.Writer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		writer = report.NewWriter(buf)
	})

	Describe("PrintTiming", func() {
		It("should print one stage-annotated line per instruction", func() {
			inst := &trace.Instruction{
				SeqNo:  0,
				OpType: 0,
				Dest:   1, Src1: 2, Src2: 3,
				FetchCycle: 0, DecodeCycle: 1, RenameCycle: 2,
				RegReadCycle: 3, DispatchCycle: 4, IssueCycle: 5,
				ExecuteCycle: 6, WritebackCycle: 7, RetireCycle: 8,
				CommitCycle: 9,
			}

			writer.PrintTiming([]*trace.Instruction{inst})

			Expect(buf.String()).To(Equal(
				"0 fu{0} src{2,3} dst{1} FE{0,1} DE{1,1} RN{2,1} RR{3,1} " +
					"DI{4,1} IS{5,1} EX{6,1} WB{7,1} RT{8,1}\n"))
		})

		It("should show original architectural operands", func() {
			inst := &trace.Instruction{
				SeqNo:  3,
				OpType: 2,
				Dest:   -1, Src1: 7, Src2: -1,
				RenDest: 5, RenSrc1: 2, RenSrc2: trace.OperandNone,
				FetchCycle: 2, DecodeCycle: 3, RenameCycle: 4,
				RegReadCycle: 5, DispatchCycle: 6, IssueCycle: 7,
				ExecuteCycle: 9, WritebackCycle: 14, RetireCycle: 15,
				CommitCycle: 17,
			}

			writer.PrintTiming([]*trace.Instruction{inst})

			Expect(buf.String()).To(HavePrefix("3 fu{2} src{7,-1} dst{-1} "))
			Expect(buf.String()).To(ContainSubstring("IS{7,2} EX{9,5}"))
			Expect(buf.String()).To(ContainSubstring("RT{15,2}"))
		})
	})

	Describe("PrintSummary", func() {
		It("should print the configuration and throughput block", func() {
			writer.PrintSummary(report.Summary{
				Command: "./sim 8 8 1 trace.txt",
				ROBSize: 8,
				IQSize:  8,
				Width:   1,
				Retired: 1,
				Cycles:  9,
			})

			Expect(buf.String()).To(Equal(strings.Join([]string{
				"# === Simulator Command =========",
				"# ./sim 8 8 1 trace.txt",
				"# === Processor Configuration ===",
				"# ROB_SIZE = 8",
				"# IQ_SIZE  = 8",
				"# WIDTH    = 1",
				"# === Simulation Results ========",
				"# Dynamic Instruction Count    = 1",
				"# Cycles                       = 9",
				"# Instructions Per Cycle (IPC) = 0.11",
				"",
			}, "\n")))
		})

		It("should print an IPC of 0.00 for an empty run", func() {
			writer.PrintSummary(report.Summary{
				Command: "./sim 8 8 1 empty.txt",
				ROBSize: 8,
				IQSize:  8,
				Width:   1,
				Retired: 0,
				Cycles:  1,
			})

			Expect(buf.String()).To(ContainSubstring(
				"# Instructions Per Cycle (IPC) = 0.00\n"))
		})
	})

	Describe("end to end", func() {
		It("should reproduce the reference output for a one-instruction trace", func() {
			pipe := pipeline.NewPipeline(
				pipeline.Config{ROBSize: 8, IQSize: 8, Width: 1},
				trace.NewReader(strings.NewReader("0 0 1 2 3\n")))
			pipe.Run()

			stats := pipe.Stats()
			writer.PrintTiming(pipe.Completed())
			writer.PrintSummary(report.Summary{
				Command: "./sim 8 8 1 trace.txt",
				ROBSize: 8,
				IQSize:  8,
				Width:   1,
				Retired: stats.Retired,
				Cycles:  stats.Cycles,
			})

			Expect(buf.String()).To(Equal(strings.Join([]string{
				"0 fu{0} src{2,3} dst{1} FE{0,1} DE{1,1} RN{2,1} RR{3,1} " +
					"DI{4,1} IS{5,1} EX{6,1} WB{7,1} RT{8,1}",
				"# === Simulator Command =========",
				"# ./sim 8 8 1 trace.txt",
				"# === Processor Configuration ===",
				"# ROB_SIZE = 8",
				"# IQ_SIZE  = 8",
				"# WIDTH    = 1",
				"# === Simulation Results ========",
				"# Dynamic Instruction Count    = 1",
				"# Cycles                       = 9",
				"# Instructions Per Cycle (IPC) = 0.11",
				"",
			}, "\n")))
		})
	})
})
