// Package pipeline models the back end of an out-of-order superscalar
// processor: an eight-stage pipeline with register renaming over a
// reorder buffer, an issue queue with wake-up/select logic, and in-order
// retirement.
package pipeline

import (
	"github.com/sarchlab/o3sim/timing/latency"
	"github.com/sarchlab/o3sim/trace"
)

// Config holds the structural parameters of the machine.
type Config struct {
	// ROBSize is the reorder-buffer capacity.
	ROBSize int
	// IQSize is the issue-queue capacity.
	IQSize int
	// Width is the maximum number of instructions fetched, issued, or
	// retired per cycle.
	Width int
}

// DefaultConfig returns a typical mid-size machine configuration.
func DefaultConfig() Config {
	return Config{
		ROBSize: 64,
		IQSize:  16,
		Width:   4,
	}
}

// Option is a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithLatencyTable sets a custom latency table for instruction timing.
func WithLatencyTable(table *latency.Table) Option {
	return func(p *Pipeline) {
		p.latencyTable = table
	}
}

// Statistics holds pipeline throughput statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Fetched is the number of instructions read from the trace.
	Fetched uint64
	// Retired is the number of instructions retired.
	Retired uint64
}

// IPC returns the retired instructions per cycle.
func (s Statistics) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Retired) / float64(s.Cycles)
}

// Pipeline is the out-of-order back-end model. Instructions flow through
// bounded buffers between stages: fetched records enter DE, advance
// through RN, RR and DI into the issue queue, execute with per-op-type
// latency, and retire in program order through the reorder buffer.
type Pipeline struct {
	config       Config
	source       trace.Source
	latencyTable *latency.Table

	rob *ReorderBuffer
	rmt *MappingTable

	// Stage buffers. de, rn and wb drain in FIFO order; rr, di and iq
	// hold instructions in program order; executeList is the unordered
	// set of in-flight executions.
	de          []*trace.Instruction
	rn          []*trace.Instruction
	rr          []*trace.Instruction
	di          []*trace.Instruction
	iq          []*trace.Instruction
	executeList []*trace.Instruction
	wb          []*trace.Instruction

	// retireMap holds written-back records keyed by ROB tag so retire can
	// recover the decorated record in program order.
	retireMap map[int]*trace.Instruction

	completed []*trace.Instruction

	cycle   int
	seqNo   int
	retired int
}

// NewPipeline creates a Pipeline that fetches from source.
func NewPipeline(config Config, source trace.Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		config:    config,
		source:    source,
		rob:       NewReorderBuffer(config.ROBSize),
		rmt:       NewMappingTable(),
		retireMap: make(map[int]*trace.Instruction),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.latencyTable == nil {
		p.latencyTable = latency.NewTable()
	}

	return p
}

// Config returns the machine configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Cycle returns the number of cycles simulated so far.
func (p *Pipeline) Cycle() int {
	return p.cycle
}

// Stats returns pipeline throughput statistics.
func (p *Pipeline) Stats() Statistics {
	return Statistics{
		Cycles:  uint64(p.cycle),
		Fetched: uint64(p.seqNo),
		Retired: uint64(p.retired),
	}
}

// Completed returns the retired instructions in program order.
func (p *Pipeline) Completed() []*trace.Instruction {
	return p.completed
}

// Done reports whether the simulation has drained: at least one cycle has
// run and no instruction remains in any stage buffer. The ROB and RMT
// drain naturally through retire and are not checked.
func (p *Pipeline) Done() bool {
	return p.cycle > 0 && !p.busy()
}

// Tick advances the simulation by one cycle.
//
// Stages run in reverse pipeline order so a value produced by one stage
// this cycle is not consumed by the next stage until the following cycle;
// this ordering alone models the one-cycle latency between adjacent
// stages. It also guarantees that retire reclaims ROB slots before any
// younger stage could observe them.
func (p *Pipeline) Tick() {
	p.retire()
	p.writeback()
	p.execute()
	p.issue()
	p.dispatch()
	p.regRead()
	p.rename()
	p.decode()
	p.fetch()
	p.cycle++
}

// Run advances the simulation until it drains. The cycle counter always
// accounts at least one cycle, even for an empty trace.
func (p *Pipeline) Run() {
	for {
		p.Tick()
		if !p.busy() {
			return
		}
	}
}

func (p *Pipeline) busy() bool {
	return len(p.de) > 0 || len(p.rn) > 0 || len(p.rr) > 0 ||
		len(p.di) > 0 || len(p.iq) > 0 || len(p.executeList) > 0 ||
		len(p.wb) > 0 || len(p.retireMap) > 0
}
