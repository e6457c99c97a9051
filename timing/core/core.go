// Package core provides the cycle-accurate out-of-order core model.
// It binds a trace source to the pipeline and provides a high-level
// interface for simulation.
package core

import (
	"github.com/sarchlab/o3sim/timing/pipeline"
	"github.com/sarchlab/o3sim/trace"
)

// Core represents one out-of-order processor core.
type Core struct {
	// Pipeline is the underlying back-end pipeline.
	Pipeline *pipeline.Pipeline
}

// NewCore creates a Core that consumes instructions from source.
func NewCore(config pipeline.Config, source trace.Source, opts ...pipeline.Option) *Core {
	return &Core{
		Pipeline: pipeline.NewPipeline(config, source, opts...),
	}
}

// Tick advances the core by one cycle.
func (c *Core) Tick() {
	c.Pipeline.Tick()
}

// Run advances the core until the trace is exhausted and the pipeline has
// drained.
func (c *Core) Run() {
	c.Pipeline.Run()
}

// Done reports whether the simulation has drained.
func (c *Core) Done() bool {
	return c.Pipeline.Done()
}

// Stats returns throughput statistics for the core.
func (c *Core) Stats() pipeline.Statistics {
	return c.Pipeline.Stats()
}

// Completed returns the retired instructions in program order.
func (c *Core) Completed() []*trace.Instruction {
	return c.Pipeline.Completed()
}
