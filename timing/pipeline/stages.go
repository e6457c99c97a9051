package pipeline

import (
	"fmt"

	"github.com/sarchlab/o3sim/trace"
)

// fetch reads up to Width instructions from the trace, but only when the
// decode buffer is empty; a non-empty decode buffer stalls fetch for the
// whole cycle.
func (p *Pipeline) fetch() {
	if len(p.de) > 0 {
		return
	}

	for i := 0; i < p.config.Width; i++ {
		inst, ok := p.source.Next()
		if !ok {
			return
		}

		inst.SeqNo = p.seqNo
		p.seqNo++
		inst.FetchCycle = p.cycle
		inst.DecodeCycle = p.cycle + 1
		p.de = append(p.de, inst)
	}
}

// decode drains the decode buffer into the rename buffer when the latter
// is empty, preserving program order.
func (p *Pipeline) decode() {
	if len(p.rn) > 0 {
		return
	}

	for _, inst := range p.de {
		inst.RenameCycle = p.cycle + 1
		p.rn = append(p.rn, inst)
	}
	p.de = p.de[:0]
}

// rename allocates ROB slots and renames operands. The batch advances
// all-or-nothing: the register-read buffer must be empty and the ROB must
// have room for the entire rename buffer, otherwise nothing moves.
//
// Intra-batch dependencies resolve automatically because renaming runs in
// program order: a mapping written by an earlier instruction in the batch
// is visible to the later ones.
func (p *Pipeline) rename() {
	if len(p.rr) > 0 || p.rob.FreeEntries() < len(p.rn) {
		return
	}

	for _, inst := range p.rn {
		tag := p.rob.Allocate(inst.Dest)

		inst.RenSrc1 = p.renameSource(inst.Src1)
		inst.RenSrc2 = p.renameSource(inst.Src2)
		inst.Src1Latched = false
		inst.Src2Latched = false

		p.rmt.Map(inst.Dest, tag)
		inst.RenDest = tag

		inst.RegReadCycle = p.cycle + 1
		p.rr = append(p.rr, inst)
	}
	p.rn = p.rn[:0]
}

// renameSource maps an architectural source register to its in-flight
// producer tag. Absent sources stay absent; a source with no current
// mapping reads the architectural register file and is always ready.
func (p *Pipeline) renameSource(src int) int {
	if src == trace.OperandNone {
		return trace.OperandNone
	}
	if tag, ok := p.rmt.Lookup(src); ok {
		return tag
	}
	return trace.OperandArch
}

// regRead moves the entire register-read buffer into the dispatch buffer,
// establishing source readiness on the way. A source whose readiness was
// latched by a wake-up is left untouched: the wake-up is delivered by
// execute one cycle before writeback sets the producer's ROB ready bit, so
// re-reading the ROB in that cycle would wrongly report it not ready.
func (p *Pipeline) regRead() {
	if len(p.di) > 0 {
		return
	}

	for _, inst := range p.rr {
		if !inst.Src1Latched {
			inst.Src1Ready = p.sourceReady(inst.RenSrc1)
		}
		if !inst.Src2Latched {
			inst.Src2Ready = p.sourceReady(inst.RenSrc2)
		}

		inst.DispatchCycle = p.cycle + 1
		p.di = append(p.di, inst)
	}
	p.rr = p.rr[:0]
}

// sourceReady reports whether a renamed source has its value available.
// Negative sources read architectural state. A tag whose ROB slot is gone
// belongs to a producer that already retired.
func (p *Pipeline) sourceReady(src int) bool {
	if src < 0 {
		return true
	}
	if p.rob.Contains(src) {
		return p.rob.IsReady(src)
	}
	return true
}

// dispatch moves the dispatch buffer into the issue queue, all-or-nothing:
// if the entire buffer does not fit in the queue's free space, nothing
// moves this cycle. Real hardware would partial-dispatch up to capacity;
// this model deliberately does not.
func (p *Pipeline) dispatch() {
	if len(p.di) == 0 || p.config.IQSize-len(p.iq) < len(p.di) {
		return
	}

	for _, inst := range p.di {
		inst.IssueCycle = p.cycle + 1
		p.iq = append(p.iq, inst)
	}
	p.di = p.di[:0]
}

// issue scans the issue queue in program order and moves up to Width
// instructions whose sources are both ready into the execute set. Younger
// ready instructions may pass older instructions that still wait.
func (p *Pipeline) issue() {
	issued := 0
	for i := 0; i < len(p.iq) && issued < p.config.Width; {
		inst := p.iq[i]
		if !inst.Src1Ready || !inst.Src2Ready {
			i++
			continue
		}

		inst.ExecDuration = 0
		p.executeList = append(p.executeList, inst)
		p.iq = append(p.iq[:i], p.iq[i+1:]...)
		issued++
	}
}

// execute advances every in-flight execution by one cycle. An execution
// that reaches its op-type latency completes: it moves to the writeback
// buffer and broadcasts its destination tag to the waiting consumers.
func (p *Pipeline) execute() {
	for i := 0; i < len(p.executeList); {
		inst := p.executeList[i]

		if inst.ExecDuration == 0 {
			inst.ExecuteCycle = p.cycle
		}
		inst.ExecDuration++

		if inst.ExecDuration < p.latencyTable.Latency(inst.OpType) {
			i++
			continue
		}

		p.wb = append(p.wb, inst)
		p.wakeUp(inst.RenDest)
		p.executeList = append(p.executeList[:i], p.executeList[i+1:]...)
	}
}

// wakeUp broadcasts a completed producer's tag to every waiting consumer
// in the issue queue, the dispatch buffer, and the register-read buffer.
// The broadcast must reach all three: an instruction still in RR or DI
// depends on this producer just as one in the IQ does, and the register
// read it has yet to perform could observe a stale ROB state. Consumers
// still in RR therefore also latch the delivered readiness.
func (p *Pipeline) wakeUp(tag int) {
	for _, inst := range p.iq {
		if inst.RenSrc1 == tag {
			inst.Src1Ready = true
		}
		if inst.RenSrc2 == tag {
			inst.Src2Ready = true
		}
	}

	for _, inst := range p.di {
		if inst.RenSrc1 == tag {
			inst.Src1Ready = true
		}
		if inst.RenSrc2 == tag {
			inst.Src2Ready = true
		}
	}

	for _, inst := range p.rr {
		if inst.RenSrc1 == tag {
			inst.Src1Ready = true
			inst.Src1Latched = true
		}
		if inst.RenSrc2 == tag {
			inst.Src2Ready = true
			inst.Src2Latched = true
		}
	}
}

// writeback drains the writeback buffer: each instruction's ROB slot is
// marked ready and the record is parked in the retire map under its tag.
func (p *Pipeline) writeback() {
	for _, inst := range p.wb {
		inst.WritebackCycle = p.cycle
		inst.RetireCycle = p.cycle + 1
		p.rob.MarkReady(inst.RenDest)
		p.retireMap[inst.RenDest] = inst
	}
	p.wb = p.wb[:0]
}

// retire commits up to Width instructions from the head of the ROB, in
// program order, stopping early at the first head that has not written
// back. The RMT mapping for the retiring destination is erased only when
// it still points at the retiring tag; a later rename may have superseded
// it.
func (p *Pipeline) retire() {
	for n := 0; n < p.config.Width && p.rob.HeadReady(); n++ {
		entry := p.rob.PopHead()

		inst, ok := p.retireMap[entry.Tag]
		if !ok {
			panic(fmt.Sprintf("pipeline: retiring tag %d with no writeback record", entry.Tag))
		}

		inst.CommitCycle = p.cycle + 1
		p.completed = append(p.completed, inst)
		delete(p.retireMap, entry.Tag)

		p.rmt.ClearIf(entry.Dest, entry.Tag)
		p.retired++
	}
}
