// Package trace provides decoded-instruction records and the trace file
// reader that feeds the timing model.
package trace

// Operand sentinels used in the renamed source fields.
const (
	// OperandNone marks an architecturally absent operand.
	OperandNone = -1
	// OperandArch marks a source that is architecturally present but not
	// currently renamed. Its value comes from the architectural register
	// file and is always ready.
	OperandArch = -2
)

// Instruction is the unit of work flowing through the pipeline. It carries
// the raw trace operands, the renamed operands assigned by the rename
// stage, operand readiness state, and the cycle at which it entered each
// pipeline stage.
type Instruction struct {
	// SeqNo is the program-order id, assigned at fetch.
	SeqNo int

	// PC is the instruction address. Carried for diagnostics only.
	PC uint64

	// OpType selects the functional-unit class (0, 1 or 2) and with it
	// the execute latency.
	OpType int

	// Architectural operands as they appear in the trace. OperandNone
	// means the operand is absent. Preserved for diagnostic output.
	Dest int
	Src1 int
	Src2 int

	// Renamed operands. RenDest holds this instruction's ROB tag. A
	// renamed source is OperandNone if absent, OperandArch if it reads
	// architectural state, otherwise the producer's ROB tag.
	RenDest int
	RenSrc1 int
	RenSrc2 int

	// Source readiness, established at register read and updated by
	// execute-stage wake-ups.
	Src1Ready bool
	Src2Ready bool

	// Latched readiness. Set when a wake-up marks a source ready while
	// the instruction is still in the register-read buffer; the register
	// read pass must then keep the delivered value instead of re-reading
	// the ROB ready bit, which may already be stale.
	Src1Latched bool
	Src2Latched bool

	// Per-stage entry cycles.
	FetchCycle     int
	DecodeCycle    int
	RenameCycle    int
	RegReadCycle   int
	DispatchCycle  int
	IssueCycle     int
	ExecuteCycle   int
	WritebackCycle int
	// RetireCycle is the cycle the instruction entered the retire stage;
	// CommitCycle is the cycle its retirement completed.
	RetireCycle int
	CommitCycle int

	// ExecDuration counts the cycles spent in the execute stage so far.
	ExecDuration int
}
