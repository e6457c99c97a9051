package report

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/o3sim/trace"
)

// CSVTraceWriter stores per-instruction stage timing into a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	insts      []*trace.Instruction
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the timing csv file. If the file already exists, it will be
// overwritten.
func (t *CSVTraceWriter) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "SeqNo, OpType, Dest, Src1, Src2, "+
		"Fetch, Decode, Rename, RegRead, Dispatch, "+
		"Issue, Execute, Writeback, Retire, Commit\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Write buffers one retired instruction for the CSV file.
func (t *CSVTraceWriter) Write(inst *trace.Instruction) {
	t.insts = append(t.insts, inst)
	if len(t.insts) >= t.bufferSize {
		t.Flush()
	}
}

// Flush flushes the buffered instructions to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, inst := range t.insts {
		fmt.Fprintf(t.file, "%d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d\n",
			inst.SeqNo,
			inst.OpType,
			inst.Dest,
			inst.Src1,
			inst.Src2,
			inst.FetchCycle,
			inst.DecodeCycle,
			inst.RenameCycle,
			inst.RegReadCycle,
			inst.DispatchCycle,
			inst.IssueCycle,
			inst.ExecuteCycle,
			inst.WritebackCycle,
			inst.RetireCycle,
			inst.CommitCycle,
		)
	}

	t.insts = nil
}
