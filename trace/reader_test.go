package trace_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/trace"
)

var _ = Describe("Reader", func() {
	newReader := func(text string) *trace.Reader {
		return trace.NewReader(strings.NewReader(text))
	}

	It("should parse a record", func() {
		reader := newReader("ffe1 2 1 2 3\n")

		inst, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(inst.PC).To(Equal(uint64(0xffe1)))
		Expect(inst.OpType).To(Equal(2))
		Expect(inst.Dest).To(Equal(1))
		Expect(inst.Src1).To(Equal(2))
		Expect(inst.Src2).To(Equal(3))
	})

	It("should parse absent operands", func() {
		reader := newReader("4 0 -1 7 -1\n")

		inst, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(inst.Dest).To(Equal(-1))
		Expect(inst.Src1).To(Equal(7))
		Expect(inst.Src2).To(Equal(-1))
	})

	It("should produce records in order", func() {
		reader := newReader("0 0 1 -1 -1\n4 1 2 1 -1\n")

		first, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(first.PC).To(Equal(uint64(0)))

		second, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(second.PC).To(Equal(uint64(4)))

		_, ok = reader.Next()
		Expect(ok).To(BeFalse())
	})

	It("should skip blank lines", func() {
		reader := newReader("\n\n0 0 1 -1 -1\n\n4 0 2 -1 -1\n")

		first, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(first.PC).To(Equal(uint64(0)))

		second, ok := reader.Next()
		Expect(ok).To(BeTrue())
		Expect(second.PC).To(Equal(uint64(4)))
	})

	It("should report end of trace on empty input", func() {
		reader := newReader("")

		_, ok := reader.Next()
		Expect(ok).To(BeFalse())
	})

	It("should end the trace silently at a short record", func() {
		reader := newReader("0 0 1 -1 -1\n4 0 2\n8 0 3 -1 -1\n")

		_, ok := reader.Next()
		Expect(ok).To(BeTrue())

		_, ok = reader.Next()
		Expect(ok).To(BeFalse())
	})

	It("should end the trace silently at a malformed record", func() {
		reader := newReader("zz 0 1 -1 -1\n")

		_, ok := reader.Next()
		Expect(ok).To(BeFalse())
	})

	It("should stay exhausted after the trace ends", func() {
		reader := newReader("0 0 1 -1 -1\n")

		_, ok := reader.Next()
		Expect(ok).To(BeTrue())

		for i := 0; i < 3; i++ {
			_, ok = reader.Next()
			Expect(ok).To(BeFalse())
		}
	})
})
