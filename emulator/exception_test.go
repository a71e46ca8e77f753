package emulator_test

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/zeozeozeo/psxcpu/emulator"
)

// Word index of the exception handler at 0xbfc00180
const handlerIndex = 0x180 / 4

// Builds a CPU from a BIOS made of the given words
func bootCPU(words map[int]uint32) *emulator.CPU {
	data := make([]byte, emulator.BIOS_SIZE)
	for idx, word := range words {
		binary.LittleEndian.PutUint32(data[idx*4:], word)
	}
	bios, err := emulator.LoadBIOS(bytes.NewReader(data))
	Expect(err).NotTo(HaveOccurred())

	logger, _ := test.NewNullLogger()
	cpu := emulator.NewCPU(emulator.NewInterconnect(bios, emulator.NewRAM()))
	cpu.SetLogger(logger)
	return cpu
}

func run(cpu *emulator.CPU, n int) {
	for i := 0; i < n; i++ {
		cpu.RunNextInstruction()
	}
}

var _ = Describe("Exception handling", func() {
	// handler that returns to the instruction after the faulting one:
	//   mfc0 k0, epc
	//   mfc0 k1, cause
	//   addiu k0, k0, 4
	//   jr k0
	//   rfe
	handler := []uint32{0x401a7000, 0x401b6800, 0x275a0004, 0x03400008, 0x42000010}

	program := func(words ...uint32) map[int]uint32 {
		m := map[int]uint32{}
		for i, w := range words {
			m[i] = w
		}
		for i, w := range handler {
			m[handlerIndex+i] = w
		}
		return m
	}

	It("returns from a system call", func() {
		cpu := bootCPU(program(
			0x0000000c, // syscall
			0x34080042, // ori t0, r0, 0x42
		))

		run(cpu, 1)
		Expect(cpu.PC).To(Equal(uint32(0xbfc00180)))
		Expect(cpu.Cop0.Cause.ExceptionCode()).To(Equal(emulator.EXCEPTION_SYSCALL))

		run(cpu, 6)
		Expect(cpu.Reg(26)).To(Equal(uint32(0xbfc00004)))
		Expect(cpu.Reg(27)).To(Equal(uint32(emulator.EXCEPTION_SYSCALL) << 2))
		Expect(cpu.Reg(8)).To(Equal(uint32(0x42)))
		Expect(uint32(cpu.Cop0.SR)).To(Equal(uint32(0x00400000)))
	})

	It("skips a reserved instruction", func() {
		cpu := bootCPU(program(
			0xfc000000,
			0x34080042, // ori t0, r0, 0x42
		))

		run(cpu, 7)
		Expect(cpu.Reg(27)).To(Equal(uint32(emulator.EXCEPTION_ILLEGAL_INSTRUCTION) << 2))
		Expect(cpu.Reg(8)).To(Equal(uint32(0x42)))
	})

	It("restores the interrupt enable and mode stack", func() {
		cpu := bootCPU(program(
			0x0000000d, // break
			0x00000000,
		))
		cpu.Cop0.SR |= 0x05 // IEc and IEp

		run(cpu, 1)
		Expect(uint32(cpu.Cop0.SR) & 0x3f).To(Equal(uint32(0x14)))
		Expect(cpu.Cop0.SR.InterruptEnable()).To(BeFalse())

		// RFE pops two entries, the old one stays in place
		run(cpu, 5)
		Expect(uint32(cpu.Cop0.SR) & 0x3f).To(Equal(uint32(0x15)))
		Expect(cpu.PC).To(Equal(uint32(0xbfc00004)))
	})

	Context("when the boot exception vectors are disabled", func() {
		It("jumps to the RAM handler", func() {
			cpu := bootCPU(program(
				0x40806000, // mtc0 r0, sr
				0x0000000c, // syscall
			))

			run(cpu, 2)
			Expect(cpu.PC).To(Equal(uint32(0x80000080)))
			Expect(cpu.Cop0.Epc).To(Equal(uint32(0xbfc00004)))
		})
	})

	DescribeTable("faulting instructions",
		func(word uint32, code emulator.Exception) {
			cpu := bootCPU(program(word))
			run(cpu, 1)
			Expect(cpu.Cop0.Cause.ExceptionCode()).To(Equal(code))
			Expect(cpu.Cop0.Epc).To(Equal(emulator.RESET_VECTOR))
			Expect(cpu.PC).To(Equal(uint32(0xbfc00180)))
		},
		Entry("syscall", uint32(0x0000000c), emulator.EXCEPTION_SYSCALL),
		Entry("break", uint32(0x0000000d), emulator.EXCEPTION_BREAK),
		Entry("reserved", uint32(0xfc000000), emulator.EXCEPTION_ILLEGAL_INSTRUCTION),
		Entry("cop1", uint32(0x44000000), emulator.EXCEPTION_COPROCESSOR_ERROR),
		Entry("lw from r0 + 1", uint32(0x8c090001), emulator.EXCEPTION_LOAD_ADDRESS_ERROR),
		Entry("sw to r0 + 2", uint32(0xac090002), emulator.EXCEPTION_STORE_ADDRESS_ERROR),
	)
})
