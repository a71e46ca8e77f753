package main

import (
	"fmt"
	"strings"

	"github.com/zeozeozeo/psxcpu/emulator"
)

// Returns a human readable dump of the CPU registers, the coprocessor
// state and the instruction about to be executed
func formatState(cpu *emulator.CPU) string {
	var b strings.Builder

	fmt.Fprintf(&b, "pc %08x (%s)  next %08x  cycles %d\n",
		cpu.PC, emulator.SegmentOf(cpu.PC), cpu.NextPC, cpu.Time.Cycles)
	for i := uint32(0); i < 32; i++ {
		fmt.Fprintf(&b, "%-2s %08x", emulator.GetRegisterName(i), cpu.Reg(i))
		if i%4 == 3 {
			b.WriteByte('\n')
		} else {
			b.WriteString("  ")
		}
	}
	fmt.Fprintf(&b, "hi %08x  lo %08x\n", cpu.Hi, cpu.Lo)

	sr, cause := cpu.Cop0.SR, cpu.Cop0.Cause
	fmt.Fprintf(&b, "sr %08x  cause %08x (%s)  epc %08x\n",
		uint32(sr), uint32(cause), cause.ExceptionCode(), cpu.Cop0.Epc)
	fmt.Fprintf(&b, "kuc %d iec %d  isc %d  bev %d  im %02x  ip %02x\n",
		bit(sr.UserMode()), bit(sr.InterruptEnable()), bit(sr.CacheIsolated()),
		bit(sr.BootExceptionVectors()), sr.InterruptMask(), cause.InterruptPending())

	word, err := cpu.Load32(cpu.PC)
	if err != nil {
		fmt.Fprintf(&b, "%08x: %v\n", cpu.PC, err)
	} else {
		fmt.Fprintf(&b, "%08x: %s\n", cpu.PC, emulator.Disassemble(cpu.PC, emulator.Instruction(word)))
	}
	return b.String()
}

func bit(v bool) int {
	if v {
		return 1
	}
	return 0
}
