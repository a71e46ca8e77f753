package emulator

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// PC reset value at the beginning of the BIOS
const RESET_VECTOR uint32 = 0xbfc00000

// Registers aren't initialized on reset. Fill them with a recognizable
// pattern instead of zeroes
const garbageRegister uint32 = 0xdeadbeef

// A register write waiting for the load delay to elapse
type LoadDelay struct {
	Reg   uint32 // Target register
	Val   uint32 // Loaded value
	Valid bool   // False if the slot is empty
}

// CPU state
type CPU struct {
	// Address of the next instruction to fetch
	PC uint32
	// Address fetched after PC. Branches and jumps write here, which
	// is what makes the instruction following them execute first
	NextPC uint32
	// Address of the instruction currently being executed, used for
	// exceptions
	CurrentPC uint32
	Regs      [32]uint32 // General purpose registers. The first value must always be 0
	Hi        uint32     // High half of multiplication results, division remainder
	Lo        uint32     // Low half of multiplication results, division quotient
	// Pending loads. Slot 0 is written to the registers at the end of the
	// current instruction, slot 1 holds the load issued by it
	Loads [2]LoadDelay
	// Set by branch and jump instructions, taken or not
	Branch bool
	// Set when the branch or jump redirected NextPC
	BranchTaken bool
	// True if the current instruction is in a delay slot, i.e. `Branch`
	// was set by the previous instruction
	DelaySlot bool
	// `BranchTaken` of the previous instruction
	DelayTaken bool

	Cop0     *Cop0         // System control coprocessor
	Inter    *Interconnect // Memory interface
	Time     *TimeHandler  // Cycle counter
	Debugger *Debugger     // Optional, receives PC changes and memory accesses
	Log      logrus.FieldLogger
}

// Creates a new CPU state
func NewCPU(inter *Interconnect) *CPU {
	cpu := &CPU{
		Cop0:  NewCop0(),
		Inter: inter,
		Time:  NewTimeHandler(),
		Log:   inter.Log,
	}
	cpu.Cop0.Log = inter.Log
	cpu.Reset()
	return cpu
}

// Puts the CPU back at the reset vector. Memory is left untouched
func (cpu *CPU) Reset() {
	cpu.PC = RESET_VECTOR
	cpu.NextPC = RESET_VECTOR + 4
	cpu.CurrentPC = RESET_VECTOR

	for i := 1; i < len(cpu.Regs); i++ {
		cpu.Regs[i] = garbageRegister
	}
	cpu.Regs[0] = 0
	cpu.Hi, cpu.Lo = garbageRegister, garbageRegister
	cpu.Loads = [2]LoadDelay{}
	cpu.Branch, cpu.BranchTaken = false, false
	cpu.DelaySlot, cpu.DelayTaken = false, false

	// BEV is set on reset so that exceptions jump into the BIOS
	cpu.Cop0.SR = 0
	cpu.Cop0.SR.SetBootExceptionVectors(true)
	cpu.Cop0.Cause = 0
}

// Sets the logger used by the CPU, the coprocessor and the interconnect
func (cpu *CPU) SetLogger(log logrus.FieldLogger) {
	cpu.Log = log
	cpu.Cop0.Log = log
	cpu.Inter.Log = log
	if cpu.Debugger != nil {
		cpu.Debugger.Log = log
	}
}

// Runs the instruction at the program counter and increments it
func (cpu *CPU) RunNextInstruction() {
	cpu.CurrentPC = cpu.PC

	// the branch flags of the previous instruction describe the delay
	// slot we're about to execute
	cpu.DelaySlot = cpu.Branch
	cpu.DelayTaken = cpu.BranchTaken
	cpu.Branch = false
	cpu.BranchTaken = false

	if !ACCESS_WORD.Aligned(cpu.CurrentPC) {
		cpu.Cop0.BadVaddr = cpu.CurrentPC
		cpu.Exception(EXCEPTION_LOAD_ADDRESS_ERROR)
		cpu.finishStep()
		return
	}

	// fetch instruction at PC. The instruction cache isn't emulated,
	// every fetch goes to the interconnect
	word, err := cpu.Inter.Load32(cpu.CurrentPC)

	// increment PC to point to the next instruction before executing
	// so that branches land in NextPC
	cpu.PC = cpu.NextPC
	cpu.NextPC += 4 // wraps around: 0xfffffffc + 4 = 0

	switch {
	case err != nil:
		cpu.Log.WithError(err).Debug("cpu: instruction fetch failed")
		cpu.Cop0.BadVaddr = cpu.CurrentPC
		cpu.Exception(EXCEPTION_LOAD_ADDRESS_ERROR)
	case cpu.Cop0.IrqActive():
		cpu.Exception(EXCEPTION_INTERRUPT)
	default:
		cpu.DecodeAndExecute(Instruction(word))
	}

	cpu.finishStep()
}

// Commits the due load, advances time and notifies the debugger
func (cpu *CPU) finishStep() {
	cpu.moveLoadDelays()
	cpu.Time.Tick(1)
	if cpu.Debugger != nil {
		cpu.Debugger.changedPc(cpu.PC)
	}
}

// Writes the due load into the register file and makes the load issued
// by the current instruction due
func (cpu *CPU) moveLoadDelays() {
	if slot := cpu.Loads[0]; slot.Valid {
		cpu.Regs[slot.Reg] = slot.Val
	}
	cpu.Loads[0] = cpu.Loads[1]
	cpu.Loads[1] = LoadDelay{}
}

// Returns the register value at `index`. The first register is always zero
func (cpu *CPU) Reg(index uint32) uint32 {
	return cpu.Regs[index]
}

// Sets the value at the `index` register. A pending load to the same
// register is cancelled, the most recent write wins
func (cpu *CPU) SetReg(index, val uint32) {
	// R0 should always remain 0, we can't change it
	if index == 0 {
		return
	}
	cpu.Regs[index] = val
	cpu.cancelLoad(index)
}

// Schedules `val` to be written into `index` after the next instruction
func (cpu *CPU) delayedLoad(index, val uint32) {
	if index == 0 {
		return
	}
	if cpu.Loads[0].Valid && cpu.Loads[0].Reg == index {
		cpu.Loads[0] = LoadDelay{}
	}
	cpu.Loads[1] = LoadDelay{Reg: index, Val: val, Valid: true}
}

func (cpu *CPU) cancelLoad(index uint32) {
	for i := range cpu.Loads {
		if cpu.Loads[i].Valid && cpu.Loads[i].Reg == index {
			cpu.Loads[i] = LoadDelay{}
		}
	}
}

// Returns the value of `index` including a load that hasn't reached the
// register file yet. Used by LWL and LWR
func (cpu *CPU) pendingReg(index uint32) uint32 {
	if slot := cpu.Loads[0]; slot.Valid && slot.Reg == index {
		return slot.Val
	}
	return cpu.Regs[index]
}

// Replaces NextPC with `target`. Only one redirect can be in flight
func (cpu *CPU) redirect(target uint32) {
	if cpu.DelaySlot && cpu.DelayTaken {
		cpu.Log.WithFields(logrus.Fields{
			"pc":     fmt.Sprintf("0x%08x", cpu.CurrentPC),
			"target": fmt.Sprintf("0x%08x", target),
		}).Warn("cpu: branch in a taken branch delay slot")
	}
	cpu.NextPC = target
	cpu.BranchTaken = true
}

// Marks the current instruction as a branch and redirects to the delay
// slot address plus `offset` words if `cond` holds
func (cpu *CPU) branchIf(cond bool, offset uint32) {
	cpu.Branch = true
	if cond {
		// PC already points to the delay slot
		cpu.redirect(cpu.PC + offset<<2)
	}
}

// Jumps to `target`
func (cpu *CPU) jump(target uint32) {
	cpu.Branch = true
	cpu.redirect(target)
}

// Raises `cause` for the current instruction
func (cpu *CPU) Exception(cause Exception) {
	cpu.raise(ExceptionContext{Cause: cause})
}

// Raises EXCEPTION_COPROCESSOR_ERROR for coprocessor `n`
func (cpu *CPU) coprocessorUnusable(n uint32) {
	cpu.raise(ExceptionContext{Cause: EXCEPTION_COPROCESSOR_ERROR, Coprocessor: n})
}

// Enters the exception handler. The faulting PC and the delay slot state
// are taken from the pipeline
func (cpu *CPU) raise(ctx ExceptionContext) {
	ctx.Pc = cpu.CurrentPC
	ctx.InDelaySlot = cpu.DelaySlot
	ctx.BranchTaken = cpu.DelayTaken

	handler := cpu.Cop0.EnterException(ctx)

	cpu.Log.WithFields(logrus.Fields{
		"cause":   ctx.Cause.String(),
		"pc":      fmt.Sprintf("0x%08x", ctx.Pc),
		"delay":   ctx.InDelaySlot,
		"handler": fmt.Sprintf("0x%08x", handler),
	}).Debug("cpu: exception")

	// exceptions don't have a delay slot
	cpu.PC = handler
	cpu.NextPC = handler + 4
	cpu.Branch = false
	cpu.BranchTaken = false
}

// Loads `size` bytes from `addr`. Raises an exception and returns false
// if the access is misaligned or unmapped
func (cpu *CPU) load(addr uint32, size AccessSize) (uint32, bool) {
	if !size.Aligned(addr) {
		cpu.Cop0.BadVaddr = addr
		cpu.Exception(EXCEPTION_LOAD_ADDRESS_ERROR)
		return 0, false
	}
	if cpu.Debugger != nil {
		cpu.Debugger.memoryRead(addr)
	}

	v, err := cpu.Inter.Load(addr, size)
	if err != nil {
		cpu.Log.WithError(err).Debug("cpu: load failed")
		cpu.Cop0.BadVaddr = addr
		cpu.Exception(EXCEPTION_LOAD_ADDRESS_ERROR)
		return 0, false
	}
	return v, true
}

// Stores `size` bytes of `val` at `addr`. Misaligned stores raise an
// exception, stores with an isolated cache never reach the interconnect
func (cpu *CPU) store(addr uint32, size AccessSize, val uint32) {
	if !size.Aligned(addr) {
		cpu.Cop0.BadVaddr = addr
		cpu.Exception(EXCEPTION_STORE_ADDRESS_ERROR)
		return
	}
	if cpu.Cop0.CacheIsolated() {
		// the write goes to the data cache which isn't emulated
		cpu.Log.WithField("addr", fmt.Sprintf("0x%08x", addr)).
			Trace("cpu: ignoring store while cache is isolated")
		return
	}
	if cpu.Debugger != nil {
		cpu.Debugger.memoryWrite(addr)
	}
	cpu.Inter.Store(addr, size, val)
}

// Returns a 32bit little endian value at `addr`
func (cpu *CPU) Load32(addr uint32) (uint32, error) {
	return cpu.Inter.Load32(addr)
}

// Stores a 32bit value at `addr` through the same path as SW
func (cpu *CPU) Store32(addr, val uint32) {
	cpu.store(addr, ACCESS_WORD, val)
}
