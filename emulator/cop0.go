package emulator

import "github.com/sirupsen/logrus"

// Processor revision identifier of the R3000A (cop0r15)
const COP0_PRID uint32 = 0x00000002

// Cop0 register indices
const (
	COP0_BADVADDR uint32 = 8
	COP0_SR       uint32 = 12
	COP0_CAUSE    uint32 = 13
	COP0_EPC      uint32 = 14
	COP0_PRID_REG uint32 = 15
)

// Coprocessor 0: System Control
type Cop0 struct {
	SR       StatusRegister     // Register 12: status register
	Cause    CauseRegister      // Register 13: cause register
	Epc      uint32             // Register 14: exception PC
	BadVaddr uint32             // Register 8: last bad virtual address
	Log      logrus.FieldLogger // Receives ignored register writes
}

// State of the pipeline captured when an exception is raised
type ExceptionContext struct {
	Cause       Exception // Exception code
	Pc          uint32    // Address of the faulting instruction
	InDelaySlot bool      // True if the faulting instruction is in a branch delay slot
	BranchTaken bool      // True if the branch owning the delay slot was taken
	Coprocessor uint32    // Coprocessor number for EXCEPTION_COPROCESSOR_ERROR
}

// Creates a new Cop0 instance
func NewCop0() *Cop0 {
	return &Cop0{Log: logrus.StandardLogger()}
}

// Returns the value of register `reg`. The second return value is false
// if the register isn't emulated
func (cop *Cop0) Load(reg uint32) (uint32, bool) {
	switch reg {
	case COP0_BADVADDR:
		return cop.BadVaddr, true
	case COP0_SR:
		return uint32(cop.SR), true
	case COP0_CAUSE:
		return uint32(cop.Cause), true
	case COP0_EPC:
		return cop.Epc, true
	case COP0_PRID_REG:
		return COP0_PRID, true
	}
	return 0, false
}

// Writes `val` into register `reg`. Writes to registers that aren't
// emulated are ignored
func (cop *Cop0) Store(reg, val uint32) {
	switch reg {
	case COP0_SR:
		cop.SR = StatusRegister(val)
	case COP0_CAUSE:
		cop.SetCause(val)
	default:
		// breakpoint registers (3, 5, 6, 7, 9, 11) and the read only
		// registers end up here
		cop.Log.WithFields(logrus.Fields{
			"reg":   reg,
			"value": val,
		}).Debug("cop0: ignored register write")
	}
}

// Only the two software interrupt bits [9:8] of the cause register are
// writable. The hardware lines [15:10] are left untouched
func (cop *Cop0) SetCause(val uint32) {
	ip := cop.Cause.InterruptPending()
	ip = ip&^3 | uint8((val>>8)&3)
	cop.Cause.SetInterruptPending(ip)
}

// Returns true if the cache is isolated
func (cop *Cop0) CacheIsolated() bool {
	return cop.SR.CacheIsolated()
}

// Updates the cop0 registers for the exception described by `ctx` and
// returns the address of the exception handler
func (cop *Cop0) EnterException(ctx ExceptionContext) uint32 {
	cop.SR.EnterException()

	cop.Cause.SetExceptionCode(ctx.Cause)
	cop.Cause.SetCoprocessorNumber(ctx.Coprocessor)

	if ctx.InDelaySlot {
		// EPC points to the branch instruction so that it gets
		// executed again when returning
		cop.Epc = ctx.Pc - 4
		cop.Cause.SetBranchDelay(true)
		cop.Cause.SetBranchTaken(ctx.BranchTaken)
	} else {
		cop.Epc = ctx.Pc
		cop.Cause.SetBranchDelay(false)
		cop.Cause.SetBranchTaken(false)
	}

	return cop.SR.ExceptionHandler()
}

// Discard the current state of the status register
func (cop *Cop0) ReturnFromException() {
	cop.SR.ReturnFromException()
}

func (cop *Cop0) IrqEnabled() bool {
	return cop.SR.InterruptEnable()
}

// Returns true if an unmasked interrupt is pending and interrupts are enabled
func (cop *Cop0) IrqActive() bool {
	pending := cop.Cause.InterruptPending() & cop.SR.InterruptMask()
	return cop.IrqEnabled() && pending != 0
}
