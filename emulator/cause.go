package emulator

// Represents the value of the cause register (cop0r13)
//
//	bits 2-6   exception code
//	bits 8-15  interrupt pending (bits 8-9 are software interrupts)
//	bits 28-29 coprocessor number for CoprocessorUnusable
//	bit  30    branch taken
//	bit  31    branch delay
type CauseRegister uint32

func (cause CauseRegister) ExceptionCode() Exception {
	return Exception((uint32(cause) >> 2) & 0x1f)
}

func (cause *CauseRegister) SetExceptionCode(code Exception) {
	*cause = CauseRegister(uint32(*cause)&^0x7c | (uint32(code)&0x1f)<<2)
}

// Returns the 8 interrupt pending lines
func (cause CauseRegister) InterruptPending() uint8 {
	return uint8(uint32(cause) >> 8)
}

func (cause *CauseRegister) SetInterruptPending(ip uint8) {
	*cause = CauseRegister(uint32(*cause)&^0xff00 | uint32(ip)<<8)
}

func (cause CauseRegister) CoprocessorNumber() uint32 {
	return (uint32(cause) >> 28) & 3
}

func (cause *CauseRegister) SetCoprocessorNumber(n uint32) {
	*cause = CauseRegister(uint32(*cause)&^(3<<28) | (n&3)<<28)
}

func (cause CauseRegister) BranchTaken() bool {
	return uint32(cause)&(1<<30) != 0
}

func (cause *CauseRegister) SetBranchTaken(v bool) {
	*cause = CauseRegister(uint32(*cause)&^(1<<30) | oneIfTrue(v)<<30)
}

func (cause CauseRegister) BranchDelay() bool {
	return uint32(cause)&(1<<31) != 0
}

func (cause *CauseRegister) SetBranchDelay(v bool) {
	*cause = CauseRegister(uint32(*cause)&^(1<<31) | oneIfTrue(v)<<31)
}
