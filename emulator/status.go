package emulator

// Represents the value of the status register (cop0r12)
//
//	bit  0     IEc  current interrupt enable
//	bit  1     KUc  current mode (0=kernel, 1=user)
//	bits 2-3   IEp/KUp  previous
//	bits 4-5   IEo/KUo  old
//	bits 8-15  Im   interrupt mask
//	bit  16    IsC  isolate cache
//	bit  17    SwC  swapped cache
//	bit  18    PZ   write zero as parity bits
//	bit  20    PE   cache parity error
//	bit  21    TS   TLB shutdown
//	bit  22    BEV  boot exception vectors
//	bit  25    RE   reverse endianness
//	bits 28-31 CU0-CU3  coprocessor enable
//
// Bits not listed keep whatever was last written to them
type StatusRegister uint32

func (sr StatusRegister) bit(n uint) bool {
	return uint32(sr)&(1<<n) != 0
}

func (sr *StatusRegister) setBit(n uint, v bool) {
	*sr = StatusRegister(uint32(*sr)&^(1<<n) | oneIfTrue(v)<<n)
}

func (sr StatusRegister) InterruptEnable() bool { return sr.bit(0) }
func (sr *StatusRegister) SetInterruptEnable(v bool) { sr.setBit(0, v) }
func (sr StatusRegister) UserMode() bool { return sr.bit(1) }
func (sr *StatusRegister) SetUserMode(v bool) { sr.setBit(1, v) }
func (sr StatusRegister) PrevInterruptEnable() bool { return sr.bit(2) }
func (sr *StatusRegister) SetPrevInterruptEnable(v bool) { sr.setBit(2, v) }
func (sr StatusRegister) PrevUserMode() bool { return sr.bit(3) }
func (sr *StatusRegister) SetPrevUserMode(v bool) { sr.setBit(3, v) }
func (sr StatusRegister) OldInterruptEnable() bool { return sr.bit(4) }
func (sr *StatusRegister) SetOldInterruptEnable(v bool) { sr.setBit(4, v) }
func (sr StatusRegister) OldUserMode() bool { return sr.bit(5) }
func (sr *StatusRegister) SetOldUserMode(v bool) { sr.setBit(5, v) }

// Returns the 8 bit interrupt mask in bits [15:8]
func (sr StatusRegister) InterruptMask() uint8 {
	return uint8(uint32(sr) >> 8)
}

func (sr *StatusRegister) SetInterruptMask(mask uint8) {
	*sr = StatusRegister(uint32(*sr)&^0xff00 | uint32(mask)<<8)
}

// Returns true if the cache is isolated
func (sr StatusRegister) CacheIsolated() bool { return sr.bit(16) }
func (sr *StatusRegister) SetCacheIsolated(v bool) { sr.setBit(16, v) }
func (sr StatusRegister) SwappedCache() bool { return sr.bit(17) }
func (sr *StatusRegister) SetSwappedCache(v bool) { sr.setBit(17, v) }
func (sr StatusRegister) ParityZero() bool { return sr.bit(18) }
func (sr StatusRegister) CacheParityError() bool { return sr.bit(20) }
func (sr StatusRegister) TlbShutdown() bool { return sr.bit(21) }
func (sr StatusRegister) BootExceptionVectors() bool { return sr.bit(22) }
func (sr *StatusRegister) SetBootExceptionVectors(v bool) {
	sr.setBit(22, v)
}
func (sr StatusRegister) ReverseEndianness() bool { return sr.bit(25) }

// Returns true if coprocessor `n` (0-3) is usable
func (sr StatusRegister) CopEnabled(n uint32) bool {
	return sr.bit(28 + uint(n&3))
}

func (sr *StatusRegister) SetCopEnabled(n uint32, v bool) {
	sr.setBit(28+uint(n&3), v)
}

// Returns the address for the exception handler depending on the BEV bit
func (sr StatusRegister) ExceptionHandler() uint32 {
	if sr.BootExceptionVectors() {
		return 0xbfc00180
	}
	return 0x80000080
}

// Shift bits [5:0] of the SR two places to the left.
// those bits are three pairs of Interrupt Enable/User Mode
// bits behaving like a stack of 3 entries deep. Entering an
// exception pushes a pair of zeroes by left shifting the stack
// which disables interrupts and puts the CPU in kernel mode.
// The previous third entry is discarded (it's up to the kernel
// to handle more than two recursive exception levels)
func (sr *StatusRegister) EnterException() {
	mode := uint32(*sr) & 0x3f
	*sr = StatusRegister(uint32(*sr)&^0x3f | (mode<<2)&0x3f)
}

// Pops the interrupt enable/user mode stack. The old entry is left
// untouched, RFE only shifts two of the three pairs
func (sr *StatusRegister) ReturnFromException() {
	mode := uint32(*sr) & 0x3f
	*sr = StatusRegister(uint32(*sr)&^0xf | mode>>2)
}
