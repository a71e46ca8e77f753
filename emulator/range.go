package emulator

import "fmt"

var (
	// Main RAM, mirrored through KUSEG, KSEG0 and KSEG1
	RAM_RANGE = NewRange(0x00000000, RAM_ALLOC_SIZE)
	// Expansion region 1 (parallel port). Nothing is plugged in
	EXPANSION_1 = NewRange(0x1f000000, 512*1024)
	// Memory latency and expansion mapping (also known as SYSCONTROL)
	MEM_CONTROL = NewRange(0x1f801000, 36)
	// Register that has something to do with RAM configuration, configured by the BIOS
	RAM_SIZE = NewRange(0x1f801060, 4)
	// Sound Processing Unit registers
	SPU_RANGE = NewRange(0x1f801c00, 640)
	// Expansion region 2, used for the POST display
	EXPANSION_2 = NewRange(0x1f802000, 66)
	// The range of the BIOS in the system memory
	BIOS_RANGE = NewRange(0x1fc00000, BIOS_SIZE)
	// Cache control register, full address since it's in KSEG2
	CACHE_CONTROL = NewRange(0xfffe0130, 4)
)

// A contiguous block of physical addresses
type Range struct {
	Start  uint32
	Length uint32 // In bytes
}

func NewRange(start uint32, length uint32) Range {
	return Range{Start: start, Length: length}
}

// Written so that ranges ending at the top of the address space don't
// overflow
func (r *Range) Contains(addr uint32) bool {
	return addr >= r.Start && addr-r.Start < r.Length
}

// Returns `addr` relative to Start. The result is meaningless if the range
// doesn't contain `addr`
func (r *Range) Offset(addr uint32) uint32 {
	return addr - r.Start
}

// Returns true if the two ranges share at least one address
func (r *Range) Overlaps(other Range) bool {
	return r.Contains(other.Start) || other.Contains(r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("0x%08x-0x%08x", r.Start, r.Start+(r.Length-1))
}
