package emulator

import (
	"errors"
)

var errOverflow = errors.New("integer overflow")

// Names of registers
var RegisterNames = []string{
	"r0", "at", "v0", "v1", "a0", "a1", "a2", "a3", // 00
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", // 08
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", // 10
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra", // 18
}

// Returns the name of the register index
func GetRegisterName(index uint32) string {
	return RegisterNames[index&0x1f]
}

// Adds two signed integers and checks for overflow
func add32Overflow(a, b int32) (int32, error) {
	c := a + b
	// overflow happens when both operands have the same sign and the
	// result has a different one
	if (a >= 0) == (b >= 0) && (c >= 0) != (a >= 0) {
		return c, errOverflow
	}
	return c, nil
}

// Subtracts two signed integers and checks for overflow
func sub32Overflow(a, b int32) (int32, error) {
	c := a - b
	if (a >= 0) != (b >= 0) && (c >= 0) != (a >= 0) {
		return c, errOverflow
	}
	return c, nil
}

type AccessSize uint32

// Types of accesses supported by the PlayStation archeticture
const (
	ACCESS_BYTE     AccessSize = 1 // 8 bit
	ACCESS_HALFWORD AccessSize = 2 // 16 bit
	ACCESS_WORD     AccessSize = 4 // 32 bit
)

func (size AccessSize) String() string {
	switch size {
	case ACCESS_BYTE:
		return "byte"
	case ACCESS_HALFWORD:
		return "halfword"
	default:
		return "word"
	}
}

// Returns true if `addr` is a multiple of the access size
func (size AccessSize) Aligned(addr uint32) bool {
	return addr&(uint32(size)-1) == 0
}

func oneIfTrue(val bool) uint32 {
	if val {
		return 1
	}
	return 0
}
