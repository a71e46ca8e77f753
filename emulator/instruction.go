package emulator

// A raw instruction word. The accessors return the fields used by the
// three encodings:
//
//	I-type: op[31:26] rs[25:21] rt[20:16] imm[15:0]
//	J-type: op[31:26] target[25:0]
//	R-type: op[31:26] rs[25:21] rt[20:16] rd[15:11] shamt[10:6] funct[5:0]
type Instruction uint32

// Primary opcode
func (op Instruction) Function() uint32 { return uint32(op) >> 26 }

// SPECIAL function field
func (op Instruction) Subfunction() uint32 { return uint32(op) & 0x3f }

// Source register (rs)
func (op Instruction) S() uint32 { return uint32(op) >> 21 & 0x1f }

// Target register (rt)
func (op Instruction) T() uint32 { return uint32(op) >> 16 & 0x1f }

// Destination register (rd)
func (op Instruction) D() uint32 { return uint32(op) >> 11 & 0x1f }

// Zero extended immediate
func (op Instruction) Imm() uint32 { return uint32(op) & 0xffff }

// Sign extended immediate
func (op Instruction) ImmSE() uint32 {
	return uint32(int32(int16(uint16(op))))
}

// 26 bit jump target, in words
func (op Instruction) ImmJump() uint32 { return uint32(op) & 0x3ffffff }

// Shift amount of the immediate shifts
func (op Instruction) Shift() uint32 { return uint32(op) >> 6 & 0x1f }

// Sub-operation of a coprocessor instruction, stored in the rs field
func (op Instruction) CopOpcode() uint32 { return op.S() }

// Coprocessor targeted by COPz, LWCz and SWCz
func (op Instruction) CopNumber() uint32 { return uint32(op) >> 26 & 3 }
