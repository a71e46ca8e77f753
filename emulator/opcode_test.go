package emulator

import (
	"testing"

	"github.com/matryer/is"
)

func TestInstructionFields(t *testing.T) {
	is := is.New(t)

	// addiu sp, sp, -8
	op := Instruction(0x27bdfff8)
	is.Equal(op.Function(), uint32(0x09))
	is.Equal(op.S(), uint32(29))
	is.Equal(op.T(), uint32(29))
	is.Equal(op.Imm(), uint32(0xfff8))
	is.Equal(op.ImmSE(), uint32(0xfffffff8))

	// sll t0, t1, 4
	op = Instruction(0x00094100)
	is.Equal(op.Subfunction(), uint32(0))
	is.Equal(op.D(), uint32(8))
	is.Equal(op.Shift(), uint32(4))

	// j 0x3ffffff
	is.Equal(Instruction(0x0bffffff).ImmJump(), uint32(0x3ffffff))

	// mtc0 t0, cop0r12
	op = Instruction(0x40886000)
	is.Equal(op.CopOpcode(), uint32(0x04))
	is.Equal(op.CopNumber(), uint32(0))
	is.Equal(Instruction(0x48000000).CopNumber(), uint32(2))
}

func TestDecode(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		word uint32
		op   Op
	}{
		{0x00000000, OP_SLL},
		{0x00000008, OP_JR},
		{0x0000000c, OP_SYSCALL},
		{0x0000001a, OP_DIV},
		{0x0000002b, OP_SLTU},
		{0x00000001, OP_ILLEGAL}, // unassigned SPECIAL function
		{0x04000000, OP_BLTZ},
		{0x04010000, OP_BGEZ},
		{0x04100000, OP_BLTZAL},
		{0x04110000, OP_BGEZAL},
		{0x04030000, OP_BGEZ}, // bits [20:17] not 0b1000
		{0x08000000, OP_J},
		{0x0c000000, OP_JAL},
		{0x3c080013, OP_LUI},
		{0x40086000, OP_MFC0},
		{0x40886000, OP_MTC0},
		{0x42000010, OP_RFE},
		{0x42000001, OP_ILLEGAL}, // tlbr doesn't exist without a TLB
		{0x40400000, OP_ILLEGAL}, // cfc0
		{0x44000000, OP_COP1},
		{0x4a000000, OP_COP2},
		{0x4c000000, OP_COP3},
		{0x8d090010, OP_LW},
		{0xad090010, OP_SW},
		{0xc8000000, OP_LWC2},
		{0xe4000000, OP_SWC1},
		{0xfc000000, OP_ILLEGAL},
		{0xbc000000, OP_ILLEGAL}, // cache
	}
	for _, tt := range tests {
		is.Equal(Decode(Instruction(tt.word)), tt.op) // decoded operation
	}
}

func TestDecodeUnassignedPrimaryOpcodes(t *testing.T) {
	is := is.New(t)

	for _, function := range []uint32{0x14, 0x18, 0x1f, 0x27, 0x2c, 0x2f, 0x34, 0x3c, 0x3f} {
		is.Equal(Decode(Instruction(function<<26)), OP_ILLEGAL)
	}
}

func TestOpString(t *testing.T) {
	is := is.New(t)

	is.Equal(OP_SLL.String(), "sll")
	is.Equal(OP_BGEZAL.String(), "bgezal")
	is.Equal(OP_SWC3.String(), "swc3")
	is.Equal(Op(0xff).String(), "illegal")
}

func TestDisassemble(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		pc   uint32
		word uint32
		want string
	}{
		{RESET_VECTOR, 0x00000000, "nop"},
		{RESET_VECTOR, 0x3c080013, "lui t0, 0x13"},
		{RESET_VECTOR, 0x27bdfff8, "addiu sp, sp, -8"},
		{RESET_VECTOR, 0x10000010, "beq r0, r0, 0xbfc00044"},
		{0x80010000, 0x08000004, "j 0x80000010"},
		{RESET_VECTOR, 0x8d090010, "lw t1, 16(t0)"},
		{RESET_VECTOR, 0x40886000, "mtc0 t0, cop0r12"},
		{RESET_VECTOR, 0x42000010, "rfe"},
		{RESET_VECTOR, 0x01095021, "addu t2, t0, t1"},
		{RESET_VECTOR, 0xfc000000, "illegal 0xfc000000"},
	}
	for _, tt := range tests {
		is.Equal(Disassemble(tt.pc, Instruction(tt.word)), tt.want)
	}
}
