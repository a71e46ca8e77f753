package emulator

import "fmt"

// An operation resolved from the opcode, function, BCONDZ and COPz fields
// of an instruction
type Op uint8

const (
	OP_ILLEGAL Op = iota
	// SPECIAL
	OP_SLL
	OP_SRL
	OP_SRA
	OP_SLLV
	OP_SRLV
	OP_SRAV
	OP_JR
	OP_JALR
	OP_SYSCALL
	OP_BREAK
	OP_MFHI
	OP_MTHI
	OP_MFLO
	OP_MTLO
	OP_MULT
	OP_MULTU
	OP_DIV
	OP_DIVU
	OP_ADD
	OP_ADDU
	OP_SUB
	OP_SUBU
	OP_AND
	OP_OR
	OP_XOR
	OP_NOR
	OP_SLT
	OP_SLTU
	// BCONDZ
	OP_BLTZ
	OP_BGEZ
	OP_BLTZAL
	OP_BGEZAL
	// primary opcodes
	OP_J
	OP_JAL
	OP_BEQ
	OP_BNE
	OP_BLEZ
	OP_BGTZ
	OP_ADDI
	OP_ADDIU
	OP_SLTI
	OP_SLTIU
	OP_ANDI
	OP_ORI
	OP_XORI
	OP_LUI
	// COP0
	OP_MFC0
	OP_MTC0
	OP_RFE
	// other coprocessors
	OP_COP1
	OP_COP2
	OP_COP3
	// loads and stores
	OP_LB
	OP_LH
	OP_LWL
	OP_LW
	OP_LBU
	OP_LHU
	OP_LWR
	OP_SB
	OP_SH
	OP_SWL
	OP_SW
	OP_SWR
	OP_LWC0
	OP_LWC1
	OP_LWC2
	OP_LWC3
	OP_SWC0
	OP_SWC1
	OP_SWC2
	OP_SWC3
)

var opNames = [...]string{
	OP_ILLEGAL: "illegal",
	OP_SLL: "sll", OP_SRL: "srl", OP_SRA: "sra",
	OP_SLLV: "sllv", OP_SRLV: "srlv", OP_SRAV: "srav",
	OP_JR: "jr", OP_JALR: "jalr", OP_SYSCALL: "syscall", OP_BREAK: "break",
	OP_MFHI: "mfhi", OP_MTHI: "mthi", OP_MFLO: "mflo", OP_MTLO: "mtlo",
	OP_MULT: "mult", OP_MULTU: "multu", OP_DIV: "div", OP_DIVU: "divu",
	OP_ADD: "add", OP_ADDU: "addu", OP_SUB: "sub", OP_SUBU: "subu",
	OP_AND: "and", OP_OR: "or", OP_XOR: "xor", OP_NOR: "nor",
	OP_SLT: "slt", OP_SLTU: "sltu",
	OP_BLTZ: "bltz", OP_BGEZ: "bgez", OP_BLTZAL: "bltzal", OP_BGEZAL: "bgezal",
	OP_J: "j", OP_JAL: "jal", OP_BEQ: "beq", OP_BNE: "bne",
	OP_BLEZ: "blez", OP_BGTZ: "bgtz",
	OP_ADDI: "addi", OP_ADDIU: "addiu", OP_SLTI: "slti", OP_SLTIU: "sltiu",
	OP_ANDI: "andi", OP_ORI: "ori", OP_XORI: "xori", OP_LUI: "lui",
	OP_MFC0: "mfc0", OP_MTC0: "mtc0", OP_RFE: "rfe",
	OP_COP1: "cop1", OP_COP2: "cop2", OP_COP3: "cop3",
	OP_LB: "lb", OP_LH: "lh", OP_LWL: "lwl", OP_LW: "lw",
	OP_LBU: "lbu", OP_LHU: "lhu", OP_LWR: "lwr",
	OP_SB: "sb", OP_SH: "sh", OP_SWL: "swl", OP_SW: "sw", OP_SWR: "swr",
	OP_LWC0: "lwc0", OP_LWC1: "lwc1", OP_LWC2: "lwc2", OP_LWC3: "lwc3",
	OP_SWC0: "swc0", OP_SWC1: "swc1", OP_SWC2: "swc2", OP_SWC3: "swc3",
}

// Returns the mnemonic of the operation
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OP_ILLEGAL]
}

// Opcode encoding: http://problemkaputt.de/psx-spx.htm#cpuopcodeencoding
var primaryOps = [64]Op{
	0x02: OP_J, 0x03: OP_JAL, 0x04: OP_BEQ, 0x05: OP_BNE,
	0x06: OP_BLEZ, 0x07: OP_BGTZ,
	0x08: OP_ADDI, 0x09: OP_ADDIU, 0x0a: OP_SLTI, 0x0b: OP_SLTIU,
	0x0c: OP_ANDI, 0x0d: OP_ORI, 0x0e: OP_XORI, 0x0f: OP_LUI,
	0x11: OP_COP1, 0x12: OP_COP2, 0x13: OP_COP3,
	0x20: OP_LB, 0x21: OP_LH, 0x22: OP_LWL, 0x23: OP_LW,
	0x24: OP_LBU, 0x25: OP_LHU, 0x26: OP_LWR,
	0x28: OP_SB, 0x29: OP_SH, 0x2a: OP_SWL, 0x2b: OP_SW, 0x2e: OP_SWR,
	0x30: OP_LWC0, 0x31: OP_LWC1, 0x32: OP_LWC2, 0x33: OP_LWC3,
	0x38: OP_SWC0, 0x39: OP_SWC1, 0x3a: OP_SWC2, 0x3b: OP_SWC3,
}

var specialOps = [64]Op{
	0x00: OP_SLL, 0x02: OP_SRL, 0x03: OP_SRA,
	0x04: OP_SLLV, 0x06: OP_SRLV, 0x07: OP_SRAV,
	0x08: OP_JR, 0x09: OP_JALR, 0x0c: OP_SYSCALL, 0x0d: OP_BREAK,
	0x10: OP_MFHI, 0x11: OP_MTHI, 0x12: OP_MFLO, 0x13: OP_MTLO,
	0x18: OP_MULT, 0x19: OP_MULTU, 0x1a: OP_DIV, 0x1b: OP_DIVU,
	0x20: OP_ADD, 0x21: OP_ADDU, 0x22: OP_SUB, 0x23: OP_SUBU,
	0x24: OP_AND, 0x25: OP_OR, 0x26: OP_XOR, 0x27: OP_NOR,
	0x2a: OP_SLT, 0x2b: OP_SLTU,
}

// Resolves the operation encoded by `instruction`. Unassigned encodings
// return OP_ILLEGAL
func Decode(instruction Instruction) Op {
	switch instruction.Function() {
	case 0x00: // SPECIAL
		return specialOps[instruction.Subfunction()]
	case 0x01: // BCONDZ
		// bit 16 selects GEZ over LTZ, link when bits [20:17] are 0b1000.
		// every other value of rt still decodes to one of the four
		t := instruction.T()
		link := t&0x1e == 0x10
		switch {
		case t&1 != 0 && link:
			return OP_BGEZAL
		case t&1 != 0:
			return OP_BGEZ
		case link:
			return OP_BLTZAL
		default:
			return OP_BLTZ
		}
	case 0x10: // COP0
		switch instruction.CopOpcode() {
		case 0x00:
			return OP_MFC0
		case 0x04:
			return OP_MTC0
		}
		if instruction.CopOpcode()&0x10 != 0 && instruction.Subfunction() == 0x10 {
			return OP_RFE
		}
		return OP_ILLEGAL
	default:
		return primaryOps[instruction.Function()]
	}
}

// Returns a human readable representation of `instruction` located at `pc`
func Disassemble(pc uint32, instruction Instruction) string {
	op := Decode(instruction)
	s := GetRegisterName(instruction.S())
	t := GetRegisterName(instruction.T())
	d := GetRegisterName(instruction.D())
	imm := int32(instruction.ImmSE())

	switch op {
	case OP_ILLEGAL:
		return fmt.Sprintf("illegal 0x%08x", uint32(instruction))
	case OP_SLL, OP_SRL, OP_SRA:
		if op == OP_SLL && instruction == 0 {
			return "nop"
		}
		return fmt.Sprintf("%s %s, %s, %d", op, d, t, instruction.Shift())
	case OP_SLLV, OP_SRLV, OP_SRAV:
		return fmt.Sprintf("%s %s, %s, %s", op, d, t, s)
	case OP_JR, OP_MTHI, OP_MTLO:
		return fmt.Sprintf("%s %s", op, s)
	case OP_JALR:
		return fmt.Sprintf("%s %s, %s", op, d, s)
	case OP_SYSCALL, OP_BREAK, OP_RFE:
		return op.String()
	case OP_MFHI, OP_MFLO:
		return fmt.Sprintf("%s %s", op, d)
	case OP_MULT, OP_MULTU, OP_DIV, OP_DIVU:
		return fmt.Sprintf("%s %s, %s", op, s, t)
	case OP_ADD, OP_ADDU, OP_SUB, OP_SUBU, OP_AND, OP_OR, OP_XOR, OP_NOR,
		OP_SLT, OP_SLTU:
		return fmt.Sprintf("%s %s, %s, %s", op, d, s, t)
	case OP_BLTZ, OP_BGEZ, OP_BLTZAL, OP_BGEZAL, OP_BLEZ, OP_BGTZ:
		return fmt.Sprintf("%s %s, 0x%08x", op, s, pc+4+uint32(imm<<2))
	case OP_BEQ, OP_BNE:
		return fmt.Sprintf("%s %s, %s, 0x%08x", op, s, t, pc+4+uint32(imm<<2))
	case OP_J, OP_JAL:
		return fmt.Sprintf("%s 0x%08x", op, (pc+4)&0xf0000000|instruction.ImmJump()<<2)
	case OP_ADDI, OP_ADDIU, OP_SLTI, OP_SLTIU:
		return fmt.Sprintf("%s %s, %s, %d", op, t, s, imm)
	case OP_ANDI, OP_ORI, OP_XORI:
		return fmt.Sprintf("%s %s, %s, 0x%x", op, t, s, instruction.Imm())
	case OP_LUI:
		return fmt.Sprintf("%s %s, 0x%x", op, t, instruction.Imm())
	case OP_MFC0, OP_MTC0:
		return fmt.Sprintf("%s %s, cop0r%d", op, t, instruction.D())
	case OP_COP1, OP_COP2, OP_COP3:
		return fmt.Sprintf("%s 0x%07x", op, uint32(instruction)&0x1ffffff)
	case OP_LWC0, OP_LWC1, OP_LWC2, OP_LWC3, OP_SWC0, OP_SWC1, OP_SWC2, OP_SWC3:
		return fmt.Sprintf("%s cop%dr%d, %d(%s)", op, instruction.CopNumber(), instruction.T(), imm, s)
	default: // loads and stores
		return fmt.Sprintf("%s %s, %d(%s)", op, t, imm, s)
	}
}
