package emulator

// Decodes and executes an instruction. Unknown instructions raise
// EXCEPTION_ILLEGAL_INSTRUCTION
func (cpu *CPU) DecodeAndExecute(instruction Instruction) {
	// http://problemkaputt.de/psx-spx.htm#cpuopcodeencoding
	switch Decode(instruction) {
	case OP_SLL:
		cpu.OpSLL(instruction)
	case OP_SRL:
		cpu.OpSRL(instruction)
	case OP_SRA:
		cpu.OpSRA(instruction)
	case OP_SLLV:
		cpu.OpSLLV(instruction)
	case OP_SRLV:
		cpu.OpSRLV(instruction)
	case OP_SRAV:
		cpu.OpSRAV(instruction)
	case OP_JR:
		cpu.OpJR(instruction)
	case OP_JALR:
		cpu.OpJALR(instruction)
	case OP_SYSCALL:
		cpu.Exception(EXCEPTION_SYSCALL)
	case OP_BREAK:
		cpu.Exception(EXCEPTION_BREAK)
	case OP_MFHI:
		cpu.SetReg(instruction.D(), cpu.Hi)
	case OP_MTHI:
		cpu.Hi = cpu.Reg(instruction.S())
	case OP_MFLO:
		cpu.SetReg(instruction.D(), cpu.Lo)
	case OP_MTLO:
		cpu.Lo = cpu.Reg(instruction.S())
	case OP_MULT:
		cpu.OpMULT(instruction)
	case OP_MULTU:
		cpu.OpMULTU(instruction)
	case OP_DIV:
		cpu.OpDIV(instruction)
	case OP_DIVU:
		cpu.OpDIVU(instruction)
	case OP_ADD:
		cpu.OpADD(instruction)
	case OP_ADDU:
		cpu.OpADDU(instruction)
	case OP_SUB:
		cpu.OpSUB(instruction)
	case OP_SUBU:
		cpu.OpSUBU(instruction)
	case OP_AND:
		cpu.SetReg(instruction.D(), cpu.Reg(instruction.S())&cpu.Reg(instruction.T()))
	case OP_OR:
		cpu.SetReg(instruction.D(), cpu.Reg(instruction.S())|cpu.Reg(instruction.T()))
	case OP_XOR:
		cpu.SetReg(instruction.D(), cpu.Reg(instruction.S())^cpu.Reg(instruction.T()))
	case OP_NOR:
		cpu.SetReg(instruction.D(), ^(cpu.Reg(instruction.S()) | cpu.Reg(instruction.T())))
	case OP_SLT:
		v := int32(cpu.Reg(instruction.S())) < int32(cpu.Reg(instruction.T()))
		cpu.SetReg(instruction.D(), oneIfTrue(v))
	case OP_SLTU:
		v := cpu.Reg(instruction.S()) < cpu.Reg(instruction.T())
		cpu.SetReg(instruction.D(), oneIfTrue(v))
	case OP_BLTZ, OP_BGEZ, OP_BLTZAL, OP_BGEZAL:
		cpu.OpBCONDZ(instruction)
	case OP_J:
		cpu.OpJ(instruction)
	case OP_JAL:
		cpu.OpJAL(instruction)
	case OP_BEQ:
		cpu.branchIf(cpu.Reg(instruction.S()) == cpu.Reg(instruction.T()), instruction.ImmSE())
	case OP_BNE:
		cpu.branchIf(cpu.Reg(instruction.S()) != cpu.Reg(instruction.T()), instruction.ImmSE())
	case OP_BLEZ:
		cpu.branchIf(int32(cpu.Reg(instruction.S())) <= 0, instruction.ImmSE())
	case OP_BGTZ:
		cpu.branchIf(int32(cpu.Reg(instruction.S())) > 0, instruction.ImmSE())
	case OP_ADDI:
		cpu.OpADDI(instruction)
	case OP_ADDIU:
		cpu.OpADDIU(instruction)
	case OP_SLTI:
		v := int32(cpu.Reg(instruction.S())) < int32(instruction.ImmSE())
		cpu.SetReg(instruction.T(), oneIfTrue(v))
	case OP_SLTIU:
		v := cpu.Reg(instruction.S()) < instruction.ImmSE()
		cpu.SetReg(instruction.T(), oneIfTrue(v))
	case OP_ANDI:
		cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())&instruction.Imm())
	case OP_ORI:
		cpu.OpORI(instruction)
	case OP_XORI:
		cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())^instruction.Imm())
	case OP_LUI:
		cpu.OpLUI(instruction)
	case OP_MFC0:
		cpu.OpMFC0(instruction)
	case OP_MTC0:
		cpu.OpMTC0(instruction)
	case OP_RFE:
		cpu.OpRFE(instruction)
	case OP_COP1, OP_COP3:
		cpu.coprocessorUnusable(instruction.CopNumber())
	case OP_COP2, OP_LWC2, OP_SWC2:
		cpu.OpGTE(instruction)
	case OP_LB:
		cpu.OpLB(instruction)
	case OP_LH:
		cpu.OpLH(instruction)
	case OP_LWL:
		cpu.OpLWL(instruction)
	case OP_LW:
		cpu.OpLW(instruction)
	case OP_LBU:
		cpu.OpLBU(instruction)
	case OP_LHU:
		cpu.OpLHU(instruction)
	case OP_LWR:
		cpu.OpLWR(instruction)
	case OP_SB:
		cpu.OpSB(instruction)
	case OP_SH:
		cpu.OpSH(instruction)
	case OP_SWL:
		cpu.OpSWL(instruction)
	case OP_SW:
		cpu.OpSW(instruction)
	case OP_SWR:
		cpu.OpSWR(instruction)
	case OP_LWC0, OP_LWC1, OP_LWC3, OP_SWC0, OP_SWC1, OP_SWC3:
		cpu.coprocessorUnusable(instruction.CopNumber())
	default:
		cpu.Log.WithField("instruction", Disassemble(cpu.CurrentPC, instruction)).
			Debug("cpu: illegal instruction")
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
	}
}

// Shift Left Logical
func (cpu *CPU) OpSLL(instruction Instruction) {
	v := cpu.Reg(instruction.T()) << instruction.Shift()
	cpu.SetReg(instruction.D(), v)
}

// Shift Right Logical
func (cpu *CPU) OpSRL(instruction Instruction) {
	v := cpu.Reg(instruction.T()) >> instruction.Shift()
	cpu.SetReg(instruction.D(), v)
}

// Shift Right Arithmetic
func (cpu *CPU) OpSRA(instruction Instruction) {
	v := int32(cpu.Reg(instruction.T())) >> instruction.Shift()
	cpu.SetReg(instruction.D(), uint32(v))
}

// Shift Left Logical Variable
func (cpu *CPU) OpSLLV(instruction Instruction) {
	// shift amount is truncated to 5 bits
	v := cpu.Reg(instruction.T()) << (cpu.Reg(instruction.S()) & 0x1f)
	cpu.SetReg(instruction.D(), v)
}

// Shift Right Logical Variable
func (cpu *CPU) OpSRLV(instruction Instruction) {
	v := cpu.Reg(instruction.T()) >> (cpu.Reg(instruction.S()) & 0x1f)
	cpu.SetReg(instruction.D(), v)
}

// Shift Right Arithmetic Variable
func (cpu *CPU) OpSRAV(instruction Instruction) {
	v := int32(cpu.Reg(instruction.T())) >> (cpu.Reg(instruction.S()) & 0x1f)
	cpu.SetReg(instruction.D(), uint32(v))
}

// Jump Register
func (cpu *CPU) OpJR(instruction Instruction) {
	cpu.jump(cpu.Reg(instruction.S()))
}

// Jump And Link Register
func (cpu *CPU) OpJALR(instruction Instruction) {
	// read the target first, `d` and `s` can be the same register
	target := cpu.Reg(instruction.S())
	cpu.SetReg(instruction.D(), cpu.NextPC)
	cpu.jump(target)
}

// Multiply (signed)
func (cpu *CPU) OpMULT(instruction Instruction) {
	a := int64(int32(cpu.Reg(instruction.S())))
	b := int64(int32(cpu.Reg(instruction.T())))
	v := uint64(a * b)
	cpu.Hi = uint32(v >> 32)
	cpu.Lo = uint32(v)
}

// Multiply Unsigned
func (cpu *CPU) OpMULTU(instruction Instruction) {
	v := uint64(cpu.Reg(instruction.S())) * uint64(cpu.Reg(instruction.T()))
	cpu.Hi = uint32(v >> 32)
	cpu.Lo = uint32(v)
}

// Divide (signed). Division by zero doesn't trap, it returns garbage
// values that games rely on
func (cpu *CPU) OpDIV(instruction Instruction) {
	n := int32(cpu.Reg(instruction.S()))
	d := int32(cpu.Reg(instruction.T()))

	switch {
	case d == 0:
		cpu.Hi = uint32(n)
		if n >= 0 {
			cpu.Lo = 0xffffffff
		} else {
			cpu.Lo = 1
		}
	case uint32(n) == 0x80000000 && d == -1:
		// result doesn't fit in a 32 bit signed integer
		cpu.Hi = 0
		cpu.Lo = 0x80000000
	default:
		cpu.Hi = uint32(n % d)
		cpu.Lo = uint32(n / d)
	}
}

// Divide Unsigned
func (cpu *CPU) OpDIVU(instruction Instruction) {
	n := cpu.Reg(instruction.S())
	d := cpu.Reg(instruction.T())

	if d == 0 {
		cpu.Hi = n
		cpu.Lo = 0xffffffff
		return
	}
	cpu.Hi = n % d
	cpu.Lo = n / d
}

// Add (traps on signed overflow)
func (cpu *CPU) OpADD(instruction Instruction) {
	s := int32(cpu.Reg(instruction.S()))
	t := int32(cpu.Reg(instruction.T()))

	v, err := add32Overflow(s, t)
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(instruction.D(), uint32(v))
}

// Add Unsigned
func (cpu *CPU) OpADDU(instruction Instruction) {
	v := cpu.Reg(instruction.S()) + cpu.Reg(instruction.T())
	cpu.SetReg(instruction.D(), v)
}

// Subtract (traps on signed overflow)
func (cpu *CPU) OpSUB(instruction Instruction) {
	s := int32(cpu.Reg(instruction.S()))
	t := int32(cpu.Reg(instruction.T()))

	v, err := sub32Overflow(s, t)
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(instruction.D(), uint32(v))
}

// Subtract Unsigned
func (cpu *CPU) OpSUBU(instruction Instruction) {
	v := cpu.Reg(instruction.S()) - cpu.Reg(instruction.T())
	cpu.SetReg(instruction.D(), v)
}

// BLTZ, BGEZ, BLTZAL and BGEZAL
func (cpu *CPU) OpBCONDZ(instruction Instruction) {
	op := Decode(instruction)
	v := int32(cpu.Reg(instruction.S()))

	var cond bool
	switch op {
	case OP_BGEZ, OP_BGEZAL:
		cond = v >= 0
	default:
		cond = v < 0
	}

	// the return address is stored even if the branch isn't taken
	if op == OP_BLTZAL || op == OP_BGEZAL {
		cpu.SetReg(31, cpu.NextPC)
	}
	cpu.branchIf(cond, instruction.ImmSE())
}

// Jump
func (cpu *CPU) OpJ(instruction Instruction) {
	// PC points to the delay slot, its top 4 bits are kept
	cpu.jump(cpu.PC&0xf0000000 | instruction.ImmJump()<<2)
}

// Jump And Link
func (cpu *CPU) OpJAL(instruction Instruction) {
	// store the address of the instruction after the delay slot in RA
	cpu.SetReg(31, cpu.NextPC)
	cpu.OpJ(instruction)
}

// Add Immediate (traps on signed overflow)
func (cpu *CPU) OpADDI(instruction Instruction) {
	s := int32(cpu.Reg(instruction.S()))
	i := int32(instruction.ImmSE())

	v, err := add32Overflow(s, i)
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(instruction.T(), uint32(v))
}

// Add Immediate Unsigned
func (cpu *CPU) OpADDIU(instruction Instruction) {
	v := cpu.Reg(instruction.S()) + instruction.ImmSE()
	cpu.SetReg(instruction.T(), v)
}

// Bitwise Or Immediate
func (cpu *CPU) OpORI(instruction Instruction) {
	i := instruction.Imm()
	t := instruction.T()
	s := instruction.S()
	cpu.SetReg(t, cpu.Reg(s)|i)
}

// Load Upper Immediate
func (cpu *CPU) OpLUI(instruction Instruction) {
	i := instruction.Imm()
	t := instruction.T()

	// low 16 bits are set to 0
	v := i << 16
	cpu.SetReg(t, v)
}

// Returns true if COP0 instructions can be executed. Raises
// EXCEPTION_COPROCESSOR_ERROR otherwise
func (cpu *CPU) cop0Usable() bool {
	sr := cpu.Cop0.SR
	if sr.UserMode() && !sr.CopEnabled(0) {
		cpu.coprocessorUnusable(0)
		return false
	}
	return true
}

// Move From Coprocessor 0
func (cpu *CPU) OpMFC0(instruction Instruction) {
	if !cpu.cop0Usable() {
		return
	}
	v, ok := cpu.Cop0.Load(instruction.D())
	if !ok {
		cpu.Log.WithField("reg", instruction.D()).Debug("cpu: read from unhandled cop0 register")
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
		return
	}
	// MFC0 has the same delay as a memory load
	cpu.delayedLoad(instruction.T(), v)
}

// Move To Coprocessor 0
func (cpu *CPU) OpMTC0(instruction Instruction) {
	if !cpu.cop0Usable() {
		return
	}
	cpu.Cop0.Store(instruction.D(), cpu.Reg(instruction.T()))
}

// Return From Exception
func (cpu *CPU) OpRFE(instruction Instruction) {
	if !cpu.cop0Usable() {
		return
	}
	cpu.Cop0.ReturnFromException()
}

// COP2, LWC2 and SWC2. The Geometry Transformation Engine isn't emulated,
// so these only behave correctly when COP2 is disabled
func (cpu *CPU) OpGTE(instruction Instruction) {
	if !cpu.Cop0.SR.CopEnabled(2) {
		cpu.coprocessorUnusable(2)
		return
	}
	cpu.Log.WithField("instruction", Disassemble(cpu.CurrentPC, instruction)).
		Debug("cpu: unhandled GTE instruction")
	cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
}

// Returns the address used by loads and stores: base register plus the
// sign extended immediate
func (cpu *CPU) effectiveAddr(instruction Instruction) uint32 {
	return cpu.Reg(instruction.S()) + instruction.ImmSE()
}

// Load Byte (signed)
func (cpu *CPU) OpLB(instruction Instruction) {
	v, ok := cpu.load(cpu.effectiveAddr(instruction), ACCESS_BYTE)
	if ok {
		cpu.delayedLoad(instruction.T(), uint32(int32(int8(v))))
	}
}

// Load Halfword (signed)
func (cpu *CPU) OpLH(instruction Instruction) {
	v, ok := cpu.load(cpu.effectiveAddr(instruction), ACCESS_HALFWORD)
	if ok {
		cpu.delayedLoad(instruction.T(), uint32(int32(int16(v))))
	}
}

// Load Word
func (cpu *CPU) OpLW(instruction Instruction) {
	v, ok := cpu.load(cpu.effectiveAddr(instruction), ACCESS_WORD)
	if ok {
		cpu.delayedLoad(instruction.T(), v)
	}
}

// Load Byte Unsigned
func (cpu *CPU) OpLBU(instruction Instruction) {
	v, ok := cpu.load(cpu.effectiveAddr(instruction), ACCESS_BYTE)
	if ok {
		cpu.delayedLoad(instruction.T(), v)
	}
}

// Load Halfword Unsigned
func (cpu *CPU) OpLHU(instruction Instruction) {
	v, ok := cpu.load(cpu.effectiveAddr(instruction), ACCESS_HALFWORD)
	if ok {
		cpu.delayedLoad(instruction.T(), v)
	}
}

// Load Word Left. Merges the most significant bytes of an unaligned word
// into the target register
func (cpu *CPU) OpLWL(instruction Instruction) {
	addr := cpu.effectiveAddr(instruction)
	t := instruction.T()

	// LWL and LWR bypass the load delay of a previous load to the same
	// register so that they can be chained
	cur := cpu.pendingReg(t)

	word, ok := cpu.load(addr&^3, ACCESS_WORD)
	if !ok {
		return
	}

	var v uint32
	switch addr & 3 {
	case 0:
		v = cur&0x00ffffff | word<<24
	case 1:
		v = cur&0x0000ffff | word<<16
	case 2:
		v = cur&0x000000ff | word<<8
	case 3:
		v = word
	}
	cpu.delayedLoad(t, v)
}

// Load Word Right. Merges the least significant bytes of an unaligned word
// into the target register
func (cpu *CPU) OpLWR(instruction Instruction) {
	addr := cpu.effectiveAddr(instruction)
	t := instruction.T()
	cur := cpu.pendingReg(t)

	word, ok := cpu.load(addr&^3, ACCESS_WORD)
	if !ok {
		return
	}

	var v uint32
	switch addr & 3 {
	case 0:
		v = word
	case 1:
		v = cur&0xff000000 | word>>8
	case 2:
		v = cur&0xffff0000 | word>>16
	case 3:
		v = cur&0xffffff00 | word>>24
	}
	cpu.delayedLoad(t, v)
}

// Store Byte
func (cpu *CPU) OpSB(instruction Instruction) {
	cpu.store(cpu.effectiveAddr(instruction), ACCESS_BYTE, cpu.Reg(instruction.T()))
}

// Store Halfword
func (cpu *CPU) OpSH(instruction Instruction) {
	cpu.store(cpu.effectiveAddr(instruction), ACCESS_HALFWORD, cpu.Reg(instruction.T()))
}

// Store Word
func (cpu *CPU) OpSW(instruction Instruction) {
	cpu.store(cpu.effectiveAddr(instruction), ACCESS_WORD, cpu.Reg(instruction.T()))
}

// Returns the aligned word containing `addr` for SWL and SWR. An unmapped
// word reads as zero, the store that follows is dropped anyway
func (cpu *CPU) alignedWord(addr uint32) uint32 {
	word, err := cpu.Inter.Load32(addr &^ 3)
	if err != nil {
		return 0
	}
	return word
}

// Store Word Left
func (cpu *CPU) OpSWL(instruction Instruction) {
	addr := cpu.effectiveAddr(instruction)
	v := cpu.Reg(instruction.T())
	mem := cpu.alignedWord(addr)

	var word uint32
	switch addr & 3 {
	case 0:
		word = mem&0xffffff00 | v>>24
	case 1:
		word = mem&0xffff0000 | v>>16
	case 2:
		word = mem&0xff000000 | v>>8
	case 3:
		word = v
	}
	cpu.store(addr&^3, ACCESS_WORD, word)
}

// Store Word Right
func (cpu *CPU) OpSWR(instruction Instruction) {
	addr := cpu.effectiveAddr(instruction)
	v := cpu.Reg(instruction.T())
	mem := cpu.alignedWord(addr)

	var word uint32
	switch addr & 3 {
	case 0:
		word = v
	case 1:
		word = mem&0x000000ff | v<<8
	case 2:
		word = mem&0x0000ffff | v<<16
	case 3:
		word = mem&0x00ffffff | v<<24
	}
	cpu.store(addr&^3, ACCESS_WORD, word)
}
