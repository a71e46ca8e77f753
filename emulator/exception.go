package emulator

// Exception codes stored in bits [6:2] of the cause register
type Exception uint32

const (
	EXCEPTION_INTERRUPT           Exception = 0x0 // External or software interrupt
	EXCEPTION_LOAD_ADDRESS_ERROR  Exception = 0x4 // Address error on load or instruction fetch
	EXCEPTION_STORE_ADDRESS_ERROR Exception = 0x5 // Address error on store
	EXCEPTION_BUS_INSTRUCTION     Exception = 0x6 // Bus error on instruction fetch
	EXCEPTION_BUS_DATA            Exception = 0x7 // Bus error on data load/store
	EXCEPTION_SYSCALL             Exception = 0x8 // System call (caused by the SYSCALL opcode)
	EXCEPTION_BREAK               Exception = 0x9 // Breakpoint (caused by BREAK opcode)
	EXCEPTION_ILLEGAL_INSTRUCTION Exception = 0xa // CPU encountered an unknown instruction
	EXCEPTION_COPROCESSOR_ERROR   Exception = 0xb // Unsupported coprocessor operation
	EXCEPTION_OVERFLOW            Exception = 0xc // Arithmetic overflow
)

func (e Exception) String() string {
	switch e {
	case EXCEPTION_INTERRUPT:
		return "Interrupt"
	case EXCEPTION_LOAD_ADDRESS_ERROR:
		return "AddressLoadError"
	case EXCEPTION_STORE_ADDRESS_ERROR:
		return "AddressStoreError"
	case EXCEPTION_BUS_INSTRUCTION:
		return "BusInstructionError"
	case EXCEPTION_BUS_DATA:
		return "BusDataError"
	case EXCEPTION_SYSCALL:
		return "SystemCall"
	case EXCEPTION_BREAK:
		return "Breakpoint"
	case EXCEPTION_ILLEGAL_INSTRUCTION:
		return "ReservedInstruction"
	case EXCEPTION_COPROCESSOR_ERROR:
		return "CoprocessorUnusable"
	case EXCEPTION_OVERFLOW:
		return "ArithmeticOverflow"
	default:
		return "Unknown"
	}
}
