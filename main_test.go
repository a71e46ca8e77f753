package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/sirupsen/logrus"
	"github.com/zeozeozeo/psxcpu/emulator"
)

// Writes a BIOS image starting with `program` and returns its path
func writeBios(t *testing.T, program ...uint32) string {
	t.Helper()
	data := make([]byte, emulator.BIOS_SIZE)
	for i, word := range program {
		binary.LittleEndian.PutUint32(data[i*4:], word)
	}
	path := filepath.Join(t.TempDir(), "bios.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseAddresses(t *testing.T) {
	is := is.New(t)

	addrs, err := parseAddresses([]string{"0xbfc00180", "2147483648"})
	is.NoErr(err)
	is.Equal(addrs, []uint32{0xbfc00180, 0x80000000})

	_, err = parseAddresses([]string{"0x100000000"})
	is.True(err != nil) // doesn't fit in 32 bits
	_, err = parseAddresses([]string{"main"})
	is.True(err != nil)
}

func TestGlobalsNewCPU(t *testing.T) {
	is := is.New(t)

	globals := Globals{Bios: writeBios(t, 0x3c080013), LogLevel: "warn", LogJSON: true}
	cpu, err := globals.newCPU()
	is.NoErr(err)
	is.Equal(cpu.PC, emulator.RESET_VECTOR)
	is.True(cpu.Debugger != nil)

	log, ok := cpu.Log.(*logrus.Logger)
	is.True(ok)
	is.Equal(log.GetLevel(), logrus.WarnLevel)

	cpu.RunNextInstruction()
	is.Equal(cpu.Reg(8), uint32(0x00130000))
}

func TestGlobalsShortBios(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "short.bin")
	is.NoErr(os.WriteFile(path, make([]byte, 1024), 0o644))

	globals := Globals{Bios: path, LogLevel: "error"}
	_, err := globals.newCPU()
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), path)) // error names the file

	globals.Bios = filepath.Join(t.TempDir(), "missing.bin")
	_, err = globals.newCPU()
	is.True(os.IsNotExist(err))
}

func TestFormatState(t *testing.T) {
	is := is.New(t)

	globals := Globals{Bios: writeBios(t, 0x3c080013), LogLevel: "error"}
	cpu, err := globals.newCPU()
	is.NoErr(err)

	state := formatState(cpu)
	is.True(strings.Contains(state, "pc bfc00000 (KSEG1)"))
	is.True(strings.Contains(state, "bfc00000: lui t0, 0x13"))
	is.True(strings.Contains(state, "bev 1"))
}

func TestFormatStateMisalignedPC(t *testing.T) {
	is := is.New(t)

	globals := Globals{Bios: writeBios(t), LogLevel: "error"}
	cpu, err := globals.newCPU()
	is.NoErr(err)
	cpu.PC = 0xbfc7fffd // last bytes of the BIOS

	state := formatState(cpu)
	is.True(strings.Contains(state, "bfc7fffd: interconnect: misaligned word load"))
}

func TestStepper(t *testing.T) {
	is := is.New(t)

	globals := Globals{
		Bios:     writeBios(t, 0x3c080013, 0x00000000, 0x00000000, 0x00000000),
		LogLevel: "error",
	}
	cpu, err := globals.newCPU()
	is.NoErr(err)
	cpu.Debugger.AddBreakpoint(emulator.RESET_VECTOR + 12)

	var out bytes.Buffer
	in := strings.NewReader("s\nc\nq\n")
	is.NoErr(stepper(cpu, in, &out, nil))

	is.Equal(cpu.PC, emulator.RESET_VECTOR+12)
	is.True(strings.Contains(out.String(), "reached breakpoint 0xbfc0000c"))
}

func TestStepperEOF(t *testing.T) {
	is := is.New(t)

	globals := Globals{Bios: writeBios(t), LogLevel: "error"}
	cpu, err := globals.newCPU()
	is.NoErr(err)

	var out bytes.Buffer
	is.NoErr(stepper(cpu, strings.NewReader("ss"), &out, nil))
	is.Equal(cpu.PC, emulator.RESET_VECTOR+8)
}

func TestStepperMisalignedJump(t *testing.T) {
	is := is.New(t)

	globals := Globals{
		Bios: writeBios(t,
			0x3c08bfc7, // lui t0, 0xbfc7
			0x3508fffd, // ori t0, t0, 0xfffd
			0x01000008, // jr t0
			0x00000000,
		),
		LogLevel: "error",
	}
	cpu, err := globals.newCPU()
	is.NoErr(err)

	var out bytes.Buffer
	is.NoErr(stepper(cpu, strings.NewReader("ssss"), &out, nil))
	is.Equal(cpu.PC, uint32(0xbfc7fffd))
	is.True(strings.Contains(out.String(), "bfc7fffd: interconnect: misaligned word load"))

	// fetching from there raises an address error instead
	is.NoErr(stepper(cpu, strings.NewReader("s"), &out, nil))
	is.Equal(cpu.Cop0.Cause.ExceptionCode(), emulator.EXCEPTION_LOAD_ADDRESS_ERROR)
	is.Equal(cpu.PC, uint32(0xbfc00180))
}
