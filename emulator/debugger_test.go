package emulator

import (
	"testing"

	"github.com/matryer/is"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestDebuggerLists(t *testing.T) {
	is := is.New(t)
	debugger := NewDebugger()

	debugger.AddBreakpoint(0x80000000)
	debugger.AddBreakpoint(0x80000000)
	debugger.AddBreakpoint(0x80000004)
	is.Equal(debugger.Breakpoints, []uint32{0x80000000, 0x80000004}) // no duplicates

	debugger.DeleteBreakpoint(0x80000000)
	debugger.DeleteBreakpoint(0x12345678)
	is.Equal(debugger.Breakpoints, []uint32{0x80000004})

	debugger.AddReadWatchpoint(0x10)
	debugger.AddWriteWatchpoint(0x20)
	debugger.DeleteReadWatchpoint(0x10)
	is.Equal(len(debugger.ReadWatchpoints), 0)
	is.Equal(debugger.WriteWatchpoints, []uint32{0x20})
	debugger.DeleteWriteWatchpoint(0x20)
	is.Equal(len(debugger.WriteWatchpoints), 0)
}

func TestDebuggerPause(t *testing.T) {
	is := is.New(t)
	logger, hook := test.NewNullLogger()
	debugger := NewDebugger()
	debugger.Log = logger

	debugger.AddBreakpoint(0xbfc00010)
	debugger.AddReadWatchpoint(0x80000100)

	debugger.changedPc(0xbfc0000c)
	debugger.memoryRead(0x80000104)
	debugger.memoryWrite(0x80000100)
	is.True(!debugger.Paused)

	debugger.changedPc(0xbfc00010)
	is.True(debugger.Paused)
	is.Equal(debugger.Reason, "reached breakpoint 0xbfc00010")
	is.Equal(hook.LastEntry().Level, logrus.InfoLevel)

	debugger.Resume()
	is.True(!debugger.Paused)
	is.Equal(debugger.Reason, "")

	debugger.memoryRead(0x80000100)
	is.Equal(debugger.Reason, "triggered read watchpoint 0x80000100")
}

func TestDebuggerWatchpointFromCPU(t *testing.T) {
	is := is.New(t)
	cpu, _ := newTestCPU(t,
		0x3c088000, // lui t0, 0x8000
		0xad090040, // sw t1, 0x40(t0)
		0x8d0a0080, // lw t2, 0x80(t0)
	)
	cpu.Debugger = NewDebugger()
	cpu.SetLogger(cpu.Log)
	cpu.Debugger.AddWriteWatchpoint(0x80000040)
	cpu.Debugger.AddReadWatchpoint(0x80000080)

	step(cpu, 2)
	is.True(cpu.Debugger.Paused)
	is.Equal(cpu.Debugger.Reason, "triggered write watchpoint 0x80000040")
	is.Equal(cpu.Inter.Ram.Load32(0x40), garbageRegister) // the store still happens

	cpu.Debugger.Resume()
	step(cpu, 1)
	is.Equal(cpu.Debugger.Reason, "triggered read watchpoint 0x80000080")
}
