package emulator

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Debugger struct {
	Breakpoints      []uint32           // All breakpoint addresses
	ReadWatchpoints  []uint32           // All read watchpoints
	WriteWatchpoints []uint32           // All write watchpoints
	Paused           bool               // Set when a breakpoint or watchpoint is hit
	Reason           string             // Why the debugger paused
	Log              logrus.FieldLogger // Receives breakpoint hits
}

func NewDebugger() *Debugger {
	return &Debugger{Log: logrus.StandardLogger()}
}

// Adds a breakpoint when the instruction at `addr` is about to be executed
func (debugger *Debugger) AddBreakpoint(addr uint32) {
	debugger.Breakpoints = addUnique(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint32) {
	debugger.Breakpoints = remove(debugger.Breakpoints, addr)
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint32) {
	debugger.ReadWatchpoints = addUnique(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint32) {
	debugger.WriteWatchpoints = addUnique(debugger.WriteWatchpoints, addr)
}

// Deletes a memory read watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteReadWatchpoint(addr uint32) {
	debugger.ReadWatchpoints = remove(debugger.ReadWatchpoints, addr)
}

// Deletes a memory write watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteWriteWatchpoint(addr uint32) {
	debugger.WriteWatchpoints = remove(debugger.WriteWatchpoints, addr)
}

// Called by the CPU once the next instruction address is known
func (debugger *Debugger) changedPc(pc uint32) {
	if contains(debugger.Breakpoints, pc) {
		debugger.Debug(fmt.Sprintf("reached breakpoint 0x%08x", pc))
	}
}

// Called by the CPU when it's about to read a value from memory
func (debugger *Debugger) memoryRead(addr uint32) {
	if contains(debugger.ReadWatchpoints, addr) {
		debugger.Debug(fmt.Sprintf("triggered read watchpoint 0x%08x", addr))
	}
}

// Called by the CPU when it's about to write a value to memory
func (debugger *Debugger) memoryWrite(addr uint32) {
	if contains(debugger.WriteWatchpoints, addr) {
		debugger.Debug(fmt.Sprintf("triggered write watchpoint 0x%08x", addr))
	}
}

// Pauses execution. The host is expected to stop calling
// RunNextInstruction until Resume is called
func (debugger *Debugger) Debug(reason string) {
	debugger.Log.Infof("debugger: %s", reason)
	debugger.Paused = true
	debugger.Reason = reason
}

func (debugger *Debugger) Resume() {
	debugger.Paused = false
	debugger.Reason = ""
}

func contains(list []uint32, addr uint32) bool {
	for _, v := range list {
		if v == addr {
			return true
		}
	}
	return false
}

func addUnique(list []uint32, addr uint32) []uint32 {
	if contains(list, addr) {
		return list
	}
	return append(list, addr)
}

func remove(list []uint32, addr uint32) []uint32 {
	for idx, v := range list {
		if v == addr {
			return append(list[:idx], list[idx+1:]...)
		}
	}
	return list
}
