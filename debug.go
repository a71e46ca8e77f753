package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/zeozeozeo/psxcpu/emulator"
)

const debugHelp = `s, space  step one instruction
c         continue until a breakpoint or ctrl-c
r         print registers
b         add a breakpoint after the next instruction
q         quit
`

type debugCmd struct {
	Break []string `name:"break" help:"Breakpoint addresses, e.g. 0xbfc00180."`
}

func (d *debugCmd) Run(globals *Globals) error {
	cpu, err := globals.newCPU()
	if err != nil {
		return err
	}
	breakpoints, err := parseAddresses(d.Break)
	if err != nil {
		return err
	}
	for _, addr := range breakpoints {
		cpu.Debugger.AddBreakpoint(addr)
	}

	// line buffered input still works if the terminal can't be switched
	restore, err := makeRaw(os.Stdin.Fd())
	if err != nil {
		cpu.Log.WithError(err).Debug("debug: not using raw terminal mode")
	} else {
		defer restore()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Print(debugHelp)
	fmt.Print(formatState(cpu))
	return stepper(cpu, os.Stdin, os.Stdout, interrupt)
}

// Reads single key commands from `in` until q or EOF. A value on
// `interrupt` stops a continue
func stepper(cpu *emulator.CPU, in io.Reader, out io.Writer, interrupt <-chan os.Signal) error {
	var key [1]byte
	prompt := true
	for {
		if prompt {
			fmt.Fprintf(out, "%08x> ", cpu.PC)
		}
		prompt = true
		if _, err := in.Read(key[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch key[0] {
		case '\r', '\n':
			// line buffered terminals send the command followed by a newline
			prompt = false
		case 's', ' ':
			cpu.Debugger.Resume()
			cpu.RunNextInstruction()
			fmt.Fprintln(out)
			printNext(cpu, out)
		case 'c':
			cpu.Debugger.Resume()
			continueUntilPaused(cpu, interrupt)
			fmt.Fprintf(out, "\n%s\n", cpu.Debugger.Reason)
			printNext(cpu, out)
		case 'r':
			fmt.Fprintf(out, "\n%s", formatState(cpu))
		case 'b':
			cpu.Debugger.AddBreakpoint(cpu.NextPC)
			fmt.Fprintf(out, "\nbreakpoint at %08x\n", cpu.NextPC)
		case 'q':
			fmt.Fprintln(out)
			return nil
		case '?', 'h':
			fmt.Fprintf(out, "\n%s", debugHelp)
		default:
			fmt.Fprintln(out)
		}
	}
}

// Prints the instruction at PC
func printNext(cpu *emulator.CPU, out io.Writer) {
	word, err := cpu.Load32(cpu.PC)
	if err != nil {
		fmt.Fprintf(out, "%08x: %v\n", cpu.PC, err)
		return
	}
	fmt.Fprintf(out, "%08x: %s\n", cpu.PC, emulator.Disassemble(cpu.PC, emulator.Instruction(word)))
}

// Runs until the debugger pauses or a value arrives on `interrupt`
func continueUntilPaused(cpu *emulator.CPU, interrupt <-chan os.Signal) {
	for steps := 0; !cpu.Debugger.Paused; steps++ {
		if steps&0xffff == 0 {
			select {
			case <-interrupt:
				cpu.Debugger.Debug("interrupted")
				return
			default:
			}
		}
		cpu.RunNextInstruction()
	}
}
