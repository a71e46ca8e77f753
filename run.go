package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

type runCmd struct {
	Steps      uint64   `name:"steps" default:"0" help:"Number of instructions to execute, 0 runs until a breakpoint is hit."`
	Break      []string `name:"break" help:"Stop when the CPU reaches one of these addresses."`
	CPUProfile string   `name:"cpuprofile" type:"path" help:"Write a CPU profile into this directory."`
}

func (r *runCmd) Run(globals *Globals) error {
	cpu, err := globals.newCPU()
	if err != nil {
		return err
	}
	breakpoints, err := parseAddresses(r.Break)
	if err != nil {
		return err
	}
	for _, addr := range breakpoints {
		cpu.Debugger.AddBreakpoint(addr)
	}

	if r.CPUProfile != "" {
		defer profile.Start(
			profile.CPUProfile,
			profile.ProfilePath(r.CPUProfile),
			profile.Quiet,
		).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var steps uint64
	for ; r.Steps == 0 || steps < r.Steps; steps++ {
		if cpu.Debugger.Paused {
			break
		}
		// checked every 64K steps
		if steps&0xffff == 0 && ctx.Err() != nil {
			cpu.Debugger.Debug("interrupted")
			break
		}
		cpu.RunNextInstruction()
	}
	elapsed := time.Since(start)

	cpu.Log.WithFields(logrus.Fields{
		"steps":    steps,
		"cycles":   cpu.Time.Cycles,
		"emulated": cpu.Time.Elapsed(),
		"elapsed":  elapsed,
		"pc":       fmt.Sprintf("0x%08x", cpu.PC),
		"reason":   cpu.Debugger.Reason,
	}).Info("stopped")
	return nil
}
