package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/zeozeozeo/psxcpu/emulator"
)

const (
	windowWidth  = 640
	windowHeight = 240
	windowTPS    = 60
)

type windowCmd struct {
	Paused bool     `name:"paused" help:"Start with the CPU paused."`
	Break  []string `name:"break" help:"Pause when the CPU reaches one of these addresses."`
}

func (w *windowCmd) Run(globals *Globals) error {
	cpu, err := globals.newCPU()
	if err != nil {
		return err
	}
	breakpoints, err := parseAddresses(w.Break)
	if err != nil {
		return err
	}
	for _, addr := range breakpoints {
		cpu.Debugger.AddBreakpoint(addr)
	}
	if w.Paused {
		cpu.Debugger.Debug("paused")
	}

	ebiten.SetWindowSize(windowWidth*2, windowHeight*2)
	ebiten.SetWindowTitle("psxcpu")
	ebiten.SetTPS(windowTPS)
	return ebiten.RunGame(newGame(cpu))
}

// Runs the CPU at its native clock rate and draws its state
type game struct {
	cpu *emulator.CPU
	// Cycles to run every tick
	cyclesPerTick uint64
}

func newGame(cpu *emulator.CPU) *game {
	return &game{
		cpu:           cpu,
		cyclesPerTick: emulator.CPU_FREQ_HZ / windowTPS,
	}
}

// Space toggles pause, S runs a single instruction while paused
func (g *game) Update() error {
	debugger := g.cpu.Debugger

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if debugger.Paused {
			debugger.Resume()
		} else {
			debugger.Debug("paused")
		}
	}
	if debugger.Paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.cpu.RunNextInstruction()
		}
		return nil
	}

	g.runFrame()
	return nil
}

// Runs instructions until a frame worth of cycles has elapsed or the
// debugger pauses
func (g *game) runFrame() {
	th := g.cpu.Time
	th.SetNextSyncDelta(emulator.SYNC_HOST_FRAME, g.cyclesPerTick)
	for !th.NeedsSync(emulator.SYNC_HOST_FRAME) && !g.cpu.Debugger.Paused {
		g.cpu.RunNextInstruction()
	}
	th.Sync(emulator.SYNC_HOST_FRAME)
}

func (g *game) Draw(screen *ebiten.Image) {
	status := "running"
	if g.cpu.Debugger.Paused {
		status = "paused: " + g.cpu.Debugger.Reason
	}
	ebitenutil.DebugPrint(screen, formatState(g.cpu)+"\n"+status)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
