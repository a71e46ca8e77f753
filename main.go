package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/zeozeozeo/psxcpu/emulator"
)

// Flags shared by every command
type Globals struct {
	Bios     string `name:"bios" type:"path" env:"PSX_BIOS" default:"SCPH1001.BIN" help:"Path to the BIOS image."`
	LogLevel string `name:"log-level" enum:"trace,debug,info,warn,error" default:"info" help:"Diagnostics level (trace, debug, info, warn, error)."`
	LogJSON  bool   `name:"log-json" help:"Write diagnostics as JSON."`
}

func main() {
	var cli struct {
		Globals

		Run    runCmd    `cmd default:"1" help:"Run the CPU without a window."`
		Window windowCmd `cmd help:"Run the CPU in a window showing its registers."`
		Debug  debugCmd  `cmd help:"Step through the BIOS from the terminal."`
	}

	ctx := kong.Parse(&cli,
		kong.Name("psxcpu"),
		kong.Description("PlayStation R3000A CPU core."),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// Returns a logger configured from the command line
func (g *Globals) logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(level)
	if g.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

// Loads the BIOS and creates a CPU at the reset vector
func (g *Globals) newCPU() (*emulator.CPU, error) {
	log, err := g.logger()
	if err != nil {
		return nil, err
	}

	bios, err := loadBios(log, g.Bios)
	if err != nil {
		return nil, err
	}

	inter := emulator.NewInterconnect(bios, emulator.NewRAM())
	cpu := emulator.NewCPU(inter)
	cpu.Debugger = emulator.NewDebugger()
	cpu.SetLogger(log)
	return cpu, nil
}

func loadBios(log logrus.FieldLogger, path string) (*emulator.BIOS, error) {
	log.WithField("path", path).Info("loading bios")
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bios, err := emulator.LoadBIOS(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithField("elapsed", time.Since(start)).Info("loaded bios")
	return bios, nil
}

// Parses breakpoint addresses such as 0xbfc00180
func parseAddresses(list []string) ([]uint32, error) {
	addrs := make([]uint32, 0, len(list))
	for _, s := range list {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", s, err)
		}
		addrs = append(addrs, uint32(v))
	}
	return addrs, nil
}
