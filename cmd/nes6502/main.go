// Command nes6502 loads an iNES cartridge, resets a CPU onto it, and runs a
// fixed number of host cycles, optionally tracing each instruction as it
// executes.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"

	"github.com/louispayne10/nes-emulator/nes"
)

func main() {
	app := &cli.App{
		Name:      "nes6502",
		Usage:     "run an iNES ROM against the 6502 CPU core",
		ArgsUsage: "<rom.nes>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "cycles",
				Aliases: []string{"n"},
				Usage:   "number of Tick() calls to run",
				Value:   1_000_000,
			},
			&cli.BoolFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "print a trace line before each instruction fetch",
			},
			&cli.IntFlag{
				Name:  "trace-limit",
				Usage: "stop tracing after this many lines (0 = unlimited)",
				Value: 0,
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nes6502: %+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		cli.ShowAppHelp(c)
		return cli.Exit("exactly one ROM path is required", 1)
	}
	romPath := c.Args().First()

	data, err := os.ReadFile(romPath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", romPath)
	}

	cart, err := nes.NewCartridge(data)
	if err != nil {
		return errors.Wrap(err, "loading cartridge")
	}

	bus := nes.NewBus()
	bus.InsertCartridge(cart)

	cpu := nes.NewCPU(bus)
	cpu.Reset()

	cycles := c.Int("cycles")
	trace := c.Bool("trace")
	traceLimit := c.Int("trace-limit")
	traced := 0

	for i := 0; i < cycles; i++ {
		if trace && cpu.AtInstructionBoundary() && (traceLimit == 0 || traced < traceLimit) {
			fmt.Println(cpu.TraceLine())
			traced++
		}

		if err := cpu.Tick(); err != nil {
			return errors.Wrapf(err, "halted after %d cycles", cpu.CycleCount)
		}
	}

	fmt.Printf("ran %d cycles; PC=%04X A=%02X X=%02X Y=%02X P=%02X S=%02X\n",
		cpu.CycleCount, cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.P, cpu.S)
	return nil
}
