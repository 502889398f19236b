package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/headless"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/logging"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

// machineFlags are shared by every subcommand that builds a machine.
type machineFlags struct {
	hz      int
	quirks  string
	palette string
	seed    int64
	trace   bool
	debug   bool
	quiet   bool
}

func (f *machineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.hz, "hz", emu.DefaultInstructionHz, "instructions per second (max 1000000)")
	cmd.Flags().StringVar(&f.quirks, "quirks", "default",
		"instruction quirk preset ("+strings.Join(cpu.QuirkPresetNames(), ", ")+")")
	cmd.Flags().StringVar(&f.palette, "palette", "classic", "display palette (classic, amber, green, lcd)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for CXNN, 0 seeds from the clock")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "log every executed instruction (implies --debug)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "only log errors")
}

// machine creates the logger and a machine with the ROM at path loaded.
func (f *machineFlags) machine(path string) (*emu.Machine, *log.Logger, error) {
	logger := logging.New(f.debug || f.trace, f.quiet)

	q, err := cpu.QuirksByName(f.quirks)
	if err != nil {
		return nil, logger, err
	}
	m := emu.New(emu.Config{
		InstructionHz: f.hz,
		Quirks:        &q,
		Seed:          f.seed,
		Palette:       f.palette,
		Trace:         f.trace,
	}, logger)
	if err := m.LoadROMFromFile(path); err != nil {
		return nil, logger, err
	}
	return m, logger, nil
}

func newRunCmd() *cobra.Command {
	var mf machineFlags
	var uiCfg ui.Config

	cmd := &cobra.Command{
		Use:   "run ROM",
		Short: "Run a ROM in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, logger, err := mf.machine(args[0])
			if err != nil {
				return err
			}
			app := ui.NewApp(uiCfg, m, logger)
			return app.Run()
		},
	}
	mf.register(cmd)
	cmd.Flags().IntVar(&uiCfg.Scale, "scale", 10, "window scale")
	cmd.Flags().StringVar(&uiCfg.Title, "title", "chip8emu", "window title")
	cmd.Flags().BoolVar(&uiCfg.Mute, "mute", false, "start with sound off")
	cmd.Flags().StringVar(&uiCfg.ROMsDir, "roms", "roms", "directory listed by the Load ROM menu")
	return cmd
}

func newHeadlessCmd() *cobra.Command {
	var mf machineFlags
	var opts headless.Options

	cmd := &cobra.Command{
		Use:   "headless ROM",
		Short: "Run a ROM without a window and report the framebuffer checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, logger, err := mf.machine(args[0])
			if err != nil {
				return err
			}
			res, err := headless.Run(m, opts, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%08x\n", res.CRC32)
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().IntVar(&opts.Frames, "frames", 300, "frames to run")
	cmd.Flags().StringVar(&opts.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	cmd.Flags().StringVar(&opts.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	cmd.Flags().StringVar(&opts.WAVOut, "wav", "", "record the buzzer to a WAV file")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "chip8emu",
		Short:         "CHIP-8 interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newHeadlessCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
