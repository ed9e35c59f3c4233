package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kessler-vale/nesgo/pkg/cartridge/mapper"
	"github.com/kessler-vale/nesgo/pkg/nes"
	"github.com/spf13/cobra"
)

func newDebugCommand() *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "debug <rom-file>",
		Short: "Run a ROM headless, printing PPU/mapper state every few frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := buildLogger()
			defer log.Sync()

			cart, err := loadROM(args[0])
			if err != nil {
				return err
			}

			mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
			fmt.Printf("=== Debug: %s (mapper %d) ===\n", args[0], mapperNumber)

			nesSystem := nes.NewNES(log)
			nesSystem.LoadCartridge(cart)
			nesSystem.Reset()

			if mapperNumber == 4 {
				printMapper4State(cart.Mapper, 0)
			}

			start := time.Now()
			for i := 0; i < frames; i++ {
				frameStart := time.Now()
				nesSystem.StepFrame()
				fmt.Printf("frame %d completed in %v (cycles=%d)\n",
					nesSystem.GetFrame(), time.Since(frameStart), nesSystem.Cycles)

				if i == 0 {
					printPPUState(nesSystem)
				}
				if mapperNumber == 4 && (i+1)%3 == 0 {
					printMapper4State(cart.Mapper, nesSystem.GetFrame())
				}

				if i == frames-1 {
					fb := nesSystem.GetFramebuffer()
					name := fmt.Sprintf("debug_frame_%d.raw", nesSystem.GetFrame())
					if err := saveFramebuffer(fb, name); err != nil {
						fmt.Fprintf(os.Stderr, "saving framebuffer: %v\n", err)
					} else {
						fmt.Printf("saved framebuffer to %s (%d bytes)\n", name, len(fb))
					}
				}
			}

			fmt.Printf("=== completed %d frames in %v ===\n", frames, time.Since(start))
			if mapperNumber == 4 {
				printMapper4State(cart.Mapper, nesSystem.GetFrame())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 10, "number of frames to run")
	return cmd
}

func printMapper4State(m mapper.Mapper, frame uint64) {
	mapper4, ok := m.(*mapper.Mapper4)
	if !ok {
		return
	}

	fmt.Printf("--- Mapper 4 state (frame %d) ---\n", frame)
	banks := mapper4.GetCurrentPRGBanks()
	fmt.Printf("  PRG banks: [%d, %d, %d, %d] ($8000, $A000, $C000, $E000)\n",
		banks[0], banks[1], banks[2], banks[3])

	info := mapper4.GetDebugInfo()
	bankRegs := info["bankRegisters"].([8]uint8)
	fmt.Printf("  bank select: 0x%02X, registers: %v\n", info["bankSelect"], bankRegs)
	fmt.Printf("  PRG mode: %d, CHR mode: %d, mirroring: %d\n",
		info["prgMode"], info["chrMode"], info["mirroringMode"])
	fmt.Printf("  IRQ: counter=%d reload=%d enabled=%v pending=%v\n",
		info["irqCounter"], info["irqReloadValue"], info["irqEnabled"], info["irqPending"])
}

func printPPUState(nesSystem *nes.NES) {
	p := nesSystem.PPU
	fmt.Printf("  PPU: frame=%d scanline=%d cycle=%d PPUCTRL=%02X PPUMASK=%02X PPUSTATUS=%02X NMI_requested=%v\n",
		p.Frame, p.Scanline, p.Cycle, p.PPUCTRL, p.PPUMASK, p.PPUSTATUS, p.NMIRequested)
}

func saveFramebuffer(framebuffer []uint8, path string) error {
	return os.WriteFile(path, framebuffer, 0644)
}
