package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kessler-vale/nesgo/pkg/cartridge"
	"github.com/kessler-vale/nesgo/pkg/gui"
	"github.com/kessler-vale/nesgo/pkg/nes"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var (
		headless   bool
		testFrames int
	)

	cmd := &cobra.Command{
		Use:   "run <rom-file>",
		Short: "Run a ROM in the GUI or headless",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := buildLogger()
			defer log.Sync()

			romFile := args[0]
			cart, err := loadROM(romFile)
			if err != nil {
				return err
			}

			mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
			log.Engine.Infof("loaded ROM %s (mapper %d, PRG %dKB)",
				filepath.Base(romFile), mapperNumber, len(cart.PRGROM)/1024)

			nesSystem := nes.NewNES(log)
			nesSystem.LoadCartridge(cart)
			nesSystem.Reset()

			if headless {
				return runHeadless(nesSystem, testFrames)
			}

			nesGUI, err := gui.NewNESGUI(nesSystem, log)
			if err != nil {
				return fmt.Errorf("creating GUI: %w", err)
			}
			defer nesGUI.Destroy()

			nesGUI.Run()
			return nil
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "run without the GUI, for automated testing")
	cmd.Flags().IntVar(&testFrames, "frames", 600, "number of frames to run in headless mode")

	return cmd
}

func loadROM(path string) (*cartridge.Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ROM file: %w", err)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}
	return cart, nil
}

func runHeadless(nesSystem *nes.NES, maxFrames int) error {
	start := time.Now()
	for frame := 0; frame < maxFrames; frame++ {
		nesSystem.StepFrame()
	}
	elapsed := time.Since(start)

	fmt.Printf("ran %d frames in %v (%.1f fps)\n", maxFrames, elapsed, float64(maxFrames)/elapsed.Seconds())
	return nil
}
