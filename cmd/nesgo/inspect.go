package main

import (
	"fmt"

	"github.com/kessler-vale/nesgo/pkg/cartridge/mapper"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <rom-file>",
		Short: "Print a ROM's header, mapper, and memory layout without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := loadROM(args[0])
			if err != nil {
				return err
			}
			h := cart.Header

			fmt.Printf("=== %s ===\n", args[0])
			fmt.Printf("magic: %s\n", string(h.Magic[:]))
			fmt.Printf("PRG ROM: %d x 16KB units\n", h.PRGROMSize)
			fmt.Printf("CHR ROM: %d x 8KB units\n", h.CHRROMSize)
			fmt.Printf("flags6=0x%02X flags7=0x%02X flags8=0x%02X flags9=0x%02X flags10=0x%02X\n",
				h.Flags6, h.Flags7, h.Flags8, h.Flags9, h.Flags10)

			mapperNumber := (h.Flags6 >> 4) | (h.Flags7 & 0xF0)
			fmt.Printf("\nmapper: %d\n", mapperNumber)
			fmt.Printf("trainer: %v, battery: %v, four-screen: %v\n",
				h.Flags6&0x04 != 0, h.Flags6&0x02 != 0, h.Flags6&0x08 != 0)

			switch {
			case h.Flags6&0x08 != 0:
				fmt.Println("mirroring: four-screen")
			case h.Flags6&0x01 != 0:
				fmt.Println("mirroring: vertical")
			default:
				fmt.Println("mirroring: horizontal")
			}

			fmt.Printf("\nPRG ROM: %d bytes\n", len(cart.PRGROM))
			if len(cart.CHRROM) > 0 {
				fmt.Printf("CHR ROM: %d bytes\n", len(cart.CHRROM))
			}
			if len(cart.CHRRAM) > 0 {
				fmt.Printf("CHR RAM: %d bytes\n", len(cart.CHRRAM))
			}
			if len(cart.PRGRAM) > 0 {
				fmt.Printf("PRG RAM: %d bytes\n", len(cart.PRGRAM))
			}

			if mapper4, ok := cart.Mapper.(*mapper.Mapper4); ok {
				fmt.Println("\n=== MMC3 (mapper 4) ===")
				banks := mapper4.GetCurrentPRGBanks()
				fmt.Printf("initial PRG banks: $8000=%d $A000=%d $C000=%d (fixed) $E000=%d (fixed)\n",
					banks[0], banks[1], banks[2], banks[3])
			}

			return nil
		},
	}
	return cmd
}
