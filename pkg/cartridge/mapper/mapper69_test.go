package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMapper69_Sunsoft5B tests the Sunsoft FME-7 / 5B mapper (mapper 69)
func TestMapper69_Sunsoft5B(t *testing.T) {
	t.Run("CHR_Bank_Switching", func(t *testing.T) {
		chrROM := make([]uint8, 8*1024) // 8 x 1KB banks
		for i := 0; i < len(chrROM); i++ {
			chrROM[i] = uint8(i / 1024)
		}

		data := &CartridgeData{PRGROM: make([]uint8, 32*1024), CHRROM: chrROM}
		mapper := NewMapper69(data)

		// register 6 controls PPU $1800-$1BFF (addr/0x400 == 6); point it at bank 5
		mapper.WritePRG(0x8000, 0x06)
		mapper.WritePRG(0xA000, 0x05)

		require.Equal(t, uint8(5), mapper.ReadCHR(0x1800), "CHR bank 5 at $1800")
		require.Equal(t, uint8(0), mapper.ReadCHR(0x1000), "untouched register 4 still defaults to bank 0")
	})

	t.Run("PRG_Bank_Switching", func(t *testing.T) {
		prgROM := make([]uint8, 8*8*1024) // 8 x 8KB banks
		for i := 0; i < len(prgROM); i++ {
			prgROM[i] = uint8(i / 8192)
		}

		data := &CartridgeData{PRGROM: prgROM, CHRRAM: make([]uint8, 8*1024)}
		mapper := NewMapper69(data)

		// register $0A selects the PRG bank for $A000-$BFFF
		mapper.WritePRG(0x8000, 0x0A)
		mapper.WritePRG(0xA000, 0x02)
		require.Equal(t, uint8(2), mapper.ReadPRG(0xA000), "PRG bank 2 at $A000")

		// last bank is always fixed at $E000-$FFFF
		require.Equal(t, uint8(7), mapper.ReadPRG(0xE000), "fixed last bank at $E000")
	})

	t.Run("PRG_RAM_Window", func(t *testing.T) {
		data := &CartridgeData{PRGROM: make([]uint8, 32*1024), CHRRAM: make([]uint8, 8*1024), PRGRAM: make([]uint8, 8*1024)}
		mapper := NewMapper69(data)

		// register 8 controls $6000-$7FFF bank/RAM select
		mapper.WritePRG(0x8000, 0x08)
		mapper.WritePRG(0xA000, 0xC0) // bit 7 = RAM enabled, bit 6 = is-RAM

		mapper.WritePRG(0x6000, 0x42)
		require.Equal(t, uint8(0x42), mapper.ReadPRG(0x6000), "PRG RAM round-trip at $6000")
	})

	t.Run("IRQ_Counter", func(t *testing.T) {
		data := &CartridgeData{PRGROM: make([]uint8, 32*1024), CHRRAM: make([]uint8, 8*1024)}
		mapper := NewMapper69(data)

		// register $0E/$0F load the 16-bit IRQ counter low/high bytes
		mapper.WritePRG(0x8000, 0x0E)
		mapper.WritePRG(0xA000, 0x02) // counter low byte
		mapper.WritePRG(0x8000, 0x0F)
		mapper.WritePRG(0xA000, 0x00) // counter high byte

		// register $0D enables the IRQ and starts the counter
		mapper.WritePRG(0x8000, 0x0D)
		mapper.WritePRG(0xA000, 0x81) // bit 0 = IRQ enabled, bit 7 = counter enabled

		require.False(t, mapper.IsIRQPending(), "IRQ should not be pending before the counter underflows")

		// one Step() call models one scanline's worth of CPU cycles (114 decrements),
		// enough to run the counter from 2 down through underflow
		mapper.Step()
		require.True(t, mapper.IsIRQPending(), "IRQ pending once the counter underflows past zero")

		mapper.ClearIRQ()
		require.False(t, mapper.IsIRQPending(), "IRQ cleared after ClearIRQ")
	})

	t.Run("Mirroring_Register", func(t *testing.T) {
		data := &CartridgeData{PRGROM: make([]uint8, 32*1024), CHRRAM: make([]uint8, 8*1024)}
		mapper := NewMapper69(data)

		// register $0C selects mirroring mode via the low two bits
		mapper.WritePRG(0x8000, 0x0C)

		mapper.WritePRG(0xA000, 0x00)
		require.Equal(t, uint8(1), mapper.GetMirroringMode(), "vertical for FME-7 mode 0")

		mapper.WritePRG(0xA000, 0x01)
		require.Equal(t, uint8(0), mapper.GetMirroringMode(), "horizontal for FME-7 mode 1")

		mapper.WritePRG(0xA000, 0x02)
		require.Equal(t, uint8(3), mapper.GetMirroringMode(), "single-screen A for FME-7 mode 2")

		mapper.WritePRG(0xA000, 0x03)
		require.Equal(t, uint8(4), mapper.GetMirroringMode(), "single-screen B for FME-7 mode 3")
	})
}
