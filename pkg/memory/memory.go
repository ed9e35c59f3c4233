// Package memory implements the CPU-visible NES address space: RAM
// mirroring, the PPU/APU register windows, both controller ports,
// OAM DMA, and mapper delegation for cartridge space.
package memory

import (
	"github.com/kessler-vale/nesgo/pkg/logging"
)

type ppuPorts interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

type apuPorts interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

type cartridgePorts interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

type inputPort interface {
	Read() uint8
	Write(value uint8)
}

// Memory represents the NES memory map
type Memory struct {
	// CPU RAM (2KB, mirrored to fill 8KB)
	RAM [2048]uint8

	// Test memory for high addresses (for testing purposes)
	HighMem [0xA000]uint8 // 0x6000-0xFFFF

	PPU       ppuPorts
	APU       apuPorts
	Cartridge cartridgePorts
	Input     inputPort
	Input2    inputPort

	// openBus is the last byte latched onto the bus, returned for
	// reads with no defined producer.
	openBus uint8

	// oamDMAPending/oamDMAPage record a $4014 write until the engine
	// drains it with TakePendingOAMDMA, so the CPU stall can be
	// applied by the caller that actually knows the cycle parity.
	oamDMAPending bool
	oamDMAPage    uint8

	log *logging.Logger
}

// New creates a new Memory instance
func New(log *logging.Logger) *Memory {
	if log == nil {
		log = logging.NewNop()
	}
	return &Memory{log: log}
}

// SetCartridge sets the cartridge reference
func (m *Memory) SetCartridge(cart cartridgePorts) {
	m.Cartridge = cart
}

// SetPPU sets the PPU reference
func (m *Memory) SetPPU(ppu ppuPorts) {
	m.PPU = ppu
}

// SetAPU sets the APU reference
func (m *Memory) SetAPU(apu apuPorts) {
	m.APU = apu
}

// SetInput sets the controller 1 reference
func (m *Memory) SetInput(input inputPort) {
	m.Input = input
}

// SetInput2 sets the controller 2 reference
func (m *Memory) SetInput2(input inputPort) {
	m.Input2 = input
}

// Read reads a byte from the given address with optimized path for common cases
func (m *Memory) Read(addr uint16) uint8 {
	var v uint8

	switch {
	case addr < 0x2000:
		v = m.RAM[addr&0x7FF]

	case addr >= 0x4020:
		if m.Cartridge != nil {
			v = m.Cartridge.ReadPRG(addr)
		} else if addr >= 0x6000 {
			index := addr - 0x6000
			if index < uint16(len(m.HighMem)) {
				v = m.HighMem[index]
			} else {
				v = m.openBus
			}
		} else {
			v = m.openBus
		}

	case addr < 0x4000:
		if m.PPU != nil {
			v = m.PPU.ReadRegister(0x2000 + (addr & 0x7))
		} else {
			v = m.openBus
		}

	case addr == 0x4016:
		if m.Input != nil {
			v = m.Input.Read()
		} else {
			v = m.openBus
		}

	case addr == 0x4017:
		// Controller 2 shares $4017 with the APU frame-counter
		// register; reads go to the controller.
		if m.Input2 != nil {
			v = m.Input2.Read()
		} else {
			v = m.openBus
		}

	case addr == 0x4015:
		if m.APU != nil {
			v = m.APU.ReadRegister(addr)
		} else {
			v = m.openBus
		}

	case addr < 0x4020:
		v = m.openBus

	default:
		v = m.openBus
	}

	m.openBus = v
	return v
}

// Write writes a byte to the given address
func (m *Memory) Write(addr uint16, value uint8) {
	m.openBus = value

	switch {
	case addr < 0x2000:
		m.RAM[addr&0x7FF] = value

	case addr < 0x4000:
		if m.PPU != nil {
			m.PPU.WriteRegister(0x2000+(addr&0x7), value)
		}

	case addr == 0x4014:
		// Defer the actual transfer to the engine loop via
		// TakePendingOAMDMA, so the CPU stall cycles can be charged
		// against the right instruction boundary.
		m.oamDMAPending = true
		m.oamDMAPage = value

	case addr == 0x4016:
		if m.Input != nil {
			m.Input.Write(value)
		}
		if m.Input2 != nil {
			m.Input2.Write(value)
		}

	case addr < 0x4020:
		if m.APU != nil {
			m.APU.WriteRegister(addr, value)
		}

	case addr >= 0x4020:
		if m.Cartridge != nil {
			m.Cartridge.WritePRG(addr, value)
		} else if addr >= 0x6000 {
			index := addr - 0x6000
			if index < uint16(len(m.HighMem)) {
				m.HighMem[index] = value
			}
		}

	default:
	}
}

// StartOAMDMA copies 256 bytes starting at page<<8 into OAM through
// the PPU's $2004 register.
func (m *Memory) StartOAMDMA(page uint8) {
	baseAddr := uint16(page) << 8
	for i := 0; i < 256; i++ {
		value := m.Read(baseAddr + uint16(i))
		if m.PPU != nil {
			m.PPU.WriteRegister(0x2004, value)
		}
	}
}

// TakePendingOAMDMA returns the page written to $4014 and clears the
// pending flag, or ok=false if no DMA was requested since the last call.
func (m *Memory) TakePendingOAMDMA() (page uint8, ok bool) {
	if !m.oamDMAPending {
		return 0, false
	}
	m.oamDMAPending = false
	return m.oamDMAPage, true
}

// OAMDMAStallCycles reports the CPU cycle cost of an OAM DMA transfer
// triggered on the current cycle: 513 cycles normally, 514 if the CPU
// was on an odd cycle when the transfer began.
func OAMDMAStallCycles(oddCycle bool) int {
	if oddCycle {
		return 514
	}
	return 513
}
