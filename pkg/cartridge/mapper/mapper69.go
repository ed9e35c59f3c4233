package mapper

// Mapper69 (Sunsoft FME-7 / 5B) - command/data register pair selecting
// one of 16 internal registers, three switchable 8KB PRG banks plus a
// PRG-RAM/ROM window at $6000, eight 1KB CHR banks, a free-running
// 16-bit down counter driving IRQs, and (on the 5B variant) three
// square-wave expansion audio channels.
type Mapper69 struct {
	cartridge *CartridgeData

	command uint8 // Register selected by the last $8000-$9FFF write

	chrBank [8]uint8 // Registers 0-7: 1KB CHR banks

	prgBank      [3]uint8 // Registers 9-B: 8KB PRG banks at $8000/$A000/$C000
	ramBank      uint8    // Register 8: bank mapped at $6000-$7FFF
	ramEnabled   bool     // Register 8 bit 7
	ramIsRAM     bool     // Register 8 bit 6: true = PRG RAM, false = PRG ROM bank
	prgBankCount uint8
	chrBankCount uint8

	mirroring uint8 // Register C: 0=vertical,1=horizontal,2=single A,3=single B

	irqEnabled     bool // Register D bit 0
	irqCounterOn   bool // Register D bit 7
	irqCounter     uint16
	irqPending     bool

	// Expansion audio: three square channels addressed through their
	// own command/data pair at $C000/$E000. Only the register state is
	// modeled; no samples are synthesized and nothing mixes this into
	// the console's output bus.
	audioAddr    uint8
	audioTone    [3]uint16 // 12-bit period per channel
	audioVolume  [3]uint8  // 4-bit volume per channel
	audioEnabled [3]bool
}

// NewMapper69 creates a new Mapper69 instance
func NewMapper69(data *CartridgeData) *Mapper69 {
	m := &Mapper69{cartridge: data}
	m.prgBankCount = uint8(len(data.PRGROM) / 8192)
	if m.prgBankCount == 0 {
		m.prgBankCount = 1
	}
	if len(data.CHRROM) > 0 {
		m.chrBankCount = uint8(len(data.CHRROM) / 1024)
	} else {
		m.chrBankCount = uint8(len(data.CHRRAM) / 1024)
	}
	if m.chrBankCount == 0 {
		m.chrBankCount = 1
	}
	return m
}

// ReadPRG reads from the $6000 window (RAM or banked ROM) and the
// three switchable 8KB banks, with the top 8KB fixed to the last bank.
func (m *Mapper69) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.ramIsRAM {
			if m.ramEnabled && len(m.cartridge.PRGRAM) > 0 {
				off := uint32(addr - 0x6000)
				if int(off) < len(m.cartridge.PRGRAM) {
					return m.cartridge.PRGRAM[off]
				}
			}
			return 0
		}
		bank := m.ramBank % m.prgBankCount
		off := uint32(bank)*0x2000 + uint32(addr-0x6000)
		if int(off) < len(m.cartridge.PRGROM) {
			return m.cartridge.PRGROM[off]
		}
	case addr >= 0x8000 && addr < 0xE000:
		window := (addr - 0x8000) / 0x2000
		bank := m.prgBank[window] % m.prgBankCount
		off := uint32(bank)*0x2000 + uint32(addr&0x1FFF)
		if int(off) < len(m.cartridge.PRGROM) {
			return m.cartridge.PRGROM[off]
		}
	case addr >= 0xE000:
		bank := m.prgBankCount - 1
		off := uint32(bank)*0x2000 + uint32(addr&0x1FFF)
		if int(off) < len(m.cartridge.PRGROM) {
			return m.cartridge.PRGROM[off]
		}
	}
	return 0
}

// WritePRG dispatches command/data writes and PRG RAM writes.
func (m *Mapper69) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.ramIsRAM && m.ramEnabled && len(m.cartridge.PRGRAM) > 0 {
			off := uint32(addr - 0x6000)
			if int(off) < len(m.cartridge.PRGRAM) {
				m.cartridge.PRGRAM[off] = value
			}
		}
	case addr >= 0x8000 && addr < 0xA000:
		m.command = value & 0x0F
	case addr >= 0xA000 && addr < 0xC000:
		m.writeRegister(value)
	case addr >= 0xC000 && addr < 0xE000:
		m.audioAddr = value & 0x0F
	case addr >= 0xE000:
		m.writeAudioData(value)
	}
}

func (m *Mapper69) writeRegister(value uint8) {
	switch {
	case m.command <= 0x07:
		m.chrBank[m.command] = value
	case m.command == 0x08:
		m.ramEnabled = value&0x80 != 0
		m.ramIsRAM = value&0x40 != 0
		m.ramBank = value & 0x3F
	case m.command >= 0x09 && m.command <= 0x0B:
		m.prgBank[m.command-0x09] = value & 0x3F
	case m.command == 0x0C:
		m.mirroring = value & 0x03
	case m.command == 0x0D:
		m.irqEnabled = value&0x01 != 0
		m.irqCounterOn = value&0x80 != 0
		m.irqPending = false
	case m.command == 0x0E:
		m.irqCounter = (m.irqCounter & 0xFF00) | uint16(value)
	case m.command == 0x0F:
		m.irqCounter = (m.irqCounter & 0x00FF) | (uint16(value) << 8)
	}
}

func (m *Mapper69) writeAudioData(value uint8) {
	channel := m.audioAddr
	switch {
	case channel <= 0x05:
		ch := channel / 2
		if channel%2 == 0 {
			m.audioTone[ch] = (m.audioTone[ch] &^ 0xFF) | uint16(value)
		} else {
			m.audioTone[ch] = (m.audioTone[ch] &^ 0x0F00) | (uint16(value&0x0F) << 8)
		}
	case channel >= 0x08 && channel <= 0x0A:
		ch := channel - 0x08
		m.audioVolume[ch] = value & 0x0F
	case channel == 0x07:
		m.audioEnabled[0] = value&0x01 == 0
		m.audioEnabled[1] = value&0x02 == 0
		m.audioEnabled[2] = value&0x04 == 0
	}
}

// ReadCHR reads from the eight 1KB CHR banks.
func (m *Mapper69) ReadCHR(addr uint16) uint8 {
	bank := m.chrBank[addr/0x400] % m.chrBankCount
	off := uint32(bank)*0x400 + uint32(addr&0x3FF)
	if len(m.cartridge.CHRROM) > 0 {
		if int(off) < len(m.cartridge.CHRROM) {
			return m.cartridge.CHRROM[off]
		}
		return 0
	}
	if int(off) < len(m.cartridge.CHRRAM) {
		return m.cartridge.CHRRAM[off]
	}
	return 0
}

// WriteCHR writes to CHR RAM when the cartridge has no CHR ROM.
func (m *Mapper69) WriteCHR(addr uint16, value uint8) {
	if len(m.cartridge.CHRROM) > 0 {
		return
	}
	bank := m.chrBank[addr/0x400] % m.chrBankCount
	off := uint32(bank)*0x400 + uint32(addr&0x3FF)
	if int(off) < len(m.cartridge.CHRRAM) {
		m.cartridge.CHRRAM[off] = value
	}
}

// Step decrements the free-running IRQ counter and latches an IRQ on
// underflow. The real FME-7 counter clocks once per CPU cycle; the
// cartridge hook here is only called once per scanline (the same
// scanline-granularity the PPU uses for MMC3), so this advances the
// counter by one scanline's worth of CPU cycles per call rather than
// by one. Games that rely on sub-scanline IRQ precision will be off.
func (m *Mapper69) Step() {
	if !m.irqCounterOn {
		return
	}
	const cyclesPerScanline = 114
	remaining := cyclesPerScanline
	for remaining > 0 {
		if m.irqCounter == 0 {
			if m.irqEnabled {
				m.irqPending = true
			}
			m.irqCounter = 0xFFFF
		} else {
			m.irqCounter--
		}
		remaining--
	}
}

// IsIRQPending returns true if the counter IRQ is pending
func (m *Mapper69) IsIRQPending() bool {
	return m.irqPending
}

// ClearIRQ clears the pending counter IRQ
func (m *Mapper69) ClearIRQ() {
	m.irqPending = false
}

// GetMirroringMode translates FME-7's register (0=vertical,1=horizontal,
// 2=single A,3=single B) into cartridge.MirroringMode's scheme.
func (m *Mapper69) GetMirroringMode() uint8 {
	switch m.mirroring {
	case 0:
		return 1 // vertical
	case 1:
		return 0 // horizontal
	case 2:
		return 3 // single-screen A
	default:
		return 4 // single-screen B
	}
}
