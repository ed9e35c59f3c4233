package cpu

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/kessler-vale/nesgo/pkg/logging"
	"github.com/kessler-vale/nesgo/pkg/memory"
	"go.uber.org/zap"
)

// CPU represents the 6502 processor
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter
	P  uint8  // Status register

	// Memory interface
	Memory *memory.Memory

	// Cycle counting
	Cycles int

	// Interrupt flags. NMI is edge-triggered: TriggerNMI latches it
	// and Step clears it unconditionally once serviced. IRQ is
	// level-triggered: a device (mapper, APU frame sequencer, DMC)
	// calls TriggerIRQ every cycle it still wants service, and Step
	// only clears it after actually servicing it — if the source
	// hasn't deasserted by the next poll, it is re-latched.
	NMI bool
	IRQ bool

	// StallCycles accounts for CPU cycles consumed by OAM DMA or DMC
	// sample fetches; the engine adds these into the reported step
	// cycle count.
	StallCycles int

	log *zap.SugaredLogger
}

// Status flag bits
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // -
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// New creates a new CPU instance
func New(mem *memory.Memory, log *logging.Logger) *CPU {
	if log == nil {
		log = logging.NewNop()
	}
	return &CPU{
		Memory: mem,
		SP:     0xFD,
		P:      FlagUnused | FlagInterrupt,
		log:    log.CPU,
	}
}

// Reset resets the CPU to initial state
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt

	// Read reset vector
	resetVector := c.read16(0xFFFC)
	c.PC = resetVector
	c.Cycles = 0
}

// Step executes one instruction and returns cycles taken
func (c *CPU) Step() int {
	if c.StallCycles > 0 {
		spent := c.StallCycles
		c.StallCycles = 0
		c.Cycles += spent
		return spent
	}

	if c.NMI {
		c.log.Debugf("NMI at PC=$%04X", c.PC)
		c.handleNMI()
		c.NMI = false
		c.Cycles += 7
		return 7
	}

	if c.IRQ && !c.getFlag(FlagInterrupt) {
		c.log.Debugf("IRQ at PC=$%04X", c.PC)
		c.handleIRQ()
		c.IRQ = false
		c.Cycles += 7
		return 7
	}

	opcode := c.read(c.PC)
	c.PC++

	if opcodeMnemonic[opcode] == "JAM" {
		c.fatal("CPU jammed on illegal opcode $%02X at PC=$%04X", opcode, c.PC-1)
	}

	cycles := c.executeInstruction(opcode)
	c.Cycles += cycles

	return cycles
}

// fatal dumps CPU state via spew and aborts the process. Reached only
// on a JAM opcode, which real hardware also cannot recover from
// without a reset.
func (c *CPU) fatal(format string, args ...interface{}) {
	c.log.Errorf(format, args...)
	spew.Dump(c)
	os.Exit(1)
}

// handleNMI handles Non-Maskable Interrupt
func (c *CPU) handleNMI() {
	c.push16(c.PC)
	c.push((c.P | FlagUnused) &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFA)
}

// handleIRQ handles Interrupt Request
func (c *CPU) handleIRQ() {
	c.push16(c.PC)
	c.push((c.P | FlagUnused) &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFE)
}

// Flag operations
func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// Memory operations
func (c *CPU) read(addr uint16) uint8 {
	return c.Memory.Read(addr)
}

func (c *CPU) write(addr uint16, value uint8) {
	c.Memory.Write(addr, value)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// Stack operations
func (c *CPU) push(value uint8) {
	c.write(0x100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// TriggerNMI triggers a Non-Maskable Interrupt
func (c *CPU) TriggerNMI() {
	c.NMI = true
}

// TriggerIRQ asserts the level-triggered IRQ line. Callers (mapper,
// APU) should call this every cycle their interrupt condition still
// holds; Step only clears it once actually serviced.
func (c *CPU) TriggerIRQ() {
	c.IRQ = true
}

// Stall adds n cycles of CPU stall, consumed on the next Step call
// before any instruction executes. Used for OAM DMA and DMC sample
// fetches.
func (c *CPU) Stall(n int) {
	c.StallCycles += n
}

// GetFlag returns the state of a flag (public method for testing)
func (c *CPU) GetFlag(flag uint8) bool {
	return c.getFlag(flag)
}
