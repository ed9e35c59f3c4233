package mapper

// Shared ROM fixtures for the mapper0/2/3 test suites: each is filled
// with an ascending byte pattern (useful for verifying bank-offset math)
// and, where the size allows it, a $8000 reset vector at its tail.
var (
	testPRGROM16KB = newPatternedROM(16*1024, 0x3FFC) // NROM-128
	testPRGROM32KB = newPatternedROM(32*1024, 0x7FFC) // NROM-256
	testCHRROM8KB  = newPatternedROM(8*1024, -1)
	testCHRROM32KB = newPatternedROM(32*1024, -1) // CNROM's 4 switchable banks
)

// newPatternedROM builds a size-byte ROM where byte i holds i&0xFF, then
// optionally stamps a reset vector pointing at $8000 at resetVectorAddr
// (pass -1 to skip, for CHR fixtures that have no reset vector).
func newPatternedROM(size, resetVectorAddr int) []uint8 {
	rom := make([]uint8, size)
	for i := range rom {
		rom[i] = uint8(i & 0xFF)
	}
	if resetVectorAddr >= 0 && resetVectorAddr+1 < size {
		rom[resetVectorAddr] = 0x00   // Reset vector low
		rom[resetVectorAddr+1] = 0x80 // Reset vector high ($8000)
	}
	return rom
}
