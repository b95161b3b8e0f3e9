package nes

// Mapper translates CPU/PPU addresses into offsets within a cartridge's PRG
// and CHR buffers. Mapping functions return false when the given address
// does not belong to them.
type Mapper interface {
	cpuMapRead(addr uint16) (mapped uint16, ok bool)
	cpuMapWrite(addr uint16) (mapped uint16, ok bool)
	ppuMapRead(addr uint16) (mapped uint16, ok bool)
	ppuMapWrite(addr uint16) (mapped uint16, ok bool)
}
