package nes

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// CartridgeLoadReason distinguishes why a cartridge load was rejected.
type CartridgeLoadReason int

const (
	ErrBadSignature CartridgeLoadReason = iota
	ErrTruncated
	ErrUnsupportedMapper
	ErrTrainerUnsupported
	ErrBatteryRAMUnsupported
)

func (r CartridgeLoadReason) String() string {
	switch r {
	case ErrBadSignature:
		return "bad iNES signature"
	case ErrTruncated:
		return "truncated ROM data"
	case ErrUnsupportedMapper:
		return "unsupported mapper"
	case ErrTrainerUnsupported:
		return "trainer block unsupported"
	case ErrBatteryRAMUnsupported:
		return "battery-backed RAM unsupported"
	default:
		return "unknown cartridge load error"
	}
}

// CartridgeLoadError is returned by NewCartridge when a file fails to parse
// or uses a feature this emulator doesn't support. The CPU is never invoked
// when this error is returned.
type CartridgeLoadError struct {
	Reason CartridgeLoadReason
}

func (e CartridgeLoadError) Error() string {
	return fmt.Sprintf("cartridge load failed: %s", e.Reason)
}

// iNES header, 16 bytes. Field order and sizes mirror the on-disk layout so
// binary.Read can decode it directly.
type cartridgeHeader struct {
	Sig          [4]byte
	PrgRomChunks byte
	ChrRomChunks byte
	Control1     byte
	Control2     byte
	RamBanks     byte
	Unused       [7]byte
}

var iNESSignature = [4]byte{'N', 'E', 'S', 0x1A}

const (
	trainerBit    = 1 << 2
	batteryRAMBit = 1 << 1
)

// mapperNumber returns (control2 & 0xF0) | (control1 >> 4).
func (h *cartridgeHeader) mapperNumber() byte {
	return (h.Control2 & 0xF0) | (h.Control1 >> 4)
}

// Cartridge holds the PRG/CHR data and mapper parsed from an iNES file.
type Cartridge struct {
	header cartridgeHeader
	prgMem []byte // Program memory (PRG-ROM)
	chrMem []byte // Character memory (CHR-ROM); unused without a PPU but kept resident.

	mapper Mapper
}

// NewCartridge parses an iNES file already read into memory. It validates
// the header, rejects unsupported features, and constructs the mapper
// named by the header -- only mapper 0 (NROM) is supported.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < 16 || !bytes.Equal(data[:4], iNESSignature[:]) {
		return nil, errors.WithStack(CartridgeLoadError{Reason: ErrBadSignature})
	}

	header := new(cartridgeHeader)
	if err := binary.Read(bytes.NewReader(data[:16]), binary.BigEndian, header); err != nil {
		return nil, errors.Wrap(err, "nes: reading iNES header")
	}

	if header.Control1&batteryRAMBit != 0 {
		return nil, errors.WithStack(CartridgeLoadError{Reason: ErrBatteryRAMUnsupported})
	}
	if header.Control1&trainerBit != 0 {
		return nil, errors.WithStack(CartridgeLoadError{Reason: ErrTrainerUnsupported})
	}

	mapperID := header.mapperNumber()
	if mapperID != 0 {
		return nil, errors.WithStack(CartridgeLoadError{Reason: ErrUnsupportedMapper})
	}

	offset := 16
	prgSize := int(header.PrgRomChunks) * 16 * 1024
	chrSize := int(header.ChrRomChunks) * 8 * 1024

	if len(data) < offset+prgSize+chrSize {
		return nil, errors.WithStack(CartridgeLoadError{Reason: ErrTruncated})
	}

	cart := &Cartridge{
		header: *header,
		prgMem: append([]byte(nil), data[offset:offset+prgSize]...),
	}
	offset += prgSize
	cart.chrMem = append([]byte(nil), data[offset:offset+chrSize]...)
	cart.mapper = NewMapper000(header.PrgRomChunks, header.ChrRomChunks)

	return cart, nil
}

// PRGSize reports the length of the loaded PRG-ROM buffer, in bytes.
func (c *Cartridge) PRGSize() int { return len(c.prgMem) }

// CHRSize reports the length of the loaded CHR-ROM buffer, in bytes.
func (c *Cartridge) CHRSize() int { return len(c.chrMem) }

func (c *Cartridge) cpuRead(addr uint16) (uint8, bool) {
	mapped, ok := c.mapper.cpuMapRead(addr)
	if !ok || int(mapped) >= len(c.prgMem) {
		return 0, false
	}
	return c.prgMem[mapped], true
}

func (c *Cartridge) cpuWrite(addr uint16, val uint8) bool {
	mapped, ok := c.mapper.cpuMapWrite(addr)
	if !ok || int(mapped) >= len(c.prgMem) {
		return false
	}
	c.prgMem[mapped] = val
	return true
}
