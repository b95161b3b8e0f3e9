package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusRAMMirroring(t *testing.T) {
	b := NewBus()

	b.Write(0x0000, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0x0000))
	require.Equal(t, uint8(0x42), b.Read(0x0800), "RAM should mirror every 0x0800 bytes")
	require.Equal(t, uint8(0x42), b.Read(0x1000))
	require.Equal(t, uint8(0x42), b.Read(0x1800))
}

func TestBusRAMMirroringWrite(t *testing.T) {
	b := NewBus()

	b.Write(0x1801, 0x99)
	require.Equal(t, uint8(0x99), b.Read(0x0001), "a mirrored write should be visible at the base address")
}

func TestBusPPURegisterMirroring(t *testing.T) {
	b := NewBus()

	b.Write(0x2000, 0x07)
	require.Equal(t, uint8(0x07), b.Read(0x2008), "PPU registers mirror every 8 bytes across 0x2000-0x3FFF")
	require.Equal(t, uint8(0x07), b.Read(0x3FF8))
}

func TestBusReadWordLittleEndian(t *testing.T) {
	b := NewBus()
	b.Write(0x0010, 0x34)
	b.Write(0x0011, 0x12)

	require.Equal(t, uint16(0x1234), b.ReadWord(0x0010))
}

func TestBusWriteWordLittleEndian(t *testing.T) {
	b := NewBus()
	b.WriteWord(0x0010, 0xABCD)

	require.Equal(t, uint8(0xCD), b.Read(0x0010))
	require.Equal(t, uint8(0xAB), b.Read(0x0011))
}

func TestBusLoadPRGMirrorsInto16KWindow(t *testing.T) {
	b := NewBus()

	prg := make([]byte, 16*1024)
	prg[0] = 0x42
	prg[len(prg)-1] = 0x80
	require.NoError(t, b.LoadPRG(prg))

	require.Equal(t, uint8(0x42), b.Read(0x8000))
	require.Equal(t, uint8(0x42), b.Read(0xC000), "a 16KiB PRG image mirrors into the upper half of the cartridge window")
	require.Equal(t, uint8(0x80), b.Read(0xBFFF))
	require.Equal(t, uint8(0x80), b.Read(0xFFFF))
}

func TestBusLoadPRG32K(t *testing.T) {
	b := NewBus()

	prg := make([]byte, 32*1024)
	prg[0] = 0x11
	prg[len(prg)-1] = 0x22
	require.NoError(t, b.LoadPRG(prg))

	require.Equal(t, uint8(0x11), b.Read(0x8000))
	require.Equal(t, uint8(0x22), b.Read(0xFFFF))
}

func TestBusUnmappedCartridgeReadsZero(t *testing.T) {
	b := NewBus()
	require.Equal(t, uint8(0), b.Read(0x8000), "reads before a cartridge is inserted should not panic")
}
