package nes

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// newTestCPU builds a CPU over a fresh Bus with a 32KiB PRG image loaded
// (so the reset vector, at the very end of the image, is always valid),
// runs Reset, and drains the reset sequence's pending cycles so the
// returned CPU sits at a clean instruction boundary with CycleCount back
// at zero -- ready for a test to drop an opcode at cpu.PC and measure
// exactly that instruction's cost.
func newTestCPU(t *testing.T) (*CPU, *Bus) {
	t.Helper()
	bus := NewBus()
	prg := make([]byte, 32*1024)
	require.NoError(t, bus.LoadPRG(prg))
	// Reset vector -> 0x8000, the conventional start of PRG-ROM.
	bus.Write(0xFFFC, 0x00)
	bus.Write(0xFFFD, 0x80)

	cpu := NewCPU(bus)
	cpu.Reset()
	for cpu.pending > 0 {
		require.NoError(t, cpu.Tick())
	}
	cpu.CycleCount = 0

	return cpu, bus
}

func runToCompletion(t *testing.T, c *CPU) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if err := c.Tick(); err != nil {
			require.FailNowf(t, "CPU halted unexpectedly", "%v\n%s", err, spew.Sdump(c))
		}
		if c.pending == 0 {
			return
		}
	}
	require.FailNow(t, "instruction never completed")
}

func TestResetSequence(t *testing.T) {
	bus := NewBus()
	prg := make([]byte, 32*1024)
	require.NoError(t, bus.LoadPRG(prg))
	bus.Write(0xFFFC, 0x00)
	bus.Write(0xFFFD, 0x80)
	// A LDA #$99 sitting at the reset target: if the reset sequence ever
	// fetched/executed it early, A and PC would betray that immediately.
	bus.Write(0x8000, 0xA9)
	bus.Write(0x8001, 0x99)

	cpu := NewCPU(bus)
	cpu.Reset()

	require.Equal(t, uint8(0), cpu.A)
	require.Equal(t, uint8(0), cpu.X)
	require.Equal(t, uint8(0), cpu.Y)
	require.Equal(t, uint8(0xFD), cpu.S)
	require.Equal(t, FlagU|FlagI, cpu.P)
	require.Equal(t, bus.ReadWord(resetVector), cpu.PC)
	require.False(t, cpu.AtInstructionBoundary(), "reset's pending cycles haven't been consumed yet")

	for i := 0; i < 7; i++ {
		require.NoError(t, cpu.Tick())
		require.Equal(t, uint8(0), cpu.A, "no instruction may execute while reset cycles are still pending")
		require.Equal(t, uint16(0x8000), cpu.PC, "PC must not advance until the first post-reset fetch")
	}
	require.Equal(t, uint64(7), cpu.CycleCount)
	require.True(t, cpu.AtInstructionBoundary(), "the 8th tick is the first one that may fetch a real instruction")

	require.NoError(t, cpu.Tick())
	require.Equal(t, uint8(0x99), cpu.A, "the 8th tick fetches and executes the instruction at the reset target")
	require.Equal(t, uint16(0x8002), cpu.PC)
}

func TestLDAImmediateSetsRegisterAndFlags(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(cpu.PC, 0xA9)
	bus.Write(cpu.PC+1, 0x00)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0), cpu.A)
	require.True(t, cpu.getFlag(FlagZ))
	require.False(t, cpu.getFlag(FlagN))
}

func TestLDANegativeSetsNFlag(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(cpu.PC, 0xA9)
	bus.Write(cpu.PC+1, 0x80)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0x80), cpu.A)
	require.True(t, cpu.getFlag(FlagN))
	require.False(t, cpu.getFlag(FlagZ))
}

func TestADCCarryAndOverflow(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.A = 0x50
	bus.Write(cpu.PC, 0x69) // ADC #imm
	bus.Write(cpu.PC+1, 0x50)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0xA0), cpu.A)
	require.True(t, cpu.getFlag(FlagV), "signed overflow: 0x50+0x50 crosses into negative range")
	require.False(t, cpu.getFlag(FlagC))
	require.True(t, cpu.getFlag(FlagN))
}

func TestADCUnsignedCarry(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.A = 0xFF
	bus.Write(cpu.PC, 0x69)
	bus.Write(cpu.PC+1, 0x01)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0), cpu.A)
	require.True(t, cpu.getFlag(FlagC))
	require.True(t, cpu.getFlag(FlagZ))
}

func TestSBCBorrow(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.A = 0x00
	cpu.setFlag(FlagC, true) // no borrow going in
	bus.Write(cpu.PC, 0xE9)  // SBC #imm
	bus.Write(cpu.PC+1, 0x01)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0xFF), cpu.A)
	require.False(t, cpu.getFlag(FlagC), "borrow occurred")
	require.True(t, cpu.getFlag(FlagN))
}

func TestBranchNotTakenCostsBaseCyclesOnly(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.setFlag(FlagZ, false)
	bus.Write(cpu.PC, 0xF0) // BEQ, not taken since Z clear
	bus.Write(cpu.PC+1, 0x10)

	start := cpu.PC
	runToCompletion(t, cpu)

	require.Equal(t, start+2, cpu.PC)
	require.Equal(t, uint64(2), cpu.CycleCount)
}

func TestBranchTakenSamePageCostsOneExtraCycle(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.setFlag(FlagZ, true)
	bus.Write(cpu.PC, 0xF0) // BEQ, taken
	bus.Write(cpu.PC+1, 0x10)

	runToCompletion(t, cpu)

	require.Equal(t, uint64(3), cpu.CycleCount)
}

func TestBranchTakenAcrossPageCostsTwoExtraCycles(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.PC = 0x80F0
	bus.Write(cpu.PC, 0xF0) // BEQ
	bus.Write(cpu.PC+1, 0x20)
	cpu.setFlag(FlagZ, true)

	runToCompletion(t, cpu)

	require.Equal(t, uint64(4), cpu.CycleCount)
}

func TestAbsoluteIndexedPageCrossAddsCycleOnlyForReads(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.X = 0xFF
	bus.Write(cpu.PC, 0xBD) // LDA abs,X
	bus.WriteWord(cpu.PC+1, 0x8001)
	bus.Write(0x8100, 0x55) // 0x8001 + 0xFF = 0x8100, page crossed

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0x55), cpu.A)
	require.Equal(t, uint64(5), cpu.CycleCount, "base 4 + 1 page-cross penalty")

	bus.Write(cpu.PC, 0x9D) // STA abs,X
	bus.WriteWord(cpu.PC+1, 0x0201)

	runToCompletion(t, cpu)

	require.Equal(t, uint8(0x55), bus.Read(0x0300)) // 0x0201 + 0xFF = 0x0300, page crossed
	require.Equal(t, uint64(10), cpu.CycleCount, "stores pay their base 5 with no page-cross penalty")
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(0x8000, 0x20) // JSR $9000
	bus.WriteWord(0x8001, 0x9000)
	bus.Write(0x9000, 0x60) // RTS

	runToCompletion(t, cpu) // JSR
	require.Equal(t, uint16(0x9000), cpu.PC)
	require.Equal(t, uint8(0xFB), cpu.S, "JSR pushes a return address word")

	runToCompletion(t, cpu) // RTS
	require.Equal(t, uint16(0x8003), cpu.PC)
	require.Equal(t, uint8(0xFD), cpu.S)
}

func TestStackPushPullRoundTrip(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(0x8000, 0x48) // PHA
	bus.Write(0x8001, 0xA9) // LDA #$00 (clobber A)
	bus.Write(0x8002, 0x00)
	bus.Write(0x8003, 0x68) // PLA

	cpu.A = 0x7E
	runToCompletion(t, cpu) // PHA
	runToCompletion(t, cpu) // LDA #$00
	require.Equal(t, uint8(0x00), cpu.A)
	runToCompletion(t, cpu) // PLA
	require.Equal(t, uint8(0x7E), cpu.A)
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(0x8000, 0x6C) // JMP ($02FF)
	bus.WriteWord(0x8001, 0x02FF)
	bus.Write(0x02FF, 0x00) // destination low byte
	bus.Write(0x0300, 0xFF) // would supply the high byte if the bug weren't reproduced
	bus.Write(0x0200, 0x90) // real hardware wraps and reads the high byte from here

	runToCompletion(t, cpu)

	require.Equal(t, uint16(0x9000), cpu.PC)
}

func TestBRKPushesReturnAddressAndSetsIFlag(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.WriteWord(irqVector, 0x9000)
	bus.Write(0x8000, 0x00) // BRK

	runToCompletion(t, cpu)

	require.Equal(t, uint16(0x9000), cpu.PC)
	require.True(t, cpu.getFlag(FlagI))

	pulledP := bus.Read(stackBase + uint16(cpu.S+1))
	require.NotZero(t, pulledP&FlagB, "BRK pushes status with the B flag set")
	pulledPC := uint16(bus.Read(stackBase+uint16(cpu.S+2))) | uint16(bus.Read(stackBase+uint16(cpu.S+3)))<<8
	require.Equal(t, uint16(0x8001), pulledPC, "BRK pushes PC+1, the address immediately after its opcode byte")
}

func TestUnknownOpcodeHalts(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(cpu.PC, 0x02) // not a documented NMOS opcode

	err := cpu.Tick()
	require.Error(t, err)
	var unknown UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, uint8(0x02), unknown.Opcode)

	// Subsequent ticks return the same error without advancing state.
	pc := cpu.PC
	err2 := cpu.Tick()
	require.Equal(t, err, err2)
	require.Equal(t, pc, cpu.PC)
}

func TestDisassembleLDAImmediate(t *testing.T) {
	cpu, bus := newTestCPU(t)
	bus.Write(0x8000, 0xA9)
	bus.Write(0x8001, 0x42)

	lines := cpu.Disassemble(0x8000, 0x8001)
	require.Equal(t, "LDA #$42", lines[0x8000])
}
