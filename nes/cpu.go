package nes

import "fmt"

// Status flag bit positions, fixed so PHP/PLP round-trip through the stack
// byte-for-byte.
const (
	FlagC uint8 = 1 << iota // Carry
	FlagZ                   // Zero
	FlagI                   // Interrupt disable
	FlagD                   // Decimal (unused by arithmetic on the NES)
	FlagB                   // Break, meaningful only in a pushed byte
	FlagU                   // Unused, always reads 1 when pushed
	FlagV                   // Overflow
	FlagN                   // Negative
)

const stackBase uint16 = 0x0100

const (
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
)

// UnknownOpcodeError is returned by Tick when the fetched byte has no entry
// in the decode table. It is fatal: no 6502 program that runs on real
// hardware produces it.
type UnknownOpcodeError struct {
	PC     uint16
	Opcode uint8
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("nes: unknown opcode 0x%02X at PC 0x%04X", e.Opcode, e.PC)
}

// CPU holds the 6502 architectural register file and drives the
// fetch/decode/execute loop over a Bus.
type CPU struct {
	A, X, Y uint8
	PC      uint16
	S       uint8
	P       uint8

	bus *Bus

	// pending is the number of remaining idle ticks for the instruction
	// currently in flight. The instruction's full state change happens
	// atomically on its first tick, taken while pending is 0; the
	// following ticks just count pending back down to 0.
	pending int

	CycleCount uint64

	halted  bool
	haltErr error
	decode  [256]instruction
}

// NewCPU creates a CPU wired to the given Bus. Registers start zeroed;
// call Reset to bring the CPU to its documented power-on state.
func NewCPU(bus *Bus) *CPU {
	c := &CPU{bus: bus}
	c.decode = buildOpcodeTable()
	return c
}

// LoadPRG delegates to the Bus.
func (c *CPU) LoadPRG(buf []byte) error {
	return c.bus.LoadPRG(buf)
}

// Reset performs the documented 6502 reset sequence: PC is loaded from the
// reset vector, S is set to 0xFD, the interrupt-disable and unused flags
// are established, and the reset consumes 7 cycles.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagU | FlagI
	c.PC = c.bus.ReadWord(resetVector)
	c.pending = 7
	c.halted = false
	c.haltErr = nil
}

// AtInstructionBoundary reports whether the next Tick call will fetch and
// execute a new instruction rather than idle out a pending one. Callers
// that want a trace of one line per instruction, rather than one per
// cycle, should gate their printing on this.
func (c *CPU) AtInstructionBoundary() bool {
	return c.pending == 0 && !c.halted
}

func (c *CPU) getFlag(f uint8) bool {
	return c.P&f != 0
}

func (c *CPU) setFlag(f uint8, set bool) {
	if set {
		c.P |= f
	} else {
		c.P &^= f
	}
}

// updateZN sets the Zero and Negative flags from a result byte, the
// canonical flag-derivation rule applied after nearly every instruction.
func (c *CPU) updateZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.S), v)
	c.S--
}

func (c *CPU) pull() uint8 {
	c.S++
	return c.bus.Read(stackBase + uint16(c.S))
}

func (c *CPU) pushWord(w uint16) {
	c.push(uint8(w >> 8))
	c.push(uint8(w))
}

func (c *CPU) pullWord() uint16 {
	lo := c.pull()
	hi := c.pull()
	return uint16(hi)<<8 | uint16(lo)
}

// Tick advances the CPU by one host cycle. If an instruction is still
// being "amortized", it decrements the pending-cycle counter. Otherwise it
// fetches, decodes and executes the next instruction in full and records
// how many additional ticks it should idle for. CycleCount advances by
// exactly one per call until the CPU halts. A non-nil error means the CPU has halted and
// every subsequent Tick call returns the same error without further state
// change.
func (c *CPU) Tick() error {
	if c.halted {
		return c.haltErr
	}

	if c.pending > 0 {
		c.pending--
		c.CycleCount++
		return nil
	}

	if err := c.step(); err != nil {
		c.halted = true
		c.haltErr = err
		c.CycleCount++
		return err
	}

	c.CycleCount++
	return nil
}

func (c *CPU) step() error {
	pc := c.PC
	opcode := c.bus.Read(c.PC)
	c.PC++

	inst := c.decode[opcode]
	if inst.op == nil {
		return UnknownOpcodeError{PC: pc, Opcode: opcode}
	}

	cycles := inst.cycles

	var addr uint16
	var pageCrossed bool
	if inst.addrFn != nil {
		addr, pageCrossed = inst.addrFn(c)
		if pageCrossed && inst.pageCrossExtra {
			cycles++
		}
	}

	cycles += inst.op(c, addr, inst.mode)

	c.pending = cycles - 1
	return nil
}
