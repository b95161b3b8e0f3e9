package nes

// AddressingMode identifies how an instruction's operand is located.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// addrModeFunc resolves an instruction's effective address, advancing PC
// past any operand bytes, and reports whether an indexed calculation
// crossed a page boundary. Implied and Accumulator modes have no
// addrModeFunc at all -- the instruction reads/writes registers directly.
type addrModeFunc func(c *CPU) (addr uint16, pageCrossed bool)

func amImmediate(c *CPU) (uint16, bool) {
	addr := c.PC
	c.PC++
	return addr, false
}

// amRelative returns the address of the (still unread) signed displacement
// byte used by branch instructions. The branch operation itself reads it
// and computes the destination.
func amRelative(c *CPU) (uint16, bool) {
	addr := c.PC
	c.PC++
	return addr, false
}

func amZeroPage(c *CPU) (uint16, bool) {
	b := c.bus.Read(c.PC)
	c.PC++
	return uint16(b), false
}

func amZeroPageX(c *CPU) (uint16, bool) {
	b := c.bus.Read(c.PC)
	c.PC++
	return uint16(b + c.X), false
}

func amZeroPageY(c *CPU) (uint16, bool) {
	b := c.bus.Read(c.PC)
	c.PC++
	return uint16(b + c.Y), false
}

func amAbsolute(c *CPU) (uint16, bool) {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	return uint16(hi)<<8 | uint16(lo), false
}

func amAbsoluteX(c *CPU) (uint16, bool) {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.X)
	return addr, addr&0xFF00 != base&0xFF00
}

func amAbsoluteY(c *CPU) (uint16, bool) {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	return addr, addr&0xFF00 != base&0xFF00
}

// amIndirect resolves JMP's sole addressing mode, reproducing the
// well-known hardware bug: when the low byte of the pointer is 0xFF, the
// high byte of the destination is fetched from the start of the same page
// rather than the start of the next one.
func amIndirect(c *CPU) (uint16, bool) {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	ptr := uint16(hi)<<8 | uint16(lo)

	destLo := c.bus.Read(ptr)
	var hiAddr uint16
	if lo == 0xFF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	destHi := c.bus.Read(hiAddr)

	return uint16(destHi)<<8 | uint16(destLo), false
}

func amIndexedIndirect(c *CPU) (uint16, bool) {
	b := c.bus.Read(c.PC)
	c.PC++
	ptr := b + c.X
	lo := c.bus.Read(uint16(ptr))
	hi := c.bus.Read(uint16(ptr + 1))
	return uint16(hi)<<8 | uint16(lo), false
}

func amIndirectIndexed(c *CPU) (uint16, bool) {
	b := c.bus.Read(c.PC)
	c.PC++
	lo := c.bus.Read(uint16(b))
	hi := c.bus.Read(uint16(b + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	return addr, addr&0xFF00 != base&0xFF00
}

// operand reads the byte an instruction operates on: the accumulator for
// Accumulator mode, otherwise whatever the addressing mode resolved.
func operand(c *CPU, addr uint16, mode AddressingMode) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.bus.Read(addr)
}

// storeOperand writes an instruction's result back to wherever operand
// read it from.
func storeOperand(c *CPU, addr uint16, mode AddressingMode, v uint8) {
	if mode == Accumulator {
		c.A = v
		return
	}
	c.bus.Write(addr, v)
}
