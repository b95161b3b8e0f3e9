package nes

// Operation handlers implement one instruction's state change given its
// already-resolved effective address (ignored by Implied/Accumulator-only
// instructions) and addressing mode. The return value is extra cycles
// beyond the table's base cost -- only branches use this, for the
// taken-branch and page-crossing-on-taken penalties.

func opLDA(c *CPU, addr uint16, mode AddressingMode) int {
	c.A = operand(c, addr, mode)
	c.updateZN(c.A)
	return 0
}

func opLDX(c *CPU, addr uint16, mode AddressingMode) int {
	c.X = operand(c, addr, mode)
	c.updateZN(c.X)
	return 0
}

func opLDY(c *CPU, addr uint16, mode AddressingMode) int {
	c.Y = operand(c, addr, mode)
	c.updateZN(c.Y)
	return 0
}

func opSTA(c *CPU, addr uint16, mode AddressingMode) int {
	storeOperand(c, addr, mode, c.A)
	return 0
}

func opSTX(c *CPU, addr uint16, mode AddressingMode) int {
	storeOperand(c, addr, mode, c.X)
	return 0
}

func opSTY(c *CPU, addr uint16, mode AddressingMode) int {
	storeOperand(c, addr, mode, c.Y)
	return 0
}

func opTAX(c *CPU, addr uint16, mode AddressingMode) int {
	c.X = c.A
	c.updateZN(c.X)
	return 0
}

func opTAY(c *CPU, addr uint16, mode AddressingMode) int {
	c.Y = c.A
	c.updateZN(c.Y)
	return 0
}

func opTSX(c *CPU, addr uint16, mode AddressingMode) int {
	c.X = c.S
	c.updateZN(c.X)
	return 0
}

func opTXA(c *CPU, addr uint16, mode AddressingMode) int {
	c.A = c.X
	c.updateZN(c.A)
	return 0
}

func opTXS(c *CPU, addr uint16, mode AddressingMode) int {
	c.S = c.X
	return 0
}

func opTYA(c *CPU, addr uint16, mode AddressingMode) int {
	c.A = c.Y
	c.updateZN(c.A)
	return 0
}

func opINX(c *CPU, addr uint16, mode AddressingMode) int {
	c.X++
	c.updateZN(c.X)
	return 0
}

func opINY(c *CPU, addr uint16, mode AddressingMode) int {
	c.Y++
	c.updateZN(c.Y)
	return 0
}

func opDEX(c *CPU, addr uint16, mode AddressingMode) int {
	c.X--
	c.updateZN(c.X)
	return 0
}

func opDEY(c *CPU, addr uint16, mode AddressingMode) int {
	c.Y--
	c.updateZN(c.Y)
	return 0
}

func opINC(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode) + 1
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opDEC(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode) - 1
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opAND(c *CPU, addr uint16, mode AddressingMode) int {
	c.A &= operand(c, addr, mode)
	c.updateZN(c.A)
	return 0
}

func opORA(c *CPU, addr uint16, mode AddressingMode) int {
	c.A |= operand(c, addr, mode)
	c.updateZN(c.A)
	return 0
}

func opEOR(c *CPU, addr uint16, mode AddressingMode) int {
	c.A ^= operand(c, addr, mode)
	c.updateZN(c.A)
	return 0
}

func opBIT(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagV, v&0x40 != 0)
	c.setFlag(FlagN, v&0x80 != 0)
	return 0
}

// opADC implements binary-mode addition with carry. The NES 2A03 ignores
// the Decimal flag entirely, so this never branches on FlagD.
func opADC(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	carry := uint16(0)
	if c.getFlag(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry

	c.setFlag(FlagC, sum > 0xFF)
	result := uint8(sum)
	c.setFlag(FlagV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.updateZN(c.A)
	return 0
}

// opSBC is ADC with the operand bitwise-inverted, the standard identity
// A - M - (1-C) == A + ^M + C.
func opSBC(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode) ^ 0xFF
	carry := uint16(0)
	if c.getFlag(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry

	c.setFlag(FlagC, sum > 0xFF)
	result := uint8(sum)
	c.setFlag(FlagV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.updateZN(c.A)
	return 0
}

func compare(c *CPU, reg, v uint8) {
	diff := reg - v
	c.setFlag(FlagC, reg >= v)
	c.updateZN(diff)
}

func opCMP(c *CPU, addr uint16, mode AddressingMode) int {
	compare(c, c.A, operand(c, addr, mode))
	return 0
}

func opCPX(c *CPU, addr uint16, mode AddressingMode) int {
	compare(c, c.X, operand(c, addr, mode))
	return 0
}

func opCPY(c *CPU, addr uint16, mode AddressingMode) int {
	compare(c, c.Y, operand(c, addr, mode))
	return 0
}

func opASL(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opLSR(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opROL(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	oldCarry := uint8(0)
	if c.getFlag(FlagC) {
		oldCarry = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	v = v<<1 | oldCarry
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opROR(c *CPU, addr uint16, mode AddressingMode) int {
	v := operand(c, addr, mode)
	oldCarry := uint8(0)
	if c.getFlag(FlagC) {
		oldCarry = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	v = v>>1 | oldCarry
	storeOperand(c, addr, mode, v)
	c.updateZN(v)
	return 0
}

func opJMP(c *CPU, addr uint16, mode AddressingMode) int {
	c.PC = addr
	return 0
}

func opJSR(c *CPU, addr uint16, mode AddressingMode) int {
	c.pushWord(c.PC - 1)
	c.PC = addr
	return 0
}

func opRTS(c *CPU, addr uint16, mode AddressingMode) int {
	c.PC = c.pullWord() + 1
	return 0
}

// opBRK pushes PC+1 and the processor status with FlagB set, disables
// further interrupts, and vectors through 0xFFFE like a hardware IRQ.
func opBRK(c *CPU, addr uint16, mode AddressingMode) int {
	c.pushWord(c.PC)
	c.push(c.P | FlagB | FlagU)
	c.setFlag(FlagI, true)
	c.PC = c.bus.ReadWord(irqVector)
	return 0
}

func opRTI(c *CPU, addr uint16, mode AddressingMode) int {
	c.P = c.pull()&^FlagB | FlagU
	c.PC = c.pullWord()
	return 0
}

func opPHA(c *CPU, addr uint16, mode AddressingMode) int {
	c.push(c.A)
	return 0
}

func opPLA(c *CPU, addr uint16, mode AddressingMode) int {
	c.A = c.pull()
	c.updateZN(c.A)
	return 0
}

// opPHP always pushes with FlagB and FlagU set, per the documented
// behavior of the instruction (as opposed to an interrupt pushing FlagB
// clear).
func opPHP(c *CPU, addr uint16, mode AddressingMode) int {
	c.push(c.P | FlagB | FlagU)
	return 0
}

func opPLP(c *CPU, addr uint16, mode AddressingMode) int {
	c.P = c.pull()&^FlagB | FlagU
	return 0
}

func opCLC(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagC, false); return 0 }
func opSEC(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagC, true); return 0 }
func opCLI(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagI, false); return 0 }
func opSEI(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagI, true); return 0 }
func opCLV(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagV, false); return 0 }
func opCLD(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagD, false); return 0 }
func opSED(c *CPU, addr uint16, mode AddressingMode) int { c.setFlag(FlagD, true); return 0 }
func opNOP(c *CPU, addr uint16, mode AddressingMode) int { return 0 }

// branch implements the shared taken/not-taken and page-crossing cycle
// accounting for all eight conditional branches. addr is the address of
// the unread displacement byte that amRelative left in place.
func branch(c *CPU, addr uint16, taken bool) int {
	disp := c.bus.Read(addr)
	if !taken {
		return 0
	}
	extra := 1
	dest := addr + 1 + uint16(int8(disp))
	if dest&0xFF00 != (addr+1)&0xFF00 {
		extra++
	}
	c.PC = dest
	return extra
}

func opBPL(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, !c.getFlag(FlagN))
}
func opBMI(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, c.getFlag(FlagN))
}
func opBVC(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, !c.getFlag(FlagV))
}
func opBVS(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, c.getFlag(FlagV))
}
func opBCC(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, !c.getFlag(FlagC))
}
func opBCS(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, c.getFlag(FlagC))
}
func opBNE(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, !c.getFlag(FlagZ))
}
func opBEQ(c *CPU, addr uint16, mode AddressingMode) int {
	return branch(c, addr, c.getFlag(FlagZ))
}
